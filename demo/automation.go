package demo

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// errAutomationUnavailable marks a missing local Playwright driver; the
// browser demo downgrades this to a note instead of failing.
type automationUnavailableError struct{ cause error }

func (e *automationUnavailableError) Error() string {
	return fmt.Sprintf("playwright driver unavailable: %v", e.cause)
}

func (e *automationUnavailableError) Unwrap() error { return e.cause }

// playwrightAutomate attaches to the session's CDP endpoint, navigates to
// example.com and returns the page title. The remote browser stays open for
// reuse; only the local driver connection is closed.
func playwrightAutomate(_ context.Context, cdpURL string) (string, error) {
	pw, err := playwright.Run()
	if err != nil {
		return "", &automationUnavailableError{cause: err}
	}
	defer func() { _ = pw.Stop() }()

	b, err := pw.Chromium.ConnectOverCDP(cdpURL)
	if err != nil {
		return "", fmt.Errorf("connect over cdp: %w", err)
	}
	defer func() { _ = b.Close() }()

	var page playwright.Page
	if contexts := b.Contexts(); len(contexts) > 0 && len(contexts[0].Pages()) > 0 {
		page = contexts[0].Pages()[0]
	} else {
		page, err = b.NewPage()
		if err != nil {
			return "", fmt.Errorf("open page: %w", err)
		}
	}

	if _, err := page.Goto("https://example.com"); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	title, err := page.Title()
	if err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return title, nil
}
