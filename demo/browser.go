package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentcore/browser"
	"github.com/hupe1980/agentcore/lifecycle"
)

// Browser walks through the managed browser lifecycle: start a session,
// wait for readiness, surface the stream URLs, optionally drive the browser
// over CDP, then stop the session.
func Browser(ctx context.Context, dc *Context) error {
	dc.banner("AgentCore Browser Demo")

	dc.step(1, "Starting browser session...")

	sess, err := dc.Browser.Start(ctx, browser.StartInput{
		Name: fmt.Sprintf("demo-session-%d", time.Now().Unix()),
	})
	if err != nil {
		return err
	}
	dc.ok("Session started: %s", sess.ID)

	release := lifecycle.NewReleaser(dc.log(), "browser session", func(ctx context.Context) error {
		dc.step(4, "Cleaning up session...")
		if err := dc.Browser.Stop(ctx, sess.Identifier, sess.ID); err != nil {
			dc.note("Cleanup note: %v", err)
			return err
		}
		dc.ok("Session stopped")
		return nil
	})
	defer release.Release(context.WithoutCancel(ctx))

	dc.note("Waiting for session to be ready...")
	ready, err := dc.Browser.WaitReady(ctx, sess.Identifier, sess.ID, progress(dc, func(s browser.Session) string {
		return string(s.Status)
	}))
	if err != nil {
		return err
	}
	dc.ok("Session is %s", ready.Status)

	dc.step(2, "Session URLs:")
	printStream(dc, "Automation WebSocket", ready.Streams.AutomationURL)
	printStream(dc, "Live View WebSocket", ready.Streams.LiveViewURL)

	dc.step(3, "Browser automation demo...")
	switch {
	case ready.Streams.AutomationURL == "":
		dc.note("(No automation URL available)")
	default:
		automate := dc.Automate
		if automate == nil {
			automate = playwrightAutomate
		}
		title, err := automate(ctx, ready.Streams.AutomationURL)
		var unavailable *automationUnavailableError
		switch {
		case errors.As(err, &unavailable):
			dc.note("(Playwright not installed - skipping automation demo)")
		case err != nil:
			return fmt.Errorf("browser automation: %w", err)
		default:
			dc.ok("Page title: %s", title)
		}
	}

	dc.printf("\n✓ Browser session working successfully!")
	return nil
}

func printStream(dc *Context, label, url string) {
	if url == "" {
		dc.note("- %s: (not available)", label)
		return
	}
	if len(url) > 60 {
		url = url[:60] + "..."
	}
	dc.note("- %s: %s", label, url)
}
