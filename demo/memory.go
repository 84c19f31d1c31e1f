package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentcore/lifecycle"
	"github.com/hupe1980/agentcore/memory"
)

// Memory walks through short-term and long-term memory: create a memory
// resource with a user-preference strategy, wait until it is active, store
// a conversation event, read it back, probe for extracted records, then
// delete the resource.
func Memory(ctx context.Context, dc *Context) error {
	dc.ok("AgentCore clients initialized")

	now := time.Now().Unix()
	name := fmt.Sprintf("MemoryExample_%d", now)

	dc.printf("\nCreating memory: %s...", name)
	mem, err := dc.Memory.Create(ctx, memory.CreateInput{
		Name:            name,
		Description:     "Demo memory for article example",
		EventExpiryDays: memory.MinEventExpiryDays,
		StrategyName:    "PreferenceLearner",
		Namespaces:      []string{"preferences"},
	})
	if err != nil {
		return err
	}
	dc.ok("Memory created: %s", mem.ID)

	release := lifecycle.NewReleaser(dc.log(), "memory", func(ctx context.Context) error {
		dc.printf("\nCleaning up: Deleting memory %s...", name)
		if err := dc.Memory.Delete(ctx, mem.ID); err != nil {
			dc.note("Cleanup note: %v", err)
			return err
		}
		dc.ok("Memory deleted successfully")
		return nil
	})
	defer release.Release(context.WithoutCancel(ctx))

	dc.printf("Waiting for memory to become active (this may take 2-3 minutes)...")
	if _, err := dc.Memory.WaitActive(ctx, mem.ID, progress(dc, func(m memory.Memory) string {
		return string(m.Status)
	})); err != nil {
		return err
	}
	dc.ok("Memory is active")

	actorID := "demo_user_123"
	sessionID := fmt.Sprintf("session_%d", now)

	dc.printf("\nStoring conversation event...")
	if _, err := dc.Memory.CreateEvent(ctx, mem.ID, memory.Event{
		ActorID:   actorID,
		SessionID: sessionID,
		Messages: []memory.Message{
			{Role: memory.RoleUser, Text: "I prefer window seats and vegetarian meals on flights"},
			{Role: memory.RoleAssistant, Text: "I've noted your preferences: window seats and vegetarian meals. I'll remember this for future bookings!"},
		},
	}); err != nil {
		return err
	}
	dc.ok("Event stored successfully")

	dc.printf("\nRetrieving short-term memory...")
	events, err := dc.Memory.ListEvents(ctx, mem.ID, actorID, sessionID)
	if err != nil {
		return err
	}
	dc.ok("Short-term events retrieved: %d event(s)", len(events))
	for _, ev := range events {
		for _, msg := range ev.Messages {
			dc.note("- %s: %s...", msg.Role, truncate(msg.Text, 50))
		}
	}

	// Extraction runs asynchronously server-side; an empty result right
	// after writing events is the expected outcome, not a failure.
	dc.printf("\nChecking for long-term memories (async extraction)...")
	records, err := dc.Memory.RetrieveRecords(ctx, mem.ID, "preferences", "travel preferences", 5)
	switch {
	case err != nil:
		dc.note("(Long-term retrieval: %s...)", truncate(err.Error(), 80))
	case len(records) > 0:
		dc.ok("Long-term memories found: %d", len(records))
		for _, rec := range records {
			dc.note("- %s...", truncate(rec.Text, 60))
		}
	default:
		dc.note("(Long-term extraction is async - memories will appear after processing)")
	}

	dc.printf("\n✓ Memory working successfully!")
	dc.printf("\nMemory ID: %s", mem.ID)
	return nil
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
