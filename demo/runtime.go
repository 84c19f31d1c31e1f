package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentcore/app"
	"github.com/hupe1980/agentcore/lifecycle"
	"github.com/hupe1980/agentcore/model"
	"github.com/hupe1980/agentcore/model/anthropic"
	"github.com/hupe1980/agentcore/model/openai"
	"github.com/hupe1980/agentcore/runtime"
)

// Runtime walks through agent runtime deployment: build the agent app, test
// it locally, and when a container image and execution role are configured
// run the full deploy/invoke/delete cycle against the service.
func Runtime(ctx context.Context, dc *Context) error {
	dc.banner("AgentCore Runtime - Agent Deployment Demo")

	dc.step(1, "Creating agent...")

	m := selectModel()
	dc.note("Model backend: %s (%s)", m.Info().Name, m.Info().Provider)

	entry := agentEntrypoint(m)
	dc.ok("Agent created successfully")

	dc.step(2, "Testing agent locally...")
	testPrompt := "What is 2 + 2?"
	dc.note("Test input: {\"prompt\": %q}", testPrompt)

	resp, err := entry(ctx, app.Request{Prompt: testPrompt, SessionID: "local-test"})
	if err != nil {
		return fmt.Errorf("local test: %w", err)
	}
	dc.note("Test output: %s", truncate(resp.Result, 80))
	dc.ok("Local test passed")

	if dc.RuntimeContainerURI == "" || dc.RuntimeRoleARN == "" {
		dc.step(3, "Deploy to AgentCore Runtime:")
		dc.note("Set AGENTCORE_RUNTIME_CONTAINER_URI and AGENTCORE_RUNTIME_ROLE_ARN")
		dc.note("to run the full deployment cycle against the service.")
		dc.printf("\n✓ Ready for deployment!")
		return nil
	}

	dc.step(3, "Deploying to AgentCore Runtime...")

	rt, err := dc.Runtime.Create(ctx, runtime.CreateInput{
		Name:         fmt.Sprintf("demo_agent_%d", time.Now().Unix()),
		Description:  "Demo agent runtime",
		ContainerURI: dc.RuntimeContainerURI,
		RoleARN:      dc.RuntimeRoleARN,
	})
	if err != nil {
		return err
	}
	dc.ok("Agent runtime created: %s", rt.ID)

	release := lifecycle.NewReleaser(dc.log(), "agent runtime", func(ctx context.Context) error {
		dc.step(5, "Cleaning up runtime...")
		if err := dc.Runtime.Delete(ctx, rt.ID); err != nil {
			dc.note("Cleanup note: %v", err)
			return err
		}
		dc.ok("Agent runtime deleted")
		return nil
	})
	defer release.Release(context.WithoutCancel(ctx))

	dc.note("Waiting for runtime to become ready...")
	ready, err := dc.Runtime.WaitReady(ctx, rt.ID, progress(dc, func(r runtime.Runtime) string {
		return string(r.Status)
	}))
	if err != nil {
		return err
	}
	dc.ok("Runtime is %s", ready.Status)

	dc.step(4, "Invoking deployed agent...")
	payload, err := json.Marshal(app.Request{Prompt: "Hello, AgentCore!"})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	body, err := dc.Runtime.Invoke(ctx, runtime.InvokeInput{
		RuntimeARN: ready.ARN,
		SessionID:  uuid.NewString(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	dc.ok("Response: %s", truncate(strings.TrimSpace(string(body)), 120))

	dc.printf("\n✓ Runtime working successfully!")
	return nil
}

// agentEntrypoint adapts a model into the runtime invocation contract.
func agentEntrypoint(m model.Model) app.Entrypoint {
	return func(ctx context.Context, req app.Request) (app.Response, error) {
		prompt := req.Prompt
		if prompt == "" {
			prompt = "Hello! How can I help you today?"
		}
		resp, err := m.Generate(ctx, model.Request{
			System:   "You are a helpful assistant. Be concise and friendly.",
			Messages: []model.Message{{Role: model.RoleUser, Text: prompt}},
		})
		if err != nil {
			return app.Response{}, err
		}
		return app.Response{Result: resp.Text, SessionID: req.SessionID}, nil
	}
}

// selectModel picks a provider from the ambient API keys, falling back to
// the deterministic mock so keyless runs still work end to end.
func selectModel() model.Model {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return anthropic.NewModel(func(o *anthropic.Options) { o.APIKey = key })
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return openai.NewModel(func(o *openai.Options) { o.APIKey = key })
	}
	return model.NewMock("Hello! I'm your AI assistant. 2 + 2 = 4.")
}
