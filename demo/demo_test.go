package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcore/browser"
	"github.com/hupe1980/agentcore/gateway"
	"github.com/hupe1980/agentcore/interpreter"
	"github.com/hupe1980/agentcore/memory"
	"github.com/hupe1980/agentcore/runtime"
)

// --- browser fakes ---

type fakeBrowserAPI struct {
	statuses []browser.Status
	calls    int
	stopped  int
	startErr error
}

func (f *fakeBrowserAPI) StartSession(_ context.Context, in browser.StartInput) (browser.Session, error) {
	if f.startErr != nil {
		return browser.Session{}, f.startErr
	}
	return browser.Session{ID: "session-123", Identifier: in.Identifier, Name: in.Name, Status: "CREATING"}, nil
}

func (f *fakeBrowserAPI) GetSession(_ context.Context, identifier, sessionID string) (browser.Session, error) {
	st := f.statuses[min(f.calls, len(f.statuses)-1)]
	f.calls++
	return browser.Session{
		ID:         sessionID,
		Identifier: identifier,
		Status:     st,
		Streams: browser.Streams{
			AutomationURL: "wss://automation.example/cdp",
			LiveViewURL:   "wss://live.example/view",
		},
	}, nil
}

func (f *fakeBrowserAPI) StopSession(context.Context, string, string) error {
	f.stopped++
	return nil
}

func newTestContext(out *bytes.Buffer) *Context {
	return &Context{Out: out, Region: "us-east-1"}
}

func TestBrowser_FullWalkthrough(t *testing.T) {
	api := &fakeBrowserAPI{statuses: []browser.Status{"CREATING", browser.StatusReady}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Browser = browser.NewClient(api, func(o *browser.Options) { o.PollInterval = time.Millisecond })
	dc.Automate = func(context.Context, string) (string, error) { return "Example Domain", nil }

	require.NoError(t, Browser(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ Session started: session-123")
	assert.Contains(t, out.String(), "✓ Session is READY")
	assert.Contains(t, out.String(), "✓ Page title: Example Domain")
	assert.Contains(t, out.String(), "✓ Session stopped")
	assert.Equal(t, 1, api.stopped)
}

func TestBrowser_CleanupRunsWhenSessionFails(t *testing.T) {
	api := &fakeBrowserAPI{statuses: []browser.Status{browser.StatusTerminated}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Browser = browser.NewClient(api, func(o *browser.Options) { o.PollInterval = time.Millisecond })

	err := Browser(context.Background(), dc)
	require.Error(t, err)
	assert.Equal(t, 1, api.stopped, "session must be stopped even when readiness fails")
}

func TestBrowser_AutomationUnavailableIsNotFatal(t *testing.T) {
	api := &fakeBrowserAPI{statuses: []browser.Status{browser.StatusReady}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Browser = browser.NewClient(api, func(o *browser.Options) { o.PollInterval = time.Millisecond })
	dc.Automate = func(context.Context, string) (string, error) {
		return "", &automationUnavailableError{cause: errors.New("driver missing")}
	}

	require.NoError(t, Browser(context.Background(), dc))
	assert.Contains(t, out.String(), "skipping automation demo")
}

// --- interpreter fakes ---

type fakeInterpreterAPI struct {
	executions []interpreter.Execution
	execErr    error
	execCalls  int
	stopped    int
}

func (f *fakeInterpreterAPI) StartSession(_ context.Context, in interpreter.StartInput) (interpreter.Session, error) {
	return interpreter.Session{ID: "ci-session-123", Identifier: in.Identifier, Status: interpreter.StatusReady}, nil
}

func (f *fakeInterpreterAPI) GetSession(_ context.Context, identifier, sessionID string) (interpreter.Session, error) {
	return interpreter.Session{ID: sessionID, Identifier: identifier, Status: interpreter.StatusReady}, nil
}

func (f *fakeInterpreterAPI) Execute(context.Context, string, string, interpreter.ExecuteInput) (interpreter.Execution, error) {
	if f.execErr != nil {
		return interpreter.Execution{}, f.execErr
	}
	exec := f.executions[min(f.execCalls, len(f.executions)-1)]
	f.execCalls++
	return exec, nil
}

func (f *fakeInterpreterAPI) StopSession(context.Context, string, string) error {
	f.stopped++
	return nil
}

func TestInterpreter_OutputsTheAnswer(t *testing.T) {
	api := &fakeInterpreterAPI{executions: []interpreter.Execution{
		{Output: "Verification Results:\n  6 * 7 = 42  [CONFIRMED]\n  All 5 calculations confirmed: The Answer is 42.\n"},
		{Output: "  6 x 9 = 54 (base 10)\n  42 in base 13 = 33\n"},
	}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Interpreter = interpreter.NewClient(api, func(o *interpreter.Options) { o.PollInterval = time.Millisecond })

	require.NoError(t, Interpreter(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ Session started: ci-session-123")
	assert.Contains(t, out.String(), "42")
	assert.Contains(t, out.String(), "✓ Session stopped")
	assert.Equal(t, 2, api.execCalls)
	assert.Equal(t, 1, api.stopped)
}

func TestInterpreter_CleanupRunsWhenExecutionFails(t *testing.T) {
	api := &fakeInterpreterAPI{}
	api.execErr = errors.New("sandbox crashed")
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Interpreter = interpreter.NewClient(api, func(o *interpreter.Options) { o.PollInterval = time.Millisecond })

	err := Interpreter(context.Background(), dc)
	require.Error(t, err)
	assert.Equal(t, 1, api.stopped, "session must be stopped even when execution fails")
}

// --- memory fakes ---

type fakeMemoryAPI struct {
	statuses []memory.Status
	getCalls int
	events   []memory.Event
	records  []memory.Record
	deleted  int
}

func (f *fakeMemoryAPI) Create(_ context.Context, in memory.CreateInput) (memory.Memory, error) {
	return memory.Memory{ID: "mem-123", Name: in.Name, Status: memory.StatusCreating}, nil
}

func (f *fakeMemoryAPI) Get(_ context.Context, memoryID string) (memory.Memory, error) {
	st := f.statuses[min(f.getCalls, len(f.statuses)-1)]
	f.getCalls++
	return memory.Memory{ID: memoryID, Status: st}, nil
}

func (f *fakeMemoryAPI) Delete(context.Context, string) error {
	f.deleted++
	return nil
}

func (f *fakeMemoryAPI) CreateEvent(_ context.Context, _ string, ev memory.Event) (memory.Event, error) {
	ev.ID = fmt.Sprintf("event-%d", len(f.events)+1)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeMemoryAPI) ListEvents(context.Context, string, string, string) ([]memory.Event, error) {
	return f.events, nil
}

func (f *fakeMemoryAPI) RetrieveRecords(context.Context, string, string, string, int32) ([]memory.Record, error) {
	return f.records, nil
}

func TestMemory_FullWalkthrough(t *testing.T) {
	api := &fakeMemoryAPI{statuses: []memory.Status{memory.StatusCreating, memory.StatusCreating, memory.StatusActive}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Memory = memory.NewClient(api, func(o *memory.Options) { o.PollInterval = time.Millisecond })

	require.NoError(t, Memory(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ AgentCore clients initialized")
	assert.Contains(t, out.String(), "✓ Memory created: mem-123")
	assert.Contains(t, out.String(), "✓ Memory is active")
	assert.Contains(t, out.String(), "✓ Event stored successfully")
	assert.Contains(t, out.String(), "✓ Short-term events retrieved: 1 event(s)")
	assert.Contains(t, out.String(), "✓ Memory deleted successfully")
	assert.Equal(t, 1, api.deleted)
	require.Len(t, api.events, 1)
	assert.Len(t, api.events[0].Messages, 2)
}

func TestMemory_CleanupRunsWhenActivationFails(t *testing.T) {
	api := &fakeMemoryAPI{statuses: []memory.Status{memory.StatusFailed}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Memory = memory.NewClient(api, func(o *memory.Options) { o.PollInterval = time.Millisecond })

	err := Memory(context.Background(), dc)
	require.Error(t, err)
	assert.Equal(t, 1, api.deleted, "memory must be deleted even when activation fails")
}

func TestMemory_RecordsShownWhenExtracted(t *testing.T) {
	api := &fakeMemoryAPI{
		statuses: []memory.Status{memory.StatusActive},
		records:  []memory.Record{{ID: "rec-1", Text: "Prefers window seats", Score: 0.9}},
	}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Memory = memory.NewClient(api, func(o *memory.Options) { o.PollInterval = time.Millisecond })

	require.NoError(t, Memory(context.Background(), dc))
	assert.Contains(t, out.String(), "✓ Long-term memories found: 1")
}

// --- gateway fakes ---

type fakeGatewayAPI struct {
	createStatuses []gateway.Status
	deleteStatuses []gateway.Status
	getCalls       int
	deleted        int
	createIn       gateway.CreateInput
}

func (f *fakeGatewayAPI) Create(_ context.Context, in gateway.CreateInput) (gateway.Gateway, error) {
	f.createIn = in
	return gateway.Gateway{ID: "gw-123", Name: in.Name, Status: gateway.StatusCreating}, nil
}

func (f *fakeGatewayAPI) Get(_ context.Context, gatewayID string) (gateway.Gateway, error) {
	statuses := f.createStatuses
	if f.deleted > 0 {
		statuses = f.deleteStatuses
	}
	st := statuses[min(f.getCalls, len(statuses)-1)]
	f.getCalls++
	return gateway.Gateway{
		ID:     gatewayID,
		URL:    "https://gw-123.gateway.bedrock-agentcore.us-east-1.amazonaws.com",
		Status: st,
	}, nil
}

func (f *fakeGatewayAPI) Delete(context.Context, string) error {
	f.deleted++
	f.getCalls = 0
	return nil
}

type fakeIdentityAPI struct{ account string }

func (f *fakeIdentityAPI) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{
		Account: aws.String(f.account),
		Arn:     aws.String("arn:aws:iam::" + f.account + ":user/demo"),
		UserId:  aws.String("AIDACKCEVSQ6C2EXAMPLE"),
	}, nil
}

func TestGateway_FullWalkthrough(t *testing.T) {
	api := &fakeGatewayAPI{
		createStatuses: []gateway.Status{gateway.StatusCreating, gateway.StatusReady},
		deleteStatuses: []gateway.Status{gateway.StatusDeleting, gateway.StatusDeleted},
	}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Gateway = gateway.NewClient(api, func(o *gateway.Options) { o.PollInterval = time.Millisecond })
	dc.Identity = &fakeIdentityAPI{account: "123456789012"}

	require.NoError(t, Gateway(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ Gateway created: gw-123")
	assert.Contains(t, out.String(), "✓ Gateway is READY")
	assert.Contains(t, out.String(), "✓ Gateway deleted")
	assert.Equal(t, "arn:aws:iam::123456789012:role/agentcore-gateway-demo", api.createIn.RoleARN)
	assert.Equal(t, gateway.ProtocolMCP, api.createIn.Protocol)
	assert.Equal(t, 1, api.deleted)
}

func TestGateway_ConfiguredRoleWins(t *testing.T) {
	api := &fakeGatewayAPI{
		createStatuses: []gateway.Status{gateway.StatusActive},
		deleteStatuses: []gateway.Status{gateway.StatusDeleted},
	}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Gateway = gateway.NewClient(api, func(o *gateway.Options) { o.PollInterval = time.Millisecond })
	dc.Identity = &fakeIdentityAPI{account: "123456789012"}
	dc.GatewayRoleARN = "arn:aws:iam::123456789012:role/custom-role"

	require.NoError(t, Gateway(context.Background(), dc))
	assert.Equal(t, "arn:aws:iam::123456789012:role/custom-role", api.createIn.RoleARN)
}

func TestGateway_CleanupRunsWhenReadinessFails(t *testing.T) {
	api := &fakeGatewayAPI{
		createStatuses: []gateway.Status{gateway.StatusFailed},
		deleteStatuses: []gateway.Status{gateway.StatusDeleted},
	}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Gateway = gateway.NewClient(api, func(o *gateway.Options) { o.PollInterval = time.Millisecond })
	dc.Identity = &fakeIdentityAPI{account: "123456789012"}

	err := Gateway(context.Background(), dc)
	require.Error(t, err)
	assert.Equal(t, 1, api.deleted, "gateway must be deleted even when readiness fails")
}

// --- runtime fakes ---

type fakeRuntimeAPI struct {
	statuses []runtime.Status
	getCalls int
	deleted  int
	invoked  int
	createIn runtime.CreateInput
}

func (f *fakeRuntimeAPI) Create(_ context.Context, in runtime.CreateInput) (runtime.Runtime, error) {
	f.createIn = in
	return runtime.Runtime{ID: "rt-123", ARN: "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/rt-123", Status: runtime.StatusCreating}, nil
}

func (f *fakeRuntimeAPI) Get(_ context.Context, runtimeID string) (runtime.Runtime, error) {
	st := f.statuses[min(f.getCalls, len(f.statuses)-1)]
	f.getCalls++
	return runtime.Runtime{ID: runtimeID, ARN: "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/rt-123", Status: st}, nil
}

func (f *fakeRuntimeAPI) Delete(context.Context, string) error {
	f.deleted++
	return nil
}

func (f *fakeRuntimeAPI) Invoke(context.Context, runtime.InvokeInput) ([]byte, error) {
	f.invoked++
	return json.Marshal(map[string]string{"result": "Hello from the cloud!"})
}

func TestRuntime_LocalTestOnly(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	var out bytes.Buffer

	dc := newTestContext(&out)

	require.NoError(t, Runtime(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ Agent created successfully")
	assert.Contains(t, out.String(), "✓ Local test passed")
	assert.Contains(t, out.String(), "✓ Ready for deployment!")
}

func TestRuntime_DeployCycle(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	api := &fakeRuntimeAPI{statuses: []runtime.Status{runtime.StatusCreating, runtime.StatusReady}}
	var out bytes.Buffer

	dc := newTestContext(&out)
	dc.Runtime = runtime.NewClient(api, func(o *runtime.Options) { o.PollInterval = time.Millisecond })
	dc.RuntimeContainerURI = "123456789012.dkr.ecr.us-east-1.amazonaws.com/demo-agent:latest"
	dc.RuntimeRoleARN = "arn:aws:iam::123456789012:role/agentcore-runtime-demo"

	require.NoError(t, Runtime(context.Background(), dc))

	assert.Contains(t, out.String(), "✓ Agent runtime created: rt-123")
	assert.Contains(t, out.String(), "✓ Runtime is READY")
	assert.Contains(t, out.String(), "Hello from the cloud!")
	assert.Contains(t, out.String(), "✓ Agent runtime deleted")
	assert.Equal(t, dc.RuntimeContainerURI, api.createIn.ContainerURI)
	assert.Equal(t, 1, api.invoked)
	assert.Equal(t, 1, api.deleted)
}

// --- harness ---

func TestRun_MapsErrorsToExitCode(t *testing.T) {
	var out bytes.Buffer
	dc := newTestContext(&out)

	code := Run(context.Background(), dc, func(context.Context, *Context) error {
		return errors.New("boom")
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "❌ Error: boom")

	code = Run(context.Background(), dc, func(context.Context, *Context) error { return nil })
	assert.Equal(t, 0, code)
}

func TestTruncate_KeepsRunesIntact(t *testing.T) {
	s := "Fenêtre côté hublot, repas végétarien"

	got := truncate(s, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, string([]rune(s)[:10]), got)

	assert.Equal(t, s, truncate(s, len(s)+1))
}

func TestRenderError_AccessDeniedHints(t *testing.T) {
	err := fmt.Errorf("create gateway: %w", &smithy.GenericAPIError{
		Code:    "AccessDeniedException",
		Message: "not authorized",
	})

	msg := renderError(err)
	assert.Contains(t, msg, "AWS Error (AccessDeniedException)")
	assert.Contains(t, msg, "Troubleshooting:")
	assert.Contains(t, msg, "bedrock-agentcore permissions")
}
