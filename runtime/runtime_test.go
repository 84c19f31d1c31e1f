package runtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcore/internal/testutil"
	"github.com/hupe1980/agentcore/poll"
)

type fakeAPI struct {
	statuses *testutil.Sequence[Status]
	deletes  testutil.CallRecorder
	created  CreateInput
	invoked  InvokeInput
}

var _ API = (*fakeAPI)(nil)

func (f *fakeAPI) Create(_ context.Context, in CreateInput) (Runtime, error) {
	f.created = in
	return Runtime{ID: "rt-1", ARN: "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/rt-1", Name: in.Name, Status: StatusCreating}, nil
}

func (f *fakeAPI) Get(_ context.Context, runtimeID string) (Runtime, error) {
	return Runtime{ID: runtimeID, Status: f.statuses.Next()}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, _ string) error {
	return f.deletes.Call(ctx)
}

func (f *fakeAPI) Invoke(_ context.Context, in InvokeInput) ([]byte, error) {
	f.invoked = in
	return json.Marshal(map[string]string{"result": "The Answer is 42."})
}

func newTestClient(api API) *Client {
	return NewClient(api, func(o *Options) {
		o.PollInterval = time.Millisecond
		o.PollMaxAttempts = 5
	})
}

func TestCreate_DefaultsNetworkMode(t *testing.T) {
	api := &fakeAPI{statuses: testutil.NewSequence(StatusReady)}
	c := newTestClient(api)

	rt, err := c.Create(context.Background(), CreateInput{
		Name:         "demo_agent",
		ContainerURI: "123456789012.dkr.ecr.us-east-1.amazonaws.com/agent:latest",
		RoleARN:      "arn:aws:iam::123456789012:role/demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "rt-1", rt.ID)
	assert.Equal(t, NetworkModePublic, api.created.NetworkMode)
}

func TestWaitReady_CreatingThenReady(t *testing.T) {
	api := &fakeAPI{statuses: testutil.NewSequence(StatusCreating, StatusCreating, StatusReady)}
	c := newTestClient(api)

	rt, err := c.WaitReady(context.Background(), "rt-1", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, rt.Status)
}

func TestWaitReady_FailedIsTerminal(t *testing.T) {
	api := &fakeAPI{statuses: testutil.NewSequence(StatusFailed)}
	c := newTestClient(api)

	_, err := c.WaitReady(context.Background(), "rt-1", nil)
	var failure *poll.FailureError
	require.ErrorAs(t, err, &failure)
}

func TestInvoke_DefaultsQualifier(t *testing.T) {
	api := &fakeAPI{statuses: testutil.NewSequence(StatusReady)}
	c := newTestClient(api)

	body, err := c.Invoke(context.Background(), InvokeInput{
		RuntimeARN: "arn:aws:bedrock-agentcore:us-east-1:123456789012:runtime/rt-1",
		SessionID:  "demo-session-001",
		Payload:    []byte(`{"prompt":"What is 6 x 7?"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultQualifier, api.invoked.Qualifier)
	assert.Contains(t, string(body), "42")
}

func TestDelete_Recorded(t *testing.T) {
	api := &fakeAPI{statuses: testutil.NewSequence(StatusReady)}
	c := newTestClient(api)

	require.NoError(t, c.Delete(context.Background(), "rt-1"))
	assert.Equal(t, 1, api.deletes.Calls())
}
