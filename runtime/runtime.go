package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/poll"
)

// NetworkModePublic deploys the runtime with outbound internet access; the
// only mode the demos use.
const NetworkModePublic = "PUBLIC"

// DefaultQualifier selects the default runtime endpoint version.
const DefaultQualifier = "DEFAULT"

// Status is the closed set of agent runtime states the client understands.
type Status string

const (
	StatusCreating Status = "CREATING"
	StatusReady    Status = "READY"
	StatusFailed   Status = "FAILED"
	StatusDeleting Status = "DELETING"
)

// Runtime is the resource handle plus last observed state.
type Runtime struct {
	ID        string
	ARN       string
	Name      string
	Version   string
	Status    Status
	CreatedAt time.Time
}

// CreateInput configures runtime creation from a container image.
type CreateInput struct {
	Name         string
	Description  string
	ContainerURI string
	RoleARN      string
	NetworkMode  string
}

// InvokeInput addresses one request at a deployed runtime.
type InvokeInput struct {
	RuntimeARN string
	SessionID  string
	Qualifier  string
	Payload    []byte
}

// API is the collaborator contract: lifecycle on the control plane, Invoke
// on the data plane.
type API interface {
	Create(ctx context.Context, in CreateInput) (Runtime, error)
	Get(ctx context.Context, runtimeID string) (Runtime, error)
	Delete(ctx context.Context, runtimeID string) error
	Invoke(ctx context.Context, in InvokeInput) ([]byte, error)
}

// Options configures a Client.
type Options struct {
	Logger          logging.Logger
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Client layers readiness polling over the raw API.
type Client struct {
	api  API
	log  logging.Logger
	opts Options
}

// NewClient wraps an API implementation.
func NewClient(api API, optFns ...func(o *Options)) *Client {
	opts := Options{
		Logger:          logging.NoOpLogger{},
		PollInterval:    poll.DefaultInterval,
		PollMaxAttempts: poll.DefaultMaxAttempts,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{api: api, log: opts.Logger, opts: opts}
}

// NewFromConfig builds a Client backed by the AWS SDK.
func NewFromConfig(cfg aws.Config, optFns ...func(o *Options)) *Client {
	return NewClient(newAWSAPI(cfg), optFns...)
}

// Create deploys an agent runtime from a container image.
func (c *Client) Create(ctx context.Context, in CreateInput) (Runtime, error) {
	if in.NetworkMode == "" {
		in.NetworkMode = NetworkModePublic
	}
	rt, err := c.api.Create(ctx, in)
	if err != nil {
		return Runtime{}, fmt.Errorf("create agent runtime: %w", err)
	}
	c.log.Info("agent runtime created", "runtime_id", rt.ID, "name", in.Name)
	return rt, nil
}

// Get fetches the current runtime state.
func (c *Client) Get(ctx context.Context, runtimeID string) (Runtime, error) {
	return c.api.Get(ctx, runtimeID)
}

// WaitReady polls until the runtime reports READY.
func (c *Client) WaitReady(ctx context.Context, runtimeID string, onProgress func(attempt int, r Runtime)) (Runtime, error) {
	p := poll.Poller[Runtime]{
		Fetch: func(ctx context.Context) (Runtime, error) {
			return c.api.Get(ctx, runtimeID)
		},
		Classify: func(r Runtime) poll.State {
			switch r.Status {
			case StatusReady:
				return poll.StateReady
			case StatusFailed:
				return poll.StateFailed
			default:
				return poll.StatePending
			}
		},
		Interval:    c.opts.PollInterval,
		MaxAttempts: c.opts.PollMaxAttempts,
		OnProgress:  onProgress,
	}
	return p.Wait(ctx)
}

// Invoke sends a JSON payload to the runtime and returns the raw response.
func (c *Client) Invoke(ctx context.Context, in InvokeInput) ([]byte, error) {
	if in.Qualifier == "" {
		in.Qualifier = DefaultQualifier
	}
	body, err := c.api.Invoke(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("invoke agent runtime: %w", err)
	}
	c.log.Info("agent runtime invoked", "runtime_arn", in.RuntimeARN, "session_id", in.SessionID, "response_bytes", len(body))
	return body, nil
}

// Delete releases the runtime.
func (c *Client) Delete(ctx context.Context, runtimeID string) error {
	if err := c.api.Delete(ctx, runtimeID); err != nil {
		return fmt.Errorf("delete agent runtime: %w", err)
	}
	c.log.Info("agent runtime deleted", "runtime_id", runtimeID)
	return nil
}
