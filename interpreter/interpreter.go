package interpreter

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/poll"
)

// DefaultIdentifier is the AWS managed code interpreter.
const DefaultIdentifier = "aws.codeinterpreter.v1"

// DefaultSessionTimeout bounds an idle session server-side.
const DefaultSessionTimeout = 15 * time.Minute

// LanguagePython selects the Python sandbox; the only language the demos use.
const LanguagePython = "python"

// Status is the closed set of interpreter session states.
type Status string

const (
	StatusReady      Status = "READY"
	StatusTerminated Status = "TERMINATED"
)

// Session is the opaque interpreter session handle.
type Session struct {
	ID         string
	Identifier string
	Name       string
	Status     Status
	CreatedAt  time.Time
}

// StartInput configures session creation.
type StartInput struct {
	Identifier string
	Name       string
	Timeout    time.Duration
}

// ExecuteInput is one code execution request.
type ExecuteInput struct {
	Language string
	Code     string
}

// Execution aggregates the result stream of one execution: the textual
// output in arrival order and whether the sandbox flagged an error.
type Execution struct {
	Output  string
	IsError bool
}

// API is the collaborator contract against the AgentCore data plane.
type API interface {
	StartSession(ctx context.Context, in StartInput) (Session, error)
	GetSession(ctx context.Context, identifier, sessionID string) (Session, error)
	Execute(ctx context.Context, identifier, sessionID string, in ExecuteInput) (Execution, error)
	StopSession(ctx context.Context, identifier, sessionID string) error
}

// Options configures a Client.
type Options struct {
	Logger          logging.Logger
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Client layers polling, defaults and logging over the raw API.
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

// Start creates a session, applying input defaults.
func (c *Client) Start(ctx context.Context, in StartInput) (Session, error) {
	if in.Identifier == "" {
		in.Identifier = DefaultIdentifier
	}
	if in.Timeout <= 0 {
		in.Timeout = DefaultSessionTimeout
	}
	sess, err := c.api.StartSession(ctx, in)
	if err != nil {
		return Session{}, fmt.Errorf("start code interpreter session: %w", err)
	}
	c.log.Info("code interpreter session started", "session_id", sess.ID, "interpreter_id", in.Identifier)
	return sess, nil
}

// WaitReady polls until the session reports READY.
func (c *Client) WaitReady(ctx context.Context, identifier, sessionID string, onProgress func(attempt int, s Session)) (Session, error) {
	p := poll.Poller[Session]{
		Fetch: func(ctx context.Context) (Session, error) {
			return c.api.GetSession(ctx, identifier, sessionID)
		},
		Classify: func(s Session) poll.State {
			switch s.Status {
			case StatusReady:
				return poll.StateReady
			case StatusTerminated:
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

// Execute runs code in the sandbox and returns the aggregated result. The
// language defaults to Python.
func (c *Client) Execute(ctx context.Context, identifier, sessionID string, in ExecuteInput) (Execution, error) {
	if in.Language == "" {
		in.Language = LanguagePython
	}
	exec, err := c.api.Execute(ctx, identifier, sessionID, in)
	if err != nil {
		return Execution{}, fmt.Errorf("invoke code interpreter: %w", err)
	}
	c.log.Info("code executed", "session_id", sessionID, "is_error", exec.IsError, "output_bytes", len(exec.Output))
	return exec, nil
}

// Stop releases the session.
func (c *Client) Stop(ctx context.Context, identifier, sessionID string) error {
	if err := c.api.StopSession(ctx, identifier, sessionID); err != nil {
		return fmt.Errorf("stop code interpreter session: %w", err)
	}
	c.log.Info("code interpreter session stopped", "session_id", sessionID)
	return nil
}
