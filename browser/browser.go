package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/poll"
)

// DefaultIdentifier is the AWS managed browser available in every enabled
// account without further setup.
const DefaultIdentifier = "aws.browser.v1"

// DefaultSessionTimeout bounds an idle session server-side.
const DefaultSessionTimeout = 15 * time.Minute

// Status is the closed set of browser session states the client understands.
// Unknown values are kept verbatim and treated as transient.
type Status string

const (
	StatusReady      Status = "READY"
	StatusTerminated Status = "TERMINATED"
)

// Streams are the WebSocket endpoints surfaced once a session is ready.
type Streams struct {
	// AutomationURL speaks the Chrome DevTools Protocol.
	AutomationURL string
	// LiveViewURL serves the human-watchable view of the same session.
	LiveViewURL string
}

// Session is the opaque handle plus the last observed remote state.
type Session struct {
	ID         string
	Identifier string
	Name       string
	Status     Status
	Streams    Streams
	CreatedAt  time.Time
}

// StartInput configures session creation. Zero values fall back to the
// managed browser identifier and the default timeout.
type StartInput struct {
	Identifier string
	Name       string
	Timeout    time.Duration
}

// API is the collaborator contract against the AgentCore data plane. The
// aws adapter implements it for production; tests supply fakes.
type API interface {
	StartSession(ctx context.Context, in StartInput) (Session, error)
	GetSession(ctx context.Context, identifier, sessionID string) (Session, error)
	StopSession(ctx context.Context, identifier, sessionID string) error
}

// Options configures a Client.
type Options struct {
	Logger          logging.Logger
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Client layers readiness polling and logging over the raw API.
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
		return Session{}, fmt.Errorf("start browser session: %w", err)
	}
	c.log.Info("browser session started", "session_id", sess.ID, "browser_id", in.Identifier)
	return sess, nil
}

// Get fetches the current session state.
func (c *Client) Get(ctx context.Context, identifier, sessionID string) (Session, error) {
	return c.api.GetSession(ctx, identifier, sessionID)
}

// WaitReady polls until the session reports READY. A TERMINATED session
// before readiness is a remote failure.
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

// Stop releases the session.
func (c *Client) Stop(ctx context.Context, identifier, sessionID string) error {
	if err := c.api.StopSession(ctx, identifier, sessionID); err != nil {
		return fmt.Errorf("stop browser session: %w", err)
	}
	c.log.Info("browser session stopped", "session_id", sessionID)
	return nil
}
