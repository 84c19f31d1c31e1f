package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/poll"
)

// ProtocolMCP is the only gateway protocol the demos use.
const ProtocolMCP = "MCP"

// AuthorizerNone disables inbound auth; demo setting only, production
// gateways use IAM or JWT authorizers.
const AuthorizerNone = "NONE"

// Status is the closed set of gateway states the client understands. The
// service has reported both READY and ACTIVE for healthy gateways, so both
// classify as ready.
type Status string

const (
	StatusCreating Status = "CREATING"
	StatusReady    Status = "READY"
	StatusActive   Status = "ACTIVE"
	StatusFailed   Status = "FAILED"
	StatusDeleting Status = "DELETING"
	StatusDeleted  Status = "DELETED"
)

// Gateway is the resource handle plus last observed state.
type Gateway struct {
	ID            string
	ARN           string
	Name          string
	URL           string
	Status        Status
	StatusReasons []string
	CreatedAt     time.Time
}

// CreateInput configures gateway creation.
type CreateInput struct {
	Name        string
	Description string
	RoleARN     string
	Protocol    string
	Authorizer  string
}

// API is the collaborator contract against the control plane.
type API interface {
	Create(ctx context.Context, in CreateInput) (Gateway, error)
	// Get returns the current state. Once deletion has completed the
	// implementation reports StatusDeleted instead of an error.
	Get(ctx context.Context, gatewayID string) (Gateway, error)
	Delete(ctx context.Context, gatewayID string) error
}

// Options configures a Client.
type Options struct {
	Logger          logging.Logger
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Client layers readiness and deletion polling over the raw API.
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

// Create provisions a gateway, defaulting to MCP without inbound auth.
func (c *Client) Create(ctx context.Context, in CreateInput) (Gateway, error) {
	if in.Protocol == "" {
		in.Protocol = ProtocolMCP
	}
	if in.Authorizer == "" {
		in.Authorizer = AuthorizerNone
	}
	gw, err := c.api.Create(ctx, in)
	if err != nil {
		return Gateway{}, fmt.Errorf("create gateway: %w", err)
	}
	c.log.Info("gateway created", "gateway_id", gw.ID, "name", in.Name)
	return gw, nil
}

// Get fetches the current gateway state.
func (c *Client) Get(ctx context.Context, gatewayID string) (Gateway, error) {
	return c.api.Get(ctx, gatewayID)
}

// WaitReady polls until the gateway reports READY or ACTIVE.
func (c *Client) WaitReady(ctx context.Context, gatewayID string, onProgress func(attempt int, g Gateway)) (Gateway, error) {
	p := poll.Poller[Gateway]{
		Fetch: func(ctx context.Context) (Gateway, error) {
			return c.api.Get(ctx, gatewayID)
		},
		Classify: func(g Gateway) poll.State {
			switch g.Status {
			case StatusReady, StatusActive:
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

// Delete issues the deletion request without waiting.
func (c *Client) Delete(ctx context.Context, gatewayID string) error {
	if err := c.api.Delete(ctx, gatewayID); err != nil {
		return fmt.Errorf("delete gateway: %w", err)
	}
	c.log.Info("gateway deletion requested", "gateway_id", gatewayID)
	return nil
}

// DeleteAndWait deletes the gateway and polls until deletion completes.
// Deletion being asynchronous, a FAILED terminal state during teardown is
// treated as completion too; there is nothing further the caller can do.
func (c *Client) DeleteAndWait(ctx context.Context, gatewayID string, onProgress func(attempt int, g Gateway)) error {
	if err := c.Delete(ctx, gatewayID); err != nil {
		return err
	}

	p := poll.Poller[Gateway]{
		Fetch: func(ctx context.Context) (Gateway, error) {
			return c.api.Get(ctx, gatewayID)
		},
		Classify: func(g Gateway) poll.State {
			switch g.Status {
			case StatusDeleted, StatusFailed:
				return poll.StateReady
			default:
				return poll.StatePending
			}
		},
		Interval:    c.opts.PollInterval,
		MaxAttempts: c.opts.PollMaxAttempts,
		OnProgress:  onProgress,
	}
	if _, err := p.Wait(ctx); err != nil {
		return fmt.Errorf("wait for gateway deletion: %w", err)
	}
	c.log.Info("gateway deleted", "gateway_id", gatewayID)
	return nil
}
