package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/poll"
)

// Provisioning can take minutes; the readiness budget is 150 attempts at
// the default two second interval (five minutes).
const DefaultWaitAttempts = 150

// Event TTL bounds accepted by the service, in days.
const (
	MinEventExpiryDays = 3
	MaxEventExpiryDays = 365
)

// Status is the closed set of memory states the client understands.
type Status string

const (
	StatusCreating Status = "CREATING"
	StatusActive   Status = "ACTIVE"
	StatusFailed   Status = "FAILED"
	StatusDeleting Status = "DELETING"
)

// Memory is the resource handle plus last observed state.
type Memory struct {
	ID            string
	ARN           string
	Name          string
	Description   string
	Status        Status
	FailureReason string
	CreatedAt     time.Time
}

// CreateInput configures memory creation. The demos use a single
// user-preference extraction strategy; its namespace is where long-term
// records land.
type CreateInput struct {
	Name            string
	Description     string
	EventExpiryDays int32
	StrategyName    string
	Namespaces      []string
}

// Role identifies the speaker of a conversational message.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// Message is one conversational turn inside an event payload.
type Message struct {
	Role Role
	Text string
}

// Event is a short-term memory entry scoped to an actor and session.
type Event struct {
	ID        string
	ActorID   string
	SessionID string
	Timestamp time.Time
	Messages  []Message
}

// Record is a long-term memory entry extracted asynchronously by the
// configured strategy.
type Record struct {
	ID         string
	Text       string
	Namespaces []string
	Score      float64
}

// API is the collaborator contract across the control and data planes.
type API interface {
	Create(ctx context.Context, in CreateInput) (Memory, error)
	Get(ctx context.Context, memoryID string) (Memory, error)
	Delete(ctx context.Context, memoryID string) error

	CreateEvent(ctx context.Context, memoryID string, ev Event) (Event, error)
	ListEvents(ctx context.Context, memoryID, actorID, sessionID string) ([]Event, error)
	RetrieveRecords(ctx context.Context, memoryID, namespace, query string, topK int32) ([]Record, error)
}

// Options configures a Client.
type Options struct {
	Logger          logging.Logger
	PollInterval    time.Duration
	PollMaxAttempts int
}

// Client layers activation polling and logging over the raw API.
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
		PollMaxAttempts: DefaultWaitAttempts,
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

// Create provisions a memory resource. EventExpiryDays is clamped to the
// service minimum when unset.
func (c *Client) Create(ctx context.Context, in CreateInput) (Memory, error) {
	if in.EventExpiryDays == 0 {
		in.EventExpiryDays = MinEventExpiryDays
	}
	mem, err := c.api.Create(ctx, in)
	if err != nil {
		return Memory{}, fmt.Errorf("create memory: %w", err)
	}
	c.log.Info("memory created", "memory_id", mem.ID, "name", in.Name)
	return mem, nil
}

// Get fetches the current resource state.
func (c *Client) Get(ctx context.Context, memoryID string) (Memory, error) {
	return c.api.Get(ctx, memoryID)
}

// WaitActive polls until the memory reports ACTIVE, failing fast on FAILED.
func (c *Client) WaitActive(ctx context.Context, memoryID string, onProgress func(attempt int, m Memory)) (Memory, error) {
	p := poll.Poller[Memory]{
		Fetch: func(ctx context.Context) (Memory, error) {
			return c.api.Get(ctx, memoryID)
		},
		Classify: func(m Memory) poll.State {
			switch m.Status {
			case StatusActive:
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

// CreateEvent stores one conversational event. A zero timestamp defaults to
// the current time.
func (c *Client) CreateEvent(ctx context.Context, memoryID string, ev Event) (Event, error) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	stored, err := c.api.CreateEvent(ctx, memoryID, ev)
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	c.log.Info("event stored", "memory_id", memoryID, "actor_id", ev.ActorID, "session_id", ev.SessionID)
	return stored, nil
}

// ListEvents returns the short-term events for one actor and session.
func (c *Client) ListEvents(ctx context.Context, memoryID, actorID, sessionID string) ([]Event, error) {
	events, err := c.api.ListEvents(ctx, memoryID, actorID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// RetrieveRecords searches long-term records in a namespace. Extraction is
// asynchronous; an empty result shortly after writing events is expected.
func (c *Client) RetrieveRecords(ctx context.Context, memoryID, namespace, query string, topK int32) ([]Record, error) {
	records, err := c.api.RetrieveRecords(ctx, memoryID, namespace, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve memory records: %w", err)
	}
	return records, nil
}

// Delete releases the memory resource.
func (c *Client) Delete(ctx context.Context, memoryID string) error {
	if err := c.api.Delete(ctx, memoryID); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	c.log.Info("memory deleted", "memory_id", memoryID)
	return nil
}
