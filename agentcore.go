// Package agentcore provides a high-level façade over the per-resource
// AgentCore clients (browser, code interpreter, memory, gateway, agent
// runtime). Applications interact with this package by:
//  1. Loading configuration via config.Load
//  2. Creating an AgentCore via New() (optionally overriding the logger or
//     poll cadence)
//  3. Driving the resource clients, each of which follows the same
//     lifecycle: create, wait until ready, act, release
//
// There is no hidden global state; everything a demo needs hangs off the
// value returned by New.
package agentcore

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/hupe1980/agentcore/browser"
	"github.com/hupe1980/agentcore/config"
	"github.com/hupe1980/agentcore/gateway"
	"github.com/hupe1980/agentcore/interpreter"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/memory"
	"github.com/hupe1980/agentcore/runtime"
)

// Options configures the AgentCore façade.
type Options struct {
	// Logger used by every client (defaults to NoOp; demos inject a real one).
	Logger logging.Logger

	// PollInterval overrides the fixed status poll interval for every
	// client when positive.
	PollInterval time.Duration
}

// AgentCore aggregates one client per resource type, all sharing the same
// AWS configuration and logger.
type AgentCore struct {
	Browser     *browser.Client
	Interpreter *interpreter.Client
	Memory      *memory.Client
	Gateway     *gateway.Client
	Runtime     *runtime.Client
	STS         *sts.Client

	Logger logging.Logger
	Region string
}

// New creates the façade from a loaded configuration.
func New(cfg *config.Config, optFns ...func(o *Options)) *AgentCore {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentCore{
		Browser: browser.NewFromConfig(cfg.AWS, func(o *browser.Options) {
			o.Logger = opts.Logger
			if opts.PollInterval > 0 {
				o.PollInterval = opts.PollInterval
			}
		}),
		Interpreter: interpreter.NewFromConfig(cfg.AWS, func(o *interpreter.Options) {
			o.Logger = opts.Logger
			if opts.PollInterval > 0 {
				o.PollInterval = opts.PollInterval
			}
		}),
		Memory: memory.NewFromConfig(cfg.AWS, func(o *memory.Options) {
			o.Logger = opts.Logger
			if opts.PollInterval > 0 {
				o.PollInterval = opts.PollInterval
			}
		}),
		Gateway: gateway.NewFromConfig(cfg.AWS, func(o *gateway.Options) {
			o.Logger = opts.Logger
			if opts.PollInterval > 0 {
				o.PollInterval = opts.PollInterval
			}
		}),
		Runtime: runtime.NewFromConfig(cfg.AWS, func(o *runtime.Options) {
			o.Logger = opts.Logger
			if opts.PollInterval > 0 {
				o.PollInterval = opts.PollInterval
			}
		}),
		STS:    sts.NewFromConfig(cfg.AWS),
		Logger: opts.Logger,
		Region: cfg.Region,
	}
}
