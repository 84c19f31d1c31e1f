package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	agentcore "github.com/hupe1980/agentcore"
	"github.com/hupe1980/agentcore/browser"
	"github.com/hupe1980/agentcore/config"
	"github.com/hupe1980/agentcore/gateway"
	"github.com/hupe1980/agentcore/interpreter"
	"github.com/hupe1980/agentcore/logging"
	"github.com/hupe1980/agentcore/memory"
	"github.com/hupe1980/agentcore/runtime"
)

// Context bundles everything a demo body needs. Tests populate it with
// clients built over fake APIs; mains use NewContext.
type Context struct {
	Browser     *browser.Client
	Interpreter *interpreter.Client
	Memory      *memory.Client
	Gateway     *gateway.Client
	Runtime     *runtime.Client

	// Identity resolves the caller's AWS account; nil skips the lookup.
	Identity IdentityAPI

	// Automate connects to a browser session's CDP endpoint and returns the
	// landing page title. Nil selects the Playwright implementation.
	Automate func(ctx context.Context, cdpURL string) (string, error)

	// Out receives the human readable walkthrough output.
	Out io.Writer

	Logger logging.Logger
	Region string

	GatewayRoleARN      string
	RuntimeContainerURI string
	RuntimeRoleARN      string
}

// NewContext wires a Context from the façade and loaded configuration.
func NewContext(ac *agentcore.AgentCore, cfg *config.Config) *Context {
	return &Context{
		Browser:             ac.Browser,
		Interpreter:         ac.Interpreter,
		Memory:              ac.Memory,
		Gateway:             ac.Gateway,
		Runtime:             ac.Runtime,
		Identity:            ac.STS,
		Out:                 os.Stdout,
		Logger:              ac.Logger,
		Region:              cfg.Region,
		GatewayRoleARN:      cfg.GatewayRoleARN,
		RuntimeContainerURI: cfg.RuntimeContainerURI,
		RuntimeRoleARN:      cfg.RuntimeRoleARN,
	}
}

func (dc *Context) out() io.Writer {
	if dc.Out == nil {
		return io.Discard
	}
	return dc.Out
}

func (dc *Context) log() logging.Logger {
	if dc.Logger == nil {
		return logging.NoOpLogger{}
	}
	return dc.Logger
}

func (dc *Context) printf(format string, args ...any) {
	fmt.Fprintf(dc.out(), format+"\n", args...)
}

// banner frames a demo title between rule lines.
func (dc *Context) banner(title string) {
	rule := strings.Repeat("=", 60)
	dc.printf("%s", rule)
	dc.printf("%s", title)
	dc.printf("%s", rule)
}

// step announces a numbered phase of the walkthrough.
func (dc *Context) step(n int, text string) {
	dc.printf("\n[Step %d] %s", n, text)
}

// ok prints a stable success marker; tests key off these lines.
func (dc *Context) ok(format string, args ...any) {
	dc.printf("✓ "+format, args...)
}

// note prints indented auxiliary detail.
func (dc *Context) note(format string, args ...any) {
	dc.printf("  "+format, args...)
}

// progress returns an OnProgress callback that prints the last observed
// status every tenth attempt, keeping long waits visibly alive.
func progress[T any](dc *Context, status func(T) string) func(attempt int, last T) {
	return func(attempt int, last T) {
		if attempt%10 == 0 {
			dc.note("Status: %s...", status(last))
		}
	}
}

// Run executes one demo body and maps its outcome to a process exit code,
// rendering AWS errors with troubleshooting hints.
func Run(ctx context.Context, dc *Context, body func(context.Context, *Context) error) int {
	if err := body(ctx, dc); err != nil {
		dc.printf("%s", renderError(err))
		return 1
	}
	return 0
}
