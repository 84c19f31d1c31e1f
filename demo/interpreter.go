package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentcore/interpreter"
	"github.com/hupe1980/agentcore/lifecycle"
)

// verificationCode checks the answer from several directions inside the
// sandbox. Every expression evaluates to 42 when the universe is intact.
const verificationCode = `
calculations = [
    ("6 * 7", 6 * 7),
    ("84 / 2", int(84 / 2)),
    ("2 * 3 * 7", 2 * 3 * 7),
    ("6 ** 2 + 6", 6 ** 2 + 6),
    ("126 / 3", int(126 / 3)),
]

print("Verification Results:")
print("=" * 42)

all_42 = True
for expr, result in calculations:
    status = "CONFIRMED" if result == 42 else "ERROR"
    if result != 42:
        all_42 = False
    print(f"  {expr:>12} = {result:>4}  [{status}]")

print("=" * 42)
if all_42:
    print(f"  All {len(calculations)} calculations confirmed: The Answer is 42.")
else:
    print("  WARNING: The Universe may be broken.")
`

// bonusCode shows that six by nine really is 42, if you work in base 13.
const bonusCode = `
def base_convert(num, base):
    if num == 0:
        return "0"
    digits = []
    while num:
        digits.append(str(num % base))
        num //= base
    return "".join(reversed(digits))

print("The Question & The Answer:")
print(f"  6 x 9 = {6 * 9} (base 10)")
print(f"  42 in base 13 = {base_convert(42, 13)}")
print(f"  Bonus: 42 in binary = {bin(42)}")
print(f"  Bonus: 42 in hex = {hex(42)}")
`

// Interpreter walks through the code interpreter lifecycle: start a
// session, wait for readiness, run sandboxed Python, then stop the session.
func Interpreter(ctx context.Context, dc *Context) error {
	dc.banner("AgentCore Code Interpreter Demo")

	dc.step(1, "Starting Code Interpreter session...")

	sess, err := dc.Interpreter.Start(ctx, interpreter.StartInput{
		Name: fmt.Sprintf("demo-session-%d", time.Now().Unix()),
	})
	if err != nil {
		return err
	}
	dc.ok("Session started: %s", sess.ID)

	release := lifecycle.NewReleaser(dc.log(), "code interpreter session", func(ctx context.Context) error {
		dc.step(4, "Cleaning up session...")
		if err := dc.Interpreter.Stop(ctx, sess.Identifier, sess.ID); err != nil {
			dc.note("Cleanup note: %v", err)
			return err
		}
		dc.ok("Session stopped")
		return nil
	})
	defer release.Release(context.WithoutCancel(ctx))

	dc.note("Waiting for session to be ready...")
	if _, err := dc.Interpreter.WaitReady(ctx, sess.Identifier, sess.ID, progress(dc, func(s interpreter.Session) string {
		return string(s.Status)
	})); err != nil {
		return err
	}

	dc.step(2, "Executing Python code...")
	dc.printf("Code: Verify the answer from several directions")

	exec, err := dc.Interpreter.Execute(ctx, sess.Identifier, sess.ID, interpreter.ExecuteInput{
		Code: verificationCode,
	})
	if err != nil {
		return err
	}

	dc.step(3, "Results from sandboxed execution:")
	rule := strings.Repeat("-", 40)
	dc.printf("%s", rule)
	dc.printf("%s", strings.TrimRight(exec.Output, "\n"))
	if exec.IsError {
		dc.printf("(execution reported an error)")
	}
	dc.printf("%s", rule)

	dc.printf("\n[Bonus] The Question about six and nine...")
	bonus, err := dc.Interpreter.Execute(ctx, sess.Identifier, sess.ID, interpreter.ExecuteInput{
		Code: bonusCode,
	})
	if err != nil {
		return err
	}
	dc.printf("%s", strings.TrimRight(bonus.Output, "\n"))

	return nil
}
