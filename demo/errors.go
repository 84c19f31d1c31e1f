package demo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// renderError turns a demo failure into the multi-line message printed to
// the user. AWS service errors surface their code and message; access
// denials additionally get troubleshooting hints.
func renderError(err error) string {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("\n❌ Error: %v", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n❌ AWS Error (%s): %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	if strings.Contains(apiErr.ErrorCode(), "AccessDenied") {
		sb.WriteString("\n\nTroubleshooting:")
		sb.WriteString("\n  1. Ensure your IAM user/role has bedrock-agentcore permissions")
		sb.WriteString("\n  2. Check that AgentCore is enabled in your AWS account")
		sb.WriteString("\n  3. Verify you're in a supported region (us-east-1, us-west-2)")
	}
	return sb.String()
}
