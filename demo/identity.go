package demo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IdentityAPI is the slice of STS the demos use.
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CallerIdentity is the resolved AWS principal.
type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
}

// Whoami resolves the caller identity. Demos use it both as a cheap
// credentials check and to derive account-scoped ARNs.
func Whoami(ctx context.Context, api IdentityAPI) (CallerIdentity, error) {
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return CallerIdentity{}, fmt.Errorf("get caller identity: %w", err)
	}
	return CallerIdentity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}

// gatewayRoleARN returns the configured execution role, falling back to the
// conventional demo role in the caller's account. Role provisioning itself
// is out of scope; the role must already exist.
func gatewayRoleARN(configured, account string) string {
	if configured != "" {
		return configured
	}
	return fmt.Sprintf("arn:aws:iam::%s:role/agentcore-gateway-demo", account)
}
