package runtime

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/google/uuid"
)

// awsAPI implements API: runtime lifecycle on the control plane, Invoke on
// the data plane.
type awsAPI struct {
	control *bedrockagentcorecontrol.Client
	data    *bedrockagentcore.Client
}

var _ API = (*awsAPI)(nil)

func newAWSAPI(cfg aws.Config) *awsAPI {
	return &awsAPI{
		control: bedrockagentcorecontrol.NewFromConfig(cfg),
		data:    bedrockagentcore.NewFromConfig(cfg),
	}
}

func (a *awsAPI) Create(ctx context.Context, in CreateInput) (Runtime, error) {
	out, err := a.control.CreateAgentRuntime(ctx, &bedrockagentcorecontrol.CreateAgentRuntimeInput{
		AgentRuntimeName: aws.String(in.Name),
		Description:      aws.String(in.Description),
		RoleArn:          aws.String(in.RoleARN),
		AgentRuntimeArtifact: &controltypes.AgentRuntimeArtifactMemberContainerConfiguration{
			Value: controltypes.ContainerConfiguration{
				ContainerUri: aws.String(in.ContainerURI),
			},
		},
		NetworkConfiguration: &controltypes.NetworkConfiguration{
			NetworkMode: controltypes.NetworkMode(in.NetworkMode),
		},
		ClientToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		return Runtime{}, err
	}
	return Runtime{
		ID:        aws.ToString(out.AgentRuntimeId),
		ARN:       aws.ToString(out.AgentRuntimeArn),
		Name:      in.Name,
		Version:   aws.ToString(out.AgentRuntimeVersion),
		Status:    Status(out.Status),
		CreatedAt: aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) Get(ctx context.Context, runtimeID string) (Runtime, error) {
	out, err := a.control.GetAgentRuntime(ctx, &bedrockagentcorecontrol.GetAgentRuntimeInput{
		AgentRuntimeId: aws.String(runtimeID),
	})
	if err != nil {
		return Runtime{}, err
	}
	return Runtime{
		ID:        aws.ToString(out.AgentRuntimeId),
		ARN:       aws.ToString(out.AgentRuntimeArn),
		Name:      aws.ToString(out.AgentRuntimeName),
		Version:   aws.ToString(out.AgentRuntimeVersion),
		Status:    Status(out.Status),
		CreatedAt: aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) Delete(ctx context.Context, runtimeID string) error {
	_, err := a.control.DeleteAgentRuntime(ctx, &bedrockagentcorecontrol.DeleteAgentRuntimeInput{
		AgentRuntimeId: aws.String(runtimeID),
	})
	return err
}

func (a *awsAPI) Invoke(ctx context.Context, in InvokeInput) ([]byte, error) {
	out, err := a.data.InvokeAgentRuntime(ctx, &bedrockagentcore.InvokeAgentRuntimeInput{
		AgentRuntimeArn:  aws.String(in.RuntimeARN),
		RuntimeSessionId: aws.String(in.SessionID),
		Qualifier:        aws.String(in.Qualifier),
		Payload:          in.Payload,
		ContentType:      aws.String("application/json"),
		Accept:           aws.String("application/json"),
	})
	if err != nil {
		return nil, err
	}
	defer out.Response.Close()
	return io.ReadAll(out.Response)
}
