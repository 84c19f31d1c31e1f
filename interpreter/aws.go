package interpreter

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore/types"
	"github.com/google/uuid"
)

// awsAPI implements API with the vendor SDK.
type awsAPI struct {
	client *bedrockagentcore.Client
}

var _ API = (*awsAPI)(nil)

func newAWSAPI(cfg aws.Config) *awsAPI {
	return &awsAPI{client: bedrockagentcore.NewFromConfig(cfg)}
}

func (a *awsAPI) StartSession(ctx context.Context, in StartInput) (Session, error) {
	out, err := a.client.StartCodeInterpreterSession(ctx, &bedrockagentcore.StartCodeInterpreterSessionInput{
		CodeInterpreterIdentifier: aws.String(in.Identifier),
		Name:                      aws.String(in.Name),
		SessionTimeoutSeconds:     aws.Int32(int32(in.Timeout.Seconds())),
		ClientToken:               aws.String(uuid.NewString()),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:         aws.ToString(out.SessionId),
		Identifier: in.Identifier,
		Name:       in.Name,
		CreatedAt:  aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) GetSession(ctx context.Context, identifier, sessionID string) (Session, error) {
	out, err := a.client.GetCodeInterpreterSession(ctx, &bedrockagentcore.GetCodeInterpreterSessionInput{
		CodeInterpreterIdentifier: aws.String(identifier),
		SessionId:                 aws.String(sessionID),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:         aws.ToString(out.SessionId),
		Identifier: identifier,
		Name:       aws.ToString(out.Name),
		Status:     Status(out.Status),
		CreatedAt:  aws.ToTime(out.CreatedAt),
	}, nil
}

// Execute invokes the executeCode tool and drains the result event stream
// into a single Execution.
func (a *awsAPI) Execute(ctx context.Context, identifier, sessionID string, in ExecuteInput) (Execution, error) {
	out, err := a.client.InvokeCodeInterpreter(ctx, &bedrockagentcore.InvokeCodeInterpreterInput{
		CodeInterpreterIdentifier: aws.String(identifier),
		SessionId:                 aws.String(sessionID),
		Name:                      types.ToolName("executeCode"),
		Arguments: &types.ToolArguments{
			Language: types.ProgrammingLanguage(in.Language),
			Code:     aws.String(in.Code),
		},
	})
	if err != nil {
		return Execution{}, err
	}

	stream := out.GetStream()
	defer stream.Close()

	exec := executionFrom(stream.Events())
	if err := stream.Err(); err != nil {
		return Execution{}, err
	}
	return exec, nil
}

// executionFrom drains result events into one Execution, concatenating text
// content blocks in arrival order and latching the error flag.
func executionFrom(events <-chan types.CodeInterpreterStreamOutput) Execution {
	var exec Execution
	var sb strings.Builder
	for event := range events {
		result, ok := event.(*types.CodeInterpreterStreamOutputMemberResult)
		if !ok {
			continue
		}
		if aws.ToBool(result.Value.IsError) {
			exec.IsError = true
		}
		for _, block := range result.Value.Content {
			if block.Type == types.ContentBlockTypeText {
				sb.WriteString(aws.ToString(block.Text))
			}
		}
	}
	exec.Output = sb.String()
	return exec
}

func (a *awsAPI) StopSession(ctx context.Context, identifier, sessionID string) error {
	_, err := a.client.StopCodeInterpreterSession(ctx, &bedrockagentcore.StopCodeInterpreterSessionInput{
		CodeInterpreterIdentifier: aws.String(identifier),
		SessionId:                 aws.String(sessionID),
		ClientToken:               aws.String(uuid.NewString()),
	})
	return err
}
