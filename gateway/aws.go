package gateway

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

// awsAPI implements API with the vendor SDK.
type awsAPI struct {
	client *bedrockagentcorecontrol.Client
}

var _ API = (*awsAPI)(nil)

func newAWSAPI(cfg aws.Config) *awsAPI {
	return &awsAPI{client: bedrockagentcorecontrol.NewFromConfig(cfg)}
}

func (a *awsAPI) Create(ctx context.Context, in CreateInput) (Gateway, error) {
	out, err := a.client.CreateGateway(ctx, &bedrockagentcorecontrol.CreateGatewayInput{
		Name:           aws.String(in.Name),
		Description:    aws.String(in.Description),
		RoleArn:        aws.String(in.RoleARN),
		ProtocolType:   types.GatewayProtocolType(in.Protocol),
		AuthorizerType: types.AuthorizerType(in.Authorizer),
		ClientToken:    aws.String(uuid.NewString()),
	})
	if err != nil {
		return Gateway{}, err
	}
	return Gateway{
		ID:            aws.ToString(out.GatewayId),
		ARN:           aws.ToString(out.GatewayArn),
		Name:          in.Name,
		URL:           aws.ToString(out.GatewayUrl),
		Status:        Status(out.Status),
		StatusReasons: out.StatusReasons,
		CreatedAt:     aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) Get(ctx context.Context, gatewayID string) (Gateway, error) {
	out, err := a.client.GetGateway(ctx, &bedrockagentcorecontrol.GetGatewayInput{
		GatewayIdentifier: aws.String(gatewayID),
	})
	if err != nil {
		// A vanished gateway is the successful end of deletion.
		if isNotFound(err) {
			return Gateway{ID: gatewayID, Status: StatusDeleted}, nil
		}
		return Gateway{}, err
	}
	return Gateway{
		ID:            aws.ToString(out.GatewayId),
		ARN:           aws.ToString(out.GatewayArn),
		Name:          aws.ToString(out.Name),
		URL:           aws.ToString(out.GatewayUrl),
		Status:        Status(out.Status),
		StatusReasons: out.StatusReasons,
		CreatedAt:     aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) Delete(ctx context.Context, gatewayID string) error {
	_, err := a.client.DeleteGateway(ctx, &bedrockagentcorecontrol.DeleteGatewayInput{
		GatewayIdentifier: aws.String(gatewayID),
	})
	return err
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}
