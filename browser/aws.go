package browser

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore/types"
	"github.com/google/uuid"
)

// awsAPI implements API with the vendor SDK. All SDK coupling for this
// resource type lives here.
type awsAPI struct {
	client *bedrockagentcore.Client
}

var _ API = (*awsAPI)(nil)

func newAWSAPI(cfg aws.Config) *awsAPI {
	return &awsAPI{client: bedrockagentcore.NewFromConfig(cfg)}
}

func (a *awsAPI) StartSession(ctx context.Context, in StartInput) (Session, error) {
	out, err := a.client.StartBrowserSession(ctx, &bedrockagentcore.StartBrowserSessionInput{
		BrowserIdentifier:     aws.String(in.Identifier),
		Name:                  aws.String(in.Name),
		SessionTimeoutSeconds: aws.Int32(int32(in.Timeout.Seconds())),
		ClientToken:           aws.String(uuid.NewString()),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:         aws.ToString(out.SessionId),
		Identifier: in.Identifier,
		Name:       in.Name,
		Streams:    streamsFrom(out.Streams),
		CreatedAt:  aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) GetSession(ctx context.Context, identifier, sessionID string) (Session, error) {
	out, err := a.client.GetBrowserSession(ctx, &bedrockagentcore.GetBrowserSessionInput{
		BrowserIdentifier: aws.String(identifier),
		SessionId:         aws.String(sessionID),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{
		ID:         aws.ToString(out.SessionId),
		Identifier: identifier,
		Name:       aws.ToString(out.Name),
		Status:     Status(out.Status),
		Streams:    streamsFrom(out.Streams),
		CreatedAt:  aws.ToTime(out.CreatedAt),
	}, nil
}

func (a *awsAPI) StopSession(ctx context.Context, identifier, sessionID string) error {
	_, err := a.client.StopBrowserSession(ctx, &bedrockagentcore.StopBrowserSessionInput{
		BrowserIdentifier: aws.String(identifier),
		SessionId:         aws.String(sessionID),
		ClientToken:       aws.String(uuid.NewString()),
	})
	return err
}

func streamsFrom(s *types.BrowserSessionStream) Streams {
	var out Streams
	if s == nil {
		return out
	}
	if s.AutomationStream != nil {
		out.AutomationURL = aws.ToString(s.AutomationStream.StreamEndpoint)
	}
	if s.LiveViewStream != nil {
		out.LiveViewURL = aws.ToString(s.LiveViewStream.StreamEndpoint)
	}
	return out
}
