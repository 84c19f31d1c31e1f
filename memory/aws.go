package memory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	datatypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcore/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/google/uuid"
)

// awsAPI implements API across both planes: memory lifecycle on the control
// plane, events and records on the data plane.
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

func (a *awsAPI) Create(ctx context.Context, in CreateInput) (Memory, error) {
	out, err := a.control.CreateMemory(ctx, &bedrockagentcorecontrol.CreateMemoryInput{
		Name:                aws.String(in.Name),
		Description:         aws.String(in.Description),
		EventExpiryDuration: aws.Int32(in.EventExpiryDays),
		ClientToken:         aws.String(uuid.NewString()),
		MemoryStrategies: []controltypes.MemoryStrategyInput{
			&controltypes.MemoryStrategyInputMemberUserPreferenceMemoryStrategy{
				Value: controltypes.UserPreferenceMemoryStrategyInput{
					Name:       aws.String(in.StrategyName),
					Namespaces: in.Namespaces,
				},
			},
		},
	})
	if err != nil {
		return Memory{}, err
	}
	return memoryFrom(out.Memory), nil
}

func (a *awsAPI) Get(ctx context.Context, memoryID string) (Memory, error) {
	out, err := a.control.GetMemory(ctx, &bedrockagentcorecontrol.GetMemoryInput{
		MemoryId: aws.String(memoryID),
	})
	if err != nil {
		return Memory{}, err
	}
	return memoryFrom(out.Memory), nil
}

func (a *awsAPI) Delete(ctx context.Context, memoryID string) error {
	_, err := a.control.DeleteMemory(ctx, &bedrockagentcorecontrol.DeleteMemoryInput{
		MemoryId:    aws.String(memoryID),
		ClientToken: aws.String(uuid.NewString()),
	})
	return err
}

func (a *awsAPI) CreateEvent(ctx context.Context, memoryID string, ev Event) (Event, error) {
	payload := make([]datatypes.PayloadType, 0, len(ev.Messages))
	for _, m := range ev.Messages {
		payload = append(payload, &datatypes.PayloadTypeMemberConversational{
			Value: datatypes.Conversational{
				Role:    datatypes.Role(m.Role),
				Content: &datatypes.ContentMemberText{Value: m.Text},
			},
		})
	}

	out, err := a.data.CreateEvent(ctx, &bedrockagentcore.CreateEventInput{
		MemoryId:       aws.String(memoryID),
		ActorId:        aws.String(ev.ActorID),
		SessionId:      aws.String(ev.SessionID),
		EventTimestamp: aws.Time(ev.Timestamp),
		Payload:        payload,
		ClientToken:    aws.String(uuid.NewString()),
	})
	if err != nil {
		return Event{}, err
	}
	if out.Event == nil {
		return ev, nil
	}
	return eventFrom(*out.Event), nil
}

func (a *awsAPI) ListEvents(ctx context.Context, memoryID, actorID, sessionID string) ([]Event, error) {
	out, err := a.data.ListEvents(ctx, &bedrockagentcore.ListEventsInput{
		MemoryId:  aws.String(memoryID),
		ActorId:   aws.String(actorID),
		SessionId: aws.String(sessionID),
	})
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(out.Events))
	for _, ev := range out.Events {
		events = append(events, eventFrom(ev))
	}
	return events, nil
}

func (a *awsAPI) RetrieveRecords(ctx context.Context, memoryID, namespace, query string, topK int32) ([]Record, error) {
	out, err := a.data.RetrieveMemoryRecords(ctx, &bedrockagentcore.RetrieveMemoryRecordsInput{
		MemoryId:  aws.String(memoryID),
		Namespace: aws.String(namespace),
		SearchCriteria: &datatypes.SearchCriteria{
			SearchQuery: aws.String(query),
			TopK:        aws.Int32(topK),
		},
	})
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(out.MemoryRecordSummaries))
	for _, summary := range out.MemoryRecordSummaries {
		records = append(records, recordFrom(summary))
	}
	return records, nil
}

func recordFrom(summary datatypes.MemoryRecordSummary) Record {
	rec := Record{
		ID:         aws.ToString(summary.MemoryRecordId),
		Namespaces: summary.Namespaces,
		Score:      aws.ToFloat64(summary.Score),
	}
	if text, ok := summary.Content.(*datatypes.MemoryContentMemberText); ok {
		rec.Text = text.Value
	}
	return rec
}

func memoryFrom(m *controltypes.Memory) Memory {
	if m == nil {
		return Memory{}
	}
	return Memory{
		ID:            aws.ToString(m.Id),
		ARN:           aws.ToString(m.Arn),
		Name:          aws.ToString(m.Name),
		Description:   aws.ToString(m.Description),
		Status:        Status(m.Status),
		FailureReason: aws.ToString(m.FailureReason),
		CreatedAt:     aws.ToTime(m.CreatedAt),
	}
}

func eventFrom(ev datatypes.Event) Event {
	out := Event{
		ID:        aws.ToString(ev.EventId),
		ActorID:   aws.ToString(ev.ActorId),
		SessionID: aws.ToString(ev.SessionId),
		Timestamp: aws.ToTime(ev.EventTimestamp),
	}
	for _, p := range ev.Payload {
		conv, ok := p.(*datatypes.PayloadTypeMemberConversational)
		if !ok {
			continue
		}
		msg := Message{Role: Role(conv.Value.Role)}
		if text, ok := conv.Value.Content.(*datatypes.ContentMemberText); ok {
			msg.Text = text.Value
		}
		out.Messages = append(out.Messages, msg)
	}
	return out
}
