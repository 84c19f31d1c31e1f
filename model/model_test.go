package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_CannedResponse(t *testing.T) {
	m := NewMock("")
	m.AddResponse("What is 6 x 7?", "The Answer is 42.")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "What is 6 x 7?"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Answer is 42.", resp.Text)
	assert.Positive(t, resp.Usage.OutputTokens)
}

func TestMock_FallbackResponse(t *testing.T) {
	m := NewMock("I can help with that.")

	resp, err := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "anything"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "I can help with that.", resp.Text)
}

func TestMock_ErrorsWithoutMessages(t *testing.T) {
	m := NewMock("hi")

	_, err := m.Generate(context.Background(), Request{})
	require.Error(t, err)
}

func TestMock_ErrorsWithoutAnyResponse(t *testing.T) {
	m := NewMock("")

	_, err := m.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Text: "unknown"}},
	})
	require.Error(t, err)
}
