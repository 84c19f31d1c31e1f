package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcore/model"
)

func newModelApp(t *testing.T) *App {
	t.Helper()
	m := model.NewMock("")
	m.AddResponse("What is 6 x 7?", "The Answer is 42.")

	return New(func(ctx context.Context, req Request) (Response, error) {
		resp, err := m.Generate(ctx, model.Request{
			Messages: []model.Message{{Role: model.RoleUser, Text: req.Prompt}},
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Result: resp.Text, SessionID: req.SessionID}, nil
	})
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(newModelApp(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Healthy", body["status"])
}

func TestInvocation_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(newModelApp(t).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/invocations", strings.NewReader(`{"prompt":"What is 6 x 7?"}`))
	require.NoError(t, err)
	req.Header.Set(SessionHeader, "demo-session-001")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Result, "42")
	assert.Equal(t, "demo-session-001", body.SessionID)
}

func TestInvocation_BadPayload(t *testing.T) {
	srv := httptest.NewServer(newModelApp(t).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/invocations", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvocation_EntrypointError(t *testing.T) {
	a := New(func(context.Context, Request) (Response, error) {
		return Response{}, errors.New("model unavailable")
	})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/invocations", "application/json", strings.NewReader(`{"prompt":"hi"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRun_ShutsDownOnContextCancel(t *testing.T) {
	a := New(func(context.Context, Request) (Response, error) {
		return Response{Result: "ok"}, nil
	}, func(o *Options) { o.Addr = "127.0.0.1:0" })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
