// Package browser drives AgentCore browser sessions: isolated, managed
// Chrome instances reachable over a pair of WebSocket endpoints (CDP
// automation and human live view).
//
// The Client wraps the data-plane collaborator behind the API interface and
// adds the shared lifecycle pieces: readiness polling and stop. A session is
// owned by its creator for the duration of one run and must be stopped on
// every exit path.
package browser
