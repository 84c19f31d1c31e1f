// Package app implements the HTTP contract an AgentCore runtime container
// must serve: POST /invocations handling agent requests and GET /ping
// reporting health, both on port 8080.
//
// An App wraps a single user-supplied entrypoint function. The same handler
// serves local development runs and the deployed container; there is no
// module-level agent state, the entrypoint closes over whatever it needs.
package app
