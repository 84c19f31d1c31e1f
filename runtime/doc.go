// Package runtime manages AgentCore agent runtimes: containerized agents
// deployed to the managed execution environment and invoked through the
// data plane.
//
// The lifecycle mirrors the other control-plane resources (create, poll
// until READY, delete); Invoke sends a JSON payload to a deployed runtime
// and returns the response body.
package runtime
