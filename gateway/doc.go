// Package gateway manages AgentCore gateways: control-plane resources that
// expose heterogeneous backends (Lambda, REST, MCP servers) through a single
// MCP tool-invocation endpoint.
//
// Unlike sessions, gateways are deleted rather than stopped, and deletion is
// asynchronous; DeleteAndWait polls until the resource is gone, treating
// not-found as completion.
package gateway
