// Package interpreter drives AgentCore code interpreter sessions: sandboxed
// execution environments that run submitted code and stream results back.
//
// As with the other resource packages, the API interface is the collaborator
// contract against the data plane; Client adds readiness polling, execution
// result aggregation and stop.
package interpreter
