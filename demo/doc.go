// Package demo contains the runnable walkthrough bodies behind the example
// mains: one function per AgentCore capability (browser, code interpreter,
// memory, gateway, agent runtime).
//
// Every body follows the same shape: acquire a remote resource, register its
// release so teardown happens on every exit path, wait for readiness, act,
// and print stable "✓" progress markers along the way. The bodies take their
// collaborators through a Context value, so tests drive them against fakes
// while the mains wire in real clients.
package demo
