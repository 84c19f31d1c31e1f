// Package memory manages AgentCore memory resources: durable conversation
// stores with short-term events and asynchronously extracted long-term
// records.
//
// Memory is the slowest resource to provision (several minutes), so its
// readiness poll carries the largest attempt budget. The API interface spans
// both planes: resource lifecycle on the control plane, event and record
// operations on the data plane.
package memory
