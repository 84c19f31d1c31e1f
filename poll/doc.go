// Package poll implements the bounded fixed-interval status polling loop
// shared by every AgentCore resource client.
//
// Remote resources transition through provisioning states (for example
// CREATING -> ACTIVE or CREATING -> FAILED) that can only be observed by
// repeatedly fetching their status. Poller captures that loop once: fetch,
// classify, sleep, repeat, up to a fixed attempt budget. The outcome is a
// closed tri-state result instead of untyped errors:
//
//   - a ready payload, returned directly
//   - a remote failure, returned as *FailureError carrying the last payload
//   - an exhausted budget, returned as *TimeoutError
//
// The interval is fixed on purpose: control-plane status endpoints are cheap
// to call and the services publish no retry-after guidance, so backoff and
// jitter would only slow the happy path.
package poll
