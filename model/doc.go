// Package model defines the provider-neutral language model interface used
// by the local agent application, together with a deterministic mock for
// tests and offline runs. Provider adapters live in the subpackages
// anthropic and openai.
package model
