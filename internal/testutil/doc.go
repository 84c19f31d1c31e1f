// Package testutil provides small helpers shared by the package test suites:
// scripted status sequences that stand in for remote status fetches, and a
// recorder for asserting teardown calls.
package testutil
