package test

import (
	"testing"

	"pgregory.net/rapid"
)

// TestingT is the subset of the [testing.TB] interface that is used by this
// package.
type TestingT interface {
	FailerT

	Cleanup(func())
}

// FailerT is the subset of the [testing.TB] interface needed to fail a test.
// It is satisfied by *rapid.T as well, so helpers work inside property checks.
type FailerT interface {
	Helper()
	Log(...any)
	Fatal(...any)
	Fatalf(string, ...any)
}

var (
	_ TestingT = (testing.TB)(nil)
	_ FailerT  = (testing.TB)(nil)
	_ FailerT  = (*rapid.T)(nil)
)
