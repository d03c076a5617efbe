package project

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies the work-stealing pool leaves no goroutines
// running past Build's return (spec.md §5 "exactly one compile per
// contract occurs").
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
