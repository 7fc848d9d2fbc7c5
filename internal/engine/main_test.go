package engine

import (
	"testing"

	"go.uber.org/goleak"
)

// Runs are pure state machines; abandoning one mid-sequence must not leave
// anything running behind it.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
