package app

import (
	"os"
	"strconv"
	"sync/atomic"
)

// TestModeEnv makes commands return before binding listeners or opening stores.
const TestModeEnv = "RESTKIT_TEST_MODE"

var testMode atomic.Pointer[bool]

// InTestMode reports whether TestModeEnv holds a true value. The first
// read is cached.
func InTestMode() bool {
	if cached := testMode.Load(); cached != nil {
		return *cached
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads TestModeEnv after the environment changed.
func RefreshTestMode() bool {
	on, _ := strconv.ParseBool(os.Getenv(TestModeEnv))
	testMode.Store(&on)
	return on
}
