// Package testing switches the restkit runtime into test mode for every
// test binary that imports it.
package testing

import (
	"os"

	"github.com/odyssey-erp/restkit/internal/app"
)

func init() {
	if _, ok := os.LookupEnv(app.TestModeEnv); !ok {
		_ = os.Setenv(app.TestModeEnv, "1")
	}
}
