package scratchio

import (
	"os"
)

// DebugEnabled indicates whether or not debugging is enabled for scratch-io.
// It is set automatically based on the SCRATCH_IO_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("SCRATCH_IO_DEBUG") == "1"
}
