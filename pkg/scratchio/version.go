package scratchio

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of scratch-io.
	VersionMajor = 0
	// VersionMinor represents the current minor version of scratch-io.
	VersionMinor = 3
	// VersionPatch represents the current patch version of scratch-io.
	VersionPatch = 0
)

// Version provides a stringified version of the current version.
var Version string

func init() {
	// Compute the stringified version.
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
