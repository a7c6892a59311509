package futexlock

// Version information for the futexlock library.
const (
	// Version is the current version of the library.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides build-time information about the lock implementation.
type Info struct {
	// Version is the library version string.
	Version string

	// Algorithm names the locking scheme in use.
	Algorithm string
}

// GetInfo returns information about the lock implementation.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Algorithm: "three-state futex mutex (Drepper, \"Futexes Are Tricky\")",
	}
}
