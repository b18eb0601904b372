// Package propagatorgo provides the version information for propagator-go.
package propagatorgo

// Version is the current version of propagator-go.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
