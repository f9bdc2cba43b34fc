// Package protocol checks that a renderer plugin speaks a protocol this
// duotint build understands.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/duotint/pkg/plugin"
)

// MinCompatibleVersion is the oldest renderer protocol accepted.
const MinCompatibleVersion = "1.0.0"

// Version is a parsed MAJOR.MINOR.PATCH protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", part, version)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v is older than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// Current returns the protocol version of this build.
func Current() Version {
	v, err := Parse(plugin.ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}

// IsCompatible reports whether a plugin built against pluginVersion can be
// used. The major version must match and the version must not be older than
// MinCompatibleVersion; newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) (bool, error) {
	v, err := Parse(pluginVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := Current()
	if v.Major != current.Major {
		return false, fmt.Errorf("incompatible major version: plugin is %s, duotint requires %d.x.x", v, current.Major)
	}

	minimum, err := Parse(MinCompatibleVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}
	if v.Less(minimum) {
		return false, fmt.Errorf("plugin version %s is too old, minimum required is %s", v, MinCompatibleVersion)
	}
	return true, nil
}
