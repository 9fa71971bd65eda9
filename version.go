package bizyair

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.1.0"

// APIVersion is the BizyAir workflow API version this SDK was built for.
const APIVersion = "1.0.0"

// APIVersionRange is the semver constraint of server versions this SDK
// is expected to work with.
const APIVersionRange = ">= 1.0.0, < 2.0.0"

// CompatibilityStatus is the outcome of comparing a server version to
// [APIVersionRange].
type CompatibilityStatus int

const (
	// Unknown means the server version could not be parsed.
	Unknown CompatibilityStatus = iota

	// Compatible means the server version satisfies [APIVersionRange].
	Compatible

	// Incompatible means the server version is outside [APIVersionRange].
	Incompatible
)

// String returns "compatible", "incompatible" or "unknown".
func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes how a server version relates to this SDK.
type CompatibilityResult struct {
	Status           CompatibilityStatus
	ServerVersion    string
	SDKVersion       string
	TargetAPIVersion string
	SupportedRange   string
	Message          string
}

// IsCompatible returns true if Status is [Compatible].
func (r CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// CheckCompatibility compares serverVersion against [APIVersionRange].
func CheckCompatibility(serverVersion string) CompatibilityResult {
	result := CompatibilityResult{
		ServerVersion:    serverVersion,
		SDKVersion:       Version,
		TargetAPIVersion: APIVersion,
		SupportedRange:   APIVersionRange,
	}

	v, err := semver.NewVersion(serverVersion)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("cannot parse server version %q: %v", serverVersion, err)
		return result
	}

	constraint, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("invalid supported range %q: %v", APIVersionRange, err)
		return result
	}

	if constraint.Check(v) {
		result.Status = Compatible
		result.Message = fmt.Sprintf("server version %s is compatible with SDK %s", v, Version)
		return result
	}
	result.Status = Incompatible
	result.Message = fmt.Sprintf("server version %s is not compatible with SDK %s (supported: %s)",
		v, Version, APIVersionRange)
	return result
}

// IsCompatible reports whether serverVersion satisfies [APIVersionRange].
func IsCompatible(serverVersion string) bool {
	return CheckCompatibility(serverVersion).IsCompatible()
}

// MustBeCompatible panics unless serverVersion satisfies [APIVersionRange].
func MustBeCompatible(serverVersion string) {
	if r := CheckCompatibility(serverVersion); !r.IsCompatible() {
		panic("bizyair: " + r.Message)
	}
}
