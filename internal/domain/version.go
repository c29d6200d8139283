package domain

import (
	"github.com/Masterminds/semver/v3"
)

// ContractVersion wraps semver.Version for contract info versions.
type ContractVersion struct {
	*semver.Version
}

// NewContractVersion creates a new ContractVersion from a string.
func NewContractVersion(s string) (*ContractVersion, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &ContractVersion{v}, nil
}

// BumpMajor increments the major version for breaking model changes.
func (v *ContractVersion) BumpMajor() *ContractVersion {
	newVer := v.IncMajor()
	return &ContractVersion{&newVer}
}

// BumpMinor increments the minor version for additive model changes.
func (v *ContractVersion) BumpMinor() *ContractVersion {
	newVer := v.IncMinor()
	return &ContractVersion{&newVer}
}

// BumpPatch increments the patch version.
func (v *ContractVersion) BumpPatch() *ContractVersion {
	newVer := v.IncPatch()
	return &ContractVersion{&newVer}
}

// Compare compares two contract versions.
func (v *ContractVersion) Compare(other *ContractVersion) int {
	return v.Version.Compare(other.Version)
}

// String returns the bare version string as it appears in contract info.
func (v *ContractVersion) String() string {
	return v.Version.String()
}
