package update

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a release tag: up to four numeric components and an optional
// prerelease label. Missing components are zero.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Build      int
	Prerelease string // "beta.1" in "2.4.0-beta.1"
}

var componentNames = [...]string{"major", "minor", "patch", "build"}

func ParseVersion(v string) (Version, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")

	numbers, prerelease, _ := strings.Cut(v, "-")

	segments := strings.Split(numbers, ".")
	if len(segments) > len(componentNames) {
		return Version{}, fmt.Errorf("invalid version format: %s", v)
	}

	var parts [len(componentNames)]int
	for i, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid %s version: %s", componentNames[i], seg)
		}
		parts[i] = n
	}

	return Version{
		Major:      parts[0],
		Minor:      parts[1],
		Patch:      parts[2],
		Build:      parts[3],
		Prerelease: prerelease,
	}, nil
}

func (v Version) components() [4]int {
	return [4]int{v.Major, v.Minor, v.Patch, v.Build}
}

// CompareVersions returns -1 when current is older than latest, 1 when it is
// newer, and 0 when they match or either fails to parse.
func CompareVersions(current, latest string) int {
	cur, err := ParseVersion(current)
	if err != nil {
		return 0
	}
	lat, err := ParseVersion(latest)
	if err != nil {
		return 0
	}

	a, b := cur.components(), lat.components()
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	// A full release is newer than any prerelease of the same number.
	switch {
	case cur.Prerelease == "" && lat.Prerelease != "":
		return 1
	case cur.Prerelease != "" && lat.Prerelease == "":
		return -1
	}
	return strings.Compare(cur.Prerelease, lat.Prerelease)
}

func IsNewerVersion(current, latest string) bool {
	return CompareVersions(current, latest) < 0
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build != 0 {
		s += "." + strconv.Itoa(v.Build)
	}
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}
