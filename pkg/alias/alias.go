// Package alias maps org season and class identifiers to the project
// scoped alias used as the remote course key.
//
// The format is frozen: changing it orphans every course synced so far.
package alias

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix marks a project scoped Classroom alias.
const Prefix = "p:"

// Encode returns the alias for a class arrangement in a season.
func Encode(seasonID, classID int) string {
	return fmt.Sprintf("%s%d-%d", Prefix, seasonID, classID)
}

// Parse reverses Encode. ok is false when s was not produced by Encode.
func Parse(s string) (seasonID, classID int, ok bool) {
	rest, found := strings.CutPrefix(s, Prefix)
	if !found {
		return 0, 0, false
	}

	// The season may be negative, so split on the last separator.
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 || idx == len(rest)-1 {
		return 0, 0, false
	}

	season, err := strconv.Atoi(rest[:idx])
	if err != nil {
		return 0, 0, false
	}
	class, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return 0, 0, false
	}
	if Encode(season, class) != s {
		return 0, 0, false
	}
	return season, class, true
}

// IsAlias reports whether id looks like an alias rather than a numeric
// course ID assigned by the remote service.
func IsAlias(id string) bool {
	return strings.HasPrefix(id, Prefix)
}
