// Package reference classifies and parses the @UUID[...] link strings the
// host embeds in token names and biography text.
//
// Two grammars exist:
//
//	@UUID[RollTable.<id>]                                         (local table)
//	@UUID[Compendium.<namespace>.<package>.RollTable.<id>]        (packaged table)
//
// Either form may carry a trailing {label}; everything after the closing
// bracket is ignored.
package reference

import (
	"strings"

	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

const (
	// localPrefix marks a table stored in the current world's data.
	localPrefix = "@UUID[RollTable."

	// packagedPrefix marks a table inside an importable content pack.
	packagedPrefix = "@UUID[Compendium."

	// linkPrefix is the opening of every UUID link; the packaged parser
	// splits the coordinate that follows it.
	linkPrefix = "@UUID["

	// coordinateParts is the exact number of dot-separated parts in a
	// packaged coordinate: tag, namespace, package, document type, id.
	coordinateParts = 5
)

// IsLocal reports whether s is a local table reference.
func IsLocal(s string) bool {
	return strings.HasPrefix(s, localPrefix)
}

// IsPackaged reports whether s is a packaged table reference.
func IsPackaged(s string) bool {
	return strings.HasPrefix(s, packagedPrefix)
}

// IsReference reports whether s matches either grammar.
func IsReference(s string) bool {
	return IsLocal(s) || IsPackaged(s)
}

// Local identifies a table in the world's own registry.
type Local struct {
	ID string
}

// Packaged identifies a table inside a content pack.
type Packaged struct {
	Tag       string
	Namespace string
	Package   string
	DocType   string
	ID        string
}

// Coordinate returns the pack lookup key, namespace.package.
func (p Packaged) Coordinate() string {
	return p.Namespace + "." + p.Package
}

// ParseLocal extracts the table ID from a local reference.
func ParseLocal(s string) (Local, error) {
	if !IsLocal(s) {
		return Local{}, apperrors.InvalidArgumentf("not a local table reference: %q", s)
	}

	rest := s[len(localPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return Local{}, apperrors.InvalidArgumentf("unterminated table reference: %q", s).
			WithMeta("reference", s)
	}

	return Local{ID: rest[:end]}, nil
}

// ParsePackaged extracts the five-part coordinate from a packaged reference.
func ParsePackaged(s string) (Packaged, error) {
	if !IsPackaged(s) {
		return Packaged{}, apperrors.InvalidArgumentf("not a packaged table reference: %q", s)
	}

	rest := s[len(linkPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return Packaged{}, apperrors.InvalidArgumentf("unterminated table reference: %q", s).
			WithMeta("reference", s)
	}

	parts := strings.Split(rest[:end], ".")
	if len(parts) != coordinateParts {
		return Packaged{}, apperrors.InvalidArgumentf(
			"malformed pack coordinate in %q: expected %d parts, got %d", s, coordinateParts, len(parts)).
			WithMeta("reference", s)
	}

	return Packaged{
		Tag:       parts[0],
		Namespace: parts[1],
		Package:   parts[2],
		DocType:   parts[3],
		ID:        parts[4],
	}, nil
}
