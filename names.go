package scribe

import (
	"strings"
	"unicode"
)

// camelCase converts a snake_case wire identifier to camel case. The
// first letter is forced upper or lower according to capitalize; the
// mapping is plain rune case conversion, independent of any locale.
func camelCase(name string, capitalize bool) string {
	var buf strings.Builder
	buf.Grow(len(name))

	first := true
	shift := capitalize
	for _, c := range name {
		if c == '_' {
			shift = true
			continue
		}

		if shift {
			c = unicode.ToUpper(c)
		} else if first {
			c = unicode.ToLower(c)
		}
		buf.WriteRune(c)
		first = false
		shift = false
	}
	return buf.String()
}

// stripInterfaceName derives the member-friendly form of a wire
// interface name. A configured prefix wins over the conventional
// qt_/wl_ prefixes; exactly one branch fires.
func stripInterfaceName(name, prefix string, capitalize bool) string {
	switch {
	case prefix != "" && strings.HasPrefix(name, prefix):
		return camelCase(strings.TrimPrefix(name, prefix), capitalize)
	case strings.HasPrefix(name, "qt_") || strings.HasPrefix(name, "wl_"):
		return camelCase(name[3:], capitalize)
	default:
		return camelCase(name, capitalize)
	}
}
