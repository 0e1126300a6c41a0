package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\n", " ",
	"\t", " ",
)

// maxFileNameBytes keeps generated names under common filesystem limits
// with room for an extension.
const maxFileNameBytes = 200

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Runs of spaces collapse and overly long names are
// cut on a rune boundary.
func SanitizeFileName(name string) string {
	name = strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " ")
	name = strings.Trim(name, ". ")
	if len(name) <= maxFileNameBytes {
		return name
	}
	cut := 0
	for i := range name {
		if i > maxFileNameBytes {
			break
		}
		cut = i
	}
	return strings.TrimSpace(name[:cut])
}

// SanitizeToken converts a string to a lowercase filesystem-safe token.
// Letters and digits are kept, hyphens and underscores survive, everything
// else becomes an underscore. Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
