// xmltext escapes free text for embedding in the rendered feed. Text
// is first made valid XML 1.0 character data, then the five reserved
// XML characters are replaced with their named entities.
package xmltext

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

var unescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&apos;", "'",
	"&quot;", `"`,
)

// Escape returns Sanitize(s) with < > & ' and " replaced by &lt;
// &gt; &amp; &apos; and &quot;.
func Escape(s string) string {
	return escaper.Replace(Sanitize(s))
}

// Sanitize returns s as valid UTF-8 containing only characters XML 1.0
// allows. Invalid byte sequences become U+FFFD, control characters
// other than tab, LF and CR are dropped, as are U+FFFE and U+FFFF.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, strings.ToValidUTF8(s, "\uFFFD"))
}

func allowed(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r < 0x20:
		return false
	case r == 0xFFFE, r == 0xFFFF:
		return false
	}
	return true
}

// Unescape reverses Escape. Entities other than the five named ones
// are left as is.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
