package xmltext

import (
	"fmt"
	"strings"
	"testing"
)

func ExampleEscape() {
	fmt.Println(Escape(`Tom & Jerry's "<Big>" Day`))
	// Output: Tom &amp; Jerry&apos;s &quot;&lt;Big&gt;&quot; Day
}

func TestEscapeRoundTrip(t *testing.T) {
	tables := []string{
		"",
		"plain text",
		"<>&'\"",
		"&amp; already escaped",
		"&lt;&gt;",
		"a < b && c > d",
		`She said "it's 5 > 4"`,
		"åäö & ÅÄÖ",
		"&&&&",
		"&;",
	}
	for _, s := range tables {
		escaped := Escape(s)
		if strings.ContainsAny(escaped, `<>'"`) {
			t.Errorf("Escape(%q) contains a raw reserved character: %q", s, escaped)
		}
		for i := 0; i < len(escaped); i++ {
			if escaped[i] != '&' {
				continue
			}
			rest := escaped[i:]
			if !(strings.HasPrefix(rest, "&amp;") || strings.HasPrefix(rest, "&lt;") ||
				strings.HasPrefix(rest, "&gt;") || strings.HasPrefix(rest, "&apos;") ||
				strings.HasPrefix(rest, "&quot;")) {
				t.Errorf("Escape(%q) contains a raw ampersand: %q", s, escaped)
			}
		}
		if got := Unescape(escaped); got != s {
			t.Errorf("Unescape(Escape(%q)) was incorrect, got: %q, want: %q", s, got, s)
		}
	}
}

func TestUnescapeLeavesOtherEntities(t *testing.T) {
	if got, want := Unescape("&#39;&nbsp;&amp;"), "&#39;&nbsp;&"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestSanitize(t *testing.T) {
	tables := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Caf\xe9", "Caf\uFFFD"},
		{"form\ffeed", "formfeed"},
		{"tab\tnew\nline\r", "tab\tnew\nline\r"},
		{"nul\x00bell\a", "nulbell"},
		{"non\uFFFEchar\uFFFF", "nonchar"},
		{"åäö \U0001F3A7", "åäö \U0001F3A7"},
	}
	for _, table := range tables {
		if got := Sanitize(table.in); got != table.want {
			t.Errorf("Sanitize(%q) was incorrect, got: %q, want: %q", table.in, got, table.want)
		}
	}
	if got, want := Escape("A & B\x0c\xff"), "A &amp; B\uFFFD"; got != want {
		t.Errorf("Escape was incorrect, got: %q, want: %q", got, want)
	}
}
