package questions

import "strings"

// entityReplacer reverses the HTML entity escapes Open Trivia DB applies to
// its text fields. strings.Replacer resolves all pairs in a single pass.
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&#039;", "'",
	"&apos;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&ldquo;", `"`,
	"&rdquo;", `"`,
	"&lsquo;", "'",
	"&rsquo;", "'",
	"&hellip;", "...",
	"&ndash;", "-",
	"&mdash;", "-",
	"&eacute;", "é",
	"&Eacute;", "É",
	"&iacute;", "í",
	"&oacute;", "ó",
	"&uacute;", "ú",
	"&ntilde;", "ñ",
	"&uuml;", "ü",
	"&deg;", "°",
	"&reg;", "®",
	"&trade;", "™",
	"&copy;", "©",
)

// DecodeEntities converts an HTML-entity-encoded field back to literal text.
func DecodeEntities(text string) string {
	return entityReplacer.Replace(text)
}
