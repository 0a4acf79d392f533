package sink

import "strings"

// textEscaper encodes run text for element content. Space and tab become
// character references so the group's xml:space="preserve" keeps them and
// consecutive blanks are not collapsed by renderers that ignore it.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	" ", "&#32;",
	"\t", "&#9;",
)

var textUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#32;", " ",
	"&#9;", "\t",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeText encodes s for use as run text.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// UnescapeText reverses EscapeText.
func UnescapeText(s string) string { return textUnescaper.Replace(s) }

// cssFamily strips characters that would end a quoted CSS string or the
// surrounding style element.
var cssFamily = strings.NewReplacer(`"`, "", `\`, "", "<", "", "&", "")
