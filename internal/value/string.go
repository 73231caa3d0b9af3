package value

import "strings"

// SassString is either quoted ("hello") or unquoted (bold); the distinction
// only affects serialization and the string-function argument checks, never
// equality.
type SassString struct {
	Text   string
	Quoted bool
}

func (SassString) isValue()          {}
func (SassString) TypeName() string { return "string" }

func Str(s string) Value       { return Value{Data: SassString{Text: s, Quoted: true}} }
func UnquotedStr(s string) Value { return Value{Data: SassString{Text: s}} }

// Len counts Unicode code points, matching str-length()'s contract rather
// than Go's byte length.
func (s SassString) Len() int { return len([]rune(s.Text)) }

func (s SassString) CSSString() string {
	if !s.Quoted {
		return s.Text
	}
	return quoteString(s.Text)
}

func quoteString(s string) string {
	quote := byte('"')
	if strings.Contains(s, "\"") && !strings.Contains(s, "'") {
		quote = '\''
	}
	var sb strings.Builder
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case byte(r) == quote:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\a `)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
