package value

import "strings"

// CSSString renders v the way it appears in compiled CSS output. Callers
// that need the debug-console form ("@debug", "inspect()") use Inspect
// instead: the two differ for strings (quotes kept), lists (commas kept
// even at top level), and maps (not otherwise CSS-representable at all).
func CSSString(v Value) string {
	switch d := v.Data.(type) {
	case Null:
		return ""
	case Boolean:
		if d {
			return "true"
		}
		return "false"
	case Number:
		return d.CSSString()
	case Color:
		return d.CSSString()
	case SassString:
		return d.CSSString()
	case List:
		return listCSSString(d)
	case Map:
		// Reached when a map is interpolated into CSS text or used as a
		// declaration value; the evaluator rejects neither, so the map is
		// written out in its inspect form.
		return inspectMap(d)
	case ArgumentList:
		return listCSSString(d.List)
	case Calculation:
		return calcCSSString(d)
	case Function:
		return "get-function(" + quoteString(d.Name) + ")"
	case Mixin:
		return d.Name
	default:
		return ""
	}
}

func listCSSString(l List) string {
	sep := separatorText(l.Separator)
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if item.IsNull() {
			continue
		}
		parts = append(parts, CSSString(item))
	}
	inner := strings.Join(parts, sep)
	if l.Bracketed {
		return "[" + inner + "]"
	}
	return inner
}

func separatorText(sep Separator) string {
	switch sep {
	case SepComma:
		return ", "
	case SepSlash:
		return "/"
	default:
		return " "
	}
}

func calcCSSString(c Calculation) string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		if a.Raw != "" {
			parts[i] = a.Raw
		} else {
			parts[i] = CSSString(a.Value)
		}
	}
	return c.Name + "(" + strings.Join(parts, "") + ")"
}

// Inspect renders v the way "@debug"/"meta.inspect()" do: quotes are kept on
// strings, empty lists print as "()", and maps print as "(k: v, ...)".
func Inspect(v Value) string {
	switch d := v.Data.(type) {
	case Null:
		return "null"
	case SassString:
		if d.Quoted {
			return quoteString(d.Text)
		}
		return d.Text
	case List:
		return inspectList(d)
	case Map:
		return inspectMap(d)
	case ArgumentList:
		return inspectList(d.List)
	default:
		return CSSString(v)
	}
}

func inspectList(l List) string {
	if len(l.Items) == 0 {
		if l.Bracketed {
			return "[]"
		}
		return "()"
	}
	sep := separatorText(l.Separator)
	if l.Separator == SepUndecided && len(l.Items) > 1 {
		sep = " "
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		inner := Inspect(item)
		if needsParensInList(item, l.Separator) {
			inner = "(" + inner + ")"
		}
		parts[i] = inner
	}
	inner := strings.Join(parts, sep)
	if l.Bracketed {
		return "[" + inner + "]"
	}
	if len(l.Items) == 1 && l.Separator != SepComma {
		return "(" + inner + ",)"
	}
	return inner
}

func needsParensInList(item Value, outer Separator) bool {
	inner, ok := item.Data.(List)
	if !ok || len(inner.Items) < 2 {
		return false
	}
	if outer == SepComma {
		return inner.Separator == SepComma
	}
	return inner.Separator == SepComma || inner.Separator == SepSpace
}

func inspectMap(m Map) string {
	if len(m.Keys) == 0 {
		return "()"
	}
	parts := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		parts[i] = Inspect(k) + ": " + Inspect(m.Values[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
