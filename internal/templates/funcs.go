package templates

import (
	"strings"
	texttemplate "text/template"
)

// Funcs returns the helper functions available to every template.
func Funcs() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
		"pascal": Pascal,
		"snake":  Snake,
	}
}

// Pascal converts identifiers like "ON_OFF" or "level-control" to "OnOff"
// and "LevelControl". Already camel-cased input keeps its interior casing.
func Pascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '/'
	})
	var b strings.Builder
	for _, p := range parts {
		if p == strings.ToUpper(p) {
			// Fully uppercase segment: normalize before capitalizing.
			p = strings.ToLower(p)
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Snake converts identifiers like "On/Off" or "LevelControl" to
// "on_off" and "level_control".
func Snake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '/':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		}
	}
	return strings.Trim(b.String(), "_")
}
