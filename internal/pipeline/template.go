package pipeline

import "strings"

// renderTemplate substitutes {name} placeholders in an announcement
// template. Placeholders without a binding are left as-is so a
// misconfigured template still produces audible (if odd) output instead
// of silence.
func renderTemplate(tpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
