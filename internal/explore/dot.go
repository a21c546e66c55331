package explore

import (
	"fmt"
	"sort"
	"strings"
)

// Dot renders the session's transition graph in Graphviz dot form, nodes
// labelled with their canonical state renderings. Output is sorted so the
// same session always renders the same text.
func (s *Session) Dot() string {
	var b strings.Builder
	b.WriteString("digraph transitions {\n")
	b.WriteString(fmt.Sprintf("    %s [shape=box];\n", dotQuote(s.Initial.Canonical())))

	starts := make([]string, 0, len(s.Index.Next))
	for start := range s.Index.Next {
		starts = append(starts, start)
	}
	sort.Strings(starts)

	for _, start := range starts {
		for _, next := range s.Index.Next[start] {
			b.WriteString(fmt.Sprintf("    %s -> %s;\n", dotQuote(start), dotQuote(next.Canonical())))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func dotQuote(label string) string {
	escaped := strings.ReplaceAll(label, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return `"` + escaped + `"`
}
