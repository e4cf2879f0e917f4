package export

import (
	"fmt"
	"strings"
)

// LLMsTxt renders a compact llms.txt document for AI agents: one line per
// engagement and per skill.
func LLMsTxt(r Resume) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Profile.Name)
	if r.Profile.Headline != "" {
		fmt.Fprintf(&sb, "> %s\n\n", r.Profile.Headline)
	}
	fmt.Fprintf(&sb, "Data as of %s. Durations count calendar months; overlapping roles are counted once.\n", r.AsOf)

	if len(r.Profile.Links) > 0 {
		sb.WriteString("\n## Links\n\n")
		for _, l := range r.Profile.Links {
			fmt.Fprintf(&sb, "- [%s](%s)\n", l.Label, l.URL)
		}
	}

	if len(r.Groups) > 0 {
		sb.WriteString("\n## Career\n\n")
	}
	for _, g := range r.Groups {
		var titles, stack []string
		seen := map[string]bool{}
		for _, e := range g.Entries {
			titles = append(titles, e.Titles...)
			for _, t := range e.Technologies {
				if !seen[t] {
					seen[t] = true
					stack = append(stack, t)
				}
			}
		}
		fmt.Fprintf(&sb, "- %s (%s to %s, %s): %s", g.Label, g.Start, g.End, g.Duration, strings.Join(titles, "; "))
		if len(stack) > 0 {
			fmt.Fprintf(&sb, ". Stack: %s", strings.Join(stack, ", "))
		}
		sb.WriteString("\n")
	}

	if len(r.Skills) > 0 {
		sb.WriteString("\n## Skills\n\n")
		for _, s := range r.Skills {
			fmt.Fprintf(&sb, "- %s: %s\n", s.Name, s.Duration)
		}
	}
	return sb.String()
}
