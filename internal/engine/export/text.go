package export

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
)

// Text renders the résumé as plain text for terminals and email.
func Text(r Resume) string {
	var sb strings.Builder

	sb.WriteString(r.Profile.Name + "\n")
	for _, line := range []string{r.Profile.Headline, r.Profile.Location, r.Profile.Email} {
		if line != "" {
			sb.WriteString(line + "\n")
		}
	}
	for _, l := range r.Profile.Links {
		fmt.Fprintf(&sb, "%s: %s\n", l.Label, l.URL)
	}

	if r.About != "" {
		fmt.Fprintf(&sb, "\nABOUT\n\n%s\n", r.About)
	}

	if len(r.Groups) > 0 {
		fmt.Fprintf(&sb, "\nEXPERIENCE (%s)\n", career.FormatMonths(r.TotalMonths))
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "\n%s  [%s - %s, %s]\n", g.Label, g.Start, g.End, g.Duration)
		for _, e := range g.Entries {
			fmt.Fprintf(&sb, "  %s  [%s - %s, %s]\n", titleOrDash(e.Titles), e.Start, e.End, e.Duration)
			if len(e.Technologies) > 0 {
				fmt.Fprintf(&sb, "    Stack: %s\n", strings.Join(e.Technologies, ", "))
			}
			for _, n := range e.Notes {
				fmt.Fprintf(&sb, "    %s* %s\n", strings.Repeat("  ", n.Level), n.Text)
			}
		}
	}

	if len(r.Skills) > 0 {
		sb.WriteString("\nSKILLS\n\n")
		width := 0
		for _, s := range r.Skills {
			width = max(width, len(s.Name))
		}
		for _, s := range r.Skills {
			fmt.Fprintf(&sb, "  %-*s  %s\n", width, s.Name, s.Duration)
		}
	}
	return sb.String()
}
