package export

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
)

// Markdown renders the résumé as a Markdown document.
func Markdown(r Resume) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Profile.Name)
	if meta := profileMeta(r); meta != "" {
		fmt.Fprintf(&sb, "%s\n\n", meta)
	}
	for _, l := range r.Profile.Links {
		fmt.Fprintf(&sb, "- [%s](%s)\n", l.Label, l.URL)
	}
	if len(r.Profile.Links) > 0 {
		sb.WriteString("\n")
	}

	if r.About != "" {
		fmt.Fprintf(&sb, "## About\n\n%s\n\n", r.About)
	}

	if len(r.Groups) > 0 {
		fmt.Fprintf(&sb, "## Experience\n\n_Total: %s_\n\n", career.FormatMonths(r.TotalMonths))
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "### %s\n\n%s to %s · %s\n\n", g.Label, g.Start, g.End, g.Duration)
		for _, e := range g.Entries {
			fmt.Fprintf(&sb, "#### %s\n\n", titleOrDash(e.Titles))
			fmt.Fprintf(&sb, "%s to %s · %s\n\n", e.Start, e.End, e.Duration)
			if len(e.Technologies) > 0 {
				fmt.Fprintf(&sb, "**Stack:** %s\n\n", strings.Join(e.Technologies, ", "))
			}
			for _, n := range e.Notes {
				fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", n.Level), n.Text)
			}
			if len(e.Notes) > 0 {
				sb.WriteString("\n")
			}
		}
	}

	if len(r.Skills) > 0 {
		sb.WriteString("## Skills\n\n| Skill | Experience |\n|---|---|\n")
		for _, s := range r.Skills {
			fmt.Fprintf(&sb, "| %s | %s |\n", s.Name, s.Duration)
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func profileMeta(r Resume) string {
	var parts []string
	if r.Profile.Headline != "" {
		parts = append(parts, "**"+r.Profile.Headline+"**")
	}
	if r.Profile.Location != "" {
		parts = append(parts, r.Profile.Location)
	}
	if r.Profile.Email != "" {
		parts = append(parts, r.Profile.Email)
	}
	return strings.Join(parts, " · ")
}

func titleOrDash(titles []string) string {
	if len(titles) == 0 {
		return "-"
	}
	return strings.Join(titles, ", ")
}
