// Package export renders the loaded portfolio as Markdown, plain text,
// JSON and llms.txt.
package export

import (
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
)

// Resume is the render-ready view of a document at a point in time.
type Resume struct {
	Profile     source.Profile         `json:"profile"`
	About       string                 `json:"about,omitempty"` // Markdown
	AsOf        string                 `json:"as_of"`
	Groups      []Group                `json:"groups"`
	Skills      []Skill                `json:"skills"`
	Timelines   []career.SkillTimeline `json:"timelines"`
	TotalMonths int                    `json:"total_months"`
}

// Group is one continuous engagement at an organization.
type Group struct {
	Label    string  `json:"label"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration string  `json:"duration"`
	Ongoing  bool    `json:"ongoing"`
	Entries  []Entry `json:"entries"`
}

// Entry is one experience inside a group.
type Entry struct {
	ID           int           `json:"id"`
	Titles       []string      `json:"titles"`
	Start        string        `json:"start"`
	End          string        `json:"end"`
	Duration     string        `json:"duration"`
	Technologies []string      `json:"technologies"`
	Notes        []career.Note `json:"notes"`
}

// Skill is a technology with its formatted cumulative duration.
type Skill struct {
	Name     string `json:"name"`
	Years    int    `json:"years"`
	Months   int    `json:"months"`
	Duration string `json:"duration"`
}

// Label names a group: "Org", or "Org (client: Client)" for client work.
func Label(g career.GroupedExperience) string {
	if g.IsClientWork && g.ClientCompanyName != "" {
		return g.OrganizationName + " (client: " + g.ClientCompanyName + ")"
	}
	return g.OrganizationName
}

// Build groups the experiences, aggregates skills and converts the profile
// "about" field to Markdown. Groups are newest first, entries oldest first.
func Build(doc *source.Document, ex career.Extractor, now time.Time) Resume {
	r := Resume{
		Profile:   doc.Profile,
		About:     AboutMarkdown(doc.Profile.About),
		AsOf:      now.Format("2006-01"),
		Groups:    []Group{},
		Skills:    []Skill{},
		Timelines: career.CalculateSkillTimelines(doc.Experiences, ex, now),
	}

	var spans []career.Interval
	for _, g := range career.GroupExperiences(doc.Experiences) {
		end := g.EndIndexAt(now)
		spans = append(spans, career.Interval{Start: g.StartIndex(), End: end})

		grp := Group{
			Label:    Label(g),
			Start:    career.FormatStart(g.TotalStartYear, g.TotalStartMonth),
			End:      career.FormatPeriod(g.TotalEndYear, g.TotalEndMonth),
			Duration: career.FormatMonths(end - g.StartIndex()),
			Ongoing:  g.Ongoing(),
			Entries:  make([]Entry, 0, len(g.Experiences)),
		}
		for _, e := range g.Experiences {
			grp.Entries = append(grp.Entries, buildEntry(e, ex, now))
		}
		r.Groups = append(r.Groups, grp)
	}
	r.TotalMonths = career.TotalMonths(career.MergeIntervals(spans))

	for _, s := range career.CalculateSkillsWithYears(doc.Experiences, ex, now) {
		r.Skills = append(r.Skills, Skill{
			Name:     s.Name,
			Years:    s.Years,
			Months:   s.Months,
			Duration: s.Duration(),
		})
	}
	return r
}

// buildEntry lists the technologies the extractor recognizes; when it
// recognizes none, the stack line is shown as written.
func buildEntry(e career.Experience, ex career.Extractor, now time.Time) Entry {
	parts := career.ParseDescription(e.Description)
	techs := []string{}
	if strings.TrimSpace(e.Description) != "" {
		techs = ex.Extract(e.Description)
	}
	if len(techs) == 0 {
		techs = parts.Technologies
	}
	return Entry{
		ID:           e.ID,
		Titles:       e.Titles(),
		Start:        career.FormatStart(e.StartYear, e.StartMonth),
		End:          career.FormatPeriod(e.EndYear, e.EndMonth),
		Duration:     career.FormatMonths(e.EndIndexAt(now) - e.StartIndex()),
		Technologies: techs,
		Notes:        parts.Notes,
	}
}

// AboutMarkdown converts an HTML "about" field to Markdown. Plain text and
// unconvertible HTML are returned trimmed.
func AboutMarkdown(about string) string {
	about = strings.TrimSpace(about)
	if !strings.Contains(about, "<") {
		return about
	}
	md, err := htmltomarkdown.ConvertString(about)
	if err != nil {
		return about
	}
	return strings.TrimSpace(md)
}
