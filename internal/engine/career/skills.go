package career

import (
	"sort"
	"strings"
	"time"
)

// Extractor finds canonical technology names mentioned in free text.
// Implementations return each name at most once; order is not significant.
type Extractor interface {
	Extract(text string) []string
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(text string) []string

// Extract calls f(text).
func (f ExtractorFunc) Extract(text string) []string { return f(text) }

// Canonicalizer is implemented by extractors that can resolve aliases.
type Canonicalizer interface {
	Canonical(spelling string) (string, bool)
}

// CanonicalSkill trims spelling and resolves it through ex when ex knows
// aliases. Unknown spellings come back trimmed.
func CanonicalSkill(ex Extractor, spelling string) string {
	spelling = strings.TrimSpace(spelling)
	if c, ok := ex.(Canonicalizer); ok && spelling != "" {
		if name, found := c.Canonical(spelling); found {
			return name
		}
	}
	return spelling
}

// collectIntervals maps each technology to the periods of the experiences
// mentioning it. Ongoing experiences run up to now.
func collectIntervals(experiences []Experience, ex Extractor, now time.Time) map[string][]Interval {
	byName := make(map[string][]Interval)
	for _, e := range experiences {
		if strings.TrimSpace(e.Description) == "" {
			continue
		}
		span := Interval{Start: e.StartIndex(), End: e.EndIndexAt(now)}
		seen := make(map[string]bool)
		for _, name := range ex.Extract(e.Description) {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			byName[name] = append(byName[name], span)
		}
	}
	return byName
}

// CalculateSkillsWithYears returns, per technology, the total calendar time
// covered by the experiences that mention it. Overlapping experiences are
// counted once. Results are sorted by duration descending, then by name.
func CalculateSkillsWithYears(experiences []Experience, ex Extractor, now time.Time) []SkillWithYears {
	byName := collectIntervals(experiences, ex, now)

	skills := make([]SkillWithYears, 0, len(byName))
	for name, intervals := range byName {
		total := TotalMonths(MergeIntervals(intervals))
		skills = append(skills, SkillWithYears{
			Name:   name,
			Years:  total / 12,
			Months: total % 12,
		})
	}

	sort.Slice(skills, func(i, j int) bool {
		ti, tj := skills[i].TotalMonths(), skills[j].TotalMonths()
		if ti != tj {
			return ti > tj
		}
		return skills[i].Name < skills[j].Name
	})
	return skills
}

// CalculateSkillTimelines returns the merged usage periods per technology,
// ordered like CalculateSkillsWithYears.
func CalculateSkillTimelines(experiences []Experience, ex Extractor, now time.Time) []SkillTimeline {
	byName := collectIntervals(experiences, ex, now)

	timelines := make([]SkillTimeline, 0, len(byName))
	for name, intervals := range byName {
		merged := MergeIntervals(intervals)
		timelines = append(timelines, SkillTimeline{
			Name:        name,
			Periods:     merged,
			TotalMonths: TotalMonths(merged),
		})
	}

	sort.Slice(timelines, func(i, j int) bool {
		if timelines[i].TotalMonths != timelines[j].TotalMonths {
			return timelines[i].TotalMonths > timelines[j].TotalMonths
		}
		return timelines[i].Name < timelines[j].Name
	})
	return timelines
}
