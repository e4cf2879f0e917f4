package careerserver

import (
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/export"
)

// CareerTimelineInput is the input for career_timeline.
type CareerTimelineInput struct {
	Organization string `json:"organization,omitempty" jsonschema:"Only groups whose organization or client name contains this text (case-insensitive)"`
}

// CareerTimelineOutput is the output for career_timeline.
type CareerTimelineOutput struct {
	AsOf   string                     `json:"as_of"`
	Groups []career.GroupedExperience `json:"groups"`
	Labels []string                   `json:"labels"`
	Total  int                        `json:"total"`
}

// SkillYearsInput is the input for skill_years.
type SkillYearsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of skills to return (default: all)"`
}

// SkillYearsOutput is the output for skill_years.
type SkillYearsOutput struct {
	AsOf   string         `json:"as_of"`
	Skills []export.Skill `json:"skills"`
	Total  int            `json:"total"`
}

// SkillTimelineInput is the input for skill_timeline.
type SkillTimelineInput struct {
	Skill string `json:"skill,omitempty" jsonschema:"Technology name or alias, e.g. Go or golang (default: all)"`
}

// Period is a merged usage period rendered as year-month strings.
type Period struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Months int    `json:"months"`
}

// SkillTimelineItem is one technology's usage history.
type SkillTimelineItem struct {
	Name     string   `json:"name"`
	Periods  []Period `json:"periods"`
	Duration string   `json:"duration"`
}

// SkillTimelineOutput is the output for skill_timeline.
type SkillTimelineOutput struct {
	AsOf      string              `json:"as_of"`
	Timelines []SkillTimelineItem `json:"timelines"`
}

// ResumeExportInput is the input for resume_export.
type ResumeExportInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: markdown (default), text, json, llms"`
}

// ResumeExportOutput is the output for resume_export.
type ResumeExportOutput struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Version     string `json:"version"`
	Content     string `json:"content"`
}

// CareerSummaryInput is the input for career_summary.
type CareerSummaryInput struct {
	Focus string `json:"focus,omitempty" jsonschema:"Role or technology to emphasize, e.g. platform engineering"`
}

// CareerSummaryOutput is the output for career_summary.
type CareerSummaryOutput struct {
	Summary string `json:"summary"`
	Focus   string `json:"focus,omitempty"`
	Version string `json:"version"`
}

// StatusInput is the (empty) input for portfolio_status and portfolio_refresh.
type StatusInput struct{}

// StatusOutput describes the loaded document.
type StatusOutput struct {
	Version     string `json:"version"`
	Origin      string `json:"origin"`
	LoadedAt    string `json:"loaded_at"`
	Experiences int    `json:"experiences"`
	Snapshots   int    `json:"snapshots"`
	LLMEnabled  bool   `json:"llm_enabled"`
	Changed     bool   `json:"changed,omitempty"`
}
