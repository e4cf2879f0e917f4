package career

// Position is one job title held during an experience.
type Position struct {
	ID              int    `json:"id"`
	JobPositionName string `json:"job_position_name"`
}

// Experience is a single employment or engagement record.
// EndYear == nil means the period is ongoing; EndMonth is nil with it.
type Experience struct {
	ID                int        `json:"id"`
	OrganizationName  string     `json:"organization_name"`
	IsClientWork      bool       `json:"is_client_work"`
	ClientCompanyName string     `json:"client_company_name"`
	Positions         []Position `json:"positions"`
	PositionName      string     `json:"position_name"`
	StartYear         int        `json:"start_year"`
	StartMonth        int        `json:"start_month"`
	EndYear           *int       `json:"end_year"`
	EndMonth          *int       `json:"end_month"`
	Description       string     `json:"description"`
	UpdatedAt         string     `json:"updated_at,omitempty"`
}

// Ongoing reports whether the experience has no end date yet.
func (e Experience) Ongoing() bool {
	return e.EndYear == nil
}

// Titles returns the position names, falling back to PositionName.
func (e Experience) Titles() []string {
	out := make([]string, 0, len(e.Positions))
	for _, p := range e.Positions {
		if p.JobPositionName != "" {
			out = append(out, p.JobPositionName)
		}
	}
	if len(out) == 0 && e.PositionName != "" {
		out = append(out, e.PositionName)
	}
	return out
}

// GroupedExperience is one continuous engagement span at one organization.
type GroupedExperience struct {
	OrganizationName  string       `json:"organization_name"`
	IsClientWork      bool         `json:"is_client_work"`
	ClientCompanyName string       `json:"client_company_name"`
	TotalStartYear    int          `json:"total_start_year"`
	TotalStartMonth   int          `json:"total_start_month"`
	TotalEndYear      *int         `json:"total_end_year"`
	TotalEndMonth     *int         `json:"total_end_month"`
	Experiences       []Experience `json:"experiences"`
}

// Ongoing reports whether the span is still open.
func (g GroupedExperience) Ongoing() bool {
	return g.TotalEndYear == nil
}

// SkillWithYears is a technology with its cumulative, non-overlapping usage.
type SkillWithYears struct {
	Name   string `json:"name"`
	Years  int    `json:"years"`
	Months int    `json:"months"`
}

// TotalMonths returns Years*12 + Months.
func (s SkillWithYears) TotalMonths() int {
	return s.Years*12 + s.Months
}

// Duration formats the skill's span for display.
func (s SkillWithYears) Duration() string {
	return FormatDuration(s.Years, s.Months)
}

// SkillTimeline lists the merged periods in which a technology was in use.
type SkillTimeline struct {
	Name        string     `json:"name"`
	Periods     []Interval `json:"periods"`
	TotalMonths int        `json:"total_months"`
}
