package careerserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/export"
)

func (t *tools) registerSkillYears(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_years",
		Description: "List technologies with cumulative experience in years and months, longest first. Overlapping roles using the same technology are counted once; ongoing roles count up to the current month.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SkillYearsInput) (*mcp.CallToolResult, SkillYearsOutput, error) {
		out, err := t.skillYears(ctx, input)
		return nil, out, err
	})
}

func (t *tools) skillYears(ctx context.Context, input SkillYearsInput) (SkillYearsOutput, error) {
	if input.Limit < 0 {
		return SkillYearsOutput{}, errors.New("limit must not be negative")
	}
	st, err := t.current()
	if err != nil {
		return SkillYearsOutput{}, err
	}
	key := t.cacheKey("skill_years", st, strconv.Itoa(input.Limit))
	if cached, ok := engine.CacheLoadJSON[SkillYearsOutput](ctx, key); ok {
		return cached, nil
	}

	skills := career.CalculateSkillsWithYears(st.Document.Experiences, t.ex, t.now())
	out := SkillYearsOutput{AsOf: t.asOf(), Skills: make([]export.Skill, 0, len(skills)), Total: len(skills)}
	for _, s := range skills {
		if input.Limit > 0 && len(out.Skills) == input.Limit {
			break
		}
		out.Skills = append(out.Skills, export.Skill{
			Name:     s.Name,
			Years:    s.Years,
			Months:   s.Months,
			Duration: s.Duration(),
		})
	}
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}

func (t *tools) registerSkillTimeline(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_timeline",
		Description: "Show the merged periods in which each technology was used, as year-month ranges. Pass skill to get one technology (aliases like golang or k8s are accepted).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SkillTimelineInput) (*mcp.CallToolResult, SkillTimelineOutput, error) {
		out, err := t.skillTimeline(ctx, input)
		return nil, out, err
	})
}

func (t *tools) skillTimeline(ctx context.Context, input SkillTimelineInput) (SkillTimelineOutput, error) {
	st, err := t.current()
	if err != nil {
		return SkillTimelineOutput{}, err
	}

	want := career.CanonicalSkill(t.ex, input.Skill)
	key := t.cacheKey("skill_timeline", st, want)
	if cached, ok := engine.CacheLoadJSON[SkillTimelineOutput](ctx, key); ok {
		return cached, nil
	}

	out := SkillTimelineOutput{AsOf: t.asOf(), Timelines: []SkillTimelineItem{}}
	for _, tl := range career.CalculateSkillTimelines(st.Document.Experiences, t.ex, t.now()) {
		if want != "" && !strings.EqualFold(tl.Name, want) {
			continue
		}
		item := SkillTimelineItem{
			Name:     tl.Name,
			Periods:  make([]Period, 0, len(tl.Periods)),
			Duration: career.FormatMonths(tl.TotalMonths),
		}
		for _, p := range tl.Periods {
			item.Periods = append(item.Periods, Period{
				Start:  career.FormatIndex(p.Start),
				End:    career.FormatIndex(p.End),
				Months: p.Months(),
			})
		}
		out.Timelines = append(out.Timelines, item)
	}
	if want != "" && len(out.Timelines) == 0 {
		return out, fmt.Errorf("skill %q not found in career history", input.Skill)
	}
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}
