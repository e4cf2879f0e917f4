package careerserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/export"
)

func (t *tools) registerCareerTimeline(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "career_timeline",
		Description: "List career history grouped into continuous engagements per organization, newest first. Consecutive roles at the same organization (gap of at most one month) are merged into one group; client work is grouped separately per client.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CareerTimelineInput) (*mcp.CallToolResult, CareerTimelineOutput, error) {
		out, err := t.careerTimeline(ctx, input)
		return nil, out, err
	})
}

func (t *tools) careerTimeline(ctx context.Context, input CareerTimelineInput) (CareerTimelineOutput, error) {
	st, err := t.current()
	if err != nil {
		return CareerTimelineOutput{}, err
	}

	filter := strings.ToLower(strings.TrimSpace(input.Organization))
	key := t.cacheKey("career_timeline", st, filter)
	if cached, ok := engine.CacheLoadJSON[CareerTimelineOutput](ctx, key); ok {
		return cached, nil
	}
	out := CareerTimelineOutput{
		AsOf:   t.asOf(),
		Groups: []career.GroupedExperience{},
		Labels: []string{},
	}
	for _, g := range career.GroupExperiences(st.Document.Experiences) {
		if filter != "" &&
			!strings.Contains(strings.ToLower(g.OrganizationName), filter) &&
			!strings.Contains(strings.ToLower(g.ClientCompanyName), filter) {
			continue
		}
		out.Groups = append(out.Groups, g)
		out.Labels = append(out.Labels, export.Label(g))
	}
	out.Total = len(out.Groups)
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}
