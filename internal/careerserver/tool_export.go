package careerserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_portfolio/internal/engine/export"
)

func (t *tools) registerResumeExport(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resume_export",
		Description: "Export the full résumé: profile, grouped career history with notes, and skill durations. Formats: markdown (default), text, json, llms (compact llms.txt for AI agents).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ResumeExportInput) (*mcp.CallToolResult, ResumeExportOutput, error) {
		out, err := t.resumeExport(ctx, input)
		return nil, out, err
	})
}

func (t *tools) resumeExport(ctx context.Context, input ResumeExportInput) (ResumeExportOutput, error) {
	f, err := export.ParseFormat(input.Format)
	if err != nil {
		return ResumeExportOutput{}, err
	}
	st, err := t.current()
	if err != nil {
		return ResumeExportOutput{}, err
	}
	content, err := export.Render(ctx, st, t.ex, t.now(), f)
	if err != nil {
		return ResumeExportOutput{}, err
	}
	return ResumeExportOutput{
		Format:      string(f),
		ContentType: f.ContentType(),
		Version:     st.Version,
		Content:     content,
	}, nil
}

func (t *tools) registerCareerSummary(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "career_summary",
		Description: "Write a 3-5 sentence professional summary of the career history using the configured LLM. Optionally focus on a role or technology. Requires LLM_API_KEY.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CareerSummaryInput) (*mcp.CallToolResult, CareerSummaryOutput, error) {
		out, err := t.careerSummary(ctx, input)
		return nil, out, err
	})
}

func (t *tools) careerSummary(ctx context.Context, input CareerSummaryInput) (CareerSummaryOutput, error) {
	st, err := t.current()
	if err != nil {
		return CareerSummaryOutput{}, err
	}
	summary, err := export.Summarize(ctx, st, t.ex, t.now(), input.Focus)
	if err != nil {
		return CareerSummaryOutput{}, err
	}
	return CareerSummaryOutput{Summary: summary, Focus: input.Focus, Version: st.Version}, nil
}
