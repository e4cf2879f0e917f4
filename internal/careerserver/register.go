// Package careerserver exposes the portfolio as MCP tools.
package careerserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
)

// toolCount is the number of tools RegisterTools adds.
const toolCount = 7

// tools carries the dependencies shared by every handler.
type tools struct {
	loader *source.Loader
	ex     career.Extractor
	now    func() time.Time
}

// RegisterTools registers all portfolio tools on the given MCP server:
// career_timeline, skill_years, skill_timeline, resume_export,
// career_summary, portfolio_status, portfolio_refresh.
func RegisterTools(server *mcp.Server, loader *source.Loader, ex career.Extractor) int {
	t := &tools{loader: loader, ex: ex, now: time.Now}
	t.registerCareerTimeline(server)
	t.registerSkillYears(server)
	t.registerSkillTimeline(server)
	t.registerResumeExport(server)
	t.registerCareerSummary(server)
	t.registerStatus(server)
	t.registerRefresh(server)
	return toolCount
}

// current counts the call and returns the loaded document state.
func (t *tools) current() (*source.State, error) {
	engine.IncrToolCalls()
	return t.loader.Current()
}

func (t *tools) asOf() string {
	return t.now().Format("2006-01")
}

// cacheKey keys a tool result on the document version and the current
// month, so results roll over with either.
func (t *tools) cacheKey(tool string, st *source.State, parts ...string) string {
	return engine.CacheKey(append([]string{"tool", tool, st.Version, t.asOf()}, parts...)...)
}

func (t *tools) statusOf(ctx context.Context, st *source.State) StatusOutput {
	snapshots, err := t.loader.SnapshotCount(ctx)
	if err != nil {
		slog.Warn("portfolio_status: snapshot count failed", slog.Any("error", err))
	}
	return StatusOutput{
		Version:     st.Version,
		Origin:      st.Origin,
		LoadedAt:    st.LoadedAt.UTC().Format(time.RFC3339),
		Experiences: len(st.Document.Experiences),
		Snapshots:   snapshots,
		LLMEnabled:  engine.LLMEnabled(),
	}
}

func (t *tools) registerStatus(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "portfolio_status",
		Description: "Show which portfolio document is loaded: version hash, origin (file, http, postgres or snapshot), load time, experience count, and whether career_summary is available.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		st, err := t.current()
		if err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, t.statusOf(ctx, st), nil
	})
}

func (t *tools) registerRefresh(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "portfolio_refresh",
		Description: "Reload the portfolio document from its source now. On failure the previous document stays loaded and the error is returned.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		out, err := t.refresh(ctx)
		return nil, out, err
	})
}

func (t *tools) refresh(ctx context.Context) (StatusOutput, error) {
	engine.IncrToolCalls()
	before := t.loader.Version()
	if err := t.loader.Refresh(ctx); err != nil {
		return StatusOutput{}, err
	}
	st, err := t.loader.Current()
	if err != nil {
		return StatusOutput{}, err
	}
	out := t.statusOf(ctx, st)
	out.Changed = st.Version != before
	return out, nil
}
