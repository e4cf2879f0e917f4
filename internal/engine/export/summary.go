package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
)

// summaryInputLimit caps the résumé text sent to the model, in runes.
const summaryInputLimit = 12000

// Summarize asks the configured LLM for a summary of st, optionally
// focused on a role or technology. Results are cached per version, focus
// and month.
func Summarize(ctx context.Context, st *source.State, ex career.Extractor, now time.Time, focus string) (string, error) {
	if !engine.LLMEnabled() {
		return "", engine.ErrLLMNotConfigured
	}
	focus = strings.TrimSpace(focus)
	key := engine.CacheKey("summary", st.Version, focus, now.Format("2006-01"))
	if out, ok := engine.CacheGet(ctx, key); ok {
		return out, nil
	}

	md, err := Render(ctx, st, ex, now, FormatMarkdown)
	if err != nil {
		return "", err
	}
	out, err := engine.CallLLM(ctx, buildSummaryPrompt(engine.CurrentDate(), focus, md))
	if err != nil {
		return "", fmt.Errorf("career summary: %w", err)
	}
	engine.CacheSet(ctx, key, out)
	return out, nil
}

func buildSummaryPrompt(date, focus, resumeMarkdown string) string {
	instruction := ""
	if focus != "" {
		instruction = "Emphasize experience relevant to: " + focus
	}
	return fmt.Sprintf(summaryPrompt, date, instruction, engine.TruncateRunes(resumeMarkdown, summaryInputLimit, "\n..."))
}
