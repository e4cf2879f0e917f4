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

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatLLMs     Format = "llms"
)

// Formats lists every supported format.
var Formats = []Format{FormatMarkdown, FormatText, FormatJSON, FormatLLMs}

// ParseFormat resolves a format name. Empty means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "llms", "llms.txt":
		return FormatLLMs, nil
	}
	return "", fmt.Errorf("unknown format %q (want markdown, text, json or llms)", s)
}

// ContentType returns the HTTP content type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render produces the export of st in format f. Output is cached per
// document version and calendar month, since durations only change monthly.
func Render(ctx context.Context, st *source.State, ex career.Extractor, now time.Time, f Format) (string, error) {
	key := engine.CacheKey("export", string(f), st.Version, now.Format("2006-01"))
	if out, ok := engine.CacheGet(ctx, key); ok {
		return out, nil
	}

	engine.IncrExportRenders()
	r := Build(st.Document, ex, now)

	var out string
	switch f {
	case FormatMarkdown:
		out = Markdown(r)
	case FormatText:
		out = Text(r)
	case FormatLLMs:
		out = LLMsTxt(r)
	case FormatJSON:
		data, err := JSON(r)
		if err != nil {
			return "", err
		}
		out = string(data)
	default:
		return "", fmt.Errorf("render: unknown format %q", f)
	}

	engine.CacheSet(ctx, key, out)
	return out, nil
}
