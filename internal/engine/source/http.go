package source

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
)

// HTTPSource fetches the document from a URL, retrying transient failures.
type HTTPSource struct {
	URL   string
	Retry engine.RetryPolicy
}

// NewHTTPSource returns an HTTPSource with the default retry policy.
func NewHTTPSource(url string) HTTPSource {
	return HTTPSource{URL: url, Retry: engine.DefaultRetryPolicy}
}

func (s HTTPSource) Name() string { return "http" }

func (s HTTPSource) Load(ctx context.Context) (*Document, error) {
	data, err := engine.FetchJSON(ctx, s.URL, s.Retry)
	if err != nil {
		return nil, fmt.Errorf("http source: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("http source: %w", err)
	}
	return doc, nil
}
