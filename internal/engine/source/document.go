package source

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
)

// Link is a labelled profile URL (GitHub, LinkedIn, personal site).
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Profile is the person the portfolio describes.
type Profile struct {
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
	Links    []Link `json:"links,omitempty"`
	About    string `json:"about,omitempty"` // HTML or plain text
}

// Document is the full portfolio payload every Source produces.
type Document struct {
	Profile     Profile             `json:"profile"`
	Experiences []career.Experience `json:"experiences"`
}

// Decode parses a JSON document. It does not validate.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Experiences == nil {
		doc.Experiences = []career.Experience{}
	}
	return &doc, nil
}

// Encode serializes the document as compact JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Version is the hex sha256 of the encoded document. Equal documents share
// a version, so it doubles as a cache-busting key.
func (d *Document) Version() (string, error) {
	data, err := d.Encode()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Validate checks every experience and returns all problems joined, each
// wrapping ErrInvalidDocument.
func (d *Document) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(d.Profile.Name) == "" {
		invalid("profile name is required")
	}

	seen := make(map[int]bool, len(d.Experiences))
	for i, e := range d.Experiences {
		where := fmt.Sprintf("experience[%d] id=%d", i, e.ID)
		if seen[e.ID] {
			invalid("%s: duplicate id", where)
		}
		seen[e.ID] = true

		if strings.TrimSpace(e.OrganizationName) == "" {
			invalid("%s: organization_name is required", where)
		}
		if e.StartMonth < 1 || e.StartMonth > 12 {
			invalid("%s: start_month %d out of range", where, e.StartMonth)
		}
		if e.EndYear == nil && e.EndMonth != nil {
			invalid("%s: end_month set without end_year", where)
		}
		if e.EndMonth != nil && (*e.EndMonth < 1 || *e.EndMonth > 12) {
			invalid("%s: end_month %d out of range", where, *e.EndMonth)
		}
		if end, ok := e.EndIndex(); ok && end < e.StartIndex() {
			invalid("%s: ends before it starts", where)
		}
	}
	return errors.Join(errs...)
}
