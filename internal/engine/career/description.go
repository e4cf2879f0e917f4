package career

import "strings"

// Note is one responsibility line of a description. Level 0 is top-level.
type Note struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DescriptionParts is an experience description split into its stack line
// and its notes.
type DescriptionParts struct {
	Technologies []string `json:"technologies"`
	Notes        []Note   `json:"notes"`
}

var bulletMarkers = []string{"*", "-", "•", "・"}

// ParseDescription splits a description whose first line lists
// slash-separated technologies and whose remaining lines are bullet notes.
func ParseDescription(text string) DescriptionParts {
	parts := DescriptionParts{Technologies: []string{}, Notes: []Note{}}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	first := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return parts
	}

	for _, tech := range strings.Split(lines[first], "/") {
		if tech = strings.TrimSpace(tech); tech != "" {
			parts.Technologies = append(parts.Technologies, tech)
		}
	}

	for _, line := range lines[first+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		level := indentWidth(line) / 2
		body := strings.TrimSpace(line)
		for _, m := range bulletMarkers {
			if strings.HasPrefix(body, m) {
				body = strings.TrimSpace(strings.TrimPrefix(body, m))
				break
			}
		}
		if body == "" {
			continue
		}
		parts.Notes = append(parts.Notes, Note{Level: level, Text: body})
	}
	return parts
}

// indentWidth counts leading whitespace, a tab counting as two spaces and a
// full-width space as one.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ', '　':
			w++
		case '\t':
			w += 2
		default:
			return w
		}
	}
	return w
}
