package career

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// stackLine extracts the slash-separated first line, enough for tests.
var stackLine = ExtractorFunc(func(text string) []string {
	return ParseDescription(text).Technologies
})

var fixedNow = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func withDesc(e Experience, desc string) Experience {
	e.Description = desc
	return e
}

func TestCalculateSkillsWithYears_Empty(t *testing.T) {
	got := CalculateSkillsWithYears(nil, stackLine, fixedNow)
	if got == nil || len(got) != 0 {
		t.Errorf("CalculateSkillsWithYears(nil) = %#v, want empty slice", got)
	}
}

func TestCalculateSkillsWithYears_OngoingCountsToNow(t *testing.T) {
	e := withDesc(exp(1, "Acme Corp", 2022, 1, 0, 0), "React / Node.js\n* did X")

	got := CalculateSkillsWithYears([]Experience{e}, stackLine, fixedNow)
	// 2022-01 .. 2026-10 = 57 months; equal durations sort by name.
	want := []SkillWithYears{
		{Name: "Node.js", Years: 4, Months: 9},
		{Name: "React", Years: 4, Months: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("skills = %+v, want %+v", got, want)
	}
}

func TestCalculateSkillsWithYears_OverlapCountedOnce(t *testing.T) {
	tests := []struct {
		name  string
		input []Experience
		want  SkillWithYears
	}{
		{
			name: "partial overlap",
			input: []Experience{
				withDesc(exp(1, "Acme Corp", 2020, 1, 2021, 1), "Go"),
				withDesc(exp(2, "Globex", 2020, 6, 2021, 6), "Go"),
			},
			want: SkillWithYears{Name: "Go", Years: 1, Months: 5},
		},
		{
			name: "python union",
			input: []Experience{
				withDesc(exp(1, "Acme Corp", 2018, 1, 2019, 1), "Python"),
				withDesc(exp(2, "Globex", 2018, 7, 2019, 7), "Python"),
			},
			want: SkillWithYears{Name: "Python", Years: 1, Months: 6},
		},
		{
			name: "containment",
			input: []Experience{
				withDesc(exp(1, "Acme Corp", 2018, 1, 2020, 1), "Python"),
				withDesc(exp(2, "Globex", 2018, 6, 2018, 9), "Python"),
			},
			want: SkillWithYears{Name: "Python", Years: 2, Months: 0},
		},
		{
			name: "disjoint periods add up",
			input: []Experience{
				withDesc(exp(1, "Acme Corp", 2018, 1, 2018, 7), "Python"),
				withDesc(exp(2, "Globex", 2019, 1, 2019, 7), "Python"),
			},
			want: SkillWithYears{Name: "Python", Years: 1, Months: 0},
		},
		{
			name: "touching periods merge",
			input: []Experience{
				withDesc(exp(1, "Acme Corp", 2018, 1, 2018, 7), "Python"),
				withDesc(exp(2, "Globex", 2018, 7, 2019, 1), "Python"),
			},
			want: SkillWithYears{Name: "Python", Years: 1, Months: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSkillsWithYears(tt.input, stackLine, fixedNow)
			if len(got) != 1 {
				t.Fatalf("skills = %+v, want exactly one", got)
			}
			if got[0] != tt.want {
				t.Errorf("skill = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestCalculateSkillsWithYears_Ordering(t *testing.T) {
	input := []Experience{
		withDesc(exp(1, "Acme Corp", 2018, 1, 2020, 1), "Go / Python / Docker"),
		withDesc(exp(2, "Globex", 2020, 1, 2021, 1), "Kotlin / Docker"),
	}
	got := CalculateSkillsWithYears(input, stackLine, fixedNow)

	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	// Docker 36 months; Go and Python 24 (alphabetical); Kotlin 12.
	want := []string{"Docker", "Go", "Python", "Kotlin"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
}

func TestCalculateSkillsWithYears_TieIsCaseSensitive(t *testing.T) {
	input := []Experience{
		withDesc(exp(1, "Acme Corp", 2018, 1, 2019, 1), "jQuery / Vue / Angular"),
	}
	got := CalculateSkillsWithYears(input, stackLine, fixedNow)
	want := []string{"Angular", "Vue", "jQuery"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("skills[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCalculateSkillsWithYears_SkipsEmptyDescriptions(t *testing.T) {
	calls := 0
	counting := ExtractorFunc(func(text string) []string {
		calls++
		return stackLine(text)
	})
	input := []Experience{
		exp(1, "Acme Corp", 2018, 1, 2019, 1),
		withDesc(exp(2, "Globex", 2019, 1, 2019, 6), "   \n  "),
		withDesc(exp(3, "Initech", 2020, 1, 2020, 6), "Rust"),
	}
	got := CalculateSkillsWithYears(input, counting, fixedNow)
	if calls != 1 {
		t.Errorf("extractor calls = %d, want 1", calls)
	}
	if len(got) != 1 || got[0].Name != "Rust" {
		t.Errorf("skills = %+v, want only Rust", got)
	}
}

func TestCalculateSkillsWithYears_DuplicateMentionsCountOnce(t *testing.T) {
	dup := ExtractorFunc(func(string) []string { return []string{"Go", "Go", ""} })
	input := []Experience{withDesc(exp(1, "Acme Corp", 2018, 1, 2019, 1), "Go")}

	got := CalculateSkillsWithYears(input, dup, fixedNow)
	if len(got) != 1 || got[0].TotalMonths() != 12 {
		t.Errorf("skills = %+v, want Go with 12 months", got)
	}
}

func TestCalculateSkillsWithYears_Idempotent(t *testing.T) {
	input := []Experience{
		withDesc(exp(1, "Acme Corp", 2018, 1, 2020, 1), "Go / Python"),
		withDesc(exp(2, "Globex", 2019, 6, 0, 0), "Go / TypeScript"),
	}
	first := CalculateSkillsWithYears(input, stackLine, fixedNow)
	second := CalculateSkillsWithYears(input, stackLine, fixedNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("not idempotent: %+v vs %+v", first, second)
	}
}

func TestCalculateSkillTimelines(t *testing.T) {
	input := []Experience{
		withDesc(exp(1, "Acme Corp", 2018, 1, 2018, 7), "Go"),
		withDesc(exp(2, "Globex", 2018, 6, 2019, 1), "Go / Rust"),
		withDesc(exp(3, "Initech", 2020, 1, 2020, 6), "Go"),
	}
	got := CalculateSkillTimelines(input, stackLine, fixedNow)
	if len(got) != 2 {
		t.Fatalf("timelines = %d, want 2", len(got))
	}
	goLine := got[0]
	if goLine.Name != "Go" {
		t.Fatalf("first timeline = %q, want Go", goLine.Name)
	}
	want := []Interval{
		{Start: MonthIndex(2018, 1), End: MonthIndex(2019, 1)},
		{Start: MonthIndex(2020, 1), End: MonthIndex(2020, 6)},
	}
	if !reflect.DeepEqual(goLine.Periods, want) {
		t.Errorf("Go periods = %v, want %v", goLine.Periods, want)
	}
	if goLine.TotalMonths != 17 {
		t.Errorf("Go total = %d, want 17", goLine.TotalMonths)
	}
	if !strings.EqualFold(got[1].Name, "rust") {
		t.Errorf("second timeline = %q, want Rust", got[1].Name)
	}
}

// aliasExtractor resolves a fixed alias table.
type aliasExtractor struct{ ExtractorFunc }

func (aliasExtractor) Canonical(spelling string) (string, bool) {
	if strings.EqualFold(spelling, "golang") {
		return "Go", true
	}
	return "", false
}

func TestCanonicalSkill(t *testing.T) {
	ex := aliasExtractor{stackLine}
	tests := []struct {
		name string
		ex   Extractor
		in   string
		want string
	}{
		{"alias", ex, " golang ", "Go"},
		{"unknown kept", ex, "Zig", "Zig"},
		{"blank", ex, "  ", ""},
		{"no canonicalizer", stackLine, "golang", "golang"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalSkill(tt.ex, tt.in); got != tt.want {
				t.Errorf("CanonicalSkill(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
