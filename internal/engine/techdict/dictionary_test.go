package techdict

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParses(t *testing.T) {
	d := Default()
	require.NotNil(t, d)
	assert.Greater(t, d.Len(), 50)
	assert.Same(t, d, Default(), "Default must return the same instance")
}

func TestExtract(t *testing.T) {
	d := Default()
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stack line", "React / Node.js\n* did X", []string{"Node.js", "React"}},
		{"sentence end", "Shipped with Docker.", []string{"Docker"}},
		{"java is not javascript", "JavaScript and TypeScript", []string{"JavaScript", "TypeScript"}},
		{"javascript is not java", "Java backend", []string{"Java"}},
		{"c++ is not c", "C++ / C# services", []string{"C#", "C++"}},
		{"plain c", "Embedded C firmware", []string{"C"}},
		{"go is case sensitive", "go to market, Go services", []string{"Go"}},
		{"lowercase go ignored", "let's go", []string{}},
		{"alias golang", "golang microservices", []string{"Go"}},
		{"alias folds case", "POSTGRES and k8s", []string{"Kubernetes", "PostgreSQL"}},
		{"sql inside postgresql", "PostgreSQL", []string{"PostgreSQL"}},
		{"duplicates collapse", "Docker, docker, DOCKER", []string{"Docker"}},
		{"dotnet", "ASP.NET Core", []string{".NET"}},
		{"longer mention wins", "React Native / Node.js", []string{"Node.js", "React Native"}},
		{"both when mentioned apart", "React Native app, React web", []string{"React", "React Native"}},
		{"empty", "   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Extract(tt.text))
		})
	}
}

func TestNewCustomDictionary(t *testing.T) {
	d, err := New([]Entry{
		{Name: "Widget", Aliases: []string{"wdgt"}},
		{Name: "Gizmo", CaseSensitive: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gizmo", "Widget"}, d.Extract("WDGT plus Gizmo"))
	assert.Equal(t, []string{}, d.Extract("gizmo"))

	name, ok := d.Canonical("  WDGT ")
	assert.True(t, ok)
	assert.Equal(t, "Widget", name)

	_, ok = d.Canonical("unknown")
	assert.False(t, ok)
	assert.Equal(t, 2, d.Len())
}

func TestNewRejectsBadEntries(t *testing.T) {
	_, err := New([]Entry{{Name: " "}})
	assert.Error(t, err)

	_, err = New([]Entry{{Name: "Go"}, {Name: "Go"}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte("technologies:\n  - name: Elm\n    aliases: [elm-lang]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Elm"}, d.Extract("wrote elm-lang views"))

	_, err = Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]byte("technologies: {"))
	assert.Error(t, err)
}

func TestExtractConcurrent(t *testing.T) {
	d := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"Go", "Redis"}, d.Extract("Go / Redis"))
		}()
	}
	wg.Wait()
}
