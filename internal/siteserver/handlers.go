package siteserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
	"github.com/anatolykoptev/go_portfolio/internal/engine/export"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
)

func (s *Server) routes() {
	r := s.router
	r.GET("/healthz", s.healthz)
	r.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, engine.FormatMetrics())
	})

	api := r.Group("/api")
	api.GET("/experiences", s.experiences)
	api.GET("/skills", s.skills)
	api.GET("/skills/timeline", s.skillTimeline)

	r.GET("/resume.md", s.resume(export.FormatMarkdown))
	r.GET("/resume.txt", s.resume(export.FormatText))
	r.GET("/resume.json", s.resume(export.FormatJSON))
	r.GET("/llms.txt", s.resume(export.FormatLLMs))
}

// state writes a 503 and returns false when no document is loaded.
func (s *Server) state(c *gin.Context) (*source.State, bool) {
	st, err := s.loader.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return st, true
}

func (s *Server) healthz(c *gin.Context) {
	st, err := s.loader.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": st.Version,
		"origin":  st.Origin,
	})
}

func (s *Server) experiences(c *gin.Context) {
	st, ok := s.state(c)
	if !ok {
		return
	}
	groups := career.GroupExperiences(st.Document.Experiences)
	if org := strings.ToLower(strings.TrimSpace(c.Query("organization"))); org != "" {
		filtered := []career.GroupedExperience{}
		for _, g := range groups {
			if strings.Contains(strings.ToLower(g.OrganizationName), org) ||
				strings.Contains(strings.ToLower(g.ClientCompanyName), org) {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}
	c.JSON(http.StatusOK, gin.H{
		"as_of":  s.now().Format("2006-01"),
		"groups": groups,
	})
}

func (s *Server) skills(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	st, ok := s.state(c)
	if !ok {
		return
	}

	all := career.CalculateSkillsWithYears(st.Document.Experiences, s.ex, s.now())
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]export.Skill, 0, len(all))
	for _, sk := range all {
		out = append(out, export.Skill{Name: sk.Name, Years: sk.Years, Months: sk.Months, Duration: sk.Duration()})
	}
	c.JSON(http.StatusOK, gin.H{
		"as_of":  s.now().Format("2006-01"),
		"skills": out,
	})
}

func (s *Server) skillTimeline(c *gin.Context) {
	st, ok := s.state(c)
	if !ok {
		return
	}
	want := career.CanonicalSkill(s.ex, c.Query("skill"))
	timelines := career.CalculateSkillTimelines(st.Document.Experiences, s.ex, s.now())
	if want != "" {
		filtered := []career.SkillTimeline{}
		for _, tl := range timelines {
			if strings.EqualFold(tl.Name, want) {
				filtered = append(filtered, tl)
			}
		}
		if len(filtered) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "skill not found: " + want})
			return
		}
		timelines = filtered
	}
	c.JSON(http.StatusOK, gin.H{
		"as_of":     s.now().Format("2006-01"),
		"timelines": timelines,
	})
}

// resume serves a rendered export with an ETag derived from the document
// version, the month and the format.
func (s *Server) resume(f export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := s.state(c)
		if !ok {
			return
		}
		now := s.now()
		etag := `"` + shortVersion(st.Version) + "-" + now.Format("200601") + "-" + string(f) + `"`
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}

		body, err := export.Render(c.Request.Context(), st, s.ex, now, f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, f.ContentType(), []byte(body))
	}
}

func shortVersion(v string) string {
	if len(v) > 16 {
		return v[:16]
	}
	return v
}
