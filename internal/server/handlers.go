package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crimson-sun/newsdesk/internal/dashboard"
	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/pipeline"
)

// errorResponse is the body of every 4xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// MessagesResponse is the body of /api/messages and /api/categories/:label.
type MessagesResponse struct {
	Filter   dashboard.Filter  `json:"filter"`
	Category string            `json:"category,omitempty"`
	Count    int               `json:"count"`
	Records  []model.Record    `json:"records"`
	Notices  []pipeline.Notice `json:"notices"`
}

// SummaryResponse is the body of /api/summary.
type SummaryResponse struct {
	RunID      string            `json:"run_id"`
	Filter     dashboard.Filter  `json:"filter"`
	Metrics    dashboard.Metrics `json:"metrics"`
	Categories []dashboard.Count `json:"categories"`
	TopAuthors []dashboard.Count `json:"top_authors"`
	Loaded     map[string]int    `json:"loaded"`
	NoData     bool              `json:"no_data"`
	Notices    []pipeline.Notice `json:"notices"`
}

// TimelineResponse is the body of /api/timeline.
type TimelineResponse struct {
	Filter  dashboard.Filter            `json:"filter"`
	Points  []dashboard.HourSourceCount `json:"points"`
	Notices []pipeline.Notice           `json:"notices"`
}

// AuthorsResponse is the body of /api/authors.
type AuthorsResponse struct {
	Authors []string          `json:"authors"`
	Notices []pipeline.Notice `json:"notices"`
}

func (s *Server) messages(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	res := s.run(c)
	records := f.Apply(res.Records)
	c.JSON(http.StatusOK, MessagesResponse{
		Filter:  f,
		Count:   len(records),
		Records: records,
		Notices: res.Report.Notices,
	})
}

func (s *Server) category(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	label := c.Param("label")
	res := s.run(c)
	records := dashboard.ByCategory(f.Apply(res.Records), label)
	c.JSON(http.StatusOK, MessagesResponse{
		Filter:   f,
		Category: label,
		Count:    len(records),
		Records:  records,
		Notices:  res.Report.Notices,
	})
}

func (s *Server) summary(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	n := dashboard.DefaultTopAuthors
	if raw := c.Query("top"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.badRequest(c, fmt.Errorf("top must be a positive integer, got %q", raw))
			return
		}
		n = v
	}

	res := s.run(c)
	records := f.Apply(res.Records)
	c.JSON(http.StatusOK, SummaryResponse{
		RunID:      res.Report.RunID,
		Filter:     f,
		Metrics:    dashboard.Summarize(records, f),
		Categories: dashboard.CategoryCounts(records),
		TopAuthors: dashboard.TopAuthors(records, n),
		Loaded:     res.Report.Loaded,
		NoData:     res.Report.NoData,
		Notices:    res.Report.Notices,
	})
}

func (s *Server) timeline(c *gin.Context) {
	f, ok := s.bindFilter(c)
	if !ok {
		return
	}
	res := s.run(c)
	c.JSON(http.StatusOK, TimelineResponse{
		Filter:  f,
		Points:  dashboard.HourlyBySource(f.Apply(res.Records)),
		Notices: res.Report.Notices,
	})
}

func (s *Server) authors(c *gin.Context) {
	res := s.run(c)
	c.JSON(http.StatusOK, AuthorsResponse{
		Authors: dashboard.Authors(res.Records),
		Notices: res.Report.Notices,
	})
}

func (s *Server) run(c *gin.Context) pipeline.Result {
	res := s.runner.Run(c.Request.Context())
	if res.Report.Notices == nil {
		res.Report.Notices = []pipeline.Notice{}
	}
	return res
}

// bindFilter reads from, to, author and q over the default filter.
// On a bad value it writes a 400 and reports false.
func (s *Server) bindFilter(c *gin.Context) (dashboard.Filter, bool) {
	f := dashboard.DefaultFilter()
	var errs []error

	if raw := c.Query("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("from must be an integer hour, got %q", raw))
		}
		f.HourFrom = v
	}
	if raw := c.Query("to"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("to must be an integer hour, got %q", raw))
		}
		f.HourTo = v
	}
	if author := c.Query("author"); author != "" {
		f.Author = author
	}
	f.Search = c.Query("q")

	if len(errs) == 0 {
		if err := f.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.badRequest(c, err)
		return dashboard.Filter{}, false
	}
	return f, true
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.logger.Debug("bad request", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
