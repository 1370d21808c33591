package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type classifyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Documents   string `json:"documents"`
}

type analyzeResponse struct {
	Summary batch.Summary        `json:"summary"`
	Results []types.FinalVerdict `json:"results"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing_columns,omitempty"`
}

type categoryView struct {
	Name         string   `json:"name"`
	HighPriority bool     `json:"high_priority"`
	Phrases      []string `json:"phrases"`
}

type regulationView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type taxonomyResponse struct {
	Categories   []categoryView   `json:"categories"`
	HighPriority []string         `json:"high_priority_categories"`
	Regulations  []regulationView `json:"regulations"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	feature := types.Feature{
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		SupportingText: strings.TrimSpace(req.Documents),
	}
	if feature.Title == "" || feature.Description == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "title and description are required"})
		return
	}

	c.JSON(http.StatusOK, s.classifier.Classify(c.Request.Context(), feature))
}

func (s *Server) analyze(c *gin.Context) {
	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "multipart field \"file\" is required"})
		return
	}

	file, err := upload.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	table, err := tabular.Read(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results, err := s.runner.Run(c.Request.Context(), table)
	var verr *batch.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Missing: verr.Missing})
		return
	case err != nil:
		s.logger.Error("batch analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	table = batch.ToTable(results)
	if wantsCSV(c) {
		c.Header("Content-Disposition", `attachment; filename="results.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := tabular.Write(c.Writer, table); err != nil {
			s.logger.Error("failed to write CSV response", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Summary: batch.Summarize(table),
		Results: results,
	})
}

// wantsCSV reports whether the client asked for the results file instead of JSON
func wantsCSV(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, "text/csv") == "text/csv"
}

func (s *Server) taxonomy(c *gin.Context) {
	resp := taxonomyResponse{
		Categories:   make([]categoryView, 0, s.categories.Len()),
		HighPriority: s.categories.HighPriority(),
		Regulations:  make([]regulationView, 0, s.regulations.Len()),
	}
	if resp.HighPriority == nil {
		resp.HighPriority = []string{}
	}
	s.categories.Each(func(cat taxonomy.Category) {
		resp.Categories = append(resp.Categories, categoryView{Name: cat.Name, HighPriority: cat.HighPriority, Phrases: cat.Phrases})
	})
	for _, reg := range s.regulations.All() {
		resp.Regulations = append(resp.Regulations, regulationView{Code: reg.Code, Name: reg.Name})
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) category(c *gin.Context) {
	cat, ok := s.categories.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "unknown category: " + c.Param("name")})
		return
	}
	c.JSON(http.StatusOK, categoryView{Name: cat.Name, HighPriority: cat.HighPriority, Phrases: cat.Phrases})
}

func (s *Server) regulation(c *gin.Context) {
	code := c.Param("code")
	name, ok := s.regulations.Name(code)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "unknown regulation: " + code})
		return
	}
	c.JSON(http.StatusOK, regulationView{Code: code, Name: name})
}
