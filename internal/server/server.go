// Package server exposes the classifier over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/classifier"
	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Config holds configuration for the Server
type Config struct {
	Classifier batch.FeatureClassifier

	// Categories and Regulations are reported by GET /v1/taxonomy. If nil, uses the defaults.
	Categories  *taxonomy.Categories
	Regulations *taxonomy.Regulations

	Workers int
	Logger  *zap.Logger
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Categories == nil {
		c.Categories = taxonomy.DefaultCategories()
	}

	if c.Regulations == nil {
		c.Regulations = taxonomy.DefaultRegulations()
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Server serves classification requests
type Server struct {
	classifier  batch.FeatureClassifier
	runner      *batch.Runner
	categories  *taxonomy.Categories
	regulations *taxonomy.Regulations
	logger      *zap.Logger
}

// New creates a new Server with the given configuration
func New(cfg Config) (*Server, error) {
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("server requires a classifier")
	}
	cfg.applyDefaults()

	// Clients may not make the server open files on their behalf
	inline := &inlineDocuments{next: cfg.Classifier, logger: cfg.Logger}

	runner, err := batch.NewRunner(batch.Config{Classifier: inline, Workers: cfg.Workers, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("failed to create batch runner: %w", err)
	}

	return &Server{
		classifier:  inline,
		runner:      runner,
		categories:  cfg.Categories,
		regulations: cfg.Regulations,
		logger:      cfg.Logger,
	}, nil
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)

	v1 := router.Group("/v1")
	{
		v1.POST("/classify", s.classify)
		v1.POST("/analyze", s.analyze)
		v1.GET("/taxonomy", s.taxonomy)
		v1.GET("/taxonomy/categories/:name", s.category)
		v1.GET("/taxonomy/regulations/:code", s.regulation)
	}

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// inlineDocuments drops PDF paths so only inline supporting text reaches the classifier
type inlineDocuments struct {
	next   batch.FeatureClassifier
	logger *zap.Logger
}

func (d *inlineDocuments) Classify(ctx context.Context, f types.Feature) types.FinalVerdict {
	if classifier.IsPDFPath(f.SupportingText) {
		d.logger.Warn("ignoring PDF path in HTTP request", zap.String("title", f.Title))
		f.SupportingText = ""
	}
	return d.next.Classify(ctx, f)
}
