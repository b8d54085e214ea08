// Package server exposes the extraction and validation engines over HTTP.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-qc/internal/export"
	"github.com/rezonia/invoice-qc/internal/extract"
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
	"github.com/rezonia/invoice-qc/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address      string
	Tolerance    float64
	MaxAmount    float64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewServer creates a new API server. A nil logger disables logging.
func NewServer(config *Config, logger *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Tolerance == 0 {
		config.Tolerance = money.DefaultTolerance
	}
	if config.MaxAmount == 0 {
		config.MaxAmount = validate.DefaultMaxAmount
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:    config,
		router:    router,
		extractor: extract.New(extract.WithLogger(logger)),
		logger:    logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/extract", s.handleExtract)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/process", s.handleProcess)
		v1.POST("/report/xlsx", s.handleReportXLSX)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	var docs []extract.Document
	if err := c.ShouldBindJSON(&docs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(docs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no documents supplied"})
		return
	}

	invoices, failures := s.extractor.ExtractBatch(docs)
	c.JSON(http.StatusOK, ExtractResponse{
		Invoices: invoices,
		Failures: failures,
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	var invoices []model.Invoice
	if err := c.ShouldBindJSON(&invoices); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// One engine per request: duplicate detection is scoped to exactly
	// this batch.
	engine := validate.New(s.engineOptions(c)...)
	report := engine.ValidateBatch(invoices)
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleProcess(c *gin.Context) {
	var docs []extract.Document
	if err := c.ShouldBindJSON(&docs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(docs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no documents supplied"})
		return
	}

	invoices, failures := s.extractor.ExtractBatch(docs)
	engine := validate.New(s.engineOptions(c)...)
	report := engine.ValidateBatch(invoices)

	c.JSON(http.StatusOK, ProcessResponse{
		Invoices: invoices,
		Failures: failures,
		Report:   report,
	})
}

func (s *Server) handleReportXLSX(c *gin.Context) {
	var invoices []model.Invoice
	if err := c.ShouldBindJSON(&invoices); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	engine := validate.New(s.engineOptions(c)...)
	report := engine.ValidateBatch(invoices)

	data, err := export.Bytes(invoices, report)
	if err != nil {
		s.logger.Error("xlsx export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="validation_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// engineOptions applies the server defaults, overridden per request by
// the tolerance and max_amount query parameters.
func (s *Server) engineOptions(c *gin.Context) []validate.Option {
	tolerance := s.config.Tolerance
	maxAmount := s.config.MaxAmount

	if q := c.Query("tolerance"); q != "" {
		if v, err := strconv.ParseFloat(q, 64); err == nil && v >= 0 {
			tolerance = v
		}
	}
	if q := c.Query("max_amount"); q != "" {
		if v, err := strconv.ParseFloat(q, 64); err == nil && v > 0 {
			maxAmount = v
		}
	}

	return []validate.Option{
		validate.WithTolerance(tolerance),
		validate.WithMaxAmount(maxAmount),
	}
}
