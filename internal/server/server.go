// Package server exposes invoice rendering over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-renderer/internal/assets"
	"github.com/rezonia/invoice-renderer/internal/model"
	"github.com/rezonia/invoice-renderer/internal/render"
)

// Config holds server configuration
type Config struct {
	Address      string
	UploadsDir   string
	Optimize     bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	engine *render.Engine
	log    *zap.Logger
}

// NewServer creates a new API server
func NewServer(config *Config, log *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	var resolverOpts []assets.Option
	resolverOpts = append(resolverOpts, assets.WithLogger(log))
	if config.UploadsDir != "" {
		resolverOpts = append(resolverOpts, assets.WithStore(assets.NewDirStore(config.UploadsDir)))
	}

	engineOpts := []render.Option{
		render.WithAssets(assets.NewResolver(resolverOpts...)),
		render.WithLogger(log),
	}
	if config.Optimize {
		engineOpts = append(engineOpts, render.WithOptimization())
	}

	s := &Server{
		config: config,
		router: router,
		engine: render.New(engineOpts...),
		log:    log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/render", s.handleRender)
		v1.POST("/validate", s.handleValidate)
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

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRender(c *gin.Context) {
	requestID := uuid.NewString()

	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid invoice payload",
			Details: err.Error(),
		})
		return
	}

	if errs := validateInvoice(&inv); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationResponse{Valid: false, Errors: errs})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	start := time.Now()
	data, err := s.engine.Render(ctx, &inv)
	if err != nil {
		s.log.Error("render failed",
			zap.String("request_id", requestID),
			zap.String("invoice_number", inv.Number),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "document generation failed",
		})
		return
	}

	s.log.Info("invoice rendered",
		zap.String("request_id", requestID),
		zap.String("invoice_number", inv.Number),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	filename := inv.Number
	if filename == "" {
		filename = "invoice"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
	c.Header("X-Request-ID", requestID)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleValidate(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid invoice payload",
			Details: err.Error(),
		})
		return
	}

	errs := validateInvoice(&inv)
	warnings := invoiceWarnings(&inv)

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	})
}

// validateInvoice collects hard rejection reasons for a snapshot. An empty
// result means the invoice is renderable.
func validateInvoice(inv *model.Invoice) []string {
	var errs []string

	if inv.Number == "" {
		errs = append(errs, "missing invoice number")
	}
	if inv.BillTo.Name == "" {
		errs = append(errs, "missing bill-to name")
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.Description == "" {
			errs = append(errs, fmt.Sprintf("item %d: missing description", i+1))
		}
		if it.Hours.IsNegative() {
			errs = append(errs, fmt.Sprintf("item %d: negative hours", i+1))
		}
		if it.Rate.IsNegative() {
			errs = append(errs, fmt.Sprintf("item %d: negative rate", i+1))
		}
	}

	return errs
}

// invoiceWarnings collects soft findings that do not block rendering.
func invoiceWarnings(inv *model.Invoice) []string {
	var warnings []string

	if inv.Date == "" {
		warnings = append(warnings, "missing invoice date")
	} else if _, err := time.Parse("2006-01-02", inv.Date); err != nil {
		warnings = append(warnings, "invoice date is not yyyy-MM-dd, will be printed verbatim")
	}
	if len(inv.Items) == 0 {
		warnings = append(warnings, "invoice has no line items")
	}
	if inv.Jurisdiction() == model.JurisdictionIndia && inv.CGSTRate.IsZero() && inv.SGSTRate.IsZero() {
		warnings = append(warnings, "india invoice with zero CGST and SGST rates")
	}

	return warnings
}
