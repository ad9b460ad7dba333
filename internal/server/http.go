package server

import (
	"time"

	"atsmatch/internal/config"
	"atsmatch/internal/engine"
	atsErrors "atsmatch/internal/errors"
	"atsmatch/internal/types"
)

// AnalyzeJobRequest represents the request body for the analyze-job endpoint
type AnalyzeJobRequest struct {
	JobDescription string `json:"jobDescription"`
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
}

// ParseResumeRequest represents the request body for the parse-resume endpoint
type ParseResumeRequest struct {
	ResumeText string `json:"resumeText"`
}

// MatchRequest represents the request body for the match endpoint
type MatchRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
}

// OptimizeRequest represents the request body for the optimize endpoint
type OptimizeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
}

// MatchResponse pairs the score with the extracted inputs so callers can
// inspect what the scorer actually saw
type MatchResponse struct {
	Score  types.MatchScore      `json:"score"`
	Resume types.ResumeContent   `json:"resume"`
	Job    types.JobRequirements `json:"job"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Matching engine shared by all handlers
	Engine *engine.Engine

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *atsErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, eng *engine.Engine, logger *atsErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Engine:         eng,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
