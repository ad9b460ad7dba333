package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"atsmatch/internal/observability"
	"atsmatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// createAnalyzeJobHandler wraps job extraction with observability
func (s *Server) createAnalyzeJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atsmatch.api")
		ctx, span := tracer.Start(ctx, "api.analyze_job")
		defer span.End()

		// Parse request
		var req AnalyzeJobRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze_job"),
		)

		hints := types.JobPostingHints{Title: req.Title, Company: req.Company}

		// Job extraction may consult the enhancer for extra keywords, so it
		// runs under the AI operation tracker
		metrics := om.GetMetrics()
		var result types.JobRequirements
		err := metrics.TrackAIOperationWithTokens(ctx, "analyze_job", func(ctx context.Context) *observability.AIOperationResult {
			result = s.Engine.ExtractJob(ctx, req.JobDescription, hints)
			return &observability.AIOperationResult{}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "job_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze job description", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "job_analyzed", true, om,
			attribute.Int("required_skills", len(result.RequiredSkills)),
			attribute.Int("ats_keywords", len(result.ATSKeywords)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.required_skills", len(result.RequiredSkills)),
			attribute.Int("response.ats_keywords", len(result.ATSKeywords)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createParseResumeHandler wraps resume extraction with observability
func (s *Server) createParseResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atsmatch.api")
		ctx, span := tracer.Start(ctx, "api.parse_resume")
		defer span.End()

		var req ParseResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "parse_resume"),
		)

		// Resume extraction is fully deterministic
		result := s.Engine.ExtractResume(req.ResumeText)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("ats_score", result.ATSScore),
			attribute.Int("word_count", result.WordCount))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.ats_score", result.ATSScore),
			attribute.Int("response.word_count", result.WordCount),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps match scoring with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atsmatch.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateResumeAndJob(req.ResumeText, req.JobDescription, span); err != nil {
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "match"),
		)

		hints := types.JobPostingHints{Title: req.Title, Company: req.Company}
		resume := s.Engine.ExtractResume(req.ResumeText)
		job := s.Engine.ExtractJob(ctx, req.JobDescription, hints)
		score := s.Engine.Match(resume, job)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "match_scored", true, om,
			attribute.Float64("overall_score", score.Overall))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", score.Overall),
			attribute.Float64("response.keyword_score", score.KeywordScore),
		)

		result := MatchResponse{Score: score, Resume: resume, Job: job}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createOptimizeHandler wraps resume optimization with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atsmatch.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateResumeAndJob(req.ResumeText, req.JobDescription, span); err != nil {
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "optimize"),
		)

		hints := types.JobPostingHints{Title: req.Title, Company: req.Company}

		// Optimization may call the enhancer for prose rewriting, so it runs
		// under the AI operation tracker
		metrics := om.GetMetrics()
		var result types.OptimizationResult
		err := metrics.TrackAIOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.AIOperationResult {
			resume := s.Engine.ExtractResume(req.ResumeText)
			job := s.Engine.ExtractJob(ctx, req.JobDescription, hints)
			result = s.Engine.Optimize(ctx, resume, job)
			return &observability.AIOperationResult{}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to optimize resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_optimized", true, om,
			attribute.Float64("before_score", result.BeforeScore.Overall),
			attribute.Float64("after_score", result.AfterScore.Overall),
			attribute.Int("improvements", len(result.ImprovementsMade)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.before_score", result.BeforeScore.Overall),
			attribute.Float64("response.after_score", result.AfterScore.Overall),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// validateResumeAndJob applies the shared presence and size checks for
// endpoints that take both documents
func (s *Server) validateResumeAndJob(resumeText, jobDescription string, span trace.Span) error {
	var err error
	switch {
	case strings.TrimSpace(resumeText) == "":
		err = fmt.Errorf("resumeText field is required")
	case strings.TrimSpace(jobDescription) == "":
		err = fmt.Errorf("jobDescription field is required")
	case len(resumeText) > int(s.MaxRequestSize/2):
		err = fmt.Errorf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2)
	case len(jobDescription) > int(s.MaxRequestSize/2):
		err = fmt.Errorf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2)
	}
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
	}
	return err
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
