package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/ats"
	"github.com/yourusername/resumeiq-api/internal/cache"
	"github.com/yourusername/resumeiq-api/internal/middleware"
	"github.com/yourusername/resumeiq-api/internal/model"
	"github.com/yourusername/resumeiq-api/internal/repository"
)

const (
	// DefaultMaxUploadBytes matches the 10MB cap the client enforces.
	DefaultMaxUploadBytes = 10 * 1024 * 1024

	// multipartOverhead is the allowance for form fields and part headers
	// on top of the file itself.
	multipartOverhead = 1 << 20

	maxResumeTextLen     = 30000
	maxJobDescriptionLen = 20000
	defaultListLimit     = 20
	maxListLimit         = 100
)

type ResumeHandler struct {
	analyzer       *ats.Analyzer
	store          repository.AnalysisStore
	reports        cache.ReportCache
	maxUploadBytes int64
}

func NewResumeHandler(analyzer *ats.Analyzer, store repository.AnalysisStore, maxUploadBytes int64) *ResumeHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ResumeHandler{analyzer: analyzer, store: store, maxUploadBytes: maxUploadBytes}
}

// WithReportCache makes repeated uploads of the same file and job
// description reuse the earlier report.
func (h *ResumeHandler) WithReportCache(c cache.ReportCache) *ResumeHandler {
	h.reports = c
	return h
}

// RegisterRoutes mounts the resume endpoints on an authenticated group.
func (h *ResumeHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/resume/upload-analyze", h.UploadAnalyze)
	r.POST("/resume/analyze-text", h.AnalyzeText)
	r.GET("/resume/analyses", h.ListAnalyses)
	r.GET("/resume/analyses/:id", h.GetAnalysis)
	r.DELETE("/resume/analyses/:id", h.DeleteAnalysis)
}

// UploadAnalyze handles POST /resume/upload-analyze
// Accepts a PDF via multipart form field "resume" plus an optional
// "jobDescription", scores it and stores the result.
func (h *ResumeHandler) UploadAnalyze(c *gin.Context) {
	ownerID := middleware.GetFirebaseUID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Bound the whole body so an oversized upload is rejected while parsing
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxUploadBytes/(1024*1024)),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file uploaded"})
		return
	}
	defer file.Close()

	if !looksLikePDF(header.Filename, header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	// Read one byte past the cap so an understated header size is still caught
	fileBytes, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	if int64(len(fileBytes)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	jobDescription := truncate(c.PostForm("jobDescription"), maxJobDescriptionLen)

	report, cached, err := h.analyzeUpload(c, fileBytes, jobDescription)
	if err != nil {
		writeAnalysisError(c, err)
		return
	}

	log.Info().
		Str("filename", header.Filename).
		Int("bytes", len(fileBytes)).
		Int("pages", report.PageCount).
		Int("atsScore", report.ATSScore).
		Bool("hasJob", jobDescription != "").
		Bool("cached", cached).
		Msg("Resume analyzed")

	analysis := h.save(c, &model.Analysis{
		OwnerID:        ownerID,
		Source:         model.SourceUpload,
		FileName:       header.Filename,
		FileSize:       int64(len(fileBytes)),
		JobDescription: jobDescription,
		Report:         *report,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Resume analysis completed",
		"analysis": analysis,
	})
}

// AnalyzeText handles POST /resume/analyze-text
// Scores resume text the client already has, e.g. from a previous upload.
func (h *ResumeHandler) AnalyzeText(c *gin.Context) {
	ownerID := middleware.GetFirebaseUID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		ResumeText     string `json:"resumeText" binding:"required"`
		JobDescription string `json:"jobDescription"`
		PageCount      int    `json:"pageCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resumeText is required"})
		return
	}
	if req.PageCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageCount cannot be negative"})
		return
	}
	if req.PageCount == 0 {
		req.PageCount = 1
	}

	resumeText := truncate(req.ResumeText, maxResumeTextLen)
	jobDescription := truncate(req.JobDescription, maxJobDescriptionLen)

	report := h.analyzer.AnalyzeText(resumeText, req.PageCount, jobDescription)

	analysis := h.save(c, &model.Analysis{
		OwnerID:        ownerID,
		Source:         model.SourceText,
		JobDescription: jobDescription,
		Report:         *report,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Resume analysis completed",
		"analysis": analysis,
	})
}

// ListAnalyses handles GET /resume/analyses
func (h *ResumeHandler) ListAnalyses(c *gin.Context) {
	ownerID := middleware.GetFirebaseUID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	analyses, err := h.store.ListByOwner(c.Request.Context(), ownerID, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list analyses"})
		return
	}

	summaries := make([]model.AnalysisSummary, 0, len(analyses))
	for i := range analyses {
		summaries = append(summaries, analyses[i].Summary())
	}

	c.JSON(http.StatusOK, summaries)
}

// GetAnalysis handles GET /resume/analyses/:id
func (h *ResumeHandler) GetAnalysis(c *gin.Context) {
	ownerID := middleware.GetFirebaseUID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	analysis, err := h.store.FindByID(c.Request.Context(), id, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to get analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// DeleteAnalysis handles DELETE /resume/analyses/:id
func (h *ResumeHandler) DeleteAnalysis(c *gin.Context) {
	ownerID := middleware.GetFirebaseUID(c)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis ID"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to delete analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ── Helpers ──────────────────────────────────────────

// analyzeUpload scores an upload, consulting the report cache first. Cache
// failures are logged and treated as misses.
func (h *ResumeHandler) analyzeUpload(c *gin.Context, data []byte, jobDescription string) (*ats.Report, bool, error) {
	ctx := c.Request.Context()
	if h.reports == nil {
		report, err := h.analyzer.Analyze(ctx, data, jobDescription)
		return report, false, err
	}

	key := cache.Key(data, jobDescription)
	report, err := h.reports.Get(ctx, key)
	if err == nil {
		return report, true, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("Report cache lookup failed")
	}

	report, err = h.analyzer.Analyze(ctx, data, jobDescription)
	if err != nil {
		return nil, false, err
	}
	if err := h.reports.Set(ctx, key, report); err != nil {
		log.Warn().Err(err).Msg("Failed to cache report")
	}
	return report, false, nil
}

// save stores the analysis. A storage failure is logged and the unsaved
// analysis is returned so the caller still gets the result.
func (h *ResumeHandler) save(c *gin.Context, a *model.Analysis) *model.Analysis {
	created, err := h.store.Create(c.Request.Context(), a)
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetRequestID(c)).Msg("Failed to store analysis")
		return a
	}
	return created
}

func writeAnalysisError(c *gin.Context, err error) {
	var inputErr *ats.InputError
	var extractErr *ats.ExtractionError

	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Error()})
	case errors.As(err, &extractErr):
		log.Warn().Err(err).Msg("Failed to extract text from PDF")
		body := gin.H{
			"error":  "Unable to analyze PDF. Please upload a text-based PDF.",
			"reason": extractErr.Reason,
		}
		if extractErr.Err != nil {
			body["cause"] = extractErr.Err.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	default:
		log.Error().Err(err).Msg("Resume analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Resume analysis failed"})
	}
}

func looksLikePDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// step back to a rune boundary
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen]
}
