// Package httpapi provides the HTTP handlers for SGPA and CGPA calculation.
// All processing is in-memory and per-request: uploaded PDFs are never
// written to disk and no state survives the response.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/ImamJamdar/CGPA/internal/errors"
	"github.com/ImamJamdar/CGPA/internal/extract"
	"github.com/ImamJamdar/CGPA/internal/logger"
	"github.com/ImamJamdar/CGPA/internal/metrics"
	"github.com/ImamJamdar/CGPA/internal/sentry"
	"github.com/ImamJamdar/CGPA/internal/transcript"
)

// MaxSemesters caps how many semesters a single CGPA request may carry.
const MaxSemesters = 8

// Handler serves the upload endpoints.
type Handler struct {
	log            *logger.Logger
	metrics        *metrics.Metrics
	processor      *transcript.Processor
	maxUploadBytes int64
}

// NewHandler creates a handler. metrics may be nil in tests.
func NewHandler(log *logger.Logger, m *metrics.Metrics, processor *transcript.Processor, maxUploadBytes int64) *Handler {
	return &Handler{
		log:            log.WithModule("httpapi"),
		metrics:        m,
		processor:      processor,
		maxUploadBytes: maxUploadBytes,
	}
}

// semesterFiles is one semester's pair of uploaded documents, fully read
// into memory before any processing starts.
type semesterFiles struct {
	courseName string
	courseData []byte
	resultName string
	resultData []byte
}

// Upload handles single-semester SGPA calculation.
// Expects multipart parts "courses" and "results", both PDFs.
func (h *Handler) Upload(c *gin.Context) {
	courseFile, courseErr := c.FormFile("courses")
	resultFile, resultErr := c.FormFile("results")
	if courseErr != nil || resultErr != nil {
		h.rejectInvalid(c, "Both course and result PDFs are required")
		return
	}

	for _, file := range []*multipart.FileHeader{courseFile, resultFile} {
		if msg := h.validateFile(file); msg != "" {
			h.rejectInvalid(c, msg)
			return
		}
	}

	files, err := h.readPair(courseFile, resultFile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.processSemester(c.Request.Context(), files)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sgpa":     result.SGPA,
		"subjects": result.Subjects,
		"summary": gin.H{
			"total_credits":       result.TotalCredits,
			"total_points":        result.TotalPoints,
			"max_possible_points": result.MaxPossiblePoints,
			"percentage":          result.Percentage,
		},
	})
}

// CalculateCGPA handles multi-semester CGPA calculation.
// Expects form field "semester_count" (1 to MaxSemesters) plus multipart
// parts "courses_<i>" and "results_<i>" for each semester i.
//
// Semesters are independent until the final cumulative reduction, so they
// are processed concurrently. Errors are still reported for the lowest
// failing semester to keep responses deterministic.
func (h *Handler) CalculateCGPA(c *gin.Context) {
	countRaw := c.PostForm("semester_count")
	if countRaw == "" {
		h.rejectInvalid(c, "Semester count is required")
		return
	}
	count, err := strconv.Atoi(countRaw)
	if err != nil || count <= 0 || count > MaxSemesters {
		h.rejectInvalid(c, fmt.Sprintf("Invalid semester count. Must be between 1 and %d.", MaxSemesters))
		return
	}

	// Validate and buffer every upload before spending any time on
	// processing, so malformed requests fail fast and in semester order.
	files := make([]*semesterFiles, count+1)
	for semID := 1; semID <= count; semID++ {
		courseFile, courseErr := c.FormFile(fmt.Sprintf("courses_%d", semID))
		resultFile, resultErr := c.FormFile(fmt.Sprintf("results_%d", semID))
		if courseErr != nil || resultErr != nil {
			h.rejectInvalid(c, fmt.Sprintf("Files for semester %d are missing", semID))
			return
		}

		for _, file := range []*multipart.FileHeader{courseFile, resultFile} {
			if file.Filename == "" {
				h.rejectInvalid(c, fmt.Sprintf("No file selected for semester %d", semID))
				return
			}
			if !extract.IsPDFFilename(file.Filename) {
				h.rejectInvalid(c, fmt.Sprintf("File must be a PDF for semester %d", semID))
				return
			}
			if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
				h.rejectInvalid(c, fmt.Sprintf("File exceeds the maximum allowed size for semester %d", semID))
				return
			}
		}

		pair, err := h.readPair(courseFile, resultFile)
		if err != nil {
			h.respondError(c, err)
			return
		}
		files[semID] = pair
	}

	results := make([]*transcript.SemesterResult, count+1)
	procErrs := make([]error, count+1)

	ctx := c.Request.Context()

	var g errgroup.Group
	for semID := 1; semID <= count; semID++ {
		g.Go(func() error {
			result, err := h.processSemester(ctx, files[semID])
			if err != nil {
				procErrs[semID] = err
				return nil
			}
			results[semID] = result
			return nil
		})
	}
	_ = g.Wait()

	semesters := make(map[int]*transcript.SemesterResult, count)
	for semID := 1; semID <= count; semID++ {
		if err := procErrs[semID]; err != nil {
			h.log.WithError(err).WithField("semester", semID).WarnContext(ctx, "Semester processing failed")
			h.respondSemesterError(c, semID, err)
			return
		}
		semesters[semID] = results[semID]
	}

	overall, summary := transcript.CalculateCGPA(semesters)

	c.JSON(http.StatusOK, gin.H{
		"cgpa":      overall,
		"semesters": semesters,
		"summary":   summary,
	})
}

// validateFile checks one upload's filename and size, returning a
// user-facing message on rejection and "" when valid.
func (h *Handler) validateFile(file *multipart.FileHeader) string {
	if file.Filename == "" {
		return "No file selected"
	}
	if !extract.IsPDFFilename(file.Filename) {
		return "File must be a PDF"
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return "File exceeds the maximum allowed size"
	}
	return ""
}

// readPair buffers both documents of a semester into memory.
func (h *Handler) readPair(courseFile, resultFile *multipart.FileHeader) (*semesterFiles, error) {
	courseData, err := h.readFile(courseFile)
	if err != nil {
		return nil, err
	}
	resultData, err := h.readFile(resultFile)
	if err != nil {
		return nil, err
	}
	return &semesterFiles{
		courseName: courseFile.Filename,
		courseData: courseData,
		resultName: resultFile.Filename,
		resultData: resultData,
	}, nil
}

func (h *Handler) readFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", file.Filename, err)
	}
	return data, nil
}

// processSemester extracts text from one semester's pair of documents and
// runs the transcript pipeline over it.
func (h *Handler) processSemester(ctx context.Context, files *semesterFiles) (*transcript.SemesterResult, error) {
	start := time.Now()

	courseText, coursePages, err := extract.Text(files.courseName, files.courseData)
	if err != nil {
		h.recordExtractionError(ctx, files.courseName, err)
		return nil, err
	}
	resultText, resultPages, err := extract.Text(files.resultName, files.resultData)
	if err != nil {
		h.recordExtractionError(ctx, files.resultName, err)
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.AddExtractedPages(coursePages + resultPages)
	}

	result, err := h.processor.ProcessSemester(resultText, courseText)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordProcessingError(errorKind(err))
		}
		return nil, err
	}

	h.log.WithField("course_file", files.courseName).
		WithField("result_file", files.resultName).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		DebugContext(ctx, "Semester documents processed")
	return result, nil
}

func (h *Handler) recordExtractionError(ctx context.Context, filename string, err error) {
	h.log.WithError(err).WithField("file", filename).WarnContext(ctx, "PDF extraction failed")
	if h.metrics != nil {
		h.metrics.RecordExtractionError()
		h.metrics.RecordProcessingError("extraction")
	}
}

// rejectInvalid sends a 400 for a request that failed upfront validation.
func (h *Handler) rejectInvalid(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// respondError maps a processing error onto the HTTP response: expected
// failures return 400 with their user-facing text, everything else a
// generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	if apperrors.IsUserFacing(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.UserMessage(err)})
		return
	}

	h.reportUnexpected(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.UserMessage(err)})
}

// respondSemesterError is respondError with the failing semester named in
// the message, as multi-semester callers need to know which pair of files
// to fix.
func (h *Handler) respondSemesterError(c *gin.Context, semID int, err error) {
	if apperrors.IsUserFacing(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Failed to process semester %d: %s", semID, apperrors.UserMessage(err)),
		})
		return
	}

	h.reportUnexpected(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.UserMessage(err)})
}

// reportUnexpected logs a non-user-facing error and forwards it to Sentry
// with the request context so the report carries the request id.
func (h *Handler) reportUnexpected(c *gin.Context, err error) {
	h.log.WithError(err).ErrorContext(c.Request.Context(), "Unexpected processing error")
	if sentry.IsEnabled() {
		sentry.CaptureExceptionWithContext(c.Request.Context(), err)
	}
}

// errorKind labels a processing error for metrics.
func errorKind(err error) string {
	var extractionErr *apperrors.ExtractionError
	switch {
	case errors.As(err, &extractionErr):
		return "extraction"
	case errors.Is(err, apperrors.ErrNoSubjectsFound):
		return "no_subjects"
	case errors.Is(err, apperrors.ErrNoCreditsFound):
		return "no_credits"
	case errors.Is(err, apperrors.ErrNoMatch):
		return "no_match"
	default:
		return "unexpected"
	}
}
