package transcript

import (
	"time"

	apperrors "github.com/ImamJamdar/CGPA/internal/errors"
	"github.com/ImamJamdar/CGPA/internal/logger"
	"github.com/ImamJamdar/CGPA/internal/metrics"
)

// Processor runs the full per-semester pipeline over extracted document
// text: parse results and courses, reconcile, aggregate into a report.
// It holds only read-only configuration, so one Processor is safe to share
// across concurrent requests.
type Processor struct {
	log     *logger.Logger
	metrics *metrics.Metrics
	params  MatcherParams
}

// NewProcessor creates a processor. metrics may be nil in tests.
func NewProcessor(log *logger.Logger, m *metrics.Metrics, params MatcherParams) *Processor {
	return &Processor{
		log:     log.WithModule("transcript"),
		metrics: m,
		params:  params,
	}
}

// ProcessSemester turns one semester's extracted result and course text
// into a SemesterResult. Zero-record documents and empty reconciliation
// are fatal; individual malformed lines and unmatched subjects are not.
func (p *Processor) ProcessSemester(resultText, courseText string) (*SemesterResult, error) {
	start := time.Now()

	deptCode, deptName := DetectDepartment(resultText, courseText)
	semester := DetectSemester(resultText, courseText)
	if deptCode == "" {
		p.log.Warn("Could not detect department from document text")
	}
	if semester == 0 {
		p.log.Warn("Could not detect semester from document text")
	}

	results := ParseResults(resultText)
	if len(results) == 0 {
		return nil, apperrors.ErrNoSubjectsFound
	}
	p.log.WithField("subjects", len(results)).Debug("Parsed result document")

	index := ParseCourses(courseText)
	if index.Len() == 0 {
		return nil, apperrors.ErrNoCreditsFound
	}
	p.log.WithField("codes", index.Len()).Debug("Parsed course document")

	matcher := NewMatcher(index, p.params)
	outcome := Combine(results, index, matcher)
	if len(outcome.Combined) == 0 {
		return nil, apperrors.ErrNoMatch
	}

	for _, subj := range outcome.Unmatched {
		p.log.WithField("code", subj.Code).
			WithField("name", subj.Name).
			WithField("grade", subj.Grade).
			Warn("Subject excluded from totals: no course record found")
	}

	if p.metrics != nil {
		p.metrics.AddSubjectsParsed(len(results))
		p.metrics.AddUnmatchedSubjects(len(outcome.Unmatched))
		for _, strategy := range outcome.Strategies {
			p.metrics.RecordMatchStrategy(strategy)
		}
		p.metrics.RecordSemesterDuration(time.Since(start).Seconds())
	}

	sgpa, points, totalCredits, totalPoints := CalculateSGPA(outcome.Combined)

	result := &SemesterResult{
		SGPA:              sgpa,
		Subjects:          buildSubjectSummaries(points),
		TotalCredits:      totalCredits,
		TotalPoints:       totalPoints,
		MaxPossiblePoints: totalCredits * 10,
		Semester:          semester,
		Unmatched:         outcome.Unmatched,
	}
	if totalCredits > 0 {
		result.Percentage = Round2(totalPoints / (totalCredits * 10) * 100)
	}
	if deptCode != "" {
		result.Department = DepartmentInfo{Code: &deptCode, Name: &deptName}
	}

	p.log.WithFields(map[string]any{
		"department":    deptName,
		"semester":      semester,
		"subjects":      len(result.Subjects),
		"unmatched":     len(outcome.Unmatched),
		"total_credits": totalCredits,
		"total_points":  totalPoints,
		"sgpa":          sgpa,
	}).Info("Semester processed")

	return result, nil
}
