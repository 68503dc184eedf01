package transcript

import (
	"fmt"

	"github.com/ImamJamdar/CGPA/internal/stringutil"
)

// DepartmentInfo is the detected department of a semester's documents.
// Both fields are null in JSON when detection found nothing.
type DepartmentInfo struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

// SubjectSummary is the per-subject entry of a semester report.
type SubjectSummary struct {
	Code          string  `json:"code"`
	Credit        float64 `json:"credit"`
	Grade         string  `json:"grade"`
	GradePoint    int     `json:"grade_point"`
	WeightedPoint float64 `json:"weighted_point"`
}

// SemesterResult is the full outcome of processing one semester's pair of
// documents. It is ephemeral: held only for the duration of a request.
type SemesterResult struct {
	SGPA              float64                   `json:"sgpa"`
	Subjects          map[string]SubjectSummary `json:"subjects"`
	TotalCredits      float64                   `json:"total_credits"`
	TotalPoints       float64                   `json:"total_points"`
	MaxPossiblePoints float64                   `json:"max_possible_points"`
	Percentage        float64                   `json:"percentage"`
	Department        DepartmentInfo            `json:"department"`
	Semester          int                       `json:"semester"`
	CGPA              float64                   `json:"cgpa"`

	// Unmatched subjects are reported for diagnostics but excluded from
	// all totals above.
	Unmatched []UnmatchedSubject `json:"-"`
}

// buildSubjectSummaries keys subjects by display name, substituting
// "Subject <code>" for names that are numeric or empty.
func buildSubjectSummaries(points []SubjectPoints) map[string]SubjectSummary {
	subjects := make(map[string]SubjectSummary, len(points))
	for _, p := range points {
		name := p.Name
		if name == "" || stringutil.IsNumeric(name) {
			name = fmt.Sprintf("Subject %s", p.Code)
		}
		subjects[name] = SubjectSummary{
			Code:          p.Code,
			Credit:        p.Credit,
			Grade:         p.Grade,
			GradePoint:    p.GradePoint,
			WeightedPoint: Round2(p.WeightedPoint),
		}
	}
	return subjects
}
