package transcript

import (
	"math"
	"sort"
)

// SubjectPoints is one subject's contribution to the SGPA calculation.
type SubjectPoints struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Credit        float64 `json:"credit"`
	Grade         string  `json:"grade"`
	GradePoint    int     `json:"grade_point"`
	WeightedPoint float64 `json:"weighted_point"`
}

// CalculateSGPA computes the credit-weighted grade-point average over the
// combined subjects. Subjects with zero credit are skipped. The SGPA is
// rounded to two decimals; with zero total credits the result is
// (0, nil, 0, 0), never a division by zero. Insertion order of the input
// map does not affect any of the totals.
func CalculateSGPA(subjects map[string]CombinedSubject) (sgpa float64, points []SubjectPoints, totalCredits, weightedSum float64) {
	codes := make([]string, 0, len(subjects))
	for code := range subjects {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		data := subjects[code]
		if data.Credit == 0 {
			continue
		}
		gp := GradePoint(data.Grade)
		weighted := data.Credit * float64(gp)
		points = append(points, SubjectPoints{
			Code:          code,
			Name:          data.Name,
			Credit:        data.Credit,
			Grade:         data.Grade,
			GradePoint:    gp,
			WeightedPoint: weighted,
		})
		totalCredits += data.Credit
		weightedSum += weighted
	}

	if totalCredits <= 0 {
		return 0, points, totalCredits, weightedSum
	}
	return Round2(weightedSum / totalCredits), points, totalCredits, weightedSum
}

// CGPASummary is the cumulative summary over all processed semesters.
type CGPASummary struct {
	TotalCredits      float64 `json:"total_credits"`
	TotalPoints       float64 `json:"total_points"`
	MaxPossiblePoints float64 `json:"max_possible_points"`
	OverallPercentage float64 `json:"overall_percentage"`
}

// CalculateCGPA accumulates credits and points over semesters in ascending
// id order, storing a running CGPA on each semester report. The overall
// CGPA is total points over total credits; both it and the percentage are
// zero when no credits were earned.
//
// CGPA(n) depends on the totals of semesters 1..n, so this reduction is
// inherently sequential and id-ordered.
func CalculateCGPA(semesters map[int]*SemesterResult) (float64, CGPASummary) {
	ids := make([]int, 0, len(semesters))
	for id := range semesters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var cumulativeCredits, cumulativePoints float64
	for _, id := range ids {
		sem := semesters[id]
		cumulativeCredits += sem.TotalCredits
		cumulativePoints += sem.TotalPoints

		cgpa := 0.0
		if cumulativeCredits > 0 {
			cgpa = Round2(cumulativePoints / cumulativeCredits)
		}
		sem.CGPA = cgpa
	}

	overall := 0.0
	percentage := 0.0
	if cumulativeCredits > 0 {
		overall = Round2(cumulativePoints / cumulativeCredits)
		percentage = Round2(cumulativePoints / (cumulativeCredits * 10) * 100)
	}

	return overall, CGPASummary{
		TotalCredits:      Round1(cumulativeCredits),
		TotalPoints:       Round1(cumulativePoints),
		MaxPossiblePoints: Round1(cumulativeCredits * 10),
		OverallPercentage: percentage,
	}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
