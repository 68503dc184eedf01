package transcript

import (
	"regexp"
	"strings"

	"github.com/ImamJamdar/CGPA/internal/stringutil"
)

// CombinedSubject pairs a result record with its resolved course record.
type CombinedSubject struct {
	Name          string  `json:"name"`
	Credit        float64 `json:"credit"`
	Grade         string  `json:"grade"`
	GradePoint    int     `json:"grade_point"`
	WeightedPoint float64 `json:"weighted_point"`
}

// UnmatchedSubject is a result record with no resolvable course record. It
// is reported in diagnostics but excluded from grade-point totals.
type UnmatchedSubject struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// CombineOutcome is the result of reconciling result records against a
// course index.
type CombineOutcome struct {
	Combined  map[string]CombinedSubject
	Unmatched []UnmatchedSubject

	// Strategies records, per result code, which lookup resolved it
	// ("direct", plus the matcher cascade tiers). Used for diagnostics
	// and metrics only.
	Strategies map[string]string
}

// secondChancePatterns drive the recovery pass over unmatched subjects:
// a name fragment mapped to a code-suffix pattern.
var secondChancePatterns = []struct {
	NameFragment string
	CodeRe       *regexp.Regexp
}{
	{"Biology", regexp.MustCompile(`BFE|FBE`)},
	{"Environment", regexp.MustCompile(`ENV`)},
	{"Constitution", regexp.MustCompile(`CPH`)},
	{"Math", regexp.MustCompile(`MAT`)},
}

// Combine pairs each result record with at most one course record: direct
// raw-code lookup, then normalized-code lookup, then the matcher cascade.
// Records that stay unmatched go through a second-chance pass (special-
// keyword code patterns, then semester + type-prefix); whatever remains is
// returned in Unmatched.
func Combine(subjects map[string]ResultRecord, idx *CourseIndex, m *Matcher) CombineOutcome {
	out := CombineOutcome{
		Combined:   make(map[string]CombinedSubject),
		Strategies: make(map[string]string),
	}

	var unmatched []UnmatchedSubject
	for code, rec := range subjects {
		credit, name, strategy, ok := resolve(code, rec, idx, m)
		if !ok {
			unmatched = append(unmatched, UnmatchedSubject{Code: code, Name: rec.Name, Grade: rec.Grade})
			continue
		}
		out.Combined[code] = newCombined(name, credit, rec.Grade)
		out.Strategies[code] = strategy
	}

	for _, subj := range unmatched {
		if recoverSpecial(subj, idx, &out) {
			continue
		}
		if recoverBySemesterType(subj, idx, &out) {
			continue
		}
		out.Unmatched = append(out.Unmatched, subj)
	}

	return out
}

// resolve finds the credit and display name for one result record.
func resolve(code string, rec ResultRecord, idx *CourseIndex, m *Matcher) (credit float64, name, strategy string, ok bool) {
	name = rec.Name

	if c, found := idx.Credits[code]; found {
		credit, strategy, ok = c, "direct", true
	} else if c, found := idx.Credits[rec.NormalizedCode]; found {
		credit, strategy, ok = c, "direct_normalized", true
	} else if match, tier, found := m.FindMatchingCode(code, rec); found {
		credit, strategy, ok = idx.Credits[match], tier, true
		if courseName, stored := idx.Names[match]; stored {
			name = courseName
		}
	}
	if !ok {
		return 0, "", "", false
	}

	// Result-side names are sometimes digits or truncated fragments; prefer
	// the course-side name in that case.
	if stringutil.IsNumeric(name) || len(name) < 3 {
		if stored, found := idx.Names[code]; found {
			name = stored
		} else if stored, found := idx.Names[rec.NormalizedCode]; found {
			name = stored
		}
	}
	return credit, name, strategy, true
}

// recoverSpecial matches an unmatched subject's name fragment against the
// special-subject code patterns.
func recoverSpecial(subj UnmatchedSubject, idx *CourseIndex, out *CombineOutcome) bool {
	for _, p := range secondChancePatterns {
		if !strings.Contains(subj.Name, p.NameFragment) {
			continue
		}
		for _, candidate := range idx.SortedCodes() {
			if !p.CodeRe.MatchString(candidate) {
				continue
			}
			name := subj.Name
			if stored, found := idx.Names[candidate]; found {
				name = stored
			}
			out.Combined[subj.Code] = newCombined(name, idx.Credits[candidate], subj.Grade)
			out.Strategies[subj.Code] = "recovered_keyword"
			return true
		}
	}
	return false
}

// recoverBySemesterType takes the first course record sharing the semester
// and either the full type code or its first letter.
func recoverBySemesterType(subj UnmatchedSubject, idx *CourseIndex, out *CombineOutcome) bool {
	parts, ok := ExtractParts(subj.Code)
	if !ok {
		return false
	}
	for _, candidate := range idx.SortedCodes() {
		cp, found := ExtractParts(candidate)
		if !found || cp.Semester != parts.Semester {
			continue
		}
		if cp.Type != parts.Type && cp.Type[:1] != parts.Type[:1] {
			continue
		}
		name := subj.Name
		if stored, stored2 := idx.Names[candidate]; stored2 {
			name = stored
		}
		out.Combined[subj.Code] = newCombined(name, idx.Credits[candidate], subj.Grade)
		out.Strategies[subj.Code] = "recovered_semester_type"
		return true
	}
	return false
}

func newCombined(name string, credit float64, grade string) CombinedSubject {
	gp := GradePoint(grade)
	return CombinedSubject{
		Name:          name,
		Credit:        credit,
		Grade:         grade,
		GradePoint:    gp,
		WeightedPoint: credit * float64(gp),
	}
}
