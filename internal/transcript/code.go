package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// Subject codes follow the structural grammar
// <year:2digits><dept:letters><semester:1digit><type:letters><suffix:alnum>*,
// e.g. "23CS3CSFM" = year 23, dept CS, semester 3, type CSFM.
var (
	normalizedCodeRe = regexp.MustCompile(`(\d+)([A-Za-z]+)(\d+)([A-Za-z]+)([A-Za-z0-9]+)`)
	codePartsRe      = regexp.MustCompile(`(\d+)([A-Za-z]+)(\d+)([A-Za-z]+)`)
)

// Detection patterns are built once per department / semester digit.
var (
	deptDetectRes []*regexp.Regexp
	semDetectRes  [9]*regexp.Regexp
)

func init() {
	deptDetectRes = make([]*regexp.Regexp, len(Departments))
	for i, d := range Departments {
		deptDetectRes[i] = regexp.MustCompile(fmt.Sprintf(`\b2\d%s\d`, d.Code))
	}
	for i := 1; i <= 8; i++ {
		semDetectRes[i] = regexp.MustCompile(fmt.Sprintf(`\b2\d[A-Za-z]{2}%d[A-Za-z]{2}`, i))
	}
}

// Normalize canonicalizes a raw subject code: whitespace is stripped and the
// first full structural match within the string is returned. Strings with no
// structural match pass through unchanged, so Normalize never fails and is
// idempotent.
func Normalize(code string) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), " ", "")
	if m := normalizedCodeRe.FindString(code); m != "" {
		return m
	}
	return code
}

// CodeParts holds the structural groups of a subject code without the suffix.
type CodeParts struct {
	Year     string
	Dept     string
	Semester string
	Type     string
}

// ExtractParts extracts the (year, dept, semester, type) groups from a code.
// The second return value is false when the grammar does not match anywhere
// in the string; this is a "no structural information" signal, not an error.
func ExtractParts(code string) (CodeParts, bool) {
	m := codePartsRe.FindStringSubmatch(code)
	if m == nil {
		return CodeParts{}, false
	}
	return CodeParts{Year: m[1], Dept: m[2], Semester: m[3], Type: m[4]}, true
}

// DetectDepartment scans the combined text of both documents for per-
// department code patterns and returns the department with the highest
// occurrence count. Ties resolve to the earliest entry in the Departments
// table. Returns ("", "") when no pattern occurs at all.
func DetectDepartment(resultText, courseText string) (code, name string) {
	all := resultText + courseText
	best := -1
	bestCount := 0
	for i, re := range deptDetectRes {
		if n := len(re.FindAllString(all, -1)); n > bestCount {
			best = i
			bestCount = n
		}
	}
	if best < 0 {
		return "", ""
	}
	return Departments[best].Code, Departments[best].Name
}

// DetectSemester scans the combined text for semester-digit patterns 1-8 and
// returns the most frequent one, or 0 when none occurs.
func DetectSemester(resultText, courseText string) int {
	all := resultText + courseText
	best := 0
	bestCount := 0
	for i := 1; i <= 8; i++ {
		if n := len(semDetectRes[i].FindAllString(all, -1)); n > bestCount {
			best = i
			bestCount = n
		}
	}
	return best
}
