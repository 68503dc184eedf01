// Package transcript implements parsing and reconciliation of academic
// transcript text: result documents (subject codes and grades) and course
// documents (subject codes, names and credits) are parsed independently,
// matched through a cascade of heuristics, and aggregated into SGPA and
// CGPA figures.
package transcript

// GradePoints maps letter grades to grade points on the fixed 10-point
// scale. Tokens outside this table are discarded during parsing, never
// stored with a default.
var GradePoints = map[string]int{
	"O":  10,
	"A+": 9,
	"A":  8,
	"B+": 7,
	"B":  6,
	"C":  5,
	"P":  4,
	"F":  0,
}

// Department is a two-letter department code with its full name.
type Department struct {
	Code string
	Name string
}

// Departments lists the known department codes in declaration order.
// Detection tie-breaking depends on this order being stable, so the table
// is a slice rather than a map.
var Departments = []Department{
	{"CV", "Civil Engineering"},
	{"ME", "Mechanical Engineering"},
	{"ES", "Electrical and Electronics Engineering"},
	{"EC", "Electronics and Communication Engineering"},
	{"IM", "Industrial Engineering and Management"},
	{"CS", "Computer Science and Engineering"},
	{"ET", "Electronics and Telecommunication Engineering"},
	{"IS", "Information Science and Engineering"},
	{"EI", "Electronics and Instrumentation Engineering"},
	{"MD", "Medical Electronics Engineering"},
	{"CH", "Chemical Engineering"},
	{"BT", "Bio-Technology"},
	{"AS", "Aerospace Engineering"},
	{"AM", "Machine Learning (AI and ML)"},
	{"DS", "Computer Science and Engineering (DS)"},
	{"DC", "Computer Science and Engineering (IoT and CS)"},
	{"AI", "Artificial Intelligence and Data Science"},
	{"BS", "Computer Science and Business Systems"},
}

// DepartmentName returns the full name for a department code, or the empty
// string when the code is unknown.
func DepartmentName(code string) string {
	for _, d := range Departments {
		if d.Code == code {
			return d.Name
		}
	}
	return ""
}

// IsValidGrade reports whether g is a key of the grade-point table.
func IsValidGrade(g string) bool {
	_, ok := GradePoints[g]
	return ok
}

// GradePoint returns the grade point for g, or 0 for unknown grades.
func GradePoint(g string) int {
	return GradePoints[g]
}
