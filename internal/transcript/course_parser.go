package transcript

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ImamJamdar/CGPA/internal/stringutil"
)

// CourseIndex holds everything parsed from a course document. Every accepted
// subject is stored under both its raw and normalized code, plus one alias
// per other known department (credits are assumed department-invariant), so
// Credits and Names share the same key set and all aliases of one record
// carry identical credit and name.
type CourseIndex struct {
	Credits map[string]float64
	Names   map[string]string

	// NameIndex maps the lower-cased, space-stripped subject name to a code
	// holding it. Last write wins on collisions.
	NameIndex map[string]string
}

// Course-section row formats, tried strictest first:
// serial+name+code+type+hours+credit, then name+code+type+hours+credit,
// then name+code+anything+credit-at-line-end.
var courseRowRes = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s+(.+?)\s+(2\d[A-Za-z0-9]{6,10})\s+\w+\s+\d+\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(.+?)\s+(2\d[A-Za-z0-9]{6,10})\s+\w+\s+\d+\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(.+?)\s+(2\d[A-Za-z0-9]{6,10})\s+.*?(\d+(?:\.\d+)?)$`),
}

var creditAtEndRe = regexp.MustCompile(`(\d+(?:\.\d+)?)$`)

// ParseCourses scans course-document text for subject-code/name/credit
// triples. Rows are only accepted between a "Course Details"/"Course Title"
// marker and the following "Total Credits" marker; special-subject patterns
// apply anywhere in the text. Malformed lines contribute nothing.
func ParseCourses(text string) *CourseIndex {
	idx := &CourseIndex{
		Credits:   make(map[string]float64),
		Names:     make(map[string]string),
		NameIndex: make(map[string]string),
	}

	lines := strings.Split(text, "\n")
	inSection := false
	for _, line := range lines {
		if strings.Contains(line, "Course Details") || strings.Contains(line, "Course Title") {
			inSection = true
			continue
		}
		if inSection && strings.Contains(line, "Total Credits") {
			inSection = false
			continue
		}
		if !inSection {
			continue
		}

		for _, re := range courseRowRes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			credit, err := strconv.ParseFloat(strings.TrimSpace(m[3]), 64)
			if err != nil {
				break
			}
			idx.store(strings.TrimSpace(m[2]), strings.TrimSpace(m[1]), credit)
			break
		}
	}

	// Special subjects appear outside the tabular section in some layouts,
	// with the name before the code and the credit at line end.
	for _, sp := range specialSubjects {
		for _, line := range lines {
			m := sp.courseRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			cm := creditAtEndRe.FindStringSubmatch(line)
			if cm == nil {
				continue
			}
			credit, err := strconv.ParseFloat(strings.TrimSpace(cm[1]), 64)
			if err != nil {
				continue
			}
			idx.store(strings.TrimSpace(m[2]), strings.TrimSpace(m[1]), credit)
		}
	}

	idx.aliasDepartments()
	idx.buildNameIndex()
	return idx
}

// store records a subject under both its raw and normalized code.
func (idx *CourseIndex) store(code, name string, credit float64) {
	normalized := Normalize(code)
	idx.Credits[code] = credit
	idx.Credits[normalized] = credit
	idx.Names[code] = name
	idx.Names[normalized] = name
}

// aliasDepartments synthesizes one alias per other known department for
// every code with extractable structural parts, covering course documents
// whose department code differs from the result document's. O(codes ×
// departments), which is fine at ~60 subjects and 18 departments.
func (idx *CourseIndex) aliasDepartments() {
	for _, code := range idx.SortedCodes() {
		parts, ok := ExtractParts(code)
		if !ok {
			continue
		}
		credit := idx.Credits[code]
		name := idx.Names[code]
		for _, d := range Departments {
			if d.Code == parts.Dept {
				continue
			}
			alias := strings.Replace(code, parts.Dept, d.Code, 1)
			idx.Credits[alias] = credit
			idx.Credits[Normalize(alias)] = credit
			idx.Names[alias] = name
			idx.Names[Normalize(alias)] = name
		}
	}
}

func (idx *CourseIndex) buildNameIndex() {
	for _, code := range idx.SortedCodes() {
		if name, ok := idx.Names[code]; ok {
			idx.NameIndex[stringutil.NameKey(name)] = code
		}
	}
}

// SortedCodes returns the stored codes in lexical order. Matching fallbacks
// pick the "first" candidate, so iteration has to be deterministic.
func (idx *CourseIndex) SortedCodes() []string {
	codes := make([]string, 0, len(idx.Credits))
	for code := range idx.Credits {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len reports the number of stored code entries (aliases included).
func (idx *CourseIndex) Len() int {
	return len(idx.Credits)
}
