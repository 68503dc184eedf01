package transcript

import (
	"regexp"
	"strings"

	"github.com/ImamJamdar/CGPA/internal/stringutil"
)

// ResultRecord is a single subject parsed from a result document.
type ResultRecord struct {
	Name           string
	Grade          string
	NormalizedCode string
}

var (
	subjectLineRe = regexp.MustCompile(`\b2\d[A-Za-z]{2}\d[A-Za-z]{2,7}`)
	subjectCodeRe = regexp.MustCompile(`(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}[A-Za-z0-9]*)`)

	// A grade token sits at line end, preceded by mark digits on the same
	// line or standing alone on a short following line.
	gradeAfterMarksRe = regexp.MustCompile(`[0-9]+\s+([OABCPFo+]+)$`)
	gradeAtEndRe      = regexp.MustCompile(`([OABCPFo+]+)$`)

	// Names are truncated at the first run of digits (marks columns).
	nameDigitsTailRe = regexp.MustCompile(`\s+\d+.*$`)

	// Stricter row format used inside "GRADES" blocks:
	// code name int int int grade.
	structuredRowRe = regexp.MustCompile(`(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}[A-Za-z0-9]*)\s+(.*?)\s+\d+\s+\d+\s+\d+\s+([OABCPFo+]+)`)
)

// specialSubject binds a code suffix pattern to its canonical subject name.
// These subjects carry non-standard type suffixes and need dedicated rules.
type specialSubject struct {
	resultRe *regexp.Regexp // code-then-name order (result documents)
	courseRe *regexp.Regexp // name-then-code order (course documents)
	name     string
	keyword  string // suffix keyword usable for substring matching
}

var specialSubjects = []specialSubject{
	{
		resultRe: regexp.MustCompile(`(?i)(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}(?:BFE|FBE))\s+(Biology\s+for\s+Engineers)`),
		courseRe: regexp.MustCompile(`(?i)(Biology\s+for\s+Engineers)\s+(2\d[A-Za-z0-9]{6,10})`),
		name:     "Biology for Engineers",
		keyword:  "BFE|FBE",
	},
	{
		resultRe: regexp.MustCompile(`(?i)(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}ENV)\s+(Environmental\s+Studies)`),
		courseRe: regexp.MustCompile(`(?i)(Environmental\s+Studies)\s+(2\d[A-Za-z0-9]{6,10})`),
		name:     "Environmental Studies",
		keyword:  "ENV",
	},
	{
		resultRe: regexp.MustCompile(`(?i)(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}CPH)\s+(Constitution\s+of\s+India)`),
		courseRe: regexp.MustCompile(`(?i)(Constitution\s+of\s+India)\s+(2\d[A-Za-z0-9]{6,10})`),
		name:     "Constitution of India",
		keyword:  "CPH",
	},
	{
		resultRe: regexp.MustCompile(`(?i)(2\d[A-Za-z]{2}\d[A-Za-z]{2,7}MAT)\s+(Mathematics)`),
		courseRe: regexp.MustCompile(`(?i)(Mathematics)\s+(2\d[A-Za-z0-9]{6,10})`),
		name:     "Mathematics",
		keyword:  "MAT",
	},
}

// specialKeywords are English names searched for in the keyword-only scan.
var specialKeywords = []string{
	"Biology for Engineers",
	"Environmental Studies",
	"Constitution of India",
}

// cleanGrade uppercases and de-spaces a raw grade token and folds the
// occasional "O+" misprint to "O".
func cleanGrade(raw string) string {
	g := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "")
	if g == "O+" {
		return "O"
	}
	return g
}

// ParseResults scans result-document text for subject-code/grade pairs.
// Stages run in order and later stages overwrite earlier entries for the
// same code (last-write-wins: only one grade can be canonical per code).
// Malformed lines contribute no record; ParseResults itself never fails.
func ParseResults(text string) map[string]ResultRecord {
	lines := strings.Split(text, "\n")
	subjects := make(map[string]ResultRecord)

	scanSubjectLines(lines, subjects)
	scanStructuredBlocks(lines, subjects)
	scanSpecialPatterns(lines, subjects)
	scanSpecialKeywords(lines, subjects)

	return subjects
}

// scanSubjectLines is the line-local heuristic: every line with a subject
// code yields a candidate record, with name and grade recovered from the
// same line or up to two lines ahead.
func scanSubjectLines(lines []string, subjects map[string]ResultRecord) {
	for i, line := range lines {
		if !subjectLineRe.MatchString(line) {
			continue
		}
		loc := subjectCodeRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		code := strings.TrimSpace(line[loc[2]:loc[3]])
		remaining := strings.TrimSpace(line[loc[1]:])
		name := strings.TrimSpace(nameDigitsTailRe.ReplaceAllString(remaining, ""))

		// Line-wrapped names: the name may sit alone on the next line.
		if name == "" || stringutil.IsNumeric(name) {
			if i+1 < len(lines) && !subjectLineRe.MatchString(lines[i+1]) {
				name = strings.TrimSpace(lines[i+1])
			}
		}

		grade := ""
		if m := gradeAfterMarksRe.FindStringSubmatch(line); m != nil {
			grade = cleanGrade(m[1])
		} else {
			for j := 1; j <= 2 && i+j < len(lines); j++ {
				next := lines[i+j]
				if m := gradeAtEndRe.FindStringSubmatch(next); m != nil && len(next) < 20 {
					grade = cleanGrade(m[1])
					break
				}
			}
		}

		if IsValidGrade(grade) {
			subjects[code] = ResultRecord{
				Name:           name,
				Grade:          grade,
				NormalizedCode: Normalize(code),
			}
		}
	}
}

// scanStructuredBlocks parses the stricter tabular rows that follow a line
// containing the "GRADES" marker, looking at most 20 lines ahead.
func scanStructuredBlocks(lines []string, subjects map[string]ResultRecord) {
	for i, line := range lines {
		if !strings.Contains(line, "GRADES") || i >= len(lines)-1 {
			continue
		}
		end := min(i+20, len(lines))
		for j := i + 1; j < end; j++ {
			m := structuredRowRe.FindStringSubmatch(lines[j])
			if m == nil {
				continue
			}
			code := strings.TrimSpace(m[1])
			grade := cleanGrade(m[3])
			if IsValidGrade(grade) {
				subjects[code] = ResultRecord{
					Name:           strings.TrimSpace(m[2]),
					Grade:          grade,
					NormalizedCode: Normalize(code),
				}
			}
		}
	}
}

// scanSpecialPatterns applies the fixed code-suffix/name pairs for special
// subjects, with the grade taken from the end of the same line.
func scanSpecialPatterns(lines []string, subjects map[string]ResultRecord) {
	for _, sp := range specialSubjects {
		for _, line := range lines {
			m := sp.resultRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			g := gradeAtEndRe.FindStringSubmatch(line)
			if g == nil {
				continue
			}
			code := strings.TrimSpace(m[1])
			grade := cleanGrade(g[1])
			if IsValidGrade(grade) {
				subjects[code] = ResultRecord{
					Name:           sp.name,
					Grade:          grade,
					NormalizedCode: Normalize(code),
				}
			}
		}
	}
}

// scanSpecialKeywords recovers special subjects whose lines never formed a
// recognizable code+name pattern: the code comes from the keyword line and
// the grade from the same line or a short line within the next two.
func scanSpecialKeywords(lines []string, subjects map[string]ResultRecord) {
	for i, line := range lines {
		for _, keyword := range specialKeywords {
			if !strings.Contains(line, keyword) {
				continue
			}
			cm := subjectCodeRe.FindStringSubmatch(line)
			if cm == nil {
				continue
			}
			code := strings.TrimSpace(cm[1])

			if g := gradeAtEndRe.FindStringSubmatch(line); g != nil {
				grade := cleanGrade(g[1])
				if IsValidGrade(grade) {
					subjects[code] = ResultRecord{
						Name:           keyword,
						Grade:          grade,
						NormalizedCode: Normalize(code),
					}
				}
				continue
			}

			for j := 1; j <= 2 && i+j < len(lines); j++ {
				next := lines[i+j]
				g := gradeAtEndRe.FindStringSubmatch(next)
				if g == nil || len(next) >= 20 {
					continue
				}
				grade := cleanGrade(g[1])
				if IsValidGrade(grade) {
					subjects[code] = ResultRecord{
						Name:           keyword,
						Grade:          grade,
						NormalizedCode: Normalize(code),
					}
				}
				break
			}
		}
	}
}
