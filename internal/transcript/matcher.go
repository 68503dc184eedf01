package transcript

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ImamJamdar/CGPA/internal/stringutil"
)

// MatcherParams are the tunable constants of the matching cascade. They are
// heuristic values with no principled derivation, so they are injected
// rather than hard-coded.
type MatcherParams struct {
	// FuzzyThreshold is the minimum similarity ratio for the fuzzy fallback.
	FuzzyThreshold float64

	// MinNameLength is the minimum result-name length for name-token
	// structural matching.
	MinNameLength int
}

// DefaultMatcherParams returns the historically used constants.
func DefaultMatcherParams() MatcherParams {
	return MatcherParams{FuzzyThreshold: 0.5, MinNameLength: 3}
}

// matcherKeywords maps special-subject code keywords to subject names for
// tier-3 containment matching. Order matters: first hit wins.
var matcherKeywords = []struct {
	Keyword string
	Subject string
}{
	{"BFE", "Biology for Engineers"},
	{"FBE", "Biology for Engineers"},
	{"ENV", "Environmental Studies"},
	{"CPH", "Constitution of India"},
	{"MAT", "Mathematics"},
}

// Matcher resolves result records against a course index.
//
// Strategy (multi-tier, first success wins):
//  1. Normalized code present in the index
//  2. Name lookup via the lower/no-space name index
//  3. Special-keyword containment (BFE/FBE/ENV/CPH/MAT)
//  4. Same year+semester with the name's first token inside the course name
//  5. Core pattern containment (<year><semester><firstTypeLetter>)
//  6. Fuzzy similarity among codes carrying the semester digit
//  7. Semester-only fallback
//
// The cascade deliberately over-matches: tier 7 hands back any code sharing
// the semester rather than reporting no match, trading possible wrong
// credits on unusual codes for fewer spuriously unmatched subjects.
type Matcher struct {
	index  *CourseIndex
	params MatcherParams
}

// NewMatcher creates a matcher over the given course index.
func NewMatcher(index *CourseIndex, params MatcherParams) *Matcher {
	return &Matcher{index: index, params: params}
}

// FindMatchingCode resolves the course code for a result record. The
// returned strategy names the cascade tier that matched ("normalized",
// "name", "keyword", "structural", "core_pattern", "fuzzy", "semester").
// ok is false only when the result code itself has no structural parts and
// no earlier tier matched.
func (m *Matcher) FindMatchingCode(code string, rec ResultRecord) (match, strategy string, ok bool) {
	normalized := Normalize(code)

	if _, found := m.index.Credits[normalized]; found {
		return normalized, "normalized", true
	}

	if byName, found := m.index.NameIndex[stringutil.NameKey(rec.Name)]; found {
		if _, stored := m.index.Credits[byName]; stored {
			return byName, "name", true
		}
	}

	parts, found := ExtractParts(normalized)
	if !found {
		return "", "", false
	}

	if c, hit := m.matchKeyword(code, rec); hit {
		return c, "keyword", true
	}
	if c, hit := m.matchStructural(parts, rec); hit {
		return c, "structural", true
	}
	if c, hit := m.matchCorePattern(parts); hit {
		return c, "core_pattern", true
	}
	if c, hit := m.matchFuzzy(normalized, parts); hit {
		return c, "fuzzy", true
	}
	if c, hit := m.matchSemester(parts); hit {
		return c, "semester", true
	}
	return "", "", false
}

// matchKeyword returns the first course code containing a special-subject
// keyword when that keyword appears in the result code or the subject name
// appears in the result name.
func (m *Matcher) matchKeyword(code string, rec ResultRecord) (string, bool) {
	for _, kw := range matcherKeywords {
		if !strings.Contains(code, kw.Keyword) && !strings.Contains(rec.Name, kw.Subject) {
			continue
		}
		for _, candidate := range m.index.SortedCodes() {
			if strings.Contains(candidate, kw.Keyword) {
				return candidate, true
			}
		}
	}
	return "", false
}

// matchStructural returns the first course code with identical year and
// semester whose stored name contains the result name's first token.
func (m *Matcher) matchStructural(parts CodeParts, rec ResultRecord) (string, bool) {
	if len(rec.Name) <= m.params.MinNameLength {
		return "", false
	}
	token := stringutil.FirstToken(rec.Name)
	if token == "" {
		return "", false
	}
	for _, candidate := range m.index.SortedCodes() {
		cp, ok := ExtractParts(candidate)
		if !ok || cp.Year != parts.Year || cp.Semester != parts.Semester {
			continue
		}
		if strings.Contains(strings.ToLower(m.index.Names[candidate]), token) {
			return candidate, true
		}
	}
	return "", false
}

// matchCorePattern returns the first course code containing
// <year><semester><firstTypeLetter>.
func (m *Matcher) matchCorePattern(parts CodeParts) (string, bool) {
	core := parts.Year + parts.Semester + parts.Type[:1]
	for _, candidate := range m.index.SortedCodes() {
		if strings.Contains(candidate, core) {
			return candidate, true
		}
	}
	return "", false
}

// matchFuzzy keeps the highest similarity ratio among course codes that
// contain the semester digit, accepting it only above the threshold.
func (m *Matcher) matchFuzzy(normalized string, parts CodeParts) (string, bool) {
	best := ""
	bestRatio := 0.0
	for _, candidate := range m.index.SortedCodes() {
		if !strings.Contains(candidate, parts.Semester) {
			continue
		}
		if ratio := similarityRatio(normalized, candidate); ratio > bestRatio {
			bestRatio = ratio
			best = candidate
		}
	}
	if bestRatio > m.params.FuzzyThreshold {
		return best, true
	}
	return "", false
}

// matchSemester is the last resort: any course code whose extracted
// semester equals the result code's semester.
func (m *Matcher) matchSemester(parts CodeParts) (string, bool) {
	for _, candidate := range m.index.SortedCodes() {
		if cp, ok := ExtractParts(candidate); ok && cp.Semester == parts.Semester {
			return candidate, true
		}
	}
	return "", false
}

// similarityRatio is a normalized edit-distance ratio in [0,1]; 1 means
// identical strings.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
