package transcript

import "testing"

// indexOf builds a course index directly from code -> (credit, name) pairs,
// bypassing the parser.
func indexOf(entries map[string][2]any) *CourseIndex {
	idx := &CourseIndex{
		Credits:   make(map[string]float64),
		Names:     make(map[string]string),
		NameIndex: make(map[string]string),
	}
	for code, e := range entries {
		idx.store(code, e[1].(string), e[0].(float64))
	}
	idx.buildNameIndex()
	return idx
}

func TestFindMatchingCodeCascade(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		code         string
		rec          ResultRecord
		entries      map[string][2]any
		params       MatcherParams
		wantMatch    string
		wantStrategy string
		wantOK       bool
	}{
		{
			name:         "normalized code hit",
			code:         "23 CS 3 CSFM",
			rec:          ResultRecord{Name: "Fundamentals of Management"},
			entries:      map[string][2]any{"23CS3CSFM": {4.0, "Fundamentals of Management"}},
			params:       DefaultMatcherParams(),
			wantMatch:    "23CS3CSFM",
			wantStrategy: "normalized",
			wantOK:       true,
		},
		{
			name:         "name index hit",
			code:         "UNPARSEABLE",
			rec:          ResultRecord{Name: "Data Structures"},
			entries:      map[string][2]any{"23CS3CSDS": {3.0, "Data Structures"}},
			params:       DefaultMatcherParams(),
			wantMatch:    "23CS3CSDS",
			wantStrategy: "name",
			wantOK:       true,
		},
		{
			name:    "no structural parts and no earlier hit",
			code:    "UNPARSEABLE",
			rec:     ResultRecord{Name: "zzz"},
			entries: map[string][2]any{"23CS3CSDS": {3.0, "Data Structures"}},
			params:  DefaultMatcherParams(),
			wantOK:  false,
		},
		{
			name:         "keyword hit",
			code:         "23CS3YYENV",
			rec:          ResultRecord{Name: "zz"},
			entries:      map[string][2]any{"23CV3XXENV": {2.0, "Environmental Studies"}},
			params:       DefaultMatcherParams(),
			wantMatch:    "23CV3XXENV",
			wantStrategy: "keyword",
			wantOK:       true,
		},
		{
			name:         "structural hit on year+semester+name token",
			code:         "23CS3QQQQ",
			rec:          ResultRecord{Name: "Data Handling"},
			entries:      map[string][2]any{"23ME3ZZZZ": {3.0, "Data Structures"}},
			params:       DefaultMatcherParams(),
			wantMatch:    "23ME3ZZZZ",
			wantStrategy: "structural",
			wantOK:       true,
		},
		{
			name:         "fuzzy hit within threshold",
			code:         "23CS3CSDS",
			rec:          ResultRecord{Name: "DS"},
			entries:      map[string][2]any{"23CS4CSDS": {3.0, "Data Structures"}},
			params:       DefaultMatcherParams(),
			wantMatch:    "23CS4CSDS",
			wantStrategy: "fuzzy",
			wantOK:       true,
		},
		{
			name:    "fuzzy rejected by strict threshold, no semester candidate",
			code:    "23CS3CSDS",
			rec:     ResultRecord{Name: "DS"},
			entries: map[string][2]any{"23CS4CSDS": {3.0, "Data Structures"}},
			params:  MatcherParams{FuzzyThreshold: 0.95, MinNameLength: 3},
			wantOK:  false,
		},
		{
			name:         "semester fallback",
			code:         "23CS3ABCD",
			rec:          ResultRecord{Name: "qq"},
			entries:      map[string][2]any{"23ME3ZZZZ": {3.0, "Mechanics"}},
			params:       MatcherParams{FuzzyThreshold: 0.95, MinNameLength: 3},
			wantMatch:    "23ME3ZZZZ",
			wantStrategy: "semester",
			wantOK:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewMatcher(indexOf(tt.entries), tt.params)
			match, strategy, ok := m.FindMatchingCode(tt.code, tt.rec)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (match=%q strategy=%q)", ok, tt.wantOK, match, strategy)
			}
			if !tt.wantOK {
				return
			}
			if match != tt.wantMatch {
				t.Errorf("match = %q, want %q", match, tt.wantMatch)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want float64
	}{
		{"23CS3CSDS", "23CS3CSDS", 1},
		{"", "", 1},
		{"abcd", "wxyz", 0},
	}
	for _, tt := range tests {
		if got := similarityRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	// One substitution in nine characters.
	got := similarityRatio("23CS3CSDS", "23CS4CSDS")
	if got < 0.88 || got > 0.89 {
		t.Errorf("similarityRatio one-edit = %v, want ~0.888", got)
	}
}
