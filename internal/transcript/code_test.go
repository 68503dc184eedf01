package transcript

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "23CS3CSFM", "23CS3CSFM"},
		{"internal spaces stripped", "23 CS 3 CSFM", "23CS3CSFM"},
		{"surrounding whitespace", "  23CS3CSFM  ", "23CS3CSFM"},
		{"embedded in longer string", "CODE:23CS3CSFM;", "23CS3CSFM"},
		{"no structural match passes through", "NOTACODE", "NOTACODE"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q -> %q", tt.in, got, again)
			}
		})
	}
}

func TestExtractParts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want CodeParts
		ok   bool
	}{
		{"full code", "23CS3CSFM", CodeParts{Year: "23", Dept: "CS", Semester: "3", Type: "CSFM"}, true},
		{"different department", "22ME5TH", CodeParts{Year: "22", Dept: "ME", Semester: "5", Type: "TH"}, true},
		{"no second digit group", "23CSABCD", CodeParts{}, false},
		{"letters only", "ABCDEF", CodeParts{}, false},
		{"empty", "", CodeParts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractParts(tt.in)
			if ok != tt.ok {
				t.Fatalf("ExtractParts(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ExtractParts(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectDepartment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		resultText string
		courseText string
		wantCode   string
		wantName   string
	}{
		{
			name:       "majority wins",
			resultText: "23CV3ABC something\n23CS3DEF\n23CS3GHI",
			courseText: "",
			wantCode:   "CS",
			wantName:   "Computer Science and Engineering",
		},
		{
			name:       "tie resolves to earliest table entry",
			resultText: "23CV3ABC",
			courseText: "23CS3DEF",
			wantCode:   "CV",
			wantName:   "Civil Engineering",
		},
		{
			name:       "counts span both documents",
			resultText: "23IS3AAA",
			courseText: "23IS3BBB 23IS3CCC",
			wantCode:   "IS",
			wantName:   "Information Science and Engineering",
		},
		{
			name:       "nothing detected",
			resultText: "no codes here",
			courseText: "still nothing",
			wantCode:   "",
			wantName:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, name := DetectDepartment(tt.resultText, tt.courseText)
			if code != tt.wantCode || name != tt.wantName {
				t.Errorf("DetectDepartment() = (%q, %q), want (%q, %q)", code, name, tt.wantCode, tt.wantName)
			}
		})
	}
}

func TestDetectSemester(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		resultText string
		courseText string
		want       int
	}{
		{"semester three", "23CS3CSFM 23CS3CSDS", "23CS3CSBS", 3},
		{"semester five", "22ME5THAB", "", 5},
		{"most frequent digit wins", "23CS1AAA", "23CS2BBB 23CS2CCC", 2},
		{"nothing detected", "plain text", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectSemester(tt.resultText, tt.courseText); got != tt.want {
				t.Errorf("DetectSemester() = %d, want %d", got, tt.want)
			}
		})
	}
}
