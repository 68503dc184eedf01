package transcript

import "testing"

const sampleCourseText = `B.M.S. COLLEGE OF ENGINEERING
Course Details
Sl No Course Title Course Code Type Hours Credits
1 Fundamentals of Management 23CS3CSFM CR 4 4
Data Structures 23CS3CSDS CR 3 3.5
not a course row at all
Total Credits 26
Ignored Subject 23CS3CSEX CR 3 3
Biology for Engineers 23CS3XXBFE 2`

func TestParseCoursesRows(t *testing.T) {
	t.Parallel()
	idx := ParseCourses(sampleCourseText)

	tests := []struct {
		code       string
		wantCredit float64
		wantName   string
	}{
		{"23CS3CSFM", 4, "Fundamentals of Management"},
		{"23CS3CSDS", 3.5, "Data Structures"},
		{"23CS3XXBFE", 2, "Biology for Engineers"},
	}
	for _, tt := range tests {
		if got := idx.Credits[tt.code]; got != tt.wantCredit {
			t.Errorf("Credits[%q] = %v, want %v", tt.code, got, tt.wantCredit)
		}
		if got := idx.Names[tt.code]; got != tt.wantName {
			t.Errorf("Names[%q] = %q, want %q", tt.code, got, tt.wantName)
		}
	}

	// Rows after "Total Credits" are outside the course section. The special
	// Biology pattern applies anywhere, but plain rows do not.
	if _, ok := idx.Credits["23CS3CSEX"]; ok {
		t.Error("row outside the course section should not be stored")
	}
}

func TestParseCoursesDepartmentAliases(t *testing.T) {
	t.Parallel()
	idx := ParseCourses(sampleCourseText)

	// A result document from another department must still resolve: every
	// code gets one alias per other department with identical credit/name.
	if got := idx.Credits["23CV3CSFM"]; got != 4 {
		t.Errorf("Credits[23CV3CSFM] = %v, want 4", got)
	}
	if got := idx.Names["23ME3CSDS"]; got != "Data Structures" {
		t.Errorf("Names[23ME3CSDS] = %q, want %q", got, "Data Structures")
	}

	for _, code := range idx.SortedCodes() {
		if idx.Names[code] == "" {
			t.Errorf("code %q stored without a name", code)
		}
	}
}

func TestParseCoursesNameIndex(t *testing.T) {
	t.Parallel()
	idx := ParseCourses(sampleCourseText)

	code, ok := idx.NameIndex["fundamentalsofmanagement"]
	if !ok {
		t.Fatal("expected name index entry for fundamentalsofmanagement")
	}
	if idx.Names[code] != "Fundamentals of Management" {
		t.Errorf("name index points at %q (%q)", code, idx.Names[code])
	}
}

func TestParseCoursesEmptyText(t *testing.T) {
	t.Parallel()
	if idx := ParseCourses(""); idx.Len() != 0 {
		t.Errorf("ParseCourses(\"\") stored %d entries, want 0", idx.Len())
	}

	// Rows outside any section marker are ignored entirely.
	idx := ParseCourses("1 Orphan Course 23CS3CSOR CR 3 3")
	if idx.Len() != 0 {
		t.Errorf("ParseCourses without section markers stored %d entries, want 0", idx.Len())
	}
}

func TestSortedCodesIsDeterministic(t *testing.T) {
	t.Parallel()
	idx := ParseCourses(sampleCourseText)

	first := idx.SortedCodes()
	for range 5 {
		again := idx.SortedCodes()
		if len(again) != len(first) {
			t.Fatalf("SortedCodes length changed: %d vs %d", len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("SortedCodes order changed at %d: %q vs %q", i, again[i], first[i])
			}
		}
	}
}
