package normalize

import "testing"

func TestParseI64(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 42 ", 42, false},
		{"42.0", 42, false},
		{"0", 0, false},
		{"42.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseI64(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseI64(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseI64(%q): %v", tc.in, err)
		} else if got != tc.want {
			t.Errorf("ParseI64(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseSmoker(t *testing.T) {
	yes := []string{"yes", "YES", " Yes ", "true", "y", "1"}
	no := []string{"no", "No", "false", "n", "0"}
	for _, s := range yes {
		v, err := ParseSmoker(s)
		if err != nil || !v {
			t.Errorf("ParseSmoker(%q) = %v, %v; want true", s, v, err)
		}
	}
	for _, s := range no {
		v, err := ParseSmoker(s)
		if err != nil || v {
			t.Errorf("ParseSmoker(%q) = %v, %v; want false", s, v, err)
		}
	}
	if _, err := ParseSmoker("maybe"); err == nil {
		t.Error("ParseSmoker(\"maybe\"): expected error")
	}
}

func TestCanonicalSmoker(t *testing.T) {
	if CanonicalSmoker(true) != "yes" || CanonicalSmoker(false) != "no" {
		t.Error("CanonicalSmoker should render yes/no")
	}
}

func TestCategory(t *testing.T) {
	cases := map[string]string{
		"  Southeast ":  "southeast",
		"NORTH   WEST":  "north west",
		"":              "",
		"   ":           "",
		"male":          "male",
	}
	for in, want := range cases {
		if got := Category(in); got != want {
			t.Errorf("Category(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColumnName(t *testing.T) {
	cases := map[string]string{
		"\ufeffage":  "age",
		" Age Group": "age_group",
		"CHARGES":    "charges",
	}
	for in, want := range cases {
		if got := ColumnName(in); got != want {
			t.Errorf("ColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}
