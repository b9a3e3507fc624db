package user

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"student":  RoleStudent,
		" School ": RoleSchool,
		"ADMIN":    RoleAdmin,
		"teacher":  "",
		"":         "",
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("  Jane  van Doe ")
	if first != "Jane" || last != "van Doe" {
		t.Fatalf("unexpected split: %q %q", first, last)
	}
	first, last = SplitName("")
	if first != "" || last != "" {
		t.Fatalf("expected empty split, got %q %q", first, last)
	}
}

func TestStudentProfile_FullName(t *testing.T) {
	p := StudentProfile{FirstName: "Jane"}
	if p.FullName() != "Jane" {
		t.Fatalf("expected Jane, got %q", p.FullName())
	}
}
