package pathutil

import "testing"

func TestCleanDir(t *testing.T) {
	cases := map[string]string{
		"packages/app":   "packages/app",
		"packages/app/":  "packages/app",
		"packages/app//": "packages/app",
		"":               "",
	}
	for in, want := range cases {
		if got := CleanDir(in); got != want {
			t.Errorf("CleanDir(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnderDir(t *testing.T) {
	cases := []struct {
		path, dir string
		want      bool
	}{
		{"api/server.go", "api", true},
		{"api-docs/readme.md", "api", false},
		{"api", "api", false},
		{"packages/app/main.js", "packages/app", true},
		{"packages/app/main.js", "packages/app/", true},
		{"packages/application/main.js", "packages/app", false},
		{"lib(v2)/code.go", "lib(v2)", true},
	}
	for _, tc := range cases {
		if got := UnderDir(tc.path, tc.dir); got != tc.want {
			t.Errorf("UnderDir(%q, %q) = %v, want %v", tc.path, tc.dir, got, tc.want)
		}
	}
}

func TestAnyUnder(t *testing.T) {
	paths := []string{"docs/guide.md", "api/server.go", "README.md"}

	if !AnyUnder(paths, "api") {
		t.Error("expected a match under api")
	}
	if AnyUnder(paths, "apx") {
		t.Error("unexpected match under apx")
	}
	if AnyUnder(nil, "api") {
		t.Error("unexpected match in empty path list")
	}
}
