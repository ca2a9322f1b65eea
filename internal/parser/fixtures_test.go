package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maruel/natural"
	"github.com/scriptvm/esparser/internal/ast"
	"github.com/scriptvm/esparser/internal/fncache"
)

// TestFixtures runs every .js file under testdata/fixtures/pass and
// testdata/fixtures/fail through the parser and checks it against the
// directory's expected outcome. Files within a category are ordered with
// natural.Sort rather than the OS's lexicographic directory order, so
// "2_arrow_functions.js" runs before "10_modules.js" instead of after it -
// failures reported by `go test -v` read in the order a human numbered
// the fixtures, not ASCII order.
func TestFixtures(t *testing.T) {
	categories := []struct {
		dir         string
		expectError bool
	}{
		{dir: "testdata/fixtures/pass", expectError: false},
		{dir: "testdata/fixtures/fail", expectError: true},
	}

	for _, category := range categories {
		category := category
		t.Run(filepath.Base(category.dir), func(t *testing.T) {
			entries, err := os.ReadDir(category.dir)
			if err != nil {
				t.Fatalf("reading %s: %v", category.dir, err)
			}

			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".js") {
					names = append(names, e.Name())
				}
			}
			natural.Sort(names)

			for _, name := range names {
				name := name
				t.Run(name, func(t *testing.T) {
					runFixture(t, filepath.Join(category.dir, name), category.expectError)
				})
			}
		})
	}
}

func runFixture(t *testing.T, path string, expectError bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	mode := ModeProgram
	if strings.Contains(string(source), "import ") || strings.Contains(string(source), "export ") {
		mode = ModeModule
	}

	p := New(string(source), mode, ast.FullBuilder{}, fncache.NewProvider())
	p.Parse()

	first := p.FirstError()
	switch {
	case expectError && first == nil:
		t.Errorf("%s: expected a syntax error, parsed cleanly", path)
	case !expectError && first != nil:
		t.Errorf("%s: unexpected error: %s", path, first.ToMessage())
	}
}
