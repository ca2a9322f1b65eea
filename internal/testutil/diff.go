// Package testutil collects small test-only helpers shared across
// internal packages, grounded in the teacher's scattered per-package test
// helpers (e.g. internal/interp/fixture_test.go's assertion helpers)
// consolidated into one place since this module's tests span several
// packages that all need the same cache-replay/AST-diff assertion.
package testutil

import (
	"testing"

	"github.com/kr/pretty"
)

// AssertDeepEqual fails t with a structural diff of got vs want when they
// differ, used by cache-replay tests (spec.md §8, "Cache consistency":
// a cache-hit FunctionInfo/fncache.Entry must be indistinguishable from
// the one a cold, no-cache parse would have produced).
func AssertDeepEqual(t *testing.T, got, want any, context string) {
	t.Helper()
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("%s: mismatch:\n%s", context, pretty.Sprint(diff))
	}
}
