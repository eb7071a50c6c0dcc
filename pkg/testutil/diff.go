package testutil

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump returns a deterministic, human-readable rendering of `v`, suitable for diffing.
func Dump(v interface{}) string {
	return spewConfig.Sdump(v)
}

func unifiedDiff(exp, act string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	return diff
}

// AssertEqualLines asserts that two lists of lines are equal, and if they aren't, reports a
// unified diff rather than two long lists.
func AssertEqualLines(t *testing.T, exp, act []string) bool {
	t.Helper()
	expStr := strings.Join(exp, "\n") + "\n"
	actStr := strings.Join(act, "\n") + "\n"
	if len(exp) != len(act) || expStr != actStr {
		t.Errorf("Lines diff:\n%s", unifiedDiff(expStr, actStr))
		return false
	}
	return true
}

// AssertEqualDump is like AssertEqualLines, but compares arbitrary values by their Dump.
func AssertEqualDump(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	expStr := Dump(exp)
	actStr := Dump(act)
	if expStr != actStr {
		t.Errorf("Dump diff:\n%s", unifiedDiff(expStr, actStr))
		return false
	}
	return true
}
