package aggregation

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldKey builds a fresh Caser per call since a Caser must not be shared
// between goroutines.
func foldKey(label string) string {
	return cases.Fold().String(strings.TrimSpace(label))
}

type statusFilter map[string]struct{}

// newStatusFilter builds a case-insensitive membership set. Entries may
// themselves be comma separated lists.
func newStatusFilter(requested []string) statusFilter {
	f := make(statusFilter)
	for _, entry := range requested {
		for _, s := range strings.Split(entry, ",") {
			if key := foldKey(s); key != "" {
				f[key] = struct{}{}
			}
		}
	}
	return f
}

func (f statusFilter) empty() bool {
	return len(f) == 0
}

func (f statusFilter) matches(label string) bool {
	_, ok := f[foldKey(label)]
	return ok
}
