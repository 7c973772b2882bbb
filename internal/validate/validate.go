// Package validate checks a dataset's columns against a caller-chosen set of
// required column names.
package validate

import (
	"strings"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

// Missing returns, in the order of required, every name that does not appear
// in columns. A name repeated in required is reported at most once.
func Missing(columns, required []string) []string {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[c] = struct{}{}
	}
	out := []string{}
	reported := make(map[string]struct{}, len(required))
	for _, r := range required {
		if _, ok := have[r]; ok {
			continue
		}
		if _, dup := reported[r]; dup {
			continue
		}
		reported[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Dataset is Missing over the dataset's column names.
func Dataset(ds *dataset.Dataset, required []string) []string {
	return Missing(ds.Names(), required)
}

// Message renders the status line shown to the user and reports whether all
// required columns are present.
func Message(missing []string) (string, bool) {
	if len(missing) == 0 {
		return "All required columns are present!", true
	}
	return "Missing required columns: " + strings.Join(missing, ", "), false
}
