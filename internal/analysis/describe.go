package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

// NumSummary is the describe row of one numeric column.
type NumSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe summarizes every Numeric column in column order. Std is the
// sample standard deviation and is 0 for fewer than two values.
func Describe(ds *dataset.Dataset) []NumSummary {
	out := []NumSummary{}
	for _, c := range ds.Columns {
		if c.Type != dataset.Numeric {
			continue
		}
		s := NumSummary{Column: c.Name, Count: len(c.Nums)}
		if s.Count > 0 {
			sorted := append([]float64(nil), c.Nums...)
			sort.Float64s(sorted)
			s.Min = floats.Min(sorted)
			s.Max = floats.Max(sorted)
			s.Mean = stat.Mean(sorted, nil)
			if s.Count > 1 {
				s.Std = stat.StdDev(sorted, nil)
			}
			s.Q25 = quantile(sorted, 0.25)
			s.Median = quantile(sorted, 0.5)
			s.Q75 = quantile(sorted, 0.75)
		}
		out = append(out, s)
	}
	return out
}

// quantile interpolates linearly between closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
