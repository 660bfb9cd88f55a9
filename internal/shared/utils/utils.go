package utils

import (
	"github.com/shopspring/decimal"
)

// Round1 rounds to one decimal place, half away from zero. decimal keeps the
// arithmetic exact; plain float math drifts on values like 9.45.
func Round1(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return rounded
}

// Mean returns the unweighted average of vs, or false when vs is empty.
func Mean(vs []float64) (float64, bool) {
	if len(vs) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs)), true
}

func Float64Ptr(v float64) *float64 { return &v }

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }
