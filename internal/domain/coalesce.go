package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstOf returns the first element of vals, or "" when it is empty.
func FirstOf(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Clamp01 bounds a confidence value to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
