package entity

// FilterConfig is loaded once per run and passed down to every filter.
// Threshold is in minor currency units.
type FilterConfig struct {
	Threshold  int64
	Currency   string
	Categories []string
	FreeOnly   bool
}

// NewFilterConfig forces the threshold to zero in free-only mode.
func NewFilterConfig(threshold int64, currency string, categories []string, freeOnly bool) FilterConfig {
	if freeOnly {
		threshold = 0
	}

	return FilterConfig{
		Threshold:  threshold,
		Currency:   currency,
		Categories: categories,
		FreeOnly:   freeOnly,
	}
}

// ThresholdMajor is the threshold in major units, for messages.
func (c FilterConfig) ThresholdMajor() float64 {
	return float64(c.Threshold) / 100
}
