package org

// Health classifies a manager's span of control against configured
// thresholds.
type Health int

const (
	// HealthOK means the direct report count is within thresholds, or the
	// node is a leaf (leaves are never flagged).
	HealthOK Health = iota
	// HealthLow means the node has reports, but fewer than the low threshold.
	HealthLow
	// HealthHigh means the direct report count exceeds the high threshold.
	HealthHigh
)

// String returns the lowercase name of the classification.
func (h Health) String() string {
	switch h {
	case HealthLow:
		return "low"
	case HealthHigh:
		return "high"
	default:
		return "ok"
	}
}

// Thresholds holds the span-of-control bounds used to classify managers.
// Classification is always derived from a node's stored direct report count,
// so thresholds can change at any time without touching the forest.
type Thresholds struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// DefaultThresholds are the bounds used when the caller supplies none.
var DefaultThresholds = Thresholds{Low: 3, High: 8}

// Classify maps a direct report count to a health classification.
// A count of zero is a leaf and always classifies as HealthOK.
func (t Thresholds) Classify(directReports int) Health {
	switch {
	case directReports == 0:
		return HealthOK
	case directReports < t.Low:
		return HealthLow
	case directReports > t.High:
		return HealthHigh
	default:
		return HealthOK
	}
}
