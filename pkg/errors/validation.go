package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates an employee identifier after trimming.
// Blank identifiers are discarded before tree construction, so an empty
// string here is an error for callers that require one (e.g. lookups).
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateIdentifier(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return New(ErrCodeInvalidRecord, "employee identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidRecord, "employee identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "employee identifier contains control characters")
		}
	}

	return nil
}

// ValidateThresholds checks a span-of-control threshold pair.
// Both bounds must be non-negative and low must not exceed high.
func ValidateThresholds(low, high int) error {
	if low < 0 || high < 0 {
		return New(ErrCodeInvalidThreshold, "thresholds must be non-negative (got low=%d high=%d)", low, high)
	}
	if low > high {
		return New(ErrCodeInvalidThreshold, "low threshold %d exceeds high threshold %d", low, high)
	}
	return nil
}

// ValidateZoomRange checks a camera zoom range.
// Both bounds must be positive and min must not exceed max.
func ValidateZoomRange(min, max float64) error {
	if min <= 0 || max <= 0 {
		return New(ErrCodeInvalidInput, "zoom bounds must be positive (got min=%g max=%g)", min, max)
	}
	if min > max {
		return New(ErrCodeInvalidInput, "min zoom %g exceeds max zoom %g", min, max)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It prevents path traversal outside the working tree and rejects
// control characters.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	return nil
}
