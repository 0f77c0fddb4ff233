package errors

import (
	"strings"
	"unicode"
)

// MaxGridArea bounds the number of cells a single grid may hold.
// Rectangle coordinates arrive from files and HTTP bodies, so the grid they
// imply is checked before any allocation happens.
const MaxGridArea = 1 << 24

// ValidateDimensions checks that a grid of height×width cells is non-negative
// and does not exceed [MaxGridArea].
func ValidateDimensions(height, width int) error {
	if height < 0 || width < 0 {
		return New(ErrCodeInvalidGrid, "negative grid dimensions %dx%d", height, width)
	}
	if width > 0 && height > MaxGridArea/width {
		return New(ErrCodeInvalidGrid, "grid %dx%d exceeds %d cells", height, width, MaxGridArea)
	}
	return nil
}

// ValidateUnits checks the resolution passed to the float discretizer.
// Zero means "no discretization"; any other value must be at least 2 so that
// the global minimum and maximum land on distinct cells.
func ValidateUnits(units int) error {
	if units == 0 {
		return nil
	}
	if units < 2 {
		return New(ErrCodeInvalidInput, "units must be 0 or at least 2, got %d", units)
	}
	if units > MaxGridArea {
		return New(ErrCodeInvalidInput, "units too large (max %d)", MaxGridArea)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsFunc(path, unicode.IsControl) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}
