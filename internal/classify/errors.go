package classify

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers tagging per-file failures for later classification.
var (
	ErrHash   = errors.New("hash failure")
	ErrMove   = errors.New("move failure")
	ErrDelete = errors.New("delete failure")
)

// Wrap builds an error message that includes operation context while
// tagging it with the provided marker. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "classification failure"
	}
	return strings.Join(parts, ": ")
}
