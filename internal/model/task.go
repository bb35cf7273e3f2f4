package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the rune limit applied by the editing surfaces.
const MaxTextLength = 100

var (
	ErrMissingID        = errors.New("model: task id is required")
	ErrEmptyText        = errors.New("model: task text is required")
	ErrMissingCreatedAt = errors.New("model: task created_at is required")
)

type ErrorCode string

const (
	ErrCodeEmptyInput    ErrorCode = "empty_input"
	ErrCodeInvalidFilter ErrorCode = "invalid_filter"
	ErrCodeTextTooLong   ErrorCode = "text_too_long"
)

// ValidationError is returned when user input is rejected. State is never
// mutated when one is returned.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if t.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}

// NormalizeText trims raw user input and rejects it when nothing is left.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &ValidationError{Code: ErrCodeEmptyInput, Message: "task text is empty"}
	}
	return text, nil
}

// CheckLength rejects text longer than MaxTextLength runes. Editing
// surfaces call it before handing text to the controller.
func CheckLength(text string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n > MaxTextLength {
		return &ValidationError{Code: ErrCodeTextTooLong, Message: fmt.Sprintf("task text is %d characters, limit is %d", n, MaxTextLength)}
	}
	return nil
}

type Statistics struct {
	Total     int
	Completed int
}

func (s Statistics) Pending() int {
	return s.Total - s.Completed
}

// ClearEnabled reports whether "clear completed" has anything to act on.
func (s Statistics) ClearEnabled() bool {
	return s.Completed > 0
}

func ComputeStatistics(tasks []Task) Statistics {
	out := Statistics{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
	}
	return out
}
