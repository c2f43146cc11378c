package types

import (
	"time"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
)

// DisplayDateLayout is the date format printed on every document
const DisplayDateLayout = "02 Jan 2006"

// DateRange is an inclusive reporting period
type DateRange struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

func (r DateRange) Validate() error {
	if r.To.Before(r.From) {
		return ierr.NewError("invalid date range").
			WithHint("The period end date must not be before the start date").
			WithReportableDetails(map[string]any{
				"from": r.From.Format(time.DateOnly),
				"to":   r.To.Format(time.DateOnly),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// String renders the range as "01 Apr 2024 - 31 Mar 2025"
func (r DateRange) String() string {
	return FormatDate(r.From) + " - " + FormatDate(r.To)
}

// FormatDate formats t for display, returning "-" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DisplayDateLayout)
}
