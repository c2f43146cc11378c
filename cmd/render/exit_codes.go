package main

import (
	"os"

	ierr "github.com/AntarMukhopadhyaya/med-bill-sub000/internal/errors"
	"github.com/cockroachdb/errors"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitIO      = 3
)

var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadPayload = errors.New("failed to read payload")
	ErrWritePDF    = errors.New("failed to write PDF")
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrReadPayload),
		errors.Is(err, ErrWritePDF),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO
	case errors.Is(err, ErrUsage), ierr.IsValidation(err):
		return ExitUsage
	default:
		return ExitGeneral
	}
}
