package cli

import (
	"errors"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/services/partner"
	"github.com/thenoetrevino/partners/internal/services/stage"
)

// Classify maps a service error to an error code for output and an exit
// code for the process.
func Classify(err error) (string, int) {
	var parseErr *models.ParseError
	switch {
	case err == nil:
		return "", ExitSuccess
	case errors.Is(err, auth.ErrNoSession), errors.Is(err, auth.ErrInvalidCredentials):
		return "AUTH_ERROR", ExitAuth
	case models.IsValidation(err):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, models.ErrStageInUse):
		return "STAGE_IN_USE", ExitValidation
	case errors.Is(err, stage.ErrStageExists):
		return "STAGE_EXISTS", ExitValidation
	case models.IsNotFound(err):
		return "PARTNER_NOT_FOUND", ExitNotFound
	case errors.Is(err, stage.ErrStageNotFound), errors.Is(err, board.ErrUnknownColumn):
		return "STAGE_NOT_FOUND", ExitNotFound
	case errors.Is(err, partner.ErrInvalidPartnerID), errors.Is(err, partner.ErrEmptyPatch):
		return "USAGE_ERROR", ExitUsage
	case errors.As(err, &parseErr):
		return "DATA_ERROR", ExitDataErr
	default:
		return "STORE_ERROR", ExitError
	}
}
