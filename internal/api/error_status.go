package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/services"
)

var badRequestErrors = []error{
	services.ErrProfileInvalidAge,
	services.ErrProfileInvalidHeight,
	services.ErrProfileInvalidWeight,
	services.ErrProfileGoalRequired,
	services.ErrChapterNameRequired,
	services.ErrChapterInvalidDuration,
	services.ErrChapterInvalidFocus,
	services.ErrChapterInvalidStatus,
	services.ErrCheckInInvalidWeight,
	services.ErrCheckInInvalidBloating,
	services.ErrCheckInInvalidEnergy,
	services.ErrCheckInInvalidAlcohol,
	services.ErrAuthCredentialsInvalid,
	services.ErrAuthEmailInvalid,
	services.ErrAuthPasswordMismatch,
	services.ErrWeakPassword,
	services.ErrAuthNewPasswordMustDiffer,
	services.ErrAuthTokenMissing,
	services.ErrAuthTokenInvalid,
	services.ErrAuthTokenInvalidPurpose,
	services.ErrAuthTokenExpired,
	services.ErrAuthTokenInvalidPasswordState,
	services.ErrOAuthEmailNotVerified,
	coach.ErrEmptyConversation,
	coach.ErrInvalidMessage,
}

// statusForError maps a service error to its HTTP status. Unknown errors are
// treated as storage failures.
func statusForError(err error) int {
	for _, candidate := range badRequestErrors {
		if errors.Is(err, candidate) {
			return fiber.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, services.ErrChapterNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrAuthUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrCheckInProfileRequired),
		errors.Is(err, services.ErrSeedProfileRequired):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrAuthEmailExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthCurrentPasswordWrong):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrOAuthExchangeFailed),
		errors.Is(err, services.ErrAuthMailFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrOAuthProviderMisconfig),
		errors.Is(err, services.ErrAuthUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	return apiError(c, statusForError(err), err.Error())
}
