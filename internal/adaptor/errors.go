package adaptor

import (
	"errors"
	"fmt"
	"net/http"

	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps use case errors to HTTP responses. Anything it does
// not recognise is logged and answered with a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validation *usecase.ValidationError
		outOfRange *usecase.OutOfRangeError
		conflict   *usecase.ConflictError
		reference  *usecase.ReferenceError
		exists     *usecase.AlreadyExistsError
		forbidden  *usecase.AuthorizationError
	)

	switch {
	case errors.As(err, &validation):
		log.Warn(operation+" validation failed", zap.Any("errors", validation.Fields))
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.As(err, &outOfRange):
		log.Warn(operation+" rejected - out of range", zap.Error(err))
		field := fmt.Sprintf("tickets[%d].%s", outOfRange.Index, outOfRange.Field)
		utils.ResponseBadRequest(w, err.Error(), map[string]string{field: err.Error()})

	case errors.As(err, &conflict):
		log.Warn(operation+" rejected - seat taken", zap.Error(err))
		field := fmt.Sprintf("tickets[%d]", conflict.Index)
		utils.ResponseBadRequest(w, err.Error(), map[string]string{field: err.Error()})

	case errors.As(err, &reference):
		log.Warn(operation+" rejected - unknown reference", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), map[string]string{reference.Field: err.Error()})

	case errors.As(err, &exists):
		log.Warn(operation+" rejected - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), map[string]string{exists.Field: err.Error()})

	case errors.Is(err, utils.ErrFileTooLarge), errors.Is(err, utils.ErrFileType):
		utils.ResponseBadRequest(w, err.Error(), map[string]string{"image": err.Error()})

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrAccountDeactivated), errors.As(err, &forbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
