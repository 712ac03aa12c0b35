package handlers

import (
	"errors"
	"net/http"

	"webcharge_api/internal/adapter/http/dto/request"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/infrastructure/auth"
	"webcharge_api/internal/usecase"
	"webcharge_api/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidUID     = pkg.NewDomainErrorSimple("INVALID_UID", "Invalid uid", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapUseCaseError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidPlayerID),
		errors.Is(err, usecase.ErrInvalidLogin), errors.Is(err, request.ErrInvalidUID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPlayerNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentRecordNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTransient):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Temporarily unavailable, retry later", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrGrantNotConfirmed):
		return pkg.NewDomainError("GRANT_NOT_CONFIRMED", "Payment recorded but reward not confirmed", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrDependencyMissing), errors.Is(err, usecase.ErrStoreNotAvailable):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Service not configured", err, http.StatusServiceUnavailable)
	case errors.Is(err, auth.ErrInvalidAppID):
		return pkg.NewDomainErrorSimple("INVALID_APP_ID", "Invalid AppId", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func rejectionStatus(reason string) int {
	switch reason {
	case entities.RejectTierRestricted:
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}
