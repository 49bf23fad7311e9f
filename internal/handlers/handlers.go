// Package handlers holds what every v1 operation shares: the caller identity
// header and the mapping from domain errors to HTTP errors.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// AccountHeader identifies the calling account. Embed it in operation inputs.
type AccountHeader struct {
	AccountID string `header:"X-Account-ID" required:"true" format:"uuid" doc:"UUID of the calling account"`
}

// Account parses the header and records it on the request log entry.
func (h AccountHeader) Account(ctx context.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(h.AccountID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-Account-ID", err)
	}
	logging.GetLogData(ctx).AddData("accountID", id.String())
	return id, nil
}

// Error converts err into the huma error for its category. msg describes the
// failed operation and is used for failures that are not the caller's fault.
func Error(err error, msg string) error {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var configErr *apperrors.ConfigError
	var statusErr huma.StatusError

	switch {
	case errors.As(err, &validationErr):
		return huma.NewError(http.StatusBadRequest, validationErr.Error(), &huma.ErrorDetail{
			Location: "body." + validationErr.Field,
			Message:  validationErr.Reason,
		})
	case errors.As(err, &configErr):
		return huma.NewError(http.StatusBadRequest, configErr.Error(), &huma.ErrorDetail{
			Location: "body." + configErr.Field,
			Message:  configErr.Reason,
		})
	case errors.As(err, &notFoundErr):
		return huma.NewError(http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &statusErr):
		return err
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
