package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperrors"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	return statusErr.GetStatus()
}

func TestError_MapsCategories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.Validation("amount", "must not be negative"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", apperrors.Validation("kind", "bad")), http.StatusBadRequest},
		{"config", apperrors.Config("endDate", "must not be before startDate"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("account", "x"), http.StatusNotFound},
		{"already huma", huma.Error409Conflict("conflict"), http.StatusConflict},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(t, Error(tt.err, "failed")))
		})
	}
}

func TestError_InternalKeepsGenericMessage(t *testing.T) {
	err := Error(errors.New("pq: password authentication failed"), "failed to load account")

	var model *huma.ErrorModel
	require.ErrorAs(t, err, &model)
	assert.Equal(t, "failed to load account", model.Detail)
}

func TestAccountHeader(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	got, err := AccountHeader{AccountID: id.String()}.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = AccountHeader{AccountID: "nope"}.Account(context.Background())
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
