package response

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-commerce-backend/internal/domain"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrNotFound, CodeNotFound},
		{"conflict", domain.ErrConflict, CodeConflict},
		{"invalid reference", domain.ErrInvalidReference, CodeBadRequest},
		{"invalid input", domain.ErrInvalidInput, CodeBadRequest},
		{"internal", domain.ErrInternal, CodeServerError},
		{"unknown", errors.New("surprise"), CodeServerError},
		{"wrapped", fmt.Errorf("%w: email taken", domain.ErrConflict), CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, FromError(tc.err).Code)
		})
	}
}

func TestOKNeverNullData(t *testing.T) {
	r := OK(nil)
	assert.Equal(t, CodeOK, r.Code)
	assert.NotNil(t, r.Data)
}
