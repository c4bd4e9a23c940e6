package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	autherror "github.com/storyverse/story-service/internal/errors"
)

func TestKindAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   string
		status int
	}{
		{autherror.ErrValidation, "validation_error", http.StatusBadRequest},
		{fmt.Errorf("%w: title is required", autherror.ErrValidation), "validation_error", http.StatusBadRequest},
		{autherror.ErrUsernameTaken, "conflict_error", http.StatusBadRequest},
		{autherror.ErrAuthenticationRequired, "authentication_error", http.StatusUnauthorized},
		{autherror.ErrInvalidCredentials, "authentication_error", http.StatusUnauthorized},
		{autherror.ErrInvalidToken, "authentication_error", http.StatusUnauthorized},
		{autherror.ErrTokenExpired, "authentication_error", http.StatusUnauthorized},
		{autherror.ErrStoryNotFound, "not_found_error", http.StatusNotFound},
		{autherror.ErrUserNotFound, "not_found_error", http.StatusNotFound},
		{fmt.Errorf("connection refused"), "internal_error", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, autherror.Kind(tc.err), tc.err.Error())
		assert.Equal(t, tc.status, autherror.HTTPStatus(tc.err), tc.err.Error())
	}
}
