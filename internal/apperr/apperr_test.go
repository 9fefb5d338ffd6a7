package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := ErrSignedOut.WithMessage("User is signed out.Sign in first to post a question")

	assert.ErrorIs(t, err, ErrSignedOut)
	assert.NotErrorIs(t, err, ErrNotSignedIn)
	assert.Equal(t, "ATHR-002", err.Code)

	wrapped := fmt.Errorf("create question: %w", err)
	assert.ErrorIs(t, wrapped, ErrSignedOut)
	assert.Equal(t, KindSignedOut, KindOf(wrapped))
}

func TestSignoutUnknownSessionIsNotSignedIn(t *testing.T) {
	assert.ErrorIs(t, ErrSignoutNoSession, ErrNotSignedIn)
	assert.NotEqual(t, ErrSignoutNoSession.Code, ErrNotSignedIn.Code)
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindNotSignedIn.Unauthorized())
	assert.True(t, KindSessionExpired.Unauthorized())
	assert.False(t, KindForbidden.Unauthorized())
	assert.True(t, KindAnswerNotFound.NotFound())
	assert.False(t, KindUsernameTaken.NotFound())
	assert.Equal(t, "email_taken", KindEmailTaken.String())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "QUES-001: Entered question uuid does not exist", ErrQuestionNotFound.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUsernameTaken, http.StatusConflict},
		{ErrEmailTaken, http.StatusConflict},
		{ErrUnknownUser, http.StatusUnauthorized},
		{ErrBadCredential, http.StatusUnauthorized},
		{ErrNotSignedIn, http.StatusUnauthorized},
		{ErrSignedOut.WithMessage("x"), http.StatusUnauthorized},
		{ErrSessionExpired, http.StatusUnauthorized},
		{ErrSignoutNoSession, http.StatusUnauthorized},
		{ErrAlreadySignedOut, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrQuestionNotFound, http.StatusNotFound},
		{ErrAnswerNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrForbidden), http.StatusForbidden},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
