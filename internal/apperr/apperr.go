// Package apperr defines the classified failures returned by the service
// layer. Every failure carries a stable machine-readable code and a
// human-readable message; callers branch with errors.Is on the Kind sentinels.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindUsernameTaken
	KindEmailTaken
	KindUnknownUser
	KindBadCredential
	KindNotSignedIn
	KindSignedOut
	KindSessionExpired
	KindAlreadySignedOut
	KindForbidden
	KindQuestionNotFound
	KindAnswerNotFound
	KindUserNotFound
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindInvalidInput:     "invalid_input",
	KindUsernameTaken:    "username_taken",
	KindEmailTaken:       "email_taken",
	KindUnknownUser:      "unknown_user",
	KindBadCredential:    "bad_credential",
	KindNotSignedIn:      "not_signed_in",
	KindSignedOut:        "signed_out",
	KindSessionExpired:   "session_expired",
	KindAlreadySignedOut: "already_signed_out",
	KindForbidden:        "forbidden",
	KindQuestionNotFound: "question_not_found",
	KindAnswerNotFound:   "answer_not_found",
	KindUserNotFound:     "user_not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Unauthorized reports whether the kind means the caller holds no usable
// session.
func (k Kind) Unauthorized() bool {
	switch k {
	case KindNotSignedIn, KindSignedOut, KindSessionExpired:
		return true
	}
	return false
}

// NotFound reports whether the kind is a missing-entity failure.
func (k Kind) NotFound() bool {
	switch k {
	case KindQuestionNotFound, KindAnswerNotFound, KindUserNotFound:
		return true
	}
	return false
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is matches any *Error of the same Kind, so a sentinel matches every
// operation-specific message for that failure.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// WithMessage returns a copy carrying an operation-specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: message}
}

// KindOf returns the kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

var (
	ErrInvalidInput     = New(KindInvalidInput, "VAL-001", "Invalid input")
	ErrUsernameTaken    = New(KindUsernameTaken, "SGR-001", "Try any other Username, this Username has already been taken")
	ErrEmailTaken       = New(KindEmailTaken, "SGR-002", "This user has already been registered, try with any other emailId")
	ErrUnknownUser      = New(KindUnknownUser, "ATH-001", "This username does not exist")
	ErrBadCredential    = New(KindBadCredential, "ATH-002", "Password failed")
	ErrNotSignedIn      = New(KindNotSignedIn, "ATHR-001", "User has not signed in")
	ErrSignedOut        = New(KindSignedOut, "ATHR-002", "User is signed out")
	ErrForbidden        = New(KindForbidden, "ATHR-003", "User is not allowed to perform this operation")
	ErrSessionExpired   = New(KindSessionExpired, "ATHR-004", "Session has expired")
	ErrSignoutNoSession = New(KindNotSignedIn, "SGO-001", "User is not Signed in")
	ErrAlreadySignedOut = New(KindAlreadySignedOut, "SGO-002", "User is already signed out")
	ErrQuestionNotFound = New(KindQuestionNotFound, "QUES-001", "Entered question uuid does not exist")
	ErrAnswerNotFound   = New(KindAnswerNotFound, "ANS-001", "Entered answer uuid does not exist")
	ErrUserNotFound     = New(KindUserNotFound, "USR-001", "User with entered uuid does not exist")
)

// HTTPStatus maps err to the response status the API uses for it.
// Unclassified errors are internal failures.
func HTTPStatus(err error) int {
	switch kind := KindOf(err); {
	case kind == KindInvalidInput:
		return http.StatusBadRequest
	case kind == KindUsernameTaken, kind == KindEmailTaken:
		return http.StatusConflict
	case kind == KindUnknownUser, kind == KindBadCredential, kind == KindAlreadySignedOut, kind.Unauthorized():
		return http.StatusUnauthorized
	case kind == KindForbidden:
		return http.StatusForbidden
	case kind.NotFound():
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
