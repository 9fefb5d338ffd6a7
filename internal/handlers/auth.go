package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/middleware"
	"qaforum/api/internal/service"
)

const accessTokenHeader = "access-token"

var errInvalidCredentials = apperr.New(apperr.KindBadCredential, "ATH-000", "Invalid username or password")

type signupRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	EmailAddress  string `json:"emailAddress"`
	Password      string `json:"password"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.ErrInvalidInput.WithMessage("malformed request body"))
		return
	}

	user, err := h.services.Auth.Signup(c.Request.Context(), service.SignupInput{
		Username:      req.UserName,
		Email:         req.EmailAddress,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Country:       req.Country,
		AboutMe:       req.AboutMe,
		DOB:           req.DOB,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse{ID: user.ID, Status: "USER SUCCESSFULLY REGISTERED"})
}

// Signin reads credentials from HTTP Basic authentication and returns the
// new session token in the access-token header.
func (h HandlerSet) Signin(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		h.fail(c, apperr.ErrInvalidInput.WithMessage("basic authentication credentials are required"))
		return
	}

	result, err := h.services.Auth.Signin(c.Request.Context(), username, password)
	if err != nil {
		h.fail(c, h.signinError(err))
		return
	}

	c.Header(accessTokenHeader, result.Token)
	c.JSON(http.StatusOK, messageResponse{ID: result.User.ID, Message: "SIGNED IN SUCCESSFULLY"})
}

func (h HandlerSet) signinError(err error) error {
	if !h.cfg.Security.UniformSigninErrors {
		return err
	}
	switch apperr.KindOf(err) {
	case apperr.KindUnknownUser, apperr.KindBadCredential:
		return errInvalidCredentials
	}
	return err
}

func (h HandlerSet) Signout(c *gin.Context) {
	user, err := h.services.Auth.Signout(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{ID: user.ID, Message: "SIGNED OUT SUCCESSFULLY"})
}
