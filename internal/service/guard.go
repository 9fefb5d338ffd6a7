package service

import (
	"context"
	"fmt"
	"time"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
	"qaforum/api/internal/security"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID    string
	Username  string
	Role      models.UserRole
	SessionID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.UserRoleAdmin
}

// Action names what the caller was trying to do. It only shapes the
// signed-out message.
type Action string

const (
	ActionPostQuestion   Action = "post a question"
	ActionListQuestions  Action = "get all questions"
	ActionEditQuestion   Action = "edit the question"
	ActionDeleteQuestion Action = "delete the question"
	ActionUserQuestions  Action = "get all questions posted by a specific user"
	ActionPostAnswer     Action = "post an answer"
	ActionEditAnswer     Action = "edit an answer"
	ActionDeleteAnswer   Action = "delete an answer"
	ActionListAnswers    Action = "get the answers"
	ActionGetProfile     Action = "get user details"
	ActionReadForumStats Action = "read forum statistics"
)

// Guard resolves bearer tokens into principals. It runs inside the caller's
// transaction so authentication and the guarded mutation see the same state.
type Guard struct {
	tokens        *security.TokenIssuer
	enforceExpiry bool
	now           func() time.Time
}

func NewGuard(tokens *security.TokenIssuer, enforceExpiry bool, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{tokens: tokens, enforceExpiry: enforceExpiry, now: now}
}

func (g *Guard) Authenticate(ctx context.Context, repos repository.Repositories, token string, action Action) (Principal, error) {
	if token == "" {
		return Principal{}, apperr.ErrNotSignedIn
	}
	if _, err := g.tokens.Parse(token); err != nil {
		return Principal{}, apperr.ErrNotSignedIn
	}

	session, found, err := repos.Sessions().FindByTokenHash(ctx, security.HashToken(token))
	if err != nil {
		return Principal{}, fmt.Errorf("find session: %w", err)
	}
	if !found {
		return Principal{}, apperr.ErrNotSignedIn
	}
	if session.SignedOut() {
		return Principal{}, apperr.ErrSignedOut.WithMessage(signedOutMessage(action))
	}
	if g.enforceExpiry && session.Expired(g.now()) {
		return Principal{}, apperr.ErrSessionExpired
	}

	user, found, err := repos.Users().GetByID(ctx, session.UserID)
	if err != nil {
		return Principal{}, fmt.Errorf("load session user: %w", err)
	}
	if !found {
		return Principal{}, apperr.ErrNotSignedIn
	}

	return Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: session.ID,
	}, nil
}

func signedOutMessage(action Action) string {
	if action == "" {
		return apperr.ErrSignedOut.Message
	}
	return "User is signed out.Sign in first to " + string(action)
}

// Policy holds the ownership rules shared by the resource services.
type Policy struct {
	AdminCanEdit bool
}

func (p Policy) CanEdit(principal Principal, ownerID string) bool {
	if principal.UserID == ownerID {
		return true
	}
	return p.AdminCanEdit && principal.IsAdmin()
}

func (p Policy) CanDelete(principal Principal, ownerID string) bool {
	return principal.UserID == ownerID || principal.IsAdmin()
}
