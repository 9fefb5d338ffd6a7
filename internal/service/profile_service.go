package service

import (
	"context"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
)

type ProfileService struct {
	store repository.Store
	guard *Guard
}

func NewProfileService(store repository.Store, guard *Guard) *ProfileService {
	return &ProfileService{store: store, guard: guard}
}

// GetProfile returns any user's profile to a signed-in caller.
func (s *ProfileService) GetProfile(ctx context.Context, token string, userID string) (models.User, error) {
	var user models.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := s.guard.Authenticate(ctx, repos, token, ActionGetProfile); err != nil {
			return err
		}
		found, ok, err := repos.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrUserNotFound
		}
		user = found
		return nil
	})
	return user, err
}
