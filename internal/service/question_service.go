package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"qaforum/api/internal/apperr"
	"qaforum/api/internal/ids"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
)

type QuestionService struct {
	store  repository.Store
	guard  *Guard
	policy Policy
	now    func() time.Time
	log    zerolog.Logger
}

func NewQuestionService(store repository.Store, guard *Guard, policy Policy, now func() time.Time, log zerolog.Logger) *QuestionService {
	if now == nil {
		now = time.Now
	}
	return &QuestionService{store: store, guard: guard, policy: policy, now: now, log: log}
}

func (s *QuestionService) Create(ctx context.Context, token string, content string) (models.Question, error) {
	var question models.Question
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionPostQuestion)
		if err != nil {
			return err
		}
		if strings.TrimSpace(content) == "" {
			return apperr.ErrInvalidInput.WithMessage("question content is required")
		}

		question = models.Question{
			ID:        ids.New(),
			Content:   content,
			UserID:    principal.UserID,
			CreatedAt: s.now().UTC(),
		}
		return repos.Questions().Create(ctx, question)
	})
	if err != nil {
		return models.Question{}, err
	}

	s.log.Debug().Str("question_id", question.ID).Str("user_id", question.UserID).Msg("question created")
	return question, nil
}

func (s *QuestionService) ListAll(ctx context.Context, token string) ([]models.Question, error) {
	var questions []models.Question
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := s.guard.Authenticate(ctx, repos, token, ActionListQuestions); err != nil {
			return err
		}
		var err error
		questions, err = repos.Questions().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) ListByUser(ctx context.Context, token string, userID string) ([]models.Question, error) {
	var questions []models.Question
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := s.guard.Authenticate(ctx, repos, token, ActionUserQuestions); err != nil {
			return err
		}
		_, found, err := repos.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrUserNotFound.WithMessage("User with entered uuid whose question details are to be seen does not exist")
		}
		questions, err = repos.Questions().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Edit replaces the content of a question owned by the caller. Admins may
// edit foreign questions only when the policy allows it.
func (s *QuestionService) Edit(ctx context.Context, token string, questionID string, content string) (models.Question, error) {
	var question models.Question
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionEditQuestion)
		if err != nil {
			return err
		}
		current, found, err := repos.Questions().LockByID(ctx, questionID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrQuestionNotFound
		}
		if !s.policy.CanEdit(principal, current.UserID) {
			return apperr.ErrForbidden.WithMessage("Only the question owner can edit the question")
		}
		if strings.TrimSpace(content) == "" {
			return apperr.ErrInvalidInput.WithMessage("question content is required")
		}

		if err := repos.Questions().UpdateContent(ctx, current.ID, content); err != nil {
			return err
		}
		current.Content = content
		question = current
		return nil
	})
	if err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// Delete removes a question and its answers. Owners and admins may delete.
func (s *QuestionService) Delete(ctx context.Context, token string, questionID string) (models.Question, error) {
	var question models.Question
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionDeleteQuestion)
		if err != nil {
			return err
		}

		current, found, err := repos.Questions().LockByID(ctx, questionID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrQuestionNotFound
		}
		if !s.policy.CanDelete(principal, current.UserID) {
			return apperr.ErrForbidden.WithMessage("Only the question owner or admin can delete the question")
		}

		question = current
		return repos.Questions().Delete(ctx, current.ID)
	})
	if err != nil {
		return models.Question{}, err
	}

	s.log.Debug().Str("question_id", question.ID).Msg("question deleted")
	return question, nil
}
