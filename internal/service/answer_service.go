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

type AnswerService struct {
	store  repository.Store
	guard  *Guard
	policy Policy
	now    func() time.Time
	log    zerolog.Logger
}

func NewAnswerService(store repository.Store, guard *Guard, policy Policy, now func() time.Time, log zerolog.Logger) *AnswerService {
	if now == nil {
		now = time.Now
	}
	return &AnswerService{store: store, guard: guard, policy: policy, now: now, log: log}
}

func (s *AnswerService) Create(ctx context.Context, token string, questionID string, content string) (models.Answer, error) {
	var answer models.Answer
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionPostAnswer)
		if err != nil {
			return err
		}
		_, found, err := repos.Questions().GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrQuestionNotFound.WithMessage("The question entered is invalid")
		}
		if strings.TrimSpace(content) == "" {
			return apperr.ErrInvalidInput.WithMessage("answer content is required")
		}

		answer = models.Answer{
			ID:         ids.New(),
			Content:    content,
			UserID:     principal.UserID,
			QuestionID: questionID,
			CreatedAt:  s.now().UTC(),
		}
		return repos.Answers().Create(ctx, answer)
	})
	if err != nil {
		return models.Answer{}, err
	}

	s.log.Debug().Str("answer_id", answer.ID).Str("question_id", questionID).Msg("answer created")
	return answer, nil
}

func (s *AnswerService) Edit(ctx context.Context, token string, answerID string, content string) (models.Answer, error) {
	var answer models.Answer
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionEditAnswer)
		if err != nil {
			return err
		}
		current, found, err := repos.Answers().LockByID(ctx, answerID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrAnswerNotFound
		}
		if !s.policy.CanEdit(principal, current.UserID) {
			return apperr.ErrForbidden.WithMessage("Only the answer owner can edit the answer")
		}
		if strings.TrimSpace(content) == "" {
			return apperr.ErrInvalidInput.WithMessage("answer content is required")
		}

		if err := repos.Answers().UpdateContent(ctx, current.ID, content); err != nil {
			return err
		}
		current.Content = content
		answer = current
		return nil
	})
	if err != nil {
		return models.Answer{}, err
	}
	return answer, nil
}

func (s *AnswerService) Delete(ctx context.Context, token string, answerID string) (models.Answer, error) {
	var answer models.Answer
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		principal, err := s.guard.Authenticate(ctx, repos, token, ActionDeleteAnswer)
		if err != nil {
			return err
		}

		current, found, err := repos.Answers().LockByID(ctx, answerID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrAnswerNotFound
		}
		if !s.policy.CanDelete(principal, current.UserID) {
			return apperr.ErrForbidden.WithMessage("Only the answer owner or admin can delete the answer")
		}

		answer = current
		return repos.Answers().Delete(ctx, current.ID)
	})
	if err != nil {
		return models.Answer{}, err
	}

	s.log.Debug().Str("answer_id", answer.ID).Msg("answer deleted")
	return answer, nil
}

func (s *AnswerService) ListByQuestion(ctx context.Context, token string, questionID string) ([]models.AnswerDetails, error) {
	var answers []models.AnswerDetails
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := s.guard.Authenticate(ctx, repos, token, ActionListAnswers); err != nil {
			return err
		}
		_, found, err := repos.Questions().GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrQuestionNotFound.WithMessage("The question with entered uuid whose details are to be seen does not exist")
		}
		answers, err = repos.Answers().ListByQuestion(ctx, questionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}
