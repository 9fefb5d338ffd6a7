// Package memory implements the repository contracts in process memory.
// Transactions are serialized by a single mutex and work on a copy of the
// data that replaces the committed state only when the unit of work succeeds.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
)

type data struct {
	users     map[string]models.User
	sessions  map[string]models.Session
	questions map[string]models.Question
	answers   map[string]models.Answer
}

func newData() *data {
	return &data{
		users:     map[string]models.User{},
		sessions:  map[string]models.Session{},
		questions: map[string]models.Question{},
		answers:   map[string]models.Answer{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.sessions {
		c.sessions[k] = v
	}
	for k, v := range d.questions {
		c.questions[k] = v
	}
	for k, v := range d.answers {
		c.answers[k] = v
	}
	return c
}

type Store struct {
	mu   sync.Mutex
	data *data
}

func NewStore() *Store {
	return &Store{data: newData()}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.data.clone()
	if err := fn(ctx, txRepos{d: working}); err != nil {
		return err
	}
	s.data = working
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type txRepos struct {
	d *data
}

func (r txRepos) Users() repository.UserRepository         { return users{r.d} }
func (r txRepos) Sessions() repository.SessionRepository   { return sessions{r.d} }
func (r txRepos) Questions() repository.QuestionRepository { return questions{r.d} }
func (r txRepos) Answers() repository.AnswerRepository     { return answers{r.d} }

type users struct{ d *data }

func (u users) Create(_ context.Context, user models.User) error {
	for _, existing := range u.d.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.d.users[user.ID] = user
	return nil
}

func (u users) GetByID(_ context.Context, id string) (models.User, bool, error) {
	user, ok := u.d.users[id]
	return user, ok, nil
}

func (u users) FindByUsername(_ context.Context, username string) (models.User, bool, error) {
	for _, user := range u.d.users {
		if user.Username == username {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (u users) FindByEmail(_ context.Context, email string) (models.User, bool, error) {
	for _, user := range u.d.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (u users) Count(context.Context) (int64, error) {
	return int64(len(u.d.users)), nil
}

type sessions struct{ d *data }

func (s sessions) Create(_ context.Context, session models.Session) error {
	for _, existing := range s.d.sessions {
		if bytes.Equal(existing.TokenHash, session.TokenHash) {
			return repository.ErrDuplicateToken
		}
	}
	s.d.sessions[session.ID] = session
	return nil
}

func (s sessions) FindByTokenHash(_ context.Context, tokenHash []byte) (models.Session, bool, error) {
	for _, session := range s.d.sessions {
		if bytes.Equal(session.TokenHash, tokenHash) {
			return session, true, nil
		}
	}
	return models.Session{}, false, nil
}

// LockByTokenHash needs no extra locking: the store mutex already
// serializes every transaction.
func (s sessions) LockByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, bool, error) {
	return s.FindByTokenHash(ctx, tokenHash)
}

func (s sessions) MarkLoggedOut(_ context.Context, id string, at time.Time) error {
	session, ok := s.d.sessions[id]
	if !ok || session.LoggedOutAt != nil {
		return nil
	}
	session.LoggedOutAt = &at
	if at.Before(session.ExpiresAt) {
		session.ExpiresAt = at
	}
	s.d.sessions[id] = session
	return nil
}

func (s sessions) CountActive(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, session := range s.d.sessions {
		if session.Active(now) {
			n++
		}
	}
	return n, nil
}

type questions struct{ d *data }

func (q questions) Create(_ context.Context, question models.Question) error {
	q.d.questions[question.ID] = question
	return nil
}

func (q questions) GetByID(_ context.Context, id string) (models.Question, bool, error) {
	question, ok := q.d.questions[id]
	return question, ok, nil
}

func (q questions) LockByID(ctx context.Context, id string) (models.Question, bool, error) {
	return q.GetByID(ctx, id)
}

func (q questions) UpdateContent(_ context.Context, id string, content string) error {
	question, ok := q.d.questions[id]
	if !ok {
		return nil
	}
	question.Content = content
	q.d.questions[id] = question
	return nil
}

func (q questions) Delete(_ context.Context, id string) error {
	delete(q.d.questions, id)
	for answerID, answer := range q.d.answers {
		if answer.QuestionID == id {
			delete(q.d.answers, answerID)
		}
	}
	return nil
}

func (q questions) List(context.Context) ([]models.Question, error) {
	return q.filter(func(models.Question) bool { return true }), nil
}

func (q questions) ListByUser(_ context.Context, userID string) ([]models.Question, error) {
	return q.filter(func(question models.Question) bool { return question.UserID == userID }), nil
}

func (q questions) Count(context.Context) (int64, error) {
	return int64(len(q.d.questions)), nil
}

func (q questions) filter(keep func(models.Question) bool) []models.Question {
	out := []models.Question{}
	for _, question := range q.d.questions {
		if keep(question) {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out
}

type answers struct{ d *data }

func (a answers) Create(_ context.Context, answer models.Answer) error {
	a.d.answers[answer.ID] = answer
	return nil
}

func (a answers) GetByID(_ context.Context, id string) (models.Answer, bool, error) {
	answer, ok := a.d.answers[id]
	return answer, ok, nil
}

func (a answers) LockByID(ctx context.Context, id string) (models.Answer, bool, error) {
	return a.GetByID(ctx, id)
}

func (a answers) UpdateContent(_ context.Context, id string, content string) error {
	answer, ok := a.d.answers[id]
	if !ok {
		return nil
	}
	answer.Content = content
	a.d.answers[id] = answer
	return nil
}

func (a answers) Delete(_ context.Context, id string) error {
	delete(a.d.answers, id)
	return nil
}

func (a answers) ListByQuestion(_ context.Context, questionID string) ([]models.AnswerDetails, error) {
	question := a.d.questions[questionID]
	out := []models.AnswerDetails{}
	for _, answer := range a.d.answers {
		if answer.QuestionID == questionID {
			out = append(out, models.AnswerDetails{Answer: answer, QuestionContent: question.Content})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt, out[i].ID, out[j].CreatedAt, out[j].ID)
	})
	return out, nil
}

func (a answers) Count(context.Context) (int64, error) {
	return int64(len(a.d.answers)), nil
}

func createdBefore(at time.Time, id string, otherAt time.Time, otherID string) bool {
	if !at.Equal(otherAt) {
		return at.Before(otherAt)
	}
	return id < otherID
}
