package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Image = user.Image
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) MarkEmailVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	stored.EmailVerified = &now
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *stored
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if stored.Email == email {
			cp := *stored
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, stored := range r.users {
		users = append(users, *stored)
	}
	return users, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.Token
	seq    int
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*domain.Token)}
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = fmt.Sprintf("token-%d", r.seq)
	token.CreatedAt = time.Now()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *memTokenRepo) ConsumeLatest(_ context.Context, code string, tokenType domain.TokenType) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Token
	for _, stored := range r.tokens {
		if stored.Code != code || stored.Type != tokenType {
			continue
		}
		if latest == nil || stored.CreatedAt.After(latest.CreatedAt) {
			latest = stored
		}
	}
	if latest == nil {
		return nil, domain.ErrInvalidCode
	}
	delete(r.tokens, latest.ID)
	cp := *latest
	return &cp, nil
}

func (r *memTokenRepo) DeleteAllOfType(_ context.Context, userID string, tokenType domain.TokenType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.tokens {
		if stored.UserID == userID && stored.Type == tokenType {
			delete(r.tokens, id)
		}
	}
	return nil
}

// backdate shifts the creation time of every stored token with the given code.
func (r *memTokenRepo) backdate(code string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.Code == code {
			stored.CreatedAt = stored.CreatedAt.Add(-d)
		}
	}
}

// backdateType shifts the creation time of every stored token of the type.
func (r *memTokenRepo) backdateType(tokenType domain.TokenType, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.Type == tokenType {
			stored.CreatedAt = stored.CreatedAt.Add(-d)
		}
	}
}

func (r *memTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	seq      int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Replace(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.sessions {
		if stored.UserID == session.UserID {
			delete(r.sessions, id)
		}
	}
	r.seq++
	session.ID = fmt.Sprintf("session-%d", r.seq)
	session.CreatedAt = time.Now()
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByToken(_ context.Context, sessionToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.sessions {
		if stored.SessionToken == sessionToken {
			cp := *stored
			return &cp, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) countForUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, stored := range r.sessions {
		if stored.UserID == userID {
			n++
		}
	}
	return n
}

// expire rewrites the expiry of the session with the given token.
func (r *memSessionRepo) expire(sessionToken string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.sessions {
		if stored.SessionToken == sessionToken {
			stored.Expires = time.Now().Add(-time.Minute)
		}
	}
}

type captureSender struct {
	mu     sync.Mutex
	to     []string
	bodies []string
}

func (s *captureSender) Send(_ context.Context, to, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.to = append(s.to, to)
	s.bodies = append(s.bodies, body)
	return nil
}

func (s *captureSender) lastBody() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bodies) == 0 {
		return ""
	}
	return s.bodies[len(s.bodies)-1]
}
