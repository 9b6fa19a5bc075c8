package memory

import (
	"context"
	"strings"
	"sync"

	domainuser "stayfinder/internal/domain/user"
)

// UserRepository stores users in memory. Backs tests and the no-Mongo dev
// mode; not suitable for production.
type UserRepository struct {
	mu         sync.RWMutex
	order      []domainuser.ID
	byID       map[domainuser.ID]*domainuser.User
	byEmail    map[string]domainuser.ID
	byUsername map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[domainuser.ID]*domainuser.User),
		byEmail:    make(map[string]domainuser.ID),
		byUsername: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domainuser.NormalizeEmail(email)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if user, ok := r.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[strings.TrimSpace(username)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if user, ok := r.byID[id]; ok {
		return cloneUser(user), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*domainuser.User, 0, len(r.order))
	for _, id := range r.order {
		if user, ok := r.byID[id]; ok {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, user *domainuser.User) error {
	if user == nil || strings.TrimSpace(string(user.ID)) == "" {
		return domainuser.ErrIDRequired
	}
	emailKey := domainuser.NormalizeEmail(user.Email)
	if emailKey == "" {
		return domainuser.ErrEmailRequired
	}
	usernameKey := strings.TrimSpace(user.Username)
	if usernameKey == "" {
		return domainuser.ErrUsernameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[emailKey]; ok && existingID != user.ID {
		return domainuser.ErrEmailAlreadyUsed
	}
	if existingID, ok := r.byUsername[usernameKey]; ok && existingID != user.ID {
		return domainuser.ErrUsernameAlreadyUsed
	}
	if _, ok := r.byID[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.byEmail[emailKey] = user.ID
	r.byUsername[usernameKey] = user.ID
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	if u == nil {
		return nil
	}
	copyUser := *u
	return &copyUser
}
