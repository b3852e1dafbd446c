package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository keeps users in a mutex-guarded map. It must stay
// observably identical to the SQL repository for the same call sequence.
type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(ctx context.Context, p CreateParams) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == p.Username {
			return nil, ErrUsernameTaken
		}
		if u.Email == p.Email {
			return nil, ErrEmailTaken
		}
	}

	u := newUser(uuid.NewString(), time.Now().UTC(), p)
	r.users[u.ID] = u

	out := u
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (r *memoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		out := u
		users = append(users, &out)
	}
	return users, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, p UpdateParams) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	if p.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *p.Email {
				return nil, ErrEmailTaken
			}
		}
	}

	u.apply(p)
	r.users[id] = u

	out := u
	return &out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
