package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén de usuarios con email único.
type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]entity.User
	now    func() time.Time
}

// NewUserRepository crea un almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{items: make(map[int64]entity.User), now: time.Now}
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create comprueba y reserva el email bajo el mismo lock.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(u.Email, 0) {
		return domain.ErrConflict
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = r.now().UTC()
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrConflict
	}
	u.CreatedAt = cur.CreatedAt
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *UserRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.items {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
