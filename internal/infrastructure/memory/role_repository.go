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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo almacén de roles; Rol es único como en la tabla roles.
type RoleRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]entity.Role
	now    func() time.Time
}

// NewRoleRepository crea un almacén vacío.
func NewRoleRepository() *RoleRepo {
	return &RoleRepo{items: make(map[int64]entity.Role), now: time.Now}
}

// List devuelve los roles ordenados por id.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entity.Role, 0, len(r.items))
	for _, role := range r.items {
		role := role
		list = append(list, &role)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &role, nil
}

// Create asigna ID y CreatedAt; domain.ErrConflict si el nombre ya existe.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(role.Rol, 0) {
		return domain.ErrConflict
	}
	r.nextID++
	role.ID = r.nextID
	role.CreatedAt = r.now().UTC()
	r.items[role.ID] = *role
	return nil
}

// Update reemplaza el nombre del rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[role.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.taken(role.Rol, role.ID) {
		return domain.ErrConflict
	}
	role.CreatedAt = cur.CreatedAt
	r.items[role.ID] = *role
	return nil
}

// Delete elimina el rol.
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// taken indica si otro rol (distinto de except) ya usa el nombre. Requiere el lock.
func (r *RoleRepo) taken(rol string, except int64) bool {
	for id, existing := range r.items {
		if id != except && existing.Rol == rol {
			return true
		}
	}
	return false
}
