package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/validation"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

// RoleUseCase casos de uso CRUD para roles.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

// GetByID obtiene un rol; domain.ErrNotFound si no existe.
func (uc *RoleUseCase) GetByID(ctx context.Context, id int64) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoleResponse(r), nil
}

// Create persiste el rol; domain.ErrConflict si el nombre ya existe.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	r := &entity.Role{Rol: strings.TrimSpace(*in.Rol)}
	if r.Rol == "" {
		return nil, validation.FieldFailed("rol", "required")
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRoleResponse(r), nil
}

// Update reemplaza el nombre del rol.
func (uc *RoleUseCase) Update(ctx context.Context, id int64, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	r := &entity.Role{ID: id, Rol: strings.TrimSpace(*in.Rol)}
	if r.Rol == "" {
		return nil, validation.FieldFailed("rol", "required")
	}
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRoleResponse(r), nil
}

// Delete elimina el rol.
func (uc *RoleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{ID: r.ID, Rol: r.Rol, CreatedAt: r.CreatedAt}
}
