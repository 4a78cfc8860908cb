package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/validation"
	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
	"github.com/jhoicas/gela-api/pkg/password"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher password.Hasher
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el hasher.
func NewUserUseCase(repo repository.UserRepository, hasher password.Hasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher}
}

// List devuelve todos los usuarios (sin password).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Create registra un usuario. Devuelve ErrEmailAlreadyExists si el email ya existe;
// el password se hashea antes de llegar al repositorio.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       *in.RoleID,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Update aplica un parche parcial: los campos nil se dejan como están.
// Un password nuevo se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil && *in.Email != u.Email {
		if err := uc.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := uc.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.RoleID != nil {
		u.RoleID = *in.RoleID
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete elimina el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) hashPassword(plain string) (string, error) {
	hash, err := uc.hasher.Hash(plain)
	if errors.Is(err, password.ErrPasswordTooLong) {
		return "", validation.FieldFailed("password", "maxbytes")
	}
	return hash, err
}

func (uc *UserUseCase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := uc.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrEmailAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
}
