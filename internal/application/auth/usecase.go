package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/validation"
	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/repository"
	"github.com/jhoicas/gela-api/pkg/password"
)

// TokenTypeBearer valor fijo de token_type en la respuesta de login.
const TokenTypeBearer = "bearer"

// TokenIssuer emite access tokens para un subject (email).
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthUseCase caso de uso de autenticación: login con email y password.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   password.Hasher
	tokens   TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher password.Hasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

// Login verifica email/password y emite un token con sub = email.
// Email desconocido y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
