package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gela-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/gela-api/pkg/jwt"
	"github.com/jhoicas/gela-api/pkg/logger"
)

// LocalEmail clave en c.Locals con el subject (email) del token verificado.
const LocalEmail = "email"

// TokenVerifier verifica un access token y devuelve su subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja el email del usuario en c.Locals.
// Cualquier fallo (ausente, malformado, firma, expirado) produce el mismo 401;
// el motivo solo va al log y a auth_failures_total.
func AuthMiddleware(verifier TokenVerifier, log *logger.Logger, m *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := verifier.Verify(bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			reason := pkgjwt.Reason(err)
			m.authFailure(reason)
			requestLogger(c, log).Warn().Str("reason", reason).Str("path", c.Path()).Msg("token rechazado")
			return unauthorized(c, "Could not validate credentials")
		}
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>" (esquema sin distinguir mayúsculas).
// Un header ausente o vacío da "", que el verificador clasifica como token ausente.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || strings.EqualFold(header, "Bearer") {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		// se pasa tal cual para que el verificador lo rechace como malformado
		return header
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: msg})
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
