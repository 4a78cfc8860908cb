package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gela-api/internal/application/auth"
	"github.com/jhoicas/gela-api/internal/application/usecase"
	"github.com/jhoicas/gela-api/internal/domain/repository"
	"github.com/jhoicas/gela-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/gela-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/gela-api/pkg/jwt"
	"github.com/jhoicas/gela-api/pkg/logger"
	"github.com/jhoicas/gela-api/pkg/password"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type testEnv struct {
	app      *fiber.App
	tokens   *pkgjwt.Service
	metrics  *apphttp.Metrics
	articles *memory.ArticleRepo
	users    *memory.UserRepo
}

type envOption func(*apphttp.RouterDeps)

func withArticleRepo(repo repository.ArticleRepository) envOption {
	return func(d *apphttp.RouterDeps) { d.ArticleUC = usecase.NewArticleUseCase(repo) }
}

func withProtectedRoles() envOption {
	return func(d *apphttp.RouterDeps) { d.ProtectRoles = true }
}

// newTestEnv construye la app completa sobre los repositorios en memoria.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	tokens, err := pkgjwt.NewService(testJWTSecret, 30*time.Minute, pkgjwt.WithIssuer("gela-api-test"))
	require.NoError(t, err)

	hasher := password.NewBcryptHasher(4)
	articles := memory.NewArticleRepository()
	users := memory.NewUserRepository()
	metrics := apphttp.NewMetrics(prometheus.NewRegistry())

	deps := apphttp.RouterDeps{
		ArticleUC:   usecase.NewArticleUseCase(articles),
		RoleUC:      usecase.NewRoleUseCase(memory.NewRoleRepository()),
		UserUC:      usecase.NewUserUseCase(users, hasher),
		AuthUC:      auth.NewAuthUseCase(users, hasher, tokens),
		Tokens:      tokens,
		Log:         logger.Nop(),
		Metrics:     metrics,
		ServiceName: "gela-api-test",
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return &testEnv{app: apphttp.NewApp(deps), tokens: tokens, metrics: metrics, articles: articles, users: users}
}

func (e *testEnv) bearer(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.tokens.Issue(email)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición; body se envía como JSON salvo que sea url.Values.
func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case url.Values:
		req = httptest.NewRequest(method, path, strings.NewReader(b.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, strings.NewReader(string(raw)))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
