package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/domain/entity"
)

func articleBody() map[string]any {
	return map[string]any{
		"name":               "Pen",
		"type":               "office",
		"description":        "blue ink",
		"price":              12.5,
		"available_quantity": 3,
	}
}

func createUser(t *testing.T, env *testEnv, email string) dto.UserResponse {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Ana", "email": email, "password": "s3cretpw", "roleId": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.UserResponse](t, resp)
}

func TestRoot_YHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "¡Bienvenido a la Gela API!", decode[dto.MessageResponse](t, resp).Message)

	resp = env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Service: "gela-api-test"}, decode[dto.HealthResponse](t, resp))
}

func TestArticles_CRUD(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	resp := env.do(t, http.MethodPost, "/articles", auth, articleBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ArticleResponse](t, resp)
	assert.NotZero(t, created.ID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(created.Price))

	resp = env.do(t, http.MethodGet, "/articles/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ArticleResponse](t, resp)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.AvailableQuantity, got.AvailableQuantity)

	body := articleBody()
	body["name"] = "Pencil"
	resp = env.do(t, http.MethodPut, "/articles/1", auth, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pencil", decode[dto.ArticleResponse](t, resp).Name)

	resp = env.do(t, http.MethodGet, "/articles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ArticleResponse](t, resp), 1)

	resp = env.do(t, http.MethodDelete, "/articles/1", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Article deleted successfully.", decode[dto.MessageResponse](t, resp).Message)

	resp = env.do(t, http.MethodGet, "/articles/1", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, dto.ErrorResponse{Code: "NOT_FOUND", Message: "Article not found"}, decode[dto.ErrorResponse](t, resp))
}

func TestArticles_ListaVaciaEsArray(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/articles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", readBody(t, resp))
}

// PUT sin price responde 422 y el artículo queda igual.
func TestArticles_UpdateSinPrecio422(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	resp := env.do(t, http.MethodPost, "/articles", auth, articleBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := articleBody()
	delete(body, "price")
	body["name"] = "Otro"
	resp = env.do(t, http.MethodPut, "/articles/1", auth, body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, []dto.FieldError{{Field: "price", Rule: "required"}}, errBody.Fields)

	stored, err := env.articles.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Pen", stored.Name)
}

func TestArticles_Validacion422(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	tests := []struct {
		name  string
		path  string
		body  any
		field string
	}{
		{"precio negativo", "/articles", map[string]any{"name": "x", "type": "t", "description": "d", "price": -1, "available_quantity": 1}, "price"},
		{"cantidad negativa", "/articles", map[string]any{"name": "x", "type": "t", "description": "d", "price": 1, "available_quantity": -1}, "available_quantity"},
		{"json inválido", "/articles", `{"name":`, "body"},
		{"id no numérico", "/articles/abc", articleBody(), "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if tt.path != "/articles" {
				method = http.MethodPut
			}
			resp := env.do(t, method, tt.path, auth, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			errBody := decode[dto.ErrorResponse](t, resp)
			require.NotEmpty(t, errBody.Fields)
			assert.Equal(t, tt.field, errBody.Fields[0].Field)
		})
	}

	list, err := env.articles.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

// El precio se valida ya redondeado a 2 decimales.
func TestArticles_PrecioRedondeadoFueraDeRango422(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	tests := []struct {
		name  string
		price string
		rule  string
	}{
		{"redondea a cero", "0.001", "gt"},
		{"redondea al tope", "99999999.995", "lt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"name":"n","type":"t","description":"d","price":` + tt.price + `,"available_quantity":1}`
			resp := env.do(t, http.MethodPost, "/articles", auth, body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Equal(t, []dto.FieldError{{Field: "price", Rule: tt.rule}}, decode[dto.ErrorResponse](t, resp).Fields)
		})
	}

	resp := env.do(t, http.MethodPost, "/articles", auth, `{"name":"n","type":"t","description":"d","price":99999999.994,"available_quantity":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"price":"99999999.99"`)

	list, err := env.articles.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestArticles_PrecioSeSerializaComoString(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	body := articleBody()
	body["price"] = 19.99
	resp := env.do(t, http.MethodPost, "/articles", auth, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"price":"19.99"`)
}

func TestDeleteInexistente404(t *testing.T) {
	env := newTestEnv(t)
	auth := env.bearer(t, "a@x.com")

	for _, path := range []string{"/articles/9999", "/roles/9999", "/users/9999"} {
		resp := env.do(t, http.MethodDelete, path, auth, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestRoles_CRUD(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/roles", "", map[string]any{"rol": "admin"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	role := decode[dto.RoleResponse](t, resp)
	assert.Equal(t, "admin", role.Rol)

	resp = env.do(t, http.MethodPost, "/roles", "", map[string]any{"rol": "admin"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/roles/1", "", map[string]any{"rol": "root"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/roles/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "root", decode[dto.RoleResponse](t, resp).Rol)

	resp = env.do(t, http.MethodDelete, "/roles/1", "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/roles/1", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Rol not found", decode[dto.ErrorResponse](t, resp).Message)
}

func TestRoles_Protegidos(t *testing.T) {
	env := newTestEnv(t, withProtectedRoles())

	resp := env.do(t, http.MethodPost, "/roles", "", map[string]any{"rol": "admin"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/roles", env.bearer(t, "a@x.com"), map[string]any{"rol": "admin"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/roles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// POST /users responde 201 sin password; login correcto 200; password incorrecto 401.
func TestUsers_RegistroYLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Ana", "email": "a@x.com", "password": "s3cretpw", "roleId": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	raw := readBody(t, resp)
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "s3cretpw")
	assert.Contains(t, raw, `"roleId":1`)

	resp = env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"a@x.com"}, "password": {"s3cretpw"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[dto.TokenResponse](t, resp)
	assert.Equal(t, "bearer", token.TokenType)
	sub, err := env.tokens.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sub)

	resp = env.do(t, http.MethodGet, "/users/me", "Bearer "+token.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", decode[dto.MeResponse](t, resp).Email)
}

func TestUsers_LoginFallidoIndistinguible(t *testing.T) {
	env := newTestEnv(t)
	createUser(t, env, "a@x.com")

	wrongPass := env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"a@x.com"}, "password": {"otra-clave"}})
	unknown := env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"nadie@x.com"}, "password": {"s3cretpw"}})

	require.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, readBody(t, wrongPass), readBody(t, unknown))
}

func TestUsers_LoginSinCampos422(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"a@x.com"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []dto.FieldError{{Field: "password", Rule: "required"}}, decode[dto.ErrorResponse](t, resp).Fields)
}

func TestUsers_EmailDuplicado409(t *testing.T) {
	env := newTestEnv(t)
	createUser(t, env, "a@x.com")

	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Otra", "email": "a@x.com", "password": "s3cretpw", "roleId": 1,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already registered", decode[dto.ErrorResponse](t, resp).Message)

	list, err := env.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUsers_PasswordCorto422(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Ana", "email": "a@x.com", "password": "corto", "roleId": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []dto.FieldError{{Field: "password", Rule: "min"}}, decode[dto.ErrorResponse](t, resp).Fields)
}

// bcrypt limita bytes: 40 "é" son 80 bytes aunque sean 40 caracteres.
func TestUsers_PasswordMultibyteLargo422(t *testing.T) {
	env := newTestEnv(t)
	long := strings.Repeat("é", 40)

	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Ana", "email": "a@x.com", "password": long, "roleId": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []dto.FieldError{{Field: "password", Rule: "maxbytes"}}, decode[dto.ErrorResponse](t, resp).Fields)

	createUser(t, env, "b@x.com")
	auth := env.bearer(t, "b@x.com")
	resp = env.do(t, http.MethodPut, "/users/1", auth, map[string]any{"password": long})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []dto.FieldError{{Field: "password", Rule: "maxbytes"}}, decode[dto.ErrorResponse](t, resp).Fields)
}

func TestUsers_LoginPasswordConSobranteTras72Bytes(t *testing.T) {
	env := newTestEnv(t)
	pw := strings.Repeat("a", 72)
	resp := env.do(t, http.MethodPost, "/users", "", map[string]any{
		"name": "Ana", "email": "a@x.com", "password": pw, "roleId": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"a@x.com"}, "password": {pw + "x"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/users/login", "", url.Values{"username": {"a@x.com"}, "password": {pw}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUsers_ActualizacionParcial(t *testing.T) {
	env := newTestEnv(t)
	u := createUser(t, env, "a@x.com")
	auth := env.bearer(t, "a@x.com")

	resp := env.do(t, http.MethodPut, "/users/1", auth, map[string]any{"name": "Ana B", "email": nil})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Ana B", out.Name)
	assert.Equal(t, u.Email, out.Email)
	assert.Equal(t, u.RoleID, out.RoleID)

	resp = env.do(t, http.MethodGet, "/users/1", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana B", decode[dto.UserResponse](t, resp).Name)

	resp = env.do(t, http.MethodGet, "/users", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 1)

	resp = env.do(t, http.MethodDelete, "/users/1", auth, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

type failingArticleRepo struct{}

var errDBDown = errors.New("dial tcp: connection refused")

func (failingArticleRepo) List(context.Context) ([]*entity.Article, error) { return nil, errDBDown }
func (failingArticleRepo) GetByID(context.Context, int64) (*entity.Article, error) {
	return nil, errDBDown
}
func (failingArticleRepo) Create(context.Context, *entity.Article) error { return errDBDown }
func (failingArticleRepo) Update(context.Context, *entity.Article) error { return errDBDown }
func (failingArticleRepo) Delete(context.Context, int64) error           { return errDBDown }

func TestErrorInterno_NoExponeDetalle(t *testing.T) {
	env := newTestEnv(t, withArticleRepo(failingArticleRepo{}))

	resp := env.do(t, http.MethodGet, "/articles", "", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw := readBody(t, resp)
	assert.JSONEq(t, `{"code":"INTERNAL","message":"Internal server error"}`, raw)
	assert.NotContains(t, raw, "connection refused")
}

func TestRutaInexistente(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMetrics_Expuestas(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/users/me", "", nil)
	env.do(t, http.MethodGet, "/articles", "", nil)

	resp := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `auth_failures_total{reason="missing"} 1`)
	assert.Contains(t, body, "http_requests_total")
}
