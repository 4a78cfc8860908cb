package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/gela-api/internal/application/auth"
	"github.com/jhoicas/gela-api/internal/application/usecase"
	"github.com/jhoicas/gela-api/pkg/logger"
)

// Timeouts del servidor HTTP.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC *usecase.ArticleUseCase
	RoleUC    *usecase.RoleUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	Tokens    TokenVerifier
	Log       *logger.Logger
	Metrics   *Metrics

	ServiceName  string
	DB           Pinger // opcional; /health hace ping si no es nil
	ProtectRoles bool   // exige Bearer en POST/PUT/DELETE /roles
	SwaggerFile  string // documento OpenAPI servido en /docs si existe
}

// NewApp construye la aplicación Fiber con middlewares globales y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.ServiceName,
		ErrorHandler: ErrorHandler(deps.Log),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log, deps.Metrics))
	app.Use(recover.New())
	app.Use(cors.New())

	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    deps.ServiceName,
			}))
		} else {
			deps.Log.Warn().Str("file", deps.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.Tokens, deps.Log, deps.Metrics)

	health := NewHealthHandler(deps.ServiceName, deps.DB, deps.Log)
	app.Get("/", health.Root)
	app.Get("/health", health.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Articles: lectura pública, escritura protegida
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.Log)
	articles := app.Group("/articles")
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Post("/", requireAuth, articleHandler.Create)
	articles.Put("/:id", requireAuth, articleHandler.Update)
	articles.Delete("/:id", requireAuth, articleHandler.Delete)

	// Roles: escritura pública salvo AUTH_PROTECT_ROLES
	roleWrite := []fiber.Handler{}
	if deps.ProtectRoles {
		roleWrite = append(roleWrite, requireAuth)
	}
	roleHandler := NewRoleHandler(deps.RoleUC, deps.Log)
	roles := app.Group("/roles")
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Post("/", append(roleWrite, roleHandler.Create)...)
	roles.Put("/:id", append(roleWrite, roleHandler.Update)...)
	roles.Delete("/:id", append(roleWrite, roleHandler.Delete)...)

	// Users: registro y login públicos; /me antes de /:id
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users := app.Group("/users")
	users.Post("/login", authHandler.Login)
	users.Get("/me", requireAuth, authHandler.Me)
	users.Post("/", userHandler.Create)
	users.Get("/", requireAuth, userHandler.List)
	users.Get("/:id", requireAuth, userHandler.GetByID)
	users.Put("/:id", requireAuth, userHandler.Update)
	users.Delete("/:id", requireAuth, userHandler.Delete)
}
