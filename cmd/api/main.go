package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/gela-api/internal/application/auth"
	"github.com/jhoicas/gela-api/internal/application/usecase"
	"github.com/jhoicas/gela-api/internal/domain/repository"
	"github.com/jhoicas/gela-api/internal/infrastructure/memory"
	"github.com/jhoicas/gela-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gela-api/internal/interfaces/http"
	"github.com/jhoicas/gela-api/pkg/config"
	"github.com/jhoicas/gela-api/pkg/jwt"
	"github.com/jhoicas/gela-api/pkg/logger"
	"github.com/jhoicas/gela-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		articleRepo repository.ArticleRepository
		roleRepo    repository.RoleRepository
		userRepo    repository.UserRepository
		pinger      httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
		articleRepo = memory.NewArticleRepository()
		roleRepo = memory.NewRoleRepository()
		userRepo = memory.NewUserRepository()
	default:
		db, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer db.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, db); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
			log.Info().Msg("esquema verificado")
		}
		articleRepo = postgres.NewArticleRepository(db)
		roleRepo = postgres.NewRoleRepository(db)
		userRepo = postgres.NewUserRepository(db)
		pinger = db
	}

	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TTL(), jwt.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.Auth.ProtectRoles {
		log.Info().Msg("escritura de roles protegida con Bearer")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ArticleUC:    usecase.NewArticleUseCase(articleRepo),
		RoleUC:       usecase.NewRoleUseCase(roleRepo),
		UserUC:       usecase.NewUserUseCase(userRepo, hasher),
		AuthUC:       auth.NewAuthUseCase(userRepo, hasher, tokens),
		Tokens:       tokens,
		Log:          log,
		Metrics:      httpRouter.NewMetrics(reg),
		ServiceName:  cfg.App.Name,
		DB:           pinger,
		ProtectRoles: cfg.Auth.ProtectRoles,
		SwaggerFile:  cfg.Swagger.File,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
