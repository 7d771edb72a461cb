package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/session"
	"skillswap/internal/usecase"
	ucauth "skillswap/internal/usecase/auth"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const skillLookupTTL = 5 * time.Minute

type App struct {
	Fiber    *fiber.App
	Hub      *ws.Hub
	Sessions *session.Manager
}

// New builds the fiber app with the global middleware and every route the
// registry knows about.
func New(cfg config.Config, logger *log.Logger, registry *routes.Registry) *fiber.App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, cfg, logger)
	if registry != nil {
		registry.Register(f)
	}
	return f
}

// Bootstrap wires the whole service. The returned cleanup closes the
// session manager, the hub and the connections, in that order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	userRepo := repository.NewPostgresUserRepository(c.DB)
	profileRepo := repository.NewPostgresProfileRepository(c.DB)
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(c.DB)
	requestRepo := repository.NewPostgresSkillRequestRepository(c.DB)
	reviewRepo := repository.NewPostgresReviewRepository(c.DB)

	tokens := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	sessions := session.NewManager(ucauth.NewService(userRepo), userRepo, tokens, c.Cache, logger)

	hub := ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)
	hubNotifier := ws.NewNotifier(hub)

	directory := usecase.NewDirectoryUsecase(
		profileRepo, skillRepo, userSkillRepo,
		c.Cache, cache.NewLocal(skillLookupTTL),
		usecase.DirectoryConfig{PageSize: cfg.Directory.PageSize, CacheTTL: cfg.Directory.CacheTTL},
		logger,
	)
	notifier := usecase.Notifiers{usecase.NotifierFunc(directory.Invalidate), hubNotifier}

	unsubscribe := sessions.Subscribe(func(ev session.Event) {
		if ev.Type == session.EventSignedUp {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			directory.Invalidate(ctx)
			cancel()
		}
		hubNotifier.SessionEvent(ev)
	})

	searchUC := usecase.NewSearchUsecase(skillRepo, profileRepo, cfg.Search.Limit, logger)

	registry := routes.NewRegistry(routes.Handlers{
		Health:       handler.NewHealthHandler(c.DB, c.Cache),
		Auth:         handler.NewAuthHandler(sessions),
		Profile:      handler.NewProfileHandler(directory, usecase.NewProfileUsecase(profileRepo, userSkillRepo, notifier, logger)),
		Search:       handler.NewSearchHandler(searchUC),
		Skill:        handler.NewSkillHandler(usecase.NewSkillUsecase(skillRepo, logger)),
		UserSkill:    handler.NewUserSkillHandler(usecase.NewUserSkillUsecase(userSkillRepo, skillRepo, notifier, logger)),
		SkillRequest: handler.NewSkillRequestHandler(usecase.NewSkillRequestUsecase(requestRepo, profileRepo, skillRepo, logger)),
		Review:       handler.NewReviewHandler(usecase.NewReviewUsecase(reviewRepo, requestRepo, profileRepo, notifier, logger)),
		WS:           ws.NewHandler(hub, searchUC, sessions, cfg.Search.Debounce, cfg.CORS.AllowedOrigins, logger),
	}, middleware.NewAuthMiddleware(sessions))

	app := &App{
		Fiber:    New(cfg, logger, registry),
		Hub:      hub,
		Sessions: sessions,
	}

	cleanup := func() error {
		unsubscribe()
		sessions.Close()
		stopHub()
		return c.Close()
	}
	logger.Printf("[App] ready | name=%s env=%s", cfg.App.AppName, cfg.App.Environment)
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
