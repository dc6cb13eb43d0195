package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	apictx "github.com/dtroode/console-server/internal/api/http/context"
	"github.com/dtroode/console-server/internal/api/http/handler"
	"github.com/dtroode/console-server/internal/api/http/router"
	httpServer "github.com/dtroode/console-server/internal/api/http/server"
	"github.com/dtroode/console-server/internal/config"
	"github.com/dtroode/console-server/internal/janitor"
	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/password"
	"github.com/dtroode/console-server/internal/repository/postgres"
	"github.com/dtroode/console-server/internal/server"
	"github.com/dtroode/console-server/internal/service"
	"github.com/dtroode/console-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)
	revokedTokenRepo := postgres.NewRevokedTokenRepository(db)
	policyRepo := postgres.NewPolicyRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := password.NewHasher()

	revocationService := service.NewRevocation(revokedTokenRepo, tokenManager, cfg.JWT.RefreshTTL, logger)
	identityService := service.NewIdentity(userRepo, tokenManager, revocationService, logger)
	sessionService := service.NewSession(userRepo, roleRepo, hasher, tokenManager, revocationService, logger)
	accountsService := service.NewAccounts(userRepo, roleRepo, logger)

	bootstrap := service.NewBootstrap(userRepo, roleRepo, permissionRepo, hasher, logger)
	if err := bootstrap.EnsureDefaults(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		logger.Fatal("failed to seed defaults", "error", err)
	}

	strategy, err := buildStrategy(ctx, cfg.RBAC.Strategy, policyRepo, logger)
	if err != nil {
		logger.Fatal("failed to initialize authorization strategy", "error", err)
	}
	accessService := service.NewAccess(identityService, strategy)

	gc := janitor.New(revocationService, cfg.Cleanup.Interval, logger)
	if err := gc.Start(ctx); err != nil {
		logger.Fatal("failed to start token janitor", "error", err)
	}

	ctxMgr := apictx.NewManager()
	r := router.New(
		handler.NewAuth(sessionService, cfg.JWT.RefreshTTL, cfg.HTTP.CookieSecure, logger),
		handler.NewSelf(accountsService, ctxMgr, cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize, logger),
		handler.NewAdmin(accountsService, revocationService, logger),
		accessService,
		ctxMgr,
		db,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	if err := gc.Stop(shutdownCtx); err != nil {
		logger.Error("error during janitor shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func buildStrategy(ctx context.Context, name string, policyRepo *postgres.PolicyRepository, logger *logger.Logger) (service.Strategy, error) {
	switch name {
	case "policy":
		strategy := service.NewPolicyStrategy(policyRepo, logger)
		if err := strategy.Load(ctx); err != nil {
			return nil, err
		}
		return strategy, nil
	case "roles":
		return service.NewRoleStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown rbac strategy: %q", name)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
