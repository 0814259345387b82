package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpadp "microcredx-backend/internal/adapter/http"
	mw "microcredx-backend/internal/adapter/middleware"
	"microcredx-backend/internal/adapter/repository/mongostore"
	sqlrepo "microcredx-backend/internal/adapter/repository/mysql"
	"microcredx-backend/internal/config"
	appdomain "microcredx-backend/internal/domain/application"
	catdomain "microcredx-backend/internal/domain/catalog"
	userdomain "microcredx-backend/internal/domain/user"
	"microcredx-backend/internal/infrastructure/cache"
	"microcredx-backend/internal/infrastructure/db"
	"microcredx-backend/internal/infrastructure/identity"
	"microcredx-backend/internal/infrastructure/logger"
	"microcredx-backend/internal/infrastructure/metrics"
	"microcredx-backend/internal/usecase/application"
	"microcredx-backend/internal/usecase/catalog"
	"microcredx-backend/internal/usecase/user"
)

type repos struct {
	catalog      catdomain.Repository
	users        userdomain.Repository
	applications appdomain.Repository
	close        func(ctx context.Context) error
}

func openRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		s, err := mongostore.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return &repos{
			catalog:      mongostore.NewCatalogRepository(s),
			users:        mongostore.NewUserRepository(s),
			applications: mongostore.NewApplicationRepository(s),
			close:        s.Close,
		}, nil
	default:
		var (
			gdb *gorm.DB
			err error
		)
		if cfg.StoreDriver == config.StoreSQLite {
			gdb, err = db.OpenSQLite(cfg.SQLitePath)
		} else {
			gdb, err = db.OpenMySQL(cfg.MySQLDSN())
		}
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlrepo.AutoMigrate(gdb); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return &repos{
			catalog:      sqlrepo.NewCatalogRepository(gdb),
			users:        sqlrepo.NewUserRepository(gdb),
			applications: sqlrepo.NewApplicationRepository(gdb),
			close:        func(context.Context) error { return sqlDB.Close() },
		}, nil
	}
}

// openStore is swapped in tests.
var openStore = openRepos

func newVerifier(ctx context.Context, cfg *config.Config) (identity.Verifier, error) {
	if cfg.AuthProvider == config.AuthJWT {
		return identity.NewJWTVerifier(cfg.JWTSecret), nil
	}
	return identity.NewFirebaseVerifier(ctx, cfg.FirebaseCredentials)
}

func main() {
	if err := run(); err != nil {
		slog.Error("exit", "err", err)
		os.Exit(1)
	}
}

// run owns every resource it opens so the defers close them on any failure.
func run() error {
	cfg := config.Load()

	log, err := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		return pkgerrors.Wrap(err, "invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, err := openStore(bootCtx, cfg)
	if err != nil {
		return pkgerrors.Wrapf(err, "store %s", cfg.StoreDriver)
	}
	defer func() {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelClose()
		if err := store.close(closeCtx); err != nil {
			slog.Error("close store", "err", err)
		}
	}()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	verifier, err := newVerifier(bootCtx, cfg)
	if err != nil {
		return pkgerrors.Wrapf(err, "identity provider %s", cfg.AuthProvider)
	}

	m := metrics.New("microcredx")

	appUC := application.NewUsecase(store.applications)
	userUC := user.NewUsecase(store.users, appUC)
	catUC := catalog.NewUsecase(store.catalog, cfg.HomeLoansLimit)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Logger(),
		middleware.Recover(),
		middleware.CORS(),
		mw.Metrics(m),
	)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	httpadp.RegisterRoutes(e, httpadp.Routes{
		Base:         httpadp.NewHandler(),
		Catalog:      httpadp.NewCatalogHandler(catUC),
		Users:        httpadp.NewUserHandler(userUC),
		Applications: httpadp.NewApplicationHandler(appUC, m),
		Verifier:     verifier,
		Roles:        userUC,
		Redis:        rdb,
		IdempTTL:     time.Duration(cfg.IdempTTLSecs) * time.Second,
	})

	addr := ":" + cfg.AppPort
	go func() {
		slog.Info("listening", "addr", addr, "store", cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
	return nil
}
