package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/songru/blititor/internal/core/auth"
	"github.com/songru/blititor/internal/core/cache"
	"github.com/songru/blititor/internal/core/config"
	"github.com/songru/blititor/internal/core/database"
	"github.com/songru/blititor/internal/core/logger"
	"github.com/songru/blititor/internal/core/server"
	"github.com/songru/blititor/internal/core/session"
	"github.com/songru/blititor/internal/domain"
	"github.com/songru/blititor/internal/repo"
	"github.com/songru/blititor/internal/service"
	"github.com/songru/blititor/internal/transport/http/handler"
	"github.com/songru/blititor/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	sessStore, tokenStore, profileCache := buildStores(cfg, log)
	sessions := session.NewManager(sessStore, cfg.Session.CookieName,
		time.Duration(cfg.Session.TTLMin)*time.Minute, cfg.Session.Secure)

	accountRepo := repo.NewAccountRepo(db)
	visitRepo := repo.NewVisitRepo(db)
	counterRepo := repo.NewCounterRepo(db)
	accountSvc := service.NewAccountService(accountRepo, counterRepo, tokenStore, profileCache, log)
	adminSvc := service.NewAdminService(accountRepo, visitRepo)
	adminH := handler.NewAdminHandler(adminSvc)

	r := router.NewAdminEngine(router.AdminDeps{
		Log:      log,
		Routes:   router.DefaultRoutes(),
		Accounts: accountSvc,
		Sessions: sessions,
		JWTer:    jwter,
		Admin:    adminH,
		Secure:   cfg.Session.Secure,
	})

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	log.Info("admin api starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.Open(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		TablePrefix:        cfg.DB.TablePrefix,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

func buildStores(cfg *config.Config, l *zap.Logger) (session.Store, domain.TokenStore, *cache.Cache) {
	if cfg.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		l.Info("session/token store: redis", zap.String("addr", cfg.Redis.Addr))
		return session.NewRedisStore(rdb), repo.NewRedisTokenStore(rdb), cache.New(rdb)
	}
	l.Info("session/token store: memory")
	return session.NewMemoryStore(), repo.NewMemoryTokenStore(), nil
}
