package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cherryshop/cherryshop-api/app/configs"
	"github.com/cherryshop/cherryshop-api/app/models/migrations"
	"github.com/cherryshop/cherryshop-api/app/routes"
	"github.com/cherryshop/cherryshop-api/app/services"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func serveAction(ctx context.Context, c *cli.Command) error {
	return withDatabase(func(env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
		if err := env.RequireSecret(); err != nil {
			return err
		}
		if err := migrations.AutoMigrate(db); err != nil {
			return err
		}
		if err := seed(ctx, env, logger, db); err != nil {
			return err
		}

		tokens, err := services.NewTokenIssuer(env.JWTSecret, env.JWTIssuer)
		if err != nil {
			return err
		}

		var limiter services.LoginLimiter
		if env.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
			defer client.Close()
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis unreachable, login throttling fails open", zap.String("addr", env.RedisAddr), zap.Error(err))
			}
			limiter = services.NewRedisLoginLimiter(client, env.LoginMaxAttempts, env.LoginWindow)
		}

		router, err := routes.NewRouter(routes.Options{
			DB:         db,
			Tokens:     tokens,
			Limiter:    limiter,
			Logger:     logger,
			IndentJSON: !env.IsProduction(),
		})
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:              env.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server starting", zap.String("addr", server.Addr))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
