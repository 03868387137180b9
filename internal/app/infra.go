package app

import (
	"context"
	"errors"
	"fmt"

	"session-auth/internal/auth"
	"session-auth/internal/config"
	"session-auth/internal/db"
	"session-auth/internal/logger"
	"session-auth/internal/redis"
	"session-auth/internal/session"
)

type Infra struct {
	DB *db.DB
	// Durable is nil unless the session_db_auth authenticator is active.
	Durable session.Store

	closers []func() error
}

func (i *Infra) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	infra := &Infra{DB: database}
	infra.closers = append(infra.closers, database.Close)

	if err := db.RunMigrations(ctx, database.DB); err != nil {
		infra.Close()
		return nil, err
	}

	logger.Info("database ready", nil)

	if cfg.AuthType == auth.TypeSessionDB {
		store, closer, err := newDurableStore(ctx, cfg, database)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Durable = store
		if closer != nil {
			infra.closers = append(infra.closers, closer)
		}

		logger.Info("session store ready", map[string]any{
			"store": cfg.SessionStore,
		})
	}

	return infra, nil
}

// newDurableStore opens the session store named by cfg.SessionStore.
func newDurableStore(ctx context.Context, cfg config.Config, database *db.DB) (session.Store, func() error, error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client.Client, cfg.RetentionTTL()), client.Close, nil
	case "postgres":
		if database == nil {
			return nil, nil, errors.New("postgres session store requires a database")
		}
		return session.NewPostgresStore(database), nil, nil
	case "file":
		store, err := session.OpenBoltStore(cfg.SessionFile)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
