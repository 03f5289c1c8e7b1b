package testdb

import (
	"context"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
)

type Handle struct {
	DB     *gorm.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *Handle) Close() {
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Start brings up a throwaway postgres container, opens GORM against it and
// applies the app schema.
func Start(ctx context.Context) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("orbiiit"),
		postgres.WithUsername("orbiiit"),
		postgres.WithPassword("orbiiit"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	db, err := open(ctx, uri)
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &Handle{DB: db, cancel: cancel, stop: pg.Terminate}, nil
}

func open(ctx context.Context, uri string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err = gorm.Open(gormpg.Open(uri), &gorm.Config{})
		if err == nil {
			if sqlDB, derr := db.DB(); derr == nil && sqlDB.PingContext(ctx) == nil {
				return db, nil
			}
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = ctx.Err()
			}
			return nil, err
		}
		time.Sleep(500 * time.Millisecond)
	}
}
