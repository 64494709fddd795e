package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swiftrivia/internal/adapters/http/api"
	"github.com/okian/swiftrivia/internal/adapters/storage"
	"github.com/okian/swiftrivia/internal/config"
	"github.com/okian/swiftrivia/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SWIFTRIVIA_ADDR", ":8080")
			_ = os.Setenv("SWIFTRIVIA_STORAGE_DRIVER", "memory")
			_ = os.Setenv("SWIFTRIVIA_LEADERBOARD_CAPACITY", "20")
			defer func() {
				_ = os.Unsetenv("SWIFTRIVIA_ADDR")
				_ = os.Unsetenv("SWIFTRIVIA_STORAGE_DRIVER")
				_ = os.Unsetenv("SWIFTRIVIA_LEADERBOARD_CAPACITY")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverMemory)
				convey.So(cfg.LeaderboardCapacity, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When opening each storage driver", func() {
			cfg := config.New(ctx)

			convey.Convey("Then memory and none should need no setup", func() {
				cfg.StorageDriver = config.DriverMemory
				b, err := openBackend(ctx, cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(b, convey.ShouldHaveSameTypeAs, storage.NewMemory())

				cfg.StorageDriver = config.DriverNone
				b, err = openBackend(ctx, cfg)
				convey.So(err, convey.ShouldBeNil)
				convey.So(b, convey.ShouldHaveSameTypeAs, storage.Unavailable{})
			})

			convey.Convey("Then sqlite should create the database file", func() {
				cfg.StorageDriver = config.DriverSQLite
				cfg.SQLitePath = filepath.Join(t.TempDir(), "progress.db")
				b, err := openBackend(ctx, cfg)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = b.(*storage.SQLite).Close() }()

				_, statErr := os.Stat(cfg.SQLitePath)
				convey.So(statErr, convey.ShouldBeNil)
			})

			convey.Convey("Then an unknown driver should fail", func() {
				cfg.StorageDriver = "redis"
				_, err := openBackend(ctx, cfg)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the service into the API", func() {
			cfg := config.New(ctx)
			svc := newService(cfg, storage.NewMemory(), logger.NewNop())
			mux := http.NewServeMux()
			api.NewServer(svc).Register(mux)

			convey.Convey("Then the routes should be served", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(svc.Capacity(), convey.ShouldEqual, cfg.LeaderboardCapacity)
			})
		})
	})
}
