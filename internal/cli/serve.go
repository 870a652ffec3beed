package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "lineup/docs"
	"lineup/internal/config"
	"lineup/internal/handlers"
	"lineup/internal/lineup"
	"lineup/internal/notify"
	"lineup/internal/storage"
	"lineup/internal/tasks"
	"lineup/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := storage.ConnectDatabase(cfg)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := storage.Migrate(db); err != nil {
			return err
		}
	}

	hub := ws.NewHub(log.With("component", "ws"))

	// С Redis события идут через pub/sub, чтобы их получили клиенты всех экземпляров.
	// Без Redis хаб получает события напрямую, а версии хранятся в памяти.
	var (
		rdb       *redis.Client
		publisher notify.Publisher
		versions  handlers.VersionSource
	)
	if cfg.RedisEnabled {
		rdb, err = storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		redisPub := notify.NewRedisPublisher(rdb)
		publisher, versions = redisPub, redisPub
	} else {
		log.Warn("Redis отключён, события доставляются только клиентам этого экземпляра")
		memory := notify.NewMemoryVersions()
		publisher, versions = notify.Fanout{memory, hub}, memory
	}

	svc := lineup.New(db,
		lineup.WithLogger(log.With("component", "lineup")),
		lineup.WithPublisher(publisher),
	)

	scheduler := tasks.NewScheduler(db, log.With("component", "tasks"), cfg.LongAttendanceThreshold)
	cronJobs, err := tasks.InitScheduler(ctx, scheduler, cfg.GaugeRefreshSpec, cfg.LongAttendanceSpec)
	if err != nil {
		return err
	}
	defer func() { <-cronJobs.Stop().Done() }()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(cfg, log, db, rdb, svc, versions, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	if rdb != nil {
		g.Go(func() error { return hub.Subscribe(ctx, rdb) })
	}
	g.Go(func() error {
		log.Info("HTTP сервер запущен", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Остановка HTTP сервера")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(cfg *config.Config, log *slog.Logger, db *gorm.DB, rdb *redis.Client,
	svc *lineup.Service, versions handlers.VersionSource, hub *ws.Hub) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(log.With("component", "http")))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: !containsWildcard(cfg.CORSOrigins),
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/stores/:storeId/ws", hub.Handler)

	handlers.New(handlers.Deps{
		Service:  svc,
		Versions: versions,
		DB:       db,
		Redis:    rdb,
		Location: cfg.Timezone,
		Logger:   log.With("component", "http"),
	}).Register(r)
	return r
}

// containsWildcard сообщает, разрешены ли все источники. Браузеры не принимают credentials вместе с "*".
func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
