package main

import (
	"context"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coursekit/wikifilter/internal/host"
	"github.com/coursekit/wikifilter/modules/filter"
	"github.com/coursekit/wikifilter/pkg/association"
	"github.com/coursekit/wikifilter/pkg/config"
	"github.com/coursekit/wikifilter/pkg/httpserver"
	"github.com/coursekit/wikifilter/pkg/i18n"
	"github.com/coursekit/wikifilter/pkg/instance"
	"github.com/coursekit/wikifilter/pkg/logger"
	"github.com/coursekit/wikifilter/pkg/pg"
	"github.com/coursekit/wikifilter/pkg/redis"
	"github.com/coursekit/wikifilter/pkg/rewrite"
	"github.com/coursekit/wikifilter/pkg/wiki"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"wikifilter"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config

	TagCacheTTL time.Duration `env:"TAG_CACHE_TTL" envDefault:"1m"`
}

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	logOpts := []logger.Option{
		logger.WithProduction(cfg.ServiceName),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if cfg.Environment == "development" {
		logOpts[0] = logger.WithDevelopment(cfg.ServiceName)
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.ErrorContext(ctx, "postgres connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.ErrorContext(ctx, "redis connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer rdb.Close()

	hostDB := host.NewPostgresHost(pool)
	tags := wiki.NewCachedTagSource(hostDB, rdb, cfg.TagCacheTTL)

	instances := instance.NewPostgresStore(pool)
	associations := association.NewPostgresStore(pool)

	checker := filter.NewChecker(tags, hostDB, associations)
	rewriter := rewrite.NewRewriter(checker)
	collector := wiki.NewTagCollector(hostDB, hostDB, tags)

	translator, err := i18n.NewBuiltinTranslator()
	if err != nil {
		log.ErrorContext(ctx, "translation catalogs failed to load", logger.Error(err))
		os.Exit(1)
	}

	svc := filter.NewService(
		instances, associations, checker, rewriter, collector,
		hostDB, hostDB, translator,
		filter.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", httpserver.HealthHandler(log, map[string]httpserver.Check{
		"postgres": pg.Healthcheck(pool),
		"redis":    redis.Healthcheck(rdb),
	}))
	r.Mount("/wikifilter", filter.Router(svc))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}
