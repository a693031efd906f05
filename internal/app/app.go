package app

import (
	"context"
	"net/http"

	"chai-app-go/internal/config"
	"chai-app-go/internal/db"
	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	"chai-app-go/internal/media"
	catalogrepo "chai-app-go/internal/repository/gormdb/catalog"
	userrepo "chai-app-go/internal/repository/gormdb/user"
	"chai-app-go/internal/repository/inmemory"
	"chai-app-go/internal/transport/httpserver"
	"chai-app-go/internal/transport/httpserver/handler/api"
	"chai-app-go/internal/transport/httpserver/handler/pages"
	"chai-app-go/internal/web"
	"chai-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	catalog    *catalogdomain.Service
	users      *userdomain.Service
}

func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	catalogService := catalogdomain.NewService(catalogrepo.NewGorm(dbConn)).
		WithCache(inmemory.NewVarietyCache(), cfg.CatalogCacheTTL)
	userService := userdomain.NewService(userrepo.NewGorm(dbConn))

	log.Info("app: initializing media", "backend", cfg.Media.Backend)
	images, err := media.New(ctx, cfg.Media)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(
		cfg,
		pages.New(catalogService, images, renderer, log),
		api.New(catalogService, userService, images, log),
		log,
	)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
		catalog:    catalogService,
		users:      userService,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) DB() *gorm.DB {
	return a.db
}

func (a *App) Catalog() *catalogdomain.Service {
	return a.catalog
}

func (a *App) Users() *userdomain.Service {
	return a.users
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}
