package api

import (
	catalogdomain "chai-app-go/internal/domain/catalog"
	userdomain "chai-app-go/internal/domain/user"
	"chai-app-go/internal/media"
	"chai-app-go/pkg/logger"
)

type Handlers struct {
	Catalog *catalogdomain.Service
	Users   *userdomain.Service
	images  media.ImageURLs
	log     logger.Logger
}

func New(catalog *catalogdomain.Service, users *userdomain.Service, images media.ImageURLs, log logger.Logger) *Handlers {
	return &Handlers{
		Catalog: catalog,
		Users:   users,
		images:  images,
		log:     log,
	}
}
