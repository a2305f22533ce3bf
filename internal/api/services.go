package api

import (
	"github.com/animes2u/catalog-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth    *service.AuthService
	Session *service.SessionService
	Catalog *service.CatalogService
	Admin   *service.AdminService
}
