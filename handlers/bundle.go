package handlers

import (
	"dpiportal/middleware"
	"dpiportal/services/access"
)

// HandlerBundle groups all the portal's endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions middleware.SessionProvider
	Access   *access.Resolver

	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Playground *PlaygroundHandler
	Admin      *AdminHandler
	Proxy      *ProxyHandler
}
