package routes

import (
	"strings"
	"time"

	"dpiportal/config"
	"dpiportal/handlers"
	"dpiportal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-in, sign-out and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/portal/auth")
	{
		api.POST("/signin", hb.Auth.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthSessionMiddleware(hb.Sessions))
		api.POST("/signout", hb.Auth.SignOutHandler)
		api.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterCatalogRoutes registers partner directory, access and navigation endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	public := r.Group("/portal/navigation")
	{
		public.GET("", hb.Catalog.GetNavigationHandler)
		public.GET("/pages", hb.Catalog.GetPagesHandler)
	}

	api := r.Group("/portal")
	{
		api.Use(middleware.JWTAuthSessionMiddleware(hb.Sessions))
		profile := middleware.ProfileProtectRoute(hb.Sessions)
		api.GET("/navigation/accessible", profile, hb.Catalog.GetAccessibleNavigationHandler)
		api.GET("/startups/me", middleware.UserProtectRoute(hb.Sessions), hb.Catalog.GetMyStartupHandler)
		api.GET("/access", profile, hb.Catalog.GetAccessHandler)
		api.GET("/access/:service", profile, hb.Catalog.CheckServiceAccessHandler)
	}
}

// RegisterPlaygroundRoutes registers the API console endpoints.
func RegisterPlaygroundRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/portal/playground")
	{
		api.POST("/params", hb.Playground.ParamsHandler)
		api.POST("/render", hb.Playground.RenderHandler)
		api.POST("/download", hb.Playground.DownloadHandler)

		api.Use(middleware.JWTAuthSessionMiddleware(hb.Sessions), middleware.ProtectRoute())
		api.POST("/send", hb.Playground.SendHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the admin console.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/portal/admin")
	{
		adminGroup.Use(middleware.JWTAuthSessionMiddleware(hb.Sessions), middleware.AdminProtectRoute(hb.Sessions))
		adminGroup.GET("/users/:screen", hb.Admin.ListUsersHandler)
		adminGroup.POST("/actions", hb.Admin.RequestActionHandler)
		adminGroup.POST("/actions/:id/confirm", hb.Admin.ConfirmActionHandler)
		adminGroup.DELETE("/actions/:id", hb.Admin.CancelActionHandler)
		adminGroup.GET("/audit", hb.Admin.AuditLogHandler)
	}
}

// RegisterProxyRoutes forwards the sandbox API prefix through the portal session.
func RegisterProxyRoutes(r *gin.Engine, hb *handlers.HandlerBundle, prefix string) {
	prefix = strings.Trim(prefix, "/")
	if hb.Proxy == nil || prefix == "" {
		return
	}
	prefix = "/" + prefix
	proxy := r.Group(prefix)
	{
		proxy.Use(
			middleware.JWTAuthSessionMiddleware(hb.Sessions),
			middleware.ServiceProtectRoute(hb.Sessions, hb.Access, middleware.ServiceFromPath("path")),
		)
		proxy.Any("/*path", hb.Proxy.Handle)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

func corsOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := corsOrigins(config.AppConfig.CORSOrigins)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterPlaygroundRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterProxyRoutes(r, hb, config.AppConfig.APIProxyPrefix)
	RegisterHealthRoute(r)
}
