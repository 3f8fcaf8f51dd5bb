package handlers

import (
	"net/http"
	"strings"

	"dpiportal/middleware"
	"dpiportal/models"
	"dpiportal/services/access"
	"dpiportal/services/directory"
	"dpiportal/services/guard"
	"dpiportal/services/navigation"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the partner directory, access rules and docs navigation.
type CatalogHandler struct {
	Access     *access.Resolver
	Navigation *navigation.Resolver
}

func NewCatalogHandler(resolver *access.Resolver, nav *navigation.Resolver) *CatalogHandler {
	if resolver == nil {
		resolver = access.Default
	}
	if nav == nil {
		nav = navigation.Default
	}
	return &CatalogHandler{Access: resolver, Navigation: nav}
}

func identity(p *models.UserProfile) (*int, string, string) {
	if p == nil {
		return nil, "", ""
	}
	id := p.ID
	return &id, p.Email, p.Username
}

// GetMyStartupHandler returns the partner record for the signed-in account.
func (h *CatalogHandler) GetMyStartupHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	startup := directory.GetStartupByUser(identity(sess.Profile))
	c.JSON(http.StatusOK, gin.H{
		"startup":      startup,
		"ussdEndpoint": directory.USSDEndpointName(startup),
	})
}

// GetAccessHandler returns the effective rule and allowed services.
func (h *CatalogHandler) GetAccessHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess.Profile == nil {
		c.JSON(http.StatusAccepted, gin.H{"state": guard.Pending.String()})
		return
	}
	id, email, username := identity(sess.Profile)
	c.JSON(http.StatusOK, gin.H{
		"rule":            h.Access.Resolve(id, email, username),
		"allowedServices": h.Access.AllowedServices(id, email, username),
	})
}

// CheckServiceAccessHandler answers whether one service is available.
func (h *CatalogHandler) CheckServiceAccessHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	service := strings.ToLower(c.Param("service"))
	if sess.Profile == nil {
		c.JSON(http.StatusAccepted, gin.H{"state": guard.Pending.String(), "service": service})
		return
	}
	id, email, username := identity(sess.Profile)
	c.JSON(http.StatusOK, gin.H{
		"service": service,
		"allowed": h.Access.HasServiceAccess(service, id, email, username),
	})
}

// GetNavigationHandler returns previous/next pages for ?path= over all pages.
func (h *CatalogHandler) GetNavigationHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Navigation.GetNavigation(c.Query("path")))
}

// GetAccessibleNavigationHandler returns previous/next pages the caller may open.
func (h *CatalogHandler) GetAccessibleNavigationHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	id, email, username := identity(sess.Profile)
	state := navigation.AccessState{
		Loaded: sess.Profile != nil,
		Allows: func(service string) bool {
			return h.Access.HasServiceAccess(service, id, email, username)
		},
	}

	nav, decision := h.Navigation.GetAccessibleNavigation(c.Query("path"), state)
	if decision.State == guard.Pending {
		c.JSON(http.StatusAccepted, gin.H{"state": decision.State.String()})
		return
	}
	c.JSON(http.StatusOK, nav)
}

// GetPagesHandler lists the ordered documentation pages.
func (h *CatalogHandler) GetPagesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": h.Navigation.Pages()})
}
