package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edubel/exemption-gateway/internal/middleware"
	"github.com/edubel/exemption-gateway/internal/service"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Dossiers      *DossierHandler
	Catalog       *CatalogHandler
	Uploads       *UploadHandler
	Notifications *NotificationHandler
	Exports       *ExportHandler
}

// RegisterRoutes mounts all gateway endpoints under the API prefix. Signed
// document downloads stay public, the token is the credential there.
func RegisterRoutes(r *gin.Engine, prefix string, auth service.AuthService, h Handlers) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/documents/:token", h.Uploads.Download)

	authed := api.Group("", middleware.JWTAuth(auth))

	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/sections", h.Catalog.Sections)
	authed.GET("/sections/:id/units", h.Catalog.Units)
	authed.GET("/units/:code", h.Catalog.Unit)

	authed.GET("/dossiers", h.Dossiers.List)
	authed.POST("/dossiers", h.Dossiers.Create)
	authed.GET("/dossiers/:id", h.Dossiers.Get)
	authed.DELETE("/dossiers/:id", h.Dossiers.Delete)
	authed.POST("/dossiers/:id/courses", h.Dossiers.AddCourse)
	authed.POST("/dossiers/:id/documents", h.Dossiers.AddDocument)
	authed.DELETE("/dossiers/:id/documents/:docId", h.Dossiers.DeleteDocument)
	authed.POST("/dossiers/:id/analysis", h.Dossiers.RunAnalysis)
	authed.POST("/dossiers/:id/items", h.Dossiers.AddItem)
	authed.DELETE("/dossiers/:id/items/:itemId", h.Dossiers.DeleteItem)
	authed.POST("/dossiers/:id/advance", h.Dossiers.Advance)
	authed.POST("/dossiers/:id/submit", h.Dossiers.Submit)
	authed.GET("/dossiers/:id/history", h.Dossiers.History)

	authed.POST("/uploads", h.Uploads.Upload)

	authed.GET("/notifications", h.Notifications.List)
	authed.DELETE("/notifications/:id", h.Notifications.Dismiss)

	authed.GET("/exports/dossiers", h.Exports.DashboardCSV)
	authed.GET("/exports/dossiers/:id", h.Exports.RecapPDF)
}
