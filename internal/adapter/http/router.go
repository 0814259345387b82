package http

import (
	"time"

	"microcredx-backend/internal/adapter/middleware"
	"microcredx-backend/internal/domain/user"
	"microcredx-backend/internal/infrastructure/identity"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Routes groups what RegisterRoutes needs. Redis is optional; without it
// Idempotency-Key headers are ignored.
type Routes struct {
	Base         *Handler
	Catalog      *CatalogHandler
	Users        *UserHandler
	Applications *ApplicationHandler

	Verifier identity.Verifier
	Roles    middleware.RoleLookup

	Redis    *redis.Client
	IdempTTL time.Duration
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	var idem []echo.MiddlewareFunc
	if r.Redis != nil {
		idem = append(idem, middleware.Idempotency(r.Redis, r.IdempTTL))
	}
	authn := middleware.BearerAuth(r.Verifier)
	admin := middleware.RequireRole(r.Roles, user.RoleAdmin)

	e.GET("/", r.Base.Root)
	e.GET("/health", r.Base.Health)

	// catalog
	e.GET("/all-loan", r.Catalog.ListAll)
	e.GET("/home-loans", r.Catalog.ListHome)
	e.GET("/home-allloans", r.Catalog.ListHomeAll)
	e.GET("/loan-details/:id", r.Catalog.Details)
	e.GET("/create-loan", r.Catalog.ListByCreator)
	e.POST("/add-loan", r.Catalog.Create, idem...)
	e.PUT("/update-loan/:id", r.Catalog.Update)
	e.PUT("/update-adminloan/:id", r.Catalog.AdminUpdate)
	e.DELETE("/delete-loan/:id", r.Catalog.Delete)

	// users
	e.GET("/all-user", r.Users.List)
	e.POST("/save-user", r.Users.Save)
	e.GET("/user-role/:email", r.Users.Role)
	e.PATCH("/update-role/:id", r.Users.UpdateRole, authn, admin)
	e.GET("/pending-loans-count", r.Users.PendingCount)

	// applications
	e.POST("/save-loan", r.Applications.Submit, idem...)
	e.GET("/get-loan", r.Applications.ListByEmail)
	e.GET("/get-allloans", r.Applications.ListPending)
	e.GET("/get-Approved-loans", r.Applications.ListApproved)
	e.GET("/all-adminloan", r.Applications.ListAll, authn)
	e.GET("/loan-application/:id", r.Applications.Details)
	e.PATCH("/loan-status/:id", r.Applications.SetStatus)
	e.DELETE("/delete-loan-application/:id", r.Applications.Delete)
}
