// Package v1 contains the HTTP handlers of the v1 API.
package v1

import (
	"github.com/finanzas-app/backend/internal/auth"
	"github.com/finanzas-app/backend/internal/money"
	"github.com/finanzas-app/backend/internal/repositories"
	"github.com/finanzas-app/backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Controller bundles the repositories and use cases the handlers work with.
type Controller struct {
	DB           *gorm.DB
	Transactions repositories.TransactionRepository
	Categories   repositories.CategoryRepository
	Auth         repositories.AuthRepository
	Money        *money.Formatter

	login     usecases.LoginUser
	register  usecases.RegisterUser
	logout    usecases.LogoutUser
	dashboard usecases.GetDashboardData
}

// New returns a Controller with the use cases wired to the repositories.
// The database is only used for health checks.
func New(db *gorm.DB, transactions repositories.TransactionRepository, categories repositories.CategoryRepository, authRepository repositories.AuthRepository, formatter *money.Formatter) Controller {
	return Controller{
		DB:           db,
		Transactions: transactions,
		Categories:   categories,
		Auth:         authRepository,
		Money:        formatter,
		login:        usecases.LoginUser{Auth: authRepository},
		register:     usecases.RegisterUser{Auth: authRepository},
		logout:       usecases.LogoutUser{Auth: authRepository},
		dashboard:    usecases.GetDashboardData{Transactions: transactions},
	}
}

// RegisterRoutes registers all v1 routes with the group. Everything
// except registration and login requires a session token.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterAuthRoutes(r.Group("/auth"))

	authenticated := r.Group("", auth.Middleware(co.Auth))
	co.RegisterTransactionRoutes(authenticated.Group("/transactions"))
	co.RegisterCategoryRoutes(authenticated.Group("/categories"))
	co.RegisterSummaryRoutes(authenticated.Group("/summary"))
	co.RegisterDashboardRoutes(authenticated.Group("/dashboard"))
}

// userID returns the ID of the authenticated user.
func userID(c *gin.Context) uuid.UUID {
	identity, _ := auth.Identity(c)
	return identity.ID
}
