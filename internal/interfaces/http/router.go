package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/auth"
	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *ledger.LedgerUseCase
	CompanyUC *usecase.CompanyUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido; crear y listar son de super_admin)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)

	// Assets (protegido)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.LedgerUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)
	assets.Post("/:id/transition", assetHandler.Transition)
	assets.Get("/:id/depreciation", assetHandler.Depreciation)
	assets.Get("/:id/audit", assetHandler.AuditTrail)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Request)
	movements.Post("/:id/resolve", movementHandler.Resolve)

	// Work orders (protegido)
	workorders := protected.Group("/workorders")
	workOrderHandler := NewWorkOrderHandler(deps.LedgerUC)
	workorders.Post("/", workOrderHandler.Create)
	workorders.Post("/:id/status", workOrderHandler.UpdateStatus)
}
