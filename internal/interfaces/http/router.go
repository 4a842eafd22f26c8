package http

import (
	"github.com/gofiber/fiber/v2"
)

// Deps handlers y configuración que necesita el router.
type Deps struct {
	JWTSecret string
	Auth      *AuthHandler
	Products  *ProductHandler
	Sales     *SaleHandler
}

// Router registra todas las rutas de la API bajo /api.
//
// Públicas: registro, login y lectura del catálogo.
// Protegidas (Bearer): escritura del catálogo, ventas y /auth/me.
func Router(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/register", d.Auth.Register)
	api.Post("/auth/login", d.Auth.Login)

	// Catálogo (lectura pública)
	api.Get("/products", d.Products.List)
	api.Get("/products/:id", d.Products.Get)

	// Rutas protegidas
	protected := api.Group("", AuthMiddleware(d.JWTSecret))

	protected.Get("/auth/me", d.Auth.Me)

	protected.Post("/products", d.Products.Create)
	protected.Patch("/products/:id", d.Products.Update)
	protected.Delete("/products/:id", d.Products.Delete)

	protected.Post("/sales", d.Sales.Create)
	protected.Get("/sales", d.Sales.List)
	protected.Get("/sales/:id", d.Sales.Get)
	protected.Get("/sales/:id/receipt", d.Sales.Receipt)
}
