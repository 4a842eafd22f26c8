package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/posbuzz/pos-api/internal/application/auth"
	"github.com/posbuzz/pos-api/internal/application/sales"
	"github.com/posbuzz/pos-api/internal/application/usecase"
	infrapdf "github.com/posbuzz/pos-api/internal/infrastructure/pdf"
	"github.com/posbuzz/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/posbuzz/pos-api/internal/interfaces/http"
	"github.com/posbuzz/pos-api/pkg/config"
	"github.com/posbuzz/pos-api/pkg/logger"
)

const swaggerSpecPath = "./docs/swagger.json"

// swaggerMiddleware devuelve el middleware de swagger, o nil si el spec no existe.
func swaggerMiddleware(filePath, title string) fiber.Handler {
	if _, err := os.Stat(filePath); err != nil {
		return nil
	}
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, userRepo)

	// PDF: recibo de venta descargable
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sales.NewReceiptUseCase(saleRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// CORS: orígenes desde env; vacío en development = todos
	corsCfg := cors.Config{AllowHeaders: "Origin, Content-Type, Accept, Authorization"}
	if cfg.HTTP.CORSOrigins != "" {
		corsCfg.AllowOrigins = cfg.HTTP.CORSOrigins
	}
	app.Use(cors.New(corsCfg))

	// Swagger UI en local: http://localhost:<port>/docs
	// Solo si el spec existe: swagger.New hace panic con el archivo ausente.
	if mw := swaggerMiddleware(swaggerSpecPath, "PosBuzz API"); mw != nil {
		app.Use(mw)
	} else {
		log.Warn().Str("file", swaggerSpecPath).Msg("spec de swagger no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.Deps{
		JWTSecret: cfg.JWT.Secret,
		Auth:      httpRouter.NewAuthHandler(authUC),
		Products:  httpRouter.NewProductHandler(productUC),
		Sales:     httpRouter.NewSaleHandler(saleUC, receiptUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
