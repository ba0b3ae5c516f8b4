package fx

import (
	"context"

	"Parcelo/config"
	"Parcelo/internal/logger"
	"Parcelo/internal/middleware"
	"Parcelo/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	{
		creditCards := api.Group("/credit-cards")
		{
			creditCards.POST("", handler.CreateCreditCard)
			creditCards.GET("", handler.ListCreditCards)
			creditCards.GET("/:id", handler.GetCreditCard)
			creditCards.PATCH("/:id", handler.UpdateCreditCard)
			creditCards.DELETE("/:id", handler.DeleteCreditCard)
			creditCards.GET("/:id/limit", handler.GetAvailableLimit)
			creditCards.GET("/:id/invoices", handler.ListInvoices)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("/:id", handler.GetInvoice)
			invoices.GET("/:id/total", handler.GetInvoiceBalance)
			invoices.GET("/:id/installments", handler.ListInvoiceInstallments)
			invoices.PATCH("/:id/total", handler.UpdateInvoiceTotal)
			invoices.POST("/:id/close", handler.CloseInvoice)
			invoices.POST("/:id/registered-limit", handler.RegisterAvailableLimit)
			invoices.POST("/:id/payments", handler.RegisterPartialPayment)
			invoices.GET("/:id/payments", handler.ListPartialPayments)
		}

		payments := api.Group("/payments")
		{
			payments.DELETE("/:id", handler.DeletePartialPayment)
		}

		bills := api.Group("/bills")
		{
			bills.POST("", handler.CreateBill)
			bills.GET("", handler.ListBills)
			bills.GET("/:id", handler.GetBill)
			bills.PUT("/:id", handler.UpdateBill)
			bills.DELETE("/:id", handler.DeleteBill)
			bills.GET("/:id/installments", handler.ListBillInstallments)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
