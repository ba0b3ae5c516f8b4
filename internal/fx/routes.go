package fx

import (
	"time"

	"Parcelo/internal/domain/bill"
	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/middleware"
	"Parcelo/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	cardSvc *creditcard.Service,
	invoiceSvc *creditcard.InvoiceService,
	paymentSvc *creditcard.PartialPaymentService,
	billSvc *bill.Service,
) *routes.Handler {
	return &routes.Handler{
		CreditCardService:     cardSvc,
		InvoiceService:        invoiceSvc,
		PartialPaymentService: paymentSvc,
		BillService:           billSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
