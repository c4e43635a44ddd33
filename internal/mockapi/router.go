package mockapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(log *slog.Logger, db *gorm.DB) *gin.Engine {
	store := NewStore(db)
	h := NewHandlers(store, log)

	r := gin.New()
	// ErrorHandler sits outside Recovery so recovered panics are rendered
	// through the same JSON envelope.
	r.Use(RequestID(), Logger(log), ErrorHandler(log), Recovery(log))

	v1 := r.Group("/v1")
	{
		v1.GET("/sessions/:id", h.GetSession)
		v1.POST("/sessions/:id/purchased", h.MarkSessionPurchased)
		v1.GET("/carts/:id", h.GetCart)
		v1.POST("/carts/:id/paid", h.MarkCartPaid)
		v1.GET("/payments/:referenceId/first", h.GetFirstPayment)
		v1.POST("/tax/calculate", h.CalculateTax)

		v1.POST("/charges/primer", h.ChargePrimer)
		v1.POST("/charges/paypal", h.ChargePaypal)
		v1.POST("/sessions/:id/paypal/agreements", h.StartAgreement)
		v1.POST("/paypal/agreements/:token/capture", h.CaptureAgreement)
		v1.POST("/sessions/:id/paypal/pay", h.PayFromAgreement)
		v1.POST("/payments/verify", h.VerifyChargeRefund)
		v1.POST("/payments/verify/deferred", h.VerifyChargeRefundDeferred)

		v1.POST("/events", h.CaptureEvent)

		// dev seeding
		v1.POST("/sessions", h.SeedSession)
		v1.POST("/carts", h.SeedCart)
		v1.POST("/payments", h.SeedPayment)
	}

	return r
}
