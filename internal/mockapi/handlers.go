package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handlers serves a small but faithful fake of the funnelpay backend REST
// contract, enough for payctl and manual orchestrator runs against a local
// MySQL.
type Handlers struct {
	store *Store
	log   *slog.Logger
}

func NewHandlers(store *Store, log *slog.Logger) *Handlers {
	return &Handlers{store: store, log: log}
}

func sessionJSON(s Session) gin.H {
	return gin.H{
		"id":          s.ID,
		"countryCode": s.CountryCode,
		"state":       s.State,
		"extraData":   gin.H{"currency": s.Currency},
	}
}

func cartJSON(c Cart) gin.H {
	items := make([]gin.H, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, gin.H{
			"product": gin.H{
				"id":    it.ProductID,
				"name":  it.ProductName,
				"price": it.Price,
			},
			"quantity": it.Quantity,
		})
	}
	return gin.H{"id": c.ID, "items": items}
}

func (h *Handlers) GetSession(c *gin.Context) {
	row, err := h.store.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionJSON(row))
}

func (h *Handlers) MarkSessionPurchased(c *gin.Context) {
	if err := h.store.MarkSessionPurchased(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) GetCart(c *gin.Context) {
	row, err := h.store.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(row))
}

func (h *Handlers) MarkCartPaid(c *gin.Context) {
	var payload map[string]any
	_ = c.ShouldBindJSON(&payload) // payload is pass-through, empty is fine

	var stored *string
	if len(payload) > 0 {
		buf, err := json.Marshal(payload)
		if err == nil {
			s := string(buf)
			stored = &s
		}
	}

	row, err := h.store.MarkCartPaid(c.Request.Context(), c.Param("id"), stored)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartJSON(row))
}

func (h *Handlers) GetFirstPayment(c *gin.Context) {
	row, err := h.store.FirstPayment(c.Request.Context(), c.Param("referenceId"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": row.Provider, "chargeId": row.ChargeID})
}

// flat per-country percentages, close enough for local dev
var taxRates = map[string]float64{
	"US": 8.875,
	"DE": 19,
	"FR": 20,
	"GB": 20,
	"TR": 20,
}

type taxCalcRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CountryCode string  `json:"countryCode" binding:"required"`
	State       string  `json:"state"`
}

func (h *Handlers) CalculateTax(c *gin.Context) {
	var req taxCalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tax request"})
		return
	}

	percent := taxRates[req.CountryCode]
	taxAmount := req.Amount * percent / 100
	c.JSON(http.StatusOK, gin.H{
		"taxAmount":     taxAmount,
		"amountWithTax": req.Amount + taxAmount,
		"taxPercent":    percent,
	})
}

type primerChargeRequest struct {
	CustomerID    string         `json:"customerId" binding:"required"`
	Currency      string         `json:"currency" binding:"required"`
	Amount        float64        `json:"amount" binding:"required,gt=0"`
	ManualCapture bool           `json:"manualCapture"`
	OrderID       string         `json:"orderId" binding:"required"`
	Metadata      map[string]any `json:"metadata"`
}

func (h *Handlers) ChargePrimer(c *gin.Context) {
	var req primerChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid charge request"})
		return
	}

	status := "succeeded"
	if req.ManualCapture {
		status = "authorized"
	}
	row := Charge{
		ID:       uuid.NewString(),
		OrderID:  req.OrderID,
		Provider: "primer",
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   status,
	}
	if err := h.store.CreateCharge(c.Request.Context(), row); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": row.ID, "status": status, "orderId": row.OrderID, "provider": "primer"})
}

type paypalChargeRequest struct {
	ChargeID    string         `json:"chargeId" binding:"required"`
	Currency    string         `json:"currency" binding:"required"`
	Description string         `json:"description"`
	Intent      string         `json:"intent" binding:"required,oneof=AUTHORIZE CAPTURE"`
	OrderID     string         `json:"orderId" binding:"required"`
	Metadata    map[string]any `json:"metadata"`
	Total       float64        `json:"total" binding:"required,gt=0"`
}

func (h *Handlers) ChargePaypal(c *gin.Context) {
	var req paypalChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid charge request"})
		return
	}

	status := "succeeded"
	if req.Intent == "AUTHORIZE" {
		status = "authorized"
	}
	row := Charge{
		ID:       uuid.NewString(),
		OrderID:  req.OrderID,
		Provider: "paypal",
		Amount:   req.Total,
		Currency: req.Currency,
		Status:   status,
	}
	if err := h.store.CreateCharge(c.Request.Context(), row); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": row.ID, "status": status, "orderId": row.OrderID, "provider": "paypal"})
}

func (h *Handlers) StartAgreement(c *gin.Context) {
	if _, err := h.store.GetSession(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": "BA-" + uuid.NewString()})
}

func (h *Handlers) CaptureAgreement(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agreementId": "B-" + uuid.NewString()})
}

type payFromAgreementRequest struct {
	AgreementID string `json:"agreementId" binding:"required"`
}

func (h *Handlers) PayFromAgreement(c *gin.Context) {
	var req payFromAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agreementId is required"})
		return
	}

	sess, err := h.store.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}

	row := Charge{
		ID:       uuid.NewString(),
		OrderID:  "agr-" + req.AgreementID,
		Provider: "paypal-recurring",
		Amount:   0,
		Currency: sess.Currency,
		Status:   "succeeded",
	}
	if err := h.store.CreateCharge(c.Request.Context(), row); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": row.ID, "status": row.Status, "orderId": row.OrderID, "provider": row.Provider})
}

type verifyRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Amount  int    `json:"amount" binding:"required,gt=0"` // minor units
}

func (h *Handlers) verify(c *gin.Context, status string) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification request"})
		return
	}

	row := Charge{
		ID:       uuid.NewString(),
		OrderID:  req.OrderID,
		Provider: "primer",
		Amount:   float64(req.Amount) / 100,
		Currency: "USD",
		Status:   status,
	}
	if err := h.store.CreateCharge(c.Request.Context(), row); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": row.ID, "status": status, "orderId": row.OrderID, "provider": row.Provider})
}

func (h *Handlers) VerifyChargeRefund(c *gin.Context) {
	h.verify(c, "refunded")
}

func (h *Handlers) VerifyChargeRefundDeferred(c *gin.Context) {
	h.verify(c, "refund_scheduled")
}

func (h *Handlers) CaptureEvent(c *gin.Context) {
	var ev map[string]any
	_ = c.ShouldBindJSON(&ev)
	h.log.Info("event_captured", "event", ev["name"])
	c.Status(http.StatusAccepted)
}

// Seeding endpoints below exist for local dev only; the real backend owns
// session/cart creation.

type seedSessionRequest struct {
	ID          string `json:"id"`
	CountryCode string `json:"countryCode" binding:"required"`
	State       string `json:"state"`
	Currency    string `json:"currency" binding:"required"`
}

func (h *Handlers) SeedSession(c *gin.Context) {
	var req seedSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	row := Session{ID: req.ID, CountryCode: req.CountryCode, State: req.State, Currency: req.Currency}
	if err := h.store.CreateSession(c.Request.Context(), row); err != nil {
		if errors.Is(err, ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already exists"})
			return
		}
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionJSON(row))
}

type seedCartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
}

type seedCartRequest struct {
	ID    string         `json:"id" binding:"required"`
	Items []seedCartItem `json:"items" binding:"required,dive"`
}

func (h *Handlers) SeedCart(c *gin.Context) {
	var req seedCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart"})
		return
	}

	row := Cart{ID: req.ID, SessionID: req.ID}
	if len(req.ID) > 36 {
		row.SessionID = req.ID[:36]
	}
	for _, it := range req.Items {
		pid := it.ProductID
		if pid == "" {
			pid = uuid.NewString()
		}
		row.Items = append(row.Items, CartItem{
			ID:          uuid.NewString(),
			CartID:      row.ID,
			ProductID:   pid,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	if err := h.store.CreateCart(c.Request.Context(), row); err != nil {
		if errors.Is(err, ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "cart already exists"})
			return
		}
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartJSON(row))
}

type seedPaymentRequest struct {
	ReferenceID string `json:"referenceId" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	ChargeID    string `json:"chargeId"`
}

func (h *Handlers) SeedPayment(c *gin.Context) {
	var req seedPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment"})
		return
	}

	row := Payment{
		ID:          uuid.NewString(),
		ReferenceID: req.ReferenceID,
		Provider:    req.Provider,
		ChargeID:    req.ChargeID,
	}
	if err := h.store.CreatePayment(c.Request.Context(), row); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": row.ID})
}
