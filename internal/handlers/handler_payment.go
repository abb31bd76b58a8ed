package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler exposes the payment allocator.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

func registerPaymentRoutes(rg *gin.RouterGroup, org *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	org.POST("/payments", h.applyPayment)
	rg.GET("/payments/:paymentID", h.getPayment)
	rg.GET("/invoices/:invoiceID/settlement", h.getInvoiceSettlement)
}

// applyPayment godoc
// @Summary Apply a payment
// @Description Allocates a received payment to approved invoices and posts it to the ledger. A FORWARDED payment also records the amounts remitted to a third party.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment and allocations"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization, invoice or account not found"
// @Failure 409 {object} map[string]string "Duplicate external reference or concurrent payment"
// @Failure 422 {object} map[string]string "Overpayment, allocation mismatch or missing ledger account"
// @Failure 500 {object} map[string]string "Failed to apply payment"
// @Security BearerAuth
// @Router /organizations/{orgID}/payments [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	orgID := c.Param("orgID")
	logger = logger.With(slog.String("organization_id", orgID), slog.String("payment_type", string(req.Type)))

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), req.ToPaymentData(orgID), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply payment")
		return
	}

	logger.Info("Payment applied", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// getInvoiceSettlement godoc
// @Summary Get an invoice settlement
// @Description Reports paid, forwarded, recognized and outstanding amounts of an invoice
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to compute settlement"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/settlement [get]
func (h *paymentHandler) getInvoiceSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	settlement, err := h.paymentService.GetInvoiceSettlement(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(*settlement))
}
