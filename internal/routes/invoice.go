package routes

import (
	"net/http"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/creditcard"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListInvoices(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	invoices, total, err := h.InvoiceService.ListInvoices(ctx, cardID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(invoices, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	invoice, err := h.InvoiceService.GetInvoiceById(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceSingleResponse{Invoice: invoice})
}

func (h *Handler) ListInvoiceInstallments(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	installments, err := h.InvoiceService.ListInvoiceInstallments(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentListResponse{
		Installments: installments,
		Total:        len(installments),
	})
}

func (h *Handler) GetInvoiceBalance(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	balance, err := h.InvoiceService.GetInvoiceBalance(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceBalanceResponse{
		InvoiceId: invoiceID.String(),
		Balance:   balance,
	})
}

func (h *Handler) CloseInvoice(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.InvoiceService.CloseInvoice(ctx, invoiceID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Fatura fechada com sucesso"})
}

func (h *Handler) UpdateInvoiceTotal(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.InvoiceTotalUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if body.MarkAbsolute {
		err = h.InvoiceService.MarkAbsoluteValue(ctx, invoiceID, body.Amount)
	} else {
		err = h.InvoiceService.UpdateInvoiceTotal(ctx, invoiceID, body.Amount)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Total da fatura atualizado com sucesso"})
}

func (h *Handler) RegisterAvailableLimit(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.RegisteredLimitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.InvoiceService.RegisterAvailableLimit(ctx, invoiceID, body.Amount); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Limite disponível registrado com sucesso"})
}

func (h *Handler) RegisterPartialPayment(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.PartialPaymentCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &creditcard.RegisterPartialPaymentRequest{
		Amount:      body.Amount,
		Description: body.Description,
	}

	ctx := c.Request.Context()
	payment, limit, err := h.PartialPaymentService.RegisterPartialPayment(ctx, invoiceID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PartialPaymentCreateResponse{
		Message:        "Pagamento parcial registrado com sucesso",
		Payment:        payment,
		AvailableLimit: limit,
	})
}

func (h *Handler) ListPartialPayments(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	payments, err := h.PartialPaymentService.ListPartialPayments(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PartialPaymentListResponse{
		Payments: payments,
		Total:    len(payments),
	})
}

func (h *Handler) DeletePartialPayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.PartialPaymentService.DeletePartialPayment(ctx, paymentID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pagamento parcial removido com sucesso"})
}
