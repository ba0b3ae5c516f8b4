package routes

import (
	"net/http"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/bill"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBill(c *gin.Context) {
	var body contracts.BillCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cardID, err := pkg.ParseULID(body.CreditCardId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("credit_card_id", "formato inválido"))
		return
	}

	installments := body.NumberOfInstallments
	if installments == 0 {
		installments = 1
	}

	req := &bill.CreateBillRequest{
		Name:                 body.Name,
		ExecutionDate:        body.ExecutionDate,
		TotalAmount:          body.TotalAmount,
		NumberOfInstallments: installments,
		Description:          body.Description,
		IsRecurring:          body.IsRecurring,
		Category:             body.Category,
		CreditCardId:         cardID,
	}

	ctx := c.Request.Context()
	created, err := h.BillService.CreateBill(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BillCreateResponse{
		Message: "Conta criada com sucesso",
		Bill:    created,
	})
}

func (h *Handler) ListBills(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	bills, total, err := h.BillService.ListBills(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(bills, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetBill(c *gin.Context) {
	billID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	found, err := h.BillService.GetBillById(ctx, billID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BillSingleResponse{Bill: found})
}

func (h *Handler) UpdateBill(c *gin.Context) {
	billID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.BillCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cardID, err := pkg.ParseULID(body.CreditCardId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("credit_card_id", "formato inválido"))
		return
	}

	installments := body.NumberOfInstallments
	if installments == 0 {
		installments = 1
	}

	req := &bill.CreateBillRequest{
		Name:                 body.Name,
		ExecutionDate:        body.ExecutionDate,
		TotalAmount:          body.TotalAmount,
		NumberOfInstallments: installments,
		Description:          body.Description,
		IsRecurring:          body.IsRecurring,
		Category:             body.Category,
		CreditCardId:         cardID,
	}

	ctx := c.Request.Context()
	updated, err := h.BillService.UpdateBill(ctx, billID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BillSingleResponse{Bill: updated})
}

func (h *Handler) DeleteBill(c *gin.Context) {
	billID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.BillService.DeleteBill(ctx, billID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta removida com sucesso"})
}

func (h *Handler) ListBillInstallments(c *gin.Context) {
	billID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	installments, err := h.BillService.ListInstallments(ctx, billID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentListResponse{
		Installments: installments,
		Total:        len(installments),
	})
}
