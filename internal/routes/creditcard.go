package routes

import (
	"net/http"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/creditcard"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCreditCard(c *gin.Context) {
	var body contracts.CreditCardCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &creditcard.CreateCreditCardRequest{
		Name:                 body.Name,
		CreditLimit:          body.CreditLimit,
		ClosingDay:           body.ClosingDay,
		DueDay:               body.DueDay,
		AllowsPartialPayment: body.AllowsPartialPayment,
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.CreateCreditCard(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CreditCardCreateResponse{
		Message:    "Cartão de crédito criado com sucesso",
		CreditCard: card,
	})
}

func (h *Handler) ListCreditCards(c *gin.Context) {
	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	cards, total, err := h.CreditCardService.ListCreditCards(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(cards, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	card, err := h.CreditCardService.GetCreditCardById(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CreditCardSingleResponse{CreditCard: card})
}

func (h *Handler) UpdateCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.CreditCardUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &creditcard.UpdateCreditCardRequest{
		Name:                 body.Name,
		CreditLimit:          body.CreditLimit,
		ClosingDay:           body.ClosingDay,
		DueDay:               body.DueDay,
		AllowsPartialPayment: body.AllowsPartialPayment,
		IsActive:             body.IsActive,
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.UpdateCreditCard(ctx, cardID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cartão de crédito atualizado com sucesso"})
}

func (h *Handler) DeleteCreditCard(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	if err := h.CreditCardService.DeleteCreditCard(ctx, cardID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cartão de crédito removido com sucesso"})
}

func (h *Handler) GetAvailableLimit(c *gin.Context) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	limit, err := h.CreditCardService.GetAvailableLimit(ctx, cardID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AvailableLimitResponse{AvailableLimit: limit})
}
