package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

// registerCreditRoutes registers routes related to customer credit.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.GET("", h.listOutstanding)
		credits.GET("/:customer", h.getCreditAccount)
		credits.GET("/:customer/timeline", h.getCreditTimeline)
	}
}

// listOutstanding godoc
// @Summary List customers with outstanding credit
// @Description Every customer whose balance is positive as of the date, ordered by name, with aging status.
// @Tags credits
// @Produce  json
// @Param   as_of query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.CreditAccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /credits [get]
func (h *creditHandler) listOutstanding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	asOf, err := params.Date()
	if err != nil {
		respondError(c, logger, err, "Failed to list credit accounts")
		return
	}

	accounts, err := h.creditService.ListOutstanding(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to list credit accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditAccountResponses(accounts))
}

// getCreditAccount godoc
// @Summary Get the credit account of a customer
// @Tags credits
// @Produce  json
// @Param   customer path string true "Exact customer name"
// @Param   as_of query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.CreditAccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /credits/{customer} [get]
func (h *creditHandler) getCreditAccount(c *gin.Context) {
	customer := c.Param("customer")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer", customer))

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	asOf, err := params.Date()
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve credit account")
		return
	}

	account, err := h.creditService.AccountFor(c.Request.Context(), customer, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve credit account")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditAccountResponse(*account))
}

// getCreditTimeline godoc
// @Summary Get the balance history of a customer
// @Description Running balance per date plus the split of receipts by payment method. An unknown customer yields empty lists.
// @Tags credits
// @Produce  json
// @Param   customer path string true "Exact customer name"
// @Success 200 {object} dto.CreditTimelineResponse
// @Failure 404 {object} dto.ErrorResponse "Customer has no entries"
// @Failure 500 {object} dto.ErrorResponse
// @Router /credits/{customer}/timeline [get]
func (h *creditHandler) getCreditTimeline(c *gin.Context) {
	customer := c.Param("customer")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer", customer))

	timeline, err := h.creditService.Timeline(c.Request.Context(), customer)
	if err != nil {
		respondError(c, logger, err, "Failed to build credit timeline")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditTimelineResponse(*timeline))
}
