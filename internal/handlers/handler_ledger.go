package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/credit_tracking_app/internal/dto"
	"github.com/SscSPs/credit_tracking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NextTokenHeader carries the token of the next page of a paged listing.
const NextTokenHeader = "X-Next-Token"

// transactionHandler handles HTTP requests for raw ledger entries.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

// registerTransactionRoutes registers routes related to ledger entries.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/date/:date", h.listTransactionsByDate)
		transactions.GET("/customer/:customer", h.listTransactionsByCustomer)
	}
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists entries ordered by date then id. With limit the result is paged and the next page token is returned in the X-Next-Token header.
// @Tags transactions
// @Produce  json
// @Param   from_date query string false "First date (YYYY-MM-DD)"
// @Param   to_date query string false "Last date (YYYY-MM-DD)"
// @Param   customer_name query string false "Exact customer name"
// @Param   transaction_type query string false "sale, repayment or expense"
// @Param   limit query int false "Page size (1-1000)"
// @Param   next_token query string false "Token from a previous X-Next-Token header"
// @Success 200 {array} dto.EntryResponse
// @Header  200 {string} X-Next-Token "Token of the next page"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	if params.Limit == 0 {
		entries, err := h.ledgerService.Query(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
		return
	}

	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}
	entries, next, err := h.ledgerService.QueryPage(c.Request.Context(), filter, params.Limit, token)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	if next != nil {
		c.Header(NextTokenHeader, *next)
	}
	logger.Debug("Listed transaction page", slog.Int("count", len(entries)), slog.Bool("has_more", next != nil))
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// listTransactionsByDate godoc
// @Summary List the entries of one date
// @Tags transactions
// @Produce  json
// @Param   date path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/date/{date} [get]
func (h *transactionHandler) listTransactionsByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, ok := pathDate(c, logger, "date")
	if !ok {
		return
	}

	entries, err := h.ledgerService.Query(c.Request.Context(), domain.EntryFilter{DateFrom: &date, DateTo: &date})
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// listTransactionsByCustomer godoc
// @Summary List the entries of one customer
// @Description An unknown customer yields an empty list.
// @Tags transactions
// @Produce  json
// @Param   customer path string true "Exact customer name"
// @Success 200 {array} dto.EntryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/customer/{customer} [get]
func (h *transactionHandler) listTransactionsByCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customer := c.Param("customer")

	entries, err := h.ledgerService.Query(c.Request.Context(), domain.EntryFilter{Customer: customer})
	if err != nil {
		respondError(c, logger.With(slog.String("customer", customer)), err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}
