package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler serves balances, statements and the trial balance.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
	now            func() time.Time
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs, now: time.Now}
}

func registerBalanceRoutes(rg *gin.RouterGroup, org *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/accounts/:accountID/balance", h.getAccountBalance)
	rg.GET("/accounts/:accountID/statement", h.getAccountStatement)
	org.GET("/trial-balance", h.getTrialBalance)
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Sums the account's records within the optional inclusive date window. The sign follows the account polarity.
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   dateFrom query string false "First posting date (YYYY-MM-DD)"
// @Param   dateTo query string false "Last posting date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to calculate balance"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *balanceHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GetAccountBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := query.Filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
		return
	}
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	accountID := c.Param("accountID")
	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), accountID, filter)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}

// getAccountStatement godoc
// @Summary Get an account statement
// @Description Pages through the account's records, newest posting first
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   dateFrom query string false "First posting date (YYYY-MM-DD)"
// @Param   dateTo query string false "Last posting date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.AccountStatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list statement"
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *balanceHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListStatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetAccountStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := params.Filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
		return
	}
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	accountID := c.Param("accountID")
	statement, err := h.balanceService.GetAccountStatement(c.Request.Context(), accountID, filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to list statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Reports every account's balance as of a date plus the financial year to date, grouped by account type group
// @Tags balances
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Security BearerAuth
// @Router /organizations/{orgID}/trial-balance [get]
func (h *balanceHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.TrialBalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GetTrialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	asOf := h.now().UTC()
	if query.AsOf != "" {
		day, err := time.Parse("2006-01-02", query.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf: " + err.Error()})
			return
		}
		asOf = day.Add(24*time.Hour - time.Nanosecond)
	}

	report, err := h.balanceService.GetTrialBalance(c.Request.Context(), c.Param("orgID"), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}
