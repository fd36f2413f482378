package v1

import (
	"net/http"

	"github.com/catatduitmu/backend/internal/auth"
	"github.com/catatduitmu/backend/internal/httputil"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/internal/reports"
	"github.com/catatduitmu/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetSummary)

	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", GetCategoryBreakdown)
}

// parseMonth reads the month query parameter. An empty parameter is an error,
// reports are always for an explicit month.
func parseMonth(c *gin.Context) (types.Month, bool) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil || query.Month == "" {
		s := errMonthNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: s})
		return types.Month{}, false
	}

	month, err := types.ParseMonth(query.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidMonth.Error()})
		return types.Month{}, false
	}

	return month, true
}

// @Summary		Month summary
// @Description	Returns the aggregated numbers for a month: total assets, income, expense, burn rate and the changes against the previous month
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			month	query		string	true	"Year and month in YYYY-MM format"
// @Router			/v1/reports/summary [get]
func GetSummary(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	summary, err := reports.Summary(models.DB, auth.User(c), month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

// @Summary		Category breakdown
// @Description	Returns the per-category totals for a month, largest first
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	CategoryBreakdownResponse
// @Failure		400		{object}	CategoryBreakdownResponse
// @Failure		500		{object}	CategoryBreakdownResponse
// @Param			month	query		string	true	"Year and month in YYYY-MM format"
// @Param			type	query		string	false	"Transaction type to break down. Defaults to expense."
// @Param			limit	query		int		false	"Maximum number of categories to return. Defaults to 5, -1 returns all."
// @Router			/v1/reports/categories [get]
func GetCategoryBreakdown(c *gin.Context) {
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	transactionType := models.TransactionTypeExpense
	if t, ok := c.GetQuery("type"); ok {
		transactionType = models.TransactionType(t)
		if !slices.Contains([]models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense}, transactionType) {
			e := errTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, CategoryBreakdownResponse{
				Error: &e,
			})
			return
		}
	}

	var limitQuery struct {
		Limit int `form:"limit,default=5"`
	}
	if err := c.Bind(&limitQuery); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryBreakdownResponse{
			Error: &e,
		})
		return
	}

	transactions, err := reports.TransactionsInMonth(models.DB, auth.User(c), month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryBreakdownResponse{
			Error: &e,
		})
		return
	}

	data := reports.CategoryBreakdown(transactions, transactionType, limitQuery.Limit)
	c.JSON(http.StatusOK, CategoryBreakdownResponse{Data: data})
}

type SummaryResponse struct {
	Data  *reports.MonthSummary `json:"data"`                                                   // The summary data
	Error *string               `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

type CategoryBreakdownResponse struct {
	Data  []reports.CategoryTotal `json:"data"`                                                   // Per-category totals, largest first
	Error *string                 `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}
