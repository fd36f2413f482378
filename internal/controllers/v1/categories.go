package v1

import (
	"net/http"

	"github.com/catatduitmu/backend/internal/httputil"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetCategories)
}

// @Summary		Get categories
// @Description	Returns the fixed category vocabulary per transaction type
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoriesResponse
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Data: Categories{
			Income:  models.IncomeCategories,
			Expense: models.ExpenseCategories,
		},
	})
}

type Categories struct {
	Income  []string `json:"income"`  // Categories for income transactions
	Expense []string `json:"expense"` // Categories for expense transactions
}

type CategoriesResponse struct {
	Data Categories `json:"data"` // The category vocabulary
}
