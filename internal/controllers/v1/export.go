package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/catatduitmu/backend/internal/auth"
	"github.com/catatduitmu/backend/internal/export"
	"github.com/catatduitmu/backend/internal/httputil"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetExport)

	r.OPTIONS("/csv", httputil.OptionsGet)
	r.GET("/csv", GetExportCSV)
}

// @Summary		Export all data
// @Description	Returns all wallets and transactions of the user as a JSON document for backups
// @Tags			Export
// @Produce		json
// @Success		200	{object}	export.Snapshot
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	snapshot, err := export.JSON(models.DB, auth.User(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="catatduitmu-%s.json"`, time.Now().In(time.UTC).Format("2006-01-02")))
	c.JSON(http.StatusOK, snapshot)
}

// @Summary		Export transactions as CSV
// @Description	Returns all transactions of the user as a CSV document
// @Tags			Export
// @Produce		text/csv
// @Success		200	{string}	string
// @Failure		500	{object}	httpError
// @Router			/v1/export/csv [get]
func GetExportCSV(c *gin.Context) {
	csv, err := export.CSV(models.DB, auth.User(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transaksi-%s.csv"`, time.Now().In(time.UTC).Format("2006-01-02")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
