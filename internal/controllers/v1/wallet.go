package v1

import (
	"fmt"
	"net/http"

	"github.com/catatduitmu/backend/internal/auth"
	"github.com/catatduitmu/backend/internal/httputil"
	"github.com/catatduitmu/backend/internal/ledger"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterWalletRoutes registers the routes for wallets with
// the RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWallets)
		r.GET("", GetWallets)
		r.POST("", CreateWallets)
	}

	// Wallet with ID
	{
		r.OPTIONS("/:id", OptionsWalletDetail)
		r.GET("/:id", GetWallet)
		r.PATCH("/:id", UpdateWallet)
		r.DELETE("/:id", DeleteWallet)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Router			/v1/wallets [options]
func OptionsWallets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id} [options]
func OptionsWalletDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var wallet models.Wallet
	err = models.DB.First(&wallet, "id = ? AND user_id = ?", uri.ID.UUID, auth.User(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get wallets
// @Description	Returns a list of the user's wallets, newest first
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletListResponse
// @Failure		400	{object}	WalletListResponse
// @Failure		500	{object}	WalletListResponse
// @Router			/v1/wallets [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			type	query	string	false	"Filter by wallet type"
// @Param			offset	query	uint	false	"The offset of the first Wallet returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Wallets to return. Defaults to 50."
func GetWallets(c *gin.Context) {
	var filter WalletQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, WalletListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("datetime(created_at) DESC").
		Where(&models.Wallet{UserID: auth.User(c)}).
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var wallets []models.Wallet
	err := q.Find(&wallets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Wallet, 0)
	for _, wallet := range wallets {
		data = append(data, newWallet(c, wallet))
	}

	c.JSON(http.StatusOK, WalletListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create wallets
// @Description	Creates wallets from the list of submitted wallet data. The response code is the highest response code number that a single wallet creation would have caused. If it is not equal to 201, at least one wallet has an error.
// @Tags			Wallets
// @Produce		json
// @Success		201		{object}	WalletCreateResponse
// @Failure		400		{object}	WalletCreateResponse
// @Failure		500		{object}	WalletCreateResponse
// @Param			wallets	body		[]WalletEditable	true	"Wallets"
// @Router			/v1/wallets [post]
func CreateWallets(c *gin.Context) {
	var editables []WalletEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WalletCreateResponse{}

	for _, editable := range editables {
		wallet := editable.model()
		wallet.UserID = auth.User(c)

		err := models.DB.Create(&wallet).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newWallet(c, wallet)
		r.Data = append(r.Data, WalletResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get wallet
// @Description	Returns a specific wallet
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletResponse
// @Failure		400	{object}	WalletResponse
// @Failure		404	{object}	WalletResponse
// @Failure		500	{object}	WalletResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wallets/{id} [get]
func GetWallet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var wallet models.Wallet
	err = models.DB.First(&wallet, "id = ? AND user_id = ?", uri.ID.UUID, auth.User(c)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	data := newWallet(c, wallet)
	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// @Summary		Update wallet
// @Description	Updates an existing wallet. Only values to be updated need to be specified. The balance is maintained by the server and cannot be patched, use transactions to change it.
// @Tags			Wallets
// @Accept			json
// @Produce		json
// @Success		200		{object}	WalletResponse
// @Failure		400		{object}	WalletResponse
// @Failure		404		{object}	WalletResponse
// @Failure		500		{object}	WalletResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets/{id} [patch]
func UpdateWallet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var wallet models.Wallet
	err = models.DB.First(&wallet, "id = ? AND user_id = ?", uri.ID.UUID, auth.User(c)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WalletEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	var update WalletEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	// Updating the initial balance moves the cached balance with it so that
	// the transaction history still adds up.
	var balanceShift decimal.Decimal
	if slices.Contains(updateFields, "InitialBalance") {
		balanceShift = update.InitialBalance.Sub(wallet.InitialBalance)
	}

	// The merged state is saved as a whole so the BeforeSave hook validates
	// what actually gets persisted. The balance column stays under the
	// ledger's control, and both writes commit or roll back together.
	wallet = update.merge(wallet, updateFields)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Balance").Save(&wallet).Error; err != nil {
			return err
		}

		if !balanceShift.IsZero() {
			return ledger.ShiftBalance(tx, wallet.ID, balanceShift)
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.First(&wallet, "id = ?", wallet.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WalletResponse{
			Error: &e,
		})
		return
	}

	data := newWallet(c, wallet)
	c.JSON(http.StatusOK, WalletResponse{Data: &data})
}

// @Summary		Delete wallet
// @Description	Deletes a wallet. By default its transactions are kept and reference the deleted wallet. Set onDelete to "cascade" to delete them or to "block" to refuse deletion while transactions exist.
// @Tags			Wallets
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		409			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			onDelete	query		string	false	"What happens to the wallet's transactions. One of: orphan, cascade, block. Defaults to orphan."
// @Router			/v1/wallets/{id} [delete]
func DeleteWallet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var wallet models.Wallet
	err = models.DB.First(&wallet, "id = ? AND user_id = ?", uri.ID.UUID, auth.User(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	policy := ledger.OrphanTransactions
	if p, ok := c.GetQuery("onDelete"); ok {
		policy = ledger.OnWalletDelete(p)
	}

	err = ledger.DeleteWallet(models.DB, &wallet, policy)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// WalletLinks are all links for a wallet.
type WalletLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/wallets/d430d7c3-d14c-4712-9336-ee56965a6673"`              // The wallet itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?wallet=d430d7c3-d14c-4712-9336-ee56965a6673"` // The transactions for this wallet
}

// newWallet returns the API v1 representation of the resource.
func newWallet(c *gin.Context, model models.Wallet) Wallet {
	url := c.GetString(string(models.DBContextURL))

	return Wallet{
		DefaultModel: model.DefaultModel,
		WalletEditable: WalletEditable{
			Name:           model.Name,
			Type:           model.Type,
			InitialBalance: model.InitialBalance,
			Color:          model.Color,
		},
		Balance: model.Balance,
		Links: WalletLinks{
			Self:         fmt.Sprintf("%s/v1/wallets/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?wallet=%s", url, model.ID),
		},
	}
}
