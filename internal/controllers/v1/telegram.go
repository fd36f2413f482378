package v1

import (
	"net/http"

	"github.com/catatduitmu/backend/internal/auth"
	"github.com/catatduitmu/backend/internal/httputil"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterTelegramRoutes registers the routes for the Telegram account link
// with the RouterGroup that is passed.
func RegisterTelegramRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/link", OptionsTelegramLink)
	r.GET("/link", GetTelegramLink)
	r.POST("/link", CreateTelegramLink)
	r.DELETE("/link", DeleteTelegramLink)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Telegram
// @Success		204
// @Router			/v1/telegram/link [options]
func OptionsTelegramLink(c *gin.Context) {
	c.Header("allow", "GET, POST, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Get Telegram link
// @Description	Returns the Telegram account link of the user
// @Tags			Telegram
// @Produce		json
// @Success		200	{object}	TelegramLinkResponse
// @Failure		404	{object}	TelegramLinkResponse
// @Failure		500	{object}	TelegramLinkResponse
// @Router			/v1/telegram/link [get]
func GetTelegramLink(c *gin.Context) {
	var link models.TelegramLink
	err := models.DB.Where(&models.TelegramLink{UserID: auth.User(c)}).First(&link).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TelegramLinkResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TelegramLinkResponse{Data: &link})
}

// @Summary		Link Telegram account
// @Description	Connects a Telegram user to the authenticated account. An existing link for the same Telegram user is taken over.
// @Tags			Telegram
// @Accept			json
// @Produce		json
// @Success		201		{object}	TelegramLinkResponse
// @Failure		400		{object}	TelegramLinkResponse
// @Failure		500		{object}	TelegramLinkResponse
// @Param			link	body		TelegramLinkEditable	true	"Link"
// @Router			/v1/telegram/link [post]
func CreateTelegramLink(c *gin.Context) {
	var editable TelegramLinkEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TelegramLinkResponse{
			Error: &e,
		})
		return
	}

	if editable.TelegramID == "" {
		e := errTelegramIDNotSet.Error()
		c.JSON(http.StatusBadRequest, TelegramLinkResponse{
			Error: &e,
		})
		return
	}

	// Linking again moves the Telegram user to the current account
	var link models.TelegramLink
	err = models.DB.Where(&models.TelegramLink{TelegramID: editable.TelegramID}).
		Assign(models.TelegramLink{
			ChatID:   editable.ChatID,
			UserID:   auth.User(c),
			Username: editable.Username,
		}).
		FirstOrCreate(&link).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TelegramLinkResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, TelegramLinkResponse{Data: &link})
}

// @Summary		Unlink Telegram account
// @Description	Removes the Telegram account link of the user
// @Tags			Telegram
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/telegram/link [delete]
func DeleteTelegramLink(c *gin.Context) {
	var link models.TelegramLink
	err := models.DB.Where(&models.TelegramLink{UserID: auth.User(c)}).First(&link).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&link).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

type TelegramLinkEditable struct {
	TelegramID string `json:"telegramId" example:"123456789"` // Telegram user ID
	ChatID     string `json:"chatId" example:"123456789"`     // Chat the bot talks to the user in
	Username   string `json:"username" example:"budi"`        // Telegram username, informational only
}

type TelegramLinkResponse struct {
	Data  *models.TelegramLink `json:"data"`                                         // The link data
	Error *string              `json:"error" example:"the telegramId must be set"` // The error, if any occurred
}
