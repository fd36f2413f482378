package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/catatduitmu/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Update is the subset of the Telegram webhook payload the bot reacts to.
type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Dispatch routes an update to the matching handler. Unknown commands and
// callbacks are ignored.
func (h *Handler) Dispatch(ctx context.Context, update Update) error {
	if update.CallbackQuery != nil {
		return h.dispatchCallback(ctx, update.CallbackQuery)
	}

	if update.Message != nil && update.Message.From != nil {
		return h.dispatchMessage(ctx, update.Message)
	}

	return nil
}

func (h *Handler) dispatchMessage(ctx context.Context, message *Message) error {
	chatID := strconv.FormatInt(message.Chat.ID, 10)
	telegramID := strconv.FormatInt(message.From.ID, 10)

	if message.Text == "/start" || message.Text == "/menu" {
		return h.HandleStart(ctx, chatID, telegramID)
	}

	if strings.HasPrefix(message.Text, "/") {
		return nil
	}

	handled, err := h.HandleText(ctx, chatID, telegramID, message.Text)
	if err != nil || handled {
		return err
	}

	return h.sender.SendMessage(ctx, chatID, "Gunakan /start untuk membuka menu.", nil)
}

func (h *Handler) dispatchCallback(ctx context.Context, query *CallbackQuery) error {
	if query.Message == nil {
		return nil
	}

	chatID := strconv.FormatInt(query.Message.Chat.ID, 10)
	messageID := query.Message.MessageID
	telegramID := strconv.FormatInt(query.From.ID, 10)
	data := query.Data

	switch data {
	case "menu_main", "menu_refresh":
		return h.HandleMainMenu(ctx, chatID, messageID, telegramID)
	case "menu_wallets":
		return h.HandleWalletsList(ctx, chatID, messageID, telegramID)
	case "menu_income":
		return h.HandleTransactionStart(ctx, chatID, messageID, telegramID, models.TransactionTypeIncome)
	case "menu_expense":
		return h.HandleTransactionStart(ctx, chatID, messageID, telegramID, models.TransactionTypeExpense)
	case "menu_history":
		return h.HandleHistory(ctx, chatID, messageID, telegramID)
	case "menu_report":
		return h.HandleReport(ctx, chatID, messageID, telegramID)
	case "wallet_add":
		return h.HandleAddWalletStart(ctx, chatID, messageID, telegramID)
	}

	if suffix, ok := strings.CutPrefix(data, "wallet_type_"); ok {
		return h.HandleWalletTypeSelection(ctx, chatID, messageID, telegramID, models.WalletType(suffix))
	}

	if suffix, ok := strings.CutPrefix(data, "wallet_view_"); ok {
		id, err := uuid.Parse(suffix)
		if err != nil {
			return nil
		}
		return h.HandleWalletView(ctx, chatID, messageID, telegramID, id)
	}

	for _, transactionType := range []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense} {
		if category, ok := strings.CutPrefix(data, string(transactionType)+"_cat_"); ok {
			return h.HandleCategorySelection(ctx, chatID, messageID, telegramID, transactionType, category)
		}

		if suffix, ok := strings.CutPrefix(data, string(transactionType)+"_amount_"); ok {
			amount, err := decimal.NewFromString(suffix)
			if err != nil {
				return nil
			}
			return h.HandleAmountSelection(ctx, chatID, messageID, telegramID, amount)
		}

		if suffix, ok := strings.CutPrefix(data, string(transactionType)+"_wallet_"); ok {
			id, err := uuid.Parse(suffix)
			if err != nil {
				return nil
			}
			return h.HandleWalletSelection(ctx, chatID, messageID, telegramID, id)
		}
	}

	return nil
}
