package models

// TelegramLink connects a Telegram user to the email their ledger data is
// stored under. It is created when the user completes the account linking
// flow and read by the bot handlers to resolve the acting owner.
type TelegramLink struct {
	DefaultModel
	TelegramID string `json:"telegramId" gorm:"uniqueIndex"`
	ChatID     string `json:"chatId"`
	UserID     string `json:"userId"` // Email of the linked user
	Username   string `json:"username"`
}
