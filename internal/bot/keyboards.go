package bot

import (
	"fmt"

	"github.com/catatduitmu/backend/internal/format"
	"github.com/catatduitmu/backend/internal/models"
)

// InlineKeyboardButton mirrors the Telegram Bot API type of the same name.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// InlineKeyboardMarkup mirrors the Telegram Bot API type of the same name.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

var mainMenuKeyboard = &InlineKeyboardMarkup{
	InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "💳 Dompet", CallbackData: "menu_wallets"},
			{Text: "➕ Pemasukan", CallbackData: "menu_income"},
			{Text: "➖ Pengeluaran", CallbackData: "menu_expense"},
		},
		{
			{Text: "📊 Laporan", CallbackData: "menu_report"},
			{Text: "📜 Riwayat", CallbackData: "menu_history"},
		},
		{
			{Text: "🔄 Refresh", CallbackData: "menu_refresh"},
		},
	},
}

var backToMenuKeyboard = &InlineKeyboardMarkup{
	InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "🏠 Menu Utama", CallbackData: "menu_main"}},
	},
}

var cancelRow = []InlineKeyboardButton{{Text: "❌ Batal", CallbackData: "menu_main"}}

func loginKeyboard(authURL string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "🔐 Login dengan Gmail", URL: authURL}},
		},
	}
}

// categoriesKeyboard lays the category vocabulary out in rows of two, with a
// cancel button at the bottom.
func categoriesKeyboard(transactionType models.TransactionType) *InlineKeyboardMarkup {
	categories := models.CategoriesFor(transactionType)

	buttons := make([]InlineKeyboardButton, 0, len(categories))
	for _, category := range categories {
		buttons = append(buttons, InlineKeyboardButton{
			Text:         category,
			CallbackData: fmt.Sprintf("%s_cat_%s", transactionType, category),
		})
	}

	return keyboardRows(buttons, 2)
}

// walletsKeyboard lists a user's wallets in rows of two, with a cancel
// button at the bottom.
func walletsKeyboard(wallets []models.Wallet, actionPrefix string) *InlineKeyboardMarkup {
	buttons := make([]InlineKeyboardButton, 0, len(wallets))
	for _, wallet := range wallets {
		buttons = append(buttons, InlineKeyboardButton{
			Text:         fmt.Sprintf("%s %s", walletIcon(wallet.Type), wallet.Name),
			CallbackData: fmt.Sprintf("%s_%s", actionPrefix, wallet.ID),
		})
	}

	return keyboardRows(buttons, 2)
}

// walletsListKeyboard shows one wallet with its balance per row, plus the
// add-wallet and menu buttons.
func walletsListKeyboard(wallets []models.Wallet) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(wallets)+2)
	for _, wallet := range wallets {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s %s - %s", walletIcon(wallet.Type), wallet.Name, format.Rupiah(wallet.Balance)),
			CallbackData: fmt.Sprintf("wallet_view_%s", wallet.ID),
		}})
	}

	rows = append(rows,
		[]InlineKeyboardButton{{Text: "➕ Tambah Dompet", CallbackData: "wallet_add"}},
		[]InlineKeyboardButton{{Text: "🏠 Menu Utama", CallbackData: "menu_main"}},
	)

	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

var walletTypeKeyboard = &InlineKeyboardMarkup{
	InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "🏦 Bank", CallbackData: "wallet_type_bank"},
			{Text: "📱 E-Wallet", CallbackData: "wallet_type_e-wallet"},
			{Text: "💵 Tunai", CallbackData: "wallet_type_cash"},
		},
		cancelRow,
	},
}

// amountHints are the quick-select amounts offered before free-text input.
var amountHints = []struct {
	label  string
	amount int64
}{
	{"10rb", 10000},
	{"25rb", 25000},
	{"50rb", 50000},
	{"100rb", 100000},
	{"250rb", 250000},
	{"500rb", 500000},
	{"1jt", 1000000},
	{"2jt", 2000000},
	{"5jt", 5000000},
}

func amountHintsKeyboard(prefix string) *InlineKeyboardMarkup {
	buttons := make([]InlineKeyboardButton, 0, len(amountHints))
	for _, hint := range amountHints {
		buttons = append(buttons, InlineKeyboardButton{
			Text:         hint.label,
			CallbackData: fmt.Sprintf("%s_%d", prefix, hint.amount),
		})
	}

	return keyboardRows(buttons, 3)
}

// keyboardRows splits buttons into rows of the given width and appends the
// cancel row.
func keyboardRows(buttons []InlineKeyboardButton, width int) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(buttons)/width+2)
	for i := 0; i < len(buttons); i += width {
		end := i + width
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}

	rows = append(rows, cancelRow)
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func walletIcon(t models.WalletType) string {
	switch t {
	case models.WalletTypeBank:
		return "🏦"
	case models.WalletTypeEWallet:
		return "📱"
	default:
		return "💵"
	}
}
