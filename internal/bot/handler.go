// Package bot drives the ledger from a turn-based conversational interface.
//
// The messaging transport is an external collaborator: handlers consume
// already-mapped intents (menu selections, button presses, free text) and
// reply through the Sender interface. Webhook parsing does not happen here.
package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/catatduitmu/backend/internal/format"
	"github.com/catatduitmu/backend/internal/ledger"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/internal/reports"
	"github.com/catatduitmu/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sender delivers a text message to a conversation. Implementations wrap the
// actual messaging platform.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string, keyboard *InlineKeyboardMarkup) error
	EditMessage(ctx context.Context, chatID string, messageID int, text string, keyboard *InlineKeyboardMarkup) error
}

// Handler reacts to conversational intents.
type Handler struct {
	db       *gorm.DB
	sessions Store
	sender   Sender
	authURL  string
}

// NewHandler wires the bot against the database, a session store and a
// message sender. authURL is where unlinked users are sent to connect their
// account.
func NewHandler(db *gorm.DB, sessions Store, sender Sender, authURL string) *Handler {
	return &Handler{
		db:       db,
		sessions: sessions,
		sender:   sender,
		authURL:  authURL,
	}
}

// link resolves the account a Telegram user is connected to. It returns nil
// without error when the user is not linked yet.
func (h *Handler) link(telegramID string) (*models.TelegramLink, error) {
	var link models.TelegramLink
	err := h.db.Where(&models.TelegramLink{TelegramID: telegramID}).First(&link).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &link, nil
}

// HandleStart greets the user: linked users get the main menu, everyone else
// the login button.
func (h *Handler) HandleStart(ctx context.Context, chatID, telegramID string) error {
	link, err := h.link(telegramID)
	if err != nil {
		return err
	}

	if link == nil {
		text := "👋 <b>Selamat datang di Catat Duitmu Bot!</b>\n\n" +
			"Untuk menggunakan bot ini, silakan hubungkan akun Gmail Anda.\n\n" +
			"Klik tombol di bawah untuk login:"
		return h.sender.SendMessage(ctx, chatID, text, loginKeyboard(h.authURL))
	}

	text, err := h.mainMenuText(link.UserID)
	if err != nil {
		return err
	}

	return h.sender.SendMessage(ctx, chatID, text, mainMenuKeyboard)
}

// HandleMainMenu re-renders the main menu in place. It also serves as the
// cancel action: any active flow is cleared.
func (h *Handler) HandleMainMenu(ctx context.Context, chatID string, messageID int, telegramID string) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	err = h.sessions.Delete(ctx, telegramID)
	if err != nil {
		return err
	}

	text, err := h.mainMenuText(link.UserID)
	if err != nil {
		return err
	}

	return h.sender.EditMessage(ctx, chatID, messageID, text, mainMenuKeyboard)
}

// HandleWalletsList shows all wallets with their balances.
func (h *Handler) HandleWalletsList(ctx context.Context, chatID string, messageID int, telegramID string) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	wallets, err := h.wallets(link.UserID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("💳 <b>Dompet Saya</b>\n\n")

	if len(wallets) == 0 {
		b.WriteString("<i>Belum ada dompet. Tambahkan dompet baru!</i>")
	} else {
		for _, wallet := range wallets {
			fmt.Fprintf(&b, "%s <b>%s</b>\n   └ %s\n\n", walletIcon(wallet.Type), wallet.Name, format.Rupiah(wallet.Balance))
		}
	}

	return h.sender.EditMessage(ctx, chatID, messageID, b.String(), walletsListKeyboard(wallets))
}

// HandleWalletView shows a single wallet's details.
func (h *Handler) HandleWalletView(ctx context.Context, chatID string, messageID int, telegramID string, walletID uuid.UUID) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	var wallet models.Wallet
	err = h.db.First(&wallet, "id = ? AND user_id = ?", walletID, link.UserID).Error
	if err != nil {
		return h.sender.EditMessage(ctx, chatID, messageID, "❌ Dompet tidak ditemukan.", backToMenuKeyboard)
	}

	var count int64
	err = h.db.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count).Error
	if err != nil {
		return err
	}

	text := fmt.Sprintf(`%s <b>%s</b>

💳 Jenis: %s
💰 Saldo: %s
💵 Saldo awal: %s
📝 Jumlah transaksi: %d`,
		walletIcon(wallet.Type), wallet.Name, walletTypeLabel(wallet.Type),
		format.Rupiah(wallet.Balance), format.Rupiah(wallet.InitialBalance), count)

	return h.sender.EditMessage(ctx, chatID, messageID, text, backToMenuKeyboard)
}

// HandleTransactionStart begins an income or expense entry flow.
func (h *Handler) HandleTransactionStart(ctx context.Context, chatID string, messageID int, telegramID string, transactionType models.TransactionType) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	flow := FlowExpense
	title := "💸 <b>Input Pengeluaran</b>"
	if transactionType == models.TransactionTypeIncome {
		flow = FlowIncome
		title = "💰 <b>Input Pemasukan</b>"
	}

	err = h.sessions.Set(ctx, telegramID, Session{
		Flow:        flow,
		Step:        StepCategory,
		Transaction: &TransactionDraft{Type: transactionType},
	})
	if err != nil {
		return err
	}

	return h.sender.EditMessage(ctx, chatID, messageID, title+"\n\nPilih kategori:", categoriesKeyboard(transactionType))
}

// HandleCategorySelection records the chosen category and asks for the
// amount. The category must come from the fixed vocabulary.
func (h *Handler) HandleCategorySelection(ctx context.Context, chatID string, messageID int, telegramID string, transactionType models.TransactionType, category string) error {
	if !models.CategoryAllowed(transactionType, category) {
		return h.sender.EditMessage(ctx, chatID, messageID, invalidSessionText, backToMenuKeyboard)
	}

	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil {
		return err
	}
	if !ok || session.Transaction == nil {
		return h.sender.EditMessage(ctx, chatID, messageID, invalidSessionText, backToMenuKeyboard)
	}

	session.Transaction.Category = category
	session.Step = StepAmount
	err = h.sessions.Set(ctx, telegramID, session)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s <b>Kategori:</b> %s\n\nPilih atau ketik jumlah:", flowIcon(session.Flow), category)
	return h.sender.EditMessage(ctx, chatID, messageID, text, amountHintsKeyboard(fmt.Sprintf("%s_amount", session.Flow)))
}

// HandleAmountSelection records the chosen amount and asks for the wallet.
func (h *Handler) HandleAmountSelection(ctx context.Context, chatID string, messageID int, telegramID string, amount decimal.Decimal) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil {
		return err
	}
	if !ok || session.Transaction == nil {
		return h.sender.EditMessage(ctx, chatID, messageID, invalidSessionText, backToMenuKeyboard)
	}

	session.Transaction.Amount = amount
	session.Step = StepWallet
	err = h.sessions.Set(ctx, telegramID, session)
	if err != nil {
		return err
	}

	wallets, err := h.wallets(link.UserID)
	if err != nil {
		return err
	}

	if len(wallets) == 0 {
		return h.sender.EditMessage(ctx, chatID, messageID, "⚠️ <b>Belum ada dompet!</b>\n\nTambahkan dompet terlebih dahulu.", backToMenuKeyboard)
	}

	direction := "sumber"
	if session.Flow == FlowIncome {
		direction = "tujuan"
	}

	text := fmt.Sprintf("%s <b>Kategori:</b> %s\n💵 <b>Jumlah:</b> %s\n\nPilih dompet %s:",
		flowIcon(session.Flow), session.Transaction.Category, format.Rupiah(amount), direction)
	return h.sender.EditMessage(ctx, chatID, messageID, text, walletsKeyboard(wallets, fmt.Sprintf("%s_wallet", session.Flow)))
}

// HandleWalletSelection is the terminal step of a transaction flow: the
// transaction is committed and the session cleared. On a failed commit the
// session stays so the user can pick a wallet again.
func (h *Handler) HandleWalletSelection(ctx context.Context, chatID string, messageID int, telegramID string, walletID uuid.UUID) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil {
		return err
	}
	if !ok || session.Transaction == nil || session.Transaction.Category == "" || !session.Transaction.Amount.IsPositive() {
		return h.sender.EditMessage(ctx, chatID, messageID, invalidSessionText, backToMenuKeyboard)
	}

	transaction := models.Transaction{
		UserID:      link.UserID,
		WalletID:    walletID,
		Type:        session.Transaction.Type,
		Category:    session.Transaction.Category,
		Amount:      session.Transaction.Amount,
		Description: "Via Telegram Bot",
	}

	err = ledger.CreateTransaction(h.db, &transaction)
	if err != nil {
		log.Error().Err(err).Str("telegram-id", telegramID).Msg("bot: saving transaction failed")
		return h.sender.EditMessage(ctx, chatID, messageID, "❌ Gagal menyimpan transaksi. Silakan coba lagi.", backToMenuKeyboard)
	}

	var wallet models.Wallet
	walletName := "Unknown"
	newBalance := decimal.Zero
	if err := h.db.First(&wallet, "id = ?", walletID).Error; err == nil {
		walletName = wallet.Name
		newBalance = wallet.Balance
	}

	typeLabel, sign := "Pengeluaran", "-"
	if transaction.Type == models.TransactionTypeIncome {
		typeLabel, sign = "Pemasukan", "+"
	}

	text := fmt.Sprintf(`✅ <b>%s berhasil dicatat!</b>

📝 <b>Detail:</b>
• Kategori: %s
• Jumlah: %s%s
• Dompet: %s
• Saldo baru: %s`,
		typeLabel, transaction.Category, sign, format.Rupiah(transaction.Amount), walletName, format.Rupiah(newBalance))

	err = h.sender.EditMessage(ctx, chatID, messageID, text, backToMenuKeyboard)
	if err != nil {
		return err
	}

	return h.sessions.Delete(ctx, telegramID)
}

// HandleHistory shows the last 10 transactions.
func (h *Handler) HandleHistory(ctx context.Context, chatID string, messageID int, telegramID string) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	var transactions []models.Transaction
	err = h.db.Where(&models.Transaction{UserID: link.UserID}).
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Limit(10).
		Find(&transactions).Error
	if err != nil {
		return err
	}

	wallets, err := h.wallets(link.UserID)
	if err != nil {
		return err
	}

	names := make(map[uuid.UUID]string, len(wallets))
	for _, wallet := range wallets {
		names[wallet.ID] = wallet.Name
	}

	var b strings.Builder
	b.WriteString("📜 <b>Riwayat Transaksi</b>\n<i>10 transaksi terakhir</i>\n\n")

	if len(transactions) == 0 {
		b.WriteString("<i>Belum ada transaksi.</i>")
	} else {
		for _, t := range transactions {
			icon, sign := "📉", "-"
			if t.Type == models.TransactionTypeIncome {
				icon, sign = "📈", "+"
			}

			walletName, ok := names[t.WalletID]
			if !ok {
				walletName = "-"
			}

			fmt.Fprintf(&b, "%s %s%s\n   └ %s • %s\n   └ %s\n\n",
				icon, sign, format.Rupiah(t.Amount), t.Category, walletName, format.Date(t.Date))
		}
	}

	return h.sender.EditMessage(ctx, chatID, messageID, b.String(), backToMenuKeyboard)
}

// HandleReport shows the current month's totals and the top expense
// categories.
func (h *Handler) HandleReport(ctx context.Context, chatID string, messageID int, telegramID string) error {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return err
	}

	month := types.MonthOf(time.Now().In(time.UTC))
	transactions, err := reports.TransactionsInMonth(h.db, link.UserID, month)
	if err != nil {
		return err
	}

	income, expense := reports.PeriodTotals(transactions)
	topCategories := reports.CategoryBreakdown(transactions, models.TransactionTypeExpense, 5)

	var b strings.Builder
	b.WriteString("📊 <b>Laporan Bulan Ini</b>\n\n")
	fmt.Fprintf(&b, "📈 <b>Total Pemasukan:</b> %s\n", format.Rupiah(income))
	fmt.Fprintf(&b, "📉 <b>Total Pengeluaran:</b> %s\n", format.Rupiah(expense))
	fmt.Fprintf(&b, "💰 <b>Selisih:</b> %s\n\n", format.Rupiah(income.Sub(expense)))

	if len(topCategories) > 0 {
		b.WriteString("🏆 <b>Top Pengeluaran:</b>\n")
		for i, category := range topCategories {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, category.Category, format.Rupiah(category.Total))
		}
	}

	return h.sender.EditMessage(ctx, chatID, messageID, b.String(), backToMenuKeyboard)
}

// HandleAddWalletStart begins the wallet creation flow.
func (h *Handler) HandleAddWalletStart(ctx context.Context, chatID string, messageID int, telegramID string) error {
	err := h.sessions.Set(ctx, telegramID, Session{
		Flow:   FlowAddWallet,
		Step:   StepType,
		Wallet: &WalletDraft{},
	})
	if err != nil {
		return err
	}

	return h.sender.EditMessage(ctx, chatID, messageID, "➕ <b>Tambah Dompet Baru</b>\n\nPilih jenis dompet:", walletTypeKeyboard)
}

// HandleWalletTypeSelection records the wallet type and asks for the name.
func (h *Handler) HandleWalletTypeSelection(ctx context.Context, chatID string, messageID int, telegramID string, walletType models.WalletType) error {
	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil {
		return err
	}
	if !ok || session.Wallet == nil {
		return h.sender.EditMessage(ctx, chatID, messageID, invalidSessionText, backToMenuKeyboard)
	}

	session.Wallet.Type = walletType
	session.Step = StepName
	err = h.sessions.Set(ctx, telegramID, session)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("➕ <b>Tambah Dompet Baru</b>\n\n🏷️ Jenis: %s %s\n\n<i>Kirim nama dompet (contoh: BCA, GoPay, dll):</i>",
		walletIcon(walletType), walletTypeLabel(walletType))
	return h.sender.EditMessage(ctx, chatID, messageID, text, backToMenuKeyboard)
}

// HandleText consumes free-text input for the active flow. It returns false
// when no session is waiting for text, so the caller can treat the message
// as unrelated to any flow.
func (h *Handler) HandleText(ctx context.Context, chatID, telegramID, text string) (bool, error) {
	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil || !ok {
		return false, err
	}

	if session.Flow == FlowAddWallet && session.Step == StepName {
		return h.finishAddWallet(ctx, chatID, telegramID, session, text)
	}

	if (session.Flow == FlowIncome || session.Flow == FlowExpense) && session.Step == StepAmount {
		return h.textAmount(ctx, chatID, telegramID, text)
	}

	return false, nil
}

var nonDigits = regexp.MustCompile(`\D`)

// textAmount parses a typed amount. Everything except digits is stripped, so
// "50.000" and "Rp 50000" both work.
func (h *Handler) textAmount(ctx context.Context, chatID, telegramID, text string) (bool, error) {
	digits := nonDigits.ReplaceAllString(text, "")

	amount, err := decimal.NewFromString(digits)
	if err != nil || !amount.IsPositive() {
		return true, h.sender.SendMessage(ctx, chatID, "❌ Jumlah tidak valid. Masukkan angka yang benar.", nil)
	}

	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return false, err
	}

	session, ok, err := h.sessions.Get(ctx, telegramID)
	if err != nil || !ok || session.Transaction == nil {
		return false, err
	}

	session.Transaction.Amount = amount
	session.Step = StepWallet
	err = h.sessions.Set(ctx, telegramID, session)
	if err != nil {
		return true, err
	}

	wallets, err := h.wallets(link.UserID)
	if err != nil {
		return true, err
	}

	text = fmt.Sprintf("%s <b>Kategori:</b> %s\n💵 <b>Jumlah:</b> %s\n\nPilih dompet:",
		flowIcon(session.Flow), session.Transaction.Category, format.Rupiah(amount))
	return true, h.sender.SendMessage(ctx, chatID, text, walletsKeyboard(wallets, fmt.Sprintf("%s_wallet", session.Flow)))
}

// finishAddWallet is the terminal step of the wallet creation flow.
func (h *Handler) finishAddWallet(ctx context.Context, chatID, telegramID string, session Session, name string) (bool, error) {
	link, err := h.link(telegramID)
	if err != nil || link == nil {
		return false, err
	}

	wallet := models.Wallet{
		UserID: link.UserID,
		Name:   name,
		Type:   session.Wallet.Type,
	}

	err = h.db.Create(&wallet).Error
	if err != nil {
		log.Error().Err(err).Str("telegram-id", telegramID).Msg("bot: adding wallet failed")
		return true, h.sender.SendMessage(ctx, chatID, "❌ Gagal menambahkan dompet. Silakan coba lagi.", backToMenuKeyboard)
	}

	text := fmt.Sprintf("✅ <b>Dompet berhasil ditambahkan!</b>\n\n🏷️ Nama: %s\n💳 Jenis: %s", wallet.Name, wallet.Type)
	err = h.sender.SendMessage(ctx, chatID, text, backToMenuKeyboard)
	if err != nil {
		return true, err
	}

	return true, h.sessions.Delete(ctx, telegramID)
}

const invalidSessionText = "❌ Sesi tidak valid. Silakan mulai ulang."

// mainMenuText renders the dashboard header with the all-time assets and the
// current month's totals.
func (h *Handler) mainMenuText(userID string) (string, error) {
	wallets, err := h.wallets(userID)
	if err != nil {
		return "", err
	}

	month := types.MonthOf(time.Now().In(time.UTC))
	transactions, err := reports.TransactionsInMonth(h.db, userID, month)
	if err != nil {
		return "", err
	}

	income, expense := reports.PeriodTotals(transactions)

	return fmt.Sprintf(`📊 <b>Catat Duitmu</b>

👤 %s

💰 <b>Total Aset:</b> %s
📈 <b>Pemasukan Bulan Ini:</b> <code>+%s</code>
📉 <b>Pengeluaran Bulan Ini:</b> <code>-%s</code>

Pilih menu di bawah:`,
		userID, format.Rupiah(reports.TotalAssets(wallets)), format.Rupiah(income), format.Rupiah(expense)), nil
}

func (h *Handler) wallets(userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := h.db.Where(&models.Wallet{UserID: userID}).Order("datetime(created_at) DESC").Find(&wallets).Error
	return wallets, err
}

func flowIcon(flow Flow) string {
	if flow == FlowIncome {
		return "💰"
	}

	return "💸"
}

func walletTypeLabel(t models.WalletType) string {
	switch t {
	case models.WalletTypeBank:
		return "Bank"
	case models.WalletTypeEWallet:
		return "E-Wallet"
	default:
		return "Tunai"
	}
}
