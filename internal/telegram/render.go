package telegram

import (
	"fmt"
	"strings"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/ledger"
)

// renderer turns state machine notifications into chat messages. It mirrors
// what a physical terminal would show on its display, so spoken prompts and
// rendered cards arrive as separate messages.
type renderer struct {
	bot *Bot

	screen atm.Screen
}

var _ atm.Notifier = (*renderer)(nil)

func (r *renderer) ScreenChanged(s atm.Screen) {
	r.screen = s

	switch s {
	case atm.ScreenWelcome:
		r.bot.sendMessage("🏧 VoiceBank ATM\nSay \"start\" to begin.")
	case atm.ScreenPinEntry:
		r.bot.sendMessage("🔐 Enter your 4-digit PIN.")
	case atm.ScreenMenu:
		r.bot.sendMessage("📋 Main menu\n· withdraw\n· deposit\n· balance\n· change pin\n· history\n· exit")
	case atm.ScreenWithdraw:
		r.bot.sendMessage("💵 Withdrawal\nSay the amount you want to withdraw.")
	case atm.ScreenDeposit:
		r.bot.sendMessage("💰 Deposit\nSay the amount you want to deposit.")
	case atm.ScreenResult:
		r.bot.sendMessage("✅ Transaction complete. Say \"done\" to return to the menu.")
	case atm.ScreenPinChange:
		r.bot.sendMessage("🔐 Say your new 4-digit PIN.")
	}
	// balance and history screens render through their own notifications
}

func (r *renderer) PINChanged(entered string) {
	if r.screen != atm.ScreenPinEntry && r.screen != atm.ScreenPinChange {
		return
	}
	masked := strings.Repeat("●", len(entered)) + strings.Repeat("–", atm.PINLength-len(entered))
	r.bot.sendMessage("PIN: " + masked)
}

func (r *renderer) AmountChanged(amount int64) {
	if amount <= 0 {
		return
	}
	r.bot.sendMessage(fmt.Sprintf("Amount: ₦%s", atm.FormatAmount(amount)))
}

func (r *renderer) BalanceChanged(balance int64) {
	r.bot.sendMessage(fmt.Sprintf("Balance: ₦%s", atm.FormatAmount(balance)))
}

func (r *renderer) HistoryChanged(records []ledger.Record) {
	if r.screen != atm.ScreenHistory {
		return
	}
	if len(records) == 0 {
		r.bot.sendMessage("🧾 No transactions yet.")
		return
	}
	var sb strings.Builder
	sb.WriteString("🧾 Recent transactions\n")
	for _, rec := range records {
		icon := "➖"
		if rec.Kind == ledger.KindDeposit {
			icon = "➕"
		}
		fmt.Fprintf(&sb, "%s %s ₦%s · %s → ₦%s\n",
			icon, rec.Kind, atm.FormatAmount(rec.Amount),
			rec.Time.Format("Jan 2 15:04"), atm.FormatAmount(rec.BalanceAfter))
	}
	r.bot.sendMessage(strings.TrimRight(sb.String(), "\n"))
}
