// Package bot is the Telegram side of the system: admin commands over the
// pending collection and status notifications back to requesters.
package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
	"github.com/BassemGalal/QuickReceipt-clean/internal/repository"
	"github.com/BassemGalal/QuickReceipt-clean/internal/service"
	"github.com/BassemGalal/QuickReceipt-clean/internal/validation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the outbound half of the Telegram API. *tgbotapi.BotAPI satisfies
// it; tests substitute a capturing fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot dispatches inbound updates and pushes outbound notifications.
type Bot struct {
	sender   Sender
	requests *service.RequestService
	chatMap  *repository.ChatMapRepository
	adminIDs []int64
}

// New creates the bot. An empty adminIDs list leaves the admin commands open
// to every chat (documented prototype behavior, see config.Config).
func New(sender Sender, requests *service.RequestService, chatMap *repository.ChatMapRepository, adminIDs []int64) *Bot {
	return &Bot{
		sender:   sender,
		requests: requests,
		chatMap:  chatMap,
		adminIDs: adminIDs,
	}
}

// HandleUpdate processes one inbound update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.reply(chatID, service.WelcomeText)
		case "help":
			b.reply(chatID, service.HelpText)
		case "pending":
			b.handlePending(chatID)
		case "approve":
			b.handleDecision(chatID, msg.CommandArguments(), model.StatusApproved)
		case "reject":
			b.handleDecision(chatID, msg.CommandArguments(), model.StatusRejected)
		}
		return
	}

	b.handleText(chatID, msg.Text)
}

func (b *Bot) handlePending(chatID int64) {
	if !b.isAdmin(chatID) {
		b.reply(chatID, "❌ ليس لديك صلاحية لاستخدام هذا الأمر")
		return
	}
	b.reply(chatID, service.PendingListMessage(b.requests.Pending()))
}

func (b *Bot) handleDecision(chatID int64, args, status string) {
	if !b.isAdmin(chatID) {
		b.reply(chatID, "❌ ليس لديك صلاحية لاستخدام هذا الأمر")
		return
	}
	prefix := strings.TrimSpace(args)
	if prefix == "" {
		verb := "approve"
		if status == model.StatusRejected {
			verb = "reject"
		}
		b.reply(chatID, fmt.Sprintf("❌ يرجى تحديد رقم الطلب\nمثال: /%s 12345678", verb))
		return
	}

	var (
		req *model.Request
		err error
	)
	if status == model.StatusApproved {
		req, err = b.requests.Approve(prefix, chatID)
	} else {
		req, err = b.requests.Reject(prefix, chatID)
	}
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ لم يتم العثور على طلب برقم %s", prefix))
		return
	}

	if status == model.StatusApproved {
		b.reply(chatID, fmt.Sprintf("✅ تمت الموافقة على الطلب %s...", shortPrefix(prefix)))
	} else {
		b.reply(chatID, fmt.Sprintf("❌ تم رفض الطلب %s...", shortPrefix(prefix)))
	}
	b.NotifyRequester(req, status)
}

// handleText treats a recognizable Egyptian phone number as a
// self-registration of "this chat belongs to this number".
func (b *Bot) handleText(chatID int64, text string) {
	text = strings.TrimSpace(text)
	if validation.ValidEgyptianPhone(text) {
		if err := b.chatMap.Register(text, chatID); err != nil {
			log.Printf("registering phone %s: %v", text, err)
			b.reply(chatID, "❌ حدث خطأ في تسجيل الرقم، حاول مرة أخرى")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ تم تسجيل رقم التليجرام: %s\nسيتم إرسال إشعارات طلبات الاستضافة إلى هذا الحساب.", text))
		return
	}
	b.reply(chatID, service.RegistrationHint)
}

// NotifyRequester pushes the decision notice to the chat registered for the
// request's phone number. No mapping means the requester never registered;
// that is a silent no-op.
func (b *Bot) NotifyRequester(req *model.Request, status string) {
	chatID, ok := b.chatMap.ChatIDFor(req.Telegram)
	if !ok {
		return
	}
	b.reply(chatID, service.DecisionMessage(req, status))
}

// NotifyAdmins announces a fresh submission to every configured admin chat.
// Without configured admins there is nobody to tell.
func (b *Bot) NotifyAdmins(req *model.Request) {
	for _, id := range b.adminIDs {
		b.reply(id, service.NewRequestMessage(req))
	}
}

// isAdmin gates the admin commands. An empty allow-list allows everyone.
func (b *Bot) isAdmin(chatID int64) bool {
	if len(b.adminIDs) == 0 {
		return true
	}
	for _, id := range b.adminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

// reply sends one HTML-mode message, logging failures instead of propagating
// them; a lost chat message never breaks the command loop.
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.sender.Send(msg); err != nil {
		log.Printf("sending telegram message to %d: %v", chatID, err)
	}
}

func shortPrefix(prefix string) string {
	if len(prefix) > 8 {
		return prefix[:8]
	}
	return prefix
}
