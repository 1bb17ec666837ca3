package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
)

// Fixed chat texts. Messages are Telegram HTML; the bot sends them with
// ParseMode html.

// WelcomeText is the /start reply.
const WelcomeText = `🏠 مرحباً بك في نظام طلبات الاستضافة

هذا البوت يساعد في إدارة طلبات الاستضافة.

الأوامر المتاحة:
/help - عرض المساعدة
/pending - عرض الطلبات المعلقة (للمديرين)
/approve <رقم الطلب> - الموافقة على طلب (للمديرين)
/reject <رقم الطلب> - رفض طلب (للمديرين)`

// HelpText is the /help reply.
const HelpText = `📋 <b>مساعدة نظام طلبات الاستضافة</b>

<b>للمستخدمين العاديين:</b>
• يمكنك إرسال طلب استضافة من خلال الموقع الإلكتروني
• ستصلك إشعارات بحالة طلبك عبر هذا البوت

<b>للمديرين:</b>
• /pending - عرض جميع الطلبات المعلقة
• /approve [رقم الطلب] - الموافقة على طلب محدد
• /reject [رقم الطلب] - رفض طلب محدد

<b>ملاحظة:</b> تأكد من أن رقم التليجرام المستخدم في النموذج مطابق لرقم حسابك في التليجرام.`

// RegistrationHint is the reply to free text that is not a phone number.
const RegistrationHint = "مرحباً! يمكنك إرسال رقم التليجرام المصري الخاص بك لتسجيله في النظام.\n" +
	"أو استخدم الأوامر المتاحة: /help للمساعدة"

// notDefined fills list fields the requester left empty.
const notDefined = "غير محدد"

// pendingListLimit caps how many requests one /pending reply shows.
const pendingListLimit = 10

// joinOrDefault renders a free-text list for display.
func joinOrDefault(items []string) string {
	if len(items) == 0 {
		return notDefined
	}
	return strings.Join(items, " | ")
}

// notesOrDefault renders the notes field for display.
func notesOrDefault(notes string) string {
	if notes == "" {
		return "لا توجد ملاحظات"
	}
	return notes
}

// formatTimestamp shortens a stored RFC3339 timestamp for chat display.
// Unparseable values pass through unchanged.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04")
}

// shortID returns the id prefix shown to admins.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PendingListMessage renders the /pending reply: the first ten pending
// requests with their id prefixes and an overflow line beyond that.
func PendingListMessage(pending []model.Request) string {
	if len(pending) == 0 {
		return "📭 لا توجد طلبات معلقة حالياً"
	}
	var b strings.Builder
	b.WriteString("📋 <b>الطلبات المعلقة:</b>\n\n")
	for i, req := range pending {
		if i == pendingListLimit {
			break
		}
		fmt.Fprintf(&b, "<b>%d. طلب رقم:</b> %s...\n", i+1, shortID(req.ID))
		fmt.Fprintf(&b, "<b>المالك:</b> %s\n", req.Owner)
		fmt.Fprintf(&b, "<b>العضوية:</b> %s\n", req.Membership)
		fmt.Fprintf(&b, "<b>التاريخ:</b> %s - %s\n", req.FromDate, req.ToDate)
		fmt.Fprintf(&b, "<b>التليجرام:</b> %s\n", req.Telegram)
		fmt.Fprintf(&b, "<b>وقت الطلب:</b> %s\n", formatTimestamp(req.Timestamp))
		b.WriteString("➖➖➖➖➖➖➖➖➖\n\n")
	}
	if len(pending) > pendingListLimit {
		fmt.Fprintf(&b, "... و %d طلب آخر\n\n", len(pending)-pendingListLimit)
	}
	b.WriteString("💡 لإدارة الطلبات:\n")
	b.WriteString("• /approve [رقم الطلب] للموافقة\n")
	b.WriteString("• /reject [رقم الطلب] للرفض")
	return b.String()
}

// DecisionMessage renders the status-update notification pushed to the
// requester after an admin decision.
func DecisionMessage(req *model.Request, status string) string {
	statusText := "❌ تم رفض"
	closing := "📞 يمكنك التواصل معنا لمزيد من التفاصيل."
	if status == model.StatusApproved {
		statusText = "✅ تمت الموافقة على"
		closing = "🎉 يمكنك الآن الاستعداد لرحلتك!"
	}
	return fmt.Sprintf(`🏠 <b>تحديث حالة طلب الاستضافة</b>

%s طلبك للاستضافة

<b>تفاصيل الطلب:</b>
• <b>اسم المالك:</b> %s
• <b>رقم العضوية:</b> %s
• <b>تاريخ الإقامة:</b> %s - %s
• <b>الضيوف:</b> %s

%s`,
		statusText, req.Owner, req.Membership,
		req.FromDate, req.ToDate, joinOrDefault(req.Guests), closing)
}

// NewRequestMessage renders the notification pushed to admin chats when a
// fresh submission is stored.
func NewRequestMessage(req *model.Request) string {
	return fmt.Sprintf(`🆕 <b>طلب استضافة جديد</b>

<b>تفاصيل الطلب:</b>
• <b>اسم المالك:</b> %s
• <b>رقم العضوية:</b> %s
• <b>أرقام الحجز:</b> %s
• <b>تاريخ الإقامة:</b> %s - %s
• <b>الضيوف:</b> %s
• <b>رقم التليجرام:</b> %s
• <b>الملاحظات:</b> %s

💡 <b>لإدارة الطلب:</b>
• /approve %s للموافقة
• /reject %s للرفض`,
		req.Owner, req.Membership, joinOrDefault(req.Bookings),
		req.FromDate, req.ToDate, joinOrDefault(req.Guests),
		req.Telegram, notesOrDefault(req.Notes),
		shortID(req.ID), shortID(req.ID))
}
