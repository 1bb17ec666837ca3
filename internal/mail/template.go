package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
	"github.com/BassemGalal/QuickReceipt-clean/internal/validation"
)

// emailTemplate is the fixed RTL body of the request email. Styles are inlined
// so webmail clients keep the layout.
var emailTemplate = template.Must(template.New("request").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
<meta charset="UTF-8">
<title>طلب استضافة جديد</title>
</head>
<body style="direction: rtl; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f8fafc; margin: 0; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 10px; overflow: hidden;">
  <div style="background: linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%); color: white; padding: 30px; text-align: center;">
    <h1 style="margin: 0; font-size: 24px; font-weight: bold;">🏠 طلب استضافة جديد</h1>
  </div>
  <div style="padding: 30px;">
    <div style="margin-bottom: 25px; padding: 20px; background-color: #f8fafc; border-radius: 8px; border-right: 4px solid #2563eb;">
      <h3 style="color: #1e40af; margin: 0 0 15px 0; font-size: 18px;">📋 معلومات المالك</h3>
      <p style="margin: 4px 0;"><b style="color: #374151;">اسم المالك:</b> {{.Owner}}</p>
      <p style="margin: 4px 0;"><b style="color: #374151;">رقم العضوية:</b> {{.Membership}}</p>
      <p style="margin: 4px 0;"><b style="color: #374151;">رقم التليجرام:</b> {{.Telegram}}</p>
    </div>
    <div style="margin-bottom: 25px; padding: 20px; background-color: #f8fafc; border-radius: 8px; border-right: 4px solid #2563eb;">
      <h3 style="color: #1e40af; margin: 0 0 15px 0; font-size: 18px;">📅 تفاصيل الحجز</h3>
      <p style="margin: 4px 0;"><b style="color: #374151;">أرقام الحجز:</b> {{.Bookings}}</p>
      <p style="margin: 4px 0;"><b style="color: #374151;">تاريخ الوصول:</b> {{.ArrivalDate}}</p>
      <p style="margin: 4px 0;"><b style="color: #374151;">تاريخ المغادرة:</b> {{.DepartureDate}}</p>
      <p style="margin: 4px 0;"><b style="color: #374151;">مدة الإقامة:</b> {{.Duration}}</p>
    </div>
    <div style="margin-bottom: 25px; padding: 20px; background-color: #f8fafc; border-radius: 8px; border-right: 4px solid #2563eb;">
      <h3 style="color: #1e40af; margin: 0 0 15px 0; font-size: 18px;">👥 معلومات الضيوف</h3>
      <p style="margin: 4px 0;"><b style="color: #374151;">أسماء الضيوف:</b> {{.Guests}}</p>
    </div>
    {{if .Notes}}
    <div style="background-color: #fef3c7; border: 1px solid #f59e0b; border-radius: 8px; padding: 20px; margin-top: 20px;">
      <h4 style="color: #92400e; margin: 0 0 10px 0;">📝 ملاحظات إضافية:</h4>
      <p>{{.Notes}}</p>
    </div>
    {{end}}
  </div>
  <div style="background-color: #f1f5f9; padding: 20px; text-align: center; color: #64748b; font-size: 14px;">
    <p>تم إرسال هذا الطلب من نظام طلبات الاستضافة</p>
    <p>التاريخ والوقت: {{.SentAt}}</p>
  </div>
</div>
</body>
</html>`))

type emailData struct {
	Owner         string
	Membership    string
	Telegram      string
	Bookings      string
	ArrivalDate   string
	DepartureDate string
	Duration      string
	Guests        string
	Notes         string
	SentAt        string
}

// joinOrDefault renders a free-text list field for the email body.
func joinOrDefault(items []string) string {
	if len(items) == 0 {
		return "غير محدد"
	}
	return strings.Join(items, " | ")
}

// BuildHTMLBody renders the request email. When the template fails for any
// reason the plain-text body is returned instead, so a send is always
// possible.
func BuildHTMLBody(req *model.Request) string {
	data := emailData{
		Owner:         req.Owner,
		Membership:    req.Membership,
		Telegram:      req.Telegram,
		Bookings:      joinOrDefault(req.Bookings),
		ArrivalDate:   validation.FormatDate(req.FromDate),
		DepartureDate: validation.FormatDate(req.ToDate),
		Duration:      validation.StayDuration(req.FromDate, req.ToDate),
		Guests:        joinOrDefault(req.Guests),
		Notes:         req.Notes,
		SentAt:        time.Now().Format("2006-01-02 15:04:05"),
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return BuildTextBody(req)
	}
	return buf.String()
}

// BuildTextBody is the plain-text fallback of the request email.
func BuildTextBody(req *model.Request) string {
	notes := req.Notes
	if notes == "" {
		notes = "لا توجد ملاحظات"
	}
	return fmt.Sprintf(`طلب استضافة جديد
==================

معلومات المالك:
- اسم المالك: %s
- رقم العضوية: %s
- رقم التليجرام: %s

تفاصيل الحجز:
- أرقام الحجز: %s
- تاريخ الوصول: %s
- تاريخ المغادرة: %s

معلومات الضيوف:
- الضيوف: %s

ملاحظات:
%s

--
تم إرسال هذا الطلب في: %s`,
		req.Owner, req.Membership, req.Telegram,
		joinOrDefault(req.Bookings), req.FromDate, req.ToDate,
		joinOrDefault(req.Guests), notes,
		time.Now().Format("2006-01-02 15:04:05"))
}
