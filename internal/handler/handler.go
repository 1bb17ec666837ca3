package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/mail"
	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
	"github.com/BassemGalal/QuickReceipt-clean/internal/service"
	"github.com/BassemGalal/QuickReceipt-clean/internal/validation"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MailSender delivers one outbound message; satisfied by *mail.Gateway.
type MailSender interface {
	Send(to, subject, htmlBody string, attachment *mail.Attachment) error
}

// ReceiptWriter persists a PDF receipt; satisfied by *pdf.Generator.
type ReceiptWriter interface {
	WriteReceipt(req *model.Request) (string, error)
}

// AdminNotifier announces a stored request to the admin chats; satisfied by
// *bot.Bot.
type AdminNotifier interface {
	NotifyAdmins(req *model.Request)
}

// Handler carries the dependencies of the web endpoint.
type Handler struct {
	Requests  *service.RequestService
	Mail      MailSender
	Receipts  ReceiptWriter
	Notifier  AdminNotifier // nil when no bot token is configured
	Recipient string
	UploadDir string
}

// NewHandler creates a new Handler with its dependencies injected.
func NewHandler(requests *service.RequestService, mailer MailSender, receipts ReceiptWriter,
	notifier AdminNotifier, recipient, uploadDir string) *Handler {
	return &Handler{
		Requests:  requests,
		Mail:      mailer,
		Receipts:  receipts,
		Notifier:  notifier,
		Recipient: recipient,
		UploadDir: uploadDir,
	}
}

// Index handler for GET / - renders the hospitality request form with any
// flash messages from the previous submission.
func (h *Handler) Index(c *gin.Context) {
	session := sessions.Default(c)
	errors := session.Flashes("error")
	successes := session.Flashes("success")
	_ = session.Save()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"errors":    errors,
		"successes": successes,
	})
}

// Submit handler for POST /submit - the whole submission pipeline: validate,
// build the email, send it, store the pending record, then best-effort
// extras (upload copy, PDF receipt, admin chat notice). Steps after the mail
// send are not rolled back when a later one fails.
func (h *Handler) Submit(c *gin.Context) {
	owner := validation.SanitizeInput(c.PostForm("owner"))
	membership := validation.SanitizeInput(c.PostForm("membership"))
	bookings := cleanList(c.PostFormArray("booking"))
	fromDate := strings.TrimSpace(c.PostForm("fromDate"))
	toDate := strings.TrimSpace(c.PostForm("toDate"))
	guests := cleanList(c.PostFormArray("guest"))
	notes := validation.SanitizeInput(c.PostForm("notes"))
	telegram := strings.TrimSpace(c.PostForm("telegram"))

	// Validation failures reject the submission before any side effect.
	if owner == "" {
		h.redirectWithFlash(c, "error", "اسم المالك مطلوب")
		return
	}
	if membership == "" {
		h.redirectWithFlash(c, "error", "رقم العضوية مطلوب")
		return
	}
	if telegram == "" || !validation.ValidEgyptianPhone(telegram) {
		h.redirectWithFlash(c, "error", "رقم التليجرام غير صحيح. يجب أن يبدأ بـ 01 ويتكون من 10-11 رقم")
		return
	}
	if fromDate == "" || toDate == "" {
		h.redirectWithFlash(c, "error", "تواريخ الإقامة مطلوبة")
		return
	}
	if !validation.ValidDateRange(fromDate, toDate) {
		h.redirectWithFlash(c, "error", "تواريخ الإقامة غير صالحة. يجب ألا تتجاوز الإقامة 30 يوماً وألا تبدأ في الماضي")
		return
	}

	attachment, err := h.readAttachment(c)
	if err != nil {
		log.Printf("reading upload: %v", err)
		h.redirectWithFlash(c, "error", "حدث خطأ في رفع الملف")
		return
	}
	if attachment != nil && !validation.AllowedFile(attachment.Filename) {
		h.redirectWithFlash(c, "error", "نوع الملف غير مسموح به")
		return
	}

	record := &model.Request{
		Owner:      owner,
		Membership: membership,
		Guests:     guests,
		Bookings:   bookings,
		FromDate:   fromDate,
		ToDate:     toDate,
		Notes:      notes,
		Telegram:   telegram,
	}
	htmlBody := mail.BuildHTMLBody(record)

	if err := h.Mail.Send(h.Recipient, service.RequestSubject, htmlBody, attachment); err != nil {
		log.Printf("sending request email: %v", err)
		h.redirectWithFlash(c, "error", "حدث خطأ في إرسال البريد الإلكتروني. يرجى المحاولة مرة أخرى.")
		return
	}

	stored, err := h.Requests.Create(service.RequestInput{
		Owner:      owner,
		Membership: membership,
		Bookings:   bookings,
		FromDate:   fromDate,
		ToDate:     toDate,
		Guests:     guests,
		Notes:      notes,
		Telegram:   telegram,
	})
	if err != nil {
		// The email is already on its way; the record just was not kept.
		log.Printf("storing pending request: %v", err)
		h.redirectWithFlash(c, "error", "حدث خطأ غير متوقع. يرجى المحاولة مرة أخرى.")
		return
	}

	if attachment != nil {
		h.saveUpload(attachment)
	}
	if _, err := h.Receipts.WriteReceipt(stored); err != nil {
		log.Printf("generating pdf receipt: %v", err)
	}
	if h.Notifier != nil {
		h.Notifier.NotifyAdmins(stored)
	}

	h.redirectWithFlash(c, "success", "تم إرسال الطلب بنجاح! سيتم التواصل معك قريباً.")
}

// Pending handler for GET /pending - returns the full request collection.
func (h *Handler) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, h.Requests.All())
}

// Health handler for GET /health - liveness payload.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// readAttachment pulls the optional upload into memory. A request without a
// file is not an error.
func (h *Handler) readAttachment(c *gin.Context) (*mail.Attachment, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Filename == "" {
		return nil, nil
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &mail.Attachment{Filename: fileHeader.Filename, Content: content}, nil
}

// saveUpload keeps a copy of the attachment under a unique name. Best effort.
func (h *Handler) saveUpload(att *mail.Attachment) {
	path := filepath.Join(h.UploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(att.Filename)))
	if err := os.WriteFile(path, att.Content, 0o644); err != nil {
		log.Printf("saving upload %s: %v", path, err)
	}
}

// redirectWithFlash stores one flash message and sends the browser back to
// the form.
func (h *Handler) redirectWithFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		log.Printf("saving session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// cleanList trims list entries and drops the empty ones.
func cleanList(items []string) []string {
	var cleaned []string
	for _, item := range items {
		item = validation.SanitizeInput(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}
