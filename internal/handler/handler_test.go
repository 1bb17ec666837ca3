package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/mail"
	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
	"github.com/BassemGalal/QuickReceipt-clean/internal/repository"
	"github.com/BassemGalal/QuickReceipt-clean/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	To, Subject, HTML string
	Attachment        *mail.Attachment
}

// fakeMailer captures sends instead of talking to Gmail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, htmlBody string, attachment *mail.Attachment) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: htmlBody, Attachment: attachment})
	return nil
}

type fakeReceipts struct {
	written []*model.Request
}

func (f *fakeReceipts) WriteReceipt(req *model.Request) (string, error) {
	f.written = append(f.written, req)
	return "receipt.pdf", nil
}

type fakeNotifier struct {
	notified []*model.Request
}

func (f *fakeNotifier) NotifyAdmins(req *model.Request) {
	f.notified = append(f.notified, req)
}

type testEnv struct {
	router   *gin.Engine
	requests *service.RequestService
	mailer   *fakeMailer
	receipts *fakeReceipts
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	requests := service.NewRequestService(repository.NewRequestRepository(filepath.Join(dir, "pending_replies.json")))
	mailer := &fakeMailer{}
	receipts := &fakeReceipts{}
	notifier := &fakeNotifier{}
	h := NewHandler(requests, mailer, receipts, notifier, "admin@example.com", dir)

	router := gin.New()
	router.Use(sessions.Sessions("hospitality", cookie.NewStore([]byte("test-secret"))))
	router.POST("/submit", h.Submit)
	router.GET("/pending", h.Pending)
	router.GET("/health", h.Health)

	return &testEnv{router: router, requests: requests, mailer: mailer, receipts: receipts, notifier: notifier}
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

func validForm() map[string][]string {
	return map[string][]string{
		"owner":      {"Ali"},
		"membership": {"123"},
		"telegram":   {"01012345678"},
		"fromDate":   {day(1)},
		"toDate":     {day(6)},
		"booking":    {"B-1", "B-2"},
		"guest":      {"Mona"},
		"notes":      {"بجوار المسبح"},
	}
}

func postForm(t *testing.T, router *gin.Engine, fields map[string][]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitCreatesPendingRequestAndSendsMail(t *testing.T) {
	env := newTestEnv(t)

	rec := postForm(t, env.router, validForm(), "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "admin@example.com", env.mailer.sent[0].To)
	assert.Equal(t, service.RequestSubject, env.mailer.sent[0].Subject)
	assert.NotEmpty(t, env.mailer.sent[0].HTML)
	assert.Contains(t, env.mailer.sent[0].HTML, "Ali")

	all := env.requests.All()
	require.Len(t, all, 1)
	assert.Equal(t, model.StatusPending, all[0].Status)
	assert.Equal(t, "Ali", all[0].Owner)
	assert.Equal(t, []string{"B-1", "B-2"}, all[0].Bookings)
	assert.NotEmpty(t, all[0].ID)

	require.Len(t, env.receipts.written, 1)
	require.Len(t, env.notifier.notified, 1)
	assert.Equal(t, all[0].ID, env.notifier.notified[0].ID)
}

func TestSubmitWithAttachment(t *testing.T) {
	env := newTestEnv(t)

	rec := postForm(t, env.router, validForm(), "booking.pdf", []byte("%PDF-fake"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	require.Len(t, env.mailer.sent, 1)
	require.NotNil(t, env.mailer.sent[0].Attachment)
	assert.Equal(t, "booking.pdf", env.mailer.sent[0].Attachment.Filename)
}

func TestSubmitRejectsDisallowedAttachment(t *testing.T) {
	env := newTestEnv(t)

	rec := postForm(t, env.router, validForm(), "malware.exe", []byte("MZ"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.mailer.sent)
	assert.Empty(t, env.requests.All())
}

func TestSubmitValidationRejectsBeforeSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string][]string)
	}{
		{"missing owner", func(f map[string][]string) { f["owner"] = []string{""} }},
		{"missing membership", func(f map[string][]string) { f["membership"] = []string{" "} }},
		{"bad phone", func(f map[string][]string) { f["telegram"] = []string{"12345"} }},
		{"missing dates", func(f map[string][]string) { f["fromDate"] = []string{""} }},
		{"past start", func(f map[string][]string) { f["fromDate"] = []string{day(-1)} }},
		{"end before start", func(f map[string][]string) { f["toDate"] = []string{day(0)} }},
		{"stay too long", func(f map[string][]string) { f["toDate"] = []string{day(40)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			form := validForm()
			tt.mutate(form)

			rec := postForm(t, env.router, form, "", nil)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Empty(t, env.mailer.sent, "no mail on validation failure")
			assert.Empty(t, env.requests.All(), "no record on validation failure")
		})
	}
}

func TestSubmitMailFailureStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = assert.AnError

	rec := postForm(t, env.router, validForm(), "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.requests.All())
	assert.Empty(t, env.notifier.notified)
}

func TestPendingReturnsFullCollection(t *testing.T) {
	env := newTestEnv(t)
	postForm(t, env.router, validForm(), "", nil)
	postForm(t, env.router, validForm(), "", nil)

	req := httptest.NewRequest(http.MethodGet, "/pending", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.NotEmpty(t, payload["timestamp"])
}
