// Package validation contains the pure input checks and display formatters
// used by the web form and the notification templates.
package validation

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	nonDigitRe      = regexp.MustCompile(`[^\d]`)
	egyptianPhoneRe = regexp.MustCompile(`^01[0-9]{8,9}$`)
	scriptTagRe     = regexp.MustCompile(`(?is)<script.*?</script>`)
	jsSchemeRe      = regexp.MustCompile(`(?i)javascript:`)
	eventAttrRe     = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// allowed attachment extensions for the request form upload.
var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true,
}

// ValidEgyptianPhone reports whether phone is an Egyptian mobile number:
// 10-11 digits starting with 01, ignoring any separator characters.
func ValidEgyptianPhone(phone string) bool {
	if phone == "" {
		return false
	}
	return egyptianPhoneRe.MatchString(nonDigitRe.ReplaceAllString(phone, ""))
}

// FormatPhone groups a normalized Egyptian number for display (0xx xxx xxxx).
// Anything else is returned as its bare digits.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if (len(digits) == 10 || len(digits) == 11) && strings.HasPrefix(digits, "01") {
		return fmt.Sprintf("%s %s %s", digits[:3], digits[3:6], digits[6:])
	}
	return digits
}

// ValidDateRange checks a requested stay: both dates must parse as YYYY-MM-DD,
// the start may not be in the past, the end must follow the start, and the stay
// may not exceed 30 days.
func ValidDateRange(fromDate, toDate string) bool {
	if fromDate == "" || toDate == "" {
		return false
	}
	start, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return false
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if start.Before(today) {
		return false
	}
	if !end.After(start) {
		return false
	}
	if end.Sub(start) > 30*24*time.Hour {
		return false
	}
	return true
}

// FileExtension returns the lowercased extension of filename without the dot,
// or "" when there is none.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// AllowedFile reports whether the attachment's extension is on the allow-list.
func AllowedFile(filename string) bool {
	return allowedExtensions[FileExtension(filename)]
}

// SanitizeInput escapes HTML and strips script remnants from free-text fields.
func SanitizeInput(text string) string {
	if text == "" {
		return ""
	}
	text = html.EscapeString(text)
	text = scriptTagRe.ReplaceAllString(text, "")
	text = jsSchemeRe.ReplaceAllString(text, "")
	text = eventAttrRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var arabicMonths = [13]string{
	"", "يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// FormatDate renders a YYYY-MM-DD date with its Arabic month name.
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	if date == "" {
		return "غير محدد"
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d", d.Day(), arabicMonths[d.Month()], d.Year())
}

// StayDuration renders the stay length between two dates in Arabic day-count
// wording (dual and plural forms differ).
func StayDuration(fromDate, toDate string) string {
	start, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return "غير محدد"
	}
	end, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return "غير محدد"
	}
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days == 1:
		return "يوم واحد"
	case days == 2:
		return "يومان"
	case days > 2 && days < 11:
		return fmt.Sprintf("%d أيام", days)
	default:
		return fmt.Sprintf("%d يوماً", days)
	}
}
