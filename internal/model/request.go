package model

// Request statuses. The store itself never checks transitions; the bot only
// moves pending requests to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request represents one hospitality submission awaiting an admin decision.
// JSON tags match the pending-requests file layout shared with the bot process.
type Request struct {
	ID         string   `json:"id"`
	Timestamp  string   `json:"timestamp"` // creation time, UTC RFC3339
	Subject    string   `json:"subject"`
	Telegram   string   `json:"telegram"` // requester's Egyptian phone number
	Owner      string   `json:"owner"`
	Membership string   `json:"membership"`
	Guests     []string `json:"guests"`
	Bookings   []string `json:"bookings"`
	FromDate   string   `json:"from_date"` // YYYY-MM-DD
	ToDate     string   `json:"to_date"`   // YYYY-MM-DD
	Notes      string   `json:"notes"`
	Status     string   `json:"status"`
	UpdatedBy  int64    `json:"updated_by,omitempty"` // chat id of the deciding admin
	UpdatedAt  string   `json:"updated_at,omitempty"`
}
