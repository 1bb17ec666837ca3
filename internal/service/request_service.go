package service

import (
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"
	"github.com/BassemGalal/QuickReceipt-clean/internal/repository"

	"github.com/google/uuid"
)

// Subject line of every hospitality request email.
const RequestSubject = "طلب استضافة"

// RequestInput carries the cleaned form fields of one submission.
type RequestInput struct {
	Owner      string
	Membership string
	Bookings   []string
	FromDate   string
	ToDate     string
	Guests     []string
	Notes      string
	Telegram   string
}

// RequestService contains the pending-request lifecycle: create on submission,
// decide on admin command.
type RequestService struct {
	requestRepo *repository.RequestRepository
}

// NewRequestService creates a new request service.
func NewRequestService(requestRepo *repository.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// Create assigns an id and creation timestamp, stores the request as pending
// and returns the stored record.
func (s *RequestService) Create(in RequestInput) (*model.Request, error) {
	req := &model.Request{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Subject:    RequestSubject,
		Telegram:   in.Telegram,
		Owner:      in.Owner,
		Membership: in.Membership,
		Guests:     in.Guests,
		Bookings:   in.Bookings,
		FromDate:   in.FromDate,
		ToDate:     in.ToDate,
		Notes:      in.Notes,
		Status:     model.StatusPending,
	}
	if err := s.requestRepo.Append(req); err != nil {
		return nil, err
	}
	return req, nil
}

// All returns the full stored collection in insertion order.
func (s *RequestService) All() []model.Request {
	return s.requestRepo.All()
}

// Pending returns only the requests still awaiting a decision.
func (s *RequestService) Pending() []model.Request {
	var pending []model.Request
	for _, req := range s.requestRepo.All() {
		if req.Status == model.StatusPending {
			pending = append(pending, req)
		}
	}
	return pending
}

// Approve marks the request matching the id prefix as approved.
func (s *RequestService) Approve(idPrefix string, actorChatID int64) (*model.Request, error) {
	return s.requestRepo.UpdateStatus(idPrefix, model.StatusApproved, actorChatID)
}

// Reject marks the request matching the id prefix as rejected.
func (s *RequestService) Reject(idPrefix string, actorChatID int64) (*model.Request, error) {
	return s.requestRepo.UpdateStatus(idPrefix, model.StatusRejected, actorChatID)
}
