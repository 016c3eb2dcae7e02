package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/kafka"
	"github.com/Domenick1991/agencydesk/internal/storage"
	"github.com/google/uuid"
)

// BookingAccess is the surface the HTTP handlers consume.
type BookingAccess interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ValidateUser(ctx context.Context, username, password string) (*domain.User, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	AddBooking(ctx context.Context, b domain.Booking) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, patch BookingPatch) (Outcome, error)
	DeleteBooking(ctx context.Context, id string) (Outcome, error)
	SearchBookings(ctx context.Context, f SearchFilter) ([]domain.Booking, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) ([]domain.ReportRow, error)
	ExportCSV(ctx context.Context) (string, error)
	ExportJSON(ctx context.Context, f SearchFilter) ([]byte, error)
}

// CredentialVerifier compares a presented password with the stored one.
// The default implementation is an exact compare; a hashing scheme can be
// substituted without touching the store contract.
type CredentialVerifier interface {
	Verify(presented, stored string) bool
}

type PlainVerifier struct{}

func (PlainVerifier) Verify(presented, stored string) bool {
	return presented == stored
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// SearchFilter fields are independently optional; a zero field passes
// everything through.
type SearchFilter struct {
	Name          string               `json:"name,omitempty"`
	DateFrom      *time.Time           `json:"dateFrom,omitempty"`
	DateTo        *time.Time           `json:"dateTo,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus,omitempty"`
	Airline       string               `json:"airline,omitempty"`
}

// BookingPatch carries the fields of an update; nil pointers are left alone.
type BookingPatch struct {
	CustomerName   *string               `json:"customerName,omitempty"`
	CustomerPhone  *string               `json:"customerPhone,omitempty"`
	CustomerEmail  *string               `json:"customerEmail,omitempty"`
	PassportNumber *string               `json:"passportNumber,omitempty"`
	FlightDate     *time.Time            `json:"flightDate,omitempty"`
	Route          *string               `json:"route,omitempty"`
	Airline        *string               `json:"airline,omitempty"`
	PNRNumber      *string               `json:"pnrNumber,omitempty"`
	PassengerCount *int                  `json:"passengerCount,omitempty"`
	CostPrice      *float64              `json:"costPrice,omitempty"`
	SellingPrice   *float64              `json:"sellingPrice,omitempty"`
	PaymentStatus  *domain.PaymentStatus `json:"paymentStatus,omitempty"`
	PaidAmount     *float64              `json:"paidAmount,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
}

// BookingStore owns the booking and user collections. Every operation reads
// the whole collection, works on the in-memory copy and writes it back; the
// mutex serializes those read-modify-write cycles across handlers.
type BookingStore struct {
	mu          sync.Mutex
	storage     storage.Storage
	verifier    CredentialVerifier
	producer    Producer
	eventsTopic string
	now         func() time.Time
}

type BookingStoreOption func(*BookingStore)

func WithBookingProducer(p Producer, topic string) BookingStoreOption {
	return func(s *BookingStore) {
		s.producer = p
		s.eventsTopic = topic
	}
}

func WithVerifier(v CredentialVerifier) BookingStoreOption {
	return func(s *BookingStore) {
		s.verifier = v
	}
}

func WithBookingClock(now func() time.Time) BookingStoreOption {
	return func(s *BookingStore) {
		s.now = now
	}
}

func NewBookingStore(st storage.Storage, opts ...BookingStoreOption) *BookingStore {
	store := &BookingStore{
		storage:  st,
		verifier: PlainVerifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// The two fixed operator accounts, written on first access of an empty user
// collection.
var seedUsers = []domain.User{
	{ID: "1", Username: "admin", Password: "admin123", Role: domain.RoleOwner, Name: "Agency Owner"},
	{ID: "2", Username: "manager", Password: "manager123", Role: domain.RoleManager, Name: "Sales Manager"},
}

func (s *BookingStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers(ctx)
}

// ValidateUser returns nil when no account matches; absence is a valid
// outcome, not a failure.
func (s *BookingStore) ValidateUser(ctx context.Context, username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username && s.verifier.Verify(password, users[i].Password) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *BookingStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		// An absent collection is an empty one; callers serialize the
		// result as a JSON array.
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (s *BookingStore) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			b := bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

// AddBooking assigns the id (unless the caller supplied a PNR-style one) and
// the creation timestamp, appends and persists.
func (s *BookingStore) AddBooking(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := s.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	bookings = append(bookings, b)
	if err := s.saveBookings(ctx, bookings); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", b)
	return &b, nil
}

func (s *BookingStore) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}

	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		applyBookingPatch(&bookings[i], patch)
		bookings[i].UpdatedAt = s.now()
		if err := s.saveBookings(ctx, bookings); err != nil {
			return OutcomeNotFound, err
		}
		s.publish(ctx, "booking_updated", bookings[i])
		return OutcomeOK, nil
	}
	return OutcomeNotFound, nil
}

func (s *BookingStore) DeleteBooking(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}

	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		removed := bookings[i]
		bookings = append(bookings[:i], bookings[i+1:]...)
		if err := s.saveBookings(ctx, bookings); err != nil {
			return OutcomeNotFound, err
		}
		s.publish(ctx, "booking_deleted", removed)
		return OutcomeOK, nil
	}
	return OutcomeNotFound, nil
}

// SearchBookings applies name substring (case-insensitive), flight-date
// bounds, exact payment status and exact airline, in that order. The result
// is always a fresh slice.
func (s *BookingStore) SearchBookings(ctx context.Context, f SearchFilter) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Booking, 0, len(bookings))
	needle := strings.ToLower(f.Name)
	for _, b := range bookings {
		if needle != "" && !strings.Contains(strings.ToLower(b.CustomerName), needle) {
			continue
		}
		if f.DateFrom != nil && b.FlightDate.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && b.FlightDate.After(*f.DateTo) {
			continue
		}
		if f.PaymentStatus != "" && b.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.Airline != "" && b.Airline != f.Airline {
			continue
		}
		matched = append(matched, b)
	}
	return matched, nil
}

func applyBookingPatch(b *domain.Booking, patch BookingPatch) {
	if patch.CustomerName != nil {
		b.CustomerName = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		b.CustomerPhone = *patch.CustomerPhone
	}
	if patch.CustomerEmail != nil {
		b.CustomerEmail = *patch.CustomerEmail
	}
	if patch.PassportNumber != nil {
		b.PassportNumber = *patch.PassportNumber
	}
	if patch.FlightDate != nil {
		b.FlightDate = *patch.FlightDate
	}
	if patch.Route != nil {
		b.Route = *patch.Route
	}
	if patch.Airline != nil {
		b.Airline = *patch.Airline
	}
	if patch.PNRNumber != nil {
		b.PNRNumber = *patch.PNRNumber
	}
	if patch.PassengerCount != nil {
		b.PassengerCount = *patch.PassengerCount
	}
	if patch.CostPrice != nil {
		b.CostPrice = *patch.CostPrice
	}
	if patch.SellingPrice != nil {
		b.SellingPrice = *patch.SellingPrice
	}
	if patch.PaymentStatus != nil {
		b.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaidAmount != nil {
		b.PaidAmount = *patch.PaidAmount
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
}

func (s *BookingStore) loadBookings(ctx context.Context) ([]domain.Booking, error) {
	data, err := s.storage.Load(ctx, storage.KeyBookings)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingStore) saveBookings(ctx context.Context, bookings []domain.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := s.storage.Save(ctx, storage.KeyBookings, data); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}

func (s *BookingStore) loadUsers(ctx context.Context) ([]domain.User, error) {
	data, err := s.storage.Load(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if data != nil {
		var users []domain.User
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		if len(users) > 0 {
			return users, nil
		}
	}

	seeded := make([]domain.User, len(seedUsers))
	copy(seeded, seedUsers)
	payload, err := json.Marshal(seeded)
	if err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	if err := s.storage.Save(ctx, storage.KeyUsers, payload); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return seeded, nil
}

func (s *BookingStore) publish(ctx context.Context, eventType string, b domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		Route:         b.Route,
		Airline:       b.Airline,
		PaymentStatus: string(b.PaymentStatus),
		SellingPrice:  b.SellingPrice,
		OccurredAt:    s.now(),
	}
	_ = s.producer.Publish(ctx, s.eventsTopic, b.ID, event)
}

var _ BookingAccess = (*BookingStore)(nil)
