package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

// failingStorage simulates a backend write failure.
type failingStorage struct {
	storage.Storage
}

func (failingStorage) Save(ctx context.Context, key string, data []byte) error {
	return errors.New("quota exceeded")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testBooking() domain.Booking {
	return domain.Booking{
		CustomerName:   "Ivan Petrov",
		CustomerPhone:  "+7 900 000 00 00",
		CustomerEmail:  "ivan@example.com",
		FlightDate:     time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Route:          "Moscow - Istanbul",
		Airline:        "Turkish Airlines",
		PNRNumber:      "ABC123",
		PassengerCount: 2,
		CostPrice:      24000,
		SellingPrice:   31000,
		PaymentStatus:  domain.PaymentStatusPaid,
	}
}

func TestBookingStore_AddAndGet_RoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s := NewBookingStore(storage.NewMemory(), WithBookingClock(fixedClock(now)))
	ctx := context.Background()

	added, err := s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())

	got, err := s.GetBooking(ctx, added.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, *added, *got)
}

func TestBookingStore_AddBooking_KeepsCallerID(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())
	ctx := context.Background()

	b := testBooking()
	b.ID = "PNR-XYZ789"
	added, err := s.AddBooking(ctx, b)
	assert.NoError(t, err)
	assert.Equal(t, "PNR-XYZ789", added.ID)
}

func TestBookingStore_GetBooking_NotFound(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())

	got, err := s.GetBooking(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookingStore_UpdateBooking_MergesPatch(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 8, 2, 15, 30, 0, 0, time.UTC)
	clock := created
	s := NewBookingStore(storage.NewMemory(), WithBookingClock(func() time.Time { return clock }))
	ctx := context.Background()

	added, err := s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)

	clock = updated
	newAirline := "Aeroflot"
	newStatus := domain.PaymentStatusPartial
	paid := float64(12000)
	outcome, err := s.UpdateBooking(ctx, added.ID, BookingPatch{
		Airline:       &newAirline,
		PaymentStatus: &newStatus,
		PaidAmount:    &paid,
	})
	assert.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)

	got, err := s.GetBooking(ctx, added.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Aeroflot", got.Airline)
	assert.Equal(t, domain.PaymentStatusPartial, got.PaymentStatus)
	assert.Equal(t, float64(12000), got.PaidAmount)
	// untouched fields survive the merge
	assert.Equal(t, "Ivan Petrov", got.CustomerName)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, updated, got.UpdatedAt)
}

func TestBookingStore_UpdateBooking_NotFound(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())

	name := "nobody"
	outcome, err := s.UpdateBooking(context.Background(), "missing", BookingPatch{CustomerName: &name})
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
}

func TestBookingStore_DeleteBooking_RemovesExactlyOne(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())
	ctx := context.Background()

	first, err := s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)
	_, err = s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)

	outcome, err := s.DeleteBooking(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeOK, outcome)

	remaining, err := s.ListBookings(ctx)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.NotEqual(t, first.ID, remaining[0].ID)

	outcome, err = s.DeleteBooking(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	remaining, err = s.ListBookings(ctx)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestBookingStore_SearchBookings_Filters(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())
	ctx := context.Background()

	early := testBooking()
	early.CustomerName = "Anna Smirnova"
	early.FlightDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	early.Airline = "Aeroflot"
	early.PaymentStatus = domain.PaymentStatusPending
	_, err := s.AddBooking(ctx, early)
	assert.NoError(t, err)

	late := testBooking()
	late.FlightDate = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	_, err = s.AddBooking(ctx, late)
	assert.NoError(t, err)

	// case-insensitive name substring
	found, err := s.SearchBookings(ctx, SearchFilter{Name: "anna"})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Anna Smirnova", found[0].CustomerName)

	// date range
	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	found, err = s.SearchBookings(ctx, SearchFilter{DateFrom: &from})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, late.FlightDate, found[0].FlightDate)

	// exact payment status
	found, err = s.SearchBookings(ctx, SearchFilter{PaymentStatus: domain.PaymentStatusPending})
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	// exact airline
	found, err = s.SearchBookings(ctx, SearchFilter{Airline: "Aeroflot"})
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	// empty filter passes everything
	found, err = s.SearchBookings(ctx, SearchFilter{})
	assert.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestBookingStore_SearchBookings_Idempotent(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())
	ctx := context.Background()

	_, err := s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)

	filter := SearchFilter{Name: "ivan"}
	first, err := s.SearchBookings(ctx, filter)
	assert.NoError(t, err)
	second, err := s.SearchBookings(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	all, err := s.ListBookings(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingStore_ListBookings_EmptyCollectionIsNotNil(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())

	bookings, err := s.ListBookings(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestBookingStore_ListUsers_SeedsOnFirstAccess(t *testing.T) {
	mem := storage.NewMemory()
	s := NewBookingStore(mem)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, domain.RoleOwner, users[0].Role)
	assert.Equal(t, domain.RoleManager, users[1].Role)

	// seeded collection is persisted, not regenerated
	again, err := s.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, users, again)
}

func TestBookingStore_ValidateUser(t *testing.T) {
	s := NewBookingStore(storage.NewMemory())
	ctx := context.Background()

	user, err := s.ValidateUser(ctx, "admin", "admin123")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, domain.RoleOwner, user.Role)

	user, err = s.ValidateUser(ctx, "admin", "wrong")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.ValidateUser(ctx, "ghost", "admin123")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestBookingStore_AddBooking_StorageFailure(t *testing.T) {
	s := NewBookingStore(failingStorage{storage.NewMemory()})

	_, err := s.AddBooking(context.Background(), testBooking())
	assert.Error(t, err)
}

func TestBookingStore_AddBooking_PublishesEvent(t *testing.T) {
	mockProducer := &MockProducer{}
	s := NewBookingStore(storage.NewMemory(), WithBookingProducer(mockProducer, "backoffice-events"))
	ctx := context.Background()

	mockProducer.On("Publish", ctx, "backoffice-events", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.AddBooking(ctx, testBooking())
	assert.NoError(t, err)

	mockProducer.AssertExpectations(t)
}
