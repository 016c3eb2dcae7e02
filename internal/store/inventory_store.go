package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/Domenick1991/agencydesk/internal/kafka"
	"github.com/Domenick1991/agencydesk/internal/storage"
	"github.com/google/uuid"
)

// InventoryAccess is the surface the HTTP handlers consume.
type InventoryAccess interface {
	AddBulkPurchase(ctx context.Context, p BulkPurchase) (*domain.TicketInventory, error)
	UpdateInventory(ctx context.Context, id string, patch InventoryPatch) (Outcome, error)
	LockTickets(ctx context.Context, id string, n int) (Outcome, error)
	UnlockTickets(ctx context.Context, id string, n int) (Outcome, error)
	SellTickets(ctx context.Context, id string, n int) (Outcome, error)
	ListInventory(ctx context.Context) ([]domain.TicketInventory, error)
	ListInventoryForRole(ctx context.Context, role domain.Role) ([]domain.TicketInventory, error)
	InventoryStats(ctx context.Context) (*domain.TicketInventoryStats, error)
	DeleteInventory(ctx context.Context, id string) (Outcome, error)
	ExportCSV(ctx context.Context) (string, error)
}

// BulkPurchase describes a new batch; all stock starts available.
type BulkPurchase struct {
	Route              string             `json:"route"`
	Airline            string             `json:"airline"`
	FlightClass        domain.FlightClass `json:"flightClass"`
	Country            string             `json:"country"`
	Supplier           string             `json:"supplier"`
	Quantity           int                `json:"quantity"`
	PurchasePrice      float64            `json:"purchasePrice"`
	SuggestedSalePrice float64            `json:"suggestedSalePrice"`
	ValidFrom          time.Time          `json:"validFrom"`
	ValidTo            time.Time          `json:"validTo"`
	Notes              string             `json:"notes,omitempty"`
}

// InventoryPatch updates descriptive and pricing fields. The stock counters
// are deliberately absent: they only move through lock/unlock/sell.
type InventoryPatch struct {
	Route              *string             `json:"route,omitempty"`
	Airline            *string             `json:"airline,omitempty"`
	FlightClass        *domain.FlightClass `json:"flightClass,omitempty"`
	Country            *string             `json:"country,omitempty"`
	Supplier           *string             `json:"supplier,omitempty"`
	PurchasePrice      *float64            `json:"purchasePrice,omitempty"`
	SuggestedSalePrice *float64            `json:"suggestedSalePrice,omitempty"`
	ValidFrom          *time.Time          `json:"validFrom,omitempty"`
	ValidTo            *time.Time          `json:"validTo,omitempty"`
	IsLocked           *bool               `json:"isLocked,omitempty"`
	Notes              *string             `json:"notes,omitempty"`
}

type InventoryStore struct {
	mu          sync.Mutex
	storage     storage.Storage
	producer    Producer
	eventsTopic string
	seedSample  bool
	now         func() time.Time
}

type InventoryStoreOption func(*InventoryStore)

func WithInventoryProducer(p Producer, topic string) InventoryStoreOption {
	return func(s *InventoryStore) {
		s.producer = p
		s.eventsTopic = topic
	}
}

// WithSampleData seeds demonstration batches on first access of an empty
// collection.
func WithSampleData() InventoryStoreOption {
	return func(s *InventoryStore) {
		s.seedSample = true
	}
}

func WithInventoryClock(now func() time.Time) InventoryStoreOption {
	return func(s *InventoryStore) {
		s.now = now
	}
}

func NewInventoryStore(st storage.Storage, opts ...InventoryStoreOption) *InventoryStore {
	store := &InventoryStore{
		storage: st,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *InventoryStore) AddBulkPurchase(ctx context.Context, p BulkPurchase) (*domain.TicketInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := domain.TicketInventory{
		ID:                 uuid.NewString(),
		Route:              p.Route,
		Airline:            p.Airline,
		FlightClass:        p.FlightClass,
		Country:            p.Country,
		Supplier:           p.Supplier,
		ValidFrom:          p.ValidFrom,
		ValidTo:            p.ValidTo,
		PurchaseDate:       now,
		PurchasePrice:      p.PurchasePrice,
		SuggestedSalePrice: p.SuggestedSalePrice,
		TotalTickets:       p.Quantity,
		AvailableTickets:   p.Quantity,
		Notes:              p.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	items = append(items, item)
	if err := s.saveInventory(ctx, items); err != nil {
		return nil, err
	}

	s.publish(ctx, "inventory_created", item)
	return &item, nil
}

func (s *InventoryStore) UpdateInventory(ctx context.Context, id string, patch InventoryPatch) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		applyInventoryPatch(&items[i], patch)
		items[i].UpdatedAt = s.now()
		if err := s.saveInventory(ctx, items); err != nil {
			return OutcomeNotFound, err
		}
		s.publish(ctx, "inventory_updated", items[i])
		return OutcomeOK, nil
	}
	return OutcomeNotFound, nil
}

// LockTickets moves n tickets from available to locked. The whole call is
// all-or-nothing: an unmet precondition mutates nothing.
func (s *InventoryStore) LockTickets(ctx context.Context, id string, n int) (Outcome, error) {
	return s.transition(ctx, "tickets_locked", id, n, func(item *domain.TicketInventory, n int) bool {
		if item.AvailableTickets < n {
			return false
		}
		item.AvailableTickets -= n
		item.LockedTickets += n
		return true
	})
}

// UnlockTickets moves n tickets from locked back to available.
func (s *InventoryStore) UnlockTickets(ctx context.Context, id string, n int) (Outcome, error) {
	return s.transition(ctx, "tickets_unlocked", id, n, func(item *domain.TicketInventory, n int) bool {
		if item.LockedTickets < n {
			return false
		}
		item.LockedTickets -= n
		item.AvailableTickets += n
		return true
	})
}

// SellTickets moves n tickets from available to sold. Locked stock is never
// sold directly; it must be unlocked first.
func (s *InventoryStore) SellTickets(ctx context.Context, id string, n int) (Outcome, error) {
	return s.transition(ctx, "tickets_sold", id, n, func(item *domain.TicketInventory, n int) bool {
		if item.AvailableTickets < n {
			return false
		}
		item.AvailableTickets -= n
		item.SoldTickets += n
		return true
	})
}

func (s *InventoryStore) transition(ctx context.Context, eventType, id string, n int, move func(*domain.TicketInventory, int) bool) (Outcome, error) {
	if n <= 0 {
		return OutcomeInvalidTransition, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		if !move(&items[i], n) {
			return OutcomeInvalidTransition, nil
		}
		items[i].UpdatedAt = s.now()
		if err := s.saveInventory(ctx, items); err != nil {
			return OutcomeNotFound, err
		}
		s.publish(ctx, eventType, items[i])
		return OutcomeOK, nil
	}
	return OutcomeNotFound, nil
}

func (s *InventoryStore) ListInventory(ctx context.Context) ([]domain.TicketInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		// An absent collection is an empty one; callers serialize the
		// result as a JSON array.
		items = []domain.TicketInventory{}
	}
	return items, nil
}

// ListInventoryForRole hides administratively frozen batches from managers.
// Owners see everything.
func (s *InventoryStore) ListInventoryForRole(ctx context.Context, role domain.Role) ([]domain.TicketInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleOwner {
		if items == nil {
			items = []domain.TicketInventory{}
		}
		return items, nil
	}

	visible := make([]domain.TicketInventory, 0, len(items))
	for _, item := range items {
		if !item.IsLocked {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *InventoryStore) InventoryStats(ctx context.Context) (*domain.TicketInventoryStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.TicketInventoryStats{
		ByCountry: make(map[string]domain.CountryInventoryStats),
	}
	for _, item := range items {
		stats.TotalTickets += item.TotalTickets
		stats.AvailableTickets += item.AvailableTickets
		stats.LockedTickets += item.LockedTickets
		stats.SoldTickets += item.SoldTickets
		investment := float64(item.TotalTickets) * item.PurchasePrice
		stats.TotalInvestment += investment
		stats.PotentialRevenue += float64(item.AvailableTickets) * item.SuggestedSalePrice
		stats.ActualRevenue += float64(item.SoldTickets) * item.SuggestedSalePrice

		country := stats.ByCountry[item.Country]
		country.TotalTickets += item.TotalTickets
		country.AvailableTickets += item.AvailableTickets
		country.LockedTickets += item.LockedTickets
		country.SoldTickets += item.SoldTickets
		country.Investment += investment
		stats.ByCountry[item.Country] = country
	}
	return stats, nil
}

func (s *InventoryStore) DeleteInventory(ctx context.Context, id string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return OutcomeNotFound, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		removed := items[i]
		items = append(items[:i], items[i+1:]...)
		if err := s.saveInventory(ctx, items); err != nil {
			return OutcomeNotFound, err
		}
		s.publish(ctx, "inventory_deleted", removed)
		return OutcomeOK, nil
	}
	return OutcomeNotFound, nil
}

var inventoryCSVHeader = []string{
	"ID", "Route", "Airline", "Class", "Country", "Supplier",
	"Valid From", "Valid To", "Purchase Date",
	"Purchase Price", "Suggested Sale Price",
	"Total", "Available", "Locked", "Sold", "Batch Locked", "Notes",
}

func (s *InventoryStore) ExportCSV(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadInventory(ctx)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(inventoryCSVHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		record := []string{
			item.ID,
			item.Route,
			item.Airline,
			string(item.FlightClass),
			item.Country,
			item.Supplier,
			item.ValidFrom.Format("2006-01-02"),
			item.ValidTo.Format("2006-01-02"),
			item.PurchaseDate.Format("2006-01-02"),
			formatMoney(item.PurchasePrice),
			formatMoney(item.SuggestedSalePrice),
			strconv.Itoa(item.TotalTickets),
			strconv.Itoa(item.AvailableTickets),
			strconv.Itoa(item.LockedTickets),
			strconv.Itoa(item.SoldTickets),
			strconv.FormatBool(item.IsLocked),
			item.Notes,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

func applyInventoryPatch(item *domain.TicketInventory, patch InventoryPatch) {
	if patch.Route != nil {
		item.Route = *patch.Route
	}
	if patch.Airline != nil {
		item.Airline = *patch.Airline
	}
	if patch.FlightClass != nil {
		item.FlightClass = *patch.FlightClass
	}
	if patch.Country != nil {
		item.Country = *patch.Country
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	if patch.PurchasePrice != nil {
		item.PurchasePrice = *patch.PurchasePrice
	}
	if patch.SuggestedSalePrice != nil {
		item.SuggestedSalePrice = *patch.SuggestedSalePrice
	}
	if patch.ValidFrom != nil {
		item.ValidFrom = *patch.ValidFrom
	}
	if patch.ValidTo != nil {
		item.ValidTo = *patch.ValidTo
	}
	if patch.IsLocked != nil {
		item.IsLocked = *patch.IsLocked
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
}

func (s *InventoryStore) loadInventory(ctx context.Context) ([]domain.TicketInventory, error) {
	data, err := s.storage.Load(ctx, storage.KeyInventory)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if data != nil {
		var items []domain.TicketInventory
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode inventory: %w", err)
		}
		return items, nil
	}
	if !s.seedSample {
		return nil, nil
	}

	items := sampleInventory(s.now())
	if err := s.saveInventory(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryStore) saveInventory(ctx context.Context, items []domain.TicketInventory) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := s.storage.Save(ctx, storage.KeyInventory, data); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

func sampleInventory(now time.Time) []domain.TicketInventory {
	return []domain.TicketInventory{
		{
			ID:                 uuid.NewString(),
			Route:              "Moscow - Istanbul",
			Airline:            "Turkish Airlines",
			FlightClass:        domain.FlightClassEconomy,
			Country:            "Turkey",
			Supplier:           "Anex Tour",
			ValidFrom:          now,
			ValidTo:            now.AddDate(0, 3, 0),
			PurchaseDate:       now,
			PurchasePrice:      12000,
			SuggestedSalePrice: 16500,
			TotalTickets:       50,
			AvailableTickets:   50,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:                 uuid.NewString(),
			Route:              "Moscow - Dubai",
			Airline:            "Emirates",
			FlightClass:        domain.FlightClassBusiness,
			Country:            "UAE",
			Supplier:           "Coral Travel",
			ValidFrom:          now,
			ValidTo:            now.AddDate(0, 6, 0),
			PurchaseDate:       now,
			PurchasePrice:      45000,
			SuggestedSalePrice: 62000,
			TotalTickets:       20,
			AvailableTickets:   20,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
}

func (s *InventoryStore) publish(ctx context.Context, eventType string, item domain.TicketInventory) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.InventoryEvent{
		Type:             eventType,
		InventoryID:      item.ID,
		Route:            item.Route,
		Airline:          item.Airline,
		Country:          item.Country,
		TotalTickets:     item.TotalTickets,
		AvailableTickets: item.AvailableTickets,
		LockedTickets:    item.LockedTickets,
		SoldTickets:      item.SoldTickets,
		OccurredAt:       s.now(),
	}
	_ = s.producer.Publish(ctx, s.eventsTopic, item.ID, event)
}

var _ InventoryAccess = (*InventoryStore)(nil)
