package notifier

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/Domenick1991/agencydesk/internal/domain"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const notificationsTopic = "stock-notifications"

var seedDestinations = []domain.CountryTicketData{
	{Country: "Turkey", Destination: "Istanbul"},
	{Country: "UAE", Destination: "Dubai"},
	{Country: "Egypt", Destination: "Sharm El Sheikh"},
	{Country: "Thailand", Destination: "Bangkok"},
	{Country: "Malaysia", Destination: "Kuala Lumpur"},
	{Country: "Azerbaijan", Destination: "Baku"},
	{Country: "Uzbekistan", Destination: "Tashkent"},
	{Country: "Georgia", Destination: "Tbilisi"},
}

// Simulator synthesizes periodic "low stock" display events per destination
// country. The data is decorative: it is seeded randomly at construction,
// perturbed in round-robin order on every tick and never reconciled with the
// inventory store. Events go out on an in-process pub/sub bus.
type Simulator struct {
	mu        sync.Mutex
	bus       *gochannel.GoChannel
	countries []domain.CountryTicketData
	next      int
	interval  time.Duration
	display   time.Duration
	ticker    *time.Ticker
	hideTimer *time.Timer
	stopCh    chan struct{}
	running   bool
	rnd       *rand.Rand
	now       func() time.Time
}

func NewSimulator(interval, display time.Duration) *Simulator {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	countries := make([]domain.CountryTicketData, len(seedDestinations))
	copy(countries, seedDestinations)
	for i := range countries {
		countries[i].TotalTickets = 50 + rnd.Intn(250)
		countries[i].AvailableTickets = rnd.Intn(countries[i].TotalTickets + 1)
		countries[i].LastUpdated = time.Now()
	}

	return &Simulator{
		bus:       gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		countries: countries,
		interval:  interval,
		display:   display,
		rnd:       rnd,
		now:       time.Now,
	}
}

// Countries returns a snapshot of the simulated destinations.
func (s *Simulator) Countries() []domain.CountryTicketData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CountryTicketData, len(s.countries))
	copy(out, s.countries)
	return out
}

// Subscribe registers a callback for every published notification and returns
// the matching unsubscribe function.
func (s *Simulator) Subscribe(fn func(domain.StockNotification)) (unsubscribe func(), err error) {
	ctx, cancel := context.WithCancel(context.Background())
	msgs, err := s.bus.Subscribe(ctx, notificationsTopic)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for msg := range msgs {
			var n domain.StockNotification
			if err := json.Unmarshal(msg.Payload, &n); err == nil {
				fn(n)
			}
			msg.Ack()
		}
	}()
	return cancel, nil
}

// Start fires one notification immediately and then one per interval.
// Calling Start on a running simulator is a no-op.
func (s *Simulator) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)
	s.mu.Unlock()

	s.tick()

	go func() {
		for {
			// A tick queued before Stop must not win the race below.
			select {
			case <-s.stopCh:
				return
			default:
			}
			select {
			case <-s.ticker.C:
				s.tick()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop halts the interval and any pending auto-hide timeout so no late event
// fires after shutdown.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
	s.ticker.Stop()
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
}

func (s *Simulator) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	c := &s.countries[s.next]
	s.next = (s.next + 1) % len(s.countries)

	// Small bounded perturbation; available stays within [0, total].
	delta := s.rnd.Intn(9) - 4
	c.AvailableTickets += delta
	if c.AvailableTickets < 0 {
		c.AvailableTickets = 0
	}
	if c.AvailableTickets > c.TotalTickets {
		c.AvailableTickets = c.TotalTickets
	}
	c.LastUpdated = s.now()

	n := domain.StockNotification{
		Type:             domain.StockNotificationLow,
		Country:          c.Country,
		Destination:      c.Destination,
		AvailableTickets: c.AvailableTickets,
		TotalTickets:     c.TotalTickets,
		At:               c.LastUpdated,
	}

	if s.hideTimer != nil {
		s.hideTimer.Stop()
	}
	s.hideTimer = time.AfterFunc(s.display, func() {
		// The timer may have already fired when Stop called Stop on it.
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if !running {
			return
		}
		s.publish(domain.StockNotification{
			Type:        domain.StockNotificationClear,
			Country:     n.Country,
			Destination: n.Destination,
			At:          s.now(),
		})
	})
	s.mu.Unlock()

	s.publish(n)
}

func (s *Simulator) publish(n domain.StockNotification) {
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	_ = s.bus.Publish(notificationsTopic, message.NewMessage(watermill.NewUUID(), payload))
}
