package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/agencydesk/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, alert kafka.StockAlert) error {
	fmt.Printf("send low stock alert for %s (%s): %d of %d tickets left\n", alert.Country, alert.Destination, alert.AvailableTickets, alert.TotalTickets)
	return nil
}
