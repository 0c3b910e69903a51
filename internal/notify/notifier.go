package notify

import (
	"encoding/json"
	"fmt"

	"github.com/stayloop/hotel-bookings/internal/mailer"
	"github.com/stayloop/hotel-bookings/pkg/events"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

// Notifier consumes booking events and emails the guest. It runs in-process;
// a failed or slow send never touches the request path.
type Notifier struct {
	bus    events.Subscriber
	mailer mailer.Service
}

func New(bus events.Subscriber, m mailer.Service) *Notifier {
	return &Notifier{bus: bus, mailer: m}
}

// Start registers the queue subscriptions. The queue group keeps delivery
// single-shot when several instances run.
func (n *Notifier) Start() error {
	if err := n.bus.QueueSubscribe(events.BookingCreated, "notify", n.onBookingCreated); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.BookingCreated, err)
	}
	if err := n.bus.QueueSubscribe(events.BookingCanceled, "notify", n.onBookingCanceled); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.BookingCanceled, err)
	}
	return nil
}

func (n *Notifier) onBookingCreated(msg *events.Message) {
	var event events.BookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("failed to decode booking created event", "error", err)
		return
	}

	subject := "Your booking is confirmed"
	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking #%d is confirmed: %d guest(s), check-in %s, check-out %s.\n",
		event.UserPseudo, event.BookingID, event.Guests,
		event.CheckInDate.Format("2006-01-02"), event.CheckOutDate.Format("2006-01-02"),
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking <b>#%d</b> is confirmed: %d guest(s), check-in %s, check-out %s.</p>",
		event.UserPseudo, event.BookingID, event.Guests,
		event.CheckInDate.Format("2006-01-02"), event.CheckOutDate.Format("2006-01-02"),
	)

	if err := n.mailer.Send(event.UserEmail, event.UserPseudo, subject, text, html); err != nil {
		logger.Error("failed to send booking confirmation", "error", err, "booking_id", event.BookingID)
	}
}

func (n *Notifier) onBookingCanceled(msg *events.Message) {
	var event events.BookingCanceledEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("failed to decode booking canceled event", "error", err)
		return
	}

	logger.Info("booking canceled", "booking_id", event.BookingID, "user_id", event.UserID)
}
