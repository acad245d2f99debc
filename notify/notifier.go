// Package notify delivers OTP codes and order events. Callers never wait on
// delivery; failures are logged.
package notify

//go:generate mockgen -source=notifier.go -destination=mock_notifier.go -package=notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Routing keys for order events
const (
	RKOrderCreated       = "order.created"
	RKOrderStatusChanged = "order.status_changed"
	RKCustomerOTP        = "customer.otp"
)

// OrderEvent carries enough of an order for downstream consumers
type OrderEvent struct {
	OrderID     string `json:"order_id"`
	DisplayID   string `json:"display_id"`
	VendorID    string `json:"vendor_id"`
	CustomerID  string `json:"customer_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	ReadyTime   int    `json:"ready_time"`
}

// Notifier is the delivery channel: log, RabbitMQ, or a test double
type Notifier interface {
	SendOTP(ctx context.Context, phone string, otp int) error
	PublishOrderEvent(ctx context.Context, key string, ev OrderEvent) error
}

// Dispatcher runs notifier calls on their own goroutines
type Dispatcher struct {
	n       Notifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{n: n, timeout: timeout}
}

func (d *Dispatcher) OTP(phone string, otp int) {
	d.goSend(RKCustomerOTP, func(ctx context.Context) error {
		return d.n.SendOTP(ctx, phone, otp)
	})
}

func (d *Dispatcher) OrderEvent(key string, ev OrderEvent) {
	d.goSend(key, func(ctx context.Context) error {
		return d.n.PublishOrderEvent(ctx, key, ev)
	})
}

// Wait blocks until every in-flight send has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) goSend(what string, send func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Printf("[notify] %s delivery failed: %v", what, err)
		}
	}()
}

// LogNotifier writes deliveries to the process log
type LogNotifier struct{}

func NewLog() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) SendOTP(_ context.Context, phone string, otp int) error {
	log.Printf("[notify] otp %d -> %s", otp, phone)
	return nil
}

func (LogNotifier) PublishOrderEvent(_ context.Context, key string, ev OrderEvent) error {
	log.Printf("[notify] %s order=%s status=%s total=%s", key, ev.DisplayID, ev.Status, ev.TotalAmount)
	return nil
}
