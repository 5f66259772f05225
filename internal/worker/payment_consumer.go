package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
)

// MessageSource is the subset of kafka.Reader the consumer relies on.
type MessageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PaymentFacade exposes the subset of application functionality required by the consumer.
type PaymentFacade interface {
	OrderPaid(ctx context.Context, orderID, chargeRef, receiptURL string) error
}

type paymentSucceededEvent struct {
	OrderID    string `json:"orderId"`
	ChargeRef  string `json:"chargeRef"`
	ReceiptURL string `json:"receiptUrl"`
}

// PaymentConsumer reconciles payment-succeeded events against order state.
// Delivery is at-least-once: offsets are committed after handling, and
// redelivered events resolve through the idempotent reconciliation path.
type PaymentConsumer struct {
	source MessageSource
	facade PaymentFacade
	logger *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentConsumer constructs the payment event consumer.
func NewPaymentConsumer(source MessageSource, facade PaymentFacade, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{source: source, facade: facade, logger: logger}
}

// Start launches background consumption.
func (p *PaymentConsumer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(runCtx)
}

// Stop closes the source and waits for the consumer loop to finish.
func (p *PaymentConsumer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	_ = p.source.Close()
	p.wg.Wait()
}

func (p *PaymentConsumer) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		msg, err := p.source.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) || errors.Is(err, kafka.ErrGroupClosed) {
				// Reader was closed during shutdown.
				return
			}
			p.logger.Error("fetch payment event failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if !p.handleMessage(ctx, msg) {
			// Leave the offset uncommitted so the broker redelivers;
			// reconciliation is idempotent.
			continue
		}

		if err := p.source.CommitMessages(ctx, msg); err != nil {
			p.logger.Error("commit payment event failed", slog.String("error", err.Error()))
		}
	}
}

// handleMessage reports whether the message offset should be committed.
func (p *PaymentConsumer) handleMessage(ctx context.Context, msg kafka.Message) bool {
	var event paymentSucceededEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		p.logger.Error("malformed payment event skipped", slog.String("error", err.Error()))
		return true
	}

	err := p.facade.OrderPaid(ctx, event.OrderID, event.ChargeRef, event.ReceiptURL)
	switch {
	case err == nil:
		p.logger.Info("order paid",
			slog.String("order_id", event.OrderID),
			slog.String("charge_ref", event.ChargeRef),
		)
		return true
	case errors.Is(err, domainErrors.ErrNotFound):
		p.logger.Warn("payment event for unknown order skipped", slog.String("order_id", event.OrderID))
		return true
	default:
		p.logger.Error("payment reconciliation failed",
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return false
	}
}
