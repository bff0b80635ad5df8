package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"aura-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultEventStream is the stream key ledger events are appended to.
const DefaultEventStream = keyPrefix + "ledger:events"

// EventStream implements ports.EventPublisher by appending each event to a
// capped Redis stream. Consumers read it with XREAD or consumer groups.
type EventStream struct {
	client goredis.Cmdable
	stream string
	maxLen int64
}

// NewEventStream creates a publisher for stream, trimmed to roughly maxLen
// entries. maxLen <= 0 disables trimming.
func NewEventStream(client goredis.Cmdable, stream string, maxLen int64) *EventStream {
	if stream == "" {
		stream = DefaultEventStream
	}
	return &EventStream{client: client, stream: stream, maxLen: maxLen}
}

// PublishFundsLocked appends a FundsLocked event. amount carries smallest
// units and amount_decimal the 6-digit decimal string, as in webhook payloads.
func (s *EventStream) PublishFundsLocked(ctx context.Context, ev domain.FundsLocked) error {
	args := &goredis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"type":           domain.EventFundsLocked,
			"receipt_id":     ev.ReceiptID.Hex(),
			"merchant":       ev.Merchant.String(),
			"borrower":       ev.Borrower.String(),
			"amount":         strconv.FormatUint(uint64(ev.Amount), 10),
			"amount_decimal": ev.Amount.String(),
			"created_at":     ev.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis xadd %s: %w", s.stream, err)
	}
	return nil
}
