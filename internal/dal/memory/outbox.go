package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/coffee/internal/service/models/outbox"
)

// OutboxRepository is an in-memory implementation of IOutboxRepository.
type OutboxRepository struct {
	session *session
}

var _ ioutboxrepo.IOutboxRepository = (*OutboxRepository)(nil)

func (r *OutboxRepository) Insert(ctx context.Context, msg outbox.OutboxMessage) error {
	return r.session.write(func(v view) error {
		for _, existing := range v.outbox.all() {
			if existing.MessageID == msg.MessageID {
				return fmt.Errorf("outbox message %q: %w", msg.MessageID, ErrDuplicateKey)
			}
		}

		msg.ID = r.session.store.nextOutboxID.Add(1)
		v.outbox.put(msg.ID, msg)
		return nil
	})
}

func (r *OutboxRepository) GetPendingMessages(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]outbox.OutboxMessage, error) {
	var messages []outbox.OutboxMessage
	r.session.read(func(v view) {
		for _, msg := range v.outbox.all() {
			if !msg.NextRetryAt.After(now) && msg.RetryCount < msg.MaxRetries {
				messages = append(messages, msg)
			}
		}
	})

	// rows come ordered by id, a stable sort keeps it as the tiebreak
	slices.SortStableFunc(messages, func(a, b outbox.OutboxMessage) int {
		return a.NextRetryAt.Compare(b.NextRetryAt)
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id int64) error {
	return r.session.write(func(v view) error {
		v.outbox.remove(id)
		return nil
	})
}

func (r *OutboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	return r.session.write(func(v view) error {
		msg, ok := v.outbox.get(id)
		if !ok {
			return nil
		}

		msg.RetryCount = retryCount
		msg.LastError = lastError
		msg.NextRetryAt = nextRetryAt
		msg.UpdatedAt = time.Now()
		v.outbox.put(id, msg)
		return nil
	})
}
