package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Dequeue when no task arrived within the
// poll timeout.
var ErrQueueEmpty = errors.New("notify queue empty")

// RedisQueue is a simple at-least-once task queue on a Redis list. Tasks
// that exhaust their retries go to the <queue>:dead list instead of being
// dropped.
type RedisQueue struct {
	client *redis.Client
	queue  string
}

func NewRedisQueue(client *redis.Client, queue string) *RedisQueue {
	return &RedisQueue{client: client, queue: queue}
}

func (q *RedisQueue) Enqueue(ctx context.Context, task ConfirmationTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next task.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*ConfirmationTask, error) {
	res, err := q.client.BRPop(ctx, timeout, q.queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQueueEmpty
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}
	// BRPop returns [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("dequeue task: unexpected reply of %d elements", len(res))
	}

	var task ConfirmationTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

// Retry puts the task back with its attempt counter bumped.
func (q *RedisQueue) Retry(ctx context.Context, task ConfirmationTask) error {
	task.Attempts++
	return q.Enqueue(ctx, task)
}

// DeadLetter parks a task that exhausted its retries.
func (q *RedisQueue) DeadLetter(ctx context.Context, task ConfirmationTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.queue+":dead", payload).Err(); err != nil {
		return fmt.Errorf("dead-letter task: %w", err)
	}
	return nil
}
