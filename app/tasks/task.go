package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeExtractContent TaskType = "extract_content"
	TaskTypeProcessFeed    TaskType = "process_feed"
	TaskTypeSyncFeedConfig TaskType = "sync_feed_config"
)

const (
	DefaultMaxRetries = 3
	maxRetryDelay     = 30 * time.Second
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetFeedName() string
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	NextRetryDelay() time.Duration
	Start()
	GetDuration() time.Duration
}

// Task carries the bookkeeping shared by all task kinds. Concrete tasks embed
// it and implement Execute.
type Task struct {
	ID         string
	Type       TaskType
	FeedName   string
	RetryCount int
	MaxRetries int
	StartedAt  *time.Time
}

func NewTask(taskType TaskType, feedName string) Task {
	id := fmt.Sprintf("%s-%s-%d-%04d", taskType, feedName, time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:         id,
		Type:       taskType,
		FeedName:   feedName,
		MaxRetries: DefaultMaxRetries,
	}
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetFeedName() string {
	return t.FeedName
}

func (t *Task) GetRetryCount() int {
	return t.RetryCount
}

func (t *Task) GetMaxRetries() int {
	return t.MaxRetries
}

func (t *Task) IncrementRetryCount() {
	t.RetryCount++
}

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

// NextRetryDelay doubles with every attempt, capped at maxRetryDelay.
func (t *Task) NextRetryDelay() time.Duration {
	if t.RetryCount < 1 {
		return time.Second
	}
	delay := time.Duration(1<<uint(t.RetryCount-1)) * time.Second
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}
