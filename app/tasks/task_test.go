package tasks

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeProcessFeed, "test-feed")

	if task.ID == "" {
		t.Error("Expected task ID to be set")
	}
	if task.Type != TaskTypeProcessFeed {
		t.Errorf("Expected type '%s', got '%s'", TaskTypeProcessFeed, task.Type)
	}
	if task.GetFeedName() != "test-feed" {
		t.Errorf("Expected feed name 'test-feed', got '%s'", task.GetFeedName())
	}
	if task.GetRetryCount() != 0 {
		t.Errorf("Expected retry count 0, got %d", task.GetRetryCount())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}
}

func TestTaskIDsAreUnique(t *testing.T) {
	a := NewTask(TaskTypeProcessFeed, "feed-a")
	b := NewTask(TaskTypeProcessFeed, "feed-a")

	if a.ID == b.ID {
		t.Errorf("Expected unique task IDs, both got '%s'", a.ID)
	}
}

func TestTaskRetry(t *testing.T) {
	task := NewTask(TaskTypeSyncFeedConfig, "test-feed")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected task to be retryable at attempt %d", i)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected task to not be retryable after max retries")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTaskNextRetryDelay(t *testing.T) {
	task := NewTask(TaskTypeProcessFeed, "test-feed")

	expected := []time.Duration{
		1 * time.Second,
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}

	for _, want := range expected {
		if got := task.NextRetryDelay(); got != want {
			t.Errorf("Retry %d: expected delay %v, got %v", task.GetRetryCount(), want, got)
		}
		task.IncrementRetryCount()
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeExtractContent, "test-feed")

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before task start")
	}

	task.Start()
	time.Sleep(10 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after task start")
	}
}
