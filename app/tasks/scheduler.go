package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/feedcast/app/cfg"
	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/feed"
	"github.com/lysyi3m/feedcast/app/parser"
)

const (
	taskQueueCapacity = 300
	taskTimeout       = 5 * time.Minute
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	feedRepo         database.FeedRepository
	itemRepo         database.ItemRepository
	configCache      *feed.ConfigCache
	httpClient       *http.Client
	parser           *parser.Parser
	contentExtractor *feed.ContentExtractor
	userAgent        string
	interval         time.Duration
	workerCount      int
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface
}

func NewScheduler(configCache *feed.ConfigCache, feedRepo database.FeedRepository,
	itemRepo database.ItemRepository, httpClient *http.Client, feedParser *parser.Parser,
	contentExtractor *feed.ContentExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		feedRepo:         feedRepo,
		itemRepo:         itemRepo,
		configCache:      configCache,
		httpClient:       httpClient,
		parser:           feedParser,
		contentExtractor: contentExtractor,
		userAgent:        cfg.UserAgent,
		interval:         time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:      cfg.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, taskQueueCapacity),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go s.tick()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) tick() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.enqueueStartupTasks()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.enqueueDueTasks()
		}
	}
}

// enqueueStartupTasks registers every configured feed and kicks off an initial
// fetch for the enabled ones.
func (s *Scheduler) enqueueStartupTasks() {
	feedConfigs := s.configCache.GetConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No feed configurations found")
		return
	}

	slog.Debug("Scheduling startup tasks", "count", len(feedConfigs))

	for _, feedConfig := range feedConfigs {
		syncTask := NewSyncFeedConfigTask(feedConfig.Name, feedConfig, s.feedRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncFeedConfigTask", "feed", feedConfig.Name, "error", err)
			continue
		}

		if !feedConfig.Settings.Enabled {
			slog.Debug("Feed disabled, skipping initial fetch", "feed", feedConfig.Name)
			continue
		}

		processTask := NewProcessFeedTask(feedConfig.Name, feedConfig, s.httpClient, s.parser, s.feedRepo, s.itemRepo, s.userAgent)
		if err := s.EnqueueTask(processTask); err != nil {
			slog.Warn("Failed to enqueue ProcessFeedTask", "feed", feedConfig.Name, "error", err)
		}
	}
}

// enqueueDueTasks schedules a fetch for every enabled feed whose refresh
// interval has elapsed, plus a content extraction pass where configured.
func (s *Scheduler) enqueueDueTasks() {
	feedConfigs := s.configCache.GetEnabledConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No enabled feed configurations found")
		return
	}

	for _, feedConfig := range feedConfigs {
		feedRow, err := s.feedRepo.GetFeed(feedConfig.Name)
		if err != nil {
			slog.Warn("Failed to load feed, skipping", "feed", feedConfig.Name, "error", err)
			continue
		}
		if feedRow == nil {
			slog.Warn("Feed not registered yet, skipping", "feed", feedConfig.Name)
			continue
		}

		now := time.Now().UTC()
		if feedRow.NextFetchAt == nil || !feedRow.NextFetchAt.After(now) {
			processTask := NewProcessFeedTask(feedConfig.Name, feedConfig, s.httpClient, s.parser, s.feedRepo, s.itemRepo, s.userAgent)
			if err := s.EnqueueTask(processTask); err != nil {
				slog.Warn("Failed to enqueue ProcessFeedTask", "feed", feedConfig.Name, "error", err)
			}
		} else {
			slog.Debug("Feed not due for refresh", "feed", feedConfig.Name, "next_fetch_at", feedRow.NextFetchAt)
		}

		if feedConfig.Settings.ExtractContent {
			extractTask := NewExtractContentTask(feedConfig.Name, feedConfig, s.httpClient, s.contentExtractor, s.itemRepo, s.userAgent)
			if err := s.EnqueueTask(extractTask); err != nil {
				slog.Warn("Failed to enqueue ExtractContentTask", "feed", feedConfig.Name, "error", err)
			}
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Task execution failed",
		"worker_id", workerID,
		"type", string(task.GetType()),
		"id", task.GetID(),
		"retry_count", task.GetRetryCount(),
		"error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"max_retries", task.GetMaxRetries(),
			"last_error", err)
		return
	}

	task.IncrementRetryCount()
	s.scheduleRetry(task)
}

func (s *Scheduler) scheduleRetry(task TaskInterface) {
	delay := task.NextRetryDelay()

	slog.Warn("Task retry scheduled",
		"type", string(task.GetType()),
		"feed", task.GetFeedName(),
		"retry_count", task.GetRetryCount(),
		"max_retries", task.GetMaxRetries(),
		"delay", delay.String())

	go func() {
		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}

		if err := s.EnqueueTask(task); err != nil {
			slog.Error("Failed to re-enqueue task",
				"type", string(task.GetType()),
				"id", task.GetID(),
				"retry_count", task.GetRetryCount(),
				"error", err)
		}
	}()
}
