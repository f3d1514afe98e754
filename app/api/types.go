package api

import (
	"github.com/lysyi3m/feedcast/app/database"
	"github.com/lysyi3m/feedcast/app/feed"
	"github.com/lysyi3m/feedcast/app/tasks"
)

type GeneratorInterface interface {
	Run(feed database.Feed, items []database.Item) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	feedRepo    database.FeedRepository
	itemRepo    database.ItemRepository
	generator   GeneratorInterface
	digest      *feed.Digest
	configCache *feed.ConfigCache
	scheduler   tasks.TaskSchedulerInterface
}
