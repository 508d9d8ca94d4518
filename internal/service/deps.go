package service

import (
	"context"
	"io"
	"sync"
	"time"

	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/model"
	"recipe-finder/pkg/logger"

	"go.uber.org/zap"
)

// RecipeCatalog 远程菜谱目录
type RecipeCatalog interface {
	Search(ctx context.Context, term string) ([]model.Recipe, error)
	Lookup(ctx context.Context, id string) (*model.Recipe, error)
	FilterByCategory(ctx context.Context, category string) ([]model.Recipe, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// RecipeCache 按菜谱 ID 缓存目录数据
type RecipeCache interface {
	GetRecipe(ctx context.Context, id string) (*model.Recipe, bool)
	SetRecipe(ctx context.Context, recipe *model.Recipe)
}

// EventPublisher 菜谱动态事件发布
type EventPublisher interface {
	PublishRecipeEvent(ctx context.Context, event *infraKafka.RecipeEvent) error
}

// RecipeIndex 菜谱统计索引
type RecipeIndex interface {
	SearchRecipes(ctx context.Context, query *infraES.RecipeQuery) (*infraES.RecipeHits, error)
	IndexRecipe(ctx context.Context, doc *infraES.RecipeDoc) error
	BulkIndex(ctx context.Context, docs []infraES.RecipeDoc) (success, failed int, err error)
}

// TokenRevoker 登出令牌黑名单
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AvatarStorage 头像对象存储
type AvatarStorage interface {
	UploadAvatar(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

const (
	publishTimeout = 3 * time.Second
	eventQueueSize = 256
)

// eventQueue 由单个后台 goroutine 按入队顺序发布菜谱事件，用户操作不等待发布
type eventQueue struct {
	publisher EventPublisher
	events    chan *infraKafka.RecipeEvent
	pending   sync.WaitGroup
	start     sync.Once
}

// newEventQueue publisher 为 nil 时返回 nil，入队即丢弃
func newEventQueue(publisher EventPublisher) *eventQueue {
	if publisher == nil {
		return nil
	}
	return &eventQueue{
		publisher: publisher,
		events:    make(chan *infraKafka.RecipeEvent, eventQueueSize),
	}
}

// enqueue 不阻塞；队列已满时丢弃事件并记录日志
func (q *eventQueue) enqueue(event *infraKafka.RecipeEvent) {
	if q == nil {
		return
	}
	q.start.Do(func() { go q.run() })

	q.pending.Add(1)
	select {
	case q.events <- event:
	default:
		q.pending.Done()
		logger.Warn("Recipe event queue full, event dropped",
			zap.String("type", event.Type),
			zap.String("meal_id", event.MealID),
		)
	}
}

func (q *eventQueue) run() {
	for event := range q.events {
		q.publish(event)
		q.pending.Done()
	}
}

// publish 发布失败只记录日志，不影响用户操作
func (q *eventQueue) publish(event *infraKafka.RecipeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := q.publisher.PublishRecipeEvent(ctx, event); err != nil {
		logger.Warn("Publish recipe event failed",
			zap.String("type", event.Type),
			zap.String("meal_id", event.MealID),
			zap.Error(err),
		)
	}
}

// flush 等待已入队的事件发布完成
func (q *eventQueue) flush() {
	if q == nil {
		return
	}
	q.pending.Wait()
}
