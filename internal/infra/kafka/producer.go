package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipe-finder/internal/config"
	"recipe-finder/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 菜谱动态事件类型
const (
	EventFavoriteAdded   = "favorite_added"
	EventFavoriteRemoved = "favorite_removed"
	EventCommentCreated  = "comment_created"
)

// RecipeEvent 菜谱动态事件消息体，worker 据此刷新菜谱统计索引
type RecipeEvent struct {
	Type       string    `json:"type"`
	MealID     string    `json:"meal_id"`
	UserID     string    `json:"user_id"`
	Rating     *int      `json:"rating,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MessageWriter kafka.Writer 的写入能力
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers not configured")
	}
	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logWriteFailure,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// logWriteFailure 异步写入的结果回调，只记录失败的批次
func logWriteFailure(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	keys := make([]string, 0, len(messages))
	for _, m := range messages {
		keys = append(keys, string(m.Key))
	}
	logger.Warn("Kafka async write failed",
		zap.Int("messages", len(messages)),
		zap.Strings("keys", keys),
		zap.Error(err),
	)
}

// Producer 返回全局生产者，未初始化时为 nil
func Producer() *kafka.Writer {
	return producer
}

// Publisher 将菜谱事件写入固定 topic
type Publisher struct {
	writer MessageWriter
	topic  string
}

func NewPublisher(writer MessageWriter, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic}
}

// PublishRecipeEvent 以 meal_id 作为分区 key，同一菜谱的事件保持顺序
func (p *Publisher) PublishRecipeEvent(ctx context.Context, event *RecipeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte("meal-" + event.MealID),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send recipe event: %w", err)
	}

	logger.Debug("Recipe event sent",
		zap.String("type", event.Type),
		zap.String("meal_id", event.MealID),
		zap.String("topic", p.topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
