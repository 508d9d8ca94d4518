package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipe-finder/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler 处理菜谱事件的回调函数
type EventHandler func(ctx context.Context, event *RecipeEvent) error

// StartRecipeEventConsumer 启动菜谱事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartRecipeEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka recipe event consumer stopped")
	}()

	logger.Info("Kafka recipe event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		event, err := DecodeRecipeEvent(msg.Value)
		if err != nil {
			logger.Error("Failed to decode recipe event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		logger.Info("Received recipe event",
			zap.String("type", event.Type),
			zap.String("meal_id", event.MealID),
		)

		if err := handler(ctx, event); err != nil {
			logger.Error("Failed to handle recipe event",
				zap.String("meal_id", event.MealID),
				zap.Error(err),
			)
		}
	}
}

// DecodeRecipeEvent 解析事件消息，缺少 meal_id 的消息视为无效
func DecodeRecipeEvent(value []byte) (*RecipeEvent, error) {
	var event RecipeEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, err
	}
	if event.MealID == "" {
		return nil, fmt.Errorf("recipe event without meal_id")
	}
	return &event, nil
}
