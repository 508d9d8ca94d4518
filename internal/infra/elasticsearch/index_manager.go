package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-finder/pkg/logger"

	"go.uber.org/zap"
)

// RecipesIndexMapping recipes 统计索引的 mapping
const RecipesIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0,
		"analysis": {
			"analyzer": {
				"recipe_text": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"name": {
				"type": "text",
				"analyzer": "recipe_text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"category": {"type": "keyword"},
			"area": {"type": "keyword"},
			"ingredients": {"type": "text", "analyzer": "recipe_text"},
			"favorite_count": {"type": "long"},
			"comment_count": {"type": "long"},
			"average_rating": {"type": "float"},
			"hot_score": {"type": "float"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保索引存在，不存在则创建
func (x *RecipeIndex) EnsureIndex(ctx context.Context) error {
	resp, err := x.client.Indices.Exists(
		[]string{x.index},
		x.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch recipes index already exists", zap.String("index", x.index))
		return nil
	}

	resp, err = x.client.Indices.Create(
		x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(RecipesIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch recipes index created", zap.String("index", x.index))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func (x *RecipeIndex) InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return x.EnsureIndex(ctx)
}
