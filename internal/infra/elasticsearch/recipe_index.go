package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"recipe-finder/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// 热门排序方式
const (
	SortHot       = "hot"
	SortRating    = "rating"
	SortRelevance = "relevance"
)

// RecipeDoc ES 菜谱统计文档
type RecipeDoc struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Area          string    `json:"area"`
	Ingredients   []string  `json:"ingredients"`
	FavoriteCount int64     `json:"favorite_count"`
	CommentCount  int64     `json:"comment_count"`
	AverageRating float64   `json:"average_rating"`
	HotScore      float64   `json:"hot_score"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecipeQuery 热门菜谱检索条件
type RecipeQuery struct {
	Q        string
	Category string
	Sort     string
	Page     int
	PageSize int
}

// RecipeHit 单条命中
type RecipeHit struct {
	ID            string
	FavoriteCount int64
	CommentCount  int64
	AverageRating float64
	Highlight     map[string][]string
}

// RecipeHits 命中结果，按排序顺序
type RecipeHits struct {
	Hits  []RecipeHit
	Total int64
}

// IDs 命中的菜谱 ID
func (h *RecipeHits) IDs() []string {
	ids := make([]string, 0, len(h.Hits))
	for _, hit := range h.Hits {
		ids = append(ids, hit.ID)
	}
	return ids
}

// HotScore 收藏权重高于评论，评分放大评论贡献
func HotScore(favorites, comments int64, averageRating float64) float64 {
	return float64(favorites)*2.0 + float64(comments)*1.5 + averageRating*float64(comments)*0.5
}

// RecipeIndex 菜谱统计索引读写
type RecipeIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewRecipeIndex(client *elasticsearch.Client, index string) *RecipeIndex {
	if index == "" {
		index = "recipes"
	}
	return &RecipeIndex{client: client, index: index}
}

// IndexRecipe 写入（覆盖）单个菜谱文档
func (x *RecipeIndex) IndexRecipe(ctx context.Context, doc *RecipeDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Recipe synced to ES", zap.String("meal_id", doc.ID))
	return nil
}

// DeleteRecipe 删除菜谱文档，文档不存在不视为错误
func (x *RecipeIndex) DeleteRecipe(ctx context.Context, mealID string) error {
	resp, err := x.client.Delete(x.index, mealID, x.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndex 批量写入菜谱文档
func (x *RecipeIndex) BulkIndex(ctx context.Context, docs []RecipeDoc) (success, failed int, err error) {
	var buf bytes.Buffer
	for i := range docs {
		docBody, err := json.Marshal(&docs[i])
		if err != nil {
			failed++
			continue
		}
		meta, _ := json.Marshal(map[string]interface{}{
			"index": map[string]string{"_index": x.index, "_id": docs[i].ID},
		})
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(docBody)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return 0, failed, nil
	}

	resp, err := x.client.Bulk(bytes.NewReader(buf.Bytes()), x.client.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(docs), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(docs), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(docs), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchRecipes 查询热门菜谱
func (x *RecipeIndex) SearchRecipes(ctx context.Context, query *RecipeQuery) (*RecipeHits, error) {
	body, err := json.Marshal(BuildRecipeQuery(query))
	if err != nil {
		return nil, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
		x.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source    RecipeDoc           `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	hits := &RecipeHits{
		Hits:  make([]RecipeHit, 0, len(esResp.Hits.Hits)),
		Total: esResp.Hits.Total.Value,
	}
	for _, h := range esResp.Hits.Hits {
		hits.Hits = append(hits.Hits, RecipeHit{
			ID:            h.Source.ID,
			FavoriteCount: h.Source.FavoriteCount,
			CommentCount:  h.Source.CommentCount,
			AverageRating: h.Source.AverageRating,
			Highlight:     h.Highlight,
		})
	}
	return hits, nil
}

// BuildRecipeQuery 组装 ES 查询体
func BuildRecipeQuery(req *RecipeQuery) map[string]interface{} {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters := []interface{}{}
	if c := strings.TrimSpace(req.Category); c != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"category": c}})
	}

	boolQ := map[string]interface{}{"filter": filters}
	q := strings.TrimSpace(req.Q)
	if q != "" {
		boolQ["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q,
					"fields":   []string{"name^3", "ingredients", "area"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		}
	}

	var sortConfig []interface{}
	switch req.Sort {
	case SortRating:
		sortConfig = append(sortConfig,
			map[string]interface{}{"average_rating": map[string]string{"order": "desc"}},
			map[string]interface{}{"comment_count": map[string]string{"order": "desc"}},
		)
	case SortRelevance:
		sortConfig = append(sortConfig,
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"hot_score": map[string]string{"order": "desc"}},
		)
	default:
		sortConfig = append(sortConfig, map[string]interface{}{"hot_score": map[string]string{"order": "desc"}})
	}

	query := map[string]interface{}{
		"query":   map[string]interface{}{"bool": boolQ},
		"_source": []string{"id", "favorite_count", "comment_count", "average_rating"},
		"from":    (page - 1) * pageSize,
		"size":    pageSize,
		"sort":    sortConfig,
	}

	if q != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"name":        map[string]interface{}{},
				"ingredients": map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}

	return query
}
