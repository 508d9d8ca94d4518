package service

import (
	"context"
	"strings"
	"time"

	"recipe-finder/internal/api/dto"
	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/repository"
	"recipe-finder/pkg/logger"

	"go.uber.org/zap"
)

const (
	sourceElasticsearch = "elasticsearch"
	sourceDatabase      = "database"

	searchTimeout = 5 * time.Second
)

type SearchService struct {
	favoriteRepo *repository.FavoriteRepository
	commentRepo  *repository.CommentRepository
	recipes      *RecipeService
	index        RecipeIndex
}

// NewSearchService index 为 nil 时只走数据库统计
func NewSearchService(favoriteRepo *repository.FavoriteRepository, commentRepo *repository.CommentRepository, recipes *RecipeService, index RecipeIndex) *SearchService {
	return &SearchService{
		favoriteRepo: favoriteRepo,
		commentRepo:  commentRepo,
		recipes:      recipes,
		index:        index,
	}
}

// PopularRecipes 热门菜谱（ES 优先，失败则降级到 DB 收藏统计）
func (s *SearchService) PopularRecipes(ctx context.Context, userID string, req *dto.PopularRecipeRequest) (*dto.PopularRecipeData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	if s.index != nil {
		data, err := s.popularFromES(ctx, userID, req)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.popularFromDB(ctx, userID, req)
}

func (s *SearchService) popularFromES(ctx context.Context, userID string, req *dto.PopularRecipeRequest) (*dto.PopularRecipeData, error) {
	sctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	hits, err := s.index.SearchRecipes(sctx, &infraES.RecipeQuery{
		Q:        req.Q,
		Category: req.Category,
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	cards := s.recipes.Enrich(ctx, userID, s.recipes.GetRecipes(ctx, hits.IDs()))
	byID := make(map[string]infraES.RecipeHit, len(hits.Hits))
	for _, h := range hits.Hits {
		byID[h.ID] = h
	}

	items := make([]dto.PopularRecipeInfo, 0, len(cards))
	for _, card := range cards {
		hit := byID[card.ID]
		items = append(items, dto.PopularRecipeInfo{
			RecipeCard:     card,
			TotalFavorites: hit.FavoriteCount,
			TotalComments:  hit.CommentCount,
			Highlight:      hit.Highlight,
		})
	}

	return &dto.PopularRecipeData{
		Recipes:    items,
		Total:      hits.Total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages(hits.Total, req.PageSize),
		Source:     sourceElasticsearch,
	}, nil
}

// popularFromDB 按收藏数排序，不支持关键词；分类只在当前页内过滤
func (s *SearchService) popularFromDB(ctx context.Context, userID string, req *dto.PopularRecipeRequest) (*dto.PopularRecipeData, error) {
	skip := (req.Page - 1) * req.PageSize
	rows, err := s.favoriteRepo.TopMeals(ctx, skip, req.PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.favoriteRepo.CountFavoritedMeals(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MealID)
		counts[row.MealID] = row.Total
	}

	recipes := s.recipes.GetRecipes(ctx, ids)
	if c := strings.TrimSpace(req.Category); c != "" {
		filtered := recipes[:0]
		for _, r := range recipes {
			if strings.EqualFold(r.Category, c) {
				filtered = append(filtered, r)
			}
		}
		recipes = filtered
	}

	cards := s.recipes.Enrich(ctx, userID, recipes)
	items := make([]dto.PopularRecipeInfo, 0, len(cards))
	for _, card := range cards {
		items = append(items, dto.PopularRecipeInfo{
			RecipeCard:     card,
			TotalFavorites: counts[card.ID],
		})
	}

	return &dto.PopularRecipeData{
		Recipes:    items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages(total, req.PageSize),
		Source:     sourceDatabase,
	}, nil
}

// BuildRecipeDoc 汇总菜谱的收藏与评论统计
func (s *SearchService) BuildRecipeDoc(ctx context.Context, mealID string) (*infraES.RecipeDoc, error) {
	recipe, err := s.recipes.Lookup(ctx, mealID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.favoriteRepo.CountByMeal(ctx, mealID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.commentRepo.RatingsByMeal(ctx, mealID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, ing.Name)
	}

	comments := int64(len(ratings))
	avg := averageRating(ratings)
	return &infraES.RecipeDoc{
		ID:            recipe.ID,
		Name:          recipe.Name,
		Category:      recipe.Category,
		Area:          recipe.Area,
		Ingredients:   ingredients,
		FavoriteCount: favorites,
		CommentCount:  comments,
		AverageRating: avg,
		HotScore:      infraES.HotScore(favorites, comments, avg),
		UpdatedAt:     time.Now(),
	}, nil
}

// SyncRecipe 刷新单个菜谱的统计文档
func (s *SearchService) SyncRecipe(ctx context.Context, mealID string) error {
	if s.index == nil {
		return nil
	}
	doc, err := s.BuildRecipeDoc(ctx, mealID)
	if err != nil {
		return err
	}
	return s.index.IndexRecipe(ctx, doc)
}

// HandleRecipeEvent worker 收到菜谱事件后刷新统计
func (s *SearchService) HandleRecipeEvent(ctx context.Context, event *infraKafka.RecipeEvent) error {
	switch event.Type {
	case infraKafka.EventFavoriteAdded, infraKafka.EventFavoriteRemoved, infraKafka.EventCommentCreated:
		return s.SyncRecipe(ctx, event.MealID)
	default:
		logger.Warn("Unknown recipe event type", zap.String("type", event.Type))
		return nil
	}
}

// SyncAllRecipes 全量重建被收藏过的菜谱统计（worker 启动时调用）
func (s *SearchService) SyncAllRecipes(ctx context.Context, batchSize int) (success, failed int, err error) {
	if s.index == nil {
		return 0, 0, nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	for skip := 0; ; skip += batchSize {
		rows, err := s.favoriteRepo.TopMeals(ctx, skip, batchSize)
		if err != nil {
			return success, failed, err
		}
		if len(rows) == 0 {
			break
		}

		docs := make([]infraES.RecipeDoc, 0, len(rows))
		for _, row := range rows {
			doc, err := s.BuildRecipeDoc(ctx, row.MealID)
			if err != nil {
				failed++
				continue
			}
			docs = append(docs, *doc)
		}

		ok, bad, err := s.index.BulkIndex(ctx, docs)
		success += ok
		failed += bad
		if err != nil {
			return success, failed, err
		}
		if len(rows) < batchSize {
			break
		}
	}
	return success, failed, nil
}
