package service

import (
	"context"
	"errors"
	"strings"

	"recipe-finder/internal/api/dto"
	"recipe-finder/internal/model"
	"recipe-finder/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRecipeNotFound     = errors.New("菜谱不存在")
	ErrCatalogUnavailable = errors.New("菜谱目录暂时不可用")
)

const defaultMaxConcurrency = 8

type RecipeService struct {
	catalog        RecipeCatalog
	cache          RecipeCache
	favorites      *FavoriteService
	comments       *CommentService
	maxConcurrency int
}

func NewRecipeService(catalog RecipeCatalog, cache RecipeCache, favorites *FavoriteService, comments *CommentService, maxConcurrency int) *RecipeService {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &RecipeService{
		catalog:        catalog,
		cache:          cache,
		favorites:      favorites,
		comments:       comments,
		maxConcurrency: maxConcurrency,
	}
}

// Search 关键词搜索，category 非空时只保留该分类
// 目录不可用时返回空列表
func (s *RecipeService) Search(ctx context.Context, userID, term, category string) *dto.RecipeListData {
	recipes, err := s.catalog.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		logger.Warn("Catalog search failed", zap.String("term", term), zap.Error(err))
		recipes = nil
	}

	if category = strings.TrimSpace(category); category != "" {
		filtered := recipes[:0:0]
		for _, r := range recipes {
			if strings.EqualFold(r.Category, category) {
				filtered = append(filtered, r)
			}
		}
		recipes = filtered
	}

	s.cacheAll(ctx, recipes)
	cards := s.Enrich(ctx, userID, recipes)
	return &dto.RecipeListData{Recipes: cards, Total: len(cards)}
}

// ListByCategory 分类下的菜谱；目录不可用时返回空列表
func (s *RecipeService) ListByCategory(ctx context.Context, userID, category string) *dto.RecipeListData {
	recipes, err := s.catalog.FilterByCategory(ctx, category)
	if err != nil {
		logger.Warn("Catalog category filter failed", zap.String("category", category), zap.Error(err))
		recipes = nil
	}
	cards := s.Enrich(ctx, userID, recipes)
	return &dto.RecipeListData{Recipes: cards, Total: len(cards)}
}

// Categories 所有分类；目录不可用时返回空列表
func (s *RecipeService) Categories(ctx context.Context) []model.Category {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		logger.Warn("Catalog categories failed", zap.Error(err))
		return []model.Category{}
	}
	if categories == nil {
		return []model.Category{}
	}
	return categories
}

// Lookup 按 ID 获取菜谱，优先读缓存
func (s *RecipeService) Lookup(ctx context.Context, id string) (*model.Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrRecipeNotFound
	}
	if s.cache != nil {
		if recipe, ok := s.cache.GetRecipe(ctx, id); ok {
			return recipe, nil
		}
	}

	recipe, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		logger.Warn("Catalog lookup failed", zap.String("meal_id", id), zap.Error(err))
		return nil, ErrCatalogUnavailable
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	if s.cache != nil {
		s.cache.SetRecipe(ctx, recipe)
	}
	return recipe, nil
}

// Detail 菜谱详情：收藏状态、收藏数与评论
func (s *RecipeService) Detail(ctx context.Context, userID, id string) (*dto.RecipeDetail, error) {
	recipe, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.RecipeDetail{Recipe: *recipe}

	state, err := s.favorites.Status(ctx, userID, id)
	if err != nil {
		logger.Warn("Resolve favorite state failed", zap.String("meal_id", id), zap.Error(err))
	}
	detail.IsFavorite = state.IsFavorite()

	if n, err := s.favorites.CountByMeal(ctx, id); err == nil {
		detail.TotalFavorites = n
	}

	thread := s.comments.LoadThread(ctx, id)
	detail.Comments = ToCommentInfos(thread.Comments())
	detail.TotalComments = thread.Len()
	detail.AverageRating = thread.Average()
	return detail, nil
}

// GetRecipes 按 ID 批量获取菜谱，保持输入顺序，获取失败的条目被跳过
func (s *RecipeService) GetRecipes(ctx context.Context, ids []string) []model.Recipe {
	found := make([]*model.Recipe, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			recipe, err := s.Lookup(gctx, id)
			if err != nil {
				return nil
			}
			found[i] = recipe
			return nil
		})
	}
	_ = g.Wait()

	recipes := make([]model.Recipe, 0, len(ids))
	for _, r := range found {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes
}

// Enrich 并发补充每个菜谱的收藏状态与平均评分，单项失败使用默认值
func (s *RecipeService) Enrich(ctx context.Context, userID string, recipes []model.Recipe) []dto.RecipeCard {
	cards := make([]dto.RecipeCard, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i := range recipes {
		cards[i].Recipe = recipes[i]
		g.Go(func() error {
			mealID := recipes[i].ID
			if userID != "" {
				isFav, err := s.favorites.IsFavorite(gctx, userID, mealID)
				if err != nil {
					logger.Debug("Resolve favorite failed", zap.String("meal_id", mealID), zap.Error(err))
				}
				cards[i].IsFavorite = isFav
			}
			cards[i].AverageRating = s.comments.AverageRating(gctx, mealID)
			return nil
		})
	}
	_ = g.Wait()

	return cards
}

// FavoriteRecipes 我收藏的菜谱（最新收藏在前）
func (s *RecipeService) FavoriteRecipes(ctx context.Context, userID string, page, pageSize int) (*dto.FavoriteRecipeListData, error) {
	ids, total, err := s.favorites.FavoritedMealIDs(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	cards := s.Enrich(ctx, userID, s.GetRecipes(ctx, ids))
	return &dto.FavoriteRecipeListData{
		Recipes:    cards,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// cacheAll 搜索结果带完整字段，顺带写入缓存
func (s *RecipeService) cacheAll(ctx context.Context, recipes []model.Recipe) {
	if s.cache == nil {
		return
	}
	for i := range recipes {
		s.cache.SetRecipe(ctx, &recipes[i])
	}
}
