package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recipe-finder/internal/model"
)

// DefaultBaseURL TheMealDB 公共接口地址
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

var ErrEmptyKey = errors.New("mealdb: empty lookup key")

// Client TheMealDB 接口客户端
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient 创建客户端，baseURL 为空时使用公共地址
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mealdb base url: %w", err)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// mealsResponse 目录返回 {"meals": [...]}，无结果时 meals 为 null
type mealsResponse struct {
	Meals []map[string]*string `json:"meals"`
}

type categoriesResponse struct {
	Categories []struct {
		ID          string `json:"idCategory"`
		Name        string `json:"strCategory"`
		Thumb       string `json:"strCategoryThumb"`
		Description string `json:"strCategoryDescription"`
	} `json:"categories"`
}

// Search 按名称关键词搜索，空关键词返回目录默认列表
func (c *Client) Search(ctx context.Context, term string) ([]model.Recipe, error) {
	var resp mealsResponse
	if err := c.get(ctx, "search.php", url.Values{"s": {term}}, &resp); err != nil {
		return nil, err
	}
	return toRecipes(resp.Meals), nil
}

// Lookup 按 ID 查询单个菜谱，不存在时返回 nil
func (c *Client) Lookup(ctx context.Context, id string) (*model.Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyKey
	}
	var resp mealsResponse
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &resp); err != nil {
		return nil, err
	}
	recipes := toRecipes(resp.Meals)
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// FilterByCategory 按分类列出菜谱（目录只返回 ID、名称和缩略图）
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrEmptyKey
	}
	var resp mealsResponse
	if err := c.get(ctx, "filter.php", url.Values{"c": {category}}, &resp); err != nil {
		return nil, err
	}
	recipes := toRecipes(resp.Meals)
	for i := range recipes {
		if recipes[i].Category == "" {
			recipes[i].Category = category
		}
	}
	return recipes, nil
}

// Categories 获取全部分类
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "categories.php", nil, &resp); err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		categories = append(categories, model.Category{
			ID:           cat.ID,
			Name:         cat.Name,
			ThumbnailURL: cat.Thumb,
			Description:  cat.Description,
		})
	}
	return categories, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build mealdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call mealdb %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read mealdb %s response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mealdb %s error %d: %s", endpoint, resp.StatusCode, truncate(string(body), 200))
	}

	// 部分接口在无结果时返回空 body
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode mealdb %s response: %w", endpoint, err)
	}
	return nil
}

func toRecipes(meals []map[string]*string) []model.Recipe {
	recipes := make([]model.Recipe, 0, len(meals))
	for _, m := range meals {
		if m == nil {
			continue
		}
		recipes = append(recipes, toRecipe(m))
	}
	return recipes
}

func toRecipe(m map[string]*string) model.Recipe {
	r := model.Recipe{
		ID:           str(m, "idMeal"),
		Name:         str(m, "strMeal"),
		ThumbnailURL: str(m, "strMealThumb"),
		Category:     str(m, "strCategory"),
		Area:         str(m, "strArea"),
		Instructions: str(m, "strInstructions"),
		YoutubeURL:   str(m, "strYoutube"),
		SourceURL:    str(m, "strSource"),
	}

	if tags := str(m, "strTags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				r.Tags = append(r.Tags, t)
			}
		}
	}

	// 食材和用量都存在且食材非空时才保留
	for i := 1; i <= model.MaxIngredients; i++ {
		name, okName := m["strIngredient"+strconv.Itoa(i)]
		measure, okMeasure := m["strMeasure"+strconv.Itoa(i)]
		if !okName || !okMeasure || name == nil || measure == nil {
			continue
		}
		if strings.TrimSpace(*name) == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, model.Ingredient{
			Name:    strings.TrimSpace(*name),
			Measure: strings.TrimSpace(*measure),
		})
	}
	return r
}

func str(m map[string]*string, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
