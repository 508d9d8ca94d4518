package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/model"
	"recipe-finder/internal/repository"
	"recipe-finder/internal/testutil"

	"gorm.io/gorm"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	mu         sync.Mutex
	recipes    map[string]model.Recipe
	categories []model.Category
	err        error
	lookups    int
}

func newFakeCatalog(recipes ...model.Recipe) *fakeCatalog {
	c := &fakeCatalog{recipes: make(map[string]model.Recipe)}
	for _, r := range recipes {
		c.recipes[r.ID] = r
	}
	return c
}

func (c *fakeCatalog) Search(ctx context.Context, term string) ([]model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	var out []model.Recipe
	for _, id := range sortedIDs(c.recipes) {
		out = append(out, c.recipes[id])
	}
	return out, nil
}

func (c *fakeCatalog) Lookup(ctx context.Context, id string) (*model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.err != nil {
		return nil, c.err
	}
	r, ok := c.recipes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *fakeCatalog) FilterByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	var out []model.Recipe
	for _, id := range sortedIDs(c.recipes) {
		if c.recipes[id].Category == category {
			out = append(out, c.recipes[id])
		}
	}
	return out, nil
}

func (c *fakeCatalog) Categories(ctx context.Context) ([]model.Category, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.categories, nil
}

func (c *fakeCatalog) lookupCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookups
}

func sortedIDs(m map[string]model.Recipe) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type memoryCache struct {
	mu      sync.Mutex
	recipes map[string]model.Recipe
}

func newMemoryCache() *memoryCache {
	return &memoryCache{recipes: make(map[string]model.Recipe)}
}

func (c *memoryCache) GetRecipe(ctx context.Context, id string) (*model.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.recipes[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (c *memoryCache) SetRecipe(ctx context.Context, recipe *model.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[recipe.ID] = *recipe
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []infraKafka.RecipeEvent
	err    error
}

func (p *recordingPublisher) PublishRecipeEvent(ctx context.Context, event *infraKafka.RecipeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *event)
	return nil
}

// blockingPublisher 在 release 关闭前阻塞每次发布
type blockingPublisher struct {
	release chan struct{}
	inner   recordingPublisher
}

func newBlockingPublisher() *blockingPublisher {
	return &blockingPublisher{release: make(chan struct{})}
}

func (p *blockingPublisher) PublishRecipeEvent(ctx context.Context, event *infraKafka.RecipeEvent) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.inner.PublishRecipeEvent(ctx, event)
}

func (p *recordingPublisher) recorded() []infraKafka.RecipeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]infraKafka.RecipeEvent, len(p.events))
	copy(out, p.events)
	return out
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]infraES.RecipeDoc
	hits    *infraES.RecipeHits
	err     error
	queries []infraES.RecipeQuery
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]infraES.RecipeDoc)}
}

func (x *fakeIndex) SearchRecipes(ctx context.Context, query *infraES.RecipeQuery) (*infraES.RecipeHits, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.queries = append(x.queries, *query)
	if x.err != nil {
		return nil, x.err
	}
	if x.hits == nil {
		return &infraES.RecipeHits{}, nil
	}
	return x.hits, nil
}

func (x *fakeIndex) IndexRecipe(ctx context.Context, doc *infraES.RecipeDoc) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.docs[doc.ID] = *doc
	return nil
}

func (x *fakeIndex) BulkIndex(ctx context.Context, docs []infraES.RecipeDoc) (int, int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, d := range docs {
		x.docs[d.ID] = d
	}
	return len(docs), 0, nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (r *fakeRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = make(map[string]time.Duration)
	}
	r.revoked[tokenID] = ttl
	return nil
}

type fakeAvatars struct {
	objects map[string][]byte
	err     error
}

func (a *fakeAvatars) UploadAvatar(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if a.objects == nil {
		a.objects = make(map[string][]byte)
	}
	a.objects[objectName] = data
	return "http://cdn.test/avatars/" + objectName, nil
}

// fixture 共享同一个内存库的仓储与服务
type fixture struct {
	db        *gorm.DB
	favRepo   *repository.FavoriteRepository
	cmtRepo   *repository.CommentRepository
	userRepo  *repository.UserRepository
	publisher *recordingPublisher
	catalog   *fakeCatalog
	cache     *memoryCache
	favorites *FavoriteService
	comments  *CommentService
	recipes   *RecipeService
}

func newFixture(t *testing.T, recipes ...model.Recipe) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		favRepo:   repository.NewFavoriteRepository(db),
		cmtRepo:   repository.NewCommentRepository(db),
		userRepo:  repository.NewUserRepository(db),
		publisher: &recordingPublisher{},
		catalog:   newFakeCatalog(recipes...),
		cache:     newMemoryCache(),
	}
	f.favorites = NewFavoriteService(f.favRepo, f.publisher)
	f.comments = NewCommentService(f.cmtRepo, f.publisher)
	f.recipes = NewRecipeService(f.catalog, f.cache, f.favorites, f.comments, 4)
	return f
}

// events 等待后台发布完成后返回已记录的事件
func (f *fixture) events() []infraKafka.RecipeEvent {
	f.favorites.events.flush()
	f.comments.events.flush()
	return f.publisher.recorded()
}

// breakDB 关闭底层连接，之后所有查询都会失败
func (f *fixture) breakDB(t *testing.T) {
	t.Helper()
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatal(err)
	}
	_ = sqlDB.Close()
}

func sampleRecipes() []model.Recipe {
	return []model.Recipe{
		{ID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken", Area: "Japanese",
			Ingredients: []model.Ingredient{{Name: "soy sauce", Measure: "3/4 cup"}}},
		{ID: "52959", Name: "Baked salmon with fennel", Category: "Seafood", Area: "British"},
		{ID: "52819", Name: "Cajun spiced fish tacos", Category: "Seafood", Area: "Mexican"},
	}
}
