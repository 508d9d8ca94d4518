package service

import (
	"context"
	"testing"

	"recipe-finder/internal/api/dto"
	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
)

func TestPopularRecipesFromIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	index := newFakeIndex()
	index.hits = &infraES.RecipeHits{
		Total: 2,
		Hits: []infraES.RecipeHit{
			{ID: "52959", FavoriteCount: 7, CommentCount: 2},
			{ID: "52772", FavoriteCount: 3},
		},
	}
	s := NewSearchService(f.favRepo, f.cmtRepo, f.recipes, index)

	data, err := s.PopularRecipes(ctx, "", &dto.PopularRecipeRequest{Q: "fish", Sort: infraES.SortHot})
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if data.Source != "elasticsearch" || data.Total != 2 || len(data.Recipes) != 2 {
		t.Fatalf("data = %+v", data)
	}
	if data.Recipes[0].ID != "52959" || data.Recipes[0].TotalFavorites != 7 {
		t.Errorf("first = %+v", data.Recipes[0])
	}
	if data.Page != 1 || data.PageSize != 20 {
		t.Errorf("paging defaults = %d/%d", data.Page, data.PageSize)
	}
	if q := index.queries[0]; q.Q != "fish" || q.PageSize != 20 {
		t.Errorf("query = %+v", q)
	}
}

func TestPopularRecipesFallsBackToDB(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	f.favorites.SetFavorite(ctx, "u1", "52819", true)
	f.favorites.SetFavorite(ctx, "u2", "52819", true)
	f.favorites.SetFavorite(ctx, "u1", "52772", true)

	index := newFakeIndex()
	index.err = errBoom
	s := NewSearchService(f.favRepo, f.cmtRepo, f.recipes, index)

	data, err := s.PopularRecipes(ctx, "u1", &dto.PopularRecipeRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if data.Source != "database" || data.Total != 2 || len(data.Recipes) != 2 {
		t.Fatalf("data = %+v", data)
	}
	top := data.Recipes[0]
	if top.ID != "52819" || top.TotalFavorites != 2 || !top.IsFavorite {
		t.Errorf("top = %+v", top)
	}

	seafood, _ := s.PopularRecipes(ctx, "", &dto.PopularRecipeRequest{Category: "Seafood"})
	if len(seafood.Recipes) != 1 || seafood.Recipes[0].ID != "52819" {
		t.Errorf("seafood = %+v", seafood.Recipes)
	}
}

func TestPopularRecipesWithoutIndex(t *testing.T) {
	f := newFixture(t, sampleRecipes()...)
	s := NewSearchService(f.favRepo, f.cmtRepo, f.recipes, nil)

	data, err := s.PopularRecipes(context.Background(), "", &dto.PopularRecipeRequest{})
	if err != nil || data.Source != "database" || data.Total != 0 {
		t.Fatalf("data = %+v, %v", data, err)
	}
}

func TestHandleRecipeEventSyncsStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	f.favorites.SetFavorite(ctx, "u1", "52772", true)
	thread := f.comments.LoadThread(ctx, "52772")
	f.comments.SubmitComment(ctx, thread, "u1", "Ann", "good", 4)
	f.comments.SubmitComment(ctx, thread, "u2", "Bob", "ok", 2)

	index := newFakeIndex()
	s := NewSearchService(f.favRepo, f.cmtRepo, f.recipes, index)

	err := s.HandleRecipeEvent(ctx, &infraKafka.RecipeEvent{Type: infraKafka.EventCommentCreated, MealID: "52772"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	doc, ok := index.docs["52772"]
	if !ok {
		t.Fatal("doc not indexed")
	}
	if doc.FavoriteCount != 1 || doc.CommentCount != 2 || doc.AverageRating != 3 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Category != "Chicken" || len(doc.Ingredients) != 1 || doc.Ingredients[0] != "soy sauce" {
		t.Errorf("doc fields = %+v", doc)
	}
	if doc.HotScore != infraES.HotScore(1, 2, 3) {
		t.Errorf("hot score = %v", doc.HotScore)
	}

	if err := s.HandleRecipeEvent(ctx, &infraKafka.RecipeEvent{Type: "unknown", MealID: "52772"}); err != nil {
		t.Errorf("unknown event err = %v", err)
	}
	if err := s.HandleRecipeEvent(ctx, &infraKafka.RecipeEvent{Type: infraKafka.EventFavoriteAdded, MealID: "missing"}); err == nil {
		t.Error("sync of missing recipe should fail")
	}
}

func TestSyncAllRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	for _, id := range []string{"52772", "52959", "52819"} {
		f.favorites.SetFavorite(ctx, "u1", id, true)
	}

	index := newFakeIndex()
	s := NewSearchService(f.favRepo, f.cmtRepo, f.recipes, index)

	success, failed, err := s.SyncAllRecipes(ctx, 2)
	if err != nil || success != 3 || failed != 0 {
		t.Fatalf("sync all = %d/%d, %v", success, failed, err)
	}
	if len(index.docs) != 3 {
		t.Errorf("docs = %d", len(index.docs))
	}
}
