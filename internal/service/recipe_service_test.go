package service

import (
	"context"
	"errors"
	"testing"
)

func TestSearchFiltersByCategory(t *testing.T) {
	f := newFixture(t, sampleRecipes()...)

	data := f.recipes.Search(context.Background(), "", "", "seafood")
	if data.Total != 2 {
		t.Fatalf("total = %d, want 2", data.Total)
	}
	for _, card := range data.Recipes {
		if card.Category != "Seafood" {
			t.Errorf("unexpected category %q", card.Category)
		}
	}

	if all := f.recipes.Search(context.Background(), "", "", ""); all.Total != 3 {
		t.Errorf("unfiltered total = %d", all.Total)
	}
}

func TestSearchCatalogFailureIsEmpty(t *testing.T) {
	f := newFixture(t, sampleRecipes()...)
	f.catalog.err = errBoom

	data := f.recipes.Search(context.Background(), "u1", "chicken", "")
	if data.Total != 0 || data.Recipes == nil || len(data.Recipes) != 0 {
		t.Errorf("data = %+v", data)
	}
	if got := f.recipes.ListByCategory(context.Background(), "u1", "Seafood"); got.Total != 0 {
		t.Errorf("category total = %d", got.Total)
	}
	if got := f.recipes.Categories(context.Background()); got == nil || len(got) != 0 {
		t.Errorf("categories = %v", got)
	}
}

func TestEnrichResolvesFavoriteAndRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)

	f.favorites.SetFavorite(ctx, "u1", "52959", true)
	thread := f.comments.LoadThread(ctx, "52959")
	f.comments.SubmitComment(ctx, thread, "u2", "Bob", "great", 5)
	f.comments.SubmitComment(ctx, thread, "u3", "Cy", "fine", 2)

	data := f.recipes.ListByCategory(ctx, "u1", "Seafood")
	if data.Total != 2 {
		t.Fatalf("total = %d", data.Total)
	}
	byID := map[string]int{}
	for i, card := range data.Recipes {
		byID[card.ID] = i
	}

	salmon := data.Recipes[byID["52959"]]
	if !salmon.IsFavorite || salmon.AverageRating != 3.5 {
		t.Errorf("salmon = %+v", salmon)
	}
	tacos := data.Recipes[byID["52819"]]
	if tacos.IsFavorite || tacos.AverageRating != 0 {
		t.Errorf("tacos = %+v", tacos)
	}

	anon := f.recipes.ListByCategory(ctx, "", "Seafood")
	for _, card := range anon.Recipes {
		if card.IsFavorite {
			t.Errorf("anonymous card %s marked favorite", card.ID)
		}
	}
}

func TestEnrichDefaultsOnStoreFailure(t *testing.T) {
	f := newFixture(t, sampleRecipes()...)
	f.breakDB(t)

	data := f.recipes.Search(context.Background(), "u1", "", "")
	if data.Total != 3 {
		t.Fatalf("total = %d", data.Total)
	}
	for _, card := range data.Recipes {
		if card.IsFavorite || card.AverageRating != 0 {
			t.Errorf("card %s not defaulted: %+v", card.ID, card)
		}
	}
}

func TestLookupUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)

	r, err := f.recipes.Lookup(ctx, "52772")
	if err != nil || r.Name != "Teriyaki Chicken Casserole" {
		t.Fatalf("lookup = %+v, %v", r, err)
	}
	if _, err := f.recipes.Lookup(ctx, "52772"); err != nil {
		t.Fatal(err)
	}
	if n := f.catalog.lookupCount(); n != 1 {
		t.Errorf("catalog lookups = %d, want 1", n)
	}
}

func TestLookupErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)

	if _, err := f.recipes.Lookup(ctx, "missing"); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("missing err = %v", err)
	}
	if _, err := f.recipes.Lookup(ctx, ""); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("empty err = %v", err)
	}

	f.catalog.err = errBoom
	if _, err := f.recipes.Lookup(ctx, "52959"); !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("catalog err = %v", err)
	}
}

func TestDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	f.favorites.SetFavorite(ctx, "u1", "52772", true)
	f.favorites.SetFavorite(ctx, "u2", "52772", true)
	thread := f.comments.LoadThread(ctx, "52772")
	f.comments.SubmitComment(ctx, thread, "u2", "Bob", "yum", 4)

	d, err := f.recipes.Detail(ctx, "u1", "52772")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if !d.IsFavorite || d.TotalFavorites != 2 || d.TotalComments != 1 || d.AverageRating != 4 {
		t.Errorf("detail = %+v", d)
	}
	if len(d.Comments) != 1 || d.Comments[0].Text != "yum" {
		t.Errorf("comments = %+v", d.Comments)
	}
}

func TestGetRecipesKeepsOrderAndSkipsMissing(t *testing.T) {
	f := newFixture(t, sampleRecipes()...)

	got := f.recipes.GetRecipes(context.Background(), []string{"52819", "missing", "52772"})
	if len(got) != 2 || got[0].ID != "52819" || got[1].ID != "52772" {
		t.Errorf("recipes = %+v", got)
	}
}

func TestFavoriteRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleRecipes()...)
	f.favorites.SetFavorite(ctx, "u1", "52772", true)
	f.favorites.SetFavorite(ctx, "u1", "52819", true)

	data, err := f.recipes.FavoriteRecipes(ctx, "u1", 1, 20)
	if err != nil {
		t.Fatalf("favorite recipes: %v", err)
	}
	if data.Total != 2 || len(data.Recipes) != 2 {
		t.Fatalf("data = %+v", data)
	}
	for _, card := range data.Recipes {
		if !card.IsFavorite {
			t.Errorf("%s should be favorite", card.ID)
		}
	}
}
