package elasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *RecipeIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient([]string{srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewRecipeIndex(es, "recipes-test")
}

func TestIndexRecipe(t *testing.T) {
	var gotPath string
	var gotDoc RecipeDoc
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	doc := &RecipeDoc{ID: "52772", Name: "Teriyaki Chicken Casserole", FavoriteCount: 3}
	if err := x.IndexRecipe(context.Background(), doc); err != nil {
		t.Fatalf("index: %v", err)
	}
	if gotPath != "/recipes-test/_doc/52772" {
		t.Errorf("path = %s", gotPath)
	}
	if gotDoc.Name != doc.Name || gotDoc.FavoriteCount != 3 {
		t.Errorf("doc = %+v", gotDoc)
	}
}

func TestSearchRecipesDecodesHits(t *testing.T) {
	var gotBody map[string]interface{}
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":2},"hits":[
			{"_source":{"id":"2","favorite_count":9,"comment_count":1,"average_rating":5}},
			{"_source":{"id":"1","favorite_count":4},"highlight":{"name":["<em>Pie</em>"]}}
		]}}`))
	})

	hits, err := x.SearchRecipes(context.Background(), &RecipeQuery{Q: "pie", Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits.Total != 2 || strings.Join(hits.IDs(), ",") != "2,1" {
		t.Fatalf("hits = %+v", hits)
	}
	if hits.Hits[0].FavoriteCount != 9 || hits.Hits[1].Highlight["name"][0] != "<em>Pie</em>" {
		t.Errorf("hit details = %+v", hits.Hits)
	}
	if gotBody["from"] != float64(10) || gotBody["size"] != float64(10) {
		t.Errorf("paging = %v/%v", gotBody["from"], gotBody["size"])
	}
}

func TestSearchRecipesErrorStatus(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad query"}`))
	})

	if _, err := x.SearchRecipes(context.Background(), &RecipeQuery{}); err == nil {
		t.Fatal("expected error on 400")
	}
}

func TestBuildRecipeQuerySort(t *testing.T) {
	q := BuildRecipeQuery(&RecipeQuery{Category: "Seafood", Sort: SortRating})

	sortCfg := q["sort"].([]interface{})
	first := sortCfg[0].(map[string]interface{})
	if _, ok := first["average_rating"]; !ok {
		t.Errorf("rating sort = %v", sortCfg)
	}
	filters := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	if len(filters) != 1 {
		t.Errorf("filters = %v", filters)
	}
	if _, ok := q["highlight"]; ok {
		t.Error("highlight should be omitted without a query string")
	}
	if q["size"] != 20 || q["from"] != 0 {
		t.Errorf("default paging = %v/%v", q["from"], q["size"])
	}
}

func TestHotScore(t *testing.T) {
	if got := HotScore(0, 0, 0); got != 0 {
		t.Errorf("empty = %v", got)
	}
	if HotScore(2, 0, 0) <= HotScore(0, 2, 0) {
		t.Error("favorites should weigh more than comments")
	}
	if HotScore(0, 2, 5) <= HotScore(0, 2, 1) {
		t.Error("rating should raise comment contribution")
	}
}
