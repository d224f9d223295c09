package result

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
)

func TestEmpty(t *testing.T) {
	r := Empty("좀비")
	if r.Type() != kind.Movie || r.Len() != 0 {
		t.Errorf("unexpected empty result: %+v", r)
	}
	if r.Params().Query != "좀비" {
		t.Errorf("expected default params, got %+v", r.Params())
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"results":[]`) {
		t.Errorf("empty results must render as [], got %s", s)
	}
	if strings.Contains(s, "recommendation") {
		t.Errorf("absent recommendation must be omitted, got %s", s)
	}
}

func TestMarshalJSON_Movies(t *testing.T) {
	p := params.Default("액션")
	r := Movies(p, "액션", []catalog.Movie{{ID: 1, Title: "A"}}, "추천")

	var out struct {
		Type           string          `json:"type"`
		Results        []catalog.Movie `json:"results"`
		Recommendation string          `json:"recommendation"`
		SearchParams   params.Params   `json:"searchParams"`
		OriginalQuery  string          `json:"originalQuery"`
	}
	data, _ := json.Marshal(r)
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Type != "movie" || len(out.Results) != 1 || out.Results[0].Title != "A" {
		t.Errorf("unexpected envelope: %s", data)
	}
	if out.Recommendation != "추천" || out.OriginalQuery != "액션" || out.SearchParams.SortBy != "popularity" {
		t.Errorf("unexpected envelope: %s", data)
	}
}

func TestItemsByKind(t *testing.T) {
	tv := Shows(params.Params{Type: kind.TV}, "x", []catalog.TVShow{{ID: 7}})
	if tv.Len() != 1 || len(tv.Items().([]catalog.TVShow)) != 1 {
		t.Error("tv result should expose shows")
	}
	pp := People(params.Params{Type: kind.Person}, "x", nil)
	if pp.Len() != 0 || pp.Items().([]catalog.Person) == nil {
		t.Error("person result should expose a non-nil slice")
	}
}

func TestAccessors_OnReturnedValue(t *testing.T) {
	p := params.Default("괴물")
	movies := []catalog.Movie{{ID: 1}, {ID: 2}}

	if got := Movies(p, "괴물", movies, "추천").Movies(); len(got) != 2 || got[1].ID != 2 {
		t.Errorf("unexpected movies %v", got)
	}
	if Shows(p, "괴물", []catalog.TVShow{{ID: 3}}).Len() != 1 {
		t.Error("expected 1 show")
	}
	if People(p, "괴물", nil).Type() != kind.Person {
		t.Error("expected person kind")
	}
	if Empty("괴물").OriginalQuery() != "괴물" {
		t.Error("expected original query")
	}
}
