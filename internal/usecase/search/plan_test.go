package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	"github.com/kailas-cloud/cinefind/internal/domain/search/order"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	"github.com/kailas-cloud/cinefind/internal/domain/search/strategy"
)

func queries(plan strategy.Plan) []string {
	out := make([]string, len(plan.Strategies))
	for i, s := range plan.Strategies {
		out[i] = s.Query
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildPlan_BaseOnly(t *testing.T) {
	plan := BuildPlan(params.Default("inception"))

	if len(plan.Discoveries) != 0 {
		t.Errorf("expected no discovery, got %+v", plan.Discoveries)
	}
	if got := queries(plan); !equalStrings(got, []string{"inception"}) {
		t.Errorf("unexpected strategies %v", got)
	}
}

func TestBuildPlan_YearAndGenre(t *testing.T) {
	p := params.Default("action")
	p.Genre, p.Year, p.SortBy = "Action", 2023, order.Rating

	plan := BuildPlan(p)

	if len(plan.Discoveries) != 1 {
		t.Fatalf("expected 1 discovery, got %d", len(plan.Discoveries))
	}
	d := plan.Discoveries[0]
	if d.CountryCode != "" || d.Year != 2023 || d.GenreID != 28 || d.SortKey != "vote_average.desc" {
		t.Errorf("unexpected discovery %+v", d)
	}

	p.Year = 0
	if plan := BuildPlan(p); len(plan.Discoveries) != 0 {
		t.Error("genre alone must not authorize discovery")
	}
}

func TestBuildPlan_DomesticFullExpansion(t *testing.T) {
	p := params.Default("autumn korean")
	p.Country = "한국"
	p.Genre = "Animation"
	p.Year = 2020
	p.Keywords = []string{"autumn"}
	p.Season = "가을"
	p.Setting = "학교"

	plan := BuildPlan(p)

	if len(plan.Discoveries) != 2 {
		t.Fatalf("expected domestic then year+genre discovery, got %+v", plan.Discoveries)
	}
	if plan.Discoveries[0].CountryCode != "KR" || plan.Discoveries[1].CountryCode != "" {
		t.Errorf("unexpected discovery order %+v", plan.Discoveries)
	}

	want := []string{
		"autumn korean",
		"animation", "animated", "cartoon", "anime",
		"autumn",
		"korean movie", "한국영화", "korea film",
		"autumn korean", "fall korean", "단풍 korean", "maple korean", "harvest korean", "낙엽 korean",
		"school korean", "student korean", "teacher korean", "classroom korean", "campus korean",
	}
	if got := queries(plan); !equalStrings(got, want) {
		t.Errorf("unexpected strategies\n got %v\nwant %v", got, want)
	}
	if plan.Len() != len(want)+2 {
		t.Errorf("unexpected plan length %d", plan.Len())
	}
}

func TestBuildPlan_UnknownSeasonIsLiteral(t *testing.T) {
	p := params.Default("x")
	p.Season = "장마"

	if got := queries(BuildPlan(p)); !equalStrings(got, []string{"x", "장마"}) {
		t.Errorf("unexpected strategies %v", got)
	}
}

func TestRetrieve_ShortCircuits(t *testing.T) {
	cat := &mockCatalog{byQuery: map[string][]catalog.Movie{
		"b": {movie(1, "B", "")},
		"c": {movie(2, "C", "")},
	}}
	plan := strategy.Plan{Strategies: []strategy.Strategy{{Query: "a"}, {Query: "b"}, {Query: "c"}}}

	r := retrieve(context.Background(), cat, plan)

	if !equalStrings(cat.queries, []string{"a", "b"}) {
		t.Errorf("expected strategies after the first hit to be skipped, got %v", cat.queries)
	}
	if r.Strategy != 1 || r.UsedDiscovery || len(r.Movies) != 1 {
		t.Errorf("unexpected retrieval %+v", r)
	}
}

func TestRetrieve_ErrorsAreEmpty(t *testing.T) {
	cat := &mockCatalog{
		discErr:   errors.New("timeout"),
		failQuery: map[string]bool{"a": true},
		byQuery:   map[string][]catalog.Movie{"b": {movie(1, "B", "")}},
	}
	plan := strategy.Plan{
		Discoveries: []strategy.Discovery{{CountryCode: "KR"}},
		Strategies:  []strategy.Strategy{{Query: "a"}, {Query: "b"}},
	}

	r := retrieve(context.Background(), cat, plan)

	if r.UsedDiscovery {
		t.Error("failed discovery must not count as used")
	}
	if r.Strategy != 1 || len(r.Movies) != 1 {
		t.Errorf("unexpected retrieval %+v", r)
	}
}

func TestRetrieve_DiscoveryFallthrough(t *testing.T) {
	cat := &mockCatalog{discover: [][]catalog.Movie{nil, {movie(5, "E", "")}}}
	plan := strategy.Plan{
		Discoveries: []strategy.Discovery{{CountryCode: "KR"}, {Year: 2020}},
		Strategies:  []strategy.Strategy{{Query: "a"}},
	}

	r := retrieve(context.Background(), cat, plan)

	if !r.UsedDiscovery || len(cat.discoveries) != 2 || len(cat.queries) != 0 {
		t.Errorf("expected second discovery to hit, got %+v (queries %v)", r, cat.queries)
	}
}

func TestRetrieve_Exhausted(t *testing.T) {
	cat := &mockCatalog{}
	plan := strategy.Plan{Strategies: []strategy.Strategy{{Query: "a"}, {Query: "b"}}}

	r := retrieve(context.Background(), cat, plan)

	if len(r.Movies) != 0 || r.Strategy != -1 || len(cat.queries) != 2 {
		t.Errorf("unexpected retrieval %+v", r)
	}
}
