package search

import (
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	"github.com/kailas-cloud/cinefind/internal/domain/search/strategy"
	"github.com/kailas-cloud/cinefind/internal/domain/vocab"
)

// BuildPlan turns parameters into the ordered retrieval plan.
//
// A domestic country authorizes an origin-filtered discovery. A year and
// genre pair authorizes a general discovery, tried after the domestic one
// when that comes back empty. The keyword strategies always start with the
// base query and widen from there.
func BuildPlan(p params.Params) strategy.Plan {
	var plan strategy.Plan
	sortKey := p.SortBy.DiscoverKey()
	domestic := p.IsDomestic()

	if domestic {
		plan.Discoveries = append(plan.Discoveries, strategy.Discovery{
			CountryCode: vocab.DomesticCode,
			Year:        p.Year,
			GenreID:     p.GenreID(),
			SortKey:     sortKey,
			Description: "domestic discovery",
		})
	}
	if p.Year > 0 && p.Genre != "" {
		plan.Discoveries = append(plan.Discoveries, strategy.Discovery{
			Year:        p.Year,
			GenreID:     p.GenreID(),
			SortKey:     sortKey,
			Description: "year and genre discovery",
		})
	}

	add := func(query, desc string) {
		plan.Strategies = append(plan.Strategies, strategy.Strategy{Query: query, Description: desc})
	}

	add(p.Query, "기본 검색어")

	if p.Genre == "Animation" {
		for _, syn := range vocab.AnimationSynonyms() {
			add(syn, "애니메이션 동의어: "+syn)
		}
	}

	for _, kw := range p.Keywords {
		add(kw, "키워드: "+kw)
	}

	if domestic {
		for _, probe := range vocab.DomesticProbes() {
			add(probe, "한국 영화 검색: "+probe)
		}
	}

	if p.Season != "" {
		for _, term := range vocab.SeasonTerms(p.Season) {
			add(localize(term, domestic), "계절 키워드: "+term)
		}
	}
	if p.Setting != "" {
		for _, term := range vocab.SettingTerms(p.Setting) {
			add(localize(term, domestic), "설정 키워드: "+term)
		}
	}

	return plan
}

func localize(term string, domestic bool) string {
	if domestic {
		return term + " " + vocab.DomesticKeyword
	}
	return term
}
