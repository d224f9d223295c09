package strategy

// Strategy is one literal title probe sent to the catalog's keyword search.
type Strategy struct {
	Query       string
	Description string
}

// Discovery is a structured catalog query (origin country, year, genre, sort).
// Zero values mean the constraint is not applied.
type Discovery struct {
	CountryCode string
	Year        int
	GenreID     int
	SortKey     string
	Description string
}

// Plan is the ordered retrieval plan for one movie search.
// Discoveries run first, in order; Strategies run only when every discovery came back empty.
type Plan struct {
	Discoveries []Discovery
	Strategies  []Strategy
}

// Len returns the total number of retrieval attempts in the plan.
func (p Plan) Len() int { return len(p.Discoveries) + len(p.Strategies) }
