package order

// Order is the ranking criterion of a search.
type Order string

// Order constants.
const (
	// Popularity is the default order.
	Popularity  Order = "popularity"
	Rating      Order = "rating"
	ReleaseDate Order = "release_date"
)

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == Popularity || o == Rating || o == ReleaseDate
}

// Parse returns the order named by s, or Popularity when s is not supported.
func Parse(s string) Order {
	if o := Order(s); o.IsValid() {
		return o
	}
	return Popularity
}

// DiscoverKey returns the catalog discovery sort key for the order.
func (o Order) DiscoverKey() string {
	switch o {
	case Rating:
		return "vote_average.desc"
	case ReleaseDate:
		return "release_date.desc"
	default:
		return "popularity.desc"
	}
}
