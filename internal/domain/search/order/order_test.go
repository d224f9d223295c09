package order

import "testing"

func TestParse(t *testing.T) {
	tests := map[string]Order{
		"popularity":   Popularity,
		"rating":       Rating,
		"release_date": ReleaseDate,
		"":             Popularity,
		"newest":       Popularity,
	}
	for in, want := range tests {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiscoverKey(t *testing.T) {
	tests := map[Order]string{
		Popularity:  "popularity.desc",
		Rating:      "vote_average.desc",
		ReleaseDate: "release_date.desc",
		"":          "popularity.desc",
	}
	for o, want := range tests {
		if got := o.DiscoverKey(); got != want {
			t.Errorf("%q.DiscoverKey() = %q, want %q", o, got, want)
		}
	}
}
