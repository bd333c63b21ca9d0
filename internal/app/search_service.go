package app

import (
	"sort"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/filter"
	"github.com/dnmkhamed/hotel-boq/internal/search"
)

// DefaultSearchLimit caps a search that asks for no limit of its own.
const DefaultSearchLimit = 50

// Scorer ranks one search result; higher scores sort earlier.
type Scorer func(search.Result) float64

// DefaultScorers returns the standard ranking chain: price (cheaper is
// better), then stars, then availability. Search applies them as
// repeated stable sorts, so the last scorer is the dominant key and the
// ones before it only break ties.
func DefaultScorers() []Scorer {
	return []Scorer{
		func(r search.Result) float64 { return -float64(r.PricePerNight) },
		func(r search.Result) float64 { return float64(r.Hotel.Stars) },
		func(r search.Result) float64 {
			if r.Available {
				return 1
			}
			return 0
		},
	}
}

// SearchService runs ranked offer searches over the indexed snapshot.
type SearchService struct {
	store   *Store
	index   *search.Index
	scorers []Scorer
	limit   int
}

func NewSearchService(store *Store, index *search.Index, limit int) *SearchService {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &SearchService{store: store, index: index, scorers: DefaultScorers(), limit: limit}
}

// Index exposes the underlying offer index for direct lazy consumption.
func (s *SearchService) Index() *search.Index { return s.index }

// Search collects the lazily generated results for the request and ranks
// them. Each configured scorer performs its own stable descending sort,
// in configuration order. This is deliberate: the final ordering is
// dominated by the last scorer, with earlier scorers visible only among
// ties, and downstream consumers depend on exactly that ordering.
func (s *SearchService) Search(req search.Request) []search.Result {
	if req.Limit <= 0 {
		req.Limit = s.limit
	}

	var results []search.Result
	for r := range s.index.Results(req) {
		results = append(results, r)
	}

	for _, scorer := range s.scorers {
		sort.SliceStable(results, func(i, j int) bool {
			return scorer(results[i]) > scorer(results[j])
		})
	}
	return results
}

// FilterHotels applies the composable hotel predicates to the snapshot.
func (s *SearchService) FilterHotels(f domain.SearchFilters) []domain.Hotel {
	return filter.Hotels(s.store.Dataset().Hotels, f)
}
