package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/events"
	"github.com/dnmkhamed/hotel-boq/internal/fp"
	"github.com/dnmkhamed/hotel-boq/internal/search"
)

// DefaultWorkers bounds the fan-out pools when no worker count is
// configured.
const DefaultWorkers = 8

// Booking defaults applied when an end-to-end request leaves the stay
// unspecified.
const (
	defaultCheckin  = "2024-01-15"
	defaultCheckout = "2024-01-18"
	defaultGuests   = 2
)

// endToEndOffers is how many top-ranked offers the workflow carries into
// quoting and booking.
const endToEndOffers = 3

// FailedQuote pairs a batch item with the failure it produced.
type FailedQuote struct {
	Item  QuoteItem `json:"item"`
	Error string    `json:"error"`
}

// BatchResult is the outcome of one concurrent quote batch. Successful
// and Failed preserve the submission order of their items.
type BatchResult struct {
	Successful   []PricedQuote `json:"successful"`
	Failed       []FailedQuote `json:"failed"`
	TotalCount   int           `json:"total_count"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
}

// WorkflowService is the composition root of the kernel: it drives
// search, quoting and booking end to end, fans work out over a bounded
// worker pool, and records progress on the event bus.
type WorkflowService struct {
	search  *SearchService
	quotes  *QuoteService
	booking *BookingService
	store   *Store
	bus     *events.Bus
	ids     domain.IDSource
	workers int64
}

func NewWorkflowService(
	searchSvc *SearchService,
	quotes *QuoteService,
	booking *BookingService,
	store *Store,
	bus *events.Bus,
	ids domain.IDSource,
	workers int,
) *WorkflowService {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &WorkflowService{
		search:  searchSvc,
		quotes:  quotes,
		booking: booking,
		store:   store,
		bus:     bus,
		ids:     ids,
		workers: int64(workers),
	}
}

// QuoteBatch prices the items concurrently over the worker pool. A
// failure in one item lands in Failed without disturbing the others,
// and the result slices stay aligned with the submission order.
func (s *WorkflowService) QuoteBatch(ctx context.Context, items []QuoteItem) BatchResult {
	results := make([]fp.Either[PricedQuote], len(items))

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = fp.Left[PricedQuote](domain.Computation(err))
			continue
		}

		wg.Add(1)
		go func(i int, item QuoteItem) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = s.quotes.SafeCalculateQuote(item)
		}(i, item)
	}
	wg.Wait()

	out := BatchResult{
		Successful: make([]PricedQuote, 0, len(items)),
		Failed:     make([]FailedQuote, 0),
		TotalCount: len(items),
	}
	for i, res := range results {
		if q, ok := res.Get(); ok {
			out.Successful = append(out.Successful, q)
			continue
		}
		out.Failed = append(out.Failed, FailedQuote{Item: items[i], Error: res.Err().Error()})
	}
	out.SuccessCount = len(out.Successful)
	out.FailureCount = len(out.Failed)
	return out
}

// EndToEnd runs the full search, quote, hold and booking workflow and
// returns a structured result. Failures are reported with the step that
// produced them, never as an error from this method.
func (s *WorkflowService) EndToEnd(ctx context.Context, req search.Request, guest domain.Guest) map[string]any {
	results := s.search.Search(req)
	if len(results) == 0 {
		return map[string]any{
			"success": false,
			"error":   "No hotels found matching your criteria",
			"step":    "search",
		}
	}

	top := results
	if len(top) > endToEndOffers {
		top = top[:endToEndOffers]
	}

	checkin := req.Checkin
	if checkin == "" {
		checkin = defaultCheckin
	}
	checkout := req.Checkout
	if checkout == "" {
		checkout = defaultCheckout
	}
	guests := req.Guests
	if guests == 0 {
		guests = defaultGuests
	}

	items := make([]QuoteItem, 0, len(top))
	for _, r := range top {
		items = append(items, QuoteItem{
			HotelID:           r.Hotel.ID,
			RoomTypeID:        r.Room.ID,
			RateID:            r.Rate.ID,
			Checkin:           checkin,
			Checkout:          checkout,
			Guests:            guests,
			Nights:            bookingItemNights,
			BasePricePerNight: r.PricePerNight,
		})
	}

	batch := s.QuoteBatch(ctx, items)
	if batch.SuccessCount == 0 {
		return map[string]any{
			"success":       false,
			"error":         "Failed to calculate quotes",
			"step":          "quotation",
			"failed_quotes": batch.Failed,
		}
	}

	held := len(top)
	if batch.SuccessCount < held {
		held = batch.SuccessCount
	}
	cartItems := make([]domain.CartItem, 0, held)
	for i := 0; i < held; i++ {
		item := domain.CartItem{
			ID:         s.ids.NewID("cart"),
			HotelID:    top[i].Hotel.ID,
			RoomTypeID: top[i].Room.ID,
			RateID:     top[i].Rate.ID,
			Checkin:    checkin,
			Checkout:   checkout,
			Guests:     guests,
		}
		cartItems = append(cartItems, item)

		s.bus.PublishHold(map[string]any{
			"cart_item_id": item.ID,
			"hotel_id":     item.HotelID,
			"room_type_id": item.RoomTypeID,
			"checkin":      item.Checkin,
			"checkout":     item.Checkout,
			"guests":       item.Guests,
		})
	}

	ds := s.store.Dataset()
	booked, err := s.booking.CreateBooking(guest, cartItems, ds.Prices, ds.Availability, ds.Rules).Unpack()
	if err != nil {
		return map[string]any{
			"success":              false,
			"error":                err.Error(),
			"step":                 "booking",
			"search_results_count": len(results),
			"quotes_calculated":    batch.SuccessCount,
		}
	}

	s.bus.PublishBooked(map[string]any{
		"booking_id":  booked.ID,
		"guest_id":    booked.GuestID,
		"total":       booked.Total,
		"items_count": len(booked.Items),
		"status":      booked.Status,
	})

	return map[string]any{
		"success":              true,
		"booking_id":           booked.ID,
		"total":                booked.Total,
		"status":               booked.Status,
		"search_results_count": len(results),
		"items_booked":         len(booked.Items),
		"quotes_calculated":    batch.SuccessCount,
	}
}

// ParallelSearch fans the requests out over the worker pool and
// aggregates the results, deduplicating hotels by first occurrence in
// request order.
func (s *WorkflowService) ParallelSearch(ctx context.Context, reqs []search.Request) map[string]any {
	perSearch := make([][]search.Result, len(reqs))

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i, req := range reqs {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		wg.Add(1)
		go func(i int, req search.Request) {
			defer wg.Done()
			defer sem.Release(1)
			perSearch[i] = s.search.Search(req)
		}(i, req)
	}
	wg.Wait()

	var all []search.Result
	counts := make([]int, len(perSearch))
	for i, results := range perSearch {
		counts[i] = len(results)
		all = append(all, results...)
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]search.Result, 0, len(all))
	for _, r := range all {
		if _, ok := seen[r.Hotel.ID]; ok {
			continue
		}
		seen[r.Hotel.ID] = struct{}{}
		unique = append(unique, r)
	}

	return map[string]any{
		"total_searches":     len(reqs),
		"total_results":      len(all),
		"unique_hotels":      len(unique),
		"results_per_search": counts,
		"unique_results":     unique,
	}
}

// SearchWithTimeout bounds one search by a deadline. On expiry it
// reports no result; the underlying search keeps running to completion
// unobserved, and no cancellation reaches it.
func (s *WorkflowService) SearchWithTimeout(ctx context.Context, req search.Request, timeout time.Duration) ([]search.Result, bool) {
	done := make(chan []search.Result, 1)
	go func() {
		done <- s.search.Search(req)
	}()

	select {
	case results := <-done:
		return results, true
	case <-time.After(timeout):
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}
