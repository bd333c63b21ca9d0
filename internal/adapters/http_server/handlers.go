package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dnmkhamed/hotel-boq/internal/app"
	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/events"
	"github.com/dnmkhamed/hotel-boq/internal/quote"
	"github.com/dnmkhamed/hotel-boq/internal/search"
)

// Report endpoints fall back to the demo window when no range is given.
const (
	defaultReportFrom = "2024-01-01"
	defaultReportTo   = "2024-01-31"
)

// Handlers bundles the services behind the JSON API.
type Handlers struct {
	Store    *app.Store
	Search   *app.SearchService
	Quotes   *app.QuoteService
	Booking  *app.BookingService
	Workflow *app.WorkflowService
	Reports  *app.ReportService
	Bus      *events.Bus
	Clock    domain.Clock
	IDs      domain.IDSource
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/health", h.health)

	s.mux.Get("/api/hotels", h.listHotels)
	s.mux.Get("/api/rooms/{hotel_id}", h.listRooms)
	s.mux.Get("/api/availability", h.checkAvailability)
	s.mux.Get("/api/lazy-search", h.lazySearch)

	s.mux.Get("/api/quote", h.getQuote)
	s.mux.Post("/api/async-quote", h.quoteBatch)
	s.mux.Get("/api/memo-stats", h.memoStats)

	s.mux.Get("/api/cart", h.listCart)
	s.mux.Post("/api/cart", h.addToCart)
	s.mux.Delete("/api/cart/{item_id}", h.removeFromCart)
	s.mux.Post("/api/booking", h.createBooking)
	s.mux.Post("/api/validate-booking", h.validateBooking)
	s.mux.Post("/api/compose-booking", h.composeBooking)
	s.mux.Post("/api/cancel-booking", h.cancelBooking)

	s.mux.Post("/api/end-to-end", h.endToEnd)
	s.mux.Post("/api/parallel-search", h.parallelSearch)

	s.mux.Get("/api/events", h.listEvents)
	s.mux.Get("/api/subscribers", h.subscriberCount)
	s.mux.Get("/api/frp-state", h.busState)

	s.mux.Get("/api/reports/overview", h.reportOverview)
	s.mux.Get("/api/reports/revenue", h.reportRevenue)
	s.mux.Get("/api/reports/occupancy", h.reportOccupancy)
	s.mux.Get("/api/reports/cancellations", h.reportCancellations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// readJSON decodes the body into dst and writes the problem response
// itself on failure, so callers just bail out.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	ds := h.Store.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"hotels_count":     len(ds.Hotels),
		"room_types_count": len(ds.RoomTypes),
		"rate_plans_count": len(ds.RatePlans),
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filters domain.SearchFilters
	payload := map[string]any{"city": nil, "guests": nil, "features": nil}
	if city := q.Get("city"); city != "" {
		filters.City = &city
		payload["city"] = city
	}
	if gs := q.Get("guests"); gs != "" {
		g, err := strconv.Atoi(gs)
		if err != nil || g <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid guests", "guests must be a positive integer")
			return
		}
		filters.Guests = &g
		payload["guests"] = g
	}
	if fs := q.Get("features"); fs != "" {
		filters.Features = strings.Split(fs, ",")
		payload["features"] = fs
	}

	hotels := h.Search.FilterHotels(filters)
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	h.Bus.PublishSearch(payload)

	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

type roomView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	Size     string   `json:"size"`
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "hotel_id")
	rooms := h.Store.Dataset().HotelRooms(hotelID)

	views := make([]roomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, roomView{
			ID:       room.ID,
			Name:     room.Name,
			Capacity: room.Capacity,
			Features: room.Features,
			Size:     room.Size,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": views})
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomTypeID := q.Get("room_type_id")
	checkin := q.Get("checkin")
	checkout := q.Get("checkout")
	if roomTypeID == "" || checkin == "" || checkout == "" {
		writeProblem(w, http.StatusBadRequest, "Missing parameters", "room_type_id, checkin and checkout are required")
		return
	}

	// An empty availability snapshot counts as available. A recorded row
	// inside the stay counts regardless of its remaining quantity; the
	// strict check lives in the booking validators.
	ds := h.Store.Dataset()
	available := len(ds.Availability) == 0
	for _, a := range ds.Availability {
		if a.RoomTypeID == roomTypeID && a.Date >= checkin && a.Date < checkout {
			available = true
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available":    available,
		"room_type_id": roomTypeID,
		"checkin":      checkin,
		"checkout":     checkout,
	})
}

type lazyHotelView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Stars int    `json:"stars"`
}

type lazyRoomView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type lazyOfferView struct {
	Hotel         lazyHotelView `json:"hotel"`
	RoomType      lazyRoomView  `json:"room_type"`
	PricePerNight int           `json:"price_per_night"`
	TotalPrice    int           `json:"total_price"`
	Available     bool          `json:"available"`
}

// lazySearch walks the generator directly: no scoring, first matches
// win, and the walk stops as soon as the limit is reached.
func (h *Handlers) lazySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := search.Request{Limit: 10}
	if city := q.Get("city"); city != "" {
		req.City = city
	}
	if gs := q.Get("guests"); gs != "" {
		g, err := strconv.Atoi(gs)
		if err != nil || g <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid guests", "guests must be a positive integer")
			return
		}
		req.Guests = g
	}
	if mp := q.Get("max_price"); mp != "" {
		m, err := strconv.Atoi(mp)
		if err != nil || m <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid max_price", "max_price must be a positive integer")
			return
		}
		req.MaxPrice = m
	}
	if ls := q.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		req.Limit = l
	}

	offers := make([]lazyOfferView, 0, req.Limit)
	for res := range h.Search.Index().Results(req) {
		offers = append(offers, lazyOfferView{
			Hotel: lazyHotelView{
				ID:    res.Hotel.ID,
				Name:  res.Hotel.Name,
				City:  res.Hotel.City,
				Stars: res.Hotel.Stars,
			},
			RoomType: lazyRoomView{
				ID:       res.Room.ID,
				Name:     res.Room.Name,
				Capacity: res.Room.Capacity,
			},
			PricePerNight: res.PricePerNight,
			TotalPrice:    res.TotalPrice,
			Available:     res.Available,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": offers, "count": len(offers)})
}

func (h *Handlers) getQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	for _, p := range []string{"hotel_id", "room_type_id", "rate_id", "checkin", "checkout"} {
		if q.Get(p) == "" {
			writeProblem(w, http.StatusBadRequest, "Missing parameters", p+" is required")
			return
		}
	}
	guests, err := strconv.Atoi(q.Get("guests"))
	if err != nil || guests <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid guests", "guests must be a positive integer")
		return
	}

	rec, err := h.Quotes.Cache().Quote(quote.Key{
		HotelID:    q.Get("hotel_id"),
		RoomTypeID: q.Get("room_type_id"),
		RateID:     q.Get("rate_id"),
		Checkin:    q.Get("checkin"),
		Checkout:   q.Get("checkout"),
		Guests:     guests,
	})
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid quote request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handlers) quoteBatch(w http.ResponseWriter, r *http.Request) {
	var items []app.QuoteItem
	if !readJSON(w, r, &items) {
		return
	}
	writeJSON(w, http.StatusOK, h.Workflow.QuoteBatch(r.Context(), items))
}

func (h *Handlers) memoStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Quotes.Cache().Stats())
}

func (h *Handlers) listCart(w http.ResponseWriter, r *http.Request) {
	items := h.Store.Cart()
	if items == nil {
		items = []domain.CartItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// addToCart runs the item through the hold pipeline before it lands in
// the cart, so unpriceable or overbooked items never get held.
func (h *Handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if !readJSON(w, r, &item) {
		return
	}
	item.ID = h.IDs.NewID("cart")

	ds := h.Store.Dataset()
	held, err := h.Booking.HoldBooking(domain.Guest{}, []domain.CartItem{item}, ds.Prices, ds.Availability).Unpack()
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid cart item", err.Error())
		return
	}

	h.Store.HoldItem(item)
	h.Bus.PublishHold(map[string]any{
		"id":           item.ID,
		"hotel_id":     item.HotelID,
		"room_type_id": item.RoomTypeID,
		"checkin":      item.Checkin,
		"checkout":     item.Checkout,
		"guests":       item.Guests,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"cart_size": len(h.Store.Cart()),
		"item_id":   item.ID,
		"hold_id":   held.HoldID,
		"total":     held.Total,
	})
}

func (h *Handlers) removeFromCart(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if !h.Store.RemoveHold(itemID) {
		writeProblem(w, http.StatusNotFound, "Not Found", "cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart_size": len(h.Store.Cart())})
}

type bookingRequest struct {
	GuestID       string            `json:"guest_id"`
	Items         []domain.CartItem `json:"items"`
	Total         int               `json:"total"`
	PaymentMethod string            `json:"payment_method"`
}

// createBooking records the booking and its payment as supplied. The
// validated rails are /api/validate-booking and /api/end-to-end.
func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.GuestID == "" {
		req.GuestID = "guest_1"
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "credit_card"
	}

	now := h.Clock.Now()
	booking := domain.Booking{
		ID:        h.IDs.NewID("booking"),
		GuestID:   req.GuestID,
		Items:     req.Items,
		Total:     req.Total,
		Status:    domain.StatusConfirmed,
		CreatedAt: now.Format(domain.DateLayout),
	}
	h.Store.AddBooking(booking)

	h.Store.AddPayment(domain.Payment{
		ID:        h.IDs.NewID("payment"),
		BookingID: booking.ID,
		Amount:    booking.Total,
		TS:        now.Format("2006-01-02T15:04:05"),
		Method:    req.PaymentMethod,
	})

	h.Bus.PublishBooked(map[string]any{
		"booking_id": booking.ID,
		"total":      booking.Total,
		"guest_id":   booking.GuestID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"booking_id": booking.ID,
		"total":      booking.Total,
		"status":     booking.Status,
	})
}

type validateBookingRequest struct {
	ID      string            `json:"id"`
	GuestID string            `json:"guest_id"`
	Items   []domain.CartItem `json:"items"`
	Total   int               `json:"total"`
}

func (h *Handlers) validateBooking(w http.ResponseWriter, r *http.Request) {
	var req validateBookingRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		req.ID = h.IDs.NewID("booking")
	}
	if req.GuestID == "" {
		req.GuestID = "guest_1"
	}

	booking := domain.Booking{
		ID:        req.ID,
		GuestID:   req.GuestID,
		Items:     req.Items,
		Total:     req.Total,
		Status:    domain.StatusPending,
		CreatedAt: h.Clock.Now().Format(domain.DateLayout),
	}

	ds := h.Store.Dataset()
	validated, err := domain.ValidateBooking(booking, ds.Prices, ds.Availability, ds.Rules).Unpack()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
		return
	}

	h.Bus.PublishBooked(map[string]any{
		"id":       validated.ID,
		"guest_id": validated.GuestID,
		"total":    validated.Total,
		"status":   validated.Status,
	})
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "booking": map[string]any{
		"id":       validated.ID,
		"guest_id": validated.GuestID,
		"total":    validated.Total,
		"status":   validated.Status,
	}})
}

func (h *Handlers) composeBooking(w http.ResponseWriter, r *http.Request) {
	var req app.ComposedBooking
	if !readJSON(w, r, &req) {
		return
	}

	booked, err := h.Booking.ComposeBooking(req).Unpack()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "booking": booked})
}

type cancelBookingRequest struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelBookingRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.BookingID == "" {
		writeProblem(w, http.StatusBadRequest, "Missing booking_id", "booking_id is required")
		return
	}

	cancelled, ok := h.Store.CancelBooking(req.BookingID)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}

	h.Bus.PublishCancelled(cancelled.ID, req.Reason)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"booking_id": cancelled.ID,
		"status":     cancelled.Status,
	})
}

type endToEndRequest struct {
	Search search.Request `json:"search"`
	Guest  domain.Guest   `json:"guest"`
}

func (h *Handlers) endToEnd(w http.ResponseWriter, r *http.Request) {
	var req endToEndRequest
	if !readJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Workflow.EndToEnd(r.Context(), req.Search, req.Guest))
}

func (h *Handlers) parallelSearch(w http.ResponseWriter, r *http.Request) {
	var reqs []search.Request
	if !readJSON(w, r, &reqs) {
		return
	}
	writeJSON(w, http.StatusOK, h.Workflow.ParallelSearch(r.Context(), reqs))
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	history := h.Bus.History(limit, r.URL.Query().Get("name"))
	views := make([]map[string]any, 0, len(history))
	for _, e := range history {
		views = append(views, map[string]any{
			"id":        e.ID,
			"timestamp": e.TS,
			"name":      e.Name,
			"payload":   e.Payload,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": views})
}

func (h *Handlers) subscriberCount(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        name,
		"subscribers": h.Bus.SubscriberCount(name),
	})
}

func (h *Handlers) busState(w http.ResponseWriter, r *http.Request) {
	st := h.Bus.GetState()
	writeJSON(w, http.StatusOK, map[string]any{
		"active_holds":    orEmpty(st.ActiveHolds),
		"recent_bookings": orEmpty(st.RecentBookings),
		"price_changes":   orEmpty(st.PriceChanges),
		"search_queries":  len(st.SearchQueries),
		"cancellations":   orEmpty(st.Cancellations),
	})
}

func orEmpty(entries []map[string]any) []map[string]any {
	if entries == nil {
		return []map[string]any{}
	}
	return entries
}

func (h *Handlers) reportOverview(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, r, h.Reports.Overview(r.Context()))
}

func (h *Handlers) reportRevenue(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportWindow(w, r)
	if !ok {
		return
	}
	h.writeReport(w, r, h.Reports.Revenue(r.Context(), from, to))
}

func (h *Handlers) reportOccupancy(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportWindow(w, r)
	if !ok {
		return
	}
	h.writeReport(w, r, h.Reports.Occupancy(r.Context(), from, to))
}

func (h *Handlers) reportCancellations(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportWindow(w, r)
	if !ok {
		return
	}
	h.writeReport(w, r, h.Reports.Cancellations(r.Context(), from, to))
}

func reportWindow(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = defaultReportFrom
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		to = defaultReportTo
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid date", "from and to must be YYYY-MM-DD dates")
			return "", "", false
		}
	}
	return from, to, true
}

// writeReport marshals once and serves If-None-Match, so pollers of the
// report endpoints revalidate cheap.
func (h *Handlers) writeReport(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "failed to encode report")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write report body")
	}
}
