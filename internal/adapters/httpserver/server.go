package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uezdny/konditer/internal/domain"
	"github.com/uezdny/konditer/internal/usecase"
)

// Server is the boundary the rest of the UI talks to: catalog options,
// cart operations, the builder submission, and the admin export.
type Server struct {
	mux      *http.ServeMux
	cart     *usecase.CartUC
	catalog  *usecase.CatalogUC
	products *usecase.ProductUC
	orders   domain.OrderRepo

	// newBuilder yields a fresh wizard per submission request.
	newBuilder func() *usecase.BuilderUC
}

func New(cart *usecase.CartUC, catalog *usecase.CatalogUC, products *usecase.ProductUC, orders domain.OrderRepo, newBuilder func() *usecase.BuilderUC) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		cart:       cart,
		catalog:    catalog,
		products:   products,
		orders:     orders,
		newBuilder: newBuilder,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/options", s.handleOptions)
	s.mux.HandleFunc("GET /api/products", s.handleProducts)

	s.mux.HandleFunc("GET /api/cart", s.handleCart)
	s.mux.HandleFunc("GET /api/cart/stream", s.handleCartStream)
	s.mux.HandleFunc("POST /api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("POST /api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("POST /api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("POST /api/cart/clear", s.handleCartClear)

	s.mux.HandleFunc("POST /api/builder/price", s.handleBuilderPrice)
	s.mux.HandleFunc("POST /api/builder/submit", s.handleBuilderSubmit)

	s.mux.HandleFunc("GET /admin/export/orders.xlsx", s.handleExportOrders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTooManyFillings),
		errors.Is(err, domain.ErrTooManyColors),
		errors.Is(err, domain.ErrBadTiers),
		errors.Is(err, domain.ErrDateTooSoon),
		errors.Is(err, domain.ErrCommentTooLong),
		errors.Is(err, usecase.ErrIncompleteStep):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Catalog(r.Context())
	writeJSON(w, http.StatusOK, struct {
		*domain.Catalog
		Colors []string `json:"colors"`
	}{Catalog: cat, Colors: domain.BuilderColors})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type cartView struct {
	Items      domain.Cart `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int         `json:"totalPrice"`
}

func view(cart domain.Cart) cartView {
	return cartView{Items: cart, TotalItems: cart.TotalItems(), TotalPrice: cart.TotalPrice()}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view(s.cart.Items()))
}

// handleCartStream pushes a cart snapshot to the client after every change,
// local or from another context, as server-sent events.
func (s *Server) handleCartStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	updates := make(chan domain.Cart, 8)
	unsubscribe := s.cart.Subscribe(func(c domain.Cart) {
		select {
		case updates <- c:
		default: // a slow client skips intermediate states, last one still wins
		}
	})
	defer unsubscribe()

	send := func(c domain.Cart) bool {
		data, err := json.Marshal(view(c))
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(s.cart.Items()) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case c := <-updates:
			if !send(c) {
				return
			}
		}
	}
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		http.Error(w, "productId required", http.StatusBadRequest)
		return
	}
	if _, err := s.products.QuickAdd(r.Context(), s.cart, req.ProductID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(s.cart.Items()))
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	if err := s.cart.SetQuantity(r.Context(), req.ID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(s.cart.Items()))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	if err := s.cart.RemoveItem(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(s.cart.Items()))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view(s.cart.Items()))
}

func (s *Server) handleBuilderPrice(w http.ResponseWriter, r *http.Request) {
	var cfg domain.CakeConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "bad config", http.StatusBadRequest)
		return
	}
	total := usecase.Price(cfg, s.catalog.Catalog(r.Context()))
	writeJSON(w, http.StatusOK, map[string]int{"totalPrice": total})
}

// handleBuilderSubmit replays a submitted configuration through the wizard
// so every step guard and field invariant applies, then finalizes it.
func (s *Server) handleBuilderSubmit(w http.ResponseWriter, r *http.Request) {
	cfg, sketch, err := decodeSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := s.newBuilder()
	if err := replay(b, cfg, sketch); err != nil {
		writeError(w, err)
		return
	}

	item, err := b.Submit(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrIncompleteStep) || errors.Is(err, usecase.ErrNotLastStep) {
			writeError(w, err)
			return
		}
		// order transmission is the one user-visible failure
		log.Error().Err(err).Msg("custom order submission failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Item domain.LineItem `json:"item"`
		Cart cartView        `json:"cart"`
	}{Item: *item, Cart: view(s.cart.Items())})
}

func decodeSubmission(r *http.Request) (domain.CakeConfig, *domain.Sketch, error) {
	var cfg domain.CakeConfig

	if ct := r.Header.Get("Content-Type"); strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			return cfg, nil, errors.New("bad multipart form")
		}
		if err := json.Unmarshal([]byte(r.FormValue("config")), &cfg); err != nil {
			return cfg, nil, errors.New("bad config")
		}
		file, header, err := r.FormFile("sketch")
		if err != nil {
			return cfg, nil, nil // sketch is optional
		}
		defer file.Close()
		data := make([]byte, header.Size)
		if _, err := file.Read(data); err != nil && err.Error() != "EOF" {
			return cfg, nil, errors.New("bad sketch upload")
		}
		return cfg, &domain.Sketch{Filename: header.Filename, Data: data}, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		return cfg, nil, errors.New("bad config")
	}
	return cfg, nil, nil
}

// replay pushes cfg field by field through the wizard and walks it to the
// last step. Invariant violations surface as 422s from the caller.
func replay(b *usecase.BuilderUC, cfg domain.CakeConfig, sketch *domain.Sketch) error {
	b.SetEvent(cfg.Event)
	b.SetType(cfg.Type)
	b.SetShape(cfg.Shape)
	b.SetWeight(cfg.Weight)
	for _, f := range cfg.Fillings {
		if err := b.ToggleFilling(f); err != nil {
			return err
		}
	}
	if cfg.Tiers != 0 {
		if err := b.SetTiers(cfg.Tiers); err != nil {
			return err
		}
	}
	b.SetDecoration(cfg.Decoration)
	b.SetCoating(cfg.Coating)
	for _, c := range cfg.Colors {
		if err := b.ToggleColor(c); err != nil {
			return err
		}
	}
	if err := b.SetDate(cfg.Date); err != nil {
		return err
	}
	if sketch != nil {
		b.SetSketch(sketch)
	} else if cfg.Sketch != nil {
		b.SetSketch(cfg.Sketch)
	}
	if err := b.SetComment(cfg.Comment); err != nil {
		return err
	}

	for b.Step() != usecase.StepComment {
		if err := b.Next(); err != nil {
			return fmt.Errorf("step %s: %w", b.Step(), err)
		}
	}
	return nil
}
