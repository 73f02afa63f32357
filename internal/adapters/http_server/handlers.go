package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"homenest/internal/app"
	"homenest/internal/domain"
)

type Handlers struct {
	Props   *app.PropertyService
	Reviews *app.ReviewService
}

func (s *Server) MountHandlers(h *Handlers, verifier domain.TokenVerifier) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("homenest server is running"))
	})
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// open routes
	s.mux.Get("/properties", h.listProperties)
	s.mux.Get("/properties/featured", h.listFeatured)
	s.mux.Get("/reviews", h.listReviewsByReviewer)
	s.mux.Get("/reviews/{propertyId}", h.listReviewsByProperty)

	// protected routes
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(verifier))
		r.Post("/properties", h.createProperty)
		r.Get("/properties-details/{id}", h.getProperty)
		r.Get("/my-property", h.listMyProperties)
		r.Patch("/properties/{id}", h.updateProperty)
		r.Delete("/properties/{id}", h.deleteProperty)
		r.Post("/reviews", h.createReview)
	})
}

// ---- request/response shapes ----

type propertyRequest struct {
	VendorEmail string  `json:"vendorEmail"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
}

type propertyResponse struct {
	ID          int64      `json:"id"`
	VendorEmail string     `json:"vendorEmail"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type reviewRequest struct {
	PropertyID    int64   `json:"propertyId"`
	ReviewerEmail string  `json:"reviewerEmail"`
	Text          string  `json:"text"`
	Rating        float64 `json:"rating"`
	PropertyName  string  `json:"propertyName"`
	Thumbnail     string  `json:"thumbnail"`
}

type reviewResponse struct {
	ID            int64      `json:"id"`
	PropertyID    int64      `json:"propertyId"`
	ReviewerEmail string     `json:"reviewerEmail"`
	Text          string     `json:"text"`
	Rating        float64    `json:"rating"`
	PropertyName  string     `json:"propertyName"`
	Thumbnail     string     `json:"thumbnail"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func toPropertyResponse(p domain.Property) propertyResponse {
	return propertyResponse{
		ID:          p.ID,
		VendorEmail: p.VendorEmail,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Location:    p.Location,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPropertyResponses(ps []domain.Property) []propertyResponse {
	out := make([]propertyResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPropertyResponse(p))
	}
	return out
}

func toReviewResponses(rs []domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(rs))
	for _, rv := range rs {
		out = append(out, reviewResponse{
			ID:            rv.ID,
			PropertyID:    rv.PropertyID,
			ReviewerEmail: rv.ReviewerEmail,
			Text:          rv.Text,
			Rating:        rv.Rating,
			PropertyName:  rv.PropertyName,
			Thumbnail:     rv.Thumbnail,
			CreatedAt:     rv.CreatedAt,
			UpdatedAt:     rv.UpdatedAt,
		})
	}
	return out
}

// ---- write helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// All deliberate error paths respond with a JSON {"message": ...} body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeRepoError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden access")
	default:
		log.Error().Err(err).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// ---- property handlers ----

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	caller, _ := CallerEmail(r.Context())
	if req.VendorEmail == "" {
		req.VendorEmail = caller
	}

	id, err := h.Props.Create(r.Context(), domain.Property{
		VendorEmail: req.VendorEmail,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"insertedId": id})
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Props.List(r.Context())
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponses(ps))
}

func (h *Handlers) listFeatured(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Props.Featured(r.Context())
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponses(ps))
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "id must be a number")
		return
	}
	p, err := h.Props.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponse(p))
}

func (h *Handlers) listMyProperties(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	ps, err := h.Props.ListByVendor(r.Context(), email)
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toPropertyResponses(ps))
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "id must be a number")
		return
	}
	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	caller, _ := CallerEmail(r.Context())

	res, err := h.Props.Update(r.Context(), id, caller, domain.PropertyUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"modifiedProperty": res.PropertiesModified,
		"modifiedReviews":  res.ReviewsModified,
	})
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "id must be a number")
		return
	}
	caller, _ := CallerEmail(r.Context())

	res, err := h.Props.Delete(r.Context(), id, caller)
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"deletedProperty": res.PropertiesDeleted,
		"deletedReviews":  res.ReviewsDeleted,
	})
}

// ---- review handlers ----

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	caller, _ := CallerEmail(r.Context())
	if req.ReviewerEmail == "" {
		req.ReviewerEmail = caller
	}

	id, err := h.Reviews.Create(r.Context(), domain.Review{
		PropertyID:    req.PropertyID,
		ReviewerEmail: req.ReviewerEmail,
		Text:          req.Text,
		Rating:        req.Rating,
		PropertyName:  req.PropertyName,
		Thumbnail:     req.Thumbnail,
	})
	if err != nil {
		writeRepoError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"insertedId": id})
}

func (h *Handlers) listReviewsByReviewer(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	rs, err := h.Reviews.ListByReviewer(r.Context(), email)
	if err != nil {
		writeRepoError(w, err, "reviews not found")
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponses(rs))
}

func (h *Handlers) listReviewsByProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "propertyId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "propertyId must be a number")
		return
	}
	rs, err := h.Reviews.ListByProperty(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "reviews not found")
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponses(rs))
}
