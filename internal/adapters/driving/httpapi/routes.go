package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mitchellh/mapstructure"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// maxBodySize bounds request bodies.
const maxBodySize = 4 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// searchQuery is decoded from the path variables and query string.
type searchQuery struct {
	Kind    string `mapstructure:"kind" validate:"required"`
	Enhance bool   `mapstructure:"enhance"`
}

// airlineQuery is decoded from the path variables.
type airlineQuery struct {
	Code string `mapstructure:"code" validate:"required,alphanum,min=2,max=3"`
}

// enhanceRequest is the body of POST /api/flights/enhance.
type enhanceRequest struct {
	Flights []domain.FlightRecord `json:"flights" validate:"required"`
}

// airlineResponse matches the airline metadata API response shape.
type airlineResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// searchResponse is the data of a successful search.
type searchResponse struct {
	Kind    domain.SearchKind             `json:"kind"`
	Count   int                           `json:"count"`
	Data    json.RawMessage               `json:"data,omitempty"`
	Meta    map[string]any                `json:"meta,omitempty"`
	Flights []domain.EnrichedFlightRecord `json:"flights,omitempty"`
}

// registerRoutes wires HTTP routes.
func (s *Server) registerRoutes(r *mux.Router) {
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/search/error", s.handleClearError).Methods(http.MethodDelete)
	api.HandleFunc("/search/data", s.handleClearData).Methods(http.MethodDelete)
	api.HandleFunc("/search/{kind}", s.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/airlines/stats", s.handleAirlineStats).Methods(http.MethodGet)
	api.HandleFunc("/airlines/{code}", s.handleAirline).Methods(http.MethodGet)
	api.HandleFunc("/flights/enhance", s.handleEnhance).Methods(http.MethodPost)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, s.search.State())
}

func (s *Server) handleClearError(w http.ResponseWriter, _ *http.Request) {
	s.search.ClearError()
	writeData(w, http.StatusOK, s.search.State())
}

func (s *Server) handleClearData(w http.ResponseWriter, _ *http.Request) {
	s.search.ClearData()
	writeData(w, http.StatusOK, s.search.State())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q searchQuery
	if err := decodeVars(r, &q); err != nil {
		writeError(w, err)
		return
	}
	kind := domain.SearchKind(q.Kind)

	var params domain.SearchParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	if q.Enhance && kind.IsValid() && kind != domain.SearchKindFlights {
		writeError(w, fmt.Errorf("%w: enhance only applies to flights", domain.ErrInvalidInput))
		return
	}

	if q.Enhance && kind == domain.SearchKindFlights {
		flights, err := s.search.SearchAndEnhance(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, searchResponse{Kind: kind, Count: len(flights), Flights: flights})
		return
	}

	result, err := s.search.Search(r.Context(), kind, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, searchResponse{
		Kind:  kind,
		Count: result.Count(),
		Data:  result.Data,
		Meta:  result.Meta,
	})
}

func (s *Server) handleAirline(w http.ResponseWriter, r *http.Request) {
	if s.airline == nil {
		writeError(w, fmt.Errorf("airline resolver: %w", domain.ErrSearchUnavailable))
		return
	}
	var q airlineQuery
	if err := decodeVars(r, &q); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, airlineResponse{
		Code: q.Code,
		Name: s.airline.ResolveName(r.Context(), q.Code),
	})
}

func (s *Server) handleAirlineStats(w http.ResponseWriter, _ *http.Request) {
	if s.airline == nil {
		writeError(w, fmt.Errorf("airline resolver: %w", domain.ErrSearchUnavailable))
		return
	}
	writeData(w, http.StatusOK, s.airline.Stats())
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if s.airline == nil {
		writeError(w, fmt.Errorf("airline resolver: %w", domain.ErrSearchUnavailable))
		return
	}
	var req enhanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	writeData(w, http.StatusOK, s.airline.Enhance(r.Context(), req.Flights))
}

// decodeVars fills dst from path variables and the query string, then
// validates it.
func decodeVars(r *http.Request, dst any) error {
	raw := make(map[string]any)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	for k, v := range mux.Vars(r) {
		raw[k] = v
	}

	if err := mapstructure.WeakDecode(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// decodeBody decodes a JSON body. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", domain.ErrInvalidInput, err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// validationMessage shortens validator output for clients.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
}
