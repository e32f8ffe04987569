package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/internal/store"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/iwvelando/landscape-calculator/pkg/currency"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/output"
	"github.com/iwvelando/landscape-calculator/pkg/plans"
	"github.com/iwvelando/landscape-calculator/pkg/share"
	"github.com/iwvelando/landscape-calculator/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the handler returned by NewHandler.
type Options struct {
	Catalog     *catalog.Catalog
	Store       store.Store
	StoreKey    string
	MaxBodySize int64
	ShareURL    string
	Version     string
	RateLimiter *RateLimiter
}

type handler struct {
	logger      *zap.Logger
	catalog     *catalog.Catalog
	store       store.Store
	storeKey    string
	maxBodySize int64
	shareURL    string
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		logger:      logger,
		catalog:     opts.Catalog,
		store:       opts.Store,
		storeKey:    opts.StoreKey,
		maxBodySize: opts.MaxBodySize,
		shareURL:    opts.ShareURL,
		version:     strings.TrimSpace(opts.Version),
	}
	if h.catalog == nil {
		h.catalog = catalog.Default()
	}
	if h.store == nil {
		h.store = store.NewMemoryStore()
	}
	if h.storeKey == "" {
		h.storeKey = constants.DefaultStoreKey
	}
	if h.maxBodySize <= 0 {
		h.maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if h.shareURL == "" {
		h.shareURL = "/"
	}
	if h.version == "" {
		h.version = "dev"
	}

	mux := http.NewServeMux()

	// Calculation from a JSON body or from share-link query parameters
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Pricing tables
	mux.HandleFunc("/api/catalog", h.handleCatalog)

	// Share link construction
	mux.HandleFunc("/api/share", h.handleShare)

	// Last-used inputs per client
	mux.HandleFunc("/api/inputs/{clientId}", h.handleInputs)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	var root http.Handler = mux
	if opts.RateLimiter != nil {
		root = rateLimit(opts.RateLimiter, root)
	}
	return requestLogger(logger, root)
}

type calculateRequest struct {
	Size     *float64        `json:"size"`
	Features map[string]bool `json:"features"`
	Budget   string          `json:"budget"`
	Currency string          `json:"currency"`
	ClientID string          `json:"clientId"`
	Compare  bool            `json:"compare"`
}

type calculateResponse struct {
	ID         string                         `json:"id"`
	ClientID   string                         `json:"clientId,omitempty"`
	Result     calculator.Result              `json:"result"`
	Popular    string                         `json:"popular,omitempty"`
	Schedules  map[string][]plans.Installment `json:"schedules"`
	ShareURL   string                         `json:"shareUrl"`
	CSV        string                         `json:"csv"`
	Comparison []calculator.Result            `json:"comparison,omitempty"`
	Duration   string                         `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	var (
		in       estimator.Input
		code     currency.Code
		clientID string
		persist  bool
		compare  bool
		err      error
	)

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		in, err = share.Decode(query)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		code, err = currency.ParseCode(query.Get("currency"))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		compare = query.Get("compare") == constants.QueryValueSelected
	case http.MethodPost:
		var req calculateRequest
		if !h.decodeJSON(w, r, &req, op) {
			return
		}
		in = req.input()
		code, err = currency.ParseCode(req.Currency)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		// Only callers that already hold an id get their inputs remembered; an
		// anonymous request is issued an id it may send back later.
		persist = strings.TrimSpace(req.ClientID) != ""
		clientID, err = resolveClientID(req.ClientID)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		compare = req.Compare
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, err := calculator.Calculate(h.logger, h.catalog, in)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	var comparison []calculator.Result
	if compare {
		all, err := calculator.CompareBudgets(h.logger, h.catalog, in)
		if err != nil {
			h.respondError(w, statusFor(err), err.Error(), op)
			return
		}
		for _, c := range all {
			comparison = append(comparison, c.In(code))
		}
	}

	if persist {
		if err := store.SaveInputs(h.store, h.clientKey(clientID), in); err != nil {
			// Persistence is best effort.
			h.logger.Warn("failed to save last-used inputs",
				zap.String("op", op),
				zap.String("clientId", clientID),
				zap.Error(err),
			)
		}
	}

	shareURL, err := share.BuildURL(h.shareURL, in)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	converted := result.In(code)
	response := calculateResponse{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		Result:     converted,
		Schedules:  make(map[string][]plans.Installment, len(converted.Plans)),
		ShareURL:   shareURL,
		CSV:        output.CsvString(converted),
		Comparison: comparison,
	}
	if p, ok := converted.Recommended(); ok {
		response.Popular = p.Key
	}
	for _, p := range converted.Plans {
		response.Schedules[p.Key] = p.Schedule()
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("calculation computed",
		zap.String("op", op),
		zap.String("id", response.ID),
		zap.Float64("baseCost", result.BaseCost),
		zap.String("currency", string(code)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (req calculateRequest) input() estimator.Input {
	in := estimator.Input{
		Budget:   catalog.BudgetTier(strings.TrimSpace(req.Budget)),
		Features: make(map[catalog.Feature]bool, len(req.Features)),
	}
	if req.Size != nil {
		in.AreaSize = *req.Size
	}
	for name, on := range req.Features {
		in.Features[catalog.Feature(name)] = on
	}
	return in
}

type catalogFeature struct {
	ID            catalog.Feature  `json:"id" yaml:"id"`
	UnitCost      float64          `json:"unitCost" yaml:"unitCost"`
	Unit          catalog.UnitKind `json:"unit" yaml:"unit"`
	FixedQuantity int              `json:"fixedQuantity,omitempty" yaml:"fixedQuantity,omitempty"`
}

type catalogBudget struct {
	ID         catalog.BudgetTier `json:"id" yaml:"id"`
	Multiplier float64            `json:"multiplier" yaml:"multiplier"`
}

type catalogResponse struct {
	Currency     string                   `json:"currency" yaml:"currency"`
	ExchangeRate float64                  `json:"exchangeRate" yaml:"exchangeRate"`
	Features     []catalogFeature         `json:"features" yaml:"features"`
	Budgets      []catalogBudget          `json:"budgets" yaml:"budgets"`
	Plans        []catalog.PlanDefinition `json:"plans" yaml:"plans"`
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	resp := catalogResponse{
		Currency:     constants.CurrencyAED,
		ExchangeRate: constants.AEDToUSDRate,
		Plans:        h.catalog.Plans(),
	}
	for _, f := range catalog.AllFeatures() {
		if cost, ok := h.catalog.Feature(f); ok {
			resp.Features = append(resp.Features, catalogFeature{
				ID:            f,
				UnitCost:      cost.UnitCost,
				Unit:          cost.Unit,
				FixedQuantity: cost.FixedQuantity,
			})
		}
	}
	for _, t := range catalog.AllBudgetTiers() {
		if m, ok := h.catalog.Multiplier(t); ok {
			resp.Budgets = append(resp.Budgets, catalogBudget{ID: t, Multiplier: m})
		}
	}

	if r.URL.Query().Get("format") == "yaml" {
		data, err := yaml.Marshal(resp)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleCatalog")
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleShare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req calculateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	link, err := share.BuildURL(h.shareURL, req.input())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (h *handler) handleInputs(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleInputs"

	clientID, err := resolveClientID(r.PathValue("clientId"))
	if err != nil || clientID == "" {
		h.respondError(w, http.StatusBadRequest, "invalid client id", op)
		return
	}
	key := h.clientKey(clientID)

	switch r.Method {
	case http.MethodGet:
		in, err := store.LoadInputs(h.store, key)
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error(), op)
			return
		}
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.writeJSON(w, http.StatusOK, in)
	case http.MethodPut:
		var req calculateRequest
		if !h.decodeJSON(w, r, &req, op) {
			return
		}
		in := req.input()
		if err := validation.ValidateInput(h.catalog, in); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if err := store.SaveInputs(h.store, key, in); err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) clientKey(clientID string) string {
	return h.storeKey + ":" + clientID
}

// resolveClientID validates a client id, issuing a new one when empty.
func resolveClientID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.NewString(), nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid client id %q: %w", raw, err)
	}
	return id.String(), nil
}

func statusFor(err error) int {
	if errors.Is(err, validation.ErrInvalidInput) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
