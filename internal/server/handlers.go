package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/vietddude/ramp/internal/catalog"
	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/registry"
	"github.com/vietddude/ramp/internal/urlbuilder"
)

var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

func decodeBody(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("body", "request body is required")
		}
		return domain.Invalid("body", "invalid JSON body")
	}
	return nil
}

func (s *Server) handleOfframpURL(w http.ResponseWriter, r *http.Request) {
	var params urlbuilder.TransferParams
	if err := decodeBody(r, w, &params); err != nil {
		s.fail(w, r, err)
		return
	}
	if params.FiatAmount != "" && params.FiatCode == "" {
		params.FiatCode = urlbuilder.DefaultFiatCode
	}
	out, err := s.urls.BuildTransferURL(params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, out)
}

type onrampRequest struct {
	urlbuilder.PreselectedParams
	SupportedNetworks []string `json:"supportedNetworks"`
	AssetCode         string   `json:"assetCode"`
}

func (s *Server) handleOnrampURL(w http.ResponseWriter, r *http.Request) {
	var req onrampRequest
	if err := decodeBody(r, w, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(req.SupportedNetworks) > 0 || req.AssetCode != "" {
		offramp := urlbuilder.TransferParams{SupportedNetworks: req.SupportedNetworks, AssetCode: req.AssetCode}
		if err := offramp.Validate(); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	out, err := s.urls.BuildPreselectedURL(r.Context(), req.PreselectedParams)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, out)
}

type orderLookup struct {
	ReferenceID string `json:"referenceId"`
	OrderID     string `json:"orderId"`
	ConnectID   string `json:"connectId"`
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	req := orderLookup{ReferenceID: r.URL.Query().Get("referenceId")}
	if r.Method == http.MethodPost {
		if err := decodeBody(r, w, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	ref := req.ReferenceID
	if ref == "" {
		ref = req.OrderID
	}
	if ref == "" && req.ConnectID != "" {
		order, err := s.orders.OrderDetails(r.Context(), req.ConnectID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeData(w, order)
		return
	}

	order, err := s.orders.FetchStatus(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, order)
}

func (s *Server) handleOrderDetails(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.OrderDetails(r.Context(), r.URL.Query().Get("connectId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, order)
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req orderLookup
	if err := decodeBody(r, w, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	red, err := s.orders.RedeemDepositAddress(r.Context(), req.ReferenceID)
	if errors.Is(err, domain.ErrUpstreamNotFound) {
		s.log.Debug("Request rejected", "path", r.URL.Path, "code", codeUnknownReferenceID, "error", err)
		writeFailure(w, http.StatusNotFound, codeUnknownReferenceID, "Reference id not found or expired")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, red)
}

type assetsResponse struct {
	Assets []domain.AssetListing `json:"assets"`
	Total  int                   `json:"total"`
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Ready() {
		s.fail(w, r, domain.ErrNotReady)
		return
	}

	q := r.URL.Query()
	query := strings.ToLower(strings.TrimSpace(q.Get("q")))
	category := domain.Category(strings.ToLower(q.Get("category")))
	network := domain.Network(strings.ToUpper(q.Get("network")))

	var listings []domain.AssetListing
	if q.Get("featured") == "true" {
		listings = s.registry.Featured()
	} else {
		listings = s.registry.Enabled()
	}

	out := make([]domain.AssetListing, 0, len(listings))
	for _, l := range listings {
		if category != "" && l.Category != category {
			continue
		}
		if network != "" && l.Network != network && !catalog.IsCompatible(network, l.Symbol) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(l.Symbol), query) &&
			!strings.Contains(strings.ToLower(l.Name), query) {
			continue
		}
		out = append(out, l)
	}
	writeData(w, assetsResponse{Assets: out, Total: len(out)})
}

type healthResponse struct {
	Status          string                       `json:"status"`
	Ready           bool                         `json:"ready"`
	BuiltAt         *time.Time                   `json:"builtAt,omitempty"`
	Validation      *registry.ValidationReport   `json:"validation,omitempty"`
	SourceBreakdown map[domain.AddressSource]int `json:"sourceBreakdown,omitempty"`
	WalletTypes     map[domain.WalletType]int    `json:"walletTypes,omitempty"`
	FetchStats      *domain.FetchStats           `json:"fetchStats,omitempty"`
	DynamicError    string                       `json:"dynamicError,omitempty"`
	Dependencies    map[string]string            `json:"dependencies,omitempty"`
}

const healthCheckTimeout = 2 * time.Second

// checkDependencies runs every health check and reports "ok" or the error
// per dependency, plus whether all of them passed.
func (s *Server) checkDependencies(ctx context.Context) (map[string]string, bool) {
	if len(s.checks) == 0 {
		return nil, true
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	out := make(map[string]string, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.log.Warn("Health check failed", "dependency", name, "error", err)
			out[name] = err.Error()
			healthy = false
			continue
		}
		out[name] = "ok"
	}
	return out, healthy
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.registry.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, envelope{
			Data:  healthResponse{Status: "initializing"},
			Error: "Asset registry is still initializing",
			Code:  codeNotReady,
		})
		return
	}

	report := s.registry.ValidateAll()
	builtAt := snap.BuiltAt()
	resp := healthResponse{
		Status:          "healthy",
		Ready:           true,
		BuiltAt:         &builtAt,
		Validation:      &report,
		SourceBreakdown: snap.SourceBreakdown(),
		WalletTypes:     snap.WalletTypes(),
		FetchStats:      snap.FetchStats(),
		DynamicError:    snap.DynamicError(),
	}
	deps, depsHealthy := s.checkDependencies(r.Context())
	resp.Dependencies = deps
	if !report.Valid || resp.DynamicError != "" || !depsHealthy {
		resp.Status = "degraded"
	}
	writeData(w, resp)
}

type callbackResponse struct {
	urlbuilder.Callback
	ConnectID string `json:"connectId,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	assetCode := q.Get("assetCode")
	if assetCode == "" {
		assetCode = q.Get("asset")
	}
	amount := q.Get("assetAmount")
	if amount == "" {
		amount = q.Get("amount")
	}

	var resp callbackResponse
	if id := q.Get("connectId"); urlbuilder.IsValidTrackingID(id) {
		resp.ConnectID = id
	}
	if id := q.Get("orderId"); orderIDPattern.MatchString(id) {
		resp.OrderID = id
	}

	// Redirects of our own onramp links carry a connect id but no amount.
	sanitize := urlbuilder.SanitizeCallback
	if resp.ConnectID != "" || resp.OrderID != "" {
		sanitize = urlbuilder.SanitizeTransferCallback
	}
	cb, err := sanitize(assetCode, amount, q.Get("network"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp.Callback = cb
	writeData(w, resp)
}
