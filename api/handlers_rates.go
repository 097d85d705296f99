package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/status-im/token-price-resolver/currency"
	"github.com/status-im/token-price-resolver/registry"
)

// ExchangeRateResponse is the body of /api/v1/exchange_rate
type ExchangeRateResponse struct {
	Address  string  `json:"address"`
	Category string  `json:"category"`
	Rate     *string `json:"rate"`
	Source   string  `json:"source"`
	IsScam   bool    `json:"is_scam"`
}

// CurrencyValueResponse is the body of /api/v1/currency_value
type CurrencyValueResponse struct {
	DisplayValue string  `json:"display_value"`
	USDValue     *string `json:"usd_value"`
}

// rateParams reads and validates the address and upstream rate parameters
func (s *Server) rateParams(w http.ResponseWriter, r *http.Request) (address, apiRate, nativeRate string, ok bool) {
	if raw := strings.TrimSpace(r.URL.Query().Get("chain_id")); raw != "" {
		chainID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, "chain_id must be an integer")
			return "", "", "", false
		}
		if chainID != s.resolver.ChainID() {
			s.sendError(w, http.StatusNotFound, "chain %d is not served", chainID)
			return "", "", "", false
		}
	}

	address = getParamLowercase(r, "address")
	if address != "" {
		canonical, err := registry.CanonicalAddress(address)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, "invalid address %q", address)
			return "", "", "", false
		}
		address = canonical
	}

	apiRate = strings.TrimSpace(r.URL.Query().Get("api_rate"))
	nativeRate = strings.TrimSpace(r.URL.Query().Get("native_rate"))
	for key, value := range map[string]string{"api_rate": apiRate, "native_rate": nativeRate} {
		if value == "" {
			continue
		}
		if _, err := decimal.NewFromString(value); err != nil {
			s.sendError(w, http.StatusBadRequest, "%s must be a decimal number", key)
			return "", "", "", false
		}
	}

	return address, apiRate, nativeRate, true
}

func (s *Server) handleExchangeRate(w http.ResponseWriter, r *http.Request) {
	address, apiRate, nativeRate, ok := s.rateParams(w, r)
	if !ok {
		return
	}

	resolution := s.resolver.ResolveDetailed(address, apiRate, nativeRate)

	response := ExchangeRateResponse{
		Address:  address,
		Category: resolution.Category.String(),
		Source:   string(resolution.Source),
		IsScam:   address != "" && s.classifier.IsScam(s.resolver.ChainID(), address),
	}
	if resolution.Found {
		rate := resolution.Rate
		response.Rate = &rate
	}

	s.sendJSONResponse(w, response)
}

func (s *Server) handleCurrencyValue(w http.ResponseWriter, r *http.Request) {
	address, apiRate, nativeRate, ok := s.rateParams(w, r)
	if !ok {
		return
	}

	accuracy, err := getIntParam(r, "accuracy")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "%v", err)
		return
	}
	accuracyUSD, err := getIntParam(r, "accuracy_usd")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "%v", err)
		return
	}

	value, err := s.calculator.GetCurrencyValue(currency.Params{
		Value:        r.URL.Query().Get("value"),
		Decimals:     r.URL.Query().Get("decimals"),
		Accuracy:     accuracy,
		AccuracyUSD:  accuracyUSD,
		TokenAddress: address,
		APIRate:      apiRate,
		NativeRate:   nativeRate,
	})
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "%v", err)
		return
	}

	response := CurrencyValueResponse{DisplayValue: value.Display}
	if value.HasUSD {
		usd := value.USD
		response.USDValue = &usd
	}

	s.sendJSONResponse(w, response)
}
