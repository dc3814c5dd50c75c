package futures

import "futurewire/codec"

////// EXCHANGE INFO //////

// ExchangeInformation is the body of GET /fapi/v1/exchangeInfo.
type ExchangeInformation struct {
	Timezone        string        `json:"timezone"`
	ServerTime      uint64        `json:"serverTime"`
	FuturesType     string        `json:"futuresType"`
	RateLimits      []RateLimit   `json:"rateLimits"`
	ExchangeFilters Filters       `json:"exchangeFilters"`
	Assets          []AssetDetail `json:"assets"`
	Symbols         []Symbol      `json:"symbols"`
}

func (e *ExchangeInformation) UnmarshalJSON(data []byte) error {
	type alias ExchangeInformation
	return codec.DecodeRecord("ExchangeInformation", data, (*alias)(e))
}

type RateLimit struct {
	RateLimitType RateLimitType     `json:"rateLimitType"`
	Interval      RateLimitInterval `json:"interval"`
	IntervalNum   uint16            `json:"intervalNum"`
	Limit         uint64            `json:"limit"`
}

func (r *RateLimit) UnmarshalJSON(data []byte) error {
	type alias RateLimit
	return codec.DecodeRecord("RateLimit", data, (*alias)(r))
}

type AssetDetail struct {
	Asset             string       `json:"asset"`
	MarginAvailable   bool         `json:"marginAvailable"`
	AutoAssetExchange codec.Number `json:"autoAssetExchange"`
}

func (a *AssetDetail) UnmarshalJSON(data []byte) error {
	type alias AssetDetail
	return codec.DecodeRecord("AssetDetail", data, (*alias)(a))
}

// Symbol describes one tradable contract and its trading rules.
type Symbol struct {
	Symbol                string        `json:"symbol"`
	Pair                  string        `json:"pair"`
	ContractType          ContractType  `json:"contractType"`
	DeliveryDate          uint64        `json:"deliveryDate"`
	OnboardDate           uint64        `json:"onboardDate"`
	Status                SymbolStatus  `json:"status"`
	MaintMarginPercent    codec.Number  `json:"maintMarginPercent"`
	RequiredMarginPercent codec.Number  `json:"requiredMarginPercent"`
	BaseAsset             string        `json:"baseAsset"`
	QuoteAsset            string        `json:"quoteAsset"`
	PricePrecision        uint16        `json:"pricePrecision"`
	QuantityPrecision     uint16        `json:"quantityPrecision"`
	BaseAssetPrecision    uint64        `json:"baseAssetPrecision"`
	QuotePrecision        uint64        `json:"quotePrecision"`
	UnderlyingType        string        `json:"underlyingType"`
	UnderlyingSubType     []string      `json:"underlyingSubType"`
	SettlePlan            uint64        `json:"settlePlan"`
	TriggerProtect        codec.Number  `json:"triggerProtect"`
	Filters               Filters       `json:"filters"`
	OrderTypes            []OrderType   `json:"orderTypes"`
	TimeInForce           []TimeInForce `json:"timeInForce"`
}

func (s *Symbol) UnmarshalJSON(data []byte) error {
	type alias Symbol
	return codec.DecodeRecord("Symbol", data, (*alias)(s))
}

// Symbol returns the descriptor for name.
func (e *ExchangeInformation) Symbol(name string) (*Symbol, bool) {
	for i := range e.Symbols {
		if e.Symbols[i].Symbol == name {
			return &e.Symbols[i], true
		}
	}
	return nil, false
}

// PriceFilter returns the symbol's PRICE_FILTER rule.
func (s *Symbol) PriceFilter() (*PriceFilter, bool) {
	f, ok := s.Filters.Find(FilterTypePrice)
	if !ok {
		return nil, false
	}
	pf, ok := f.(*PriceFilter)
	return pf, ok
}

// LotSize returns the symbol's LOT_SIZE rule.
func (s *Symbol) LotSize() (*LotSizeFilter, bool) {
	f, ok := s.Filters.Find(FilterTypeLotSize)
	if !ok {
		return nil, false
	}
	ls, ok := f.(*LotSizeFilter)
	return ls, ok
}
