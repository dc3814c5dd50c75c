package futures

import (
	"bytes"
	"encoding/json"

	"futurewire/codec"
)

// Filter tags as sent in the filterType field.
const (
	FilterTypePrice            = "PRICE_FILTER"
	FilterTypeLotSize          = "LOT_SIZE"
	FilterTypeMarketLotSize    = "MARKET_LOT_SIZE"
	FilterTypeMaxNumOrders     = "MAX_NUM_ORDERS"
	FilterTypeMaxNumAlgoOrders = "MAX_NUM_ALGO_ORDERS"
	FilterTypeMinNotional      = "MIN_NOTIONAL"
	FilterTypePercentPrice     = "PERCENT_PRICE"
)

// Filter is one symbol trading rule. Tags the package does not know decode to
// *UnknownFilter so new exchange rules never break Symbol decoding.
type Filter interface {
	FilterType() string
}

type PriceFilter struct {
	MinPrice codec.Number `json:"minPrice"`
	MaxPrice codec.Number `json:"maxPrice"`
	TickSize codec.Number `json:"tickSize"`
}

type LotSizeFilter struct {
	MinQty   codec.Number `json:"minQty"`
	MaxQty   codec.Number `json:"maxQty"`
	StepSize codec.Number `json:"stepSize"`
}

type MarketLotSizeFilter struct {
	MinQty   codec.Number `json:"minQty"`
	MaxQty   codec.Number `json:"maxQty"`
	StepSize codec.Number `json:"stepSize"`
}

type MaxNumOrdersFilter struct {
	Limit uint16 `json:"limit"`
}

type MaxNumAlgoOrdersFilter struct {
	Limit uint16 `json:"limit"`
}

type MinNotionalFilter struct {
	Notional codec.Number `json:"notional"`
}

type PercentPriceFilter struct {
	MultiplierUp      codec.Number `json:"multiplierUp"`
	MultiplierDown    codec.Number `json:"multiplierDown"`
	MultiplierDecimal codec.Number `json:"multiplierDecimal"`
}

// UnknownFilter keeps the raw tag and object of an unrecognised rule.
type UnknownFilter struct {
	Type string
	Raw  json.RawMessage
}

func (PriceFilter) FilterType() string            { return FilterTypePrice }
func (LotSizeFilter) FilterType() string          { return FilterTypeLotSize }
func (MarketLotSizeFilter) FilterType() string    { return FilterTypeMarketLotSize }
func (MaxNumOrdersFilter) FilterType() string     { return FilterTypeMaxNumOrders }
func (MaxNumAlgoOrdersFilter) FilterType() string { return FilterTypeMaxNumAlgoOrders }
func (MinNotionalFilter) FilterType() string      { return FilterTypeMinNotional }
func (PercentPriceFilter) FilterType() string     { return FilterTypePercentPrice }
func (f UnknownFilter) FilterType() string        { return f.Type }

// DecodeFilter dispatches one filter object on its filterType tag.
func DecodeFilter(data []byte) (Filter, error) {
	var head struct {
		FilterType *string `json:"filterType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &codec.RecordError{Record: "Filter", Err: err}
	}
	if head.FilterType == nil {
		return nil, &codec.RecordError{Record: "Filter", Err: &codec.MissingFieldError{Field: "filterType"}}
	}

	var (
		f   Filter
		err error
	)
	switch tag := *head.FilterType; tag {
	case FilterTypePrice:
		var v PriceFilter
		err = codec.DecodeRecord("PriceFilter", data, &v)
		f = &v
	case FilterTypeLotSize:
		var v LotSizeFilter
		err = codec.DecodeRecord("LotSizeFilter", data, &v)
		f = &v
	case FilterTypeMarketLotSize:
		var v MarketLotSizeFilter
		err = codec.DecodeRecord("MarketLotSizeFilter", data, &v)
		f = &v
	case FilterTypeMaxNumOrders:
		var v MaxNumOrdersFilter
		err = codec.DecodeRecord("MaxNumOrdersFilter", data, &v)
		f = &v
	case FilterTypeMaxNumAlgoOrders:
		var v MaxNumAlgoOrdersFilter
		err = codec.DecodeRecord("MaxNumAlgoOrdersFilter", data, &v)
		f = &v
	case FilterTypeMinNotional:
		var v MinNotionalFilter
		err = codec.DecodeRecord("MinNotionalFilter", data, &v)
		f = &v
	case FilterTypePercentPrice:
		var v PercentPriceFilter
		err = codec.DecodeRecord("PercentPriceFilter", data, &v)
		f = &v
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		f = &UnknownFilter{Type: tag, Raw: raw}
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Filters is the rule list attached to a symbol or to the whole exchange.
type Filters []Filter

func (fs *Filters) UnmarshalJSON(data []byte) error {
	items, err := codec.SplitArray(data)
	if err != nil {
		return err
	}
	out := make(Filters, 0, len(items))
	for i, raw := range items {
		f, err := DecodeFilter(raw)
		if err != nil {
			return &codec.ElementError{Index: i, Err: err}
		}
		out = append(out, f)
	}
	*fs = out
	return nil
}

func (fs Filters) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(fs))
	for _, f := range fs {
		var (
			b   []byte
			err error
		)
		if u, ok := f.(*UnknownFilter); ok && len(u.Raw) > 0 {
			b = u.Raw
		} else {
			b, err = withTag("filterType", f.FilterType(), f)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return json.Marshal(out)
}

// Find returns the first filter carrying tag.
func (fs Filters) Find(tag string) (Filter, bool) {
	for _, f := range fs {
		if f.FilterType() == tag {
			return f, true
		}
	}
	return nil, false
}

// withTag marshals v and splices key:tag in as the first member of the object.
func withTag(key, tag string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(map[string]string{key: tag})
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if bytes.Equal(body, []byte("{}")) {
		return head, nil
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}
