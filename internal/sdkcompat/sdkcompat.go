// Package sdkcompat converts between futurewire records and the types of the
// go-binance futures client. Values coming from the client are always checked
// against the closed enumerations and record decoders.
package sdkcompat

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	bfutures "github.com/adshao/go-binance/v2/futures"

	"futurewire/futures"
)

func ToSideType(s futures.OrderSide) bfutures.SideType { return bfutures.SideType(s) }

func FromSideType(s bfutures.SideType) (futures.OrderSide, error) {
	return futures.ParseOrderSide(string(s))
}

func ToOrderType(t futures.OrderType) bfutures.OrderType { return bfutures.OrderType(t) }

func FromOrderType(t bfutures.OrderType) (futures.OrderType, error) {
	return futures.ParseOrderType(string(t))
}

func ToTimeInForce(t futures.TimeInForce) bfutures.TimeInForceType {
	return bfutures.TimeInForceType(t)
}

func FromTimeInForce(t bfutures.TimeInForceType) (futures.TimeInForce, error) {
	return futures.ParseTimeInForce(string(t))
}

func ToPositionSide(p futures.PositionSide) bfutures.PositionSideType {
	return bfutures.PositionSideType(p)
}

func FromPositionSide(p bfutures.PositionSideType) (futures.PositionSide, error) {
	return futures.ParsePositionSide(string(p))
}

func ToWorkingType(w futures.WorkingType) bfutures.WorkingType { return bfutures.WorkingType(w) }

func FromWorkingType(w bfutures.WorkingType) (futures.WorkingType, error) {
	return futures.ParseWorkingType(string(w))
}

func ToOrderStatus(s futures.OrderStatus) bfutures.OrderStatusType {
	return bfutures.OrderStatusType(s)
}

func FromOrderStatus(s bfutures.OrderStatusType) (futures.OrderStatus, error) {
	return futures.ParseOrderStatus(string(s))
}

// The account endpoints report margin types in lower case ("isolated",
// "cross"); the client sends "ISOLATED" and "CROSSED".

func ToMarginType(m futures.MarginType) (bfutures.MarginType, error) {
	switch m {
	case futures.MarginTypeIsolated:
		return bfutures.MarginTypeIsolated, nil
	case futures.MarginTypeCross:
		return bfutures.MarginTypeCrossed, nil
	}
	return "", fmt.Errorf("no client margin type for %q", m)
}

func FromMarginType(m bfutures.MarginType) (futures.MarginType, error) {
	switch strings.ToUpper(string(m)) {
	case string(bfutures.MarginTypeIsolated):
		return futures.MarginTypeIsolated, nil
	case string(bfutures.MarginTypeCrossed):
		return futures.MarginTypeCross, nil
	}
	return futures.ParseMarginType(string(m))
}

// FromSDK re-decodes a client value into record T through its wire form, so
// the client's loosely typed strings pass the same checks as raw responses.
func FromSDK[T any](v any) (T, error) {
	var zero T
	data, err := json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("encode client value: %w", err)
	}
	return futures.Decode[T](data)
}

// clientOrderOptional are the order prices the client renders as "" when the
// exchange omitted them.
var clientOrderOptional = []string{"stopPrice", "activatePrice", "priceRate"}

func checkOrderEnums(o *bfutures.Order) error {
	if _, err := FromSideType(o.Side); err != nil {
		return err
	}
	if _, err := FromOrderStatus(o.Status); err != nil {
		return err
	}
	if _, err := FromOrderType(o.Type); err != nil {
		return err
	}
	if _, err := FromOrderType(o.OrigType); err != nil {
		return err
	}
	if _, err := FromTimeInForce(o.TimeInForce); err != nil {
		return err
	}
	if _, err := FromPositionSide(o.PositionSide); err != nil {
		return err
	}
	_, err := FromWorkingType(o.WorkingType)
	return err
}

// OrderFromSDK converts a client order. Empty optional prices are treated as
// absent, so they take the Order defaults.
func OrderFromSDK(o *bfutures.Order) (futures.Order, error) {
	if err := checkOrderEnums(o); err != nil {
		return futures.Order{}, fmt.Errorf("client order %d: %w", o.OrderID, err)
	}
	data, err := json.Marshal(o)
	if err != nil {
		return futures.Order{}, fmt.Errorf("encode client order: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return futures.Order{}, fmt.Errorf("encode client order: %w", err)
	}
	for _, key := range clientOrderOptional {
		if string(fields[key]) == `""` {
			delete(fields, key)
		}
	}
	if data, err = json.Marshal(fields); err != nil {
		return futures.Order{}, fmt.Errorf("encode client order: %w", err)
	}
	return futures.Decode[futures.Order](data)
}

// viaClient decodes data into client type S first, the way a go-binance
// caller would hold it, then into record T.
func viaClient[S, T any]() futures.Decoder {
	return func(data []byte) (any, error) {
		var s S
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode client value: %w", err)
		}
		v, err := FromSDK[T](&s)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

var clientDecoders = map[string]futures.Decoder{
	"open_interest": viaClient[bfutures.OpenInterest, futures.OpenInterest](),
	"funding_rate":  viaClient[bfutures.FundingRate, futures.FundingRate](),
	"mark_price":    viaClient[bfutures.PremiumIndex, futures.MarkPrice](),
	"order": func(data []byte) (any, error) {
		var o bfutures.Order
		if err := json.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("decode client value: %w", err)
		}
		v, err := OrderFromSDK(&o)
		if err != nil {
			return nil, err
		}
		return &v, nil
	},
}

// DecoderFor returns a decoder for documents serialized from go-binance
// client values of kind.
func DecoderFor(kind string) (futures.Decoder, error) {
	d, ok := clientDecoders[kind]
	if !ok {
		return nil, fmt.Errorf("no client decoder for record kind %q", kind)
	}
	return d, nil
}

// Kinds lists the record kinds DecoderFor supports.
func Kinds() []string {
	kinds := make([]string, 0, len(clientDecoders))
	for k := range clientDecoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
