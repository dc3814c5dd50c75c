// Package futures models Binance USD-M futures REST responses, user-data
// stream events and history queries on top of the codec package.
package futures

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Decode decodes one JSON document into T.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Decoder turns one JSON document into a record.
type Decoder func(data []byte) (any, error)

func decoderOf[T any]() Decoder {
	return func(data []byte) (any, error) {
		v, err := Decode[T](data)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

var decoders = map[string]Decoder{
	"exchange_info":         decoderOf[ExchangeInformation](),
	"symbol":                decoderOf[Symbol](),
	"asset_detail":          decoderOf[AssetDetail](),
	"rate_limit":            decoderOf[RateLimit](),
	"order_book":            decoderOf[OrderBook](),
	"price_stats":           decoderOf[PriceStats](),
	"mark_price":            decoderOf[MarkPrice](),
	"open_interest":         decoderOf[OpenInterest](),
	"open_interest_history": decoderOf[OpenInterestHistory](),
	"long_short_ratio":      decoderOf[LongShortRatio](),
	"funding_rate":          decoderOf[FundingRate](),
	"trade":                 decoderOf[Trade](),
	"trades":                decoderOf[Trades](),
	"agg_trade":             decoderOf[AggTrade](),
	"agg_trades":            decoderOf[AggTrades](),
	"liquidation_order":     decoderOf[LiquidationOrder](),
	"liquidation_orders":    decoderOf[LiquidationOrders](),
	"order":                 decoderOf[Order](),
	"transaction":           decoderOf[Transaction](),
	"canceled_order":        decoderOf[CanceledOrder](),
	"position":              decoderOf[Position](),
	"account_position":      decoderOf[AccountPosition](),
	"account_asset":         decoderOf[AccountAsset](),
	"account_information":   decoderOf[AccountInformation](),
	"account_balance":       decoderOf[AccountBalance](),
	"change_leverage":       decoderOf[ChangeLeverageResponse](),
	"leverage_bracket":      decoderOf[LeverageBracket](),
	"symbol_brackets":       decoderOf[SymbolBrackets](),
	"filter": func(data []byte) (any, error) {
		return DecodeFilter(data)
	},
	"ws_event": func(data []byte) (any, error) {
		return DecodeEvent(data)
	},
}

// DecoderFor returns the decoder registered under kind.
func DecoderFor(kind string) (Decoder, error) {
	d, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	return d, nil
}

// Kinds lists every registered record kind in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(decoders))
	for k := range decoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
