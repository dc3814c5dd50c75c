package futures

import (
	"encoding/json"

	"futurewire/codec"
)

////// ORDER BOOK //////

// PriceLevel is one [price, quantity] pair of a depth snapshot.
type PriceLevel struct {
	Price    codec.Number
	Quantity codec.Number
}

func (p *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return &codec.ValueError{Kind: "price level", Input: string(data)}
	}
	price, err := codec.ParseNumber(pair[0])
	if err != nil {
		return err
	}
	qty, err := codec.ParseNumber(pair[1])
	if err != nil {
		return err
	}
	p.Price, p.Quantity = price, qty
	return nil
}

func (p PriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]codec.Number{p.Price, p.Quantity})
}

type OrderBook struct {
	LastUpdateID   uint64       `json:"lastUpdateId"`
	EventTime      uint64       `json:"E"`
	TradeOrderTime uint64       `json:"T"`
	Bids           []PriceLevel `json:"bids"`
	Asks           []PriceLevel `json:"asks"`
}

func (o *OrderBook) UnmarshalJSON(data []byte) error {
	type alias OrderBook
	return codec.DecodeRecord("OrderBook", data, (*alias)(o))
}

////// TICKERS //////

// PriceStats is the 24h rolling window ticker.
type PriceStats struct {
	Symbol             string       `json:"symbol"`
	PriceChange        codec.Number `json:"priceChange"`
	PriceChangePercent codec.Number `json:"priceChangePercent"`
	WeightedAvgPrice   codec.Number `json:"weightedAvgPrice"`
	LastPrice          codec.Number `json:"lastPrice"`
	OpenPrice          codec.Number `json:"openPrice"`
	HighPrice          codec.Number `json:"highPrice"`
	LowPrice           codec.Number `json:"lowPrice"`
	Volume             codec.Number `json:"volume"`
	QuoteVolume        codec.Number `json:"quoteVolume"`
	LastQty            codec.Number `json:"lastQty"`
	OpenTime           uint64       `json:"openTime"`
	CloseTime          uint64       `json:"closeTime"`
	FirstID            uint64       `json:"firstId"`
	LastID             uint64       `json:"lastId"`
	Count              uint64       `json:"count"`
}

func (p *PriceStats) UnmarshalJSON(data []byte) error {
	type alias PriceStats
	return codec.DecodeRecord("PriceStats", data, (*alias)(p))
}

type MarkPrice struct {
	Symbol               string       `json:"symbol"`
	MarkPrice            codec.Number `json:"markPrice"`
	IndexPrice           codec.Number `json:"indexPrice"`
	EstimatedSettlePrice codec.Number `json:"estimatedSettlePrice"`
	LastFundingRate      codec.Number `json:"lastFundingRate"`
	NextFundingTime      uint64       `json:"nextFundingTime"`
	InterestRate         codec.Number `json:"interestRate"`
	Time                 uint64       `json:"time"`
}

func (m *MarkPrice) UnmarshalJSON(data []byte) error {
	type alias MarkPrice
	return codec.DecodeRecord("MarkPrice", data, (*alias)(m))
}

type OpenInterest struct {
	OpenInterest codec.Number `json:"openInterest"`
	Symbol       string       `json:"symbol"`
}

func (o *OpenInterest) UnmarshalJSON(data []byte) error {
	type alias OpenInterest
	return codec.DecodeRecord("OpenInterest", data, (*alias)(o))
}

type FundingRate struct {
	Symbol      string       `json:"symbol"`
	FundingTime uint64       `json:"fundingTime"`
	FundingRate codec.Number `json:"fundingRate"`
}

func (f *FundingRate) UnmarshalJSON(data []byte) error {
	type alias FundingRate
	return codec.DecodeRecord("FundingRate", data, (*alias)(f))
}

type OpenInterestHistory struct {
	Symbol               string       `json:"symbol"`
	SumOpenInterest      codec.Number `json:"sumOpenInterest"`
	SumOpenInterestValue codec.Number `json:"sumOpenInterestValue"`
	Timestamp            uint64       `json:"timestamp"`
}

func (o *OpenInterestHistory) UnmarshalJSON(data []byte) error {
	type alias OpenInterestHistory
	return codec.DecodeRecord("OpenInterestHistory", data, (*alias)(o))
}

// LongShortRatio covers the account and position ratio endpoints.
type LongShortRatio struct {
	Symbol         string       `json:"symbol"`
	LongAccount    codec.Number `json:"longAccount"`
	LongShortRatio codec.Number `json:"longShortRatio"`
	ShortAccount   codec.Number `json:"shortAccount"`
	Timestamp      uint64       `json:"timestamp"`
}

func (l *LongShortRatio) UnmarshalJSON(data []byte) error {
	type alias LongShortRatio
	return codec.DecodeRecord("LongShortRatio", data, (*alias)(l))
}

////// TRADES //////

type Trade struct {
	ID           uint64       `json:"id"`
	IsBuyerMaker bool         `json:"isBuyerMaker"`
	Price        codec.Number `json:"price"`
	Qty          codec.Number `json:"qty"`
	QuoteQty     codec.Number `json:"quoteQty"`
	Time         uint64       `json:"time"`
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	type alias Trade
	return codec.DecodeRecord("Trade", data, (*alias)(t))
}

// Trades wraps the bare array returned by the trade endpoints.
type Trades struct {
	AllTrades []Trade
}

func (t *Trades) UnmarshalJSON(data []byte) error {
	items, err := codec.DecodeList[Trade](data)
	if err != nil {
		return err
	}
	t.AllTrades = items
	return nil
}

func (t Trades) MarshalJSON() ([]byte, error) {
	return marshalList(t.AllTrades)
}

type AggTrade struct {
	Time    uint64       `json:"T"`
	AggID   uint64       `json:"a"`
	FirstID uint64       `json:"f"`
	LastID  uint64       `json:"l"`
	Maker   bool         `json:"m"`
	Price   codec.Number `json:"p"`
	Qty     codec.Number `json:"q"`
}

func (a *AggTrade) UnmarshalJSON(data []byte) error {
	type alias AggTrade
	return codec.DecodeRecord("AggTrade", data, (*alias)(a))
}

type AggTrades struct {
	AllAggTrades []AggTrade
}

func (a *AggTrades) UnmarshalJSON(data []byte) error {
	items, err := codec.DecodeList[AggTrade](data)
	if err != nil {
		return err
	}
	a.AllAggTrades = items
	return nil
}

func (a AggTrades) MarshalJSON() ([]byte, error) {
	return marshalList(a.AllAggTrades)
}

type LiquidationOrder struct {
	AveragePrice codec.Number `json:"averagePrice"`
	ExecutedQty  codec.Number `json:"executedQty"`
	OrigQty      codec.Number `json:"origQty"`
	Price        codec.Number `json:"price"`
	Side         OrderSide    `json:"side"`
	Status       OrderStatus  `json:"status"`
	Symbol       string       `json:"symbol"`
	Time         uint64       `json:"time"`
	TimeInForce  TimeInForce  `json:"timeInForce"`
	OrderType    OrderType    `json:"type"`
}

func (l *LiquidationOrder) UnmarshalJSON(data []byte) error {
	type alias LiquidationOrder
	return codec.DecodeRecord("LiquidationOrder", data, (*alias)(l))
}

type LiquidationOrders struct {
	AllLiquidationOrders []LiquidationOrder
}

func (l *LiquidationOrders) UnmarshalJSON(data []byte) error {
	items, err := codec.DecodeList[LiquidationOrder](data)
	if err != nil {
		return err
	}
	l.AllLiquidationOrders = items
	return nil
}

func (l LiquidationOrders) MarshalJSON() ([]byte, error) {
	return marshalList(l.AllLiquidationOrders)
}

func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
