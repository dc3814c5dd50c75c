package futures

import (
	"encoding/json"
	"errors"
	"testing"

	"futurewire/codec"
)

func TestTradesBatchSurfacesSecondElement(t *testing.T) {
	data := []byte(`[
		{"id":28457,"price":"4.00000100","qty":"12.00000000","quoteQty":"48.00","time":1499865549590,"isBuyerMaker":true},
		{"id":28458,"price":{"bad":true},"qty":"1","quoteQty":"1","time":1499865549591,"isBuyerMaker":false},
		{"id":28459,"price":"4.1","qty":"1","quoteQty":"4.1","time":1499865549592,"isBuyerMaker":false}
	]`)
	trades, err := Decode[Trades](data)
	if err == nil {
		t.Fatalf("expected failure, decoded %d trades", len(trades.AllTrades))
	}
	var elemErr *codec.ElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected ElementError, got %v", err)
	}
	if elemErr.Index != 1 {
		t.Fatalf("expected failure at index 1, got %d", elemErr.Index)
	}
	if !errors.Is(err, codec.ErrMalformedNumber) {
		t.Fatalf("expected malformed number, got %v", err)
	}
}

func TestTradesDecode(t *testing.T) {
	data := []byte(`[
		{"id":1,"price":"100.5","qty":"2","quoteQty":"201","time":1,"isBuyerMaker":true},
		{"id":2,"price":100.25,"qty":1,"quoteQty":"100.25","time":2,"isBuyerMaker":false}
	]`)
	trades, err := Decode[Trades](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(trades.AllTrades) != 2 || !trades.AllTrades[1].Price.Equal(codec.MustNumber("100.25")) {
		t.Fatalf("unexpected trades %+v", trades.AllTrades)
	}
	out, err := json.Marshal(trades)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if out[0] != '[' {
		t.Fatalf("expected bare array encoding, got %s", out)
	}
}

func TestAggTradesSingleLetterKeys(t *testing.T) {
	data := []byte(`[{"a":26129,"p":"0.01633102","q":"4.70443515","f":27781,"l":27781,"T":1498793709153,"m":true}]`)
	aggs, err := Decode[AggTrades](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a := aggs.AllAggTrades[0]
	if a.AggID != 26129 || a.FirstID != 27781 || a.Time != 1498793709153 || !a.Maker {
		t.Fatalf("unexpected agg trade %+v", a)
	}
}

func TestOrderBookLevels(t *testing.T) {
	data := []byte(`{"lastUpdateId":1027024,"E":1589436922972,"T":1589436922959,
		"bids":[["4.00000000","431.00000000"]],"asks":[["4.00000200","12.00000000"],[4.1,1]]}`)
	book, err := Decode[OrderBook](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if book.EventTime != 1589436922972 || book.TradeOrderTime != 1589436922959 {
		t.Fatalf("E/T not mapped: %+v", book)
	}
	if len(book.Asks) != 2 || !book.Asks[1].Price.Equal(codec.MustNumber("4.1")) || !book.Bids[0].Quantity.Equal(codec.MustNumber("431")) {
		t.Fatalf("unexpected levels %+v", book)
	}

	if _, err := Decode[OrderBook]([]byte(`{"lastUpdateId":1,"E":1,"T":1,"bids":[["1"]],"asks":[]}`)); !errors.Is(err, codec.ErrMalformedValue) {
		t.Fatalf("expected short level to fail, got %v", err)
	}
	if _, err := Decode[OrderBook]([]byte(`{"lastUpdateId":1,"E":1,"T":1,"bids":[["1","2","3"]],"asks":[]}`)); !errors.Is(err, codec.ErrMalformedValue) {
		t.Fatalf("expected level with extra element to fail, got %v", err)
	}
}

func TestLiquidationOrders(t *testing.T) {
	data := []byte(`[{"symbol":"BTCUSDT","price":"7918.33","origQty":"0.014","executedQty":"0.014",
		"averagePrice":"7918.33","status":"FILLED","timeInForce":"IOC","type":"LIMIT","side":"SELL","time":1568014460893}]`)
	liq, err := Decode[LiquidationOrders](data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(liq.AllLiquidationOrders) != 1 || liq.AllLiquidationOrders[0].Side != OrderSideSell {
		t.Fatalf("unexpected liquidation orders %+v", liq)
	}
}

func TestMarkPriceAndStats(t *testing.T) {
	mp, err := Decode[MarkPrice]([]byte(`{"symbol":"BTCUSDT","markPrice":"11793.63104562","indexPrice":"11781.80495970",
		"estimatedSettlePrice":"11781.16138815","lastFundingRate":"0.00038246","interestRate":"0.00010000",
		"nextFundingTime":1597392000000,"time":1597370495002}`))
	if err != nil {
		t.Fatalf("Decode MarkPrice: %v", err)
	}
	if !mp.LastFundingRate.Equal(codec.MustNumber("0.00038246")) {
		t.Fatalf("unexpected funding rate %s", mp.LastFundingRate)
	}

	ps, err := Decode[PriceStats]([]byte(`{"symbol":"BTCUSDT","priceChange":"-94.99999800","priceChangePercent":"-95.960",
		"weightedAvgPrice":"0.29628482","lastPrice":"4.00000200","lastQty":"200.00000000","openPrice":"99.00000000",
		"highPrice":"100.00000000","lowPrice":"0.10000000","volume":"8913.30000000","quoteVolume":"15.30000000",
		"openTime":1499783499040,"closeTime":1499869899040,"firstId":28385,"lastId":28460,"count":76}`))
	if err != nil {
		t.Fatalf("Decode PriceStats: %v", err)
	}
	if !ps.PriceChange.Equal(codec.MustNumber("-94.999998")) || ps.Count != 76 {
		t.Fatalf("unexpected stats %+v", ps)
	}
}

func TestStatisticsRecords(t *testing.T) {
	oih, err := Decode[OpenInterestHistory]([]byte(`{"symbol":"BTCUSDT","sumOpenInterest":"20403.63700000","sumOpenInterestValue":"150570784.07809979","timestamp":1583127900000}`))
	if err != nil || !oih.SumOpenInterest.Equal(codec.MustNumber("20403.637")) {
		t.Fatalf("OpenInterestHistory: %+v, %v", oih, err)
	}
	lsr, err := Decode[LongShortRatio]([]byte(`{"symbol":"BTCUSDT","longShortRatio":"0.1960","longAccount":"0.6622","shortAccount":"0.3378","timestamp":1583139600000}`))
	if err != nil || !lsr.LongShortRatio.Equal(codec.MustNumber("0.196")) {
		t.Fatalf("LongShortRatio: %+v, %v", lsr, err)
	}
	fr, err := Decode[FundingRate]([]byte(`{"symbol":"BTCUSDT","fundingRate":"-0.03750000","fundingTime":1570608000000}`))
	if err != nil || !fr.FundingRate.Equal(codec.MustNumber("-0.0375")) {
		t.Fatalf("FundingRate: %+v, %v", fr, err)
	}
	oi, err := Decode[OpenInterest]([]byte(`{"openInterest":"10659.509","symbol":"BTCUSDT","time":1589437530011}`))
	if err != nil || !oi.OpenInterest.Equal(codec.MustNumber("10659.509")) {
		t.Fatalf("OpenInterest: %+v, %v", oi, err)
	}
}
