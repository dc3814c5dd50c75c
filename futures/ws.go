package futures

import (
	"encoding/json"

	"futurewire/codec"
)

// EventType is the "e" discriminator of a user-data stream frame.
type EventType string

const (
	EventAccountUpdate    EventType = "ACCOUNT_UPDATE"
	EventOrderTradeUpdate EventType = "ORDER_TRADE_UPDATE"
)

// EventTypes lists the frames DecodeEvent understands.
var EventTypes = []EventType{EventAccountUpdate, EventOrderTradeUpdate}

// Event is one decoded user-data stream payload: *AccountUpdate or *OrderTradeUpdate.
type Event interface {
	Kind() EventType
}

// DecodeEvent dispatches a frame on its "e" tag. Tags other than EventTypes
// fail with an *EventTypeError.
func DecodeEvent(data []byte) (Event, error) {
	var head struct {
		EventType *string         `json:"e"`
		EventTime json.RawMessage `json:"E"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &codec.RecordError{Record: "WebsocketEvent", Err: err}
	}
	if head.EventType == nil {
		return nil, &codec.RecordError{Record: "WebsocketEvent", Err: &codec.MissingFieldError{Field: "e"}}
	}

	switch EventType(*head.EventType) {
	case EventAccountUpdate:
		var ev AccountUpdate
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case EventOrderTradeUpdate:
		var ev OrderTradeUpdate
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	}
	return nil, &EventTypeError{Tag: *head.EventType}
}

// WebsocketEvent is the envelope form of Event for use as a JSON field or target.
type WebsocketEvent struct {
	Event
}

func (w *WebsocketEvent) UnmarshalJSON(data []byte) error {
	ev, err := DecodeEvent(data)
	if err != nil {
		return err
	}
	w.Event = ev
	return nil
}

func (w WebsocketEvent) MarshalJSON() ([]byte, error) {
	if w.Event == nil {
		return []byte("null"), nil
	}
	return json.Marshal(w.Event)
}

// AccountUpdate returns the payload when the event is an ACCOUNT_UPDATE.
func (w WebsocketEvent) AccountUpdate() (*AccountUpdate, bool) {
	ev, ok := w.Event.(*AccountUpdate)
	return ev, ok
}

// OrderTradeUpdate returns the payload when the event is an ORDER_TRADE_UPDATE.
func (w WebsocketEvent) OrderTradeUpdate() (*OrderTradeUpdate, bool) {
	ev, ok := w.Event.(*OrderTradeUpdate)
	return ev, ok
}

////// ACCOUNT_UPDATE //////

// Stream payloads use single-character keys. The "e" key is declared on every
// payload so encoding/json never folds it onto "E".

type AccountUpdate struct {
	EventType       EventType `json:"e"`
	EventTime       uint64    `json:"E"`
	TransactionTime uint64    `json:"T"`
	Account         Account   `json:"a"`
}

func (*AccountUpdate) Kind() EventType { return EventAccountUpdate }

func (a *AccountUpdate) UnmarshalJSON(data []byte) error {
	type alias AccountUpdate
	return codec.DecodeRecord("AccountUpdate", data, (*alias)(a))
}

type Account struct {
	ReasonType ReasonType              `json:"m"`
	Balances   []Balance               `json:"B"`
	Positions  []AccountUpdatePosition `json:"P"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	type alias Account
	return codec.DecodeRecord("Account", data, (*alias)(a))
}

type Balance struct {
	Asset              string       `json:"a"`
	WalletBalance      codec.Number `json:"wb"`
	CrossWalletBalance codec.Number `json:"cw"`
	BalanceChange      codec.Number `json:"bc"`
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	type alias Balance
	return codec.DecodeRecord("Balance", data, (*alias)(b))
}

// AccountUpdatePosition is a position entry of an ACCOUNT_UPDATE frame.
type AccountUpdatePosition struct {
	Symbol              string       `json:"s"`
	PositionAmount      codec.Number `json:"pa"`
	EntryPrice          codec.Number `json:"ep"`
	BreakevenPrice      codec.Number `json:"bep"`
	AccumulatedRealized codec.Number `json:"cr"`
	UnrealizedProfit    codec.Number `json:"up"`
	MarginType          MarginType   `json:"mt"`
	IsolatedWallet      codec.Number `json:"iw"`
	PositionSide        PositionSide `json:"ps"`
}

func (p *AccountUpdatePosition) UnmarshalJSON(data []byte) error {
	type alias AccountUpdatePosition
	return codec.DecodeRecord("AccountUpdatePosition", data, (*alias)(p))
}

////// ORDER_TRADE_UPDATE //////

type OrderTradeUpdate struct {
	EventType       EventType   `json:"e"`
	EventTime       uint64      `json:"E"`
	TransactionTime uint64      `json:"T"`
	Order           OrderUpdate `json:"o"`
}

func (*OrderTradeUpdate) Kind() EventType { return EventOrderTradeUpdate }

func (o *OrderTradeUpdate) UnmarshalJSON(data []byte) error {
	type alias OrderTradeUpdate
	return codec.DecodeRecord("OrderTradeUpdate", data, (*alias)(o))
}

// OrderUpdate is the order state carried by an ORDER_TRADE_UPDATE frame.
type OrderUpdate struct {
	Symbol                         string                  `json:"s"`
	ClientOrderID                  string                  `json:"c"`
	Side                           OrderSide               `json:"S"`
	OrderType                      OrderType               `json:"o"`
	TimeInForce                    TimeInForce             `json:"f"`
	Quantity                       codec.Number            `json:"q"`
	Price                          codec.Number            `json:"p"`
	AveragePrice                   codec.Number            `json:"ap"`
	StopPrice                      codec.Number            `json:"sp"`
	ExecutionType                  ExecutionType           `json:"x"`
	OrderStatus                    OrderStatus             `json:"X"`
	OrderID                        uint64                  `json:"i"`
	OrderLastFilledQuantity        codec.Number            `json:"l"`
	OrderFilledAccumulatedQuantity codec.Number            `json:"z"`
	LastFilledPrice                codec.Number            `json:"L"`
	Commission                     *codec.Number           `json:"n"`
	CommissionAsset                *string                 `json:"N"`
	OrderTradeTime                 uint64                  `json:"T"`
	TradeID                        uint64                  `json:"t"`
	BidNotional                    codec.Number            `json:"b"`
	AskNotional                    codec.Number            `json:"a"`
	IsMaker                        bool                    `json:"m"`
	IsReduce                       bool                    `json:"R"`
	WorkingType                    WorkingType             `json:"wt"`
	OriginalOrderType              OrderType               `json:"ot"`
	PositionSide                   PositionSide            `json:"ps"`
	ClosePosition                  bool                    `json:"cp"`
	ActivationPrice                *codec.Number           `json:"AP"`
	CallbackRate                   *codec.Number           `json:"cr"`
	PriceProtect                   bool                    `json:"pP"`
	RealizedProfit                 codec.Number            `json:"rp"`
	SelfTradePreventionMode        SelfTradePreventionMode `json:"V"`
	PriceMatch                     PriceMatch              `json:"pm"`
	GoodTillDate                   uint64                  `json:"gtd"`
}

func (o *OrderUpdate) UnmarshalJSON(data []byte) error {
	type alias OrderUpdate
	return codec.DecodeRecord("OrderUpdate", data, (*alias)(o))
}
