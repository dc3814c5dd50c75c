package futures

import "futurewire/codec"

// Presence rules differ per endpoint and per field:
//
//	record         stopPrice      activatePrice  priceRate
//	Order          zero if absent zero if absent zero if absent
//	Transaction    required       nil if absent  nil if absent
//	CanceledOrder  required       nil if absent  nil if absent

// Order is the body of GET /fapi/v1/order and the rows of openOrders/allOrders.
type Order struct {
	ClientOrderID string       `json:"clientOrderId"`
	CumQuote      codec.Number `json:"cumQuote"`
	ExecutedQty   codec.Number `json:"executedQty"`
	OrderID       uint64       `json:"orderId"`
	AvgPrice      codec.Number `json:"avgPrice"`
	OrigQty       codec.Number `json:"origQty"`
	Price         codec.Number `json:"price"`
	Side          OrderSide    `json:"side"`
	ReduceOnly    bool         `json:"reduceOnly"`
	PositionSide  PositionSide `json:"positionSide"`
	Status        OrderStatus  `json:"status"`
	StopPrice     codec.Number `json:"stopPrice,omitempty"`
	ClosePosition bool         `json:"closePosition"`
	Symbol        string       `json:"symbol"`
	TimeInForce   TimeInForce  `json:"timeInForce"`
	OrderType     OrderType    `json:"type"`
	OrigType      OrderType    `json:"origType"`
	ActivatePrice codec.Number `json:"activatePrice,omitempty"`
	PriceRate     codec.Number `json:"priceRate,omitempty"`
	UpdateTime    uint64       `json:"updateTime"`
	WorkingType   WorkingType  `json:"workingType"`
	PriceProtect  bool         `json:"priceProtect"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	return codec.DecodeRecord("Order", data, (*alias)(o))
}

// Transaction is the response to placing an order.
type Transaction struct {
	ClientOrderID string        `json:"clientOrderId"`
	CumQty        codec.Number  `json:"cumQty"`
	CumQuote      codec.Number  `json:"cumQuote"`
	ExecutedQty   codec.Number  `json:"executedQty"`
	OrderID       uint64        `json:"orderId"`
	AvgPrice      codec.Number  `json:"avgPrice"`
	OrigQty       codec.Number  `json:"origQty"`
	ReduceOnly    bool          `json:"reduceOnly"`
	Side          OrderSide     `json:"side"`
	PositionSide  PositionSide  `json:"positionSide"`
	Status        OrderStatus   `json:"status"`
	StopPrice     codec.Number  `json:"stopPrice"`
	ClosePosition bool          `json:"closePosition"`
	Symbol        string        `json:"symbol"`
	TimeInForce   TimeInForce   `json:"timeInForce"`
	TypeName      OrderType     `json:"type"`
	OrigType      OrderType     `json:"origType"`
	ActivatePrice *codec.Number `json:"activatePrice"`
	PriceRate     *codec.Number `json:"priceRate"`
	UpdateTime    uint64        `json:"updateTime"`
	WorkingType   WorkingType   `json:"workingType"`
	PriceProtect  bool          `json:"priceProtect"`
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	return codec.DecodeRecord("Transaction", data, (*alias)(t))
}

// CanceledOrder is the response to a cancel. The endpoint's classification
// fields are kept as the raw strings the exchange sent.
type CanceledOrder struct {
	ClientOrderID string        `json:"clientOrderId"`
	CumQty        codec.Number  `json:"cumQty"`
	CumQuote      codec.Number  `json:"cumQuote"`
	ExecutedQty   codec.Number  `json:"executedQty"`
	OrderID       uint64        `json:"orderId"`
	OrigQty       codec.Number  `json:"origQty"`
	OrigType      string        `json:"origType"`
	Price         codec.Number  `json:"price"`
	ReduceOnly    bool          `json:"reduceOnly"`
	Side          string        `json:"side"`
	PositionSide  string        `json:"positionSide"`
	Status        string        `json:"status"`
	StopPrice     codec.Number  `json:"stopPrice"`
	ClosePosition bool          `json:"closePosition"`
	Symbol        string        `json:"symbol"`
	TimeInForce   string        `json:"timeInForce"`
	TypeName      string        `json:"type"`
	ActivatePrice *codec.Number `json:"activatePrice"`
	PriceRate     *codec.Number `json:"priceRate"`
	UpdateTime    uint64        `json:"updateTime"`
	WorkingType   string        `json:"workingType"`
	PriceProtect  bool          `json:"priceProtect"`
}

func (c *CanceledOrder) UnmarshalJSON(data []byte) error {
	type alias CanceledOrder
	return codec.DecodeRecord("CanceledOrder", data, (*alias)(c))
}
