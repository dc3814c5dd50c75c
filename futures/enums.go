package futures

import "futurewire/codec"

func decodeEnum[T ~string](enum string, data []byte, known []T, dst *T) error {
	v, err := codec.DecodeEnum(enum, data, known)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

////// ORDER CLASSIFICATION //////

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

var orderSides = []OrderSide{OrderSideBuy, OrderSideSell}

func ParseOrderSide(s string) (OrderSide, error) { return codec.ParseEnum("OrderSide", s, orderSides) }

func (v *OrderSide) UnmarshalJSON(data []byte) error {
	return decodeEnum("OrderSide", data, orderSides, v)
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusPendingCancel   OrderStatus = "PENDING_CANCEL"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
	OrderStatusExpiredInMatch  OrderStatus = "EXPIRED_IN_MATCH"
	OrderStatusNewInsurance    OrderStatus = "NEW_INSURANCE"
	OrderStatusNewADL          OrderStatus = "NEW_ADL"
)

var orderStatuses = []OrderStatus{
	OrderStatusNew, OrderStatusPartiallyFilled, OrderStatusFilled, OrderStatusCanceled,
	OrderStatusPendingCancel, OrderStatusRejected, OrderStatusExpired, OrderStatusExpiredInMatch,
	OrderStatusNewInsurance, OrderStatusNewADL,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	return codec.ParseEnum("OrderStatus", s, orderStatuses)
}

func (v *OrderStatus) UnmarshalJSON(data []byte) error {
	return decodeEnum("OrderStatus", data, orderStatuses, v)
}

type OrderType string

const (
	OrderTypeLimit              OrderType = "LIMIT"
	OrderTypeMarket             OrderType = "MARKET"
	OrderTypeStop               OrderType = "STOP"
	OrderTypeStopMarket         OrderType = "STOP_MARKET"
	OrderTypeTakeProfit         OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitMarket   OrderType = "TAKE_PROFIT_MARKET"
	OrderTypeTrailingStopMarket OrderType = "TRAILING_STOP_MARKET"
)

// DefaultOrderType is used where a container needs an order type the payload omits.
const DefaultOrderType = OrderTypeMarket

var orderTypes = []OrderType{
	OrderTypeLimit, OrderTypeMarket, OrderTypeStop, OrderTypeStopMarket,
	OrderTypeTakeProfit, OrderTypeTakeProfitMarket, OrderTypeTrailingStopMarket,
}

func ParseOrderType(s string) (OrderType, error) { return codec.ParseEnum("OrderType", s, orderTypes) }

// OrDefault returns DefaultOrderType for the zero value.
func (v OrderType) OrDefault() OrderType {
	if v == "" {
		return DefaultOrderType
	}
	return v
}

func (v *OrderType) UnmarshalJSON(data []byte) error {
	return decodeEnum("OrderType", data, orderTypes, v)
}

type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
	TimeInForceGTX TimeInForce = "GTX"
	TimeInForceGTD TimeInForce = "GTD"
)

var timeInForces = []TimeInForce{TimeInForceGTC, TimeInForceIOC, TimeInForceFOK, TimeInForceGTX, TimeInForceGTD}

func ParseTimeInForce(s string) (TimeInForce, error) {
	return codec.ParseEnum("TimeInForce", s, timeInForces)
}

func (v *TimeInForce) UnmarshalJSON(data []byte) error {
	return decodeEnum("TimeInForce", data, timeInForces, v)
}

type PositionSide string

const (
	PositionSideBoth  PositionSide = "BOTH"
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

var positionSides = []PositionSide{PositionSideBoth, PositionSideLong, PositionSideShort}

func ParsePositionSide(s string) (PositionSide, error) {
	return codec.ParseEnum("PositionSide", s, positionSides)
}

func (v *PositionSide) UnmarshalJSON(data []byte) error {
	return decodeEnum("PositionSide", data, positionSides, v)
}

type WorkingType string

const (
	WorkingTypeMarkPrice     WorkingType = "MARK_PRICE"
	WorkingTypeContractPrice WorkingType = "CONTRACT_PRICE"
)

var workingTypes = []WorkingType{WorkingTypeMarkPrice, WorkingTypeContractPrice}

func ParseWorkingType(s string) (WorkingType, error) {
	return codec.ParseEnum("WorkingType", s, workingTypes)
}

func (v *WorkingType) UnmarshalJSON(data []byte) error {
	return decodeEnum("WorkingType", data, workingTypes, v)
}

// MarginType tags are lower case on the wire.
type MarginType string

const (
	MarginTypeIsolated MarginType = "isolated"
	MarginTypeCross    MarginType = "cross"
)

var marginTypes = []MarginType{MarginTypeIsolated, MarginTypeCross}

func ParseMarginType(s string) (MarginType, error) {
	return codec.ParseEnum("MarginType", s, marginTypes)
}

func (v *MarginType) UnmarshalJSON(data []byte) error {
	return decodeEnum("MarginType", data, marginTypes, v)
}

type ExecutionType string

const (
	ExecutionTypeNew        ExecutionType = "NEW"
	ExecutionTypeCanceled   ExecutionType = "CANCELED"
	ExecutionTypeCalculated ExecutionType = "CALCULATED"
	ExecutionTypeExpired    ExecutionType = "EXPIRED"
	ExecutionTypeTrade      ExecutionType = "TRADE"
	ExecutionTypeAmendment  ExecutionType = "AMENDMENT"
	ExecutionTypeReplaced   ExecutionType = "REPLACED"
	ExecutionTypeRejected   ExecutionType = "REJECTED"
)

var executionTypes = []ExecutionType{
	ExecutionTypeNew, ExecutionTypeCanceled, ExecutionTypeCalculated, ExecutionTypeExpired,
	ExecutionTypeTrade, ExecutionTypeAmendment, ExecutionTypeReplaced, ExecutionTypeRejected,
}

func (v *ExecutionType) UnmarshalJSON(data []byte) error {
	return decodeEnum("ExecutionType", data, executionTypes, v)
}

// PriceMatch selects a book level the exchange prices the order at.
type PriceMatch string

const (
	PriceMatchNone       PriceMatch = "NONE"
	PriceMatchOpponent   PriceMatch = "OPPONENT"
	PriceMatchOpponent5  PriceMatch = "OPPONENT5"
	PriceMatchOpponent10 PriceMatch = "OPPONENT10"
	PriceMatchOpponent20 PriceMatch = "OPPONENT20"
	PriceMatchQueue      PriceMatch = "QUEUE"
	PriceMatchQueue5     PriceMatch = "QUEUE5"
	PriceMatchQueue10    PriceMatch = "QUEUE10"
	PriceMatchQueue20    PriceMatch = "QUEUE20"
)

var priceMatches = []PriceMatch{
	PriceMatchNone, PriceMatchOpponent, PriceMatchOpponent5, PriceMatchOpponent10, PriceMatchOpponent20,
	PriceMatchQueue, PriceMatchQueue5, PriceMatchQueue10, PriceMatchQueue20,
}

func (v *PriceMatch) UnmarshalJSON(data []byte) error {
	return decodeEnum("PriceMatch", data, priceMatches, v)
}

type SelfTradePreventionMode string

const (
	SelfTradePreventionNone        SelfTradePreventionMode = "NONE"
	SelfTradePreventionExpireTaker SelfTradePreventionMode = "EXPIRE_TAKER"
	SelfTradePreventionExpireBoth  SelfTradePreventionMode = "EXPIRE_BOTH"
	SelfTradePreventionExpireMaker SelfTradePreventionMode = "EXPIRE_MAKER"
)

var selfTradePreventionModes = []SelfTradePreventionMode{
	SelfTradePreventionNone, SelfTradePreventionExpireTaker, SelfTradePreventionExpireBoth, SelfTradePreventionExpireMaker,
}

func (v *SelfTradePreventionMode) UnmarshalJSON(data []byte) error {
	return decodeEnum("SelfTradePreventionMode", data, selfTradePreventionModes, v)
}

////// INSTRUMENTS //////

// ContractType accepts an empty tag, seen on delisted and placeholder symbols.
type ContractType string

const (
	ContractTypePerpetual                ContractType = "PERPETUAL"
	ContractTypeCurrentMonth             ContractType = "CURRENT_MONTH"
	ContractTypeNextMonth                ContractType = "NEXT_MONTH"
	ContractTypeCurrentQuarter           ContractType = "CURRENT_QUARTER"
	ContractTypeNextQuarter              ContractType = "NEXT_QUARTER"
	ContractTypeCurrentQuarterDelivering ContractType = "CURRENT_QUARTER DELIVERING"
	ContractTypePerpetualDelivering      ContractType = "PERPETUAL_DELIVERING"
	ContractTypeEmpty                    ContractType = ""
)

var contractTypes = []ContractType{
	ContractTypePerpetual, ContractTypeCurrentMonth, ContractTypeNextMonth, ContractTypeCurrentQuarter,
	ContractTypeNextQuarter, ContractTypeCurrentQuarterDelivering, ContractTypePerpetualDelivering, ContractTypeEmpty,
}

func ParseContractType(s string) (ContractType, error) {
	return codec.ParseEnum("ContractType", s, contractTypes)
}

func (v *ContractType) UnmarshalJSON(data []byte) error {
	return decodeEnum("ContractType", data, contractTypes, v)
}

type SymbolStatus string

const (
	SymbolStatusPreTrading     SymbolStatus = "PRE_TRADING"
	SymbolStatusTrading        SymbolStatus = "TRADING"
	SymbolStatusPostTrading    SymbolStatus = "POST_TRADING"
	SymbolStatusEndOfDay       SymbolStatus = "END_OF_DAY"
	SymbolStatusHalt           SymbolStatus = "HALT"
	SymbolStatusAuctionMatch   SymbolStatus = "AUCTION_MATCH"
	SymbolStatusBreak          SymbolStatus = "BREAK"
	SymbolStatusPendingTrading SymbolStatus = "PENDING_TRADING"
	SymbolStatusPreDelivering  SymbolStatus = "PRE_DELIVERING"
	SymbolStatusDelivering     SymbolStatus = "DELIVERING"
	SymbolStatusDelivered      SymbolStatus = "DELIVERED"
	SymbolStatusPreSettle      SymbolStatus = "PRE_SETTLE"
	SymbolStatusSettling       SymbolStatus = "SETTLING"
	SymbolStatusClose          SymbolStatus = "CLOSE"
)

var symbolStatuses = []SymbolStatus{
	SymbolStatusPreTrading, SymbolStatusTrading, SymbolStatusPostTrading, SymbolStatusEndOfDay,
	SymbolStatusHalt, SymbolStatusAuctionMatch, SymbolStatusBreak, SymbolStatusPendingTrading,
	SymbolStatusPreDelivering, SymbolStatusDelivering, SymbolStatusDelivered, SymbolStatusPreSettle,
	SymbolStatusSettling, SymbolStatusClose,
}

func (v *SymbolStatus) UnmarshalJSON(data []byte) error {
	return decodeEnum("SymbolStatus", data, symbolStatuses, v)
}

type RateLimitType string

const (
	RateLimitTypeRequestWeight RateLimitType = "REQUEST_WEIGHT"
	RateLimitTypeOrders        RateLimitType = "ORDERS"
	RateLimitTypeRawRequests   RateLimitType = "RAW_REQUESTS"
)

var rateLimitTypes = []RateLimitType{RateLimitTypeRequestWeight, RateLimitTypeOrders, RateLimitTypeRawRequests}

func (v *RateLimitType) UnmarshalJSON(data []byte) error {
	return decodeEnum("RateLimitType", data, rateLimitTypes, v)
}

type RateLimitInterval string

const (
	RateLimitIntervalSecond RateLimitInterval = "SECOND"
	RateLimitIntervalMinute RateLimitInterval = "MINUTE"
	RateLimitIntervalDay    RateLimitInterval = "DAY"
)

var rateLimitIntervals = []RateLimitInterval{RateLimitIntervalSecond, RateLimitIntervalMinute, RateLimitIntervalDay}

func (v *RateLimitInterval) UnmarshalJSON(data []byte) error {
	return decodeEnum("RateLimitInterval", data, rateLimitIntervals, v)
}

////// ACCOUNT EVENTS //////

// ReasonType explains why an ACCOUNT_UPDATE was pushed.
type ReasonType string

const (
	ReasonDeposit             ReasonType = "DEPOSIT"
	ReasonWithdraw            ReasonType = "WITHDRAW"
	ReasonOrder               ReasonType = "ORDER"
	ReasonFundingFee          ReasonType = "FUNDING_FEE"
	ReasonWithdrawReject      ReasonType = "WITHDRAW_REJECT"
	ReasonAdjustment          ReasonType = "ADJUSTMENT"
	ReasonInsuranceClear      ReasonType = "INSURANCE_CLEAR"
	ReasonAdminDeposit        ReasonType = "ADMIN_DEPOSIT"
	ReasonAdminWithdraw       ReasonType = "ADMIN_WITHDRAW"
	ReasonMarginTransfer      ReasonType = "MARGIN_TRANSFER"
	ReasonMarginTypeChange    ReasonType = "MARGIN_TYPE_CHANGE"
	ReasonAssetTransfer       ReasonType = "ASSET_TRANSFER"
	ReasonOptionsPremiumFee   ReasonType = "OPTIONS_PREMIUM_FEE"
	ReasonOptionsSettleProfit ReasonType = "OPTIONS_SETTLE_PROFIT"
	ReasonAutoExchange        ReasonType = "AUTO_EXCHANGE"
	ReasonCoinSwapDeposit     ReasonType = "COIN_SWAP_DEPOSIT"
	ReasonCoinSwapWithdraw    ReasonType = "COIN_SWAP_WITHDRAW"
)

var reasonTypes = []ReasonType{
	ReasonDeposit, ReasonWithdraw, ReasonOrder, ReasonFundingFee, ReasonWithdrawReject, ReasonAdjustment,
	ReasonInsuranceClear, ReasonAdminDeposit, ReasonAdminWithdraw, ReasonMarginTransfer, ReasonMarginTypeChange,
	ReasonAssetTransfer, ReasonOptionsPremiumFee, ReasonOptionsSettleProfit, ReasonAutoExchange,
	ReasonCoinSwapDeposit, ReasonCoinSwapWithdraw,
}

func (v *ReasonType) UnmarshalJSON(data []byte) error {
	return decodeEnum("ReasonType", data, reasonTypes, v)
}
