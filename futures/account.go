package futures

import (
	"github.com/shopspring/decimal"

	"futurewire/codec"
)

////// POSITIONS //////

// Position is one row of GET /fapi/v2/positionRisk.
type Position struct {
	EntryPrice       codec.Number `json:"entryPrice"`
	MarginType       MarginType   `json:"marginType"`
	IsAutoAddMargin  codec.Bool   `json:"isAutoAddMargin"`
	IsolatedMargin   codec.Number `json:"isolatedMargin"`
	Leverage         codec.Uint64 `json:"leverage"`
	LiquidationPrice codec.Number `json:"liquidationPrice"`
	MarkPrice        codec.Number `json:"markPrice"`
	MaxNotionalValue codec.Number `json:"maxNotionalValue"`
	PositionAmount   codec.Number `json:"positionAmt"`
	Symbol           string       `json:"symbol"`
	UnrealizedProfit codec.Number `json:"unRealizedProfit"`
	PositionSide     PositionSide `json:"positionSide"`
	UpdateTime       uint64       `json:"updateTime"`
	Notional         codec.Number `json:"notional"`
	IsolatedWallet   codec.Number `json:"isolatedWallet"`
}

func (p *Position) UnmarshalJSON(data []byte) error {
	type alias Position
	return codec.DecodeRecord("Position", data, (*alias)(p))
}

// AccountPosition is a position as embedded in GET /fapi/v2/account. Its field
// set differs from Position.
type AccountPosition struct {
	Symbol                 string       `json:"symbol"`
	InitialMargin          codec.Number `json:"initialMargin"`
	MaintenanceMargin      codec.Number `json:"maintMargin"`
	UnrealizedProfit       codec.Number `json:"unrealizedProfit"`
	PositionInitialMargin  codec.Number `json:"positionInitialMargin"`
	OpenOrderInitialMargin codec.Number `json:"openOrderInitialMargin"`
	Leverage               codec.Uint64 `json:"leverage"`
	Isolated               bool         `json:"isolated"`
	EntryPrice             codec.Number `json:"entryPrice"`
	MaxNotional            codec.Number `json:"maxNotional"`
	BidNotional            codec.Number `json:"bidNotional"`
	AskNotional            codec.Number `json:"askNotional"`
	PositionSide           PositionSide `json:"positionSide"`
	PositionAmount         codec.Number `json:"positionAmt"`
	UpdateTime             uint64       `json:"updateTime"`
}

func (p *AccountPosition) UnmarshalJSON(data []byte) error {
	type alias AccountPosition
	return codec.DecodeRecord("AccountPosition", data, (*alias)(p))
}

////// ACCOUNT //////

type AccountAsset struct {
	Asset                  string       `json:"asset"`
	WalletBalance          codec.Number `json:"walletBalance"`
	UnrealizedProfit       codec.Number `json:"unrealizedProfit"`
	MarginBalance          codec.Number `json:"marginBalance"`
	MaintMargin            codec.Number `json:"maintMargin"`
	InitialMargin          codec.Number `json:"initialMargin"`
	PositionInitialMargin  codec.Number `json:"positionInitialMargin"`
	OpenOrderInitialMargin codec.Number `json:"openOrderInitialMargin"`
	CrossWalletBalance     codec.Number `json:"crossWalletBalance"`
	CrossUnrealizedPnl     codec.Number `json:"crossUnPnl"`
	AvailableBalance       codec.Number `json:"availableBalance"`
	MaxWithdrawAmount      codec.Number `json:"maxWithdrawAmount"`
	MarginAvailable        bool         `json:"marginAvailable"`
	UpdateTime             uint64       `json:"updateTime"`
}

func (a *AccountAsset) UnmarshalJSON(data []byte) error {
	type alias AccountAsset
	return codec.DecodeRecord("AccountAsset", data, (*alias)(a))
}

type AccountInformation struct {
	FeeTier                     uint64            `json:"feeTier"`
	CanTrade                    bool              `json:"canTrade"`
	CanDeposit                  bool              `json:"canDeposit"`
	CanWithdraw                 bool              `json:"canWithdraw"`
	UpdateTime                  uint64            `json:"updateTime"`
	MultiAssetsMargin           bool              `json:"multiAssetsMargin"`
	TotalInitialMargin          codec.Number      `json:"totalInitialMargin"`
	TotalMaintenanceMargin      codec.Number      `json:"totalMaintMargin"`
	TotalWalletBalance          codec.Number      `json:"totalWalletBalance"`
	TotalUnrealizedProfit       codec.Number      `json:"totalUnrealizedProfit"`
	TotalMarginBalance          codec.Number      `json:"totalMarginBalance"`
	TotalPositionInitialMargin  codec.Number      `json:"totalPositionInitialMargin"`
	TotalOpenOrderInitialMargin codec.Number      `json:"totalOpenOrderInitialMargin"`
	TotalCrossWalletBalance     codec.Number      `json:"totalCrossWalletBalance"`
	TotalCrossUnrealizedPnl     codec.Number      `json:"totalCrossUnPnl"`
	AvailableBalance            codec.Number      `json:"availableBalance"`
	MaxWithdrawAmount           codec.Number      `json:"maxWithdrawAmount"`
	Assets                      []AccountAsset    `json:"assets"`
	Positions                   []AccountPosition `json:"positions"`
}

func (a *AccountInformation) UnmarshalJSON(data []byte) error {
	type alias AccountInformation
	return codec.DecodeRecord("AccountInformation", data, (*alias)(a))
}

type AccountBalance struct {
	AccountAlias       string       `json:"accountAlias"`
	Asset              string       `json:"asset"`
	Balance            codec.Number `json:"balance"`
	CrossWalletBalance codec.Number `json:"crossWalletBalance"`
	CrossUnrealizedPnl codec.Number `json:"crossUnPnl"`
	AvailableBalance   codec.Number `json:"availableBalance"`
	MaxWithdrawAmount  codec.Number `json:"maxWithdrawAmount"`
	MarginAvailable    bool         `json:"marginAvailable"`
	UpdateTime         uint64       `json:"updateTime"`
}

func (a *AccountBalance) UnmarshalJSON(data []byte) error {
	type alias AccountBalance
	return codec.DecodeRecord("AccountBalance", data, (*alias)(a))
}

////// LEVERAGE //////

type ChangeLeverageResponse struct {
	Leverage         uint8        `json:"leverage"`
	MaxNotionalValue codec.Number `json:"maxNotionalValue"`
	Symbol           string       `json:"symbol"`
}

func (c *ChangeLeverageResponse) UnmarshalJSON(data []byte) error {
	type alias ChangeLeverageResponse
	return codec.DecodeRecord("ChangeLeverageResponse", data, (*alias)(c))
}

type LeverageBracket struct {
	Bracket          uint8        `json:"bracket"`
	InitialLeverage  uint8        `json:"initialLeverage"`
	NotionalCap      uint64       `json:"notionalCap"`
	NotionalFloor    uint64       `json:"notionalFloor"`
	MaintMarginRatio codec.Number `json:"maintMarginRatio"`
	Cum              codec.Number `json:"cum"`
}

func (l *LeverageBracket) UnmarshalJSON(data []byte) error {
	type alias LeverageBracket
	return codec.DecodeRecord("LeverageBracket", data, (*alias)(l))
}

type SymbolBrackets struct {
	Symbol       string            `json:"symbol"`
	NotionalCoef *codec.Number     `json:"notionalCoef"`
	Brackets     []LeverageBracket `json:"brackets"`
}

func (s *SymbolBrackets) UnmarshalJSON(data []byte) error {
	type alias SymbolBrackets
	return codec.DecodeRecord("SymbolBrackets", data, (*alias)(s))
}

// Bracket returns the bracket whose notional range contains notional.
func (s *SymbolBrackets) Bracket(notional codec.Number) (*LeverageBracket, bool) {
	for i := range s.Brackets {
		b := &s.Brackets[i]
		floor := decimal.NewFromUint64(b.NotionalFloor)
		limit := decimal.NewFromUint64(b.NotionalCap)
		if notional.GreaterThanOrEqual(floor) && notional.LessThan(limit) {
			return b, true
		}
	}
	return nil, false
}
