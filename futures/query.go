package futures

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

// Periods is the set of period tokens the statistics endpoints accept.
var Periods = []string{"5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d"}

// ValidatePeriod fails with *PeriodError when p is not in Periods.
func ValidatePeriod(p string) error {
	for _, allowed := range Periods {
		if p == allowed {
			return nil
		}
	}
	return &PeriodError{Period: p}
}

// Ptr returns a pointer to v, for the optional query fields.
func Ptr[T any](v T) *T { return &v }

// HistoryQuery parameterises the historical and statistics endpoints.
// Nil fields are left out of the query string.
type HistoryQuery struct {
	StartTime *uint64 `json:"startTime,omitempty" url:"startTime,omitempty"`
	EndTime   *uint64 `json:"endTime,omitempty" url:"endTime,omitempty"`
	FromID    *uint64 `json:"fromId,omitempty" url:"fromId,omitempty"`
	Limit     uint16  `json:"limit,omitempty" url:"limit,omitempty"`
	Symbol    string  `json:"symbol,omitempty" url:"symbol,omitempty"`
	Interval  *string `json:"interval,omitempty" url:"interval,omitempty"`
	Period    *string `json:"period,omitempty" url:"period,omitempty"`
}

// Validate checks Period against Periods. Other fields are not interpreted.
func (q HistoryQuery) Validate() error {
	if q.Period == nil {
		return nil
	}
	return ValidatePeriod(*q.Period)
}

// Values validates q and renders it as query parameters.
func (q HistoryQuery) Values() (url.Values, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return query.Values(q)
}

// Encode returns the validated, URL-encoded query string.
func (q HistoryQuery) Encode() (string, error) {
	v, err := q.Values()
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}

// IndexQuery parameterises the index price kline endpoints.
type IndexQuery struct {
	StartTime *uint64 `json:"startTime,omitempty" url:"startTime,omitempty"`
	EndTime   *uint64 `json:"endTime,omitempty" url:"endTime,omitempty"`
	Limit     uint16  `json:"limit,omitempty" url:"limit,omitempty"`
	Pair      string  `json:"pair,omitempty" url:"pair,omitempty"`
	Interval  *string `json:"interval,omitempty" url:"interval,omitempty"`
}

func (q IndexQuery) Values() (url.Values, error) {
	return query.Values(q)
}

func (q IndexQuery) Encode() (string, error) {
	v, err := q.Values()
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}
