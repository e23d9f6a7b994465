package catalog

import (
	"strconv"
)

// Price is an amount in currency units, or "unknown" when there is no offer
// data to derive it from. The zero value is unknown, which keeps it apart
// from a listed price of 0.
type Price struct {
	amount int64
	known  bool
}

// Known returns a Price holding amount.
func Known(amount int64) Price {
	return Price{amount: amount, known: true}
}

// Unknown returns the "no price data" sentinel.
func Unknown() Price {
	return Price{}
}

// IsKnown reports whether p carries an amount.
func (p Price) IsKnown() bool {
	return p.known
}

// Amount returns the amount and whether it is known.
func (p Price) Amount() (int64, bool) {
	return p.amount, p.known
}

// String renders the amount, or "unknown". It never formats the sentinel as a number.
func (p Price) String() string {
	if !p.known {
		return "unknown"
	}
	return strconv.FormatInt(p.amount, 10)
}

// MarshalJSON encodes unknown as null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.known {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, p.amount, 10), nil
}

// UnmarshalJSON accepts a number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Unknown()
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*p = Known(v)
	return nil
}

// MarshalYAML encodes unknown as null.
func (p Price) MarshalYAML() (interface{}, error) {
	if !p.known {
		return nil, nil
	}
	return p.amount, nil
}
