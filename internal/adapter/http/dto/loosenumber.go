package dto

import (
	"bytes"
	"strconv"
)

// LooseNumber tolerates the carrier feed's habit of sending numeric values as
// JSON numbers or as quoted strings. The empty value means "absent"; Int and
// Float coerce non-numeric input to zero, which is the feed's documented
// default.
type LooseNumber string

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' && len(data) >= 2 && data[len(data)-1] == '"' {
		*n = LooseNumber(data[1 : len(data)-1])
		return nil
	}
	*n = LooseNumber(data)
	return nil
}

// Int returns the value as an integer, 0 when absent or non-numeric.
func (n LooseNumber) Int() int {
	if n == "" {
		return 0
	}
	if v, err := strconv.Atoi(string(n)); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return int(f)
	}
	return 0
}

// Float returns the value as a float, 0 when absent or non-numeric.
func (n LooseNumber) Float() float64 {
	if n == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(string(n), 64); err == nil {
		return v
	}
	return 0
}
