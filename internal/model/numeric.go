package model

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that survives sloppy client payloads. Monetary
// fields arrive from spreadsheet exports and older frontends as numbers,
// quoted numbers, empty strings or null; anything unparseable decodes to 0
// so a single bad cell never poisons report totals.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	if s == "" {
		*f = 0
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}

	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(f.Float64(), 'f', -1, 64)), nil
}

// Float64 returns the plain value with NaN/Inf mapped to 0.
func (f FlexFloat) Float64() float64 {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Value implements driver.Valuer so GORM stores the plain float.
func (f FlexFloat) Value() (driver.Value, error) {
	return f.Float64(), nil
}

// Scan implements sql.Scanner. Postgres decimal columns come back as text,
// sqlite in tests hands over float64 directly.
func (f *FlexFloat) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = 0
	case float64:
		*f = FlexFloat(v)
	case int64:
		*f = FlexFloat(v)
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parsed)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parsed)
	default:
		return fmt.Errorf("cannot scan %T into FlexFloat", value)
	}
	return nil
}
