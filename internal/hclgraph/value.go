package hclgraph

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	hexStrip = regexp.MustCompile(`[ \t\n\r\-]`)
	hexData  = regexp.MustCompile(`^([0-9A-Fa-f]{2})*$`)
)

// ParseData parses hex bytes such as "d0-bf-d1-80". Dashes and whitespace
// are ignored. An empty string is an empty payload.
func ParseData(s string) ([]byte, error) {
	d := hexStrip.ReplaceAllString(s, "")
	if !hexData.MatchString(d) {
		return nil, fmt.Errorf("can't parse data %q", s)
	}
	b, err := hex.DecodeString(d)
	if err != nil {
		return nil, fmt.Errorf("can't parse data %q: %w", s, err)
	}
	return b, nil
}

// FormatData renders bytes as dash separated upper case hex pairs.
func FormatData(b []byte) string {
	pairs := make([]string, len(b))
	for i, c := range b {
		pairs[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(pairs, "-")
}

// valueBytes converts a literal value to its payload bytes.
func valueBytes(v cty.Value) ([]byte, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("value must not be null")
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	switch v.Type() {
	case cty.Number:
		var i int64
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return binary.BigEndian.AppendUint64(nil, uint64(i)), nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("number out of range: %w", err)
		}
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(f)), nil
	case cty.String:
		var s string
		if err := gocty.FromCtyValue(v, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	case cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, err
		}
		if b {
			return []byte{0x01}, nil
		}
		return []byte{0x00}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
