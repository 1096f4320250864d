package message

import "fmt"

// WireBool is a boolean sent as the integer 0 or 1. Any other wire value is
// rejected rather than coerced.
type WireBool bool

func (b WireBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (b *WireBool) UnmarshalJSON(data []byte) error {
	v, ok := parseWireBool(string(data))
	if !ok {
		return &ParseError{
			Kind: InvalidBooleanEncoding,
			Msg:  fmt.Sprintf("want 0 or 1, got %s", data),
		}
	}
	*b = v
	return nil
}

func parseWireBool(raw string) (WireBool, bool) {
	switch raw {
	case "0":
		return false, true
	case "1":
		return true, true
	}
	return false, false
}
