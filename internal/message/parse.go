package message

import (
	"encoding/json"
	"reflect"

	"github.com/tidwall/gjson"
)

// Parse decodes one gosumemory document. It either returns a fully
// populated state or a *ParseError and no state.
//
// Unknown fields are ignored. Required fields that are missing, values of
// the wrong JSON type, integers with a fractional part and wire booleans
// other than 0 or 1 all fail the whole document.
func Parse(document []byte) (*GosuMemoryState, error) {
	if !gjson.ValidBytes(document) {
		return nil, &ParseError{Kind: MalformedDocument, Msg: "not valid JSON"}
	}

	var state GosuMemoryState
	if err := stateSchema.decode("", gjson.ParseBytes(document), reflect.ValueOf(&state).Elem()); err != nil {
		return nil, err
	}

	return &state, nil
}

func ParseString(document string) (*GosuMemoryState, error) {
	return Parse([]byte(document))
}

// Marshal encodes a state back to its wire form. Wire booleans are written
// as 0 or 1 and absent optional sequences as null, so Parse(Marshal(s))
// yields a value equal to s.
func Marshal(state *GosuMemoryState) ([]byte, error) {
	return json.Marshal(state)
}
