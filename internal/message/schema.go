package message

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

type nodeKind uint8

const (
	kindStruct nodeKind = iota
	kindSlice
	kindString
	kindBool
	kindWireBool
	kindInt
	kindFloat
)

// node is one entry of the wire translation table, built once from the
// struct tags of the model.
type node struct {
	kind   nodeKind
	fields []field
	elem   *node
	bits   int
}

type field struct {
	key      string
	index    int
	optional bool
	node     *node
}

var wireBoolType = reflect.TypeOf(WireBool(false))

// stateSchema never changes after init, so concurrent parses share it.
var stateSchema = compile(reflect.TypeOf(GosuMemoryState{}))

func compile(t reflect.Type) *node {
	if t == wireBoolType {
		return &node{kind: kindWireBool}
	}

	switch t.Kind() {
	case reflect.Struct:
		n := &node{kind: kindStruct}
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			key, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if key == "-" {
				continue
			}
			if key == "" {
				key = sf.Name
			}
			n.fields = append(n.fields, field{
				key:      key,
				index:    i,
				optional: sf.Tag.Get("gosu") == "optional",
				node:     compile(sf.Type),
			})
		}
		return n
	case reflect.Slice:
		return &node{kind: kindSlice, elem: compile(t.Elem())}
	case reflect.String:
		return &node{kind: kindString}
	case reflect.Bool:
		return &node{kind: kindBool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &node{kind: kindInt}
	case reflect.Float32, reflect.Float64:
		return &node{kind: kindFloat, bits: t.Bits()}
	}

	panic(fmt.Sprintf("message: unsupported field type %s", t))
}

func (n *node) want() string {
	switch n.kind {
	case kindStruct:
		return "object"
	case kindSlice:
		return "array"
	case kindString:
		return "string"
	case kindBool:
		return "boolean"
	case kindWireBool:
		return "0 or 1"
	case kindInt:
		return "integer"
	case kindFloat:
		return "number"
	}
	return "value"
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean " + r.Raw
	case gjson.Number:
		return "number " + r.Raw
	case gjson.String:
		return "string " + r.Raw
	}
	if r.IsArray() {
		return "array"
	}
	return "object"
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// decode projects r onto v following n. v must be settable.
func (n *node) decode(path string, r gjson.Result, v reflect.Value) error {
	switch n.kind {
	case kindStruct:
		if !r.IsObject() {
			return typeMismatch(path, n.want(), describe(r))
		}
		members := r.Map()
		for _, f := range n.fields {
			fieldPath := join(path, f.key)
			child, ok := members[f.key]
			if f.optional && (!ok || child.Type == gjson.Null) {
				continue
			}
			if !ok {
				return missingField(fieldPath)
			}
			if err := f.node.decode(fieldPath, child, v.Field(f.index)); err != nil {
				return err
			}
		}

	case kindSlice:
		if !r.IsArray() {
			return typeMismatch(path, n.want(), describe(r))
		}
		items := r.Array()
		s := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			if err := n.elem.decode(fmt.Sprintf("%s[%d]", path, i), item, s.Index(i)); err != nil {
				return err
			}
		}
		v.Set(s)

	case kindString:
		if r.Type != gjson.String {
			return typeMismatch(path, n.want(), describe(r))
		}
		if !utf8.ValidString(r.Str) {
			return typeMismatch(path, n.want(), "invalid UTF-8")
		}
		v.SetString(r.Str)

	case kindBool:
		if r.Type != gjson.True && r.Type != gjson.False {
			return typeMismatch(path, n.want(), describe(r))
		}
		v.SetBool(r.Type == gjson.True)

	case kindWireBool:
		b, ok := parseWireBool(r.Raw)
		if r.Type != gjson.Number || !ok {
			return &ParseError{
				Kind: InvalidBooleanEncoding,
				Path: path,
				Msg:  fmt.Sprintf("want 0 or 1, got %s", describe(r)),
			}
		}
		v.SetBool(bool(b))

	case kindInt:
		if r.Type != gjson.Number {
			return typeMismatch(path, n.want(), describe(r))
		}
		i, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil || v.OverflowInt(i) {
			return typeMismatch(path, n.want(), describe(r))
		}
		v.SetInt(i)

	case kindFloat:
		if r.Type != gjson.Number {
			return typeMismatch(path, n.want(), describe(r))
		}
		f, err := strconv.ParseFloat(r.Raw, n.bits)
		if err != nil {
			return typeMismatch(path, n.want(), describe(r))
		}
		v.SetFloat(f)
	}

	return nil
}
