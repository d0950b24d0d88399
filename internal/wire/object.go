package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// JSON kind names used in TypeMismatchError.Actual.
const (
	kindString  = "string"
	kindNumber  = "number"
	kindObject  = "object"
	kindArray   = "array"
	kindBool    = "bool"
	kindNull    = "null"
	kindUnknown = "unknown"
)

// Object is a parsed packet body. Fields are kept raw so each variant can
// apply its own coercion rules, including the hub/sensor firmware asymmetry.
type Object map[string]json.RawMessage

// ParseObject parses packet text into an Object. Any syntax failure,
// including a top-level value that is not a JSON object, is a SyntaxError.
func ParseObject(data []byte) (Object, error) {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return obj, nil
}

// Discriminator returns the packet type tag.
func (o Object) Discriminator() (string, error) {
	raw, ok := o["type"]
	if !ok || kindOf(raw) != kindString {
		return "", ErrMissingDiscriminator
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", ErrMissingDiscriminator
	}
	return tag, nil
}

// Field returns the raw value for a required field.
func (o Object) Field(name string) (json.RawMessage, error) {
	raw, ok := o[name]
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	return raw, nil
}

// Array returns the elements of a required array field.
func (o Object) Array(name string) ([]json.RawMessage, error) {
	raw, err := o.Field(name)
	if err != nil {
		return nil, err
	}
	if kind := kindOf(raw); kind != kindArray {
		return nil, &TypeMismatchError{Field: name, Expected: kindArray, Actual: kind}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return elems, nil
}

// String returns a required string field.
func (o Object) String(name string) (string, error) {
	raw, err := o.Field(name)
	if err != nil {
		return "", err
	}
	var s string
	if err := decodeScalar(name, raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Uint8 returns a required numeric field, rejecting values outside uint8 range.
func (o Object) Uint8(name string) (uint8, error) {
	raw, err := o.Field(name)
	if err != nil {
		return 0, err
	}
	var v uint8
	if err := decodeScalar(name, raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Uint32 returns a required numeric field, rejecting values outside uint32 range.
func (o Object) Uint32(name string) (uint32, error) {
	raw, err := o.Field(name)
	if err != nil {
		return 0, err
	}
	var v uint32
	if err := decodeScalar(name, raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Uint64 returns a required numeric field such as an epoch timestamp.
func (o Object) Uint64(name string) (uint64, error) {
	raw, err := o.Field(name)
	if err != nil {
		return 0, err
	}
	var v uint64
	if err := decodeScalar(name, raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Int32 returns a required signed numeric field such as an RSSI level.
func (o Object) Int32(name string) (int32, error) {
	raw, err := o.Field(name)
	if err != nil {
		return 0, err
	}
	var v int32
	if err := decodeScalar(name, raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Float64 returns a required numeric field as a float.
func (o Object) Float64(name string) (float64, error) {
	raw, err := o.Field(name)
	if err != nil {
		return 0, err
	}
	var v float64
	if err := decodeScalar(name, raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Uint32Slice decodes a loosely typed diagnostic array such as the hub's
// "fs" and "mqtt_stats" fields. Element order is preserved, element meaning
// is not interpreted.
func (o Object) Uint32Slice(name string) ([]uint32, error) {
	elems, err := o.Array(name)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, len(elems))
	for i, e := range elems {
		var v uint32
		if err := decodeScalar(fmt.Sprintf("%s[%d]", name, i), e, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// kindOf classifies a raw JSON value by its first significant byte.
func kindOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return kindUnknown
	}
	switch trimmed[0] {
	case '"':
		return kindString
	case '{':
		return kindObject
	case '[':
		return kindArray
	case 't', 'f':
		return kindBool
	case 'n':
		return kindNull
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return kindNumber
	default:
		return kindUnknown
	}
}

// decodeScalar coerces one raw JSON value into the destination pointer. The
// pointer type declares the slot type; a double pointer marks the slot
// nullable, decoding JSON null to nil instead of failing.
func decodeScalar(name string, raw json.RawMessage, dst any) error {
	kind := kindOf(raw)
	switch out := dst.(type) {
	case *string:
		if kind != kindString {
			return &TypeMismatchError{Field: name, Expected: kindString, Actual: kind}
		}
		return json.Unmarshal(raw, out)
	case *uint8:
		v, err := parseUint(name, raw, kind, 8)
		if err != nil {
			return err
		}
		*out = uint8(v)
	case *uint16:
		v, err := parseUint(name, raw, kind, 16)
		if err != nil {
			return err
		}
		*out = uint16(v)
	case *uint32:
		v, err := parseUint(name, raw, kind, 32)
		if err != nil {
			return err
		}
		*out = uint32(v)
	case *uint64:
		v, err := parseUint(name, raw, kind, 64)
		if err != nil {
			return err
		}
		*out = v
	case *int32:
		if kind != kindNumber {
			return &TypeMismatchError{Field: name, Expected: "int32", Actual: kind}
		}
		v, err := strconv.ParseInt(literal(raw), 10, 32)
		if err != nil {
			return &TypeMismatchError{Field: name, Expected: "int32", Actual: kindNumber + " " + literal(raw)}
		}
		*out = int32(v)
	case *float64:
		if kind != kindNumber {
			return &TypeMismatchError{Field: name, Expected: kindNumber, Actual: kind}
		}
		v, err := strconv.ParseFloat(literal(raw), 64)
		if err != nil {
			return &TypeMismatchError{Field: name, Expected: kindNumber, Actual: kindNumber + " " + literal(raw)}
		}
		*out = v
	case **uint32:
		if kind == kindNull {
			*out = nil
			return nil
		}
		v, err := parseUint(name, raw, kind, 32)
		if err != nil {
			return err
		}
		u := uint32(v)
		*out = &u
	default:
		return fmt.Errorf("unsupported slot destination %T for %q", dst, name)
	}
	return nil
}

func parseUint(name string, raw json.RawMessage, kind string, bits int) (uint64, error) {
	expected := fmt.Sprintf("uint%d", bits)
	if kind != kindNumber {
		return 0, &TypeMismatchError{Field: name, Expected: expected, Actual: kind}
	}
	v, err := strconv.ParseUint(literal(raw), 10, bits)
	if err != nil {
		return 0, &TypeMismatchError{Field: name, Expected: expected, Actual: kindNumber + " " + literal(raw)}
	}
	return v, nil
}

func literal(raw json.RawMessage) string {
	return string(bytes.TrimSpace(raw))
}
