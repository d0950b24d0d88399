package wire

import "encoding/json"

// Slot describes one position of an observation record. The destination
// pointer type carries the slot's scalar type; a **uint32 destination marks
// the slot nullable. Together the ordered slot list forms the positional
// schema for a variant.
type Slot struct {
	Name  string
	Value any
}

// DecodeTuple decodes a positional observation array against its schema.
// Array length must equal the schema arity exactly; each slot is coerced to
// its declared type, with JSON null accepted only in nullable slots.
func DecodeTuple(field string, data []byte, slots []Slot) error {
	if kind := kindOf(data); kind != kindArray {
		return &TypeMismatchError{Field: field, Expected: kindArray, Actual: kind}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return &SyntaxError{Err: err}
	}
	if len(elems) != len(slots) {
		return &ArityMismatchError{Field: field, Expected: len(slots), Actual: len(elems)}
	}
	for i, slot := range slots {
		if err := decodeScalar(field+"."+slot.Name, elems[i], slot.Value); err != nil {
			return err
		}
	}
	return nil
}
