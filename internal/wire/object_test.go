package wire

import (
	"errors"
	"testing"
)

func TestParseObject(t *testing.T) {
	obj, err := ParseObject([]byte(`{"type":"rapid_wind","hub_sn":"HB-00000001"}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	tag, err := obj.Discriminator()
	if err != nil {
		t.Fatalf("Discriminator: %v", err)
	}
	if tag != "rapid_wind" {
		t.Fatalf("unexpected tag %q", tag)
	}
}

func TestParseObjectSyntaxError(t *testing.T) {
	for _, input := range []string{`{broken`, `[1,2,3]`, `42`, ``} {
		_, err := ParseObject([]byte(input))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("input %q: expected SyntaxError, got %v", input, err)
		}
	}
}

func TestDiscriminatorMissing(t *testing.T) {
	for _, input := range []string{`{}`, `{"type":12}`, `{"type":null}`} {
		obj, err := ParseObject([]byte(input))
		if err != nil {
			t.Fatalf("ParseObject %q: %v", input, err)
		}
		if _, err := obj.Discriminator(); !errors.Is(err, ErrMissingDiscriminator) {
			t.Fatalf("input %q: expected ErrMissingDiscriminator, got %v", input, err)
		}
	}
}

func TestFieldMissing(t *testing.T) {
	obj := Object{}
	_, err := obj.String("serial_number")
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "serial_number" {
		t.Fatalf("unexpected field %q", missing.Field)
	}
}

func TestStringMismatch(t *testing.T) {
	obj, err := ParseObject([]byte(`{"serial_number":42}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	_, err = obj.String("serial_number")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Expected != "string" || mismatch.Actual != "number" {
		t.Fatalf("unexpected mismatch %+v", mismatch)
	}
}

func TestUint8Range(t *testing.T) {
	obj, err := ParseObject([]byte(`{"firmware_revision":300}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	_, err = obj.Uint8("firmware_revision")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Expected != "uint8" {
		t.Fatalf("unexpected expected type %q", mismatch.Expected)
	}
}

func TestInt32Negative(t *testing.T) {
	obj, err := ParseObject([]byte(`{"rssi":-62}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	v, err := obj.Int32("rssi")
	if err != nil {
		t.Fatalf("Int32: %v", err)
	}
	if v != -62 {
		t.Fatalf("unexpected value %d", v)
	}
}

func TestUint32Slice(t *testing.T) {
	obj, err := ParseObject([]byte(`{"fs":[1,0,15675411,524288]}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	fs, err := obj.Uint32Slice("fs")
	if err != nil {
		t.Fatalf("Uint32Slice: %v", err)
	}
	if len(fs) != 4 || fs[2] != 15675411 {
		t.Fatalf("unexpected slice %v", fs)
	}
}

func TestUint32SliceBadElement(t *testing.T) {
	obj, err := ParseObject([]byte(`{"fs":[1,"x"]}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	_, err = obj.Uint32Slice("fs")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Field != "fs[1]" {
		t.Fatalf("unexpected field %q", mismatch.Field)
	}
}
