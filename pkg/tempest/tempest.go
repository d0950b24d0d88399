// Package tempest decodes WeatherFlow Tempest telemetry packets into typed
// records and encodes them back to canonical wire text.
//
// Packets are JSON objects broadcast by the station hub over UDP; the cloud
// REST API returns the same format. The "type" field selects one of eight
// packet kinds, and most kinds carry observation data as positional arrays
// whose slot meaning is fixed by the vendor rather than named. Decode maps
// that format onto the Record implementations in this package, validating
// slot types and array arity exactly; Encode reverses the mapping so that a
// decoded record round-trips to an equal record.
//
// Both operations are pure and safe for concurrent use.
package tempest

import (
	"encoding/json"
	"fmt"

	"github.com/davethiede/libtempest/internal/wire"
)

// decoders maps each discriminator to its variant decoder. The table is
// closed: packets with any other type tag fail with UnknownVariantError.
var decoders = map[string]func(wire.Object) (Record, error){
	TypeRainStart:          decodeRainStart,
	TypeLightningStrike:    decodeLightningStrike,
	TypeRapidWind:          decodeRapidWind,
	TypeAirObservation:     decodeAirObservation,
	TypeSkyObservation:     decodeSkyObservation,
	TypeTempestObservation: decodeTempestObservation,
	TypeDeviceStatus:       decodeDeviceStatus,
	TypeHubStatus:          decodeHubStatus,
}

// Decode parses one complete packet and returns the typed record it carries.
func Decode(data []byte) (Record, error) {
	obj, err := wire.ParseObject(data)
	if err != nil {
		return nil, err
	}
	tag, err := obj.Discriminator()
	if err != nil {
		return nil, err
	}
	decode, ok := decoders[tag]
	if !ok {
		return nil, &UnknownVariantError{Tag: tag}
	}
	return decode(obj)
}

// DecodeString is Decode for callers holding packet text as a string.
func DecodeString(text string) (Record, error) {
	return Decode([]byte(text))
}

// Encode renders a record as canonical packet text. The discriminator tag is
// restored into the object and positional payloads are emitted as ordered
// arrays, with absent nullable slots written as null. A record produced by
// Decode always encodes successfully.
func Encode(r Record) ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode %s packet: %w", r.Type(), err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s packet: %w", r.Type(), err)
	}
	tag, err := json.Marshal(r.Type())
	if err != nil {
		return nil, fmt.Errorf("encode %s packet: %w", r.Type(), err)
	}
	fields["type"] = tag
	return json.Marshal(fields)
}
