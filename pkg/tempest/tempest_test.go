package tempest

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeMalformed(t *testing.T) {
	_, err := DecodeString(`{"serial_number": "SK-000`)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestDecodeMissingDiscriminator(t *testing.T) {
	for _, packet := range []string{
		`{"serial_number":"SK-00008453","hub_sn":"HB-00000001","evt":[1493322445]}`,
		`{"type":17,"serial_number":"SK-00008453"}`,
	} {
		_, err := DecodeString(packet)
		require.ErrorIs(t, err, ErrMissingDiscriminator, "packet: %s", packet)
	}
}

func TestDecodeUnknownVariant(t *testing.T) {
	_, err := DecodeString(`{"type":"evt_unknown","serial_number":"SK-00008453","hub_sn":"HB-00000001"}`)
	var unknown *UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "evt_unknown", unknown.Tag)
}

func TestDecodeMissingField(t *testing.T) {
	_, err := DecodeString(`{"type":"evt_precip","serial_number":"SK-00008453","evt":[1493322445]}`)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "hub_sn", missing.Field)
}

func TestDecodeArityMismatch(t *testing.T) {
	cases := []struct {
		name     string
		packet   string
		field    string
		expected int
		actual   int
	}{
		{
			name:     "evt_precip extra slot",
			packet:   `{"type":"evt_precip","serial_number":"SK-00008453","hub_sn":"HB-00000001","evt":[1493322445,1]}`,
			field:    "evt",
			expected: 1,
			actual:   2,
		},
		{
			name:     "rapid_wind missing slot",
			packet:   `{"type":"rapid_wind","serial_number":"SK-00008453","hub_sn":"HB-00000001","ob":[1493322445,2.3]}`,
			field:    "ob",
			expected: 3,
			actual:   2,
		},
		{
			name:     "obs_sky reading missing the nullable slot",
			packet:   `{"type":"obs_sky","serial_number":"SK-00008453","hub_sn":"HB-00000001","obs":[[1493321340,9000,10,0.0,2.6,4.6,7.4,187,3.12,1,130,0,3]],"firmware_revision":29}`,
			field:    "obs",
			expected: 14,
			actual:   13,
		},
		{
			name:     "hub radio_stats extra slot",
			packet:   `{"type":"hub_status","serial_number":"HB-00000001","firmware_revision":"35","uptime":1670133,"rssi":-62,"timestamp":1495724691,"reset_flags":"BOR","seq":48,"fs":[1,0],"radio_stats":[2,1,0,3,2839,7],"mqtt_stats":[1,0]}`,
			field:    "radio_stats",
			expected: 5,
			actual:   6,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeString(tc.packet)
			var arity *ArityMismatchError
			require.ErrorAs(t, err, &arity)
			require.Equal(t, tc.field, arity.Field)
			require.Equal(t, tc.expected, arity.Expected)
			require.Equal(t, tc.actual, arity.Actual)
		})
	}
}

func TestDecodeNullableRainDay(t *testing.T) {
	withValue := `{"type":"obs_sky","serial_number":"SK-00008453","hub_sn":"HB-00000001","obs":[[1493321340,9000,10,0.0,2.6,4.6,7.4,187,3.12,1,130,12,0,3]],"firmware_revision":29}`
	rec, err := DecodeString(withValue)
	require.NoError(t, err)
	sky := rec.(SkyObservation)
	require.NotNil(t, sky.Observations[0].RainDay)
	require.Equal(t, uint32(12), *sky.Observations[0].RainDay)

	withNull := `{"type":"obs_sky","serial_number":"SK-00008453","hub_sn":"HB-00000001","obs":[[1493321340,9000,10,0.0,2.6,4.6,7.4,187,3.12,1,130,null,0,3]],"firmware_revision":29}`
	rec, err = DecodeString(withNull)
	require.NoError(t, err)
	sky = rec.(SkyObservation)
	require.Nil(t, sky.Observations[0].RainDay)
}

func TestDecodeFirmwareRevisionAsymmetry(t *testing.T) {
	// The hub reports firmware as text; a number there is an error.
	numericHub := `{"type":"hub_status","serial_number":"HB-00000001","firmware_revision":35,"uptime":1670133,"rssi":-62,"timestamp":1495724691,"reset_flags":"BOR","seq":48,"fs":[1,0],"radio_stats":[2,1,0,3,2839],"mqtt_stats":[1,0]}`
	_, err := DecodeString(numericHub)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "firmware_revision", mismatch.Field)
	require.Equal(t, "string", mismatch.Expected)
	require.Equal(t, "number", mismatch.Actual)

	// Sensor packets report firmware numerically; text there is an error.
	textualAir := `{"type":"obs_air","serial_number":"AR-00004049","hub_sn":"HB-00000001","obs":[],"firmware_revision":"17"}`
	_, err = DecodeString(textualAir)
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "firmware_revision", mismatch.Field)
	require.Equal(t, "uint8", mismatch.Expected)
	require.Equal(t, "string", mismatch.Actual)
}

func TestDecodeFirmwareRevisionOverflow(t *testing.T) {
	packet := `{"type":"obs_air","serial_number":"AR-00004049","hub_sn":"HB-00000001","obs":[],"firmware_revision":300}`
	_, err := DecodeString(packet)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "uint8", mismatch.Expected)
}

func TestDecodeEmptyObservations(t *testing.T) {
	for _, packet := range []string{
		`{"type":"obs_air","serial_number":"AR-00004049","hub_sn":"HB-00000001","obs":[],"firmware_revision":17}`,
		`{"type":"obs_sky","serial_number":"SK-00008453","hub_sn":"HB-00000001","obs":[],"firmware_revision":29}`,
		`{"type":"obs_st","serial_number":"AR-00000512","hub_sn":"HB-00013030","obs":[],"firmware_revision":129}`,
	} {
		rec, err := DecodeString(packet)
		require.NoError(t, err, "packet: %s", packet)
		switch obs := rec.(type) {
		case AirObservation:
			require.Empty(t, obs.Observations)
		case SkyObservation:
			require.Empty(t, obs.Observations)
		case TempestObservation:
			require.Empty(t, obs.Observations)
		default:
			t.Fatalf("unexpected record %T", rec)
		}
	}
}

func TestDecodeSlotTypeMismatch(t *testing.T) {
	packet := `{"type":"rapid_wind","serial_number":"SK-00008453","hub_sn":"HB-00000001","ob":[1493322445,"fast",128]}`
	_, err := DecodeString(packet)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "ob.wind_speed", mismatch.Field)
	require.Equal(t, "number", mismatch.Expected)
	require.Equal(t, "string", mismatch.Actual)
}

func TestEncodeRestoresDiscriminator(t *testing.T) {
	for _, rec := range []Record{
		RainStartEvent{SerialNumber: "SK-00008453", HubSN: "HB-00000001", Event: RainEvent{Epoch: 1493322445}},
		DeviceStatus{SerialNumber: "AR-00004049", HubSN: "HB-00000001", Timestamp: 1510855923, Uptime: 2189, Voltage: 3.5, FirmwareRevision: 17, RSSI: -17, HubRSSI: -87},
	} {
		encoded, err := Encode(rec)
		require.NoError(t, err)
		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(encoded, &fields))
		var tag string
		require.NoError(t, json.Unmarshal(fields["type"], &tag))
		require.Equal(t, rec.Type(), tag)
	}
}

func TestEncodeNullableSlotEmitsNull(t *testing.T) {
	rec := SkyObservation{
		SerialNumber: "SK-00008453",
		HubSN:        "HB-00000001",
		Observations: []SkyReading{{Epoch: 1493321340, ReportInterval: 1, WindSampleInterval: 3}},
	}
	encoded, err := Encode(rec)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &fields))
	var obs [][]json.RawMessage
	require.NoError(t, json.Unmarshal(fields["obs"], &obs))
	require.Len(t, obs, 1)
	require.Len(t, obs[0], 14)
	require.Equal(t, "null", string(obs[0][11]))
}

func TestDecodeErrorsAreTerminal(t *testing.T) {
	// A failed decode never yields a record alongside the error.
	rec, err := DecodeString(`{"type":"evt_precip","serial_number":"SK-00008453","hub_sn":"HB-00000001","evt":[]}`)
	require.Error(t, err)
	require.Nil(t, rec)
	require.False(t, errors.Is(err, ErrMissingDiscriminator))
}
