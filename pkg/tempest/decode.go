package tempest

import (
	"encoding/json"

	"github.com/davethiede/libtempest/internal/wire"
)

func decodeRainStart(obj wire.Object) (Record, error) {
	var rec RainStartEvent
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	raw, err := obj.Field("evt")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rec.Event); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeLightningStrike(obj wire.Object) (Record, error) {
	var rec LightningStrikeEvent
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	raw, err := obj.Field("evt")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rec.Event); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeRapidWind(obj wire.Object) (Record, error) {
	var rec RapidWind
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	raw, err := obj.Field("ob")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rec.Observation); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeAirObservation(obj wire.Object) (Record, error) {
	var rec AirObservation
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	if rec.Observations, err = decodeBatch[AirReading](obj); err != nil {
		return nil, err
	}
	if rec.FirmwareRevision, err = obj.Uint8("firmware_revision"); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeSkyObservation(obj wire.Object) (Record, error) {
	var rec SkyObservation
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	if rec.Observations, err = decodeBatch[SkyReading](obj); err != nil {
		return nil, err
	}
	if rec.FirmwareRevision, err = obj.Uint8("firmware_revision"); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeTempestObservation(obj wire.Object) (Record, error) {
	var rec TempestObservation
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	if rec.Observations, err = decodeBatch[TempestReading](obj); err != nil {
		return nil, err
	}
	if rec.FirmwareRevision, err = obj.Uint32("firmware_revision"); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeDeviceStatus(obj wire.Object) (Record, error) {
	var rec DeviceStatus
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	if rec.HubSN, err = obj.String("hub_sn"); err != nil {
		return nil, err
	}
	if rec.Timestamp, err = obj.Uint64("timestamp"); err != nil {
		return nil, err
	}
	if rec.Uptime, err = obj.Uint32("uptime"); err != nil {
		return nil, err
	}
	if rec.Voltage, err = obj.Float64("voltage"); err != nil {
		return nil, err
	}
	if rec.FirmwareRevision, err = obj.Uint32("firmware_revision"); err != nil {
		return nil, err
	}
	if rec.RSSI, err = obj.Int32("rssi"); err != nil {
		return nil, err
	}
	if rec.HubRSSI, err = obj.Int32("hub_rssi"); err != nil {
		return nil, err
	}
	if rec.SensorStatus, err = obj.Uint32("sensor_status"); err != nil {
		return nil, err
	}
	if rec.Debug, err = obj.Uint32("debug"); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeHubStatus(obj wire.Object) (Record, error) {
	var rec HubStatus
	var err error
	if rec.SerialNumber, err = obj.String("serial_number"); err != nil {
		return nil, err
	}
	// The hub reports its firmware revision as text; sensor packets use a
	// number. Vendor asymmetry, preserved on purpose.
	if rec.FirmwareRevision, err = obj.String("firmware_revision"); err != nil {
		return nil, err
	}
	if rec.Uptime, err = obj.Uint32("uptime"); err != nil {
		return nil, err
	}
	if rec.RSSI, err = obj.Int32("rssi"); err != nil {
		return nil, err
	}
	if rec.Timestamp, err = obj.Uint64("timestamp"); err != nil {
		return nil, err
	}
	if rec.ResetFlags, err = obj.String("reset_flags"); err != nil {
		return nil, err
	}
	if rec.Seq, err = obj.Uint32("seq"); err != nil {
		return nil, err
	}
	if rec.FS, err = obj.Uint32Slice("fs"); err != nil {
		return nil, err
	}
	raw, err := obj.Field("radio_stats")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rec.RadioStats); err != nil {
		return nil, err
	}
	if rec.MQTTStats, err = obj.Uint32Slice("mqtt_stats"); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeBatch decodes the outer obs array of a batched observation packet.
// An empty array is valid and yields zero readings.
func decodeBatch[T any](obj wire.Object) ([]T, error) {
	elems, err := obj.Array("obs")
	if err != nil {
		return nil, err
	}
	readings := make([]T, 0, len(elems))
	for _, e := range elems {
		var r T
		if err := json.Unmarshal(e, &r); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, nil
}
