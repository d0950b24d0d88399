package tempest

import (
	"encoding/json"

	"github.com/davethiede/libtempest/internal/wire"
)

// Packet type discriminators carried in the wire format's "type" field.
const (
	TypeRainStart          = "evt_precip"
	TypeLightningStrike    = "evt_strike"
	TypeRapidWind          = "rapid_wind"
	TypeAirObservation     = "obs_air"
	TypeSkyObservation     = "obs_sky"
	TypeTempestObservation = "obs_st"
	TypeDeviceStatus       = "device_status"
	TypeHubStatus          = "hub_status"
)

// Record is one decoded telemetry packet. The set of implementations is
// closed: exactly the eight packet types the hub emits.
type Record interface {
	// Type returns the wire discriminator for this record.
	Type() string

	isRecord()
}

// RainStartEvent reports the onset of precipitation [type = evt_precip].
type RainStartEvent struct {
	SerialNumber string    `json:"serial_number"`
	HubSN        string    `json:"hub_sn"`
	Event        RainEvent `json:"evt"`
}

func (RainStartEvent) Type() string { return TypeRainStart }
func (RainStartEvent) isRecord()    {}

// LightningStrikeEvent reports a detected strike [type = evt_strike].
type LightningStrikeEvent struct {
	SerialNumber string      `json:"serial_number"`
	HubSN        string      `json:"hub_sn"`
	Event        StrikeEvent `json:"evt"`
}

func (LightningStrikeEvent) Type() string { return TypeLightningStrike }
func (LightningStrikeEvent) isRecord()    {}

// RapidWind is the high-rate wind sample [type = rapid_wind].
type RapidWind struct {
	SerialNumber string      `json:"serial_number"`
	HubSN        string      `json:"hub_sn"`
	Observation  WindReading `json:"ob"`
}

func (RapidWind) Type() string { return TypeRapidWind }
func (RapidWind) isRecord()    {}

// AirObservation carries batched Air module readings [type = obs_air].
type AirObservation struct {
	SerialNumber     string       `json:"serial_number"`
	HubSN            string       `json:"hub_sn"`
	Observations     []AirReading `json:"obs"`
	FirmwareRevision uint8        `json:"firmware_revision"`
}

func (AirObservation) Type() string { return TypeAirObservation }
func (AirObservation) isRecord()    {}

// SkyObservation carries batched Sky module readings [type = obs_sky].
type SkyObservation struct {
	SerialNumber     string       `json:"serial_number"`
	HubSN            string       `json:"hub_sn"`
	Observations     []SkyReading `json:"obs"`
	FirmwareRevision uint8        `json:"firmware_revision"`
}

func (SkyObservation) Type() string { return TypeSkyObservation }
func (SkyObservation) isRecord()    {}

// TempestObservation carries batched readings from the combined Tempest
// sensor [type = obs_st].
type TempestObservation struct {
	SerialNumber     string           `json:"serial_number"`
	HubSN            string           `json:"hub_sn"`
	Observations     []TempestReading `json:"obs"`
	FirmwareRevision uint32           `json:"firmware_revision"`
}

func (TempestObservation) Type() string { return TypeTempestObservation }
func (TempestObservation) isRecord()    {}

// DeviceStatus is the periodic health report of a sensor module
// [type = device_status].
type DeviceStatus struct {
	SerialNumber     string  `json:"serial_number"`
	HubSN            string  `json:"hub_sn"`
	Timestamp        uint64  `json:"timestamp"`
	Uptime           uint32  `json:"uptime"`
	Voltage          float64 `json:"voltage"`
	FirmwareRevision uint32  `json:"firmware_revision"`
	RSSI             int32   `json:"rssi"`
	HubRSSI          int32   `json:"hub_rssi"`
	SensorStatus     uint32  `json:"sensor_status"`
	Debug            uint32  `json:"debug"`
}

func (DeviceStatus) Type() string { return TypeDeviceStatus }
func (DeviceStatus) isRecord()    {}

// HubStatus is the periodic health report of the hub itself
// [type = hub_status]. The hub encodes its firmware revision as text where
// sensor modules use a number; the vendor format is asymmetric here and the
// asymmetry is preserved. FS and MQTTStats are vendor-internal diagnostic
// arrays kept opaque.
type HubStatus struct {
	SerialNumber     string     `json:"serial_number"`
	FirmwareRevision string     `json:"firmware_revision"`
	Uptime           uint32     `json:"uptime"`
	RSSI             int32      `json:"rssi"`
	Timestamp        uint64     `json:"timestamp"`
	ResetFlags       string     `json:"reset_flags"`
	Seq              uint32     `json:"seq"`
	FS               []uint32   `json:"fs"`
	RadioStats       RadioStats `json:"radio_stats"`
	MQTTStats        []uint32   `json:"mqtt_stats"`
}

func (HubStatus) Type() string { return TypeHubStatus }
func (HubStatus) isRecord()    {}

// RainEvent is the single-slot evt payload of a rain start event.
type RainEvent struct {
	Epoch uint64
}

func (e *RainEvent) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("evt", data, []wire.Slot{
		{Name: "epoch", Value: &e.Epoch},
	})
}

func (e RainEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Epoch})
}

// StrikeEvent is the evt payload of a lightning strike event.
type StrikeEvent struct {
	Epoch    uint64
	Distance uint16 // km
	Energy   uint16
}

func (e *StrikeEvent) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("evt", data, []wire.Slot{
		{Name: "epoch", Value: &e.Epoch},
		{Name: "distance", Value: &e.Distance},
		{Name: "energy", Value: &e.Energy},
	})
}

func (e StrikeEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Epoch, e.Distance, e.Energy})
}

// WindReading is the ob payload of a rapid wind sample.
type WindReading struct {
	Epoch         uint64
	WindSpeed     float64 // m/s
	WindDirection uint32  // degrees
}

func (r *WindReading) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("ob", data, []wire.Slot{
		{Name: "epoch", Value: &r.Epoch},
		{Name: "wind_speed", Value: &r.WindSpeed},
		{Name: "wind_direction", Value: &r.WindDirection},
	})
}

func (r WindReading) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Epoch, r.WindSpeed, r.WindDirection})
}

// AirReading is one observation record from the Air module.
type AirReading struct {
	Epoch                      uint64
	StationPressure            float64 // mb
	AirTemperature             float64 // degrees C
	RelativeHumidity           uint32  // %
	LightningStrikeCount       uint32
	LightningStrikeAvgDistance uint32  // km
	Battery                    float64 // volts
	ReportInterval             uint32  // minutes
}

func (r *AirReading) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("obs", data, []wire.Slot{
		{Name: "epoch", Value: &r.Epoch},
		{Name: "station_pressure", Value: &r.StationPressure},
		{Name: "air_temperature", Value: &r.AirTemperature},
		{Name: "relative_humidity", Value: &r.RelativeHumidity},
		{Name: "lightning_strike_count", Value: &r.LightningStrikeCount},
		{Name: "lightning_strike_avg_distance", Value: &r.LightningStrikeAvgDistance},
		{Name: "battery", Value: &r.Battery},
		{Name: "report_interval", Value: &r.ReportInterval},
	})
}

func (r AirReading) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		r.Epoch, r.StationPressure, r.AirTemperature, r.RelativeHumidity,
		r.LightningStrikeCount, r.LightningStrikeAvgDistance, r.Battery,
		r.ReportInterval,
	})
}

// SkyReading is one observation record from the Sky module. RainDay is the
// daily rain accumulator; the hub reports null for it outside rain events,
// so nil means "no value", never zero.
type SkyReading struct {
	Epoch              uint64
	Illuminance        uint32  // lux
	UV                 uint32  // index
	RainMinute         float64
	WindLull           float64 // m/s, 3 minute minimum
	WindAvg            float64 // m/s
	WindGust           float64 // m/s, 3 minute maximum
	WindDirection      uint32  // degrees
	Battery            float64 // volts
	ReportInterval     uint32  // minutes
	SolarRadiation     uint32  // W/m^2
	RainDay            *uint32
	PrecipitationType  uint8   // 0 = none, 1 = rain, 2 = hail
	WindSampleInterval uint32
}

func (r *SkyReading) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("obs", data, []wire.Slot{
		{Name: "epoch", Value: &r.Epoch},
		{Name: "illuminance", Value: &r.Illuminance},
		{Name: "uv", Value: &r.UV},
		{Name: "rain_minute", Value: &r.RainMinute},
		{Name: "wind_lull_min3", Value: &r.WindLull},
		{Name: "wind_avg", Value: &r.WindAvg},
		{Name: "wind_gust_max3", Value: &r.WindGust},
		{Name: "wind_direction", Value: &r.WindDirection},
		{Name: "battery", Value: &r.Battery},
		{Name: "report_interval", Value: &r.ReportInterval},
		{Name: "solar_radiation", Value: &r.SolarRadiation},
		{Name: "rain_day", Value: &r.RainDay},
		{Name: "precipitation_type", Value: &r.PrecipitationType},
		{Name: "wind_sample_interval", Value: &r.WindSampleInterval},
	})
}

func (r SkyReading) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		r.Epoch, r.Illuminance, r.UV, r.RainMinute, r.WindLull, r.WindAvg,
		r.WindGust, r.WindDirection, r.Battery, r.ReportInterval,
		r.SolarRadiation, r.RainDay, r.PrecipitationType, r.WindSampleInterval,
	})
}

// TempestReading is one observation record from the combined Tempest sensor.
type TempestReading struct {
	Epoch                uint64
	WindLull             float64 // m/s, 3 minute minimum
	WindAvg              float64 // m/s
	WindGust             float64 // m/s, 3 minute maximum
	WindDirection        uint32  // degrees
	WindSampleInterval   uint32
	StationPressure      float64 // mb
	AirTemperature       float64 // degrees C
	RelativeHumidity     float64 // %
	Illuminance          uint32  // lux
	UV                   float64 // index
	SolarRadiation       uint32  // W/m^2
	RainMinute           float64
	PrecipitationType    uint8   // 0 = none, 1 = rain, 2 = hail, 3 = rain + hail
	LightningStrikeDist  uint32
	LightningStrikeCount uint32
	Battery              float64 // volts
	ReportInterval       uint32  // minutes
}

func (r *TempestReading) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("obs", data, []wire.Slot{
		{Name: "epoch", Value: &r.Epoch},
		{Name: "wind_lull_min3", Value: &r.WindLull},
		{Name: "wind_avg", Value: &r.WindAvg},
		{Name: "wind_gust_max3", Value: &r.WindGust},
		{Name: "wind_direction", Value: &r.WindDirection},
		{Name: "wind_sample_interval", Value: &r.WindSampleInterval},
		{Name: "station_pressure", Value: &r.StationPressure},
		{Name: "air_temperature", Value: &r.AirTemperature},
		{Name: "relative_humidity", Value: &r.RelativeHumidity},
		{Name: "illuminance", Value: &r.Illuminance},
		{Name: "uv", Value: &r.UV},
		{Name: "solar_radiation", Value: &r.SolarRadiation},
		{Name: "rain_minute", Value: &r.RainMinute},
		{Name: "precipitation_type", Value: &r.PrecipitationType},
		{Name: "lightning_strike_dist", Value: &r.LightningStrikeDist},
		{Name: "lightning_strike_count", Value: &r.LightningStrikeCount},
		{Name: "battery", Value: &r.Battery},
		{Name: "report_interval", Value: &r.ReportInterval},
	})
}

func (r TempestReading) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		r.Epoch, r.WindLull, r.WindAvg, r.WindGust, r.WindDirection,
		r.WindSampleInterval, r.StationPressure, r.AirTemperature,
		r.RelativeHumidity, r.Illuminance, r.UV, r.SolarRadiation,
		r.RainMinute, r.PrecipitationType, r.LightningStrikeDist,
		r.LightningStrikeCount, r.Battery, r.ReportInterval,
	})
}

// RadioStats is the radio_stats payload nested in a hub status packet.
type RadioStats struct {
	Version      uint32
	Reboots      uint32
	I2CBusErrors uint32
	RadioStatus  uint8  // 0 = off, 1 = on, 3 = active
	NetworkID    uint32
}

func (s *RadioStats) UnmarshalJSON(data []byte) error {
	return wire.DecodeTuple("radio_stats", data, []wire.Slot{
		{Name: "version", Value: &s.Version},
		{Name: "reboots", Value: &s.Reboots},
		{Name: "i2c_errors", Value: &s.I2CBusErrors},
		{Name: "radio_status", Value: &s.RadioStatus},
		{Name: "network_id", Value: &s.NetworkID},
	})
}

func (s RadioStats) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Version, s.Reboots, s.I2CBusErrors, s.RadioStatus, s.NetworkID})
}
