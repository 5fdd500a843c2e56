package config

import "time"

type SensorConfig interface {
	GetSensorAddress() string
	GetPSKIdentity() string
	GetPSKKey() string
	GetSensorTimeout() time.Duration
}

type Sensor struct{}

var _ SensorConfig = Sensor{}

func (Sensor) GetSensorAddress() string {
	return GetEnv("COAP_SERVER_ADDR", "")
}

func (Sensor) GetPSKIdentity() string {
	return GetEnv("PSK_IDENTITY", "")
}

func (Sensor) GetPSKKey() string {
	return GetEnv("PSK_KEY", "")
}

func (Sensor) GetSensorTimeout() time.Duration {
	return GetDurationEnv("COAP_TIMEOUT", 10*time.Second)
}
