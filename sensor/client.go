package sensor

import "context"

// Resource identifiers understood by the sensor network.
const (
	ResourceInternalTemp = "internal_temp"
	ResourceExternalTemp = "external_temp"
	ResourceHumidity     = "hum"
)

// Client fetches one raw reading from the sensor network. Failures map
// onto the error catalog: ErrConnectivity, ErrCredentials, ErrTimeout.
type Client interface {
	Fetch(ctx context.Context, resource string) (string, error)
}
