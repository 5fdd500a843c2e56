package fakesensorclient

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-sensor-bot/sensor"
)

var _ sensor.Client = (*FakeClient)(nil)

// FakeClient is a scriptable sensor.Client for tests.
type FakeClient struct {
	lock sync.Mutex

	// Payload is returned for any resource unless Err is set.
	Payload string
	Err     error

	fetched []string
}

func New() *FakeClient {
	return &FakeClient{}
}

func (c *FakeClient) Fetch(ctx context.Context, resource string) (string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.fetched = append(c.fetched, resource)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Payload, nil
}

// Fetched returns the resources requested so far.
func (c *FakeClient) Fetched() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]string(nil), c.fetched...)
}
