// Package coapclient fetches sensor readings over CoAP secured with
// DTLS pre-shared keys, the transport the sensor network speaks.
package coapclient

import (
	"context"
	"strings"
	"time"

	piondtls "github.com/pion/dtls/v3"
	"github.com/plgd-dev/go-coap/v3/dtls"
	"github.com/plgd-dev/go-coap/v3/message/codes"

	"github.com/jrsteele09/go-sensor-bot/internal/config"
	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/jrsteele09/go-sensor-bot/sensor"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ sensor.Client = (*Client)(nil)

// Client dials the sensor endpoint per fetch. The endpoint handles one
// short-lived reading request at a time; holding connections open buys
// nothing against a constrained device.
type Client struct {
	address  string
	identity string
	key      []byte
	timeout  time.Duration
}

func New(cfg config.SensorConfig) (*Client, error) {
	if cfg.GetSensorAddress() == "" {
		return nil, errors.Wrap(apperrors.ErrMissingSensorAddress, "[coapclient.New]")
	}
	return &Client{
		address:  cfg.GetSensorAddress(),
		identity: cfg.GetPSKIdentity(),
		key:      []byte(cfg.GetPSKKey()),
		timeout:  cfg.GetSensorTimeout(),
	}, nil
}

// Fetch performs a GET for the resource and returns the decoded payload.
func (c *Client) Fetch(ctx context.Context, resource string) (string, error) {
	if c.identity == "" || len(c.key) == 0 {
		return "", errors.Wrap(apperrors.ErrCredentials, "[Client.Fetch] no PSK configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := dtls.Dial(c.address, &piondtls.Config{
		PSK: func(hint []byte) ([]byte, error) {
			return c.key, nil
		},
		PSKIdentityHint: []byte(c.identity),
		CipherSuites:    []piondtls.CipherSuiteID{piondtls.TLS_PSK_WITH_AES_128_CCM_8},
	})
	if err != nil {
		return "", errors.Wrapf(categorizeDialError(err), "[Client.Fetch] dial %s: %v", c.address, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msg("closing sensor connection")
		}
	}()

	response, err := conn.Get(ctx, "/"+resource)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", errors.Wrapf(apperrors.ErrTimeout, "[Client.Fetch] get %q", resource)
		}
		return "", errors.Wrapf(apperrors.ErrConnectivity, "[Client.Fetch] get %q: %v", resource, err)
	}

	switch response.Code() {
	case codes.Content:
	case codes.Unauthorized, codes.Forbidden:
		return "", errors.Wrapf(apperrors.ErrCredentials, "[Client.Fetch] %q answered %v", resource, response.Code())
	default:
		return "", errors.Wrapf(apperrors.ErrConnectivity, "[Client.Fetch] %q answered %v", resource, response.Code())
	}

	body, err := response.ReadBody()
	if err != nil {
		return "", errors.Wrapf(apperrors.ErrConnectivity, "[Client.Fetch] read body: %v", err)
	}
	return string(body), nil
}

// categorizeDialError separates rejected trust material from plain
// unreachability. A DTLS alert during the handshake means the peer
// refused our PSK; anything else is connectivity.
func categorizeDialError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "alert") || strings.Contains(msg, "handshake") {
		return apperrors.ErrCredentials
	}
	return apperrors.ErrConnectivity
}
