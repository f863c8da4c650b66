package kvm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ardnew/nanokvm/pkg"
	"github.com/ardnew/nanokvm/proto"
)

// Info queries the controller for its chip version, target connection
// state, and keyboard lock LEDs.
func (c *Client) Info(ctx context.Context) (proto.Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var info proto.Info
	reply, err := c.exchange(ctx, proto.CmdGetInfo, nil)
	if err != nil {
		return info, err
	}
	if err := proto.ParseInfo(reply, &info); err != nil {
		return info, errors.Wrap(err, "GET_INFO reply")
	}
	return info, nil
}

// ParaCfg reads the controller's parameter configuration block.
func (c *Client) ParaCfg(ctx context.Context) (proto.ParaCfg, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var cfg proto.ParaCfg
	reply, err := c.exchange(ctx, proto.CmdGetParaCfg, nil)
	if err != nil {
		return cfg, err
	}
	if err := proto.ParseParaCfg(reply, &cfg); err != nil {
		return cfg, errors.Wrap(err, "GET_PARA_CFG reply")
	}
	return cfg, nil
}

// SetParaCfg writes the parameter configuration block. Changes take
// effect after a Reset or power cycle.
func (c *Client) SetParaCfg(ctx context.Context, cfg *proto.ParaCfg) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var buf [proto.ParaCfgSize]byte
	if cfg.MarshalTo(buf[:]) == 0 {
		return errors.Wrap(pkg.ErrBufferTooSmall, "SET_PARA_CFG")
	}
	return c.statusExchange(ctx, proto.CmdSetParaCfg, buf[:])
}

// USBString reads a custom USB string descriptor.
func (c *Client) USBString(ctx context.Context, typ proto.StringType) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	reply, err := c.exchange(ctx, proto.CmdGetUSBString, []byte{uint8(typ)})
	if err != nil {
		return "", err
	}
	var s proto.USBString
	if err := proto.ParseUSBString(reply, &s); err != nil {
		return "", errors.Wrap(err, "GET_USB_STRING reply")
	}
	return s.Value, nil
}

// SetUSBString writes a custom USB string descriptor. The value must
// fit in proto.MaxUSBStringLen bytes of ASCII.
func (c *Client) SetUSBString(ctx context.Context, typ proto.StringType, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := proto.USBString{Type: typ, Value: value}
	var buf [2 + proto.MaxUSBStringLen]byte
	n := s.MarshalTo(buf[:])
	if n == 0 {
		return errors.Wrapf(pkg.ErrInvalidParameter,
			"%s descriptor exceeds %d bytes", typ.String(), proto.MaxUSBStringLen)
	}
	return c.statusExchange(ctx, proto.CmdSetUSBString, buf[:n])
}

// SetDefaultCfg restores the controller's factory configuration.
func (c *Client) SetDefaultCfg(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusExchange(ctx, proto.CmdSetDefaultCfg, nil)
}

// Reset restarts the controller chip, applying any pending
// configuration changes. The USB device re-enumerates on the target.
func (c *Client) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusExchange(ctx, proto.CmdReset, nil)
}
