// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package probe checks that BMC management addresses are reachable
// before a fleet run starts. A target must answer ICMP echo and
// accept a TCP connection on the Redfish HTTPS port.
package probe

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// DefaultTimeout bounds each individual probe step.
const DefaultTimeout = 5 * time.Second

// Prober performs reachability checks. It implements the runner
// executor interface so `targets check` runs through the same
// sequential engine as every other operation.
type Prober struct {
	// Timeout bounds each probe step. Zero means DefaultTimeout.
	Timeout time.Duration

	// PingBinary overrides the ping executable, for tests. Empty
	// means "ping" from PATH.
	PingBinary string

	// Dial overrides TCP dialing, for tests. Nil uses a net.Dialer.
	Dial func(ctx context.Context, network, address string) (net.Conn, error)
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// Execute probes one target: ICMP echo first, then a TCP dial to
// port 443. The detail names which layer answered.
func (p *Prober) Execute(ctx context.Context, record target.Record, op runner.Operation) (string, error) {
	if op.Kind != runner.Reachability {
		return "", fmt.Errorf("operation %s is not a reachability probe", op.Kind)
	}
	if err := p.ping(ctx, record.Address); err != nil {
		return "", fmt.Errorf("ping: %w", err)
	}
	if err := p.dialHTTPS(ctx, record.Address); err != nil {
		return "", fmt.Errorf("tcp/443: %w", err)
	}
	return "ping + tcp/443", nil
}

// ping sends a single ICMP echo via the system ping binary. Raw ICMP
// sockets need elevated privileges; the setuid system binary does not.
func (p *Prober) ping(ctx context.Context, address string) error {
	binary := p.PingBinary
	if binary == "" {
		binary = "ping"
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	seconds := int(p.timeout().Seconds())
	if seconds < 1 {
		seconds = 1
	}
	command := exec.CommandContext(ctx, binary, "-c", "1", "-W", fmt.Sprint(seconds), address)
	if err := command.Run(); err != nil {
		return fmt.Errorf("no echo reply from %s", address)
	}
	return nil
}

// dialHTTPS verifies the Redfish service port accepts connections.
func (p *Prober) dialHTTPS(ctx context.Context, address string) error {
	dial := p.Dial
	if dial == nil {
		dialer := &net.Dialer{Timeout: p.timeout()}
		dial = dialer.DialContext
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	conn, err := dial(ctx, "tcp", net.JoinHostPort(address, "443"))
	if err != nil {
		return err
	}
	return conn.Close()
}
