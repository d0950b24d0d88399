// Package monitor implements the UDP listen loop behind tempest-listen. It
// reads one datagram at a time, hands the payload to the codec, and renders
// the result in the selected display mode. The codec itself does no I/O;
// everything transport-related lives here.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/davethiede/libtempest/pkg/tempest"
)

// Mode selects how received packets are displayed.
type Mode string

const (
	// ModeStruct decodes each packet into a typed record.
	ModeStruct Mode = "struct"
	// ModeParsed parses each packet as generic JSON without a schema.
	ModeParsed Mode = "parsed"
	// ModeRaw prints the packet text as received.
	ModeRaw Mode = "raw"
)

// Config holds the monitor settings.
type Config struct {
	Addr    string // listen address, addr:port
	BufSize int    // receive buffer size; must hold an entire packet
	Count   int    // stop after this many packets, 0 to run forever
	Mode    Mode
}

// Monitor receives hub broadcasts and reports them.
type Monitor struct {
	cfg     Config
	log     *logrus.Logger
	metrics *Metrics
	out     io.Writer
}

// New builds a Monitor writing rendered packets to out.
func New(cfg Config, log *logrus.Logger, metrics *Metrics, out io.Writer) *Monitor {
	return &Monitor{cfg: cfg, log: log, metrics: metrics, out: out}
}

// Run listens on the configured address until the context is cancelled or
// the packet count limit is reached.
func (m *Monitor) Run(ctx context.Context) error {
	var lc net.ListenConfig
	conn, err := lc.ListenPacket(ctx, "udp", m.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", m.cfg.Addr, err)
	}
	defer conn.Close()
	m.log.WithField("addr", conn.LocalAddr().String()).Info("listening for tempest packets")
	return m.serve(ctx, conn)
}

func (m *Monitor) serve(ctx context.Context, conn net.PacketConn) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	buf := make([]byte, m.cfg.BufSize)
	seen := 0
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read packet: %w", err)
		}
		m.handle(buf[:n], src)
		seen++
		if m.cfg.Count > 0 && seen >= m.cfg.Count {
			return nil
		}
	}
}

func (m *Monitor) handle(payload []byte, src net.Addr) {
	m.metrics.PacketsReceived.Inc()
	switch m.cfg.Mode {
	case ModeRaw:
		fmt.Fprintf(m.out, "recv %d bytes from %s: %s\n", len(payload), src, payload)
	case ModeParsed:
		var v any
		if err := json.Unmarshal(payload, &v); err != nil {
			m.metrics.DecodeErrors.WithLabelValues("malformed").Inc()
			m.log.WithError(err).WithField("src", src.String()).Warn("failed to parse packet")
			return
		}
		fmt.Fprintf(m.out, "%v\n", v)
	default:
		rec, err := tempest.Decode(payload)
		if err != nil {
			m.metrics.DecodeErrors.WithLabelValues(errorReason(err)).Inc()
			m.log.WithError(err).WithField("src", src.String()).Warn("failed to decode packet")
			return
		}
		m.metrics.PacketsDecoded.WithLabelValues(rec.Type()).Inc()
		fmt.Fprintln(m.out, render(rec))
	}
}

// render produces a human-readable representation of a decoded record.
func render(rec tempest.Record) string {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s %+v", rec.Type(), rec)
	}
	return fmt.Sprintf("%s %s", rec.Type(), data)
}
