// Package graphite contains the writer that ships a pass's metrics to a
// Graphite carbon daemon using its plaintext protocol: one
// "name value timestamp" line per metric over a plain TCP stream, with no
// handshake and nothing read back.
package graphite

import (
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/signalfx/golib/v3/datapoint"
	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-to-graphite/pkg/monitors/types"
)

// DefaultPort is the carbon plaintext listener port
const DefaultPort = 2003

var logger = log.WithFields(log.Fields{"component": "graphite-writer"})

// Writer sends one batch of metrics per call to Send.  There is no retry: if
// the batch can't be delivered it is dropped.
type Writer struct {
	address string
	timeout time.Duration
	// when set, batches are written here instead of to carbon
	dryRun  io.Writer

	now    func() time.Time
	dialer func(ctx context.Context, network, address string) (net.Conn, error)
}

// New makes a writer for the carbon daemon at host:port.  timeout bounds
// both connecting and writing the batch.
func New(host string, port int, timeout time.Duration) *Writer {
	d := &net.Dialer{Timeout: timeout}
	return &Writer{
		address: net.JoinHostPort(host, strconv.Itoa(port)),
		timeout: timeout,
		now:     time.Now,
		dialer:  d.DialContext,
	}
}

// NewDryRun makes a writer that prints batches to out instead of sending
// them
func NewDryRun(out io.Writer) *Writer {
	return &Writer{
		dryRun: out,
		now:    time.Now,
	}
}

// Address is the host:port batches are sent to
func (w *Writer) Address() string {
	return w.address
}

// Send serializes the set with a single timestamp shared by every line and
// writes it over one new TCP connection, which is closed afterwards.  It
// returns false, after logging why, if the batch could not be delivered.
func (w *Writer) Send(ctx context.Context, ms *types.MetricSet) bool {
	dps := ms.Datapoints()
	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		for i := range dps {
			logger.WithFields(log.Fields{
				"dp": spew.Sdump(dps[i]),
			}).Debug("Sending datapoint")
		}
	}

	payload := Serialize(dps, w.now().Unix())

	var err error
	if w.dryRun != nil {
		_, err = w.dryRun.Write(payload)
	} else {
		err = w.send(ctx, payload)
	}
	if err != nil {
		logger.WithError(err).WithField("address", w.address).Warn("Unable to send metrics to graphite")
		return false
	}

	logger.WithFields(log.Fields{
		"address": w.address,
		"metrics": len(dps),
	}).Info("Sent metrics to graphite")
	return true
}

func (w *Writer) send(ctx context.Context, payload []byte) error {
	conn, err := w.dialer(ctx, "tcp", w.address)
	if err != nil {
		return errors.Wrapf(err, "could not connect to %s", w.address)
	}

	if len(payload) > 0 {
		if w.timeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(w.timeout))
		}
		if _, err := conn.Write(payload); err != nil {
			conn.Close()
			return errors.Wrapf(err, "could not write %d bytes to %s", len(payload), w.address)
		}
	}

	if err := conn.Close(); err != nil {
		return errors.Wrapf(err, "could not close connection to %s", w.address)
	}
	return nil
}

// Serialize renders datapoints in the carbon plaintext format, every line
// carrying the same timestamp
func Serialize(dps []*datapoint.Datapoint, timestamp int64) []byte {
	ts := strconv.FormatInt(timestamp, 10)

	var buf bytes.Buffer
	for _, dp := range dps {
		buf.WriteString(dp.Metric)
		buf.WriteByte(' ')
		buf.WriteString(dp.Value.String())
		buf.WriteByte(' ')
		buf.WriteString(ts)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
