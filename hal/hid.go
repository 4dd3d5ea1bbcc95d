package hal

import (
	"io"
	"sync"
)

// ConsumerReportID is the report id of the consumer-control collection.
const ConsumerReportID = 3

// consumerReport encodes a consumer-control input report: id, usage (LE).
func consumerReport(dst *[3]byte, usage uint16) []byte {
	dst[0] = ConsumerReportID
	dst[1] = byte(usage)
	dst[2] = byte(usage >> 8)
	return dst[:]
}

// writerHID writes consumer reports to a raw HID endpoint such as a Linux
// USB gadget /dev/hidgN.
type writerHID struct {
	mu  sync.Mutex
	w   io.Writer
	buf [3]byte
}

// NewWriterHID returns an HID that writes reports to w.
func NewWriterHID(w io.Writer) HID {
	return &writerHID{w: w}
}

func (h *writerHID) SendConsumer(usage uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.w == nil {
		return ErrNotImplemented
	}
	_, err := h.w.Write(consumerReport(&h.buf, usage))
	return err
}

// logHID reports consumer usages as log lines.
type logHID struct {
	mu     sync.Mutex
	logger Logger
}

func (h *logHID) SendConsumer(usage uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if usage == 0 {
		Logf(h.logger, "hid: consumer release")
		return nil
	}
	Logf(h.logger, "hid: consumer 0x%04X", usage)
	return nil
}
