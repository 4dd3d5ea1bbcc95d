//go:build tinygo && rp2040

package hal

import (
	"machine"
	"machine/usb/hid"
)

// usbHID sends consumer reports on the composite HID interface.
type usbHID struct {
	buf     *hid.RingBuffer
	waitTxc bool
}

func newUSBHID() *usbHID {
	h := &usbHID{buf: hid.NewRingBuffer()}
	hid.SetHandler(h)
	return h
}

// TxHandler is called by the USB interrupt when the endpoint can transmit again.
func (h *usbHID) TxHandler() bool {
	h.waitTxc = false
	if b, ok := h.buf.Get(); ok {
		h.waitTxc = true
		hid.SendUSBPacket(b)
		return true
	}
	return false
}

func (h *usbHID) RxHandler(b []byte) bool {
	return false
}

func (h *usbHID) SendConsumer(usage uint16) error {
	if !machine.USBDev.InitEndpointComplete {
		return ErrNotImplemented
	}
	var report [3]byte
	b := consumerReport(&report, usage)
	if h.waitTxc {
		h.buf.Put(b)
		return nil
	}
	h.waitTxc = true
	hid.SendUSBPacket(b)
	return nil
}
