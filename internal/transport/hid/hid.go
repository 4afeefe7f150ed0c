// Package hid adapts a USB HID device to transport.Reader, grounded on
// the reference's internal/hid/hid_usbhid.go: enumerate by vendor/product
// id, open a device, and read whole HID input reports as they arrive.
package hid

import (
	usbhid "rafaelmartins.com/p/usbhid"
)

// Device wraps an open HID device as a transport.Reader/Closer. Reads
// return one full input report per call; embodyctl feeds each into the
// frame decoder's buffer rather than treating the HID link as a plain
// byte stream.
type Device struct {
	d *usbhid.Device
}

// OpenVIDPID opens the first HID device matching vendorID/productID.
func OpenVIDPID(vendorID, productID uint16) (*Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.VendorId() == vendorID && dev.ProductId() == productID
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &Device{d: d}, nil
}

// Read copies one HID input report into p.
func (d *Device) Read(p []byte) (int, error) {
	_, buf, err := d.d.GetInputReport()
	if err != nil {
		return 0, err
	}
	n := copy(p, buf)
	return n, nil
}

// Write sends p as an output report; p[0] is the report ID, per the
// device's HID report descriptor.
func (d *Device) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := d.d.SetOutputReport(p[0], p[1:]); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close releases the underlying device handle.
func (d *Device) Close() error { return d.d.Close() }
