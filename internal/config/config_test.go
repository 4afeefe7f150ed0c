package config

import "testing"

func TestValidateDeviceConfigHID(t *testing.T) {
	cfg := DeviceConfig{Transport: TransportHID, VendorID: 0x2544, ProductID: 0x0007, MaxFrameLen: 4096}
	if err := ValidateDeviceConfig(cfg); err != nil {
		t.Fatalf("valid hid config rejected: %v", err)
	}
}

func TestValidateDeviceConfigHIDMissingIDs(t *testing.T) {
	cfg := DeviceConfig{Transport: TransportHID, MaxFrameLen: 4096}
	if err := ValidateDeviceConfig(cfg); err == nil {
		t.Fatal("expected error for missing vendor/product id")
	}
}

func TestValidateDeviceConfigFileReplay(t *testing.T) {
	cfg := DeviceConfig{Transport: TransportFileReplay, Addr: "capture.bin", MaxFrameLen: 4096}
	if err := ValidateDeviceConfig(cfg); err != nil {
		t.Fatalf("valid filereplay config rejected: %v", err)
	}
}

func TestValidateDeviceConfigFileReplayMissingAddr(t *testing.T) {
	cfg := DeviceConfig{Transport: TransportFileReplay, MaxFrameLen: 4096}
	if err := ValidateDeviceConfig(cfg); err == nil {
		t.Fatal("expected error for missing addr")
	}
}

func TestValidateDeviceConfigUnknownTransport(t *testing.T) {
	cfg := DeviceConfig{Transport: "carrier-pigeon", MaxFrameLen: 4096}
	if err := ValidateDeviceConfig(cfg); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestValidateDeviceConfigBadFrameLen(t *testing.T) {
	cfg := DeviceConfig{Transport: TransportHID, VendorID: 1, ProductID: 1, MaxFrameLen: 0}
	if err := ValidateDeviceConfig(cfg); err == nil {
		t.Fatal("expected error for non-positive max_frame_len")
	}
}

func TestTemplateKinds(t *testing.T) {
	for _, kind := range []string{"hid", "filereplay"} {
		if _, err := Template(kind); err != nil {
			t.Fatalf("template(%q): %v", kind, err)
		}
	}
	if _, err := Template("bogus"); err == nil {
		t.Fatal("expected error for unknown template kind")
	}
}
