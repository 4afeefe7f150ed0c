// Package config loads and validates the TOML configuration for
// embodyctl: which transport to talk to a device over, and the frame
// and logging limits that govern the session, in the same
// load-then-validate style the reference's GhostConfig/SeedConfig
// loaders use.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// TransportKind selects which transport adapter a session runs over.
type TransportKind string

const (
	TransportHID        TransportKind = "hid"
	TransportFileReplay TransportKind = "filereplay"
)

// DeviceConfig configures a device session: which transport to open, how
// to find it (VendorID/ProductID for the hid transport, Addr as the
// captured-dump file path for the filereplay transport; Addr is not used
// by hid), and the frame/log limits layered on top of it.
type DeviceConfig struct {
	Transport   TransportKind `toml:"transport"`
	Addr        string        `toml:"addr"`
	VendorID    uint16        `toml:"vendor_id"`
	ProductID   uint16        `toml:"product_id"`
	MaxFrameLen int           `toml:"max_frame_len"`
	LogLevel    string        `toml:"log_level"`
}

const defaultMaxFrameLen = 4096

// LoadDeviceConfig reads and validates a device config file, filling in
// defaults for any fields the file leaves zero.
func LoadDeviceConfig(path string) (DeviceConfig, error) {
	var cfg DeviceConfig
	if err := loadToml(path, &cfg); err != nil {
		return DeviceConfig{}, err
	}
	if cfg.Transport == "" {
		cfg.Transport = TransportHID
	}
	if cfg.MaxFrameLen == 0 {
		cfg.MaxFrameLen = defaultMaxFrameLen
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := ValidateDeviceConfig(cfg); err != nil {
		return DeviceConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	if _, err := toml.DecodeFile(path, out); err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return nil
}

// ValidateDeviceConfig rejects configs that name a transport with no
// registered adapter, or that are missing the field that transport needs
// to open a connection.
func ValidateDeviceConfig(cfg DeviceConfig) error {
	switch cfg.Transport {
	case TransportHID:
		if cfg.VendorID == 0 || cfg.ProductID == 0 {
			return fmt.Errorf("hid transport requires vendor_id and product_id")
		}
	case TransportFileReplay:
		if strings.TrimSpace(cfg.Addr) == "" {
			return fmt.Errorf("filereplay transport requires addr (path to captured dump)")
		}
	default:
		return fmt.Errorf("unknown transport: %q", cfg.Transport)
	}
	if cfg.MaxFrameLen <= 0 {
		return fmt.Errorf("max_frame_len must be positive")
	}
	return nil
}

// WriteTemplate writes a starter config file for kind ("hid" or
// "filereplay") to path, refusing to overwrite an existing file unless
// overwrite is set.
func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

// Template returns the starter TOML text for kind.
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "hid":
		return hidTemplate, nil
	case "filereplay":
		return fileReplayTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}
