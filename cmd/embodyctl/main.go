// Command embodyctl decodes an EmBody/HyperSension wearable device's
// wire protocol stream, either live over USB HID or from a captured
// byte dump, and prints each decoded frame to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/edgectl/internal/config"
	"github.com/danmuck/edgectl/internal/logging"
	"github.com/danmuck/edgectl/internal/transport"
	"github.com/danmuck/edgectl/internal/transport/filereplay"
	"github.com/danmuck/edgectl/internal/transport/hid"

	logs "github.com/danmuck/smplog"
)

type options struct {
	mode       string
	configPath string
	templateOf string
}

func main() {
	opts := parseFlags()
	logging.ConfigureRuntime()

	switch opts.mode {
	case "decode":
		if err := runDecode(opts); err != nil {
			fatalf("%v", err)
		}
	case "init":
		if err := config.WriteTemplate(opts.configPath, opts.templateOf, false); err != nil {
			fatalf("%v", err)
		}
		logs.Infof("wrote starter config path=%q", opts.configPath)
	default:
		fatalf("unknown mode %q (supported: decode, init)", opts.mode)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.mode, "mode", "decode", "mode: decode | init")
	flag.StringVar(&opts.configPath, "config", "embodyctl.toml", "path to device config file")
	flag.StringVar(&opts.templateOf, "template", "hid", "template kind for init mode: hid | filereplay")
	flag.Parse()
	return opts
}

func openTransport(cfg config.DeviceConfig) (transport.ReadCloser, error) {
	switch cfg.Transport {
	case config.TransportHID:
		return hid.OpenVIDPID(cfg.VendorID, cfg.ProductID)
	case config.TransportFileReplay:
		return filereplay.Open(cfg.Addr)
	default:
		return nil, fmt.Errorf("unsupported transport: %q", cfg.Transport)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "embodyctl: "+format+"\n", args...)
	os.Exit(1)
}
