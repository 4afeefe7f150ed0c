package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/edgectl/internal/config"
	"github.com/danmuck/edgectl/internal/embodycodec/frame"

	logs "github.com/danmuck/smplog"
)

// readChunk is how much is read from the transport per Read call before
// being folded into the decode buffer. HID input reports and file reads
// both return arbitrarily-sized chunks smaller than this; the buffer
// below accumulates across calls until a full frame is available.
const readChunk = 512

func runDecode(opts options) error {
	cfg, err := config.LoadDeviceConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	t, err := openTransport(cfg)
	if err != nil {
		return fmt.Errorf("open transport: %w", err)
	}
	defer t.Close()

	return decodeStream(t, cfg.MaxFrameLen)
}

// decodeStream reads from r in chunks and feeds an accumulating buffer to
// frame.Decode, printing each frame and dropping bytes past errors to
// resynchronize, until r reaches EOF.
func decodeStream(r io.Reader, maxFrameLen int) error {
	buf := make([]byte, 0, maxFrameLen)
	chunk := make([]byte, readChunk)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = drainFrames(buf)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read transport: %w", err)
		}
	}
}

// drainFrames decodes as many complete frames as buf currently holds and
// returns the unconsumed remainder.
func drainFrames(buf []byte) []byte {
	for {
		res := frame.Decode(buf)
		switch res.Kind {
		case frame.KindNeed:
			return buf
		case frame.KindFrame:
			logs.Infof("frame type=%T msg=%+v", res.Message, res.Message)
			buf = buf[res.Consumed:]
		case frame.KindErr:
			logs.Warnf("frame error kind=%s err=%v", res.Error.Kind, res.Error.Err)
			buf = buf[res.Consumed:]
		}
	}
}
