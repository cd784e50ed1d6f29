package output

import (
	"fmt"
	"io"
	"sync"

	"ambilight-agent/internal/model"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZ drives a WS281x-style strip through an SPI port. Wire color order and
// bit timing are handled by nrzled.
type NRZ struct {
	mu     sync.Mutex
	dev    *nrzled.Dev
	closer io.Closer
	count  int
	buf    []byte
}

// OpenNRZ initializes the host drivers and opens the named SPI port
// ("" picks the first one available).
func OpenNRZ(portName string, count int, freq physic.Frequency) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}
	n, err := NewNRZ(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	n.closer = p
	return n, nil
}

func NewNRZ(p spi.Port, count int, freq physic.Frequency) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid led count: %d", count)
	}
	if freq <= 0 {
		freq = 2500 * physic.KiloHertz
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d, count: count, buf: make([]byte, count*3)}, nil
}

func (n *NRZ) Write(pixels []model.RGB) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(pixels) != n.count {
		return fmt.Errorf("frame has %d pixels, strip has %d", len(pixels), n.count)
	}
	for i, p := range pixels {
		n.buf[i*3+0] = p.R
		n.buf[i*3+1] = p.G
		n.buf[i*3+2] = p.B
	}
	if _, err := n.dev.Write(n.buf); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) String() string {
	return n.dev.String()
}

// Close turns the strip off and releases the port.
func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	err := n.dev.Halt()
	if n.closer != nil {
		if cerr := n.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
