package location

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// ErrNoFix is returned when the receiver output contains no valid GGA fix.
var ErrNoFix = errors.New("no valid GPS data found")

// DeviceSensorProvider reads the station position from a GPS receiver on a serial port.
type DeviceSensorProvider struct {
	port        string
	baudRate    int
	readTimeout time.Duration
}

// NewDeviceSensorProvider creates a new instance of DeviceSensorProvider with the specified port and baud rate.
func NewDeviceSensorProvider(port string, baudRate int, readTimeout time.Duration) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:        port,
		baudRate:    baudRate,
		readTimeout: readTimeout,
	}
}

// GetLocation opens the serial port and returns the first valid fix.
func (d *DeviceSensorProvider) GetLocation(ctx context.Context) (Location, error) {
	s, err := serial.OpenPort(&serial.Config{Name: d.port, Baud: d.baudRate, ReadTimeout: d.readTimeout})
	if err != nil {
		return Location{}, fmt.Errorf("failed to open GPS port %s: %w", d.port, err)
	}
	defer s.Close()

	return ReadFix(ctx, s)
}

// ReadFix scans NMEA sentences from r until it finds a GGA sentence with a valid fix.
func ReadFix(ctx context.Context, r io.Reader) (Location, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Location{}, err
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") || !strings.Contains(line, "GGA,") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// Serial lines are often truncated when the port is opened mid-sentence.
			continue
		}

		gga, ok := sentence.(nmea.GGA)
		if !ok || gga.FixQuality == nmea.Invalid {
			continue
		}

		return Location{
			Latitude:  gga.Latitude,
			Longitude: gga.Longitude,
			Accuracy:  gga.HDOP,
		}, nil
	}

	if err := scanner.Err(); err != nil {
		return Location{}, err
	}

	return Location{}, ErrNoFix
}
