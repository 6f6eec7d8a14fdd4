package calc

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Speshl/gorrc_tx/internal/analog"
	"github.com/Speshl/gorrc_tx/internal/settings"
)

func ovs(steering, throttle, ch3 int) [analog.ChannelCount]uint16 {
	return [analog.ChannelCount]uint16{
		uint16(analog.Oversampled(steering)),
		uint16(analog.Oversampled(throttle)),
		uint16(analog.Oversampled(ch3)),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestComputeCalibration(t *testing.T) {
	global := settings.DefaultGlobal()
	model := settings.DefaultModel()

	tests := []struct {
		name     string
		raw      [analog.ChannelCount]uint16
		steering float64
		throttle float64
	}{
		{"center", ovs(512, 512, 512), 0, 0},
		{"full left forward", ovs(100, 100, 512), -1, -1},
		{"full right back", ovs(923, 923, 512), 1, 1},
		{"past calibration clamps", ovs(10, 1000, 512), -1, 1},
		{"half right", ovs(512+(923-512)/2, 512, 512), 205.0 / 411.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Compute(&global, &model, tt.raw)
			if len(values) != settings.MaxChannels {
				t.Fatalf("expected %d values, got %d", settings.MaxChannels, len(values))
			}
			if !near(values[0], tt.steering) || !near(values[1], tt.throttle) {
				t.Errorf("expected %.3f/%.3f, got %.3f/%.3f", tt.steering, tt.throttle, values[0], values[1])
			}
		})
	}
}

func TestComputeModelSettings(t *testing.T) {
	global := settings.DefaultGlobal()
	model := settings.DefaultModel()
	model.DualRate[0] = 50
	model.Endpoint[0][settings.DirLeft] = 120
	model.Endpoint[1][settings.DirRight] = 80
	model.Reverse = settings.ReverseBit(2)
	model.Subtrim[3] = 40

	values := Compute(&global, &model, ovs(100, 923, 512))
	if !near(values[0], -0.6) {
		t.Errorf("expected dual rate and left end-point, got %.3f", values[0])
	}
	if !near(values[1], -0.8) {
		t.Errorf("expected reversed back end-point, got %.3f", values[1])
	}
	if !near(values[3], 0.1) {
		t.Errorf("expected sub-trim offset on channel 4, got %.3f", values[3])
	}
}

func TestComputeTrimOffsets(t *testing.T) {
	global := settings.DefaultGlobal()
	model := settings.DefaultModel()
	model.Trim[0] = 20
	model.Subtrim[0] = 20

	values := Compute(&global, &model, ovs(512, 512, 512))
	if !near(values[0], 0.1) {
		t.Errorf("expected trim and sub-trim offset, got %.3f", values[0])
	}
}

func TestComputeBadCalibration(t *testing.T) {
	global := settings.DefaultGlobal()
	global.CalibSteeringLeft = 600
	model := settings.DefaultModel()

	values := Compute(&global, &model, ovs(300, 512, 512))
	if values[0] != 0 {
		t.Errorf("expected 0 for an empty calibration span, got %.3f", values[0])
	}
}

type fixedReader struct {
	raw [analog.ChannelCount]uint16
}

func (f fixedReader) Channels() [analog.ChannelCount]uint16 { return f.raw }

type recordingOutput struct {
	lock   sync.Mutex
	inits  int
	frames [][]float64
	stops  int
}

func (r *recordingOutput) Init() error {
	r.inits++
	return nil
}

func (r *recordingOutput) SetMany(values []float64) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.frames = append(r.frames, values)
	return nil
}

func (r *recordingOutput) Stop() error {
	r.stops++
	return nil
}

func (r *recordingOutput) count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.frames)
}

func TestCalcWake(t *testing.T) {
	out := &recordingOutput{}
	c := NewCalc(time.Hour, fixedReader{raw: ovs(923, 512, 512)}, out)
	if err := c.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	c.Wake()
	deadline := time.Now().Add(2 * time.Second)
	for out.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if out.count() == 0 {
		t.Fatalf("expected a frame after wake")
	}
	cancel()
	<-done

	if !near(c.Values()[0], 1) {
		t.Errorf("expected full right steering, got %.3f", c.Values()[0])
	}
	if out.inits != 1 || out.stops != 1 {
		t.Errorf("expected output initialized and stopped once, got %d/%d", out.inits, out.stops)
	}
}
