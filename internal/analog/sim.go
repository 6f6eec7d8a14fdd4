package analog

import "sync"

const (
	simMid     = 512
	simBattery = 820
)

// Sim is a stick and battery source driven by the terminal simulator.
type Sim struct {
	lock     sync.Mutex
	channels [ChannelCount]int
	battery  int
}

func NewSim() *Sim {
	return &Sim{
		channels: [ChannelCount]int{simMid, simMid, simMid},
		battery:  simBattery,
	}
}

func (s *Sim) Init() error  { return nil }
func (s *Sim) Close() error { return nil }

func (s *Sim) ReadChannels() ([ChannelCount]uint16, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	var values [ChannelCount]uint16
	for i := range values {
		values[i] = uint16(s.channels[i])
	}
	return values, nil
}

func (s *Sim) ReadBattery() (uint16, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return uint16(s.battery), nil
}

// Move shifts one stick, saturating at the adc range.
func (s *Sim) Move(channel, delta int) {
	if channel < 0 || channel >= ChannelCount {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.channels[channel] = clampRaw(s.channels[channel] + delta)
}

func (s *Sim) Center(channel int) {
	if channel < 0 || channel >= ChannelCount {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.channels[channel] = simMid
}

func (s *Sim) MoveBattery(delta int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.battery += delta
	if s.battery < 0 {
		s.battery = 0
	}
}

func (s *Sim) Snapshot() ([ChannelCount]int, int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.channels, s.battery
}

func clampRaw(v int) int {
	if v < 0 {
		return 0
	} else if v > MaxRaw {
		return MaxRaw
	}
	return v
}
