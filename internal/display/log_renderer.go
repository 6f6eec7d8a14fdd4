package display

import "log"

// LogRenderer writes every changed frame to the log, used on headless setups.
type LogRenderer struct {
	last  Frame
	first bool
}

func NewLogRenderer() *LogRenderer {
	return &LogRenderer{first: true}
}

func (r *LogRenderer) Render(frame Frame) {
	if !r.first && frame == r.last {
		return
	}
	r.first = false
	r.last = frame
	log.Printf("lcd: %s\n", frame)
}
