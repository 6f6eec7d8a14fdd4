package settings

// Bounds is the declared range of one editable channel value.
type Bounds struct {
	Min int
	Max int
}

var (
	TrimBounds     = Bounds{Min: -TrimMax, Max: TrimMax}
	SubtrimBounds  = Bounds{Min: -SubtrimMax, Max: SubtrimMax}
	DualRateBounds = Bounds{Min: 0, Max: DualRateMax}
	ExpoBounds     = Bounds{Min: -ExpoMax, Max: ExpoMax}
)

// EndpointBounds depends on the configured end-point maximum.
func EndpointBounds(g *GlobalSettings) Bounds {
	return Bounds{Min: 0, Max: int(g.EndpointMax)}
}

// Clamp saturates value to the range, it never wraps.
func (b Bounds) Clamp(value int) int {
	if value < b.Min {
		return b.Min
	} else if value > b.Max {
		return b.Max
	}
	return value
}

// Step adds delta and saturates.
func (b Bounds) Step(value, delta int) int {
	return b.Clamp(value + delta)
}

// Global setup ranges.
var (
	BacklightBounds   = Bounds{Min: 0, Max: 999}
	AutorepeatBounds  = Bounds{Min: 1, Max: 50}
	EndpointMaxBounds = Bounds{Min: DefaultEndpoint, Max: 200}
)

// ClampEndpoints pulls every end-point of the model below the configured maximum.
func (m *ModelSettings) ClampEndpoints(g *GlobalSettings) bool {
	bounds := EndpointBounds(g)
	changed := false
	for i := range m.Endpoint {
		for dir := range m.Endpoint[i] {
			clamped := uint8(bounds.Clamp(int(m.Endpoint[i][dir])))
			if clamped != m.Endpoint[i][dir] {
				m.Endpoint[i][dir] = clamped
				changed = true
			}
		}
	}
	return changed
}
