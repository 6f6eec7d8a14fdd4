package command

// CommandIFace is one sink of the calibrated channel values, each value in [-1, 1].
type CommandIFace interface {
	Init() error
	SetMany(values []float64) error
	Stop() error
}

func MapToRange(value, min, max, minReturn, maxReturn float64) float64 {
	mappedValue := (maxReturn-minReturn)*(value-min)/(max-min) + minReturn

	if mappedValue > maxReturn {
		return maxReturn
	} else if mappedValue < minReturn {
		return minReturn
	} else {
		return mappedValue
	}
}

func GetValueWithMidDeadZone(value, midValue, deadZone float64) float64 {
	if value > midValue && midValue+deadZone > value {
		return midValue
	} else if value < midValue && midValue-deadZone < value {
		return midValue
	}
	return value
}

// Value returns the channel value for a 1-based channel, 0 when it is not
// part of the frame.
func Value(values []float64, channel int) float64 {
	if channel < 1 || channel > len(values) {
		return 0
	}
	return values[channel-1]
}
