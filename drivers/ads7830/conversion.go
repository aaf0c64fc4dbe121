package ads7830

// FullScale is the largest raw conversion value.
const FullScale = 255

// Conversion is the result of one Read. Value is meaningful only when Ready.
type Conversion struct {
	Value uint8
	Ready bool
}

// Volts returns Value as a fraction of vref.
func (c Conversion) Volts(vref float64) float64 {
	return float64(c.Value) / FullScale * vref
}

// MilliVolts returns Value scaled to vref_mV, rounded to nearest.
func (c Conversion) MilliVolts(vref_mV uint32) uint32 {
	return (uint32(c.Value)*vref_mV + FullScale/2) / FullScale
}

// Fraction returns Value/255 in [0, 1].
func (c Conversion) Fraction() float64 {
	return float64(c.Value) / FullScale
}
