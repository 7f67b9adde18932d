package strategy

// PipSize returns the pip size for an instrument quoted with the given
// number of decimal digits. Instruments quoted to 1-3 decimals (JPY
// pairs, indices) use 0.01; everything else uses the standard 0.0001.
func PipSize(digits int) float64 {
	switch digits {
	case 1, 2, 3:
		return 0.01
	default:
		return 0.0001
	}
}

// PipsToPrice converts a pip count to price units.
func PipsToPrice(pips float64, pipSize float64) float64 {
	return pips * pipSize
}
