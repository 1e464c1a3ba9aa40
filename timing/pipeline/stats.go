package pipeline

// Statistics tracks pipeline timing results.
type Statistics struct {
	// Cycles is the total number of clock cycles simulated.
	Cycles uint64

	// Instructions is the number of instructions committed in WB.
	Instructions uint64

	// Stalls is the number of cycles lost to data-hazard stalls.
	Stalls uint64

	// Flushes is the number of speculatively fetched instructions
	// squashed by taken branches (two per misprediction).
	Flushes uint64
}

// CPI returns cycles per committed instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}
