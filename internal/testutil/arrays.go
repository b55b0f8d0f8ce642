package testutil

// LinSpace returns n evenly spaced values from start to stop inclusive.
func LinSpace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Channels returns sequential channel ids first..first+n-1.
func Channels(first, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}

// IntConstant returns an int slice of length n filled with value. Quality
// and grouping columns default this way (all-good, all-new-group).
func IntConstant(value, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = value
	}
	return out
}
