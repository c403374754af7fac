package sim

// DetectTransients scans cur at the given stride and returns the bar indices
// whose sample jumped by more than delta since prev, or exceeds ceiling. For
// every fired bar, prev is updated to the current value; other entries keep
// their older value. Only whole strides that fit in both buffers are read.
func DetectTransients(prev, cur []byte, stride, delta, ceiling int) []int {
	if stride < 1 {
		stride = 1
	}
	n := min(len(prev), len(cur)) / stride

	var fired []int
	for i := 0; i < n; i++ {
		idx := i * stride
		c, p := int(cur[idx]), int(prev[idx])
		d := c - p
		if d < 0 {
			d = -d
		}
		if d > delta || c > ceiling {
			fired = append(fired, i)
			prev[idx] = cur[idx]
		}
	}
	return fired
}
