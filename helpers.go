package goaverage

// Small-K sorts used by the median and trimmed-mean kernels. K is the
// number of input clips, typically a handful, so an insertion sort beats
// anything with setup cost. The kernels only depend on the correct rank
// values being produced, so this is a swappable internal strategy; a
// partial selection pass would pay off if K ever grew large.

func insertionSortUint64(a []uint64) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}

func insertionSortFloat64(a []float64) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
