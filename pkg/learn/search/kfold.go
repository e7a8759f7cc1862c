package search

import "fmt"

// StratifiedKFold splits sample indices into k test folds that preserve
// class proportions. Each class contributes contiguous chunks of its samples
// in input order; the first n%k chunks of a class get one extra sample.
func StratifiedKFold(y []string, k int) ([][]int, error) {
	if k < 2 || k > len(y) {
		return nil, fmt.Errorf("%w: %d folds for %d samples", ErrInvalidFolds, k, len(y))
	}
	var order []string
	byClass := make(map[string][]int)
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			order = append(order, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	folds := make([][]int, k)
	for _, label := range order {
		members := byClass[label]
		size, extra := len(members)/k, len(members)%k
		start := 0
		for f := 0; f < k; f++ {
			n := size
			if f < extra {
				n++
			}
			folds[f] = append(folds[f], members[start:start+n]...)
			start += n
		}
	}
	return folds, nil
}

// complement returns the indices in [0,n) not present in fold.
func complement(n int, fold []int) []int {
	in := make([]bool, n)
	for _, i := range fold {
		in[i] = true
	}
	out := make([]int, 0, n-len(fold))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}

func subsetLabels(y []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, k := range idx {
		out[i] = y[k]
	}
	return out
}
