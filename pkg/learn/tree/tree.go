// Package tree implements a CART decision tree with Gini impurity over
// sparse feature rows.
package tree

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/revsent/pkg/learn"
)

const defaultMinSamplesSplit = 2

// Option configures a DecisionTree.
type Option func(*DecisionTree)

// WithMaxDepth limits the depth of the tree. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(t *DecisionTree) {
		if depth >= 0 {
			t.maxDepth = depth
		}
	}
}

// WithMinSamplesSplit sets the smallest node that may be split.
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTree) {
		if n >= 2 {
			t.minSamplesSplit = n
		}
	}
}

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	class     int
}

func (n *node) leaf() bool { return n.left == nil }

// DecisionTree is a binary classification tree. Samples with a feature value
// at or below the threshold go left.
type DecisionTree struct {
	maxDepth        int
	minSamplesSplit int

	classes []string
	cols    int
	root    *node
	depth   int
	leaves  int
}

// New creates an unfitted tree.
func New(opts ...Option) *DecisionTree {
	t := &DecisionTree{minSamplesSplit: defaultMinSamplesSplit}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Depth returns the depth of the fitted tree.
func (t *DecisionTree) Depth() int { return t.depth }

// Leaves returns the number of leaves of the fitted tree.
func (t *DecisionTree) Leaves() int { return t.leaves }

// Fit grows the tree until leaves are pure or a stopping rule applies.
func (t *DecisionTree) Fit(ctx context.Context, x *learn.Matrix, y []string) error {
	classes, err := learn.CheckTrainingSet(x, y)
	if err != nil {
		return err
	}
	b := &builder{
		ctx:     ctx,
		x:       x,
		y:       learn.Encode(y, classes),
		classes: len(classes),
		tree:    t,
	}
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	t.depth, t.leaves = 0, 0
	root, err := b.grow(idx, 0)
	if err != nil {
		return err
	}
	t.classes = classes
	t.cols = x.Cols
	t.root = root
	return nil
}

// Predict returns one label per row of x.
func (t *DecisionTree) Predict(x *learn.Matrix) ([]string, error) {
	if t.root == nil {
		return nil, fmt.Errorf("tree predict: %w", learn.ErrNotFitted)
	}
	if x.Cols != t.cols {
		return nil, fmt.Errorf("%w: fitted on %d columns, got %d", learn.ErrDimensionMismatch, t.cols, x.Cols)
	}
	out := make([]string, len(x.Rows))
	for i, row := range x.Rows {
		n := t.root
		for !n.leaf() {
			if row.At(n.feature) <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		out[i] = t.classes[n.class]
	}
	return out, nil
}

type builder struct {
	ctx     context.Context
	x       *learn.Matrix
	y       []int
	classes int
	tree    *DecisionTree
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
}

type entry struct {
	value  float64
	class  int
	weight int
}

func (b *builder) grow(idx []int, depth int) (*node, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, fmt.Errorf("tree fit cancelled: %w", err)
	}
	b.tree.depth = max(b.tree.depth, depth)

	counts := make([]int, b.classes)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	n := &node{class: argmax(counts)}

	if counts[n.class] == len(idx) ||
		len(idx) < b.tree.minSamplesSplit ||
		(b.tree.maxDepth > 0 && depth >= b.tree.maxDepth) {
		b.tree.leaves++
		return n, nil
	}

	best, ok := b.bestSplit(idx, counts)
	if !ok {
		b.tree.leaves++
		return n, nil
	}

	var left, right []int
	for _, i := range idx {
		if b.x.Rows[i].At(best.feature) <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	var err error
	n.feature, n.threshold = best.feature, best.threshold
	if n.left, err = b.grow(left, depth+1); err != nil {
		return nil, err
	}
	if n.right, err = b.grow(right, depth+1); err != nil {
		return nil, err
	}
	return n, nil
}

// bestSplit scans every feature that is non-zero in at least one sample of
// the node. Ties keep the lowest feature index and the lowest threshold.
func (b *builder) bestSplit(idx []int, counts []int) (split, bool) {
	columns := make(map[int][]entry)
	for _, i := range idx {
		row := b.x.Rows[i]
		for k, j := range row.Indices {
			if row.Values[k] != 0 {
				columns[j] = append(columns[j], entry{value: row.Values[k], class: b.y[i], weight: 1})
			}
		}
	}
	features := make([]int, 0, len(columns))
	for j := range columns {
		features = append(features, j)
	}
	sort.Ints(features)

	var best split
	found := false
	left := make([]int, b.classes)
	right := make([]int, b.classes)
	for _, j := range features {
		entries := columns[j]
		if zeros := len(idx) - len(entries); zeros > 0 {
			zc := append([]int(nil), counts...)
			for _, e := range entries {
				zc[e.class]--
			}
			// Implicit zeros enter as one weighted entry per class.
			for c, cnt := range zc {
				if cnt > 0 {
					entries = append(entries, entry{value: 0, class: c, weight: cnt})
				}
			}
		}
		sort.SliceStable(entries, func(a, c int) bool { return entries[a].value < entries[c].value })

		for c := range left {
			left[c] = 0
			right[c] = counts[c]
		}
		nl := 0
		for k := 0; k < len(entries)-1; k++ {
			e := entries[k]
			left[e.class] += e.weight
			right[e.class] -= e.weight
			nl += e.weight
			if e.value == entries[k+1].value {
				continue
			}
			imp := weightedGini(left, nl) + weightedGini(right, len(idx)-nl)
			if !found || imp < best.impurity {
				best = split{
					feature:   j,
					threshold: entries[k].value + (entries[k+1].value-entries[k].value)/2,
					impurity:  imp,
				}
				found = true
			}
		}
	}
	return best, found
}

// weightedGini returns n times the Gini impurity of counts.
func weightedGini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	var sq float64
	for _, c := range counts {
		sq += float64(c) * float64(c)
	}
	return float64(n) - sq/float64(n)
}

func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
