package ml

import "sort"

// treeNode is one node of a regression tree. Leaves carry a prediction;
// internal nodes split on Feature <= Threshold.
type treeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Value     float64   `json:"value"`
	Gain      float64   `json:"gain,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

func (n *treeNode) isLeaf() bool { return n.Left == nil && n.Right == nil }

func (n *treeNode) predict(row []float64) float64 {
	if n.isLeaf() {
		return n.Value
	}
	if row[n.Feature] <= n.Threshold {
		return n.Left.predict(row)
	}
	return n.Right.predict(row)
}

// fitTree grows a least-squares regression tree on (rows, targets) up to
// maxDepth. minLeaf guards against splits that isolate single outliers.
func fitTree(rows [][]float64, targets []float64, maxDepth, minLeaf int) *treeNode {
	node := &treeNode{Value: mean(targets)}
	if maxDepth <= 0 || len(rows) < 2*minLeaf {
		return node
	}

	feature, threshold, gain, ok := bestSplit(rows, targets, minLeaf)
	if !ok {
		return node
	}

	var (
		leftRows, rightRows [][]float64
		leftY, rightY       []float64
	)
	for i, row := range rows {
		if row[feature] <= threshold {
			leftRows = append(leftRows, row)
			leftY = append(leftY, targets[i])
		} else {
			rightRows = append(rightRows, row)
			rightY = append(rightY, targets[i])
		}
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Gain = gain
	node.Left = fitTree(leftRows, leftY, maxDepth-1, minLeaf)
	node.Right = fitTree(rightRows, rightY, maxDepth-1, minLeaf)
	return node
}

// bestSplit scans every feature and every midpoint between consecutive
// distinct values for the split with the largest squared-error reduction.
func bestSplit(rows [][]float64, targets []float64, minLeaf int) (feature int, threshold, gain float64, ok bool) {
	total := sse(targets)
	if total == 0 {
		return 0, 0, 0, false
	}

	dims := len(rows[0])
	best := 0.0

	for f := 0; f < dims; f++ {
		order := make([]int, len(rows))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return rows[order[a]][f] < rows[order[b]][f]
		})

		// Prefix sums over the sorted targets let each candidate split be
		// evaluated in constant time.
		n := len(order)
		sum := make([]float64, n+1)
		sumSq := make([]float64, n+1)
		for i, idx := range order {
			y := targets[idx]
			sum[i+1] = sum[i] + y
			sumSq[i+1] = sumSq[i] + y*y
		}

		for i := minLeaf; i <= n-minLeaf; i++ {
			left, right := rows[order[i-1]][f], rows[order[i]][f]
			if left == right {
				continue
			}

			nl, nr := float64(i), float64(n-i)
			leftSSE := sumSq[i] - sum[i]*sum[i]/nl
			rightSSE := (sumSq[n] - sumSq[i]) - (sum[n]-sum[i])*(sum[n]-sum[i])/nr

			if g := total - leftSSE - rightSSE; g > best {
				best = g
				feature = f
				threshold = (left + right) / 2
				ok = true
			}
		}
	}
	return feature, threshold, best, ok
}

// collectGains accumulates per-feature split gains for importance reporting.
func (n *treeNode) collectGains(gains []float64) {
	if n == nil || n.isLeaf() {
		return
	}
	gains[n.Feature] += n.Gain
	n.Left.collectGains(gains)
	n.Right.collectGains(gains)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func sse(values []float64) float64 {
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return total
}
