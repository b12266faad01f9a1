package tree

// Node is one node of a fitted tree. A leaf carries a non-nil Value and no
// children; an internal node carries Feature, Threshold and both children.
//
// Left receives the rows with x[Feature] >= Threshold (or x[Feature] == Threshold
// when Categorical is set). Right receives the rest.
type Node struct {
	ID       int     // preorder index, root is 0
	Depth    int     // edges from the root
	Samples  int     // training rows that reached this node
	Impurity float64 // impurity of the node's own training labels

	Feature     int
	Threshold   float64
	Categorical bool
	Left        *Node
	Right       *Node

	Value        []float64 // leaf output, nil on internal nodes
	Distribution []float64 // class fractions in Classes() order, classification leaves only
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Value != nil
}

// goesLeft is the single partition rule shared by induction and prediction.
func goesLeft(v, threshold float64, categorical bool) bool {
	if categorical {
		return v == threshold
	}
	return v >= threshold
}

// leafFor walks from n to the leaf that x falls into.
func (n *Node) leafFor(x []float64) *Node {
	node := n
	for !node.IsLeaf() {
		if goesLeft(x[node.Feature], node.Threshold, node.Categorical) {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// Predict returns the leaf value for a single sample.
func (n *Node) Predict(x []float64) []float64 {
	return n.leafFor(x).Value
}

// Walk visits n and its descendants in preorder.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	if !n.IsLeaf() {
		n.Left.Walk(fn)
		n.Right.Walk(fn)
	}
}

// depth returns the number of edges on the longest root-to-leaf path.
func (n *Node) depth() int {
	if n.IsLeaf() {
		return 0
	}
	l, r := n.Left.depth(), n.Right.depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

func (n *Node) leaves() int {
	count := 0
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			count++
		}
	})
	return count
}
