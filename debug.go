package trellis

import (
	"fmt"
	"io"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing and layout metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	layoutTime time.Duration
	drawTime   time.Duration
	nodeCount  int
	quadCount  int
	layout     LayoutStats
}

// debugLog prints timing and layout stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	l := stats.layout
	_, _ = fmt.Fprintf(os.Stderr,
		"[trellis] layout: %v | draw: %v | nodes: %d | quads: %d\n",
		stats.layoutTime, stats.drawTime, stats.nodeCount, stats.quadCount)
	_, _ = fmt.Fprintf(os.Stderr,
		"[trellis] invalidations self/parent/child: %d/%d/%d | size: %d | auto-size: %d | matrix: %d | flow: %d\n",
		l.Invalidations[SourceSelf], l.Invalidations[SourceParent], l.Invalidations[SourceChild],
		l.SizeComputations, l.AutoSizeComputations, l.MatrixComputations, l.FlowComputations)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("trellis debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[trellis] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[trellis] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countNodes counts the nodes in a subtree.
func countNodes(n *Node) int {
	count := 1
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}

// DumpTree writes one line per node with its settled geometry, indented by
// depth. Useful when comparing layouts by eye.
func DumpTree(w io.Writer, root *Node) {
	dumpNode(w, root, 0)
}

func dumpNode(w io.Writer, n *Node, depth int) {
	pos := n.DrawPosition()
	size := n.DrawSize()
	bb := n.BoundingBox()
	_, _ = fmt.Fprintf(w, "%*s%s pos=(%.2f, %.2f) size=(%.2f, %.2f) bounds=(%.2f, %.2f, %.2f, %.2f)\n",
		depth*2, "", n.Name, pos.X, pos.Y, size.X, size.Y, bb.X, bb.Y, bb.Width, bb.Height)
	for _, c := range n.children {
		dumpNode(w, c, depth+1)
	}
}
