package birch

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-draw metrics. Only logged when the stage is in debug mode.
type debugStats struct {
	nodeCount int
	maskCount int
}

// logDraw prints draw timing and counts to stderr.
func (s *Stage) logDraw(start time.Time, skipped bool) {
	if !s.debug {
		return
	}
	if skipped {
		_, _ = fmt.Fprintf(os.Stderr, "[birch] frame %d: skipped (unchanged) in %v\n",
			s.frames.id, time.Since(start))
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[birch] frame %d: drew %d nodes, %d masks in %v\n",
		s.frames.id, s.stats.nodeCount, s.stats.maskCount, time.Since(start))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("birch debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	d := depth(n) + 1
	if d > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[birch] warning: tree depth %d exceeds %d (node %q)\n",
			d, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[birch] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
