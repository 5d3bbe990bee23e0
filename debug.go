package sway

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// globalDebug enables development-mode checks and warnings. Set through
// SetDebug or Scene.SetDebugMode; the last call wins.
var globalDebug bool

// logger receives development-mode warnings.
var logger = newLogger(os.Stderr, log.WarnLevel)

// newLogger creates a prefixed logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "sway",
		Level:  level,
	})
}

// SetDebug enables or disables development-mode checks. When enabled, invalid
// property keys, NaN style values and unknown easings are reported as
// warnings, disposed-node tree operations panic, and every animator start
// verifies that each property has a single driver.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// SetLogger replaces the logger used for development-mode warnings. A nil
// logger restores the default stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newLogger(os.Stderr, log.WarnLevel)
	}
	logger = l
}

// debugWarnf logs a development-mode warning. No-op in release mode; never
// changes runtime behavior.
func debugWarnf(format string, args ...any) {
	if !globalDebug {
		return
	}
	logger.Warnf(format, args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sway debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckSingleDriver panics if two active animators on n drive the same
// property. startAnimator stops conflicting tracks first, so a hit here is a
// bug in the engine, not bad input.
func debugCheckSingleDriver(n *Node) {
	seen := make(map[propKey]string)
	for _, a := range n.animators {
		if a.Done {
			continue
		}
		for _, tr := range a.tracks {
			if other, ok := seen[tr.key]; ok {
				panic(fmt.Sprintf("sway debug: %s.%s on node %q driven by scopes %q and %q",
					tr.key.ns, tr.key.key, n.Name, other, a.scope))
			}
			seen[tr.key] = a.scope
		}
	}
}
