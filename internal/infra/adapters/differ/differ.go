// differ produces unified diffs between two versions of a feed, used
// to show what a publish would change.
package differ

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff turning from into to. fromName and
// toName label the two sides. Identical input gives an empty string.
func Unified(fromName, toName, from, to string) string {
	if from == to {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}
