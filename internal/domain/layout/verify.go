package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/okian/medals/internal/domain/types"
)

// ErrInconsistentLayout marks a layout that breaks its placement rules.
var ErrInconsistentLayout = errors.New("inconsistent layout")

const epsilon = 1e-9

// spot is a position within one lane. Deep buckets may spill into the next
// lane, so only same-lane positions must be distinct.
type spot struct {
	category string
	pos      types.Position
}

// Verify checks a computed layout against the rules AssignLanes follows:
// lanes sorted by type, x proportional to earliest finish, no two nodes of a
// lane on the same spot, and every connection joining placed nodes whose finishes
// respect the wait. All violations are returned joined.
func Verify(res types.Result) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInconsistentLayout}, args...)...))
	}

	laneY := make(map[string]float64, len(res.Meta.Lanes))
	for i, lane := range res.Meta.Lanes {
		laneY[lane.Category] = lane.Y
		if i > 0 && res.Meta.Lanes[i-1].Category >= lane.Category {
			fail("lane %q is out of order", lane.Category)
		}
		if want := float64(i) * res.Meta.LaneHeight; math.Abs(lane.Y-want) > epsilon {
			fail("lane %q at y=%v, want %v", lane.Category, lane.Y, want)
		}
	}

	nodes := make(map[string]types.Node, len(res.Nodes))
	spots := make(map[spot]string, len(res.Nodes))
	for _, n := range res.Nodes {
		if _, dup := nodes[n.MedalID]; dup {
			fail("medal %q placed twice", n.MedalID)
		}
		nodes[n.MedalID] = n

		if want := n.EarliestFinish * res.Meta.YearWidth; math.Abs(n.Position.X-want) > epsilon {
			fail("medal %q at x=%v, want %v", n.MedalID, n.Position.X, want)
		}
		origin, ok := laneY[n.Category]
		if !ok {
			fail("medal %q has no lane for type %q", n.MedalID, n.Category)
		} else if n.Position.Y < origin-epsilon {
			fail("medal %q above its lane", n.MedalID)
		}
		k := spot{category: n.Category, pos: n.Position}
		if other, taken := spots[k]; taken {
			fail("medals %q and %q overlap", other, n.MedalID)
		}
		spots[k] = n.MedalID
	}

	for _, c := range res.Connections {
		from, okFrom := nodes[c.From]
		to, okTo := nodes[c.To]
		if !okFrom || !okTo {
			fail("connection %s->%s joins an unplaced medal", c.From, c.To)
			continue
		}
		if to.EarliestFinish+epsilon < from.EarliestFinish+c.WaitYears {
			fail("medal %q finishes at %v before %q plus wait %v", c.To, to.EarliestFinish, c.From, c.WaitYears)
		}
		if c.WaitYears > to.MaxIncomingWait+epsilon {
			fail("medal %q max incoming wait %v below %v", c.To, to.MaxIncomingWait, c.WaitYears)
		}
	}

	if !sort.StringsAreSorted(res.Meta.Unscheduled) {
		fail("unscheduled medals are not sorted")
	}
	for _, id := range res.Meta.Unscheduled {
		if _, placed := nodes[id]; placed {
			fail("medal %q is both placed and unscheduled", id)
		}
	}
	return errors.Join(errs...)
}
