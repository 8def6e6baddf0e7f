package analysis

import (
	"sort"

	"github.com/albertocavalcante/go-modgraph/graph"
)

// depthWeight scales how much dependency depth amplifies the impact
// score. Deep, widely-depended-on nodes invalidate more build stages per
// change, so each level of depth adds 20% weight.
const depthWeight = 0.2

// RiskTier buckets a pinch point by how many nodes transitively depend
// on it.
type RiskTier string

const (
	RiskCritical RiskTier = "critical"
	RiskHigh     RiskTier = "high"
	RiskMedium   RiskTier = "medium"
	RiskLow      RiskTier = "low"
)

// Thresholds holds the minimum transitive-dependent counts per risk
// tier. The defaults are policy constants chosen as reasonable cutoffs,
// not derived from anything; override them if your graph's scale makes
// different cutoffs meaningful.
type Thresholds struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// DefaultThresholds returns the standard tier cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 20, High: 10, Medium: 5}
}

// Tier classifies a transitive-dependent count.
func (t Thresholds) Tier(transitiveDependents int) RiskTier {
	switch {
	case transitiveDependents >= t.Critical:
		return RiskCritical
	case transitiveDependents >= t.High:
		return RiskHigh
	case transitiveDependents >= t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// PinchPointInfo is the per-node analysis result. It is computed in one
// pass per Analyze call and never mutated afterward.
type PinchPointInfo struct {
	// ID is the analyzed node's id.
	ID string `json:"id"`

	// Name is the node's display name.
	Name string `json:"name"`

	// Kind is the node's classification.
	Kind graph.NodeKind `json:"kind"`

	// DirectDependents counts nodes with an edge into this node,
	// members of this node's own cycle excluded.
	DirectDependents int `json:"direct_dependents"`

	// TransitiveDependents counts every node that can reach this one,
	// shared paths counted once, own-cycle members excluded.
	TransitiveDependents int `json:"transitive_dependents"`

	// DirectDependencies counts nodes this node has an edge to, own-cycle
	// members excluded.
	DirectDependencies int `json:"direct_dependencies"`

	// TransitiveDependencies counts every node reachable from this one,
	// shared paths counted once, own-cycle members excluded.
	TransitiveDependencies int `json:"transitive_dependencies"`

	// DependencyDepth is the longest chain of components below this
	// node's component: 0 for leaves.
	DependencyDepth int `json:"dependency_depth"`

	// CycleSize is the size of this node's strongly-connected component;
	// 1 means the node is in no cycle.
	CycleSize int `json:"cycle_size"`

	// ImpactScore ranks how much a change here invalidates:
	// transitive dependents weighted up by depth.
	ImpactScore float64 `json:"impact_score"`

	// VulnerabilityScore counts the things whose change could force this
	// node to rebuild.
	VulnerabilityScore int `json:"vulnerability_score"`

	// Risk is the tier derived from TransitiveDependents.
	Risk RiskTier `json:"risk"`
}

// Result is a complete analysis output.
type Result struct {
	// Points holds one entry per candidate node, ordered by impact score
	// descending with name as the tie-break, so output is reproducible.
	Points []PinchPointInfo `json:"points"`

	// MaxDepth is the largest dependency depth over components that
	// contain at least one candidate node.
	MaxDepth int `json:"max_depth"`
}

// Options configures an analysis pass.
type Options struct {
	// InternalOnly excludes external modules from the candidate set.
	// Transient nodes are always excluded.
	InternalOnly bool

	// Thresholds are the risk tier cutoffs; the zero value means
	// DefaultThresholds.
	Thresholds Thresholds
}

// Analyze computes pinch-point information for every candidate node in
// the graph.
//
// The computation runs on the SCC condensation rather than the raw
// graph: cycles collapse into single components, so reachability walks
// terminate and cycle members never count each other as extra
// dependents. It is a pure function of the graph; malformed input
// (dangling edges, unknown ids) contributes nothing rather than failing.
func Analyze(g *graph.Graph, opts Options) *Result {
	thresholds := opts.Thresholds
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds()
	}

	components := StronglyConnectedComponents(g)
	c := condense(g, components)
	depths := c.depths()

	type compStats struct {
		computed               bool
		directDependents       int
		transitiveDependents   int
		directDependencies     int
		transitiveDependencies int
	}
	stats := make([]compStats, len(components))

	statsFor := func(i int) compStats {
		if !stats[i].computed {
			stats[i] = compStats{
				computed:               true,
				directDependents:       c.neighborSize(c.pred[i]),
				transitiveDependents:   c.reachableSize(i, func(j int) []int { return c.pred[j] }),
				directDependencies:     c.neighborSize(c.succ[i]),
				transitiveDependencies: c.reachableSize(i, func(j int) []int { return c.succ[j] }),
			}
		}
		return stats[i]
	}

	result := &Result{}
	for _, node := range g.SortedNodes() {
		if node.Transient {
			continue
		}
		if opts.InternalOnly && node.Kind == graph.KindExternalModule {
			continue
		}

		i := c.comp[node.ID]
		s := statsFor(i)
		depth := depths[i]
		if depth > result.MaxDepth {
			result.MaxDepth = depth
		}

		result.Points = append(result.Points, PinchPointInfo{
			ID:                     node.ID,
			Name:                   node.Name,
			Kind:                   node.Kind,
			DirectDependents:       s.directDependents,
			TransitiveDependents:   s.transitiveDependents,
			DirectDependencies:     s.directDependencies,
			TransitiveDependencies: s.transitiveDependencies,
			DependencyDepth:        depth,
			CycleSize:              c.size(i),
			ImpactScore:            float64(s.transitiveDependents) * (1 + float64(depth)*depthWeight),
			VulnerabilityScore:     s.transitiveDependencies,
			Risk:                   thresholds.Tier(s.transitiveDependents),
		})
	}

	sortPoints(result.Points)
	return result
}

// TopN returns the n highest-impact points. The input slice is already
// ranked; n past the end returns everything.
func TopN(points []PinchPointInfo, n int) []PinchPointInfo {
	if n < 0 || n > len(points) {
		n = len(points)
	}
	return points[:n]
}

// sortPoints orders by impact score descending, then name ascending,
// then id ascending so equal names across kinds stay deterministic.
func sortPoints(points []PinchPointInfo) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].ImpactScore != points[j].ImpactScore {
			return points[i].ImpactScore > points[j].ImpactScore
		}
		if points[i].Name != points[j].Name {
			return points[i].Name < points[j].Name
		}
		return points[i].ID < points[j].ID
	})
}
