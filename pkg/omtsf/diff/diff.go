package diff

import (
	"fmt"
	"sort"

	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/identity"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// Run computes the structural diff between files a and b under the
// cross-file identity model, with no filter applied.
func Run(a, b *model.File) Outcome {
	return RunFiltered(a, b, nil)
}

// RunFiltered computes the structural diff between a and b, restricting
// participation to node/edge types named in filter.NodeTypes/EdgeTypes (all
// types participate when a set is nil or empty) and excluding
// filter.IgnoreFields from reported property changes.
func RunFiltered(a, b *model.File, filter *Filter) Outcome {
	r := &Result{}

	if a.OmtsfVersion.String() != b.OmtsfVersion.String() {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"Version mismatch: file A is omtsf_version %q, file B is %q", a.OmtsfVersion.String(), b.OmtsfVersion.String()))
	}

	nodeRep, nodeWarnings := diffNodes(a, b, filter, r)
	r.Warnings = append(r.Warnings, nodeWarnings...)
	diffEdges(a, b, filter, nodeRep, r)

	sortResult(r)
	return outcomeFromResult(r)
}

// representative identifies which side (and which match group, once
// resolved) a node belongs to, so edges can be keyed by their endpoints'
// cross-file identity rather than by raw local id.
type representative struct {
	groupID int // index into the union-find structure
	matched bool
}

func diffNodes(a, b *model.File, filter *Filter, r *Result) (map[string]representative, []string) {
	var as, bs []model.Node
	for _, n := range a.Nodes {
		if filter.includesNode(n) {
			as = append(as, n)
		}
	}
	for _, n := range b.Nodes {
		if filter.includesNode(n) {
			bs = append(bs, n)
		}
	}

	total := len(as) + len(bs)
	uf := newUnionFind(total)
	bOffset := len(as)

	for i, an := range as {
		for j, bn := range bs {
			if ok, _ := identity.NodesMatch(an, bn); ok {
				uf.union(i, bOffset+j)
			}
		}
	}

	groups := make(map[int][]int) // root -> indices (A indices as-is, B indices offset)
	for i := 0; i < total; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	nodeRep := make(map[string]representative, total)
	var warnings []string

	rootKeys := sortedKeys(groups)
	for _, root := range rootKeys {
		members := groups[root]
		var aIdx, bIdx []int
		for _, m := range members {
			if m < bOffset {
				aIdx = append(aIdx, m)
			} else {
				bIdx = append(bIdx, m-bOffset)
			}
		}

		switch {
		case len(bIdx) == 0:
			for _, ai := range aIdx {
				r.Nodes.Removed = append(r.Nodes.Removed, as[ai])
				nodeRep[nodeSideKey("A", as[ai].Id.String())] = representative{groupID: root, matched: false}
			}
		case len(aIdx) == 0:
			for _, bi := range bIdx {
				r.Nodes.Added = append(r.Nodes.Added, bs[bi])
				nodeRep[nodeSideKey("B", bs[bi].Id.String())] = representative{groupID: root, matched: false}
			}
		default:
			if len(aIdx) > 1 || len(bIdx) > 1 {
				warnings = append(warnings, fmt.Sprintf(
					"ambiguous match group: %d node(s) in A matched %d node(s) in B (group root %d)", len(aIdx), len(bIdx), root))
			}
			for _, ai := range aIdx {
				nodeRep[nodeSideKey("A", as[ai].Id.String())] = representative{groupID: root, matched: true}
			}
			for _, bi := range bIdx {
				nodeRep[nodeSideKey("B", bs[bi].Id.String())] = representative{groupID: root, matched: true}
			}
			for _, ai := range aIdx {
				for _, bi := range bIdx {
					ok, pairs := identity.NodesMatch(as[ai], bs[bi])
					if !ok {
						continue
					}
					nd := buildNodeDiff(as[ai], bs[bi], pairs, filter)
					if nd.isUnchanged() {
						r.Nodes.Unchanged = append(r.Nodes.Unchanged, nd)
					} else {
						r.Nodes.Modified = append(r.Nodes.Modified, nd)
					}
				}
			}
		}
	}

	return nodeRep, warnings
}

func buildNodeDiff(a, b model.Node, pairs []identity.MatchingPair, filter *Filter) NodeDiff {
	matchedBy := matchedByCanonicalIDs(pairs)
	changes := applyIgnore(filter, compareNodeProperties(a, b))
	return NodeDiff{
		IdA:               a.Id.String(),
		IdB:               b.Id.String(),
		MatchedBy:         matchedBy,
		PropertyChanges:   changes,
		IdentifierChanges: compareIdentifiers(a.Identifiers, b.Identifiers),
		LabelChanges:      compareLabels(a.Labels, b.Labels),
	}
}

func matchedByCanonicalIDs(pairs []identity.MatchingPair) []string {
	seen := make(map[string]bool, len(pairs))
	var out []string
	for _, p := range pairs {
		id := canonicalize.ID(p.A)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func nodeSideKey(side, localID string) string { return side + ":" + localID }

func diffEdges(a, b *model.File, filter *Filter, nodeRep map[string]representative, r *Result) {
	var as, bs []model.Edge
	for _, e := range a.Edges {
		if filter.includesEdge(e) {
			as = append(as, e)
		}
	}
	for _, e := range b.Edges {
		if filter.includesEdge(e) {
			bs = append(bs, e)
		}
	}

	bucketA := make(map[string][]model.Edge)
	bucketB := make(map[string][]model.Edge)
	for _, e := range as {
		key := edgeBucketKey("A", e, nodeRep)
		bucketA[key] = append(bucketA[key], e)
	}
	for _, e := range bs {
		key := edgeBucketKey("B", e, nodeRep)
		bucketB[key] = append(bucketB[key], e)
	}

	keys := make(map[string]bool, len(bucketA)+len(bucketB))
	for k := range bucketA {
		keys[k] = true
	}
	for k := range bucketB {
		keys[k] = true
	}

	for _, key := range sortedStringKeys(keys) {
		av := bucketA[key]
		bv := bucketB[key]

		if len(bv) == 0 {
			r.Edges.Removed = append(r.Edges.Removed, av...)
			continue
		}
		if len(av) == 0 {
			r.Edges.Added = append(r.Edges.Added, bv...)
			continue
		}

		matchedA := make([]bool, len(av))
		matchedB := make([]bool, len(bv))
		ambiguous := false
		for i, ae := range av {
			for j, be := range bv {
				if !identity.EdgesMatch(ae, be) {
					continue
				}
				matchedA[i] = true
				matchedB[j] = true
				ed := buildEdgeDiff(ae, be, filter)
				if ed.isUnchanged() {
					r.Edges.Unchanged = append(r.Edges.Unchanged, ed)
				} else {
					r.Edges.Modified = append(r.Edges.Modified, ed)
				}
			}
		}
		for i, ae := range av {
			if !matchedA[i] {
				r.Edges.Removed = append(r.Edges.Removed, ae)
			} else if countTrue(matchedA) > 1 || countTrue(matchedB) > 1 {
				ambiguous = true
			}
		}
		for j, be := range bv {
			if !matchedB[j] {
				r.Edges.Added = append(r.Edges.Added, be)
			}
		}
		if ambiguous {
			r.Warnings = append(r.Warnings, fmt.Sprintf("ambiguous edge match group: key %q", key))
		}
	}
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func buildEdgeDiff(a, b model.Edge, filter *Filter) EdgeDiff {
	changes := applyIgnore(filter, compareEdgeProperties(a.Properties, b.Properties))
	return EdgeDiff{
		IdA:               a.Id.String(),
		IdB:               b.Id.String(),
		PropertyChanges:   changes,
		IdentifierChanges: compareIdentifiers(a.Identifiers, b.Identifiers),
		LabelChanges:      compareLabels(a.Properties.Labels, b.Properties.Labels),
	}
}

// edgeBucketKey groups edges by their endpoints' resolved match-group
// identity rather than by raw local node id, so an edge in A between
// org-a1/org-a2 and its counterpart in B between org-b1/org-b2 land in the
// same bucket when those node pairs were matched.
func edgeBucketKey(side string, e model.Edge, nodeRep map[string]representative) string {
	return fmt.Sprintf("%s|%s", endpointKey(side, e.Source.String(), nodeRep), endpointKey(side, e.Target.String(), nodeRep)) +
		"|" + e.EdgeType.String()
}

func endpointKey(side, localID string, nodeRep map[string]representative) string {
	rep, ok := nodeRep[nodeSideKey(side, localID)]
	if !ok || !rep.matched {
		// Unmatched endpoint: key by side + local id so it can never
		// collide with anything from the other file.
		return side + "!" + localID
	}
	return fmt.Sprintf("g%d", rep.groupID)
}

func sortedKeys(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedStringKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortResult(r *Result) {
	sort.Slice(r.Nodes.Added, func(i, j int) bool { return r.Nodes.Added[i].Id.String() < r.Nodes.Added[j].Id.String() })
	sort.Slice(r.Nodes.Removed, func(i, j int) bool { return r.Nodes.Removed[i].Id.String() < r.Nodes.Removed[j].Id.String() })
	sort.Slice(r.Nodes.Modified, func(i, j int) bool { return r.Nodes.Modified[i].IdA < r.Nodes.Modified[j].IdA })
	sort.Slice(r.Nodes.Unchanged, func(i, j int) bool { return r.Nodes.Unchanged[i].IdA < r.Nodes.Unchanged[j].IdA })
	sort.Slice(r.Edges.Added, func(i, j int) bool { return r.Edges.Added[i].Id.String() < r.Edges.Added[j].Id.String() })
	sort.Slice(r.Edges.Removed, func(i, j int) bool { return r.Edges.Removed[i].Id.String() < r.Edges.Removed[j].Id.String() })
	sort.Slice(r.Edges.Modified, func(i, j int) bool { return r.Edges.Modified[i].IdA < r.Edges.Modified[j].IdA })
	sort.Slice(r.Edges.Unchanged, func(i, j int) bool { return r.Edges.Unchanged[i].IdA < r.Edges.Unchanged[j].IdA })
}
