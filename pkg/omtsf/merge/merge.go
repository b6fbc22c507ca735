package merge

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BayFX/omtsf/pkg/omtsf/canonicalize"
	"github.com/BayFX/omtsf/pkg/omtsf/identity"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
	"github.com/BayFX/omtsf/pkg/omtsf/validation"
)

// flatNode is one node as seen during flattening, tagged with which input
// file it came from.
type flatNode struct {
	node   model.Node
	origin int
}

// flatEdge is the edge equivalent of flatNode.
type flatEdge struct {
	edge   model.Edge
	origin int
}

// Run merges inputs into a single reconciled File under cfg, deduping
// nodes and edges that denote the same real-world entity across files.
func Run(inputs []Input, cfg Config) (*Output, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("merge: at least one input file is required")
	}

	var warnings []string

	nodes, edges := flatten(inputs)

	nodeUF := newUnionFind(len(nodes))
	unionMatchingIdentifiers(nodes, nodeUF)

	localIndex := buildLocalIndex(nodes)
	unionSameAsEndpoints(inputs, edges, localIndex, nodeUF, cfg.SameAsThreshold)

	nodeGroups := groupIndices(nodeUF, len(nodes))
	cfg.logger().Debug("merge: union-find collapsed node groups",
		"input_nodes", len(nodes), "groups", len(nodeGroups))
	warnings = append(warnings, groupSizeWarnings("node", nodeGroups, cfg.groupSizeLimit())...)

	orderedNodeRoots := orderGroups(nodeGroups, func(idx []int) string {
		return groupSortKey(idx, func(i int) string { return minCanonicalID(nodes[i].node) })
	})

	oldToNew := make(map[int]map[string]string, len(inputs))
	for i := range inputs {
		oldToNew[i] = make(map[string]string)
	}

	mergedNodes := make([]model.Node, 0, len(orderedNodeRoots))
	conflictCount := 0
	for i, root := range orderedNodeRoots {
		members := nodeGroups[root]
		newID := fmt.Sprintf("n-%d", i)
		mn, nc := mergeNodeGroup(newID, members, nodes)
		conflictCount += nc
		mergedNodes = append(mergedNodes, mn)
		for _, m := range members {
			oldToNew[nodes[m].origin][nodes[m].node.Id.String()] = newID
		}
	}

	edgeUF := newUnionFind(len(edges))
	unionMatchingEdges(edges, oldToNew, edgeUF)
	edgeGroups := groupIndices(edgeUF, len(edges))
	cfg.logger().Debug("merge: union-find collapsed edge groups",
		"input_edges", len(edges), "groups", len(edgeGroups))
	orderedEdgeRoots := orderGroups(edgeGroups, func(idx []int) string {
		return groupSortKey(idx, func(i int) string { return edges[i].edge.Id.String() })
	})

	mergedEdges := make([]model.Edge, 0, len(edges))
	nextEdgeIdx := 0
	for _, root := range orderedEdgeRoots {
		members := edgeGroups[root]
		newID := fmt.Sprintf("e-%d", nextEdgeIdx)
		nextEdgeIdx++
		mergedEdges = append(mergedEdges, mergeEdgeGroup(newID, members, edges, oldToNew))
	}

	for _, fe := range sameAsEdges(edges) {
		newID := fmt.Sprintf("e-%d", nextEdgeIdx)
		nextEdgeIdx++
		e := fe.edge
		e.Id = mustEdgeID(newID)
		e.Source = mustNodeID(remapEndpoint(oldToNew, fe.origin, fe.edge.Source.String()))
		e.Target = mustNodeID(remapEndpoint(oldToNew, fe.origin, fe.edge.Target.String()))
		mergedEdges = append(mergedEdges, e)
	}

	out := &model.File{
		OmtsfVersion: inputs[0].File.OmtsfVersion,
		SnapshotDate: maxSnapshotDate(inputs),
		Nodes:        mergedNodes,
		Edges:        mergedEdges,
	}

	salt, err := primitives.GenerateFileSalt()
	if err != nil {
		return nil, fmt.Errorf("merge: generating file salt: %w", err)
	}
	out.FileSalt = salt

	if re, ok := agreedReportingEntity(inputs, oldToNew); ok {
		id, err := primitives.NewNodeId(re)
		if err == nil {
			out.ReportingEntity = &id
		}
	}

	meta := Metadata{
		RunID:           uuid.New().String(),
		Timestamp:       cfg.clock()().UTC().Format(time.RFC3339),
		MergedNodeCount: len(mergedNodes),
		MergedEdgeCount: len(mergedEdges),
		ConflictCount:   conflictCount,
	}
	for _, in := range inputs {
		meta.SourceFiles = append(meta.SourceFiles, in.Label)
		if in.File.ReportingEntity != nil {
			meta.ReportingEntities = append(meta.ReportingEntities, in.File.ReportingEntity.String())
		} else {
			meta.ReportingEntities = append(meta.ReportingEntities, "")
		}
	}
	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("merge: encoding merge metadata: %w", err)
	}
	out.Extra = rawvalue.Map{model.ReservedMergeMetadataKey: metaRaw}

	engine := cfg.engine()
	result := engine.Validate(out, validation.Config{RunL1: true}, nil)
	if !result.IsConformant() {
		return nil, &PostMergeValidationError{Result: result}
	}

	return &Output{File: out, Metadata: meta, Warnings: warnings}, nil
}

func flatten(inputs []Input) ([]flatNode, []flatEdge) {
	var nodes []flatNode
	var edges []flatEdge
	for i, in := range inputs {
		for _, n := range in.File.Nodes {
			nodes = append(nodes, flatNode{node: n, origin: i})
		}
		for _, e := range in.File.Edges {
			edges = append(edges, flatEdge{edge: e, origin: i})
		}
	}
	return nodes, edges
}

// unionMatchingIdentifiers buckets nodes by every canonical external
// identifier they carry, then re-verifies identity.NodesMatch on every pair
// sharing a bucket before unioning — bucket membership alone only proves
// the two nodes share a canonical id string, not that they're a genuine
// cross-file match (node_type must also agree).
func unionMatchingIdentifiers(nodes []flatNode, uf *unionFind) {
	buckets := make(map[string][]int)
	for i, fn := range nodes {
		for _, id := range fn.node.Identifiers {
			if !canonicalize.IsExternal(id) {
				continue
			}
			key := canonicalize.ID(id)
			buckets[key] = append(buckets[key], i)
		}
	}
	for _, idxs := range buckets {
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				i, j := idxs[a], idxs[b]
				if ok, _ := identity.NodesMatch(nodes[i].node, nodes[j].node); ok {
					uf.union(i, j)
				}
			}
		}
	}
}

func buildLocalIndex(nodes []flatNode) map[int]map[string]int {
	idx := make(map[int]map[string]int)
	for i, fn := range nodes {
		if idx[fn.origin] == nil {
			idx[fn.origin] = make(map[string]int)
		}
		idx[fn.origin][fn.node.Id.String()] = i
	}
	return idx
}

// unionSameAsEndpoints additionally unions a same_as edge's endpoints when
// its confidence honours threshold, on top of whatever identifier-based
// unioning already happened. Confidence is read from the edge's typed
// data_quality block when present, falling back to a raw "confidence"
// extension value for edges that carry it as an untyped property.
func unionSameAsEndpoints(inputs []Input, edges []flatEdge, localIndex map[int]map[string]int, uf *unionFind, threshold SameAsThreshold) {
	for _, fe := range edges {
		t, known := fe.edge.EdgeType.Known()
		if !known || t != model.EdgeSameAs {
			continue
		}
		conf, ok := edgeConfidence(fe.edge)
		if !ok || !threshold.Honours(conf) {
			continue
		}
		srcIdx, srcOK := localIndex[fe.origin][fe.edge.Source.String()]
		tgtIdx, tgtOK := localIndex[fe.origin][fe.edge.Target.String()]
		if srcOK && tgtOK {
			uf.union(srcIdx, tgtIdx)
		}
	}
}

func edgeConfidence(e model.Edge) (model.Confidence, bool) {
	if e.Properties.DataQuality != nil && e.Properties.DataQuality.Confidence != nil {
		return *e.Properties.DataQuality.Confidence, true
	}
	if raw, ok := e.Properties.Extra["confidence"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return model.Confidence(s), true
		}
	}
	return "", false
}

func groupIndices(uf *unionFind, n int) map[int][]int {
	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}
	return groups
}

func groupSizeWarnings(kind string, groups map[int][]int, limit int) []string {
	var out []string
	roots := make([]int, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Ints(roots)
	for _, r := range roots {
		if len(groups[r]) > limit {
			out = append(out, fmt.Sprintf("oversized %s match group: %d members exceeds limit %d", kind, len(groups[r]), limit))
		}
	}
	return out
}

// orderGroups returns group roots sorted by keyFn's output, breaking ties
// by the smallest member index, so output node/edge ids are assigned
// deterministically regardless of map iteration order.
func orderGroups(groups map[int][]int, keyFn func([]int) string) []int {
	roots := make([]int, 0, len(groups))
	for r := range groups {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool {
		ki, kj := keyFn(groups[roots[i]]), keyFn(groups[roots[j]])
		if ki != kj {
			return ki < kj
		}
		return minInt(groups[roots[i]]) < minInt(groups[roots[j]])
	})
	return roots
}

func groupSortKey(idx []int, labelFn func(int) string) string {
	best := ""
	for i, v := range idx {
		l := labelFn(v)
		if i == 0 || l < best {
			best = l
		}
	}
	return best
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// minCanonicalID returns the lexicographically smallest canonical external
// identifier carried by n, or "" if it has none. "" sorts first in Go string
// ordering, so identifier-less groups are assigned ids first; this mirrors
// no particular Rust behaviour (that ordering detail lives in the missing
// union_find.rs) and is a from-scratch, merely-deterministic choice.
func minCanonicalID(n model.Node) string {
	best := ""
	for _, id := range n.Identifiers {
		if !canonicalize.IsExternal(id) {
			continue
		}
		c := canonicalize.ID(id)
		if best == "" || c < best {
			best = c
		}
	}
	return best
}

func mergeNodeGroup(newID string, members []int, nodes []flatNode) (model.Node, int) {
	first := nodes[members[0]].node

	var nameSrc, jurisdictionSrc, statusSrc []scalarSource[string]
	var identifierGroups [][]model.Identifier
	var labelGroups [][]model.Label
	var conflicts []model.FieldConflict

	for _, m := range members {
		fn := nodes[m]
		label := fmt.Sprintf("file-%d", fn.origin)
		nameSrc = append(nameSrc, scalarSource[string]{value: fn.node.Name, label: label})
		jurisdictionSrc = append(jurisdictionSrc, scalarSource[string]{value: countryCodeStr(fn.node.Jurisdiction), label: label})
		var statusVal *string
		if fn.node.Status != nil {
			s := string(*fn.node.Status)
			statusVal = &s
		}
		statusSrc = append(statusSrc, scalarSource[string]{value: statusVal, label: label})
		identifierGroups = append(identifierGroups, fn.node.Identifiers)
		labelGroups = append(labelGroups, fn.node.Labels)
	}

	name, c := mergeScalar("name", nameSrc)
	appendConflict(&conflicts, c)
	jurisdictionStr, c := mergeScalar("jurisdiction", jurisdictionSrc)
	appendConflict(&conflicts, c)
	statusStr, c := mergeScalar("status", statusSrc)
	appendConflict(&conflicts, c)

	merged := first
	merged.Id = mustNodeID(newID)
	merged.Name = name
	merged.Jurisdiction = countryCodePtr(jurisdictionStr)
	if statusStr != nil {
		s := model.OrganizationStatus(*statusStr)
		merged.Status = &s
	} else {
		merged.Status = nil
	}
	merged.Identifiers = mergeIdentifiers(identifierGroups)
	merged.Labels = mergeLabels(labelGroups)
	merged.DataQuality = nil

	extra := rawvalue.Map{}
	for _, m := range members {
		extra = rawvalue.Merge(extra, nodes[m].node.Extra)
	}
	if cv := buildConflictsValue(conflicts); cv != nil {
		extra = extra.Clone()
		if extra == nil {
			extra = rawvalue.Map{}
		}
		extra[model.ReservedConflictsKey] = cv
	}
	merged.Extra = extra

	return merged, len(conflicts)
}

func appendConflict(dst *[]model.FieldConflict, c *model.FieldConflict) {
	if c != nil {
		*dst = append(*dst, *c)
	}
}

func countryCodeStr(c *primitives.CountryCode) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func countryCodePtr(s *string) *primitives.CountryCode {
	if s == nil {
		return nil
	}
	c, err := primitives.NewCountryCode(*s)
	if err != nil {
		return nil
	}
	return &c
}

// unionMatchingEdges buckets non-same_as edges by their endpoints' resolved
// (new) node ids plus edge type, then re-verifies identity.EdgesMatch on
// every pair within a bucket before unioning. same_as edges are excluded
// entirely: they are never deduplicated, always re-emitted one-for-one.
func unionMatchingEdges(edges []flatEdge, oldToNew map[int]map[string]string, uf *unionFind) {
	buckets := make(map[string][]int)
	for i, fe := range edges {
		t, known := fe.edge.EdgeType.Known()
		if known && t == model.EdgeSameAs {
			continue
		}
		key := edgeCompositeKey(fe, oldToNew)
		buckets[key] = append(buckets[key], i)
	}
	for _, idxs := range buckets {
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				i, j := idxs[a], idxs[b]
				if identity.EdgesMatch(edges[i].edge, edges[j].edge) {
					uf.union(i, j)
				}
			}
		}
	}
}

func edgeCompositeKey(fe flatEdge, oldToNew map[int]map[string]string) string {
	src := remapEndpoint(oldToNew, fe.origin, fe.edge.Source.String())
	tgt := remapEndpoint(oldToNew, fe.origin, fe.edge.Target.String())
	return src + "|" + tgt + "|" + fe.edge.EdgeType.String()
}

func remapEndpoint(oldToNew map[int]map[string]string, origin int, localID string) string {
	if newID, ok := oldToNew[origin][localID]; ok {
		return newID
	}
	return fmt.Sprintf("unresolved:%d:%s", origin, localID)
}

// sameAsEdges returns every same_as edge in flatten order, excluded from
// unionMatchingEdges's bucketing.
func sameAsEdges(edges []flatEdge) []flatEdge {
	var out []flatEdge
	for _, fe := range edges {
		t, known := fe.edge.EdgeType.Known()
		if known && t == model.EdgeSameAs {
			out = append(out, fe)
		}
	}
	return out
}

// mergeEdgeGroup merges one match group of non-same_as edges. Unlike node
// merge, edge property merge performs no conflict detection at all: the
// first group member's properties are copied unconditionally, and only
// identifiers are unioned across the group.
func mergeEdgeGroup(newID string, members []int, edges []flatEdge, oldToNew map[int]map[string]string) model.Edge {
	first := edges[members[0]].edge
	merged := first
	merged.Id = mustEdgeID(newID)
	merged.Source = mustNodeID(remapEndpoint(oldToNew, edges[members[0]].origin, first.Source.String()))
	merged.Target = mustNodeID(remapEndpoint(oldToNew, edges[members[0]].origin, first.Target.String()))

	var identifierGroups [][]model.Identifier
	for _, m := range members {
		identifierGroups = append(identifierGroups, edges[m].edge.Identifiers)
	}
	merged.Identifiers = mergeIdentifiers(identifierGroups)
	return merged
}

func maxSnapshotDate(inputs []Input) primitives.CalendarDate {
	best := inputs[0].File.SnapshotDate
	for _, in := range inputs[1:] {
		if in.File.SnapshotDate.String() > best.String() {
			best = in.File.SnapshotDate
		}
	}
	return best
}

// agreedReportingEntity reports the merged reporting-entity node id when
// every input names one and, once remapped through oldToNew, they all
// agree; otherwise the output carries no reporting_entity.
func agreedReportingEntity(inputs []Input, oldToNew map[int]map[string]string) (string, bool) {
	var agreed string
	for i, in := range inputs {
		if in.File.ReportingEntity == nil {
			return "", false
		}
		mapped, ok := oldToNew[i][in.File.ReportingEntity.String()]
		if !ok {
			return "", false
		}
		if agreed == "" {
			agreed = mapped
		} else if agreed != mapped {
			return "", false
		}
	}
	return agreed, agreed != ""
}

func mustNodeID(s string) primitives.NodeId {
	id, err := primitives.NewNodeId(s)
	if err != nil {
		panic(fmt.Sprintf("merge: generated node id %q failed validation: %v", s, err))
	}
	return id
}

func mustEdgeID(s string) primitives.EdgeId {
	id, err := primitives.NewEdgeId(s)
	if err != nil {
		panic(fmt.Sprintf("merge: generated edge id %q failed validation: %v", s, err))
	}
	return id
}
