package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// DepGraph represents a directed graph of file dependencies.
// Forward and reverse adjacency are kept in sync: b is in
// Dependencies(a) exactly when a is in Dependents(b).
type DepGraph struct {
	// nodes tracks all known node ids
	nodes map[string]struct{}
	// adjacency: from -> set(to)
	adjacency map[string]map[string]struct{}
	// reverse: to -> set(from)
	reverse map[string]map[string]struct{}
}

// NewDepGraph creates an empty dependency graph
func NewDepGraph() *DepGraph {
	return &DepGraph{
		nodes:     make(map[string]struct{}),
		adjacency: make(map[string]map[string]struct{}),
		reverse:   make(map[string]map[string]struct{}),
	}
}

// GraphFromEdges rebuilds a graph from a node list and edge pairs
func GraphFromEdges(nodes []string, edges [][2]string) *DepGraph {
	g := NewDepGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// AddNode adds a node; adding an existing node is a no-op
func (g *DepGraph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = struct{}{}
	g.adjacency[id] = make(map[string]struct{})
	g.reverse[id] = make(map[string]struct{})
}

// AddEdge adds a directed edge from -> to.
// It is a no-op unless both endpoints were added with AddNode.
func (g *DepGraph) AddEdge(from, to string) {
	if !g.HasNode(from) || !g.HasNode(to) {
		return
	}
	g.adjacency[from][to] = struct{}{}
	g.reverse[to][from] = struct{}{}
}

// HasNode reports whether id is a node of the graph
func (g *DepGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Dependencies returns the nodes id points to (sorted); empty for unknown ids
func (g *DepGraph) Dependencies(id string) []string {
	return sortedKeys(g.adjacency[id])
}

// Dependents returns the nodes pointing at id (sorted); empty for unknown ids
func (g *DepGraph) Dependents(id string) []string {
	return sortedKeys(g.reverse[id])
}

// Nodes returns all node ids (sorted)
func (g *DepGraph) Nodes() []string {
	return sortedKeys(g.nodes)
}

// NodeCount returns the number of nodes
func (g *DepGraph) NodeCount() int { return len(g.nodes) }

// Edges returns all edges as pairs (sorted by from,to)
func (g *DepGraph) Edges() [][2]string {
	var edges [][2]string
	for from, tos := range g.adjacency {
		for to := range tos {
			edges = append(edges, [2]string{from, to})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] == edges[j][0] {
			return edges[i][1] < edges[j][1]
		}
		return edges[i][0] < edges[j][0]
	})
	return edges
}

// FindCycles runs a DFS from every node not yet visited, keeping the current
// recursion stack. Reaching a node that is on the stack records the stack
// slice from that node to the top as one cycle.
//
// The visited set is never cleared, so each node roots at most one search and
// the whole pass is O(V+E). This finds at least one representative of each
// cycle reachable from some root; it does not enumerate every simple cycle
// when cycles share nodes.
func (g *DepGraph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool, len(g.nodes))
	var stack []string
	onStack := make(map[string]int)

	var visit func(n string)
	visit = func(n string) {
		if pos, ok := onStack[n]; ok {
			cycle := append([]string(nil), stack[pos:]...)
			if !containsCycle(cycles, cycle) {
				cycles = append(cycles, cycle)
			}
			return
		}
		if visited[n] {
			return
		}
		visited[n] = true
		onStack[n] = len(stack)
		stack = append(stack, n)

		for _, next := range g.Dependencies(n) {
			visit(next)
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n)
	}

	for _, n := range g.Nodes() {
		if !visited[n] {
			visit(n)
		}
	}
	return cycles
}

func containsCycle(cycles [][]string, c []string) bool {
	for _, existing := range cycles {
		if len(existing) != len(c) {
			continue
		}
		same := true
		for i := range c {
			if existing[i] != c[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// StronglyConnectedComponents finds SCCs using Tarjan's algorithm
func (g *DepGraph) StronglyConnectedComponents() [][]string {
	index := 0
	stack := []string{}
	onStack := make(map[string]bool)
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Dependencies(v) {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sort.Strings(comp)
			sccs = append(sccs, comp)
		}
	}

	for _, n := range g.Nodes() {
		if _, seen := indices[n]; !seen {
			strongconnect(n)
		}
	}
	return sccs
}

// SanitizeID turns a node id into an identifier usable by DOT, PlantUML and Mermaid
func SanitizeID(id string) string {
	return idReplacer.Replace(id)
}

var idReplacer = strings.NewReplacer(".", "_", "/", "_", `\`, "_", " ", "_", "-", "_")

// shortLabel returns the last path segment of a node id
func shortLabel(id string) string {
	if i := strings.LastIndexAny(id, `/\`); i >= 0 {
		return id[i+1:]
	}
	return id
}

// ToDOT returns a Graphviz representation of the graph with one node
// statement and one edge statement per line
func (g *DepGraph) ToDOT() string {
	var b strings.Builder
	b.WriteString("digraph DependencyGraph {\n")
	b.WriteString("  node [shape=box, style=filled, fillcolor=lightcyan];\n")
	b.WriteString("  edge [color=darkslategray];\n")
	b.WriteString("  graph [bgcolor=white];\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(&b, "  %s [label=\"%s\"];\n", SanitizeID(n), shortLabel(n))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s;\n", SanitizeID(e[0]), SanitizeID(e[1]))
	}
	b.WriteString("}\n")
	return b.String()
}

// ToPlantUML returns a PlantUML component diagram.
// A non-empty focus keeps only nodes whose id contains it.
func (g *DepGraph) ToPlantUML(focus string) string {
	var b strings.Builder
	b.WriteString("@startuml Architecture\n")
	b.WriteString("!theme sketchy-outline\n")
	b.WriteString("skinparam linetype ortho\n\n")
	for _, n := range g.Nodes() {
		if !inFocus(n, focus) {
			continue
		}
		fmt.Fprintf(&b, "component \"%s\" as %s\n", shortLabel(n), SanitizeID(n))
	}
	b.WriteString("\n")
	for _, e := range g.Edges() {
		if !inFocus(e[0], focus) || !inFocus(e[1], focus) {
			continue
		}
		fmt.Fprintf(&b, "%s --> %s\n", SanitizeID(e[0]), SanitizeID(e[1]))
	}
	b.WriteString("@enduml\n")
	return b.String()
}

// ToMermaid returns a Mermaid flowchart.
// A non-empty focus keeps only nodes whose id contains it.
func (g *DepGraph) ToMermaid(focus string) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, n := range g.Nodes() {
		if !inFocus(n, focus) {
			continue
		}
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", SanitizeID(n), shortLabel(n))
	}
	for _, e := range g.Edges() {
		if !inFocus(e[0], focus) || !inFocus(e[1], focus) {
			continue
		}
		fmt.Fprintf(&b, "  %s --> %s\n", SanitizeID(e[0]), SanitizeID(e[1]))
	}
	return b.String()
}

func inFocus(id, focus string) bool {
	return focus == "" || strings.Contains(id, focus)
}
