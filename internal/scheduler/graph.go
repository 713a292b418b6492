package scheduler

import (
	"slices"

	"github.com/airyra/tasksched/internal/domain"
)

// Graph maps each task to the set of tasks it depends on. The relation is kept
// acyclic: an edge that would close a cycle is rolled back at insertion time.
type Graph struct {
	deps map[int]map[int]struct{}
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{deps: make(map[int]map[int]struct{})}
}

// Add records that taskID depends on depID. It returns the cycle path when the
// edge would make depID (transitively) depend on taskID; the graph is left
// unchanged in that case. Adding an existing edge is a no-op.
func (g *Graph) Add(taskID, depID int) []int {
	if taskID == depID {
		return []int{taskID, taskID}
	}
	if g.Has(taskID, depID) {
		return nil
	}

	g.link(taskID, depID)
	if path := g.pathBetween(depID, taskID); path != nil {
		g.unlink(taskID, depID)
		return append([]int{taskID}, path...)
	}
	return nil
}

// Has reports whether the edge taskID -> depID exists.
func (g *Graph) Has(taskID, depID int) bool {
	_, ok := g.deps[taskID][depID]
	return ok
}

// DependenciesOf returns the tasks taskID depends on in ascending order.
// Unknown ids yield an empty slice.
func (g *Graph) DependenciesOf(taskID int) []int {
	set := g.deps[taskID]
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// DependentsOf returns the tasks that depend directly on depID, ascending.
func (g *Graph) DependentsOf(depID int) []int {
	var out []int
	for taskID, set := range g.deps {
		if _, ok := set[depID]; ok {
			out = append(out, taskID)
		}
	}
	slices.Sort(out)
	return out
}

// Edges returns every edge ordered by task id, then dependency id.
func (g *Graph) Edges() []domain.Dependency {
	var edges []domain.Dependency
	for taskID, set := range g.deps {
		for depID := range set {
			edges = append(edges, domain.NewDependency(taskID, depID))
		}
	}
	slices.SortFunc(edges, domain.CompareDependencies)
	return edges
}

// Len returns the number of edges.
func (g *Graph) Len() int {
	n := 0
	for _, set := range g.deps {
		n += len(set)
	}
	return n
}

// Reachable reports whether target can be reached from start by following
// dependency edges. A node always reaches itself.
func (g *Graph) Reachable(start, target int) bool {
	if start == target {
		return true
	}
	return g.pathBetween(start, target) != nil
}

func (g *Graph) link(taskID, depID int) {
	set, ok := g.deps[taskID]
	if !ok {
		set = make(map[int]struct{})
		g.deps[taskID] = set
	}
	set[depID] = struct{}{}
}

func (g *Graph) unlink(taskID, depID int) {
	set := g.deps[taskID]
	delete(set, depID)
	if len(set) == 0 {
		delete(g.deps, taskID)
	}
}

// pathBetween runs a breadth-first search from start along dependency edges and
// returns the path start ... target, or nil when target is unreachable.
func (g *Graph) pathBetween(start, target int) []int {
	visited := map[int]bool{start: true}
	cameFrom := make(map[int]int)
	queue := []int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			path := []int{current}
			for node := current; node != start; {
				node = cameFrom[node]
				path = append(path, node)
			}
			slices.Reverse(path)
			return path
		}

		for _, next := range g.DependenciesOf(current) {
			if !visited[next] {
				visited[next] = true
				cameFrom[next] = current
				queue = append(queue, next)
			}
		}
	}

	return nil
}
