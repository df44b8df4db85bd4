package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/apideps/internal/typesys"
)

// ProcessingQueue wraps a list-based queue for Kahn's algorithm processing.
// It holds nodes that are ready to be processed (have in-degree of 0).
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// InitializeQueue creates a processing queue populated with all nodes
// that have in-degree of 0, in name order.
func (g *Graph) InitializeQueue(inDegree map[typesys.TypeID]int) *ProcessingQueue {
	pq := NewProcessingQueue()

	for _, name := range g.AllNodes() {
		if inDegree[name] == 0 {
			pq.Enqueue(name)
		}
	}

	return pq
}

// Enqueue adds a node to the back of the queue.
func (pq *ProcessingQueue) Enqueue(node typesys.TypeID) {
	pq.queue.PushBack(node)
}

// Dequeue removes and returns the node at the front of the queue.
// Returns empty ID and false if queue is empty.
func (pq *ProcessingQueue) Dequeue() (typesys.TypeID, bool) {
	if pq.queue.Len() == 0 {
		return "", false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(typesys.TypeID), true
}

// Len returns the number of nodes in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no nodes.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// CalculateInDegrees computes the number of dependents of each node.
func (g *Graph) CalculateInDegrees() map[typesys.TypeID]int {
	inDegree := make(map[typesys.TypeID]int, len(g.nodes))

	for name := range g.nodes {
		inDegree[name] = 0
	}

	for _, children := range g.children {
		for _, child := range children {
			inDegree[child]++
		}
	}

	return inDegree
}

// ErrCycleDetected is returned when the dependency graph contains a cycle,
// making topological sorting impossible.
var ErrCycleDetected = errors.New("cycle detected in dependency graph")

// CycleInfo contains information about incomplete processing due to cycles.
type CycleInfo struct {
	TotalNodes        int              // Total number of nodes in the graph
	ProcessedNodes    int              // Number of nodes successfully processed
	UnprocessedNodes  []typesys.TypeID // Part of or blocked by a cycle
	CycleParticipants []typesys.TypeID // Subset of UnprocessedNodes that lie on a cycle
	CyclePath         []typesys.TypeID // e.g. [A, B, C, A]
}

// CycleError reports a cyclic dependency graph.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("cycle detected in dependency graph: %d of %d types could not be ordered",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)

	if len(e.Info.CyclePath) > 0 {
		msg += fmt.Sprintf("\nCycle path: %s", joinIDs(e.Info.CyclePath, " -> "))
	}

	if len(e.Info.CycleParticipants) > 0 {
		msg += fmt.Sprintf("\nTypes in cycles: %d", len(e.Info.CycleParticipants))
	}

	return msg
}

// Is lets errors.Is match CycleError against ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// DetectIncompleteProcessing runs Kahn's algorithm and returns information
// about any nodes that couldn't be processed, or nil if the graph is acyclic.
func (g *Graph) DetectIncompleteProcessing() *CycleInfo {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	processed := make(map[typesys.TypeID]bool)

	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		processed[node] = true

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}

	if len(processed) == len(g.nodes) {
		return nil
	}

	var unprocessed []typesys.TypeID
	unprocessedSet := make(map[typesys.TypeID]bool)
	for _, name := range g.AllNodes() {
		if !processed[name] {
			unprocessed = append(unprocessed, name)
			unprocessedSet[name] = true
		}
	}

	var cycleParticipants []typesys.TypeID
	for _, node := range unprocessed {
		if g.canReachSelf(node, unprocessedSet) {
			cycleParticipants = append(cycleParticipants, node)
		}
	}

	var cyclePath []typesys.TypeID
	if len(cycleParticipants) > 0 {
		cyclePath = g.FindCyclePath(cycleParticipants[0], unprocessedSet)
	}

	return &CycleInfo{
		TotalNodes:        len(g.nodes),
		ProcessedNodes:    len(processed),
		UnprocessedNodes:  unprocessed,
		CycleParticipants: cycleParticipants,
		CyclePath:         cyclePath,
	}
}

// HasCycle returns true if the dependency graph contains a cycle.
func (g *Graph) HasCycle() bool {
	return g.DetectIncompleteProcessing() != nil
}

// FindCyclePath finds a path that leaves start and returns to it through
// allowedNodes. The start node appears at both ends of the result.
func (g *Graph) FindCyclePath(start typesys.TypeID, allowedNodes map[typesys.TypeID]bool) []typesys.TypeID {
	visited := make(map[typesys.TypeID]bool)
	path := []typesys.TypeID{start}

	if g.dfsFindPath(start, start, visited, allowedNodes, &path) {
		return path
	}

	return nil
}

func (g *Graph) dfsFindPath(current, target typesys.TypeID, visited, allowedNodes map[typesys.TypeID]bool, path *[]typesys.TypeID) bool {
	for _, child := range g.GetChildren(current) {
		if !allowedNodes[child] {
			continue
		}

		if child == target {
			*path = append(*path, target)
			return true
		}

		if visited[child] {
			continue
		}

		visited[child] = true
		*path = append(*path, child)

		if g.dfsFindPath(child, target, visited, allowedNodes, path) {
			return true
		}

		// Backtrack
		*path = (*path)[:len(*path)-1]
	}

	return false
}

func (g *Graph) canReachSelf(start typesys.TypeID, allowedNodes map[typesys.TypeID]bool) bool {
	visited := make(map[typesys.TypeID]bool)
	return g.dfsCanReach(start, start, visited, allowedNodes, true)
}

// isStart is true only for the initial call to avoid an immediate self-match.
func (g *Graph) dfsCanReach(current, target typesys.TypeID, visited, allowedNodes map[typesys.TypeID]bool, isStart bool) bool {
	if current == target && !isStart {
		return true
	}

	if visited[current] || !allowedNodes[current] {
		return false
	}

	visited[current] = true

	for _, child := range g.GetChildren(current) {
		if g.dfsCanReach(child, target, visited, allowedNodes, false) {
			return true
		}
	}

	return false
}

// TopologicalSort returns the types in Kahn order: every type precedes the
// types it depends on. Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]typesys.TypeID, error) {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	result := make([]typesys.TypeID, 0, len(g.nodes))

	for !queue.IsEmpty() {
		node, _ := queue.Dequeue()
		result = append(result, node)

		for _, child := range g.GetChildren(node) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue.Enqueue(child)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CycleError{Info: g.DetectIncompleteProcessing()}
	}

	return result, nil
}

// DependencyOrder returns the types with every dependency listed before its
// dependents, the reverse of TopologicalSort.
func (g *Graph) DependencyOrder() ([]typesys.TypeID, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	reversed := make([]typesys.TypeID, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}

	return reversed, nil
}

func joinIDs(ids []typesys.TypeID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}
