package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dbsmedya/apideps/internal/typesys"
)

func buildGraph(nodes []typesys.TypeID, edges [][2]typesys.TypeID) *Graph {
	g := NewGraph()
	for _, n := range nodes {
		g.AddNode(n, nil)
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func TestProcessingQueue_FIFOOrder(t *testing.T) {
	pq := NewProcessingQueue()
	if !pq.IsEmpty() {
		t.Fatal("New queue should be empty")
	}

	pq.Enqueue("first")
	pq.Enqueue("second")
	pq.Enqueue("third")

	if pq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", pq.Len())
	}

	for _, want := range []typesys.TypeID{"first", "second", "third"} {
		got, ok := pq.Dequeue()
		if !ok || got != want {
			t.Errorf("Expected %s, got %s (ok=%v)", want, got, ok)
		}
	}

	if _, ok := pq.Dequeue(); ok {
		t.Error("Dequeue on empty queue should return false")
	}
}

func TestCalculateInDegrees(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B", "C", "D"},
		[][2]typesys.TypeID{{"A", "B"}, {"A", "C"}, {"B", "C"}},
	)

	inDegrees := g.CalculateInDegrees()

	expected := map[typesys.TypeID]int{"A": 0, "B": 1, "C": 2, "D": 0}
	if !reflect.DeepEqual(inDegrees, expected) {
		t.Errorf("Expected in-degrees %v, got %v", expected, inDegrees)
	}
}

func TestInitializeQueue_SortedZeroInDegree(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"z", "m", "a", "b"},
		[][2]typesys.TypeID{{"a", "b"}},
	)

	pq := g.InitializeQueue(g.CalculateInDegrees())

	var got []typesys.TypeID
	for !pq.IsEmpty() {
		n, _ := pq.Dequeue()
		got = append(got, n)
	}

	want := []typesys.TypeID{"a", "m", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTopologicalSort_Chain(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B", "C"},
		[][2]typesys.TypeID{{"A", "B"}, {"B", "C"}},
	)

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []typesys.TypeID{"A", "B", "C"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Expected %v, got %v", want, order)
	}

	deps, err := g.DependencyOrder()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	wantDeps := []typesys.TypeID{"C", "B", "A"}
	if !reflect.DeepEqual(deps, wantDeps) {
		t.Errorf("Expected %v, got %v", wantDeps, deps)
	}
}

func TestTopologicalSort_Diamond(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B", "C", "D"},
		[][2]typesys.TypeID{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
	)

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	position := make(map[typesys.TypeID]int)
	for i, n := range order {
		position[n] = i
	}
	for _, e := range g.AllEdges() {
		if position[e.From] >= position[e.To] {
			t.Errorf("Dependent %s should precede dependency %s in %v", e.From, e.To, order)
		}
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"Object", "String", "Leaf"},
		[][2]typesys.TypeID{{"Object", "String"}, {"String", "Object"}, {"Leaf", "Object"}},
	)

	_, err := g.TopologicalSort()
	if err == nil {
		t.Fatal("Expected cycle error")
	}
	if !errors.Is(err, ErrCycleDetected) {
		t.Errorf("Expected errors.Is(err, ErrCycleDetected), got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Expected *CycleError, got %T", err)
	}
	if cycleErr.Info.ProcessedNodes != 1 {
		t.Errorf("Expected 1 processed node, got %d", cycleErr.Info.ProcessedNodes)
	}

	if _, err := g.DependencyOrder(); err == nil {
		t.Error("DependencyOrder should fail on a cyclic graph")
	}
}

func TestEmptyGraphSorts(t *testing.T) {
	g := NewGraph()
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("Expected empty order, got %v", order)
	}
}
