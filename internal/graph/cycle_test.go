package graph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dbsmedya/apideps/internal/typesys"
)

func TestCycleError_ErrorMessage(t *testing.T) {
	info := &CycleInfo{
		TotalNodes:        5,
		ProcessedNodes:    2,
		UnprocessedNodes:  []typesys.TypeID{"A", "B", "C"},
		CycleParticipants: []typesys.TypeID{"A", "B"},
		CyclePath:         []typesys.TypeID{"A", "B", "A"},
	}
	msg := (&CycleError{Info: info}).Error()

	if !strings.Contains(msg, "cycle detected") {
		t.Error("Error message should contain 'cycle detected'")
	}
	if !strings.Contains(msg, "3 of 5") {
		t.Error("Error message should contain '3 of 5'")
	}
	if !strings.Contains(msg, "A -> B -> A") {
		t.Errorf("Error message should contain cycle path, got %q", msg)
	}
	if !strings.Contains(msg, "Types in cycles: 2") {
		t.Errorf("Error message should count cycle participants, got %q", msg)
	}
}

func TestCycleError_EmptyCyclePath(t *testing.T) {
	info := &CycleInfo{TotalNodes: 2, UnprocessedNodes: []typesys.TypeID{"A"}}
	msg := (&CycleError{Info: info}).Error()

	if strings.Contains(msg, "Cycle path:") {
		t.Error("Message should omit the cycle path when none is known")
	}
}

func TestDetectIncompleteProcessing_NoCycle(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B"},
		[][2]typesys.TypeID{{"A", "B"}},
	)

	if info := g.DetectIncompleteProcessing(); info != nil {
		t.Errorf("Expected nil for acyclic graph, got %+v", info)
	}
	if g.HasCycle() {
		t.Error("HasCycle should be false")
	}
}

func TestDetectIncompleteProcessing_BlockedTypes(t *testing.T) {
	// A <-> B is a cycle, C is only blocked by it.
	g := buildGraph(
		[]typesys.TypeID{"A", "B", "C", "D"},
		[][2]typesys.TypeID{{"A", "B"}, {"B", "A"}, {"B", "C"}, {"D", "A"}},
	)

	info := g.DetectIncompleteProcessing()
	if info == nil {
		t.Fatal("Expected cycle info")
	}

	if !reflect.DeepEqual(info.UnprocessedNodes, []typesys.TypeID{"A", "B", "C"}) {
		t.Errorf("Unexpected unprocessed nodes: %v", info.UnprocessedNodes)
	}
	if !reflect.DeepEqual(info.CycleParticipants, []typesys.TypeID{"A", "B"}) {
		t.Errorf("Unexpected cycle participants: %v", info.CycleParticipants)
	}
	if !reflect.DeepEqual(info.CyclePath, []typesys.TypeID{"A", "B", "A"}) {
		t.Errorf("Unexpected cycle path: %v", info.CyclePath)
	}
	if info.ProcessedNodes != 1 || info.TotalNodes != 4 {
		t.Errorf("Unexpected counts: %+v", info)
	}
}

func TestFindCyclePath_ThreeNodes(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B", "C"},
		[][2]typesys.TypeID{{"A", "B"}, {"B", "C"}, {"C", "A"}},
	)
	allowed := map[typesys.TypeID]bool{"A": true, "B": true, "C": true}

	path := g.FindCyclePath("A", allowed)
	want := []typesys.TypeID{"A", "B", "C", "A"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("Expected %v, got %v", want, path)
	}
}

func TestFindCyclePath_NoCycle(t *testing.T) {
	g := buildGraph(
		[]typesys.TypeID{"A", "B"},
		[][2]typesys.TypeID{{"A", "B"}},
	)
	allowed := map[typesys.TypeID]bool{"A": true, "B": true}

	if path := g.FindCyclePath("A", allowed); path != nil {
		t.Errorf("Expected nil path, got %v", path)
	}
}
