package rules

import (
	"github.com/hiverules/hive/internal/generics"
	"github.com/hiverules/hive/internal/hex"
	"github.com/hiverules/hive/internal/state"
)

// articulationPoints stores the graph of occupied cells used by findArticulationPoints.
//
// Except for the cells slice, everything else is seen in terms of a graph, where nodes
// are indices into cells.
type articulationPoints struct {
	cells          []hex.Axial
	isArticulation []bool
	allEdgesTarget []int
	edgesPerNode   [][2]int // Shaped [node, 2], it holds the start and end indices into allEdgesTarget for each node.
	tIn, tLow      []int
}

// PinnedCells returns the cells whose top piece can't leave without splitting the hive in
// two: cells holding a single piece that are articulation points of the graph of occupied
// cells. Cells with a stack are never pinned, since the cell stays occupied.
//
// It's informative only: the move generators rely on KeepsHiveConnectedAfter, which also
// accepts a move that reconnects the hive at the destination.
func PinnedCells(s *state.GameState) generics.Set[hex.Axial] {
	pinned := generics.MakeSet[hex.Axial]()
	numCells := s.NumOccupied()
	if numCells <= 1 {
		return pinned
	}
	ap := &articulationPoints{
		cells:          make([]hex.Axial, 0, numCells),
		allEdgesTarget: make([]int, 0, hex.NumDirections*numCells),
		edgesPerNode:   make([][2]int, numCells),
	}

	// Enumerate cells and create a reverse map.
	cellToNode := make(map[hex.Axial]int, numCells)
	for cell := range generics.SortedKeysFunc(s.Board(), hex.Compare) {
		cellToNode[cell] = len(ap.cells)
		ap.cells = append(ap.cells, cell)
	}

	// Build edges.
	for node, cell := range ap.cells {
		ap.edgesPerNode[node][0] = len(ap.allEdgesTarget)
		for _, neighbor := range cell.Neighbors() {
			if toNode, found := cellToNode[neighbor]; found {
				ap.allEdgesTarget = append(ap.allEdgesTarget, toNode)
			}
		}
		ap.edgesPerNode[node][1] = len(ap.allEdgesTarget)
	}

	ap.find(0)
	for node, isArticulation := range ap.isArticulation {
		cell := ap.cells[node]
		if isArticulation && s.StackHeight(cell) == 0 {
			pinned.Insert(cell)
		}
	}
	return pinned
}

// find runs in O(N+M), N = #nodes, M = #edges,
// see description in https://cp-algorithms.com/graph/cutpoints.html
//
// It works by doing DFS and monitoring the "time of entry into node", let's call it t, and it is incremented
// as each node is visited.
//
// For each node we keep track of tIn -> time that node was visited, and tLow the time of the node with the lowest
// looping connection -- or itself, if it hasn't found a loop-back.
func (ap *articulationPoints) find(root int) {
	numNodes := len(ap.cells)
	ap.tIn = make([]int, numNodes)
	ap.tLow = make([]int, numNodes)
	ap.isArticulation = make([]bool, numNodes)

	// DFS starting from root: the root visit is different from the rest, so we do it here.
	t := 1
	ap.tIn[root] = t
	ap.tLow[root] = t
	t++
	dfsChildren := 0
	for _, neighbor := range ap.edges(root) {
		if ap.tIn[neighbor] != 0 {
			continue
		}
		dfsChildren++
		t = ap.dfsVisit(root, neighbor, t)
	}
	// The root is an articulation point if it had to traverse through more than one neighbor on the DFS.
	// If it were not an articulation point, all nodes would have been reached from the first descendant.
	ap.isArticulation[root] = dfsChildren > 1
}

func (ap *articulationPoints) edges(node int) []int {
	return ap.allEdgesTarget[ap.edgesPerNode[node][0]:ap.edgesPerNode[node][1]]
}

// dfsVisit returns the updated time t.
func (ap *articulationPoints) dfsVisit(from, to, t int) int {
	ap.tIn[to] = t
	ap.tLow[to] = t
	t++
	for _, neighbor := range ap.edges(to) {
		if neighbor == from {
			continue
		}
		if ap.tIn[neighbor] != 0 {
			// "Back-edge", an edge to node already visited: we take this into account to our tLow.
			ap.tLow[to] = min(ap.tLow[to], ap.tIn[neighbor])
			continue
		}
		t = ap.dfsVisit(to, neighbor, t)
		ap.tLow[to] = min(ap.tLow[to], ap.tLow[neighbor])
		if ap.tLow[neighbor] >= ap.tIn[to] {
			ap.isArticulation[to] = true
		}
	}
	return t
}
