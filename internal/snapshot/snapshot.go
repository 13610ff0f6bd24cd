// Package snapshot builds immutable, point-in-time Snapshots from raw
// per-process records delivered by a ProcessSource. The builder is
// platform-agnostic; platform differences are absorbed by the source
// implementation (internal/snapshot/gopsutil_source.go).
package snapshot

import (
	"time"

	"squaretop/internal/procmodel"
)

// RawProcess is one unnormalized process observation as delivered by a
// ProcessSource, before tree construction.
type RawProcess struct {
	PID         uint32
	PPID        uint32
	Name        string
	Command     string
	MemoryBytes uint64
	CPUPercent  float32
	User        string
	State       procmodel.State
	Group       *string
	Priority    *int
	IO          *procmodel.IO
}

// SystemTotals carries the whole-machine aggregates a ProcessSource reports
// alongside its process list.
type SystemTotals struct {
	CPUPerCore  []float64
	MemTotal    uint64
	MemUsed     uint64
	MemFree     uint64
	SwapTotal   uint64
	SwapUsed    uint64
	LoadAverage [3]float64
	HasLoad     bool // false on platforms without a load-average concept
}

// ProcessSource is the external process-info source abstraction: platform
// process enumeration is out of scope for this repo's core (spec.md §1);
// this interface is the seam a real implementation plugs into. No cursor;
// every call is a full enumeration.
type ProcessSource interface {
	Collect() ([]RawProcess, SystemTotals, error)
}

// Snapshot is an immutable point-in-time view of system and per-process
// metrics. Replaced as a whole on each refresh tick; never mutated in place.
type Snapshot struct {
	Timestamp   time.Time
	CPUPerCore  []float64
	MemTotal    uint64
	MemUsed     uint64
	MemFree     uint64
	SwapTotal   uint64
	SwapUsed    uint64
	LoadAverage [3]float64
	HasLoad     bool
	Tree        procmodel.Tree
	Stale       bool // true when this snapshot is a retained previous one (collector error)
}

// Build normalizes raw and constructs the process tree, breaking cycles by
// promoting any back-edge's endpoint to a root. PID 0 is never a valid
// non-root PID; records with PID == 0 are dropped.
func Build(now time.Time, raw []RawProcess, totals SystemTotals) Snapshot {
	processes := make(map[uint32]procmodel.Record, len(raw))
	childrenOf := make(map[uint32][]uint32, len(raw))
	var totalMemory uint64

	for _, r := range raw {
		if r.PID == 0 {
			continue
		}
		name := normalizeName(r.Name)
		rec := procmodel.Record{
			PID:         r.PID,
			PPID:        r.PPID,
			Name:        name,
			Command:     normalizeName(r.Command),
			MemoryBytes: r.MemoryBytes,
			CPUPercent:  clampCPU(r.CPUPercent),
			User:        r.User,
			State:       r.State,
			Group:       r.Group,
			Priority:    r.Priority,
			IO:          r.IO,
		}
		processes[r.PID] = rec
		totalMemory += r.MemoryBytes
		childrenOf[r.PPID] = append(childrenOf[r.PPID], r.PID)
	}

	uf := newUnionFind()
	for pid := range processes {
		uf.add(pid)
	}

	// Any edge whose parent is absent or equal to 0/1 is a structural root
	// boundary, not a cycle candidate. Remaining edges are unioned; a union
	// that would connect two PIDs already joined indicates a cycle, and the
	// child end of that edge is promoted to a root instead of being wired
	// to its reported parent.
	promoted := make(map[uint32]bool)
	for pid, rec := range processes {
		if rec.PPID == 0 || rec.PPID == 1 {
			continue
		}
		if _, ok := processes[rec.PPID]; !ok {
			continue
		}
		if uf.connected(pid, rec.PPID) {
			promoted[pid] = true
			continue
		}
		uf.union(pid, rec.PPID)
	}

	var roots []uint32
	for pid, rec := range processes {
		isRoot := rec.PPID == 0 || rec.PPID == 1 || promoted[pid]
		if !isRoot {
			if _, ok := processes[rec.PPID]; !ok {
				isRoot = true
			}
		}
		if isRoot {
			roots = append(roots, pid)
		} else {
			r := processes[rec.PPID]
			r.Children = append(r.Children, pid)
			processes[rec.PPID] = r
		}
	}

	sortByMemoryDesc(roots, processes)

	return Snapshot{
		Timestamp:   now,
		CPUPerCore:  totals.CPUPerCore,
		MemTotal:    totals.MemTotal,
		MemUsed:     totals.MemUsed,
		MemFree:     totals.MemFree,
		SwapTotal:   totals.SwapTotal,
		SwapUsed:    totals.SwapUsed,
		LoadAverage: totals.LoadAverage,
		HasLoad:     totals.HasLoad,
		Tree: procmodel.Tree{
			Processes:   processes,
			Roots:       roots,
			TotalMemory: totalMemory,
		},
	}
}

func sortByMemoryDesc(pids []uint32, processes map[uint32]procmodel.Record) {
	for i := 1; i < len(pids); i++ {
		for j := i; j > 0; j-- {
			a, b := processes[pids[j]].MemoryBytes, processes[pids[j-1]].MemoryBytes
			if a > b || (a == b && pids[j] < pids[j-1]) {
				pids[j], pids[j-1] = pids[j-1], pids[j]
			} else {
				break
			}
		}
	}
}

func clampCPU(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func normalizeName(s string) string {
	out := make([]rune, 0, len(s))
	trimmed := trimSpace(s)
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			out = append(out, '?')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// unionFind is a small path-compressed, union-by-rank structure used to
// detect back-edges while building the process tree (spec.md §9, "Cyclic
// parent/child edges").
type unionFind struct {
	parent map[uint32]uint32
	rank   map[uint32]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[uint32]uint32), rank: make(map[uint32]int)}
}

func (u *unionFind) add(x uint32) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		u.rank[x] = 0
	}
}

func (u *unionFind) find(x uint32) uint32 {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

func (u *unionFind) connected(a, b uint32) bool {
	return u.find(a) == u.find(b)
}

func (u *unionFind) union(a, b uint32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
