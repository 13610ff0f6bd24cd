package snapshot

import (
	"testing"
	"time"
)

func TestBuildSimpleTree(t *testing.T) {
	raw := []RawProcess{
		{PID: 1, PPID: 0, Name: "init", MemoryBytes: 100},
		{PID: 2, PPID: 1, Name: "shell", MemoryBytes: 200},
		{PID: 3, PPID: 2, Name: "child", MemoryBytes: 50},
	}
	snap := Build(time.Now(), raw, SystemTotals{MemTotal: 1000})

	if len(snap.Tree.Roots) != 1 || snap.Tree.Roots[0] != 1 {
		t.Fatalf("expected single root pid 1, got %v", snap.Tree.Roots)
	}
	if snap.Tree.TotalMemory != 350 {
		t.Fatalf("expected total memory 350, got %d", snap.Tree.TotalMemory)
	}
	shell := snap.Tree.Processes[2]
	if len(shell.Children) != 1 || shell.Children[0] != 3 {
		t.Fatalf("expected shell to have child 3, got %v", shell.Children)
	}
}

func TestBuildBreaksCycles(t *testing.T) {
	// 10 -> 20 -> 30 -> 10 is a cycle; one of these edges must be broken
	// and its endpoint promoted to a root rather than infinite-looping.
	raw := []RawProcess{
		{PID: 10, PPID: 30, Name: "a", MemoryBytes: 10},
		{PID: 20, PPID: 10, Name: "b", MemoryBytes: 20},
		{PID: 30, PPID: 20, Name: "c", MemoryBytes: 30},
	}
	snap := Build(time.Now(), raw, SystemTotals{})

	if len(snap.Tree.Roots) == 0 {
		t.Fatalf("expected at least one root to break the cycle")
	}
	// Every process must still be reachable from some root exactly once.
	seen := make(map[uint32]bool)
	var visit func(uint32)
	visit = func(pid uint32) {
		if seen[pid] {
			t.Fatalf("pid %d visited twice: tree is not acyclic", pid)
		}
		seen[pid] = true
		for _, c := range snap.Tree.Processes[pid].Children {
			visit(c)
		}
	}
	for _, r := range snap.Tree.Roots {
		visit(r)
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 processes reachable, got %d", len(seen))
	}
}

func TestBuildDropsZeroPID(t *testing.T) {
	raw := []RawProcess{
		{PID: 0, Name: "kernel-ish", MemoryBytes: 999},
		{PID: 5, PPID: 0, Name: "real", MemoryBytes: 5},
	}
	snap := Build(time.Now(), raw, SystemTotals{})
	if len(snap.Tree.Processes) != 1 {
		t.Fatalf("expected pid 0 dropped, got %d processes", len(snap.Tree.Processes))
	}
}

func TestBuildNormalizesNames(t *testing.T) {
	raw := []RawProcess{
		{PID: 1, Name: "  spaced\x01name  ", MemoryBytes: 1},
	}
	snap := Build(time.Now(), raw, SystemTotals{})
	rec := snap.Tree.Processes[1]
	if rec.Name != "spaced?name" {
		t.Fatalf("expected normalized name %q, got %q", "spaced?name", rec.Name)
	}
}

func TestBuildDeterministic(t *testing.T) {
	raw := []RawProcess{
		{PID: 1, PPID: 0, Name: "a", MemoryBytes: 300},
		{PID: 2, PPID: 0, Name: "b", MemoryBytes: 100},
		{PID: 3, PPID: 0, Name: "c", MemoryBytes: 200},
	}
	now := time.Now()
	s1 := Build(now, raw, SystemTotals{})
	s2 := Build(now, raw, SystemTotals{})
	if len(s1.Tree.Roots) != len(s2.Tree.Roots) {
		t.Fatalf("non-deterministic root count")
	}
	for i := range s1.Tree.Roots {
		if s1.Tree.Roots[i] != s2.Tree.Roots[i] {
			t.Fatalf("non-deterministic root order at %d: %d vs %d", i, s1.Tree.Roots[i], s2.Tree.Roots[i])
		}
	}
	// Roots sorted by descending memory: 1 (300), 3 (200), 2 (100).
	want := []uint32{1, 3, 2}
	for i, w := range want {
		if s1.Tree.Roots[i] != w {
			t.Fatalf("expected root order %v, got %v", want, s1.Tree.Roots)
		}
	}
}
