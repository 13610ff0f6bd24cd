//go:build linux

package snapshot

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"squaretop/internal/procmodel"
)

// enrichPlatform fills in the Linux-only optional fields by reading procfs,
// adapted from the teacher's own /proc parsing in internal/sampler
// (readProcCgroup, topProcs) and grounded in semantics on
// original_source/src/system/platform/linux.rs. Best-effort: any read
// failure simply leaves the field nil.
func enrichPlatform(rp *RawProcess) {
	if name, ok := cgroupName(rp.PID); ok {
		rp.Group = &name
	}
	if prio, ok := processPriority(rp.PID); ok {
		rp.Priority = &prio
	}
	if io, ok := processIO(rp.PID); ok {
		rp.IO = io
	}
}

// cgroupName reads /proc/<pid>/cgroup and returns the last path segment of
// the first non-empty hierarchy entry, scanning from the last line (cgroup
// v2 reports a single "0::/path" line; cgroup v1 reports several
// "hierarchy-id:controller-list:path" lines).
func cgroupName(pid uint32) (string, bool) {
	contents, err := os.ReadFile(fmt.Sprintf("/proc/%d/cgroup", pid))
	if err != nil {
		return "", false
	}
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		parts := strings.SplitN(lines[i], ":", 3)
		if len(parts) != 3 {
			continue
		}
		path := strings.TrimPrefix(parts[2], "/")
		if path == "" {
			continue
		}
		segs := strings.Split(path, "/")
		for j := len(segs) - 1; j >= 0; j-- {
			if segs[j] != "" {
				return segs[j], true
			}
		}
	}
	return "", false
}

// processPriority reads /proc/<pid>/stat and extracts field 18 (priority),
// skipping past the comm field which may itself contain parentheses/spaces.
func processPriority(pid uint32) (int, bool) {
	contents, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, false
	}
	s := string(contents)
	idx := strings.LastIndexByte(s, ')')
	if idx < 0 {
		return 0, false
	}
	fields := strings.Fields(s[idx+1:])
	// state(0) ppid(1) pgrp(2) session(3) tty_nr(4) tpgid(5) flags(6)
	// minflt(7) cminflt(8) majflt(9) cmajflt(10) utime(11) stime(12)
	// cutime(13) cstime(14) priority(15) nice(16)
	if len(fields) <= 15 {
		return 0, false
	}
	v, err := strconv.Atoi(fields[15])
	if err != nil {
		return 0, false
	}
	return v, true
}

// processIO reads /proc/<pid>/io for cumulative bytes read/written.
func processIO(pid uint32) (*procmodel.IO, bool) {
	contents, err := os.ReadFile(fmt.Sprintf("/proc/%d/io", pid))
	if err != nil {
		return nil, false
	}
	var read, write uint64
	var haveRead, haveWrite bool
	for _, line := range strings.Split(string(contents), "\n") {
		if v, ok := strings.CutPrefix(line, "read_bytes: "); ok {
			if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
				read, haveRead = parsed, true
			}
		} else if v, ok := strings.CutPrefix(line, "write_bytes: "); ok {
			if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
				write, haveWrite = parsed, true
			}
		}
	}
	if !haveRead || !haveWrite {
		return nil, false
	}
	return &procmodel.IO{ReadBytes: read, WriteBytes: write}, true
}
