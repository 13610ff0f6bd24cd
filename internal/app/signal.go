package app

import (
	"github.com/shirou/gopsutil/v3/process"
)

// GopsutilSignalSink sends termination requests through gopsutil/v3, the
// same dependency internal/snapshot already uses for enumeration (spec.md
// §6 "external signal sink").
type GopsutilSignalSink struct{}

// NewGopsutilSignalSink builds a ready-to-use SignalSink.
func NewGopsutilSignalSink() *GopsutilSignalSink { return &GopsutilSignalSink{} }

func (GopsutilSignalSink) Send(pid uint32, sig Signal) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	if sig == SignalKill {
		return p.Kill()
	}
	return p.Terminate()
}
