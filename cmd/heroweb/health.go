package main

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type healthReport struct {
	Status         string  `json:"status"`
	UptimeSeconds  uint64  `json:"uptimeSeconds"`
	CPUPercent     float64 `json:"cpuPercent"`
	MemUsedPercent float64 `json:"memUsedPercent"`
	Goroutines     int     `json:"goroutines"`
}

// handleHealth reports host vitals for booth monitoring. Errors from the
// metrics layer degrade individual fields to zero rather than failing the
// endpoint; a kiosk that can answer at all is "ok".
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Status:     "ok",
		Goroutines: runtime.NumGoroutine(),
	}

	if up, err := host.Uptime(); err == nil {
		report.UptimeSeconds = up
	}
	if percs, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percs) > 0 {
		report.CPUPercent = percs[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report.MemUsedPercent = vm.UsedPercent
	}

	writeJSON(w, report)
}
