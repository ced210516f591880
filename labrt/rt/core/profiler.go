package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler keeps per-scope CPU timings and frame counters for the render loop.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	FPS        float64
	frames     int
	fpsElapsed float64
}

// Counter names maintained by the driver.
const (
	CountFrames   = "frames"
	CountDropped  = "dropped"
	CountSwitches = "switches"
)

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

func (p *Profiler) Inc(name string) {
	p.Counts[name]++
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

// Frame feeds the FPS average, which is refreshed about once per second.
func (p *Profiler) Frame(dt float64) {
	p.frames++
	p.fpsElapsed += dt
	if p.fpsElapsed >= 1.0 {
		p.FPS = float64(p.frames) / p.fpsElapsed
		p.frames = 0
		p.fpsElapsed = 0
	}
}

func (p *Profiler) Reset() {
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-15s: %.2f ms\n", name, ms))
	}

	sb.WriteString("\nStats:\n")
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-15s: %d\n", k, p.Counts[k]))
	}
	sb.WriteString(fmt.Sprintf("  %-15s: %.1f\n", "fps", p.FPS))

	return sb.String()
}
