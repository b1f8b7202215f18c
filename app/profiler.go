package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures CPU profiles and execution traces when the frame
// rate drops, so slow frames can be diagnosed after the fact.
type Profiler struct {
	mu              sync.Mutex
	capturing       bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
}

// NewProfiler creates a profiler writing into the profiles directory.
func NewProfiler() *Profiler {
	profilesDir := "profiles"
	os.MkdirAll(profilesDir, 0755)

	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     profilesDir,
	}
}

// CaptureProfile starts an asynchronous CPU profile and trace capture.
// Captures on cooldown or already in progress are rejected.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}
	if p.capturing {
		return fmt.Errorf("already capturing")
	}

	p.capturing = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("fps-drop-%s-%s", timestamp, reason)

	// Capture in a goroutine so the animation keeps running.
	go func() {
		defer func() {
			p.mu.Lock()
			p.capturing = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				fmt.Printf("Error capturing CPU profile: %v\n", err)
			}
		}()

		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				fmt.Printf("Error capturing trace: %v\n", err)
			}
		}()

		wg.Wait()
		p.reportCapture(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	fmt.Printf("CPU profile saved to: %s\n", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	fmt.Printf("Trace saved to: %s\n", tracePath)
	return nil
}

// reportCapture prints where the capture landed and the heap state at
// the time, which usually tells whether a drop was GC pressure or
// plain CPU load.
func (p *Profiler) reportCapture(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	fmt.Printf("Captured %s; inspect with: go tool pprof -http=:8080 %s\n", baseName, profilePath)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Heap at capture: Alloc=%d KB, NumGC=%d, HeapObjects=%d\n",
		m.Alloc/1024, m.NumGC, m.HeapObjects)
}

// IsCapturing reports whether a capture is currently in progress.
func (p *Profiler) IsCapturing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capturing
}
