// Package sysinfo reports host resource usage for the admin settings tab.
package sysinfo

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type Sample struct {
	CapturedAt        time.Time `json:"capturedAt"`
	ProcessRSSBytes   int64     `json:"processRssBytes"`
	GoHeapBytes       int64     `json:"goHeapBytes"`
	Goroutines        int       `json:"goroutines"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	DiskPath          string    `json:"diskPath"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
}

// Capture samples memory and the disk holding path. When path cannot be
// read the root filesystem is used. Probes that fail leave their fields zero.
func Capture(path string) Sample {
	sample := Sample{
		CapturedAt: time.Now().UTC(),
		Goroutines: runtime.NumGoroutine(),
		DiskPath:   path,
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	sample.GoHeapBytes = int64(ms.HeapAlloc)

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			sample.ProcessRSSBytes = int64(info.RSS)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sample.SystemMemoryTotal = int64(vm.Total)
		sample.SystemMemoryUsed = int64(vm.Total - vm.Available)
	}
	usage, err := disk.Usage(path)
	if err != nil {
		sample.DiskPath = "/"
		usage, err = disk.Usage("/")
	}
	if err == nil && usage != nil {
		sample.DiskTotalBytes = int64(usage.Total)
		sample.DiskUsedBytes = int64(usage.Used)
	}
	return sample
}
