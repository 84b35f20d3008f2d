// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"
)

// Pin locks the calling goroutine to its OS thread and binds that thread
// to cpuID. The thread stays locked: when the goroutine exits the runtime
// discards it instead of returning a pinned thread to the scheduler.
func Pin(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return fmt.Errorf("affinity: cpu %d out of range [0,%d)", cpuID, runtime.NumCPU())
	}
	runtime.LockOSThread()
	if err := setAffinityPlatform(cpuID); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	return nil
}
