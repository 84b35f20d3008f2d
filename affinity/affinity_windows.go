//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var procSetThreadAffinityMask = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadAffinityMask")

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= 64 {
		return fmt.Errorf("affinity: cpu %d outside the current processor group", cpuID)
	}
	thread, err := windows.GetCurrentThread()
	if err != nil {
		return err
	}
	ret, _, callErr := procSetThreadAffinityMask.Call(uintptr(thread), uintptr(1)<<cpuID)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask: %w", callErr)
	}
	return nil
}
