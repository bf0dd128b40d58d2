//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"hourglass/internal/core/timekeeper"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount64   = kernel32.NewProc("GetTickCount64")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if procGetLastInputInfo.Find() != nil || procGetTickCount64.Find() != nil {
		return 0, timekeeper.ErrIdleUnsupported
	}

	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	if result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info))); result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}
	now, _, _ := procGetTickCount64.Call()

	// dwTime is a 32-bit tick count that wraps every 49.7 days.
	idleMillis := uint32(uint64(now)) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
