//go:build linux

package power

import "golang.org/x/sys/unix"

// SystemPlatform powers the appliance off through the kernel. Sync runs
// first so the last persist reaches the storage medium.
type SystemPlatform struct{}

func (SystemPlatform) PowerOff() error {
	unix.Sync()
	return unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF)
}
