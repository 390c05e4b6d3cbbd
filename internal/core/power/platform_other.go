//go:build !linux

package power

import "github.com/hollisk/paperwright/internal/errs"

// SystemPlatform has no power-off path off the device; development hosts
// run with -no-poweroff instead.
type SystemPlatform struct{}

func (SystemPlatform) PowerOff() error {
	return errs.BadState("power-off not supported on this platform")
}
