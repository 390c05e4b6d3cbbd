package power

import "github.com/hollisk/paperwright/internal/util"

// SimulatedPlatform logs the power-off instead of issuing it. Used when
// the appliance runs on a development host, selected with -no-poweroff.
type SimulatedPlatform struct{}

func (SimulatedPlatform) PowerOff() error {
	util.LogInfo("power-off suppressed (simulation mode)")
	return nil
}
