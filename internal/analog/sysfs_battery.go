package analog

import (
	"fmt"

	"github.com/prometheus/procfs/sysfs"
)

// SysfsBattery reads the battery voltage of a linux power supply, for
// transmitters built around a board with a fuel gauge or a UPS hat.
type SysfsBattery struct {
	fs   sysfs.FS
	name string
}

func NewSysfsBattery(name string) (*SysfsBattery, error) {
	fs, err := sysfs.NewFS(sysfs.DefaultMountPoint)
	if err != nil {
		return nil, fmt.Errorf("failed opening sysfs: %w", err)
	}
	return &SysfsBattery{
		fs:   fs,
		name: name,
	}, nil
}

func (b *SysfsBattery) ReadBattery() (uint16, error) {
	supplies, err := b.fs.PowerSupplyClass()
	if err != nil {
		return 0, fmt.Errorf("failed reading power supplies: %w", err)
	}

	supply, ok := supplies[b.name]
	if !ok {
		return 0, fmt.Errorf("power supply %s not found", b.name)
	}
	if supply.VoltageNow == nil {
		return 0, fmt.Errorf("power supply %s reports no voltage", b.name)
	}
	// voltage_now is in microvolts
	return uint16(*supply.VoltageNow / 10000), nil
}
