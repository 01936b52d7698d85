package utils

import "github.com/shirou/gopsutil/disk"

// CheckDiskUsage reports whether the volume holding path is below the given
// usage percentage. Probe failures count as acceptable so a broken probe
// never blocks cache writes.
func CheckDiskUsage(path string, maxDiskUsage float64) (bool, float64) {
	usage, err := disk.Usage(path)
	if err != nil {
		return true, 0
	}
	return usage.UsedPercent <= maxDiskUsage, usage.UsedPercent
}
