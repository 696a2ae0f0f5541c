// Package sysinfo - Formatting utilities
package sysinfo

import "fmt"

// byteUnits are the scaling prefixes, smallest first. Scaling stops at the last one.
var byteUnits = []string{"", "K", "M", "G", "T", "P"}

// FormatBytes converts a byte count to a human-readable string with appropriate units.
//
// Parameters:
//   - bytes: The number of bytes to format
//
// Returns:
//   - The value scaled by 1024 until it drops below 1024 (or the unit is P),
//     with two decimals and a "B" suffix
//
// Example: FormatBytes(1500000) returns "1.43MB"
func FormatBytes(bytes uint64) string {
	v := float64(bytes)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f%sB", v, byteUnits[unit])
}

// FormatPercent renders a utilization percentage with one decimal.
//
// Example: FormatPercent(42.345) returns "42.3%"
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMHz renders a clock frequency in MHz with two decimals.
//
// Example: FormatMHz(2400) returns "2400.00Mhz"
func FormatMHz(mhz float64) string {
	return fmt.Sprintf("%.2fMhz", mhz)
}
