/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
)

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// humanReadableSize formats a byte count with SI units for response logs.
func humanReadableSize(bytes int64) string {
	value := float64(bytes)
	unit := 0

	for value >= 1000 && unit < len(sizeUnits)-1 {
		value /= 1000
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", bytes)
	}

	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}
