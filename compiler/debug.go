package compiler

import (
	"fmt"
	"log"
)

// DebugMode enables DebugPrintf and DebugLogPrintf output.
var DebugMode bool

// DebugPrintf prints to stdout when DebugMode is set.
func DebugPrintf(format string, args ...any) {
	if DebugMode {
		fmt.Printf(format, args...)
	}
}

// DebugLogPrintf logs through the standard logger when DebugMode is set.
func DebugLogPrintf(format string, args ...any) {
	if DebugMode {
		log.Printf(format, args...)
	}
}
