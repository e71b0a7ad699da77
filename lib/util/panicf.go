package util

import (
	"fmt"
)

// Panicf panics with a formatted message.
func Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}
