package util

import (
	"os"
)

// CheckFileExists reports whether fpath can be stat'ed. It does not check
// that the file is readable or parseable.
func CheckFileExists(fpath string) bool {
	_, e := os.Stat(fpath)
	return e == nil
}
