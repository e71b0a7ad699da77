//go:build !unix

package secure

import (
	"github.com/samber/oops"
)

var errUnsupported = oops.Errorf("ownership transfer is not supported on this platform")

// Geteuid reports -1 so the privilege check always fails.
func (SystemOwner) Geteuid() int {
	return -1
}

func (SystemOwner) Chown(path string, uid, gid int) error {
	return errUnsupported
}
