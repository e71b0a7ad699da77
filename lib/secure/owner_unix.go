//go:build unix

package secure

import (
	"golang.org/x/sys/unix"
)

func (SystemOwner) Geteuid() int {
	return unix.Geteuid()
}

func (SystemOwner) Chown(path string, uid, gid int) error {
	return unix.Chown(path, uid, gid)
}
