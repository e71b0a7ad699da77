// Package secure hardens sensitive paths by handing them to the superuser
// before the agent writes key material into them.
package secure

import (
	"errors"
	"fmt"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// ErrPermission is the kind shared by every ownership failure.
var ErrPermission = errors.New("permission denied")

// PermissionError reports a refused or failed ownership transfer. Err is
// nil when the caller lacked privilege and the system error otherwise.
type PermissionError struct {
	Path string
	EUID int
	Err  error
}

func (e *PermissionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("permission: euid %d cannot change ownership of %s to root", e.EUID, e.Path)
	}
	return fmt.Sprintf("permission: failed to change owner of %s to root: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Is makes every PermissionError match ErrPermission.
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}

// Enforcer transfers ownership of paths to root.
type Enforcer struct {
	owner Owner
}

// NewEnforcer returns an Enforcer using owner. A nil owner selects the
// real system calls.
func NewEnforcer(owner Owner) *Enforcer {
	if owner == nil {
		owner = SystemOwner{}
	}
	return &Enforcer{owner: owner}
}

// SecurePath changes the owner and group of path to root and returns path
// unchanged. The caller must be running as root; otherwise nothing on disk
// is touched. A failed chown is not rolled back.
func (e *Enforcer) SecurePath(path string) (string, error) {
	euid := e.owner.Geteuid()
	if euid != RootUID {
		log.WithFields(logger.Fields{
			"at":     "SecurePath",
			"reason": "not_privileged",
			"path":   path,
			"euid":   euid,
		}).Error("privilege level unable to change ownership to root")
		return "", &PermissionError{Path: path, EUID: euid}
	}

	if err := e.owner.Chown(path, RootUID, RootGID); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":     "SecurePath",
			"reason": "chown_failed",
			"path":   path,
		}).Error("failed to change file owner")
		return "", &PermissionError{Path: path, EUID: euid, Err: oops.Wrapf(err, "chown %s", path)}
	}

	log.WithFields(logger.Fields{
		"at":   "SecurePath",
		"path": path,
	}).Info("changed file owner to root")
	return path, nil
}
