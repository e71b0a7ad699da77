package secure

import (
	"sync"
)

// RootUID and RootGID identify the superuser account.
const (
	RootUID = 0
	RootGID = 0
)

// Owner is the capability needed to hand a path over to the superuser.
type Owner interface {
	// Geteuid returns the effective user ID of the calling process.
	Geteuid() int
	// Chown changes the owning user and group of path.
	Chown(path string, uid, gid int) error
}

// SystemOwner performs the real system calls.
type SystemOwner struct{}

// ChownCall is one ownership change requested from a RecordingOwner.
type ChownCall struct {
	Path string
	UID  int
	GID  int
}

// RecordingOwner is an Owner that never touches the filesystem. It records
// every Chown and returns ChownErr from it. Build one with
// NewRecordingOwner; the zero value reports euid -1, so it is never
// mistaken for root.
type RecordingOwner struct {
	ChownErr error

	euid    int
	hasEUID bool

	mu    sync.Mutex
	calls []ChownCall
}

// NewRecordingOwner returns a RecordingOwner reporting euid as the
// effective user ID.
func NewRecordingOwner(euid int) *RecordingOwner {
	return &RecordingOwner{euid: euid, hasEUID: true}
}

func (o *RecordingOwner) Geteuid() int {
	if !o.hasEUID {
		return -1
	}
	return o.euid
}

func (o *RecordingOwner) Chown(path string, uid, gid int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, ChownCall{Path: path, UID: uid, GID: gid})
	return o.ChownErr
}

// Calls returns the recorded Chown calls in order.
func (o *RecordingOwner) Calls() []ChownCall {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ChownCall, len(o.calls))
	copy(out, o.calls)
	return out
}
