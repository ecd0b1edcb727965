//go:build unix

package fs

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedTime extracts the inode change time (ctime) from info.
// Most Unix filesystems do not expose a true birth time; ctime is the
// closest stable stand-in for when the copy appeared in the vault.
// Falls back to ModTime if the platform stat data is unavailable.
func (m *OSFilesystemManager) CreatedTime(info fs.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
