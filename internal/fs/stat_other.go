//go:build !unix

package fs

import (
	"io/fs"
	"time"
)

// CreatedTime falls back to the modification time on platforms without
// accessible stat change-time data.
func (m *OSFilesystemManager) CreatedTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
