package model

import "time"

// FileInfo describes one audio file found during a directory scan. ModTime
// drives processing order, oldest first.
type FileInfo struct {
	Name     string
	FullPath string
	ModTime  time.Time
}
