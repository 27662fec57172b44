//go:build !linux && !darwin && !windows

package preview

import (
	"os"
	"time"
)

func accessTime(os.FileInfo) time.Time { return time.Time{} }
