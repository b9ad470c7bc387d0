package services

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Word holds an open document with a sharing or byte-range lock.
var lockErrnos = []syscall.Errno{
	windows.ERROR_SHARING_VIOLATION,
	windows.ERROR_LOCK_VIOLATION,
}
