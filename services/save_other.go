//go:build !windows

package services

import "syscall"

// Locks are advisory here, so a held file only shows up as EACCES.
var lockErrnos []syscall.Errno
