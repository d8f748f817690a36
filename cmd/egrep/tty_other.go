//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package main

// isTerminal always reports false; --color=auto never highlights here.
func isTerminal(fd uintptr) bool {
	return false
}
