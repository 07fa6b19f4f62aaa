//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import "errors"

func setCbreak(fd int) error {
	return errors.New("cbreak mode not supported on this platform")
}
