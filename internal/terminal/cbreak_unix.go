//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

// setCbreak disables canonical mode and echo, keeps signal generation, and
// makes reads return after at most 100ms with or without input.
func setCbreak(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}

	t.Lflag &^= unix.ICANON | unix.ECHO
	t.Lflag |= unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1

	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}
