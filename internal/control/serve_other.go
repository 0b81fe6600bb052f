//go:build !windows
// +build !windows

package control

import "svckit/internal/scm"

func serve(name string, args []string, handler Handler) error {
	return scm.ErrUnsupported
}
