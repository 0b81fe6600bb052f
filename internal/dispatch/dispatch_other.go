//go:build !windows
// +build !windows

package dispatch

import "svckit/internal/scm"

func run(entries []Entry) error {
	return scm.ErrUnsupported
}
