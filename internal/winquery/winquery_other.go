//go:build !windows
// +build !windows

package winquery

import (
	"context"

	"svckit/internal/scm"
)

func describe(ctx context.Context, serviceName string) (*ServiceDetail, error) {
	return nil, scm.ErrUnsupported
}
