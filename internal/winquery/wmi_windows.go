//go:build windows
// +build windows

package winquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"

	"svckit/internal/logger"
)

// win32Service maps the Win32_Service WMI class fields we consume.
type win32Service struct {
	Name        string
	DisplayName string
	State       string
	StartMode   string
	StartName   string
	PathName    string
	ProcessId   uint32
}

func describe(ctx context.Context, serviceName string) (*ServiceDetail, error) {
	var records []win32Service
	query := "SELECT Name, DisplayName, State, StartMode, StartName, PathName, ProcessId" +
		" FROM Win32_Service WHERE Name = " + wqlString(serviceName)
	if err := wmi.Query(query, &records); err != nil {
		return nil, fmt.Errorf("wmi query for %s: %w", serviceName, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("service %q not found in WMI", serviceName)
	}

	rec := records[0]
	detail := &ServiceDetail{
		Name:        rec.Name,
		DisplayName: rec.DisplayName,
		State:       rec.State,
		StartMode:   rec.StartMode,
		StartName:   rec.StartName,
		PathName:    rec.PathName,
		ProcessID:   rec.ProcessId,
	}

	if strings.EqualFold(rec.State, "Running") && rec.ProcessId != 0 {
		usage, err := processUsage(ctx, rec.ProcessId)
		if err != nil {
			log := logger.WithComponent("winquery")
			log.Debug().Err(err).Uint32("pid", rec.ProcessId).Msg("Process usage unavailable")
		} else {
			detail.Process = usage
		}
	}
	return detail, nil
}
