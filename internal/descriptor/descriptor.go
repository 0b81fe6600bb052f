// Package descriptor loads service installation descriptors from JSON
// files and maps them onto the creation operation's typed record.
package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"svckit/internal/scm"
)

// raw mirrors the on-disk JSON layout. Enumerated fields are strings
// so descriptor files stay readable.
type raw struct {
	Name             string   `json:"Name"`
	DisplayName      string   `json:"DisplayName"`
	ServiceType      string   `json:"ServiceType"`
	StartType        string   `json:"StartType"`
	DelayedAutoStart bool     `json:"DelayedAutoStart"`
	ErrorControl     string   `json:"ErrorControl"`
	ExecutablePath   string   `json:"ExecutablePath"`
	LaunchArguments  []string `json:"LaunchArguments"`
	Dependencies     []string `json:"Dependencies"`
	AccountName      string   `json:"AccountName"`
	AccountPassword  string   `json:"AccountPassword"`
}

var serviceTypes = map[string]scm.ServiceType{
	"":              scm.OwnProcess,
	"own-process":   scm.OwnProcess,
	"share-process": scm.ShareProcess,
}

var startTypes = map[string]scm.StartType{
	"":         scm.DemandStart,
	"auto":     scm.AutoStart,
	"demand":   scm.DemandStart,
	"boot":     scm.BootStart,
	"system":   scm.SystemStart,
	"disabled": scm.Disabled,
}

var errorControls = map[string]scm.ErrorControl{
	"":         scm.ErrorNormal,
	"ignore":   scm.ErrorIgnore,
	"normal":   scm.ErrorNormal,
	"severe":   scm.ErrorSevere,
	"critical": scm.ErrorCritical,
}

// Load reads a descriptor file and converts it into a ServiceInfo.
func Load(path string) (scm.ServiceInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scm.ServiceInfo{}, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return scm.ServiceInfo{}, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	return parse(r)
}

// parse validates and converts a raw descriptor.
func parse(r raw) (scm.ServiceInfo, error) {
	if r.Name == "" {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: Name is required")
	}
	if r.ExecutablePath == "" {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: ExecutablePath is required")
	}

	serviceType, ok := serviceTypes[strings.ToLower(r.ServiceType)]
	if !ok {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: unknown ServiceType %q", r.ServiceType)
	}
	startType, ok := startTypes[strings.ToLower(r.StartType)]
	if !ok {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: unknown StartType %q", r.StartType)
	}
	errorControl, ok := errorControls[strings.ToLower(r.ErrorControl)]
	if !ok {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: unknown ErrorControl %q", r.ErrorControl)
	}
	if r.DelayedAutoStart && startType != scm.AutoStart {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: DelayedAutoStart requires StartType \"auto\"")
	}
	if r.AccountPassword != "" && r.AccountName == "" {
		return scm.ServiceInfo{}, fmt.Errorf("descriptor: AccountPassword without AccountName")
	}

	displayName := r.DisplayName
	if displayName == "" {
		displayName = r.Name
	}

	return scm.ServiceInfo{
		Name:             r.Name,
		DisplayName:      displayName,
		ServiceType:      serviceType,
		StartType:        startType,
		DelayedAutoStart: r.DelayedAutoStart,
		ErrorControl:     errorControl,
		ExecutablePath:   r.ExecutablePath,
		LaunchArguments:  r.LaunchArguments,
		Dependencies:     r.Dependencies,
		AccountName:      r.AccountName,
		AccountPassword:  r.AccountPassword,
	}, nil
}
