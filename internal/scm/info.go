package scm

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// ServiceInfo describes how a service should be installed. It is
// consumed by Manager.CreateService; empty AccountName/AccountPassword
// mean "not supplied" and cross the native boundary as NULL pointers.
type ServiceInfo struct {
	// Name is the unique service key name.
	Name string

	// DisplayName is the human-readable name shown by management tools.
	DisplayName string

	ServiceType  ServiceType
	StartType    StartType
	ErrorControl ErrorControl

	// DelayedAutoStart applies only when StartType is AutoStart.
	DelayedAutoStart bool

	// ExecutablePath is the filesystem path of the service binary.
	ExecutablePath string

	// LaunchArguments are appended to the executable path to form the
	// registered command line.
	LaunchArguments []string

	// Dependencies are service names that must be running before this
	// service starts.
	Dependencies []string

	// AccountName is the run-as identity, e.g. `.\username`. Empty
	// selects the system default account.
	AccountName     string
	AccountPassword string
}

func (si *ServiceInfo) validate() error {
	if si.Name == "" {
		return fmt.Errorf("service descriptor: name is required")
	}
	for _, f := range []struct {
		name, value string
	}{
		{"name", si.Name},
		{"display name", si.DisplayName},
		{"executable path", si.ExecutablePath},
		{"account name", si.AccountName},
		{"account password", si.AccountPassword},
	} {
		if strings.ContainsRune(f.value, 0) {
			return fmt.Errorf("service descriptor: %s contains an embedded NUL", f.name)
		}
	}
	for _, arg := range si.LaunchArguments {
		if strings.ContainsRune(arg, 0) {
			return fmt.Errorf("service descriptor: launch argument %q contains an embedded NUL", arg)
		}
	}
	for _, dep := range si.Dependencies {
		if dep == "" {
			return fmt.Errorf("service descriptor: empty dependency name")
		}
		if strings.ContainsRune(dep, 0) {
			return fmt.Errorf("service descriptor: dependency %q contains an embedded NUL", dep)
		}
	}
	return nil
}

// commandLine renders the registered command line: the executable path
// followed by the launch arguments, each quoted when it contains
// whitespace.
func (si *ServiceInfo) commandLine() string {
	parts := make([]string, 0, 1+len(si.LaunchArguments))
	parts = append(parts, quoteArg(si.ExecutablePath))
	for _, arg := range si.LaunchArguments {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t") {
		return s
	}
	return `"` + s + `"`
}

// dependencyBlock encodes the dependency list the way CreateServiceW
// expects it: each name as UTF-16 terminated by a single NUL, the
// whole sequence terminated by a second NUL. Returns nil when there
// are no dependencies so the native call receives a NULL pointer.
func (si *ServiceInfo) dependencyBlock() []uint16 {
	if len(si.Dependencies) == 0 {
		return nil
	}
	var block []uint16
	for _, dep := range si.Dependencies {
		block = append(block, utf16.Encode([]rune(dep))...)
		block = append(block, 0)
	}
	return append(block, 0)
}
