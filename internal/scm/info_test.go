package scm

import (
	"strings"
	"testing"
	"unicode/utf16"
)

func TestServiceInfo_DependencyBlock(t *testing.T) {
	si := ServiceInfo{Dependencies: []string{"dep1", "dep2"}}

	want := append([]uint16{}, utf16.Encode([]rune("dep1"))...)
	want = append(want, 0)
	want = append(want, utf16.Encode([]rune("dep2"))...)
	want = append(want, 0, 0)

	got := si.dependencyBlock()
	if len(got) != len(want) {
		t.Fatalf("block length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestServiceInfo_DependencyBlockEmpty(t *testing.T) {
	si := ServiceInfo{}
	if got := si.dependencyBlock(); got != nil {
		t.Errorf("empty dependency block = %v, want nil", got)
	}
}

func TestServiceInfo_ValidateRejectsEmbeddedNUL(t *testing.T) {
	cases := []struct {
		name string
		info ServiceInfo
	}{
		{"dependency", ServiceInfo{Name: "svc", Dependencies: []string{"bad\x00dep"}}},
		{"launch argument", ServiceInfo{Name: "svc", LaunchArguments: []string{"--p\x00"}}},
		{"service name", ServiceInfo{Name: "svc\x00"}},
		{"display name", ServiceInfo{Name: "svc", DisplayName: "a\x00b"}},
		{"account name", ServiceInfo{Name: "svc", AccountName: ".\\user\x00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.info.validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), "NUL") {
				t.Errorf("error = %q, want mention of NUL", err)
			}
		})
	}
}

func TestServiceInfo_ValidateRejectsEmpty(t *testing.T) {
	if err := (&ServiceInfo{}).validate(); err == nil {
		t.Error("expected error for missing name")
	}
	si := ServiceInfo{Name: "svc", Dependencies: []string{""}}
	if err := si.validate(); err == nil {
		t.Error("expected error for empty dependency name")
	}
}

func TestServiceInfo_CommandLine(t *testing.T) {
	cases := []struct {
		name string
		info ServiceInfo
		want string
	}{
		{
			"plain path",
			ServiceInfo{ExecutablePath: `C:\svc\agent.exe`},
			`C:\svc\agent.exe`,
		},
		{
			"path with spaces",
			ServiceInfo{ExecutablePath: `C:\Program Files\agent.exe`},
			`"C:\Program Files\agent.exe"`,
		},
		{
			"arguments",
			ServiceInfo{
				ExecutablePath:  `C:\svc\agent.exe`,
				LaunchArguments: []string{"-config", `C:\conf dir\a.json`},
			},
			`C:\svc\agent.exe -config "C:\conf dir\a.json"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.commandLine(); got != tc.want {
				t.Errorf("commandLine() = %q, want %q", got, tc.want)
			}
		})
	}
}
