package dispatch

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unsafe"
)

// tableEntry mirrors SERVICE_TABLE_ENTRYW: a wide-string service name
// pointer and the callback address.
type tableEntry struct {
	serviceName *uint16
	serviceProc uintptr
}

// buildTable lays out the native dispatch table for the registration
// call: one entry per service followed by the mandatory zeroed
// terminator entry. Omitting the terminator is undefined behavior at
// the native boundary, so it is appended unconditionally here.
func buildTable(entries []Entry, proc uintptr) ([]tableEntry, error) {
	table := make([]tableEntry, 0, len(entries)+1)
	for _, e := range entries {
		namePtr, err := utf16PtrFromString(e.Name)
		if err != nil {
			return nil, err
		}
		table = append(table, tableEntry{serviceName: namePtr, serviceProc: proc})
	}
	return append(table, tableEntry{}), nil
}

// parseArgs copies the raw argc/argv received by the service entry
// callback into owned strings. The array and the memory it points to
// are valid only for the duration of the callback invocation; nothing
// from it is retained. argc=0 yields an empty slice.
func parseArgs(argc uint32, argv **uint16) []string {
	args := make([]string, 0, argc)
	if argv == nil {
		return args
	}
	for _, p := range unsafe.Slice(argv, argc) {
		args = append(args, utf16PtrToString(p))
	}
	return args
}

func utf16PtrToString(p *uint16) string {
	if p == nil {
		return ""
	}
	n := 0
	for ptr := p; *ptr != 0; ptr = (*uint16)(unsafe.Add(unsafe.Pointer(ptr), unsafe.Sizeof(*p))) {
		n++
	}
	return string(utf16.Decode(unsafe.Slice(p, n)))
}

func utf16PtrFromString(s string) (*uint16, error) {
	if strings.ContainsRune(s, 0) {
		return nil, fmt.Errorf("string %q contains an embedded NUL", s)
	}
	encoded := utf16.Encode([]rune(s))
	encoded = append(encoded, 0)
	return &encoded[0], nil
}
