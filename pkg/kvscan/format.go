package kvscan

import (
	"fmt"
	"strings"
)

// Format selects the delimiter convention of an info file.
type Format string

const (
	// FormatGeneric is the /proc/cpuinfo layout: "KEY<TAB>:VALUE".
	FormatGeneric Format = "generic"
	// FormatSysinfo is the s390 /proc/sysinfo layout: "KEY : VALUE" with a run of
	// spaces and colons between key and value.
	FormatSysinfo Format = "sysinfo"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatGeneric:
		return FormatGeneric, nil
	case FormatSysinfo:
		return FormatSysinfo, nil
	}

	return "", fmt.Errorf("kvscan: unknown line format \"%s\"", s)
}

func (f Format) String() string {
	if f == "" {
		return string(FormatGeneric)
	}
	return string(f)
}

// splitLine cuts one physical line (without its newline) into raw key and value.
// ok is false when the line does not fit the format.
func (f Format) splitLine(line string) (key, value string, ok bool) {
	if f == FormatSysinfo {
		return splitSysinfo(line)
	}
	return splitGeneric(line)
}

// key runs up to the first tab or colon, the value starts after the first colon.
// Only whitespace may sit between the end of the key and that colon.
func splitGeneric(line string) (string, string, bool) {
	keyEnd := strings.IndexAny(line, "\t:")
	if keyEnd <= 0 {
		return "", "", false
	}

	colon := strings.IndexByte(line[keyEnd:], ':')
	if colon < 0 {
		return "", "", false
	}
	colon += keyEnd

	if strings.TrimSpace(line[keyEnd:colon]) != "" {
		return "", "", false
	}

	return line[:keyEnd], line[colon+1:], true
}

// key runs up to the first tab, space or colon, followed by a separator run of
// spaces and colons.
func splitSysinfo(line string) (string, string, bool) {
	keyEnd := strings.IndexAny(line, "\t :")
	if keyEnd <= 0 {
		return "", "", false
	}

	valueStart := keyEnd
	for valueStart < len(line) && isSeparator(line[valueStart]) {
		valueStart++
	}

	return line[:keyEnd], line[valueStart:], true
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ':'
}
