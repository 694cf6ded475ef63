// Package archtable maps info file names to the keys holding the processor and
// hardware platform names of an architecture.
package archtable

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudradar-monitoring/procinfo/pkg/kvscan"
)

// Entry describes the info file keys of one architecture.
type Entry struct {
	Prefix       string
	ProcessorKey string
	PlatformKey  string
	Format       kvscan.Format
}

// Keys is the outcome of resolving a single file.
type Keys struct {
	Token        string
	Prefix       string
	ProcessorKey string
	PlatformKey  string
	Format       kvscan.Format
}

// Shadow reports an entry that can never be selected because an earlier entry's prefix covers it.
type Shadow struct {
	Entry Entry
	By    Entry
}

// DefaultEntries is the built-in table. More specific prefixes come first,
// the first match wins.
var DefaultEntries = []Entry{
	{Prefix: "alpha", ProcessorKey: "cpu model", PlatformKey: "system type"},
	{Prefix: "amd64", ProcessorKey: "model name", PlatformKey: "vendor_id"},
	{Prefix: "arm", ProcessorKey: "Processor", PlatformKey: "Hardware"},
	{Prefix: "bfin", ProcessorKey: "CPU", PlatformKey: "BOARD Name"},
	{Prefix: "cris", ProcessorKey: "cpu", PlatformKey: "cpu model"},
	{Prefix: "frv", ProcessorKey: "CPU-Core", PlatformKey: "System"},
	{Prefix: "i386", ProcessorKey: "model name", PlatformKey: "vendor_id"},
	{Prefix: "ia64", ProcessorKey: "family", PlatformKey: "vendor"},
	{Prefix: "hppa", ProcessorKey: "cpu", PlatformKey: "model"},
	{Prefix: "m68k", ProcessorKey: "CPU", PlatformKey: "MMU"},
	{Prefix: "mips", ProcessorKey: "cpu model", PlatformKey: "system type"},
	{Prefix: "powerpc64", ProcessorKey: "cpu", PlatformKey: "machine"},
	{Prefix: "powerpc", ProcessorKey: "cpu", PlatformKey: "machine"},
	{Prefix: "s390x", ProcessorKey: "Type", PlatformKey: "Manufacturer"},
	{Prefix: "s390", ProcessorKey: "Type", PlatformKey: "Manufacturer"},
	{Prefix: "sh", ProcessorKey: "cpu type", PlatformKey: "machine"},
	{Prefix: "sparc", ProcessorKey: "type", PlatformKey: "cpu"},
	{Prefix: "vax", ProcessorKey: "cpu type", PlatformKey: "cpu"},
}

// Table is an ordered, read-only list of architecture entries.
type Table struct {
	entries []Entry
}

func Default() *Table {
	t, err := NewTable(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates and copies entries. An entry without a format gets the
// sysinfo format when its prefix starts with "s390", the generic one otherwise.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("archtable: table is empty")
	}

	t := &Table{entries: make([]Entry, 0, len(entries))}
	for i, e := range entries {
		if e.Prefix == "" {
			return nil, fmt.Errorf("archtable: entry #%d has an empty prefix", i+1)
		}
		if e.ProcessorKey == "" || e.PlatformKey == "" {
			return nil, fmt.Errorf("archtable: entry \"%s\" needs both a processor and a platform key", e.Prefix)
		}

		if e.Format == "" {
			e.Format = DefaultFormat(e.Prefix)
		}

		t.entries = append(t.entries, e)
	}

	return t, nil
}

func DefaultFormat(prefix string) kvscan.Format {
	if strings.HasPrefix(prefix, "s390") {
		return kvscan.FormatSysinfo
	}
	return kvscan.FormatGeneric
}

func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Lookup returns the first entry whose prefix is a prefix of token.
func (t *Table) Lookup(token string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.HasPrefix(token, e.Prefix) {
			return e, true
		}
	}

	return Entry{}, false
}

// ResolveToken rewrites name into a token and looks it up.
func (t *Table) ResolveToken(name string) (Keys, error) {
	token := Token(name)
	e, ok := t.Lookup(token)
	if !ok {
		return Keys{}, &ArchitectureNotDetectedError{Path: name, Token: token}
	}

	return e.keys(token), nil
}

// Resolve derives the architecture from path. The base name is tried first, then
// the directory holding the file, so both "ppc64-cpuinfo" and "arm/cpuinfo" resolve.
// Directories further up are never consulted.
func (t *Table) Resolve(path string) (Keys, error) {
	segments := candidates(path)

	for _, s := range segments {
		token := Token(s)
		if e, ok := t.Lookup(token); ok {
			return e.keys(token), nil
		}
	}

	var token string
	if len(segments) > 0 {
		token = Token(segments[0])
	}

	return Keys{}, &ArchitectureNotDetectedError{Path: path, Token: token}
}

// Shadowed lists entries made unreachable by an earlier, shorter prefix.
func (t *Table) Shadowed() []Shadow {
	var res []Shadow
	for i, e := range t.entries {
		for _, prev := range t.entries[:i] {
			if strings.HasPrefix(e.Prefix, prev.Prefix) {
				res = append(res, Shadow{Entry: e, By: prev})
				break
			}
		}
	}

	return res
}

func (e Entry) keys(token string) Keys {
	return Keys{
		Token:        token,
		Prefix:       e.Prefix,
		ProcessorKey: e.ProcessorKey,
		PlatformKey:  e.PlatformKey,
		Format:       e.Format,
	}
}

func candidates(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))

	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}

	var res []string
	for i := len(parts) - 1; i >= 0; i-- {
		switch parts[i] {
		case "", ".", "..":
			continue
		}
		res = append(res, parts[i])
	}

	return res
}
