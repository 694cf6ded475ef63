// Package kvscan reads key/value records out of architecture dependent info files
// such as /proc/cpuinfo and /proc/sysinfo.
package kvscan

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("package", "kvscan")

// Historical capture limits of the info file fields.
const (
	LegacyMaxKeyLength   = 64
	LegacyMaxValueLength = 256
)

type Options struct {
	Format Format

	// MaxKeyLength and MaxValueLength cap the captured field length in bytes. Zero means unlimited.
	MaxKeyLength   int
	MaxValueLength int

	// Trace is called for every record before it is matched, with the normalized key and the raw value.
	Trace func(key, value string)
}

// Record is a single key/value pair read from one line.
type Record struct {
	Key   string
	Value string

	// Truncated reports that the value capture stopped before the end of the line.
	Truncated bool
}

// Reader iterates over the records of an info file. Every call to Next consumes a
// whole physical line, whatever the capture limits are.
type Reader struct {
	br   *bufio.Reader
	opts Options

	rec  Record
	err  error
	line int
}

func NewReader(r io.Reader, opts Options) *Reader {
	return &Reader{
		br:   bufio.NewReader(r),
		opts: opts,
	}
}

// Next advances to the next record. It returns false at the end of input or on a read error.
func (r *Reader) Next() bool {
	for r.err == nil {
		line, err := r.br.ReadString('\n')
		if err != nil && err != io.EOF {
			r.err = errors.Wrap(err, "kvscan: read failed")
			return false
		}

		if line == "" && err == io.EOF {
			return false
		}
		r.line++

		rec, ok := r.parse(strings.TrimSuffix(line, "\n"))
		if ok {
			r.rec = rec
			return true
		}

		if err == io.EOF {
			return false
		}
	}

	return false
}

func (r *Reader) Record() Record {
	return r.rec
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) parse(line string) (Record, bool) {
	line = strings.TrimSuffix(line, "\r")

	key, value, ok := r.opts.Format.splitLine(line)
	if !ok {
		return Record{}, false
	}

	if r.opts.MaxKeyLength > 0 && len(key) > r.opts.MaxKeyLength {
		key = key[:r.opts.MaxKeyLength]
	}

	key = NormalizeKey(key)
	if key == "" {
		return Record{}, false
	}

	rec := Record{Key: key, Value: value}
	if r.opts.MaxValueLength > 0 && len(value) > r.opts.MaxValueLength {
		rec.Value = value[:r.opts.MaxValueLength]
		rec.Truncated = true
		log.Debugf("value of '%s' on line %d truncated to %d bytes, skipping the rest of the line", key, r.line, r.opts.MaxValueLength)
	}

	return rec, true
}

// Scanner looks up single keys in info files.
type Scanner struct {
	opts Options
}

func NewScanner(opts Options) *Scanner {
	if opts.Format == "" {
		opts.Format = FormatGeneric
	}
	return &Scanner{opts: opts}
}

// Lookup opens the file at path and returns the normalized value of the first record whose key equals key.
func (s *Scanner) Lookup(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FileUnreadableError{Path: path, Err: err}
	}
	defer f.Close()

	value, err := s.LookupReader(f, key)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return "", &FileUnreadableError{Path: path, Err: err}
	}

	return value, err
}

// LookupReader scans r for key. The first matching record wins.
func (s *Scanner) LookupReader(r io.Reader, key string) (string, error) {
	rd := NewReader(r, s.opts)
	for rd.Next() {
		rec := rd.Record()
		if s.opts.Trace != nil {
			s.opts.Trace(rec.Key, rec.Value)
		}

		if rec.Key == key {
			return NormalizeValue(rec.Value), nil
		}
	}

	if err := rd.Err(); err != nil {
		return "", err
	}

	return "", errors.Wrapf(ErrKeyNotFound, "'%s'", key)
}
