// Package procinfo checks that architecture dependent info files such as
// /proc/cpuinfo expose the processor and hardware platform keys expected for
// their architecture.
package procinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/cloudradar-monitoring/procinfo/pkg/archtable"
	"github.com/cloudradar-monitoring/procinfo/pkg/common"
	"github.com/cloudradar-monitoring/procinfo/pkg/hostcheck"
	"github.com/cloudradar-monitoring/procinfo/pkg/kvscan"
)

// maxExitCode keeps the failed files count inside the range shells treat as a plain exit status.
const maxExitCode = 125

type Checker struct {
	Config *Config

	table     *archtable.Table
	out       io.Writer
	verbose   bool
	modelName hostcheck.ModelNameFunc
}

// New creates a checker printing its report to out. A nil out disables the text report.
func New(cfg *Config, out io.Writer) (*Checker, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	for _, s := range table.Shadowed() {
		log.Warnf("architecture \"%s\" is shadowed by \"%s\" declared before it and will never match", s.Entry.Prefix, s.By.Prefix)
	}

	return &Checker{
		Config:    cfg,
		table:     table,
		out:       out,
		modelName: hostcheck.GopsutilModelName,
	}, nil
}

// SetVerbose enables tracing of every scanned record to the report output.
func (c *Checker) SetVerbose(verbose bool) {
	c.verbose = verbose
}

// ScanContext carries the resolved keys of a single file. A new one is created for every file.
type ScanContext struct {
	File string
	Keys archtable.Keys

	scanner *kvscan.Scanner
}

func (c *Checker) newScanContext(file string, keys archtable.Keys) *ScanContext {
	opts := c.Config.scanOptions(keys.Format)
	if c.verbose && c.out != nil {
		opts.Trace = func(key, value string) {
			c.printf("### \t%s -> %s\n", key, value)
		}
	}

	return &ScanContext{
		File:    file,
		Keys:    keys,
		scanner: kvscan.NewScanner(opts),
	}
}

func (sc *ScanContext) Lookup(key string) (string, error) {
	return sc.scanner.Lookup(sc.File, key)
}

// CheckFile resolves the architecture from path and looks up both keys in the file.
func (c *Checker) CheckFile(path string) *Result {
	keys, err := c.table.Resolve(path)
	res := c.check(path, keys, err)
	c.PrintResult(res)

	return res
}

// CheckLocal checks the info file of the running host and compares the processor
// name with the one reported by gopsutil when the architecture exposes a model name.
func (c *Checker) CheckLocal() *Result {
	target := hostcheck.Local()
	log.Debugf("checking local host: arch %s, info file %s", target.Arch, target.Path)

	keys, err := c.table.ResolveToken(target.Arch)
	res := c.check(target.Path, keys, err)

	if res.processorOK && keys.ProcessorKey == "model name" {
		match, err := hostcheck.CrossCheck(res.Processor, c.modelName)
		if err != nil {
			log.WithError(err).Debug("skipping the host cross-check")
		} else {
			res.HostMatch = &match
		}
	}

	c.PrintResult(res)

	return res
}

// CheckPaths checks files and directories one at a time. Directories are walked
// depth-first in lexical order.
func (c *Checker) CheckPaths(paths []string) []*Result {
	var results []*Result

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			results = append(results, c.CheckFile(path))
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				log.WithError(err).Warnf("failed to walk %s", p)
				results = append(results, c.failedResult(p, err))
				return nil
			}

			if info.IsDir() {
				return nil
			}

			if info.Mode()&os.ModeSymlink != 0 {
				if target, err := os.Stat(p); err == nil && target.IsDir() {
					return nil
				}
			}

			results = append(results, c.CheckFile(p))
			return nil
		})
		if err != nil {
			log.WithError(err).Errorf("failed to walk %s", path)
		}
	}

	return results
}

func (c *Checker) check(path string, keys archtable.Keys, resolveErr error) *Result {
	c.printf(">>> Parsing data out of %s\n", path)

	res := &Result{
		File:             path,
		Processor:        FieldFailed,
		HardwarePlatform: FieldFailed,
	}
	errs := &common.ErrorCollector{}

	if resolveErr != nil {
		log.WithError(resolveErr).Warnf("%s: no keys to look for", path)
		errs.New(resolveErr)
	} else {
		res.Architecture = keys.Prefix
		sc := c.newScanContext(path, keys)

		res.Processor, res.processorOK = c.lookupField(sc, keys.ProcessorKey, errs)
		res.HardwarePlatform, res.platformOK = c.lookupField(sc, keys.PlatformKey, errs)
	}

	res.OK = res.processorOK && res.platformOK
	res.Errors = errs.Strings()

	return res
}

func (c *Checker) lookupField(sc *ScanContext, key string, errs *common.ErrorCollector) (string, bool) {
	if c.verbose {
		c.printf("### Looking for '%s':\n", key)
	}

	value, err := sc.Lookup(key)
	if err != nil {
		log.WithError(err).Warnf("%s: lookup of '%s' failed", sc.File, key)
		errs.New(err)
		return FieldFailed, false
	}

	return value, true
}

func (c *Checker) failedResult(path string, err error) *Result {
	res := &Result{
		File:             path,
		Processor:        FieldFailed,
		HardwarePlatform: FieldFailed,
		Errors:           []string{err.Error()},
	}
	c.PrintResult(res)

	return res
}

func (c *Checker) printf(format string, args ...interface{}) {
	if c.out == nil {
		return
	}
	fmt.Fprintf(c.out, format, args...)
}

// ExitCode is 0 when every result succeeded, the number of failed results otherwise.
func ExitCode(results []*Result) int {
	n := FailedCount(results)
	if n > maxExitCode {
		return maxExitCode
	}
	return n
}
