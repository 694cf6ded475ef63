// Package hostcheck points the checker at the running host's own info file and
// compares the scanned values with what gopsutil reports.
package hostcheck

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/cpu"
	"github.com/sirupsen/logrus"

	"github.com/cloudradar-monitoring/procinfo/pkg/kvscan"
)

var log = logrus.WithField("package", "hostcheck")

var ErrNoCPUInfo = errors.New("hostcheck: no cpu info reported")

// Target is the info file of the running host together with its architecture name.
type Target struct {
	Arch string
	Path string
}

func HostProc(elem ...string) string {
	procPath := os.Getenv("HOST_PROC")
	if procPath == "" {
		procPath = "/proc"
	}

	return filepath.Join(append([]string{procPath}, elem...)...)
}

// ArchName maps a GOARCH value to the name used by the kernel. Everything not
// listed is passed through and left to the synonym rules of the architecture table.
func ArchName(goarch string) string {
	switch goarch {
	case "386":
		return "i386"
	case "mips64", "mips64le", "mipsle":
		return "mips"
	case "ppc64le":
		return "ppc64"
	}

	return goarch
}

// InfoFile returns the info file path for arch: s390 machines expose the
// relevant keys in sysinfo, everything else in cpuinfo.
func InfoFile(arch string) string {
	if strings.HasPrefix(arch, "s390") {
		return HostProc("sysinfo")
	}
	return HostProc("cpuinfo")
}

func Local() Target {
	arch := ArchName(runtime.GOARCH)
	return Target{
		Arch: arch,
		Path: InfoFile(arch),
	}
}

// ModelNameFunc returns the processor model name of the running host.
type ModelNameFunc func() (string, error)

// GopsutilModelName reads the model name through gopsutil.
func GopsutilModelName() (string, error) {
	infos, err := cpu.Info()
	if err != nil {
		return "", errors.Wrap(err, "hostcheck: gopsutil cpu info failed")
	}

	for _, info := range infos {
		if info.ModelName != "" {
			return info.ModelName, nil
		}
	}

	return "", ErrNoCPUInfo
}

// CrossCheck compares a processor name scanned from the info file with the one
// reported by modelName. Both sides are normalized before comparing.
func CrossCheck(processor string, modelName ModelNameFunc) (bool, error) {
	reported, err := modelName()
	if err != nil {
		return false, err
	}

	reported = kvscan.NormalizeValue(reported)
	if kvscan.NormalizeValue(processor) != reported {
		log.Warnf("processor \"%s\" differs from \"%s\" reported by the host", processor, reported)
		return false, nil
	}

	log.Debugf("processor \"%s\" matches the host report", processor)
	return true, nil
}
