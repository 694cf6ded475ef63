package hostcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHostProc(t *testing.T) {
	old, had := os.LookupEnv("HOST_PROC")
	defer func() {
		if had {
			os.Setenv("HOST_PROC", old)
		} else {
			os.Unsetenv("HOST_PROC")
		}
	}()

	os.Unsetenv("HOST_PROC")
	assert.Equal(t, filepath.Join("/proc", "cpuinfo"), HostProc("cpuinfo"))

	os.Setenv("HOST_PROC", "/host/proc")
	assert.Equal(t, filepath.Join("/host/proc", "cpuinfo"), InfoFile("amd64"))
	assert.Equal(t, filepath.Join("/host/proc", "sysinfo"), InfoFile("s390x"))
}

func TestArchName(t *testing.T) {
	assert.Equal(t, "i386", ArchName("386"))
	assert.Equal(t, "amd64", ArchName("amd64"))
	assert.Equal(t, "ppc64", ArchName("ppc64le"))
	assert.Equal(t, "mips", ArchName("mipsle"))
	assert.Equal(t, "s390x", ArchName("s390x"))
}

func TestCrossCheck(t *testing.T) {
	reported := func() (string, error) {
		return "Intel(R) Core(TM)2 Duo CPU     T7700  @ 2.40GHz", nil
	}

	ok, err := CrossCheck("Intel(R) Core(TM)2 Duo CPU T7700 @ 2.40GHz", reported)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = CrossCheck("AMD Ryzen", reported)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = CrossCheck("AMD Ryzen", func() (string, error) { return "", ErrNoCPUInfo })
	assert.True(t, errors.Is(err, ErrNoCPUInfo))
}
