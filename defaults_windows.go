// +build windows

package procinfo

import (
	"os"
	"path/filepath"
)

func init() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}

	// the config lives next to the binary
	DefaultCfgPath = filepath.Join(filepath.Dir(ex), appName+".conf")
}
