// +build darwin

package procinfo

import (
	"os"
	"path/filepath"
)

func init() {
	DefaultCfgPath = filepath.Join(os.Getenv("HOME"), "."+appName, appName+".conf")
}
