// +build !windows,!darwin

package procinfo

import "path/filepath"

func init() {
	DefaultCfgPath = filepath.Join("/etc", appName, appName+".conf")
}
