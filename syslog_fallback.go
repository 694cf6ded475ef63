// +build windows nacl plan9

package procinfo

import "fmt"

func addSyslogHook(syslogURL string) error {
	return fmt.Errorf("%s: syslog is not available on this platform, can't use %s", appName, syslogURL)
}
