package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/cloudradar-monitoring/procinfo"
)

var (
	// set on build:
	// go build -o procinfo -ldflags="-X main.version=$(git describe --always --long --dirty --tag)" github.com/cloudradar-monitoring/procinfo/cmd/procinfo
	version string
)

func fatal(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func main() {
	verbosePtr := flag.Bool("v", false, "verbose – trace every scanned key/value pair")
	cfgPathPtr := flag.String("c", procinfo.DefaultCfgPath, "config file path")
	outputFilePtr := flag.String("o", "", "file to write the JSON results to, \"-\" for stdout")
	logLevelPtr := flag.String("l", "", "log level – overrides the level in config file (values \"error\",\"info\",\"debug\")")
	printConfigPtr := flag.Bool("p", false, "print the active config")
	selfPtr := flag.Bool("self", false, "check the info file of the running host")
	versionPtr := flag.Bool("version", false, "show the procinfo version")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] [options] <path> [<path> ...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(flag.CommandLine.Output(), "  <path>\n"+
			"        info file, or directory walked recursively. The architecture is guessed from the file and directory names.")
		flag.PrintDefaults()
	}
	flag.Parse()

	handleFlagVersion(*versionPtr)

	cfg, err := procinfo.HandleConfigSetup(*cfgPathPtr)
	if err != nil {
		fatal(fmt.Sprintf("Failed to handle procinfo configuration: %s", err.Error()))
	}

	handleFlagPrintConfig(*printConfigPtr, cfg)

	procinfo.ConfigureLogger(cfg)
	handleFlagLogLevel(cfg, *logLevelPtr)

	paths := flag.Args()
	if len(paths) == 0 && !*selfPtr {
		flag.Usage()
		os.Exit(1)
	}

	output, reportOut := handleFlagOutput(*outputFilePtr)

	checker, err := procinfo.New(cfg, reportOut)
	if err != nil {
		fatal(err.Error())
	}
	checker.SetVerbose(*verbosePtr)

	var results []*procinfo.Result
	if *selfPtr {
		results = append(results, checker.CheckLocal())
	}
	results = append(results, checker.CheckPaths(paths)...)

	if output != nil {
		if err := procinfo.WriteJSON(output, results); err != nil {
			log.WithError(err).Error("failed to write the results")
		}
	}

	if output != nil && output != os.Stdout {
		output.Close()
	}

	os.Exit(procinfo.ExitCode(results))
}

func handleFlagVersion(versionFlag bool) {
	if versionFlag {
		fmt.Printf("procinfo v%s released under MIT license. https://github.com/cloudradar-monitoring/procinfo/\n", version)
		os.Exit(0)
	}
}

func handleFlagPrintConfig(printConfig bool, cfg *procinfo.Config) {
	if printConfig {
		fmt.Println(cfg.DumpToml())
		os.Exit(0)
	}
}

func handleFlagLogLevel(cfg *procinfo.Config, logLevel string) {
	if logLevel == "" {
		return
	}

	if lvl := procinfo.LogLevel(logLevel); lvl.IsValid() {
		cfg.SetLogLevel(lvl)
	} else {
		log.Warnf("Invalid log level: \"%s\". Set to default: \"%s\"", logLevel, cfg.LogLevel)
	}
}

// handleFlagOutput opens the JSON results file. The text report goes to stdout
// unless the results themselves are written there.
func handleFlagOutput(outputFile string) (*os.File, io.Writer) {
	if outputFile == "" {
		return nil, os.Stdout
	}

	if outputFile == "-" {
		log.SetOutput(ioutil.Discard)
		return os.Stdout, nil
	}

	dir := filepath.Dir(outputFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			log.WithError(err).Fatalf("Failed to create the output file directory: '%s'", dir)
		}
	}

	output, err := os.OpenFile(outputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.WithError(err).Fatalf("Failed to open the output file: '%s'", outputFile)
	}

	return output, os.Stdout
}
