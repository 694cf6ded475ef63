package procinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

const (
	markerOK     = ">>>"
	markerFailed = "!!!"
)

func marker(ok bool) string {
	if ok {
		return markerOK
	}
	return markerFailed
}

func (c *Checker) PrintResult(res *Result) {
	if c.out == nil {
		return
	}
	PrintResult(c.out, res)
}

// PrintResult writes the human readable result block of a single file.
func PrintResult(w io.Writer, res *Result) {
	fmt.Fprintf(w, "%s Results from %s:\n", marker(res.OK), res.File)
	fmt.Fprintf(w, "%s processor         = %s\n", marker(res.processorOK), res.Processor)
	fmt.Fprintf(w, "%s hardware_platform = %s\n", marker(res.platformOK), res.HardwarePlatform)

	if res.HostMatch != nil {
		fmt.Fprintf(w, "%s host_match        = %t\n", marker(*res.HostMatch), *res.HostMatch)
	}

	fmt.Fprintln(w)
}

// WriteJSON encodes all results as a single report document.
func WriteJSON(w io.Writer, results []*Result) error {
	if results == nil {
		results = []*Result{}
	}

	report := &Report{
		Timestamp: time.Now().Unix(),
		Failed:    FailedCount(results),
		Results:   results,
	}

	err := json.NewEncoder(w).Encode(report)
	if err != nil {
		return errors.Wrap(err, "failed to JSON encode the results")
	}

	return nil
}
