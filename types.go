package procinfo

// FieldFailed is reported in place of a value that could not be extracted.
const FieldFailed = "failed"

type Result struct {
	File             string   `json:"file"`
	Architecture     string   `json:"architecture,omitempty"`
	Processor        string   `json:"processor"`
	HardwarePlatform string   `json:"hardware_platform"`
	OK               bool     `json:"ok"`
	Errors           []string `json:"errors,omitempty"`

	// HostMatch is set by CheckLocal when the processor could be compared with the host report.
	HostMatch *bool `json:"host_match,omitempty"`

	processorOK bool
	platformOK  bool
}

// Report is the document written to the results file.
type Report struct {
	Timestamp int64     `json:"timestamp"`
	Failed    int       `json:"failed"`
	Results   []*Result `json:"results"`
}

// FailedCount returns the number of results with at least one failed field.
func FailedCount(results []*Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
