package procinfo

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResult(t *testing.T) {
	match := false
	res := &Result{
		File:             "ppc/cpuinfo",
		Processor:        "POWER8",
		HardwarePlatform: FieldFailed,
		HostMatch:        &match,
		processorOK:      true,
	}

	buf := &bytes.Buffer{}
	PrintResult(buf, res)

	assert.Equal(t, "!!! Results from ppc/cpuinfo:\n"+
		">>> processor         = POWER8\n"+
		"!!! hardware_platform = failed\n"+
		"!!! host_match        = false\n\n", buf.String())
}

func TestCheckerWithoutOutput(t *testing.T) {
	c, err := New(NewConfig(), nil)
	require.NoError(t, err)

	res := c.CheckFile("testdata/arm/cpuinfo")
	assert.True(t, res.OK)
}

func TestWriteJSON(t *testing.T) {
	results := []*Result{
		{File: "arm/cpuinfo", Architecture: "arm", Processor: "ARMv7", HardwarePlatform: "BCM2835", OK: true},
		{File: "riscv/cpuinfo", Processor: FieldFailed, HardwarePlatform: FieldFailed, Errors: []string{"archtable: could not detect architecture"}},
	}

	buf := &bytes.Buffer{}
	err := WriteJSON(buf, results)
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Contains(t, report, "timestamp")
	assert.Equal(t, float64(1), report["failed"])

	items := report["results"].([]interface{})
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "ARMv7", first["processor"])
	assert.Equal(t, "BCM2835", first["hardware_platform"])
	assert.Equal(t, true, first["ok"])
	assert.NotContains(t, first, "errors")
	assert.NotContains(t, first, "host_match")

	second := items[1].(map[string]interface{})
	assert.Equal(t, "failed", second["processor"])
	assert.Len(t, second["errors"], 1)
}

func TestWriteJSONEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSON(buf, nil))
	assert.Contains(t, buf.String(), `"results":[]`)
}
