package dut

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPUInfo(t *testing.T) {
	cpuinfo := strings.Join([]string{
		"processor\t: 0",
		"model name\t: Intel(R) Core(TM) Ultra 7 165H",
		"processor\t: 1",
		"model name\t: Intel(R) Core(TM) Ultra 7 165H",
		"processor\t: 2",
		"model name\t: Intel(R) Core(TM) Ultra 7 165H",
	}, "\n")

	out, err := parseCPUInfo(strings.NewReader(cpuinfo))
	require.NoError(t, err)
	assert.Equal(t, "Intel(R) Core(TM) Ultra 7 165H (3x)", out)
}

func TestParseCPUInfoHybrid(t *testing.T) {
	cpuinfo := strings.Join([]string{
		"model name\t: big-core",
		"model name\t: big-core",
		"model name\t: little-core",
	}, "\n")

	out, err := parseCPUInfo(strings.NewReader(cpuinfo))
	require.NoError(t, err)
	// first-seen order is preserved
	assert.Equal(t, "big-core (2x)\nlittle-core (1x)", out)
}

func TestParseCPUInfoARM(t *testing.T) {
	// older ARM kernels report "Processor" instead of "model name"
	out, err := parseCPUInfo(strings.NewReader("Processor\t: ARMv7 Processor rev 4 (v7l)\n"))
	require.NoError(t, err)
	assert.Equal(t, "ARMv7 Processor rev 4 (v7l) (1x)", out)
}

func TestParseCPUInfoEmpty(t *testing.T) {
	out, err := parseCPUInfo(strings.NewReader("flags\t: fpu vme\n"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPrettyDMIKey(t *testing.T) {
	assert.Equal(t, "System Manufacturer", prettyDMIKey("system-manufacturer"))
	assert.Equal(t, "Bios Version", prettyDMIKey("bios-version"))
	assert.Equal(t, "Sku", prettyDMIKey("sku"))
}

func TestNvidiaPatterns(t *testing.T) {
	smi := `
==============NVSMI LOG==============

Driver Version                            : 550.120
CUDA Version                              : 12.4

Attached GPUs                             : 1
GPU 00000000:01:00.0
    VBIOS Version                         : 95.07.39.00.1C
`
	assert.Equal(t, "550.120", nvidiaDriverPattern.FindStringSubmatch(smi)[1])
	assert.Equal(t, "95.07.39.00.1C", nvidiaVBIOSPattern.FindStringSubmatch(smi)[1])
}

func TestCheckCommands(t *testing.T) {
	found := CheckCommands()
	for _, name := range RequiredCommands {
		assert.Contains(t, found, name)
	}
}
