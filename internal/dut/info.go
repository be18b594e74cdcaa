package dut

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Build stamp locations, in lookup order.
var buildStampPaths = []string{
	"/var/lib/snapd/hostfs/var/lib/ubuntu_dist_channel", // PC project
	"/var/lib/snapd/hostfs/.disk/info",                  // ubuntu classic
	"/run/mnt/ubuntu-seed/.disk/info",                   // ubuntu core
}

var (
	nvidiaDriverPattern = regexp.MustCompile(`Driver Version\s*:\s*(\d+\.\d+(?:\.\d+)?)`)
	nvidiaVBIOSPattern  = regexp.MustCompile(`VBIOS Version\s*:\s*([\w.]+)`)
)

const commandTimeout = 30 * time.Second

// KV is one entry of the standard info section. Order matters on screen,
// so the collection is a slice rather than a map.
type KV struct {
	Key   string
	Value string
}

// StandardInfo gathers the information that should be present in every
// bug report. This can be very slow, so callers should run it off the UI
// loop. Individual failures are logged and reported inline instead of
// aborting the whole collection.
func StandardInfo(ctx context.Context, logger *zap.Logger) []KV {
	if logger == nil {
		logger = zap.NewNop()
	}

	info := []KV{{Key: "Image", Value: buildStamp()}}

	for _, dmiKey := range []string{"system-manufacturer", "system-product-name", "bios-version"} {
		value, err := runCommand(ctx, "dmidecode", "-s", dmiKey)
		if err != nil {
			logger.Warn("dmidecode failed", zap.String("key", dmiKey), zap.Error(err))
			value = "Failed to read " + dmiKey
		}
		info = append(info, KV{Key: prettyDMIKey(dmiKey), Value: value})
	}

	cpu, err := cpuInfo()
	if err != nil {
		logger.Warn("failed to read /proc/cpuinfo", zap.Error(err))
		cpu = "Failed to read CPU info"
	}
	info = append(info, KV{Key: "CPU", Value: cpu})

	gpu, err := gpuInfo(ctx)
	if err != nil {
		logger.Warn("lspci failed", zap.Error(err))
		gpu = "Failed to read GPU info"
	}
	info = append(info, KV{Key: "GPU", Value: gpu})

	if strings.Contains(gpu, "NVIDIA") {
		driver, vbios := nvidiaInfo(ctx, logger)
		info = append(info, KV{Key: "NVIDIA Driver", Value: driver})
		info = append(info, KV{Key: "NVIDIA VBIOS", Value: vbios})
	}
	if strings.Contains(gpu, "AMD") {
		vbios := amdVBIOS(ctx, logger)
		if vbios == "" {
			vbios = "Cannot capture VBIOS version"
		}
		info = append(info, KV{Key: "AMD VBIOS", Value: vbios})
	}

	info = append(info, KV{Key: "Kernel Version", Value: kernelVersion()})
	return info
}

// buildStamp returns the last line of the first build stamp file present.
func buildStamp() string {
	for _, path := range buildStampPaths {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		return strings.TrimSpace(lines[len(lines)-1])
	}
	return "Failed to get build stamp"
}

// cpuInfo aggregates the model names in /proc/cpuinfo with counts.
func cpuInfo() (string, error) {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "", err
	}
	defer f.Close()
	return parseCPUInfo(f)
}

func parseCPUInfo(r io.Reader) (string, error) {
	counts := make(map[string]int)
	var order []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "model name") && !strings.HasPrefix(line, "Processor") {
			continue
		}
		_, name, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	lines := make([]string, 0, len(order))
	for _, name := range order {
		lines = append(lines, fmt.Sprintf("%s (%dx)", name, counts[name]))
	}
	return strings.Join(lines, "\n"), nil
}

// gpuInfo returns the lspci lines for display controllers.
// '03' is the PCI class for display controllers.
func gpuInfo(ctx context.Context) (string, error) {
	out, err := runCommand(ctx, "lspci", "-nn")
	if err != nil {
		return "", err
	}

	var gpuLines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "[03") {
			gpuLines = append(gpuLines, line)
		}
	}
	return strings.Join(gpuLines, "\n"), nil
}

// nvidiaInfo scrapes driver and VBIOS versions out of nvidia-smi -q.
func nvidiaInfo(ctx context.Context, logger *zap.Logger) (driver, vbios string) {
	const capErr = "Cannot capture driver or VBIOS version"
	driver, vbios = capErr, capErr

	if _, err := exec.LookPath("nvidia-smi"); err != nil {
		return driver, vbios
	}

	out, err := runCommand(ctx, "nvidia-smi", "-q")
	if err != nil {
		logger.Warn("nvidia-smi failed", zap.Error(err))
		return driver, vbios
	}

	if m := nvidiaDriverPattern.FindStringSubmatch(out); m != nil {
		driver = m[1]
	}
	if m := nvidiaVBIOSPattern.FindStringSubmatch(out); m != nil {
		vbios = m[1]
	}
	return driver, vbios
}

// amdVBIOS matches sysfs vbios_version files against the AMD display
// controllers lspci reports.
func amdVBIOS(ctx context.Context, logger *zap.Logger) string {
	var vbiosPaths []string
	_ = filepath.WalkDir("/sys/devices", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == "vbios_version" {
			vbiosPaths = append(vbiosPaths, path)
		}
		return nil
	})
	if len(vbiosPaths) == 0 {
		return ""
	}

	// display controller classes: VGA, XGA, 3D, other
	var vbios strings.Builder
	for _, class := range []string{"0300", "0301", "0302", "0380"} {
		out, err := runCommand(ctx, "lspci", "-Dnm", "-d", "1002::"+class)
		if err != nil {
			logger.Warn("lspci failed", zap.String("class", class), zap.Error(err))
			continue
		}
		for _, pci := range strings.Split(out, "\n") {
			fields := strings.Fields(pci)
			if len(fields) < 4 {
				continue
			}
			for _, path := range vbiosPaths {
				if !strings.Contains(path, fields[0]) {
					continue
				}
				version, err := os.ReadFile(path)
				if err != nil {
					continue
				}
				device := strings.ToUpper(strings.Trim(fields[3], `"`))
				fmt.Fprintf(&vbios, "%s[%s] ", strings.TrimSpace(string(version)), device)
			}
		}
	}
	return strings.TrimSpace(vbios.String())
}

func kernelVersion() string {
	var uts syscall.Utsname
	if err := syscall.Uname(&uts); err != nil {
		return "unknown"
	}
	return utsString(uts.Release)
}

func utsString(field [65]int8) string {
	buf := make([]byte, 0, len(field))
	for _, c := range field {
		if c == 0 {
			break
		}
		buf = append(buf, byte(c))
	}
	return string(buf)
}

func prettyDMIKey(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}
