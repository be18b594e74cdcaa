package dut

import "os/exec"

// RequiredCommands are the external tools the info getters and log
// tooling lean on.
var RequiredCommands = []string{
	"dmidecode",
	"lspci",
	"nvidia-smi",
	"snap",
	"oem-getlogs",
}

// CheckCommands resolves each required command on PATH. Missing commands
// map to an empty string.
func CheckCommands() map[string]string {
	found := make(map[string]string, len(RequiredCommands))
	for _, name := range RequiredCommands {
		path, err := exec.LookPath(name)
		if err != nil {
			path = ""
		}
		found[name] = path
	}
	return found
}
