// Package device resolves the configured device preference into the device a
// backend is actually bound to.
package device

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Device names a compute target, e.g. "cpu" or "cuda:0".
type Device string

// CPU is the general-purpose compute device.
const CPU Device = "cpu"

// Accelerated reports whether d names a GPU.
func (d Device) Accelerated() bool {
	return strings.HasPrefix(string(d), "cuda")
}

func (d Device) String() string { return string(d) }

// Probe reports whether an accelerator is usable on this host.
type Probe func() bool

// Resolve returns the preferred device when it names an accelerator and probe
// finds one, else CPU.
func Resolve(pref string, probe Probe) Device {
	pref = strings.ToLower(strings.TrimSpace(pref))
	if !strings.Contains(pref, "cuda") {
		return CPU
	}
	if probe == nil || !probe() {
		return CPU
	}
	if pref == "cuda" {
		return Device("cuda:0")
	}
	return Device(pref)
}

// nvidiaDeviceNode is present when the NVIDIA kernel driver is loaded.
var nvidiaDeviceNode = "/dev/nvidia0"

// DetectAccelerator looks for an NVIDIA driver: nvidia-smi on PATH or the
// first device node.
func DetectAccelerator() bool {
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return true
	}
	return pathExists(nvidiaDeviceNode)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
