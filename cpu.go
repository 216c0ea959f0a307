package grandiose

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// IsSupportedCPU reports whether this machine can run the media engine:
// x86-64 with SSE4.2, or arm64.
func IsSupportedCPU() bool {
	return supportedCPU(runtime.GOARCH, cpu.X86.HasSSE42)
}

func supportedCPU(arch string, hasSSE42 bool) bool {
	switch arch {
	case "amd64":
		return hasSSE42
	case "arm64":
		return true
	default:
		return false
	}
}
