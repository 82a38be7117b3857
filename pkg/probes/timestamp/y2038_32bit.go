//go:build linux && !(amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x)

package timestamp

import "golang.org/x/sys/unix"

const y2038Sec int64 = 0

// y2038Pair reports that the boundary check cannot run: a 32-bit time_t has
// its end of life at 2038 and the kernel rejects larger values.
func y2038Pair() ([2]unix.Timespec, bool) {
	return [2]unix.Timespec{}, false
}
