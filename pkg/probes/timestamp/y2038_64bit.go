//go:build linux && (amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x)

package timestamp

import "golang.org/x/sys/unix"

// y2038Sec is past January 2038; representable only where time_t is 64-bit.
const y2038Sec int64 = 1 << 33

func y2038Pair() ([2]unix.Timespec, bool) {
	return [2]unix.Timespec{{Sec: y2038Sec}, {Sec: y2038Sec}}, true
}
