//go:build linux

// Package timestamp probes utimensat and futimens semantics: the UTIME_NOW
// and UTIME_OMIT sentinels, independent atime/mtime updates, nanosecond
// round trips, and timestamps past the 2038 boundary.
//
// The checks mirror the classic libc utimensat conformance program
// assertion for assertion.
package timestamp

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
)

// New returns the timestamp probe.
func New() probe.Probe {
	return probe.Probe{
		Name:    "timestamp",
		Summary: "utimensat/futimens sentinel and boundary behavior",
		Run:     run,
	}
}

func run(st *check.State, env *probe.Env) {
	omitPair := [2]unix.Timespec{{Nsec: unix.UTIME_OMIT}, {Nsec: unix.UTIME_OMIT}}

	// A path under a non-directory: acceptable outcomes are success or
	// ENOTDIR, nothing else.
	err := unix.UtimesNanoAt(unix.AT_FDCWD, "/dev/null/invalid", omitPair[:], 0)
	st.Assert(err == nil || err == unix.ENOTDIR, "utimensat under non-directory: %v\n", err)

	// futimens on a closed descriptor: success or EBADF.
	err = futimens(-1, &omitPair)
	st.Assert(err == nil || err == unix.EBADF, "futimens on bad fd: %v\n", err)

	path, err := env.Path(env.ScratchKey("stamp"))
	if !st.Assert(err == nil, "scratch path: %v\n", err) {
		return
	}
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR, 0o600)
	if !st.Assert(err == nil, "failed to create file: %v\n", err) {
		return
	}
	defer unix.Close(fd)

	// Zero pair: both timestamps land exactly on the epoch.
	zero := [2]unix.Timespec{}
	st.Assert(futimens(fd, &zero) == nil, "futimens zero pair failed\n")
	at, mt, ok := stampsOf(st, fd)
	if ok {
		st.Val(at.sec, "==", 0)
		st.Val(at.nsec, "==", 0)
		st.Val(mt.sec, "==", 0)
		st.Val(mt.nsec, "==", 0)
	}

	// UTIME_OMIT wins over the seconds field: nothing moves.
	omitSec := [2]unix.Timespec{{Sec: 1, Nsec: unix.UTIME_OMIT}, {Sec: 1, Nsec: unix.UTIME_OMIT}}
	st.Assert(futimens(fd, &omitSec) == nil, "futimens omit pair failed\n")
	at, mt, ok = stampsOf(st, fd)
	if ok {
		st.Val(at.sec, "==", 0)
		st.Val(at.nsec, "==", 0)
		st.Val(mt.sec, "==", 0)
		st.Val(mt.nsec, "==", 0)
	}

	now := time.Now().Unix()

	// NOW/OMIT: only the access time advances.
	nowOmit := [2]unix.Timespec{{Nsec: unix.UTIME_NOW}, {Nsec: unix.UTIME_OMIT}}
	st.Assert(futimens(fd, &nowOmit) == nil, "futimens now/omit failed\n")
	at, mt, ok = stampsOf(st, fd)
	if ok {
		st.Val(at.sec, ">=", now)
		st.Val(mt.sec, "==", 0)
		st.Val(mt.nsec, "==", 0)
	}

	// Reset, then OMIT/NOW: only the modification time advances.
	st.Assert(futimens(fd, &zero) == nil, "futimens reset failed\n")
	omitNow := [2]unix.Timespec{{Nsec: unix.UTIME_OMIT}, {Nsec: unix.UTIME_NOW}}
	st.Assert(futimens(fd, &omitNow) == nil, "futimens omit/now failed\n")
	at, mt, ok = stampsOf(st, fd)
	if ok {
		st.Val(at.sec, "==", 0)
		st.Val(mt.sec, ">=", now)
	}

	// NOW/OMIT on top: both end up current.
	st.Assert(futimens(fd, &nowOmit) == nil, "futimens now/omit failed\n")
	at, mt, ok = stampsOf(st, fd)
	if ok {
		st.Val(at.sec, ">=", now)
		st.Val(mt.sec, ">=", now)
	}

	explicitPath(st, path)
	y2038(st, fd)
}

// explicitPath sets exact second/nanosecond values through the path-based
// call and expects them back unchanged.
func explicitPath(st *check.State, path string) {
	ts := []unix.Timespec{{Sec: 5, Nsec: 7}, {Sec: 11, Nsec: 13}}
	if !st.Assert(unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, 0) == nil, "utimensat explicit pair failed\n") {
		return
	}

	var sb unix.Stat_t
	if !st.Assert(unix.Stat(path, &sb) == nil, "stat after utimensat failed\n") {
		return
	}
	st.Val(int64(sb.Atim.Sec), "==", 5)
	st.Val(int64(sb.Atim.Nsec), "==", 7)
	st.Val(int64(sb.Mtim.Sec), "==", 11)
	st.Val(int64(sb.Mtim.Nsec), "==", 13)
}

// y2038 writes a timestamp past January 2038 and expects it back intact on
// targets with a 64-bit time_t; 32-bit builds skip the block.
func y2038(st *check.State, fd int) {
	pair, ok := y2038Pair()
	if !ok {
		return
	}
	if !st.Assert(futimens(fd, &pair) == nil, "futimens past 2038 failed\n") {
		return
	}
	at, mt, ok := stampsOf(st, fd)
	if ok {
		st.Val(at.sec, "==", y2038Sec)
		st.Val(mt.sec, "==", y2038Sec)
	}
}

type stamp struct {
	sec  int64
	nsec int64
}

func stampsOf(st *check.State, fd int) (atime, mtime stamp, ok bool) {
	var sb unix.Stat_t
	if !st.Assert(unix.Fstat(fd, &sb) == nil, "fstat failed\n") {
		return stamp{}, stamp{}, false
	}
	atime = stamp{sec: int64(sb.Atim.Sec), nsec: int64(sb.Atim.Nsec)}
	mtime = stamp{sec: int64(sb.Mtim.Sec), nsec: int64(sb.Mtim.Nsec)}
	return atime, mtime, true
}
