//go:build linux

// Package fsmeta probes file metadata retrieval: stat on a path, fstat on an
// open descriptor, lstat on a symlink, and the agreement between them for a
// file the probe itself creates and writes.
package fsmeta

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
)

const payload = "Hello, world!\n"

// New returns the fsmeta probe.
func New() probe.Probe {
	return probe.Probe{
		Name:    "fsmeta",
		Summary: "stat/fstat/lstat file metadata",
		Run:     run,
	}
}

func run(st *check.State, env *probe.Env) {
	path, err := env.Path("test_file.txt")
	if !st.Assert(err == nil, "scratch path: %v\n", err) {
		return
	}

	start := time.Now().Unix()

	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_TRUNC, 0o600)
	if !st.Assert(err == nil, "failed to create file: %v\n", err) {
		return
	}
	defer unix.Close(fd)

	n, err := unix.Write(fd, []byte(payload))
	st.Assert(err == nil, "failed to write to file: %v\n", err)
	st.Val(int64(n), "==", int64(len(payload)))

	// Read the data back through the same descriptor.
	_, err = unix.Seek(fd, 0, 0)
	st.Assert(err == nil, "seek: %v\n", err)
	buf := make([]byte, 2*len(payload))
	n, err = unix.Read(fd, buf)
	st.Assert(err == nil, "failed to read from file: %v\n", err)
	if st.Val(int64(n), "==", int64(len(payload))) {
		st.Eq(string(buf[:n]), payload)
	}

	var pst unix.Stat_t
	if !st.Assert(unix.Stat(path, &pst) == nil, "failed to stat file\n") {
		return
	}

	st.Val(int64(pst.Size), "==", int64(len(payload)))
	st.Val(int64(pst.Nlink), "==", 1)
	st.Assert(pst.Mode&unix.S_IFMT == unix.S_IFREG, "mode %#o is not a regular file\n", pst.Mode)
	// The umask can only clear bits from the 0600 we asked for.
	st.Assert(pst.Mode&0o777&^0o600 == 0, "permission bits %#o exceed request\n", pst.Mode&0o777)
	st.Val(int64(pst.Mtim.Sec), ">=", start)

	// fstat on the open descriptor must describe the same inode.
	var fst unix.Stat_t
	if st.Assert(unix.Fstat(fd, &fst) == nil, "failed to fstat file\n") {
		st.Assert(fst.Ino == pst.Ino, "fstat ino %d != stat ino %d\n", fst.Ino, pst.Ino)
		st.Assert(fst.Dev == pst.Dev, "fstat dev %d != stat dev %d\n", fst.Dev, pst.Dev)
		st.Val(int64(fst.Size), "==", int64(pst.Size))
		st.Val(int64(fst.Mode), "==", int64(pst.Mode))
	}

	symlinks(st, env, path, &pst)
	missing(st, env)
}

func symlinks(st *check.State, env *probe.Env, target string, tst *unix.Stat_t) {
	link, err := env.Path(env.ScratchKey("link"))
	if !st.Assert(err == nil, "scratch path: %v\n", err) {
		return
	}
	if !st.Assert(os.Symlink(target, link) == nil, "failed to create symlink\n") {
		return
	}

	// lstat reports the link itself and does not follow.
	var lst unix.Stat_t
	if st.Assert(unix.Lstat(link, &lst) == nil, "failed to lstat symlink\n") {
		st.Assert(lst.Mode&unix.S_IFMT == unix.S_IFLNK, "lstat mode %#o is not a symlink\n", lst.Mode)
		st.Assert(lst.Ino != tst.Ino, "symlink shares the target inode\n")
	}

	// stat follows to the target.
	var fst unix.Stat_t
	if st.Assert(unix.Stat(link, &fst) == nil, "failed to stat through symlink\n") {
		st.Assert(fst.Mode&unix.S_IFMT == unix.S_IFREG, "stat through symlink is not the target\n")
		st.Assert(fst.Ino == tst.Ino, "stat through symlink ino %d != target ino %d\n", fst.Ino, tst.Ino)
	}
}

func missing(st *check.State, env *probe.Env) {
	path, err := env.Path(env.ScratchKey("absent"))
	if !st.Assert(err == nil, "scratch path: %v\n", err) {
		return
	}

	var sb unix.Stat_t
	err = unix.Stat(path, &sb)
	st.Assert(errors.Is(err, unix.ENOENT), "stat of missing path: %v\n", err)
}
