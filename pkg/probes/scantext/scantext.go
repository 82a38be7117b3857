// Package scantext probes the platform's formatted text scanning: verb
// semantics, whitespace and newline matching, item counts at EOF, scan-set
// style character-class runs, consumed-offset tracking, and hexadecimal
// float parsing.
package scantext

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/conformd/posixprobe/pkg/check"
	"github.com/conformd/posixprobe/pkg/probe"
)

// New returns the scantext probe.
func New() probe.Probe {
	return probe.Probe{
		Name:    "scantext",
		Summary: "formatted input scanning semantics",
		Run:     run,
	}
}

func run(st *check.State, env *probe.Env) {
	verbs(st)
	itemCounts(st)
	endOfInput(st)
	scanSets(st)
	offsets(st)
	hexFloats(st)
	fileScan(st, env)
}

func verbs(st *check.State) {
	var a, b int
	n, err := fmt.Sscanf("12 34", "%d %d", &a, &b)
	st.Assert(n == 2 && err == nil, "Sscanf(\"12 34\"): n=%d err=%v\n", n, err)
	st.Val(int64(a), "==", 12)
	st.Val(int64(b), "==", 34)

	// A blank in the format matches any run of spaces, and %d itself skips
	// leading space, so both spellings parse the same input.
	n, err = fmt.Sscanf("7   8", "%d%d", &a, &b)
	st.Assert(n == 2 && err == nil, "Sscanf(\"7   8\", \"%%d%%d\"): n=%d err=%v\n", n, err)
	st.Val(int64(a), "==", 7)
	st.Val(int64(b), "==", 8)

	var s string
	n, err = fmt.Sscanf("hello world", "%s", &s)
	st.Assert(n == 1 && err == nil, "Sscanf(%%s): n=%d err=%v\n", n, err)
	st.Eq(s, "hello")

	// %c is the one verb that does not discard leading space.
	var r rune
	n, err = fmt.Sscanf(" x", "%c", &r)
	st.Assert(n == 1 && err == nil, "Sscanf(%%c): n=%d err=%v\n", n, err)
	st.Val(int64(r), "==", int64(' '))

	// A newline in the format must match a newline in the input.
	n, err = fmt.Sscanf("1\n2", "%d\n%d", &a, &b)
	st.Assert(n == 2 && err == nil, "newline-matched scan: n=%d err=%v\n", n, err)
	st.Val(int64(a), "==", 1)
	st.Val(int64(b), "==", 2)

	n, err = fmt.Sscanf("1 2", "%d\n%d", &a, &b)
	st.Assert(err != nil, "format newline against input space should fail, n=%d\n", n)
}

func itemCounts(st *check.State) {
	var a, b int
	n, err := fmt.Sscanf("42", "%d %d", &a, &b)
	st.Val(int64(n), "==", 1)
	st.Assert(err != nil, "short input must report an error\n")
	st.Val(int64(a), "==", 42)

	// An unknown verb is rejected rather than silently skipped; there is no
	// %n in this scanner.
	n, err = fmt.Sscanf("x", "%n", &a)
	st.Assert(err != nil, "unknown verb %%n should error, n=%d\n", n)
}

func endOfInput(st *check.State) {
	var a int
	n, err := fmt.Sscanf("", "%d", &a)
	st.Val(int64(n), "==", 0)
	st.Assert(err != nil, "scan of empty input must report an error\n")

	var s string
	n, err = fmt.Sscanf("   ", "%s", &s)
	st.Val(int64(n), "==", 0)
	st.Assert(err != nil, "scan of blank input must report an error\n")
}

// spanClass reads the longest run of runes satisfying class and leaves the
// first non-matching rune unread: the %[...] scan-set contract.
func spanClass(r io.RuneScanner, class func(rune) bool) (string, error) {
	var sb strings.Builder
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		if !class(c) {
			if err := r.UnreadRune(); err != nil {
				return sb.String(), err
			}
			return sb.String(), nil
		}
		sb.WriteRune(c)
	}
}

func scanSets(st *check.State) {
	// %[a-z] over "abc123": matches "abc", stops at '1'.
	in := strings.NewReader("abc123")
	span, err := spanClass(in, func(r rune) bool { return r >= 'a' && r <= 'z' })
	st.Assert(err == nil, "scan-set span: %v\n", err)
	st.Eq(span, "abc")
	next, _, err := in.ReadRune()
	st.Assert(err == nil, "read after span: %v\n", err)
	st.Val(int64(next), "==", int64('1'))

	// %[^,] over "key,value": everything up to the delimiter.
	in = strings.NewReader("key,value")
	span, err = spanClass(in, func(r rune) bool { return r != ',' })
	st.Assert(err == nil, "negated scan-set span: %v\n", err)
	st.Eq(span, "key")

	// A scan-set that matches nothing consumes nothing.
	in = strings.NewReader("123")
	span, err = spanClass(in, unicode.IsLetter)
	st.Assert(err == nil, "empty scan-set span: %v\n", err)
	st.Eq(span, "")
	st.Val(int64(in.Len()), "==", 3)

	// Input exhausted inside the set is a clean stop, not an error.
	in = strings.NewReader("xyz")
	span, err = spanClass(in, unicode.IsLetter)
	st.Assert(err == nil, "scan-set span to EOF: %v\n", err)
	st.Eq(span, "xyz")
}

// countingReader tracks bytes delivered to the scanner, standing in for the
// %n offset directive.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func offsets(st *check.State) {
	cr := &countingReader{r: strings.NewReader("123 456")}

	var a int
	n, err := fmt.Fscanf(cr, "%d", &a)
	st.Assert(n == 1 && err == nil, "first offset scan: n=%d err=%v\n", n, err)
	st.Val(int64(a), "==", 123)
	// The scanner may hold one rune of lookahead, so the count is a lower
	// bound on the token, never less.
	st.Val(cr.n, ">=", 3)

	var b int
	n, err = fmt.Fscanf(cr, "%d", &b)
	st.Assert(n == 1 && err == nil, "second offset scan: n=%d err=%v\n", n, err)
	st.Val(int64(b), "==", 456)
	st.Val(cr.n, "==", int64(len("123 456")))
}

func hexFloats(st *check.State) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0x1p-2", 0.25},
		{"0x1.8p1", 3.0},
		{"0X.8p1", 1.0},
		{"-0x2p-1", -1.0},
		{"0x1p0", 1.0},
	}
	for _, tc := range cases {
		f, err := strconv.ParseFloat(tc.in, 64)
		if st.Assert(err == nil, "ParseFloat(%q): %v\n", tc.in, err) {
			st.Assert(f == tc.want, "ParseFloat(%q) = %g, want %g\n", tc.in, f, tc.want)
		}
	}

	// A hex mantissa without an exponent is malformed.
	_, err := strconv.ParseFloat("0x1p", 64)
	st.Assert(err != nil, "ParseFloat(\"0x1p\") should be rejected\n")
	_, err = strconv.ParseFloat("0x1", 64)
	st.Assert(err != nil, "ParseFloat(\"0x1\") without exponent should be rejected\n")
}

// fileScan runs the same scanning against a real file descriptor, the way
// the original programs drove fscanf from an open stream.
func fileScan(st *check.State, env *probe.Env) {
	if !st.Assert(env.Store != nil, "no workspace for file scan\n") {
		return
	}
	key := "digits.txt"
	if !st.Assert(env.Store.Put(key, []byte("10 20 30\n")) == nil, "failed to write scan fixture\n") {
		return
	}
	path, err := env.Path(key)
	if !st.Assert(err == nil, "fixture path: %v\n", err) {
		return
	}

	f, err := os.Open(path)
	if !st.Assert(err == nil, "open fixture: %v\n", err) {
		return
	}
	defer f.Close()

	var a, b, c int
	n, err := fmt.Fscanf(f, "%d %d %d", &a, &b, &c)
	st.Assert(n == 3 && err == nil, "file scan: n=%d err=%v\n", n, err)
	st.Val(int64(a+b+c), "==", 60)
}
