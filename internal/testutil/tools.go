// Package testutil provides stand-ins for the reference tool and the binary
// under test, written as POSIX shell scripts into a test's temp directory.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// CallsLog is the file, next to the fake tool, where every invocation's
// arguments are appended one line per call.
const CallsLog = "calls.log"

// FakeTool selects which fake reference tool commands fail.
type FakeTool struct {
	FailGenerate bool
	FailIdentify bool
	FailConvert  bool
}

// RequireShell skips the test when /bin/sh scripts cannot run.
func RequireShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteFakeTool writes a script that answers the three command shapes the
// harness sends to GraphicsMagick:
//
//	convert -size NxN xc: +noise Random PNG8:<out>  writes "PNG8 NxN\n" to <out>
//	identify <file>                                 prints a line to stdout
//	convert <file> PNG24:-                          copies <file> to stdout
//	convert - <out>                                 copies stdin to <out>
//
// So the reference output always equals the fixture bytes. Returns the
// script's absolute path.
func WriteFakeTool(t testing.TB, dir string, opts FakeTool) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "echo \"$*\" >> '%s'\n", filepath.Join(dir, CallsLog))
	b.WriteString("case \"$1\" in\n")

	b.WriteString("identify)\n")
	if opts.FailIdentify {
		b.WriteString("\techo \"identify: unable to open $2\" >&2\n\texit 1\n")
	} else {
		b.WriteString("\techo \"$2 PNG fake\"\n\texit 0\n")
	}
	b.WriteString("\t;;\n")

	b.WriteString("convert)\n")
	b.WriteString("\tif [ \"$2\" = \"-size\" ]; then\n")
	if opts.FailGenerate {
		b.WriteString("\t\techo 'convert: noise generation failed' >&2\n\t\texit 1\n")
	} else {
		b.WriteString("\t\tprintf 'PNG8 %s\\n' \"$3\" > \"${7#PNG8:}\"\n\t\texit 0\n")
	}
	b.WriteString("\tfi\n")
	b.WriteString("\tif [ \"$2\" = \"-\" ]; then\n")
	if opts.FailConvert {
		b.WriteString("\t\tcat > /dev/null\n\t\techo 'convert: no encode delegate' >&2\n\t\texit 1\n")
	} else {
		b.WriteString("\t\tcat > \"$3\"\n\t\texit 0\n")
	}
	b.WriteString("\tfi\n")
	b.WriteString("\tcat \"$2\"\n\texit 0\n")
	b.WriteString("\t;;\n")

	b.WriteString("*)\n\techo \"unknown command: $1\" >&2\n\texit 2\n\t;;\n")
	b.WriteString("esac\n")

	return writeScript(t, dir, "gm", b.String())
}

// Calls returns the fake tool invocations recorded in dir, in order.
func Calls(t testing.TB, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, CallsLog))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read calls log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func writeScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs %s: %v", name, err)
	}
	return abs
}
