package testutil

import "testing"

// Candidate script bodies. The fake tool's reference output equals the
// fixture bytes, so echoing the fixture is a correct candidate.
const (
	CandidateMatch    = "cat \"$1\"\n"
	CandidateMismatch = "cat \"$1\"\nprintf 'X'\n"
	CandidateFail     = "echo 'ERROR: decode failed' >&2\nexit 3\n"
	CandidateStderr   = "echo '# decoding' >&2\ncat \"$1\"\n"
)

// WriteCandidate writes an executable shell script named name into dir and
// returns its absolute path.
func WriteCandidate(t testing.TB, dir, name, body string) string {
	t.Helper()
	return writeScript(t, dir, name, "#!/bin/sh\n"+body)
}
