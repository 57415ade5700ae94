package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FallsBackToBuiltin(t *testing.T) {
	pair := resolve([]Candidate{
		{Family: "Ghost", Regular: "/no/such/regular.ttf", Bold: "/no/such/bold.ttf"},
	})

	assert.Equal(t, BuiltinFamily, pair.Family)
	assert.True(t, pair.Builtin())
}

func TestResolve_FirstCompleteCandidateWins(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "Sans.ttf")
	bold := filepath.Join(dir, "Sans-Bold.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("regular-ttf"), 0o644))
	require.NoError(t, os.WriteFile(bold, []byte("bold-ttf"), 0o644))

	pair := resolve([]Candidate{
		{Family: "Missing", Regular: "/no/such/file.ttf", Bold: bold},
		{Family: "Sans", Regular: regular, Bold: bold},
	})

	assert.Equal(t, "Sans", pair.Family)
	assert.False(t, pair.Builtin())
	assert.Equal(t, []byte("regular-ttf"), pair.Regular)
	assert.Equal(t, []byte("bold-ttf"), pair.Bold)
}

func TestResolve_PartialCandidateSkipped(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "Only.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("x"), 0o644))

	// Bold file missing: the whole candidate is rejected.
	pair := resolve([]Candidate{
		{Family: "Only", Regular: regular, Bold: filepath.Join(dir, "missing.ttf")},
	})

	assert.Equal(t, BuiltinFamily, pair.Family)
}

func TestLoad_Memoized(t *testing.T) {
	first := Load()
	second := Load()

	assert.Equal(t, first.Family, second.Family)
	assert.Equal(t, first.Builtin(), second.Builtin())
}
