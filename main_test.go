package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPick_SeededIsReproducible(t *testing.T) {
	a, err := runCmd(t, "pick", "--seed", "7", "-n", "5")
	require.NoError(t, err)
	b, err := runCmd(t, "pick", "--seed", "7", "-n", "5")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	lines := strings.Split(strings.TrimSpace(a), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], " 1. "))
}

func TestPick_DailyUsesDate(t *testing.T) {
	a, err := runCmd(t, "pick", "--daily", "--date", "2024-05-01")
	require.NoError(t, err)
	b, err := runCmd(t, "pick", "--daily", "--date", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, strings.Split(strings.TrimSpace(a), "\n"), 10)

	_, err = runCmd(t, "pick", "--daily", "--date", "May 1st")
	assert.ErrorContains(t, err, "bad --date")
}

func TestPick_CountBeyondCatalog(t *testing.T) {
	out, err := runCmd(t, "pick", "--seed", "3", "-n", "500")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 40)
}

func TestServe_RejectsArgs(t *testing.T) {
	_, err := runCmd(t, "serve", "extra")
	assert.Error(t, err)
}
