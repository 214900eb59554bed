package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func runCLI(t *testing.T, args ...string) (int, error) {
	t.Helper()

	exitCode := -1
	prevExiter, prevErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(code int) { exitCode = code }
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter, cli.ErrWriter = prevExiter, prevErrWriter
	})

	a := newCLI()
	a.Writer = io.Discard
	err := run(a, append([]string{"rates"}, args...))
	return exitCode, err
}

func TestCLI_Commands(t *testing.T) {
	a := newCLI()

	var names []string
	for _, c := range a.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"fetch", "watch", "serve"}, names)
}

func TestCLI_MissingDays(t *testing.T) {
	code, err := runCLI(t, "fetch")
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, err.Error(), "exactly one argument <days> is required")
}

func TestCLI_InvalidDays(t *testing.T) {
	code, err := runCLI(t, "ten")
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, err.Error(), `invalid int value: "ten"`)
}

func TestCLI_UnknownOutput(t *testing.T) {
	code, err := runCLI(t, "fetch", "--output", "xml", "1")
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestCLI_TooManyDaysExitsCleanly(t *testing.T) {
	t.Setenv("FETCH_MAX_DAYS", "10")
	t.Setenv("LOG_LEVEL", "error")

	code, err := runCLI(t, "11")
	assert.NoError(t, err)
	assert.Equal(t, -1, code)
}

func TestCLI_NegativeDays(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	tests := []struct {
		name string
		args []string
	}{
		{name: "root", args: []string{"-3"}},
		{name: "fetch with flags", args: []string{"fetch", "-o", "json", "-3"}},
		{name: "explicit terminator", args: []string{"--", "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := runCLI(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, -1, code)
		})
	}
}

func TestNegativeDaysArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "root", args: []string{"rates", "-3"}, expected: []string{"rates", "--", "-3"}},
		{name: "subcommand", args: []string{"rates", "fetch", "-o", "json", "-3"}, expected: []string{"rates", "fetch", "-o", "json", "--", "-3"}},
		{name: "positive", args: []string{"rates", "3"}, expected: []string{"rates", "3"}},
		{name: "already terminated", args: []string{"rates", "--", "-3"}, expected: []string{"rates", "--", "-3"}},
		{name: "flag value", args: []string{"rates", "serve", "--workers", "-1"}, expected: []string{"rates", "serve", "--workers", "-1"}},
		{name: "not a number", args: []string{"rates", "-x"}, expected: []string{"rates", "-x"}},
		{name: "program only", args: []string{"rates"}, expected: []string{"rates"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, negativeDaysArgs(tt.args))
		})
	}
}
