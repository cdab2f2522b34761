package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NODEWORLD_CONFIG", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRootCmd_RejectsBadInput(t *testing.T) {
	_, err := execRoot(t, "--headless", "--frames", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--frames")

	_, err = execRoot(t, "лишний")
	assert.Error(t, err, "Позиционные аргументы не принимаются")

	_, err = execRoot(t, "--config", "/нет/такого/файла.yaml")
	assert.Error(t, err)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "map", "headless", "frames"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "Флаг %s", name)
	}
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
	assert.Equal(t, "3", cmd.Flags().Lookup("frames").DefValue)
}
