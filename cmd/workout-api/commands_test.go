package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailPreviewCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"email-preview", "athlete_registered"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Ana Souza")
}

func TestEmailPreviewUnknownTemplate(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"email-preview", "welcome"})

	assert.Error(t, root.Execute())
}
