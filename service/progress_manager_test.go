package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressManager_NonInteractiveWriter(t *testing.T) {
	pm := NewProgressManager("Scanning")
	var buf bytes.Buffer
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())
	pm.Initialize(3)
	pm.Start()
	pm.Update(1, 3)
	pm.Complete(true)
	pm.Close()
	assert.Empty(t, buf.String())
}

func TestNoOpProgressManager(t *testing.T) {
	pm := NewNoOpProgressManager()
	pm.Initialize(10)
	pm.Start()
	pm.Update(5, 10)
	pm.Complete(true)
	assert.False(t, pm.IsInteractive())
}
