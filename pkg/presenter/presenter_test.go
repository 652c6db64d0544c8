package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	t.Run("with context", func(t *testing.T) {
		p, out, errOut := newTestPresenter()
		p.Error(errors.New("boom"), "Failed to install skills")

		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "[ERROR] Failed to install skills: boom")
	})

	t.Run("without context", func(t *testing.T) {
		p, _, errOut := newTestPresenter()
		p.Error(errors.New("boom"), "")

		assert.Equal(t, "[ERROR] boom\n", errOut.String())
	})

	t.Run("nil error produces no output", func(t *testing.T) {
		p, _, errOut := newTestPresenter()
		p.Error(nil, "context")

		assert.Empty(t, errOut.String())
	})
}

func TestMessages(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("installed")
	p.Warning("existing files")
	p.Info("9 skills available")

	assert.Contains(t, out.String(), "✓ installed")
	assert.Contains(t, out.String(), "⚠ existing files")
	assert.Contains(t, out.String(), "9 skills available")
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Code Generation")

	assert.Contains(t, out.String(), "Code Generation\n---------------\n")
}

func TestQuietMode(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)
	assert.True(t, p.IsQuiet())

	p.Success("installed")
	p.Warning("existing files")
	p.Info("details")
	p.Section("title")
	p.Separator()

	assert.Empty(t, out.String())

	// Errors are never suppressed
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
}
