package appearance

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_SetNotifiesOnChange(t *testing.T) {
	s := NewStatic(false)
	var got []bool
	s.Subscribe(func(dark bool) { got = append(got, dark) })

	s.Set(false) // unchanged
	s.Set(true)
	s.Set(true) // unchanged
	s.Set(false)

	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, s.PrefersDark())
}

func TestDetect_StaticSources(t *testing.T) {
	tests := []struct {
		source string
		dark   bool
	}{
		{"light", false},
		{"dark", true},
		{"DARK", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			sig, err := Detect(tt.source, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.dark, sig.PrefersDark())
		})
	}
}

func TestDetect_Terminal(t *testing.T) {
	sig, err := Detect(SourceTerminal, nil)
	require.NoError(t, err)
	assert.IsType(t, &Terminal{}, sig)
}

func TestDetect_Unknown(t *testing.T) {
	_, err := Detect("sunrise", nil)
	assert.Error(t, err)
}

func TestFallback(t *testing.T) {
	portalErr := errors.New("no session bus")

	tests := []struct {
		name     string
		terminal bool
		want     Signal
	}{
		{name: "terminal attached", terminal: true, want: &Terminal{}},
		{name: "no terminal", terminal: false, want: NewStatic(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := stdoutIsTerminal
			stdoutIsTerminal = func() bool { return tt.terminal }
			t.Cleanup(func() { stdoutIsTerminal = orig })

			sig := fallback(slog.New(slog.NewTextHandler(io.Discard, nil)), portalErr)
			assert.IsType(t, tt.want, sig)
			if !tt.terminal {
				assert.False(t, sig.PrefersDark())
			}
		})
	}
}
