// ABOUTME: Script tests for the host commands
// ABOUTME: Runs testdata/script/*.txt against a manager on a null device
package host

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerials-audio/acaudio/pkg/acaudio"
	"github.com/aerials-audio/acaudio/pkg/audio/output"
	"github.com/stretchr/testify/require"
	"rsc.io/script"
	"rsc.io/script/scripttest"
)

func TestScripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "script", "*.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txt")
		t.Run(name, func(t *testing.T) {
			dev := output.NewNull(48000, 2)
			m, err := acaudio.New(acaudio.Config{Device: dev})
			require.NoError(t, err)
			defer m.Close()

			e := New(m, dev).Engine()
			s, err := script.NewState(context.Background(), t.TempDir(), nil)
			require.NoError(t, err)

			f, err := os.Open(file)
			require.NoError(t, err)
			defer f.Close()

			scripttest.Run(t, e, s, file, f)
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	dev := output.NewNull(48000, 2)
	m, err := acaudio.New(acaudio.Config{Device: dev})
	require.NoError(t, err)
	defer m.Close()

	e := New(m, dev).Engine()
	for _, name := range []string{"resource", "unit", "play", "seek", "preview", "activate", "advance", "tone", "stats"} {
		require.Contains(t, e.Cmds, name)
	}
	// Default commands stay available
	require.Contains(t, e.Cmds, "stdout")
	require.Contains(t, e.Cmds, "cp")
}
