package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
	songsPath  string
}

func setupCLITestEnv(t *testing.T, songs int) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.yaml"),
		outputDir:  filepath.Join(base, "output"),
		songsPath:  filepath.Join(base, "songs.csv"),
	}

	var list strings.Builder
	list.WriteString("title,artist,duration\n")
	for i := 1; i <= songs; i++ {
		fmt.Fprintf(&list, "Song %d,Artist %d,3:%02d\n", i, i, i)
	}
	require.NoError(t, os.WriteFile(env.songsPath, []byte(list.String()), 0644))

	configContent := fmt.Sprintf(`
log_level: 8
songs: %s
game:
  rows: 2
  columns: 3
  tickets: 15
  lead_in: 5s
storage:
  type: local
  output_dir: %s
`, env.songsPath, env.outputDir)
	require.NoError(t, os.WriteFile(env.configPath, []byte(configContent), 0644))

	return env
}

func (e *cliTestEnv) run(args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateAndCheck(t *testing.T) {
	env := setupCLITestEnv(t, 17)

	out, err := env.run("generate", "--game-id", "test-game")
	require.NoError(t, err)
	assert.Contains(t, out, "Game test-game: 17 songs, 15 tickets")
	assert.Contains(t, out, `"stage":"complete"`)
	assert.Contains(t, out, `"data":{"gameID":"test-game","mode":"bingo","songs":17,"tickets":15}`)
	assert.FileExists(t, filepath.Join(env.outputDir, "test-game", "gameTracks.json"))
	assert.FileExists(t, filepath.Join(env.outputDir, "test-game", "ticketTracks"))

	checker, err := os.ReadFile(filepath.Join(env.outputDir, "test-game", "ticketTracks"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(checker)), "\n"), 15)

	out, err = env.run("check", "test-game", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket 1 wins on track")

	out, err = env.run("check", "test-game", "1", "--after", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ticket 1 has not won after track 1")

	_, err = env.run("check", "test-game", "99")
	assert.ErrorContains(t, err, "unknown ticket")

	_, err = env.run("check", "other-game", "1")
	assert.ErrorContains(t, err, "game other-game not found")

	_, err = env.run("generate", "--game-id", "test-game")
	assert.ErrorContains(t, err, "already exists")

	_, err = env.run("generate", "--game-id", "test-game", "--force")
	assert.NoError(t, err)
}

func TestGenerateQuiz(t *testing.T) {
	env := setupCLITestEnv(t, 10)

	out, err := env.run("generate", "--game-id", "quiz", "--mode", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Song 10")
	assert.FileExists(t, filepath.Join(env.outputDir, "quiz", "gameTracks.json"))
	assert.NoFileExists(t, filepath.Join(env.outputDir, "quiz", "ticketTracks"))

	_, err = env.run("check", "quiz", "1")
	assert.ErrorContains(t, err, "game quiz has no ticketTracks file (found: quiz/gameTracks.json)")
}

func TestGenerateRejectsInvalidGames(t *testing.T) {
	env := setupCLITestEnv(t, 17)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"too few songs", []string{"--rows", "3", "--columns", "5"}, "at least 23 songs are required"},
		{"too few tickets", []string{"--tickets", "10"}, "at least 15 tickets are required"},
		{"unknown mode", []string{"--mode", "karaoke"}, "unknown game mode"},
		{"clip mode", []string{"--mode", "clip"}, "not a game mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(append([]string{"generate", "--game-id", "bad"}, tt.args...)...)
			assert.ErrorContains(t, err, tt.errMsg)
			assert.NoDirExists(t, filepath.Join(env.outputDir, "bad"))
		})
	}
}

func TestCombinations(t *testing.T) {
	env := setupCLITestEnv(t, 17)

	out, err := env.run("combinations", "17", "--rows", "3", "--columns", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Minimum songs: 23")
	assert.Contains(t, out, "Maximum tickets from 17 songs: 136")

	out, err = env.run("combinations", "17")
	require.NoError(t, err)
	assert.Contains(t, out, "2x3 tickets (6 songs each)")

	_, err = env.run("combinations", "lots")
	assert.Error(t, err)
}
