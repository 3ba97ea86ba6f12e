package root

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/config"
	"github.com/kosharny/ThunderpickMove/internal/engine"
)

func useTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	c := config.DefaultConfig()
	c.Database = filepath.Join(dir, "tm.db")
	c.MediaDir = filepath.Join(dir, "media")
	c.Timezone = "UTC"
	require.NoError(t, c.Validate())

	cfg, logger = c, zap.NewNop()
	t.Cleanup(func() { cfg, logger = nil, nil })
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckInCommand(t *testing.T) {
	useTestConfig(t)

	out, err := execute(t, newCheckInCmd(), "", "--posture", "1", "--face", "1", "--energy", "1")
	require.NoError(t, err)
	assert.Contains(t, out, string(engine.StatusAlpha))
	assert.Contains(t, out, "0 → 5")

	_, err = execute(t, newCheckInCmd(), "", "--posture", "2")
	assert.Error(t, err)
}

func TestMoveCommandOncePerDay(t *testing.T) {
	useTestConfig(t)

	out, err := execute(t, newMoveCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")

	out, err = execute(t, newMoveCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "already done")
}

func TestJournalCommands(t *testing.T) {
	useTestConfig(t)

	_, err := execute(t, newJournalCmd(), "", "add", "--mood", "stress", "first")
	require.NoError(t, err)
	_, err = execute(t, newJournalCmd(), "", "add", "second")
	require.NoError(t, err)
	_, err = execute(t, newJournalCmd(), "", "add", "--mood", "bored", "third")
	assert.Error(t, err)

	out, err := execute(t, newJournalCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")

	_, err = execute(t, newJournalCmd(), "", "delete", "1")
	require.NoError(t, err)
	out, err = execute(t, newJournalCmd(), "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "first")

	_, err = execute(t, newJournalCmd(), "", "delete", "9")
	assert.Error(t, err)

	out, err = execute(t, newStatusCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Journal entries: 2")
}

func TestJournalShowReadsAttachments(t *testing.T) {
	useTestConfig(t)

	photo := filepath.Join(t.TempDir(), "pose.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg!"), 0o644))
	_, err := execute(t, newJournalCmd(), "", "add", "--photo", photo, "mirror work")
	require.NoError(t, err)

	out, err := execute(t, newJournalCmd(), "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "mirror work")
	assert.Contains(t, out, cfg.MediaDir)
	assert.Contains(t, out, "5 B")

	files, err := os.ReadDir(cfg.MediaDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, os.Remove(filepath.Join(cfg.MediaDir, files[0].Name())))

	out, err = execute(t, newJournalCmd(), "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(missing)")

	_, err = execute(t, newJournalCmd(), "", "show", "7")
	assert.Error(t, err)
}

func TestThemeRequiresPurchase(t *testing.T) {
	useTestConfig(t)

	_, err := execute(t, newThemeCmd(), "", "set", string(engine.ThemeNeonCyber))
	require.Error(t, err)
	assert.Contains(t, err.Error(), engine.ProductNeonTheme)

	out, err := execute(t, newStoreCmd(), "", "buy", "--simulate", "cancelled", engine.ProductNeonTheme)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	_, err = execute(t, newStoreCmd(), "", "buy", engine.ProductNeonTheme)
	require.NoError(t, err)

	_, err = execute(t, newThemeCmd(), "", "set", string(engine.ThemeNeonCyber))
	require.NoError(t, err)

	out, err = execute(t, newStoreCmd(), "", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "owned")
}

func TestBattleCommandReadsAnswers(t *testing.T) {
	useTestConfig(t)

	out, err := execute(t, newBattleCmd(), "1\n2\n", "--rounds", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:")
	assert.Contains(t, out, "/2")
}

func TestPickOption(t *testing.T) {
	opts := []string{"Open", "Closed"}
	assert.Equal(t, "Closed", pickOption(opts, " 2 "))
	assert.Equal(t, "Open", pickOption(opts, "open"))
	assert.Equal(t, "7", pickOption(opts, "7"))
}

func TestResolveEntryID(t *testing.T) {
	entries := []engine.JournalEntry{{ID: "abcd1234"}, {ID: "abcd9999"}, {ID: "ffff0000"}}
	assert.Equal(t, "ffff0000", resolveEntryID(entries, "ffff"))
	assert.Equal(t, "abcd", resolveEntryID(entries, "abcd"), "ambiguous prefix stays as is")
	assert.Equal(t, "abcd1234", resolveEntryID(entries, "abcd1234"))
}
