package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gatesimp", cmd.Use)
	assert.Contains(t, cmd.Long, "rewrite rules")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"validate", "rules", "catalog", "simplify", "test", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSimplifyCommandFlags(t *testing.T) {
	t.Setenv(EnvDatabase, "")
	cmd := NewRootCommand()
	simplifyCmd, _, err := cmd.Find([]string{"simplify"})
	require.NoError(t, err)

	dbFlag := simplifyCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	for _, name := range []string{"trace", "verify"} {
		f := simplifyCmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "false", f.DefValue)
	}

	tolFlag := simplifyCmd.Flags().Lookup("tolerance")
	require.NotNil(t, tolFlag)
	assert.Equal(t, "1e-06", tolFlag.DefValue)
}

func TestSimplifyDatabaseFromEnv(t *testing.T) {
	t.Setenv(EnvDatabase, "/tmp/memo.db")
	cmd := NewRootCommand()
	simplifyCmd, _, err := cmd.Find([]string{"simplify"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/memo.db", simplifyCmd.Flags().Lookup("db").DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	require.NotNil(t, historyCmd.Flags().Lookup("rule-set"))
	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "0", limitFlag.DefValue)
}

func TestCatalogCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	catalogCmd, _, err := cmd.Find([]string{"catalog"})
	require.NoError(t, err)

	matricesFlag := catalogCmd.Flags().Lookup("matrices")
	require.NotNil(t, matricesFlag)
	assert.Equal(t, "false", matricesFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "rules", "."})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVerboseLowersLogLevel(t *testing.T) {
	prev := LogLevel.Level()
	t.Cleanup(func() { LogLevel.Set(prev) })
	LogLevel.Set(slog.LevelWarn)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--verbose", "rules", problemPath("pauli")})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, slog.LevelDebug, LogLevel.Level())
}
