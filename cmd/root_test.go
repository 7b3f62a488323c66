package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gnames/degportal/internal/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "degportal", cmd.Use,
		"Command name should be degportal")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3")
	assert.Contains(t, output, "abc123")
	assert.NotContains(t, output, "degportal version:",
		"Should use custom version template")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "DEGportal")
	assert.Contains(t, helpText, "catalog.yaml")
	assert.Contains(t, helpText, "DEGPORTAL_")
}

// TestGetRootCmd_Settings verifies bootstrap and
// error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

// TestGetRootCmd_Subcommands verifies all commands
// are registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{"genes", "publications", "browse", "fetch", "serve"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.RunE, name)
	}

	sub, _, err := cmd.Find([]string{"pubs"})
	require.NoError(t, err)
	assert.Equal(t, "publications", sub.Name(), "pubs is an alias")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestInitEnvVars verifies environment variables
// override config fields.
func TestInitEnvVars(t *testing.T) {
	t.Setenv("DEGPORTAL_SERVER_PORT", "9090")
	t.Setenv("DEGPORTAL_SIGNIFICANCE_P_VALUE", "0.01")

	home := t.TempDir()
	require.NoError(t, ensureTestConfig(home))

	res, err := initConfig(home)
	require.NoError(t, err)
	assert.Equal(t, 9090, res.Server.Port)
	assert.Equal(t, 0.01, res.Significance.PValue)
	assert.Equal(t, 25, res.Browse.PageSize, "value from config.yaml")
}

func ensureTestConfig(home string) error {
	if err := iofs.EnsureDirs(home); err != nil {
		return err
	}
	return iofs.EnsureConfigFile(home)
}
