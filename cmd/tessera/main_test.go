package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landingPlan = `title: Landing
steps:
  - module: header-content-footer
  - at: 1
    module: 1x2
  - at: 0
    content: Site title
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildCommand(t *testing.T) {
	out, err := execute(t, "build", "--assertions", writePlan(t, landingPlan))
	require.NoError(t, err)
	assert.Contains(t, out, "flex-direction: column")
	assert.Contains(t, out, ">Site title<")
	assert.NotContains(t, out, "<html")
}

func TestBuildCommand_Document(t *testing.T) {
	t.Cleanup(func() { _ = buildCmd.Flags().Set("document", "false") })
	out, err := execute(t, "build", "--document", writePlan(t, landingPlan))
	require.NoError(t, err)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "<title>Landing</title>")
	assert.Contains(t, out, ">Site title<")
}

func TestBuildCommand_RejectedStep(t *testing.T) {
	plan := "steps:\n  - module: 2x2\n  - module: 1x2\n"
	_, err := execute(t, "build", writePlan(t, plan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", writePlan(t, landingPlan))
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `n_1[["1x2 Double Row"]]`)
}

func TestModulesCommand(t *testing.T) {
	out, err := execute(t, "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "header-content-footer")
	assert.Contains(t, out, "Double Column")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tessera version")
}
