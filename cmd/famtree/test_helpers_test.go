package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"famtree/internal/config"
	"famtree/internal/testsupport"
)

const cliFamily = "0 HEAD\n" +
	"0 @I1@ INDI\n" +
	"1 NAME Karl /Weber/\n" +
	"1 SEX M\n" +
	"1 BIRT\n" +
	"2 DATE ABT 1850\n" +
	"1 FAMS @F1@\n" +
	"0 @I2@ INDI\n" +
	"1 NAME Greta /Braun/\n" +
	"1 SEX F\n" +
	"1 FAMS @F1@\n" +
	"0 @I3@ INDI\n" +
	"1 NAME Otto /Weber/\n" +
	"1 SEX M\n" +
	"1 FAMC @F1@\n" +
	"0 @F1@ FAM\n" +
	"1 HUSB @I1@\n" +
	"1 WIFE @I2@\n" +
	"1 CHIL @I3@\n" +
	"0 TRLR\n"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithGEDCOM(cliFamily))
	t.Setenv("HOME", filepath.Join(testsupport.BaseDir(cfg), "home"))
	t.Setenv("FAMTREE_GEDCOM", "")

	configPath := filepath.Join(testsupport.BaseDir(cfg), "famtree.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ngedcom_file = %q\noutput_dir = %q\nstate_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Paths.GEDCOMFile,
		cfg.Paths.OutputDir,
		cfg.Paths.StateDir,
	)
	testsupport.WriteText(t, path, content)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
