package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "gameday" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gameday")
	}

	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range []string{"analyze", "plan"} {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestPlanCommand(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"plan", "--home", "Buffalo Bills", "--away", "Miami Dolphins"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("plan: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Execution plan") {
		t.Errorf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "fetch_home_games") || !strings.Contains(out, "predict") {
		t.Errorf("missing nodes in output:\n%s", out)
	}
	// Fetches are listed before the analyzers that consume them.
	if strings.Index(out, "fetch_forecast") > strings.Index(out, "analyze_weather") {
		t.Errorf("fetch_forecast should precede analyze_weather:\n%s", out)
	}
}

func TestAnalyzeRequiresAPIKey(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "--home", "Buffalo Bills", "--away", "Miami Dolphins"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("analyze should fail without an API key")
	}
	if !strings.Contains(err.Error(), "sportsdata.api_key") {
		t.Errorf("error should name the missing key: %v", err)
	}
}
