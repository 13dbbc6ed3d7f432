package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestPoliciesListsEveryPolicy(t *testing.T) {
	out := execute(t, "policies")
	for _, want := range []string{"econophysics", "capitalism", "fascism", "communism", "patron", "ubi", "powerful leaders"} {
		if !strings.Contains(out, want) {
			t.Errorf("policies output missing %q", want)
		}
	}
}

func TestRunArchiveAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	out := execute(t, "run", "--policy", "equal wealth distribution", "--population", "20", "--steps", "5", "--seed", "7", "--db", db, "--label", "smoke")
	for _, want := range []string{"Policy:        communism", "Steps:         5", "Seed:          7", "Archived as run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("run output missing %q:\n%s", want, out)
		}
	}

	list := execute(t, "runs", "--db", db)
	if !strings.Contains(list, "smoke") || !strings.Contains(list, "communism") {
		t.Fatalf("runs output missing archived run:\n%s", list)
	}
}

func TestCompareSubset(t *testing.T) {
	out := execute(t, "compare", "--policies", "econophysics,ubi", "--population", "10", "--steps", "3", "--seed", "3")
	if !strings.Contains(out, "econophysics") || !strings.Contains(out, "ubi") {
		t.Fatalf("compare output missing policies:\n%s", out)
	}
	if strings.Contains(out, "fascism") {
		t.Fatalf("compare ran a policy that was not requested:\n%s", out)
	}
}

func TestTopShare(t *testing.T) {
	got := topShare([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 11}, 0.1, 20)
	if got != 0.55 {
		t.Fatalf("top share %v, want 0.55", got)
	}
}
