package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExec_PersistsAcrossRuns(t *testing.T) {
	dataDir := isolate(t)

	r := mustRun(t, "", "--data-dir", dataDir, "exec", "add", "n/Bob Choo", "p/22222222", "mod/CS2103T")
	if !strings.Contains(r.stdout, "New person added: Bob Choo") {
		t.Errorf("unexpected add output:\n%s", r.stdout)
	}

	r = mustRun(t, "", "--data-dir", dataDir, "list")
	for _, want := range []string{"Listed all persons", "Bob Choo", "22222222", "module: CS2103T"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestExec_File(t *testing.T) {
	dataDir := isolate(t)
	script := filepath.Join(t.TempDir(), "contacts.txt")
	content := `# seed contacts
add n/Alice Pauline mod/CS2101

add n/Benson Meier cca/NES
search cca/nes
`
	if err := os.WriteFile(script, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	r := mustRun(t, "", "--data-dir", dataDir, "exec", "--file", script)
	for _, want := range []string{
		"New person added: Alice Pauline",
		"New person added: Benson Meier",
		"1 persons listed!",
	} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestExec_Stdin(t *testing.T) {
	isolate(t)

	r := mustRun(t, "add n/Alice Pauline\nlist\n", "--ephemeral", "exec", "-f", "-")
	if !strings.Contains(r.stdout, "Alice Pauline") {
		t.Errorf("stdin lines were not executed:\n%s", r.stdout)
	}
}

func TestExec_Failures(t *testing.T) {
	isolate(t)
	script := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(script, []byte("add p/123\nadd n/Carl Kurz\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
		wantStdout string
		skipStdout string
	}{
		{
			name:       "stops at first failure",
			args:       []string{"--ephemeral", "exec", "-f", script},
			wantCode:   1,
			wantStderr: "line 1: Invalid command format!",
			skipStdout: "Carl Kurz",
		},
		{
			name:       "keep going",
			args:       []string{"--ephemeral", "exec", "--keep-going", "-f", script},
			wantCode:   1,
			wantStderr: "line 1: Invalid command format!",
			wantStdout: "New person added: Carl Kurz",
		},
		{
			name:       "unknown command",
			args:       []string{"--ephemeral", "exec", "frobnicate"},
			wantCode:   1,
			wantStderr: "Unknown command",
		},
		{
			name:     "nothing to run",
			args:     []string{"--ephemeral", "exec"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			if got := exitCode(r.err); got != tt.wantCode {
				t.Errorf("exit code = %d (%v), want %d", got, r.err, tt.wantCode)
			}
			if !strings.Contains(r.stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, r.stderr)
			}
			if !strings.Contains(r.stdout, tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, r.stdout)
			}
			if tt.skipStdout != "" && strings.Contains(r.stdout, tt.skipStdout) {
				t.Errorf("stdout should not contain %q:\n%s", tt.skipStdout, r.stdout)
			}
		})
	}
}

func TestList_WithKeywords(t *testing.T) {
	dataDir := isolate(t)
	mustRun(t, "", "--data-dir", dataDir, "exec", "add n/Alice Pauline")
	mustRun(t, "", "--data-dir", dataDir, "exec", "add n/Benson Meier")

	r := mustRun(t, "", "--data-dir", dataDir, "list", "n/benson")
	if !strings.Contains(r.stdout, "1 persons listed!") || strings.Contains(r.stdout, "Alice") {
		t.Errorf("list n/benson should show only Benson:\n%s", r.stdout)
	}
}

func TestExec_MetricsTextfile(t *testing.T) {
	isolate(t)
	textfile := filepath.Join(t.TempDir(), "connectus.prom")
	t.Setenv("CONNECTUS_METRICS_TEXTFILE", textfile)

	mustRun(t, "", "--ephemeral", "exec", "add n/Alice Pauline r/friend")

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, want := range []string{
		`connectus_commands_total{command="add",outcome="success"} 1`,
		"connectus_persons 1",
		`connectus_tags{category="remark"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
