package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yigit/lrms/internal/pkg/auth"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"argument", "", []string{"hash-password", "secret123"}},
		{"stdin", "secret123\n", []string{"hash-password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			hash := strings.TrimSpace(out)
			if !auth.CheckPassword(hash, "secret123") {
				t.Fatalf("output %q is not a hash of the password", hash)
			}
		})
	}
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	if _, err := run(t, "", "hash-password", "short"); err == nil {
		t.Fatal("expected an error for a short password")
	}
}

func TestMigrateList(t *testing.T) {
	out, err := run(t, "", "migrate", "--list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "001\t001_init.sql") {
		t.Fatalf("expected the init migration in %q", out)
	}
}
