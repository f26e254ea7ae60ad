// AngelaMos | 2026
// storectl_test.go

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeygen(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"keygen", "--private", privatePath, "--public", publicPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("keygen error = %v", err)
	}

	for _, path := range []string{privatePath, publicPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !bytes.Contains(data, []byte("-----BEGIN")) {
			t.Errorf("%s is not PEM", path)
		}
	}
	if !strings.Contains(out.String(), privatePath) {
		t.Errorf("output = %q", out.String())
	}
}

func TestPromoteRequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"promote"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--email") {
		t.Errorf("error = %v", err)
	}
}
