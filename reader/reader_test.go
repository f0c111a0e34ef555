package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.peri")
	if err := os.WriteFile(path, []byte("print 1;\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, name, err := ReadSource(path, nil)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src != "print 1;\n" || name != path {
		t.Fatalf("got %q from %q", src, name)
	}
}

func TestReadSourceStdin(t *testing.T) {
	src, name, err := ReadSource(Stdin, strings.NewReader("x = 1;"))
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src != "x = 1;" || name != "<stdin>" {
		t.Fatalf("got %q from %q", src, name)
	}
}

func TestReadSourceMissing(t *testing.T) {
	if _, _, err := ReadSource(filepath.Join(t.TempDir(), "nope.peri"), nil); err == nil {
		t.Fatalf("expected an error")
	}
}
