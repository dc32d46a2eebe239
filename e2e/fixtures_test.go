//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates an isolated directory for one app run
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteDeck writes a TOML deck with one card per title into the workspace
func (tf *TUITestFramework) WriteDeck(name string, titles ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	for _, title := range titles {
		fmt.Fprintf(&b, "[[card]]\ntitle = %q\ndescription = \"About %s\"\n", title, title)
		fmt.Fprintf(&b, "github = \"https://github.com/acme/%s\"\n\n", strings.ToLower(title))
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
