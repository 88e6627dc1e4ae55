package main

import (
	"testing"
)

func TestNewAppWiresComponents(t *testing.T) {
	t.Setenv("CBX_HOME", t.TempDir())

	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}

	if a.cfg == nil || a.logger == nil {
		t.Fatal("config and logger must be wired")
	}
	if a.loader == nil || a.cache == nil || a.dispatcher == nil || a.exporter == nil {
		t.Fatal("all components must be wired")
	}
	if a.cfg.Loader.MaxTokens != 900000 {
		t.Errorf("default maxTokens = %d, want 900000", a.cfg.Loader.MaxTokens)
	}
}
