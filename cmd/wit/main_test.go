package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"version"})
	if err != nil {
		t.Fatalf("run version: %v", err)
	}
	if !strings.Contains(stdout.String(), "wit") {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestRun_VersionJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"-o", "json", "version"})
	if err != nil {
		t.Fatalf("run version: %v", err)
	}
	if !strings.Contains(stdout.String(), `"version"`) {
		t.Errorf("expected JSON output, got %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"-h"}); err != nil {
		t.Fatalf("run -h: %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("expected usage text, got %q", stdout.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"-bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Fatalf("expected unknown flag error, got %v", err)
	}
}

func TestRun_BadOutputFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"-o", "xml", "version"})
	if err == nil || !strings.Contains(err.Error(), "output format") {
		t.Fatalf("expected output format error, got %v", err)
	}
}

func TestRun_MessageRequiresText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &stdout, &stderr, []string{"message"})
	if err == nil || !strings.Contains(err.Error(), "usage: wit message") {
		t.Fatalf("expected usage error, got %v", err)
	}
}
