package config

import (
	"testing"
	"time"
)

func TestGetListEnv(t *testing.T) {
	t.Setenv("TEST_ORIGINS", " http://a.example , http://b.example ,")
	got := getListEnv("TEST_ORIGINS", "http://default")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestGetListEnvDefault(t *testing.T) {
	got := getListEnv("TEST_ORIGINS_UNSET", "http://default")
	if len(got) != 1 || got[0] != "http://default" {
		t.Fatalf("unexpected default list: %v", got)
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_TTL", "3")
	if got := getDurationEnv("TEST_TTL", 7, 24*time.Hour); got != 72*time.Hour {
		t.Fatalf("expected 72h, got %v", got)
	}

	t.Setenv("TEST_TTL", "bogus")
	if got := getDurationEnv("TEST_TTL", 7, 24*time.Hour); got != 7*24*time.Hour {
		t.Fatalf("expected default 168h, got %v", got)
	}
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("TEST_FLAG", "true")
	if !getBoolEnv("TEST_FLAG", false) {
		t.Fatal("expected true")
	}

	t.Setenv("TEST_FLAG", "not-a-bool")
	if getBoolEnv("TEST_FLAG", false) {
		t.Fatal("expected default false on parse failure")
	}
}
