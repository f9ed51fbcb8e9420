package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Run("unset_returns_default", func(t *testing.T) {
		if got := GetEnv("ORGDIR_TEST_UNSET", "fallback", nil); got != "fallback" {
			t.Fatalf("got %q, want fallback", got)
		}
	})

	t.Run("set_returns_value", func(t *testing.T) {
		t.Setenv("ORGDIR_TEST_SET", "from-env")
		if got := GetEnv("ORGDIR_TEST_SET", "fallback", nil); got != "from-env" {
			t.Fatalf("got %q, want from-env", got)
		}
	})

	t.Run("empty_value_wins_over_default", func(t *testing.T) {
		t.Setenv("ORGDIR_TEST_EMPTY", "")
		if got := GetEnv("ORGDIR_TEST_EMPTY", "fallback", nil); got != "" {
			t.Fatalf("got %q, want empty string", got)
		}
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Run("unset_returns_default", func(t *testing.T) {
		if got := GetEnvAsInt("ORGDIR_TEST_INT_UNSET", 42, nil); got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	})

	t.Run("parses_value", func(t *testing.T) {
		t.Setenv("ORGDIR_TEST_INT", "8000")
		if got := GetEnvAsInt("ORGDIR_TEST_INT", 42, nil); got != 8000 {
			t.Fatalf("got %d, want 8000", got)
		}
	})

	t.Run("unparsable_returns_default", func(t *testing.T) {
		t.Setenv("ORGDIR_TEST_INT_BAD", "not-a-number")
		if got := GetEnvAsInt("ORGDIR_TEST_INT_BAD", 42, nil); got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	})
}
