package timeouts

import (
	"testing"
	"time"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: 3 * time.Second})

	if got := Short(); got != 3*time.Second {
		t.Errorf("Short() = %v, want %v", got, 3*time.Second)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want %v (zero override must keep current)", got, DefaultMedium)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Second, Short: time.Second, Medium: time.Second})
	Reset()

	got := []time.Duration{Ping(), Short(), Medium()}
	want := []time.Duration{DefaultPing, DefaultShort, DefaultMedium}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("after Reset got %v, want %v", got, want)
			break
		}
	}
}
