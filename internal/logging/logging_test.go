package logging

import "testing"

func TestSetup(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warning", " error "} {
		if err := Setup(level); err != nil {
			t.Errorf("Setup(%q): %v", level, err)
		}
	}
	if err := Setup("verbose"); err == nil {
		t.Error("Setup(verbose) succeeded")
	}
	Setup("info")
}

func TestLoggerPrefix(t *testing.T) {
	if got := (Logger{}).prefix(); got != "" {
		t.Errorf("prefix = %q", got)
	}
	if got := (Logger{Prefix: "ship.mwm"}).prefix(); got != "ship.mwm: " {
		t.Errorf("prefix = %q", got)
	}
}
