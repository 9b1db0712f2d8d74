package util_test

import (
	"testing"
	"time"

	util "github.com/saulo-duarte/taskflow/internal/utils"
)

func TestFormat(t *testing.T) {
	t.Cleanup(func() { util.SetLocation("") })

	if err := util.SetLocation("America/Sao_Paulo"); err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ts := time.Date(2024, 3, 5, 17, 7, 0, 0, time.UTC)
	if got := util.Format(ts, "02 Jan 2006 15:04"); got != "05 Mar 2024 14:07" {
		t.Errorf("unexpected local time %q", got)
	}
	if got := util.Format(time.Time{}, time.RFC3339); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}

	if err := util.SetLocation("Not/AZone"); err == nil {
		t.Errorf("expected an error for an unknown zone")
	}
}
