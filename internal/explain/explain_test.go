package explain

import (
	"strings"
	"testing"
)

func TestTopicDocumentsListsCatalog(t *testing.T) {
	text, err := Topic("documents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"robot (enabled by default)", "course (enabled by default)", "sensors (disabled by default)", "/config/years/{year}/"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
}

func TestTopicUnknown(t *testing.T) {
	_, err := Topic("burn-rate")
	if err == nil || !strings.Contains(err.Error(), "documents, parser, status") {
		t.Fatalf("unexpected error %v", err)
	}
}
