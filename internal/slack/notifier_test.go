package slack

import (
	"fmt"
	"strings"
	"testing"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/testhelpers"
)

func TestNewNotifier_DisabledWithoutCredentials(t *testing.T) {
	cases := []struct {
		token   string
		channel string
	}{
		{"", ""},
		{"xoxb-token", ""},
		{"", "#data-review"},
	}
	for _, c := range cases {
		n := NewNotifier(c.token, c.channel)
		if n.Enabled() {
			t.Errorf("notifier with token=%q channel=%q must be disabled", c.token, c.channel)
		}
		// A disabled notifier never posts and never errors
		if err := n.NotifyRun(&database.CleaningRun{}, nil); err != nil {
			t.Errorf("disabled NotifyRun returned error: %v", err)
		}
	}
}

func TestNewNotifier_EnabledWithCredentials(t *testing.T) {
	n := NewNotifier("xoxb-token", "#data-review")
	if !n.Enabled() {
		t.Error("expected notifier enabled")
	}
}

func TestFormatRunMessage(t *testing.T) {
	run := &database.CleaningRun{
		OriginalCount:            1250,
		DuplicatePropertiesCount: 3,
		TestPropertiesCount:      1,
		InvalidCount:             2,
	}
	candidates := []database.ReviewCandidate{
		testhelpers.NewCandidateBuilder().WithReviewID("duplicate-0-a").Build(),
		testhelpers.NewCandidateBuilder().WithReviewID("test-0-b").
			WithKind(database.CandidateKindTest).WithAction(database.ActionDelete).Build(),
	}

	message := FormatRunMessage(run, candidates)

	if !strings.Contains(message, "Cleaning pass completed") {
		t.Error("expected header in message")
	}
	if !strings.Contains(message, "Scanned 1,250 properties") {
		t.Errorf("expected formatted count, got: %s", message)
	}
	if !strings.Contains(message, "2 candidate(s) awaiting review") {
		t.Errorf("expected candidate count, got: %s", message)
	}
	if !strings.Contains(message, "`duplicate-0-a` → merge") {
		t.Errorf("expected duplicate line, got: %s", message)
	}
	if !strings.Contains(message, "`test-0-b` → delete") {
		t.Errorf("expected test line, got: %s", message)
	}
}

func TestFormatRunMessage_NoCandidates(t *testing.T) {
	message := FormatRunMessage(&database.CleaningRun{OriginalCount: 10}, nil)
	if strings.Contains(message, "awaiting review") {
		t.Errorf("expected no candidate section, got: %s", message)
	}
}

func TestFormatRunMessage_TruncatesLongList(t *testing.T) {
	var candidates []database.ReviewCandidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, testhelpers.NewCandidateBuilder().
			WithReviewID(fmt.Sprintf("duplicate-%d-x", i)).Build())
	}

	message := FormatRunMessage(&database.CleaningRun{OriginalCount: 100}, candidates)

	if !strings.Contains(message, "and 5 more") {
		t.Errorf("expected overflow summary, got: %s", message)
	}
	if strings.Contains(message, "duplicate-12-x") {
		t.Error("candidates past the cap must not be listed")
	}
}
