// Package slack posts review-candidate summaries to a Slack channel so
// operators hear about new cleaning proposals without polling the queue.
package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/utils"
)

// How many candidates to spell out per message before summarizing
const maxListedCandidates = 10

// Notifier posts cleaning-run summaries to a Slack channel
type Notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a notifier. An empty token or channel yields a
// disabled notifier whose methods are no-ops.
func NewNotifier(botToken, channel string) *Notifier {
	n := &Notifier{channel: channel}
	if botToken != "" && channel != "" {
		n.client = slack.New(botToken)
	}
	return n
}

// Enabled reports whether the notifier will actually post
func (n *Notifier) Enabled() bool {
	return n.client != nil
}

// NotifyRun posts a summary of one generation run and its candidates
func (n *Notifier) NotifyRun(run *database.CleaningRun, candidates []database.ReviewCandidate) error {
	if !n.Enabled() {
		return nil
	}
	message := FormatRunMessage(run, candidates)
	_, _, err := n.client.PostMessage(n.channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to post run summary: %w", err)
	}
	return nil
}

// FormatRunMessage renders the Slack message body for a cleaning run
func FormatRunMessage(run *database.CleaningRun, candidates []database.ReviewCandidate) string {
	var sb strings.Builder

	sb.WriteString(":broom: *Cleaning pass completed*\n\n")
	sb.WriteString(fmt.Sprintf("Scanned %s properties: %s duplicate pairs, %s test fixtures, %s invalid records\n",
		utils.FormatNumber(run.OriginalCount),
		utils.FormatNumber(run.DuplicatePropertiesCount),
		utils.FormatNumber(run.TestPropertiesCount),
		utils.FormatNumber(run.InvalidCount)))

	if len(candidates) == 0 {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\n*%d candidate(s) awaiting review*\n", len(candidates)))
	for i, c := range candidates {
		if i == maxListedCandidates {
			sb.WriteString(fmt.Sprintf("… and %d more\n", len(candidates)-maxListedCandidates))
			break
		}
		sb.WriteString(fmt.Sprintf("%s `%s` → %s: %s\n",
			kindEmoji(c.Kind), c.ReviewID, c.ProposedAction, utils.TruncateText(c.Reason, 80)))
	}

	return sb.String()
}

func kindEmoji(kind database.CandidateKind) string {
	switch kind {
	case database.CandidateKindDuplicate:
		return ":twisted_rightwards_arrows:"
	case database.CandidateKindTest:
		return ":wastebasket:"
	case database.CandidateKindInvalid:
		return ":warning:"
	default:
		return ":grey_question:"
	}
}
