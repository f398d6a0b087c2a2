package cli

import (
	"context"
	"fmt"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/service"
	"github.com/lexigarden/lexigarden/internal/srs"
)

// Sun drop earnings per review. Promotions pay a bonus on top, and every
// correct answer also waters the tree a little.
const (
	sunDropsCleanReview    = 3
	sunDropsHelpedReview   = 1
	sunDropsPromotionBonus = 5
	healthPerCorrectReview = 2
)

// reviewCard is one flashcard of the session deck.
type reviewCard struct {
	chunkID     string
	text        string
	translation string
}

// SessionSummary totals one review session.
type SessionSummary struct {
	Reviewed int
	Correct  int
	Promoted int
	Reward   garden.Reward
}

// ReviewSessionCLI runs the self-graded flashcard loop over the chunks due
// for one learner.
type ReviewSessionCLI struct {
	*InteractiveSessionCLI

	reviews *service.ReviewService
	gardens *service.GardenService

	userID      string
	skillPathID string
	cards       []reviewCard
	summary     SessionSummary
}

// NewReviewSessionCLI builds the session deck from the due queue. A
// non-empty skillPathID restricts the deck to that pack's chunks and routes
// the earned sun drops to its tree afterwards; an empty one reviews
// everything due without watering a tree. A limit of 0 means no limit.
func NewReviewSessionCLI(
	ctx context.Context,
	reviews *service.ReviewService,
	gardens *service.GardenService,
	catalog *chunk.Catalog,
	userID string,
	skillPathID string,
	limit int,
) (*ReviewSessionCLI, error) {
	inPack := func(string) bool {
		return true
	}
	if skillPathID != "" {
		packChunks, err := catalog.PackChunks(skillPathID)
		if err != nil {
			return nil, fmt.Errorf("catalog.PackChunks(%s) > %w", skillPathID, err)
		}
		ids := make(map[string]struct{}, len(packChunks))
		for _, packChunk := range packChunks {
			ids[packChunk.ID] = struct{}{}
		}
		inPack = func(id string) bool {
			_, ok := ids[id]
			return ok
		}
	}

	queue, err := reviews.DueQueue(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("reviews.DueQueue(%s) > %w", userID, err)
	}

	cards := make([]reviewCard, 0, len(queue))
	for _, due := range queue {
		if !inPack(due.ChunkID) {
			continue
		}
		found, ok := catalog.Chunk(due.ChunkID)
		if !ok {
			// The state references a chunk no loaded pack knows.
			continue
		}
		cards = append(cards, reviewCard{
			chunkID:     found.ID,
			text:        found.Text,
			translation: found.Translation,
		})
		if limit > 0 && len(cards) >= limit {
			break
		}
	}

	return &ReviewSessionCLI{
		InteractiveSessionCLI: newInteractiveSessionCLI(),
		reviews:               reviews,
		gardens:               gardens,
		userID:                userID,
		skillPathID:           skillPathID,
		cards:                 cards,
	}, nil
}

// CardCount returns the number of cards left in the deck.
func (cli *ReviewSessionCLI) CardCount() int {
	return len(cli.cards)
}

// Summary returns the running totals of the session.
func (cli *ReviewSessionCLI) Summary() SessionSummary {
	return cli.summary
}

func (cli *ReviewSessionCLI) nextCard() *reviewCard {
	if len(cli.cards) == 0 {
		return nil
	}
	return &cli.cards[0]
}

func (cli *ReviewSessionCLI) removeCurrentCard() {
	if len(cli.cards) == 0 {
		return
	}
	cli.cards = cli.cards[1:]
}

// Session shows the top card, reads the learner's self grade and submits
// the review. An unknown key keeps the card on top for another try.
func (cli *ReviewSessionCLI) Session(ctx context.Context) error {
	card := cli.nextCard()
	if card == nil {
		fmt.Fprintln(cli.stdoutWriter, "No more chunks to review!")
		return errEnd
	}

	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", card.text)

	key, err := cli.promptKey("Did you remember it? [y]es / [n]o / [h]int / [q]uit: ")
	if err != nil {
		return err
	}

	var outcome srs.Outcome
	switch key {
	case "q":
		fmt.Fprintln(cli.stdoutWriter, "Leaving the session early.")
		return errEnd
	case "y":
		outcome.Correct = true
	case "n":
		outcome.Correct = false
	case "h":
		_, _ = cli.italic.Fprintf(cli.stdoutWriter, "Hint: %s\n", card.translation)
		answer, err := cli.promptKey("Did you remember it with the hint? [y]es / [n]o: ")
		if err != nil {
			return err
		}
		outcome.UsedHelp = true
		outcome.Correct = answer == "y"
	default:
		fmt.Fprintf(cli.stdoutWriter, "Unknown key %q, try again.\n", key)
		return nil
	}

	result, err := cli.reviews.SubmitReview(ctx, cli.userID, card.chunkID, outcome)
	if err != nil {
		return fmt.Errorf("reviews.SubmitReview(%s) > %w", card.chunkID, err)
	}

	cli.recordResult(card, outcome, result)
	cli.removeCurrentCard()
	return nil
}

func (cli *ReviewSessionCLI) recordResult(card *reviewCard, outcome srs.Outcome, result service.ReviewResult) {
	cli.summary.Reviewed++
	if outcome.Correct {
		cli.summary.Correct++
		drops := sunDropsCleanReview
		if outcome.UsedHelp {
			drops = sunDropsHelpedReview
		}
		cli.summary.Reward.SunDrops += drops
		cli.summary.Reward.Health += healthPerCorrectReview

		fmt.Fprint(cli.stdoutWriter, "✅ ")
		_, _ = cli.green.Fprintf(cli.stdoutWriter, "Nice! %s means %q. Next review in %s.\n",
			cli.bold.Sprintf("%s", card.text),
			card.translation,
			formatDays(result.State.IntervalDays),
		)
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Not yet. %s means %q. We will try it again soon.\n",
			cli.bold.Sprintf("%s", card.text),
			card.translation,
		)
	}

	if result.Promoted() {
		cli.summary.Promoted++
		cli.summary.Reward.SunDrops += sunDropsPromotionBonus
		_, _ = cli.green.Fprintf(cli.stdoutWriter, "\U0001F331 %s took root in your garden!\n", card.text)
	}
}

// Finish prints the session summary and waters the skill path's tree with
// the earned reward.
func (cli *ReviewSessionCLI) Finish(ctx context.Context) error {
	summary := cli.summary

	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, "Session summary")
	fmt.Fprintf(cli.stdoutWriter, "Reviewed %d chunks, %d correct, %d newly acquired.\n",
		summary.Reviewed, summary.Correct, summary.Promoted)

	if cli.skillPathID == "" || summary.Reward.SunDrops == 0 {
		return nil
	}

	state, err := cli.gardens.CompleteLesson(ctx, cli.userID, cli.skillPathID, summary.Reward)
	if err != nil {
		return fmt.Errorf("gardens.CompleteLesson(%s) > %w", cli.skillPathID, err)
	}
	_, _ = cli.yellow.Fprintf(cli.stdoutWriter, "☀️  %d sun drops fall on %s.\n",
		summary.Reward.SunDrops, cli.skillPathID)
	fmt.Fprintf(cli.stdoutWriter, "The tree is %s at growth stage %d/%d with %d/%d health.\n",
		state.Status, state.GrowthStage, garden.MaxGrowthStage, state.Health, garden.MaxHealth)
	return nil
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
