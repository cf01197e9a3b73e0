package llm

import (
	"math/rand/v2"
	"slices"
	"time"
)

const (
	systemMessageProbability = 0.3
	minTurns                 = 1
	maxTurns                 = 3
)

var replyRoles = []MessageRole{Assistant, Tool}

// DialogBuilder draws synthetic dialogs from a phrase corpus.
//
// Every call consumes the random stream in a fixed order: one float for the
// optional system message (plus one phrase draw when it is kept), one draw for
// the turn count, then per turn a user phrase, a reply role and a reply phrase.
// Only the final turn is returned; the earlier draws still advance the stream so
// a seeded builder yields the same dialogs run after run.
type DialogBuilder struct {
	phrases []string
	rng     *rand.Rand
}

// NewDialogBuilder panics when phrases is empty.
func NewDialogBuilder(phrases []string, rng *rand.Rand) *DialogBuilder {
	if len(phrases) == 0 {
		panic("llm: dialog builder needs at least one phrase")
	}
	return &DialogBuilder{phrases: phrases, rng: rng}
}

// NewRand returns a PCG generator for seed, or a time seeded one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (b *DialogBuilder) Build() Dialog {
	var dialog Dialog

	if b.rng.Float64() < systemMessageProbability {
		dialog = append(dialog, Message{Role: System, Content: b.phrase()})
	}

	turns := minTurns + b.rng.IntN(maxTurns-minTurns+1)
	for range turns {
		dialog = append(dialog, Message{Role: User, Content: b.phrase()})
		role := replyRoles[b.rng.IntN(len(replyRoles))]
		dialog = append(dialog, Message{Role: role, Content: b.phrase()})
	}

	return slices.Clone(dialog[len(dialog)-2:])
}

func (b *DialogBuilder) phrase() string {
	return b.phrases[b.rng.IntN(len(b.phrases))]
}
