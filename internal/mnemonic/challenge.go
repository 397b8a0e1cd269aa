package mnemonic

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// ChallengePositions are the 1-indexed words asked back after a wallet is created
var ChallengePositions = [4]int{3, 6, 9, 12}

// PartialPositions are the 1-indexed words, in order, of the single-shot recovery check.
// Kept separate from ChallengePositions: the two flows ask for different subsets.
var PartialPositions = [4]int{9, 3, 7, 11}

// Challenge is the set of words the user must confirm
type Challenge []model.SeedWord

// BuildChallenge picks the words at ChallengePositions. Only the word count is checked.
func BuildChallenge(phrase string) (Challenge, error) {
	words := strings.Fields(phrase)
	if len(words) != WordCount {
		return nil, fmt.Errorf("%w: expected %d words", model.ErrInvalidMnemonic, WordCount)
	}

	challenge := make(Challenge, 0, len(ChallengePositions))
	for _, pos := range ChallengePositions {
		challenge = append(challenge, model.SeedWord{Position: pos, Word: words[pos-1]})
	}
	return challenge, nil
}

// VerifyChallenge is true iff every challenge position is supplied with the exact word.
// A missing position fails.
func VerifyChallenge(challenge Challenge, supplied map[int]string) bool {
	if len(challenge) == 0 {
		return false
	}
	for _, sw := range challenge {
		word, ok := supplied[sw.Position]
		if !ok || word != sw.Word {
			return false
		}
	}
	return true
}

// ValidatePartial checks four words against the full phrase at PartialPositions, in order
func ValidatePartial(partial []string, full string) bool {
	words := strings.Fields(full)
	if len(words) != WordCount || len(partial) != len(PartialPositions) {
		return false
	}
	for i, pos := range PartialPositions {
		if strings.TrimSpace(partial[i]) != words[pos-1] {
			return false
		}
	}
	return true
}
