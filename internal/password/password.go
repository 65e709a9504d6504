// Package password hashes and verifies user passwords with bcrypt.
//
// Hashes are self-describing Modular Crypt Format strings ("$2a$12$...")
// carrying the algorithm, the cost and a fresh random salt, so hashing the
// same password twice yields two different strings that both verify.
package password

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultRounds = 12
	MinRounds     = bcrypt.MinCost
	MaxRounds     = bcrypt.MaxCost

	// bcrypt only reads the first 72 bytes of its input.
	maxPasswordBytes = 72
	// 22 characters of salt followed by 31 characters of digest.
	payloadLength = 53
)

// ErrValidation is the single error kind returned for bad input. Every other
// error in this package wraps it.
var ErrValidation = errors.New("invalid input")

var (
	ErrInvalidRounds = fmt.Errorf("%w: rounds must be an integer in [%d, %d]", ErrValidation, MinRounds, MaxRounds)
	ErrInvalidHash   = fmt.Errorf("%w: malformed password hash", ErrValidation)
)

type generateFunc func(password []byte, cost int) ([]byte, error)

// Hasher is safe for concurrent use.
type Hasher struct {
	rounds   int
	generate generateFunc

	placeholderOnce sync.Once
	placeholderHash []byte
}

func NewHasher(rounds int) (*Hasher, error) {
	if err := validateRounds(rounds); err != nil {
		return nil, err
	}
	return &Hasher{rounds: rounds, generate: bcrypt.GenerateFromPassword}, nil
}

func validateRounds(rounds int) error {
	if rounds < MinRounds || rounds > MaxRounds {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}
	return nil
}

// ParseRounds parses a textual work factor, e.g. from a flag or env var.
func ParseRounds(text string) (int, error) {
	rounds, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidRounds, text)
	}
	if err := validateRounds(rounds); err != nil {
		return 0, err
	}
	return rounds, nil
}

func (h *Hasher) Rounds() int { return h.rounds }

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := h.generate(truncate(password), h.rounds)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %s", ErrValidation, err)
	}
	return string(hash), nil
}

func checkFormat(hash string) error {
	parts := strings.Split(hash, "$")
	if len(parts) < 4 {
		return fmt.Errorf("%w: expected 4 '$'-separated segments, got %d", ErrInvalidHash, len(parts))
	}
	if len(parts[3]) != payloadLength {
		return fmt.Errorf("%w: payload must be %d characters, got %d", ErrInvalidHash, payloadLength, len(parts[3]))
	}
	return nil
}

// Verify reports whether password matches hash. A mismatch is (false, nil);
// a structurally invalid hash is an ErrInvalidHash.
func (h *Hasher) Verify(password string, hash string) (bool, error) {
	if err := checkFormat(hash); err != nil {
		return false, err
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidHash, err)
	}
	return true, nil
}

// VerifyPlaceholder costs the same as a Verify call that fails. Use it when
// there is no stored hash, e.g. for an unknown account, so the response time
// does not tell the caller whether the account exists.
func (h *Hasher) VerifyPlaceholder(password string) {
	h.placeholderOnce.Do(func() {
		hash, err := h.generate([]byte("placeholder"), h.rounds)
		if err == nil {
			h.placeholderHash = hash
		}
	})
	if h.placeholderHash == nil {
		return
	}
	_ = bcrypt.CompareHashAndPassword(h.placeholderHash, truncate(password))
}

// NeedsRehash reports whether hash was produced with a different cost than
// the hasher is configured with.
func (h *Hasher) NeedsRehash(hash string) (bool, error) {
	if err := checkFormat(hash); err != nil {
		return false, err
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidHash, err)
	}
	return cost != h.rounds, nil
}

func HashPassword(password string) (string, error) {
	return HashPasswordWithRounds(password, DefaultRounds)
}

func HashPasswordWithRounds(password string, rounds int) (string, error) {
	h, err := NewHasher(rounds)
	if err != nil {
		return "", err
	}
	return h.Hash(password)
}

// VerifyPassword checks password against a hash of any supported cost.
func VerifyPassword(password string, hash string) (bool, error) {
	// Cost is read from the hash itself, the hasher's own rounds are unused.
	h := Hasher{rounds: DefaultRounds, generate: bcrypt.GenerateFromPassword}
	return h.Verify(password, hash)
}
