// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// argonHash is the decoded form of
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>.
type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h *argonHash) String() string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key),
	)
}

// derive computes the key for password under h's parameters and salt.
func (h *argonHash) derive(password string) []byte {
	//nolint:gosec // G115: key length is 32 bytes
	return argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
}

func (h *argonHash) current() bool {
	return h.memory == argonMemory &&
		h.time == argonTime &&
		h.threads == argonThreads &&
		len(h.key) == argonKeyLen
}

func parseArgonHash(encoded string) (*argonHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, ErrMalformedHash
	}

	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return nil, fmt.Errorf("%w: version %s", ErrMalformedHash, parts[2])
	}

	h := &argonHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return nil, fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	if len(h.key) == 0 {
		return nil, ErrMalformedHash
	}
	return h, nil
}

func HashPassword(password string) (string, error) {
	h := &argonHash{
		memory:  argonMemory,
		time:    argonTime,
		threads: argonThreads,
		salt:    make([]byte, saltLength),
		key:     make([]byte, argonKeyLen),
	}
	if _, err := rand.Read(h.salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	h.key = h.derive(password)
	return h.String(), nil
}

// isBcryptHash matches the hash prefixes produced by the user store this
// service replaced.
func isBcryptHash(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

// VerifyPassword accepts argon2id hashes and bcrypt hashes carried over from
// the previous user store.
func VerifyPassword(password, encodedHash string) (bool, error) {
	if isBcryptHash(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("compare bcrypt hash: %w", err)
		}
	}

	h, err := parseArgonHash(encodedHash)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(h.key, h.derive(password)) == 1, nil
}

// VerifyPasswordWithRehash returns a fresh argon2id hash when the stored one
// is bcrypt or uses outdated parameters. A failed rehash is not an error;
// the login still succeeds and the old hash stays.
func VerifyPasswordWithRehash(
	password, encodedHash string,
) (bool, string, error) {
	valid, err := VerifyPassword(password, encodedHash)
	if err != nil || !valid {
		return false, "", err
	}

	if !needsRehash(encodedHash) {
		return true, "", nil
	}

	newHash, err := HashPassword(password)
	if err != nil {
		//nolint:nilerr // verified; keep the old hash
		return true, "", nil
	}
	return true, newHash, nil
}

func needsRehash(encodedHash string) bool {
	if isBcryptHash(encodedHash) {
		return true
	}
	h, err := parseArgonHash(encodedHash)
	return err != nil || !h.current()
}

var dummyHash = mustHash("storefront-login-timing-equalizer")

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("security: hash dummy password: %v", err))
	}
	return h
}

// VerifyPasswordTimingSafe spends the same hashing work whether or not a
// stored hash exists, so unknown emails cannot be told apart by latency.
func VerifyPasswordTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	if encodedHash == nil || *encodedHash == "" {
		//nolint:errcheck // result discarded, only the work matters
		_, _ = VerifyPassword(password, dummyHash)
		return false, "", nil
	}
	return VerifyPasswordWithRehash(password, *encodedHash)
}
