package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/scrypt"
)

// Envelope layout: base64(iv):base64(authTag):base64(ciphertext).
// This format is part of the storage contract; changing it breaks every
// row already on disk.
const (
	ivSize  = 16
	tagSize = 16

	keyDerivationSalt = "casereach-intake-v1"
	fallbackSecret    = "dev-only-insecure-intake-key"
)

var decryptFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "lead_decrypt_failures_total",
	Help: "Total number of stored field values that failed to decrypt",
})

// CipherService encrypts and decrypts individual field values with
// AES-256-GCM. The key is fixed at construction and safe for concurrent use.
type CipherService struct {
	gcm cipher.AEAD
}

// NewCipherService derives the field-encryption key from the operator secret.
// A 64-char hex secret is used as the raw 256-bit key; any other non-empty
// secret is stretched with scrypt. An empty secret falls back to a hardcoded
// development passphrase and logs loudly, it must never happen in production.
func NewCipherService(secret string) (*CipherService, error) {
	if secret == "" {
		log.Printf("⚠️ LEAD_ENCRYPTION_KEY is not set, using insecure development key. DO NOT run this in production.")
		secret = fallbackSecret
	}

	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}

	// 16-byte IVs instead of GCM's 12-byte default, to match the stored
	// envelope format.
	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}

	return &CipherService{gcm: gcm}, nil
}

func deriveKey(secret string) ([]byte, error) {
	if len(secret) == 64 {
		if key, err := hex.DecodeString(secret); err == nil {
			return key, nil
		}
		// Not hex after all; treat it as a passphrase.
	}

	key, err := scrypt.Key([]byte(secret), []byte(keyDerivationSalt), 32768, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("crypto: key derivation failed: %w", err)
	}
	return key, nil
}

// Encrypt turns plaintext into an envelope string. Empty input is returned
// unchanged so optional fields don't produce ciphertext noise. A fresh IV is
// generated per call; the same plaintext never yields the same envelope.
func (s *CipherService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("crypto: failed to generate iv: %w", err)
	}

	sealed := s.gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return base64.StdEncoding.EncodeToString(iv) + ":" +
		base64.StdEncoding.EncodeToString(tag) + ":" +
		base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Values that don't look like an envelope (empty,
// no colon, wrong segment count) are passed through unchanged so rows written
// before encryption was enabled stay readable. Corrupted envelopes are also
// returned unchanged rather than failing the whole record read; each one is
// logged and counted so bad fields stay discoverable.
func (s *CipherService) Decrypt(encoded string) string {
	if encoded == "" || !strings.Contains(encoded, ":") {
		return encoded
	}

	parts := strings.Split(encoded, ":")
	if len(parts) != 3 {
		return encoded
	}

	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		s.reportFailure("bad iv segment")
		return encoded
	}
	tag, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		s.reportFailure("bad tag segment")
		return encoded
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		s.reportFailure("bad ciphertext segment")
		return encoded
	}

	plaintext, err := s.gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		s.reportFailure("authentication failed")
		return encoded
	}

	return string(plaintext)
}

func (s *CipherService) reportFailure(reason string) {
	decryptFailures.Inc()
	log.Printf("⚠️ crypto: field decrypt failed (%s), returning stored value as-is", reason)
}

// HashIdentifier returns a one-way SHA-256 digest of a normalized identifier,
// for lookup-by-hash use cases such as deduplication reports.
func HashIdentifier(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
