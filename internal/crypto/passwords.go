// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
	saltLen      int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given Argon2id
// cost parameters. The key length is fixed at 32 bytes (256 bits) and the
// salt at 16 bytes (128 bits), both read from the OS CSPRNG per hash.
func NewPasswordHasher(time, memory uint32, threads uint8) PasswordHasher {
	return &passwordHasher{
		argonTime:    time,
		argonMemory:  memory,
		argonThreads: threads,
		argonKeyLen:  32, // 256 bits
		saltLen:      16, // 128 bits
	}
}

// NewDefaultPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewDefaultPasswordHasher() PasswordHasher {
	return NewPasswordHasher(1, 64*1024, 4)
}

// Hash implements [PasswordHasher]. It reads a fresh salt from the OS
// CSPRNG, derives the argon2id digest, and encodes both together with the
// cost parameters in PHC string format. Returns an error only if the
// random read fails.
func (p *passwordHasher) Hash(password string) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, p.argonTime, p.argonMemory, p.argonThreads, p.argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.argonMemory,
		p.argonTime,
		p.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// Verify implements [PasswordHasher]. The digest is recomputed with the
// parameters embedded in hash and compared in constant time. Any decode
// failure is treated as a mismatch; the caller never learns why a check
// failed.
func (p *passwordHasher) Verify(hash, candidate string) bool {
	params, salt, digest, err := decodePHC(hash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(candidate), salt, params.time, params.memory, params.threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(digest, computed) == 1
}

// NeedsRehash implements [PasswordHasher].
func (p *passwordHasher) NeedsRehash(hash string) bool {
	params, salt, digest, err := decodePHC(hash)
	if err != nil {
		return true
	}

	return params.time != p.argonTime ||
		params.memory != p.argonMemory ||
		params.threads != p.argonThreads ||
		uint32(len(digest)) != p.argonKeyLen ||
		len(salt) != p.saltLen
}

// phcParams holds the cost parameters embedded in a PHC hash string.
type phcParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// maxDecodedMemoryKiB bounds the memory cost accepted from a stored hash.
// The parameters come from the database row, so a corrupted or foreign-written
// value must fail decoding instead of driving an arbitrary allocation.
const maxDecodedMemoryKiB = 4 * 1024 * 1024 // 4 GiB

// decodePHC splits a PHC argon2id string into its parameters, salt, and
// digest. Only the argon2id variant at the current argon2 version is
// accepted.
func decodePHC(hash string) (phcParams, []byte, []byte, error) {
	var params phcParams

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, digest
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return params, nil, nil, fmt.Errorf("malformed hash string")
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("unsupported hash variant %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("malformed version segment: %w", err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, fmt.Errorf("malformed parameter segment: %w", err)
	}

	// argon2.IDKey panics on zero iterations and rejects memory below
	// 8 KiB per lane; anything outside these bounds is a bad row, not a
	// verification candidate.
	if params.time == 0 || params.threads == 0 {
		return params, nil, nil, fmt.Errorf("invalid cost parameters")
	}
	if params.memory < 8*uint32(params.threads) || params.memory > maxDecodedMemoryKiB {
		return params, nil, nil, fmt.Errorf("memory cost out of bounds")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params, nil, nil, fmt.Errorf("malformed salt segment")
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return params, nil, nil, fmt.Errorf("malformed digest segment")
	}

	return params, salt, digest, nil
}
