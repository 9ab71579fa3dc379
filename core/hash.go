package core

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leocov-dev/packlaunch/core/murmur2"
)

const (
	HashSHA1    = "sha1"
	HashMD5     = "md5"
	HashSHA256  = "sha256"
	HashSHA512  = "sha512"
	HashMurmur2 = "murmur2"
)

// GetHashImpl gets an implementation of hash.Hash for the given hash type string
func GetHashImpl(hashType string) (HashStringer, error) {
	switch strings.ToLower(hashType) {
	case HashSHA1:
		return &hexStringer{sha1.New()}, nil
	case HashSHA256:
		return &hexStringer{sha256.New()}, nil
	case HashSHA512:
		return &hexStringer{sha512.New()}, nil
	case HashMD5:
		return &hexStringer{md5.New()}, nil
	case HashMurmur2:
		return &number32As64Stringer{murmur2.New()}, nil
	}
	return nil, fmt.Errorf("hash implementation %s not found", hashType)
}

// PreferredHashList is ordered from strongest to weakest.
var PreferredHashList = []string{
	HashSHA512,
	HashSHA256,
	HashSHA1,
	HashMD5,
	HashMurmur2,
}

type HashStringer interface {
	hash.Hash
	String() string
}

type hexStringer struct {
	hash.Hash
}

func (h *hexStringer) String() string {
	return hex.EncodeToString(h.Sum(nil))
}

type number32As64Stringer struct {
	hash.Hash
}

func (h *number32As64Stringer) String() string {
	return strconv.FormatUint(uint64(binary.BigEndian.Uint32(h.Sum(nil))), 10)
}

// Hash is an expected content hash of a ManagedFile.
type Hash struct {
	Value     string
	Algorithm string
}

func NewHash(algorithm, value string) *Hash {
	if value == "" {
		return nil
	}
	return &Hash{Value: value, Algorithm: strings.ToLower(algorithm)}
}

func (h Hash) String() string {
	return h.Algorithm + ":" + h.Value
}

// Matches reports whether the computed digest equals the expected one.
func (h Hash) Matches(computed string) bool {
	return strings.EqualFold(strings.TrimSpace(h.Value), computed)
}

// HashFile computes the digest of the file at path.
func HashFile(path, algorithm string) (string, error) {
	hasher, err := GetHashImpl(algorithm)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hasher.String(), nil
}

// BestHash picks the strongest available hash out of a map keyed by
// algorithm name.
func BestHash(hashes map[string]string) *Hash {
	for _, algorithm := range PreferredHashList {
		if v, ok := hashes[algorithm]; ok && v != "" {
			return NewHash(algorithm, v)
		}
	}
	return nil
}
