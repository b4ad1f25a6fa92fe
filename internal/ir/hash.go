package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainDecls = "indexgen/decls/v1"
	DomainInput = "indexgen/input/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DeclHash fingerprints a declaration set. Two sets with the same
// declarations in the same order hash identically.
func DeclHash(m *TypeDeclMulti) (string, error) {
	decls := m.Decls()
	list := make([]any, len(decls))
	for i, d := range decls {
		list[i] = canonicalDecl(d)
	}
	canonical, err := MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("DeclHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDecls, canonical), nil
}

// InputHash fingerprints the named raw inputs of a generation run (ABI files,
// schema, configuration). Keys are sorted canonically, so map order is
// irrelevant.
func InputHash(inputs map[string][]byte) (string, error) {
	obj := make(map[string]any, len(inputs))
	for name, data := range inputs {
		sum := sha256.Sum256(data)
		obj[name] = hex.EncodeToString(sum[:])
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("InputHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInput, canonical), nil
}

// MustDeclHash is like DeclHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDeclHash(m *TypeDeclMulti) string {
	h, err := DeclHash(m)
	if err != nil {
		panic(err)
	}
	return h
}
