package blsSigner

import (
	"fmt"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/signing"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// InMemoryBLSSigner implements IBLSSigner using an in-memory BLS secret key.
// The key is held for the lifetime of the signer, which suits development,
// testing and short-lived CLI invocations.
type InMemoryBLSSigner struct {
	secretKey *bls.SecretKey
	publicKey phase0.BLSPubKey
}

// NewInMemoryBLSSigner creates a new InMemoryBLSSigner from a BLS12-381 secret key.
// The corresponding public key is derived and cached.
//
// Parameters:
//   - secretKey: The secret key used for all signing operations
//
// Returns:
//   - *InMemoryBLSSigner: A new signer instance
//   - error: An error if the secret key is nil
func NewInMemoryBLSSigner(secretKey *bls.SecretKey) (*InMemoryBLSSigner, error) {
	if secretKey == nil {
		return nil, fmt.Errorf("secret key cannot be nil")
	}

	return &InMemoryBLSSigner{
		secretKey: secretKey,
		publicKey: bls.FromPublicKey(secretKey.PublicKey()),
	}, nil
}

// NewInMemoryBLSSignerFromHex creates a signer from a hex encoded 32 byte secret key.
// The 0x prefix is optional.
func NewInMemoryBLSSignerFromHex(secretKeyHex string) (*InMemoryBLSSigner, error) {
	sk, err := ParseSecretKeyHex(secretKeyHex)
	if err != nil {
		return nil, err
	}
	return NewInMemoryBLSSigner(sk)
}

// ParseSecretKeyHex decodes a hex encoded BLS secret key, with or without 0x prefix.
func ParseSecretKeyHex(secretKeyHex string) (*bls.SecretKey, error) {
	if !has0xPrefix(secretKeyHex) {
		secretKeyHex = "0x" + secretKeyHex
	}
	raw, err := hexutil.Decode(secretKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode BLS secret key hex: %w", err)
	}
	sk, err := bls.SecretKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse BLS secret key: %w", err)
	}
	return sk, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// SignRoot signs the object root under the chain's builder domain.
//
// Parameters:
//   - c: The network the signature is for
//   - objectRoot: The hash tree root of the message being signed
//
// Returns:
//   - phase0.BLSSignature: The compressed signature
//   - error: Always nil for a constructed signer
func (s *InMemoryBLSSigner) SignRoot(c chain.Chain, objectRoot phase0.Root) (phase0.BLSSignature, error) {
	return signing.SignBuilderRoot(c, s.secretKey, objectRoot), nil
}

// GetPublicKey returns the public key associated with this signer.
func (s *InMemoryBLSSigner) GetPublicKey() (phase0.BLSPubKey, error) {
	return s.publicKey, nil
}
