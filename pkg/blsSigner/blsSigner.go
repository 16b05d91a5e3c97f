// Package blsSigner provides BLS signing of builder messages for the supported networks.
// This package defines the signer interface and its implementations, which hold or fetch a
// BLS12-381 secret key and sign object roots under a chain's builder domain.
package blsSigner

import (
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// IBLSSigner defines the interface for signing builder messages.
// Implementations differ only in where the secret key comes from.
type IBLSSigner interface {
	// SignRoot signs an object root under the builder domain of the given chain.
	// Returns the compressed signature that verifies against GetPublicKey.
	SignRoot(c chain.Chain, objectRoot phase0.Root) (phase0.BLSSignature, error)

	// GetPublicKey returns the compressed BLS public key associated with this signer.
	GetPublicKey() (phase0.BLSPubKey, error)
}
