// Package signing binds builder messages to a network through the consensus
// layer signing domain and signs or verifies the resulting signing root.
//
// The signing flow is:
//
//	domain       = ComputeDomain(chain, domainType)
//	signing root = hash_tree_root(SigningData{object_root, domain})
//	signature    = BLS sign(signing root)
package signing

import (
	"errors"
	"fmt"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/treeHash"
	"github.com/attestantio/go-eth2-client/spec/phase0"
)

var (
	// ErrObjectRoot is returned when a message's hash tree root cannot be computed
	ErrObjectRoot = errors.New("failed to compute object root")
)

// ComputeDomain returns the signing domain for the given domain type on a chain.
// The fork data is built from the chain's genesis fork version and an empty
// genesis validators root, which is only correct for domains that are not tied
// to a validator set, such as ApplicationBuilderDomain.
//
// Parameters:
//   - c: The network the signature is valid on
//   - domainType: The 4 byte domain type, e.g. chain.ApplicationBuilderDomain
//
// Returns:
//   - phase0.Domain: domainType followed by the first 28 bytes of the fork data root
func ComputeDomain(c chain.Chain, domainType phase0.DomainType) phase0.Domain {
	fd := &treeHash.ForkData{
		CurrentVersion:        c.GenesisForkVersion(),
		GenesisValidatorsRoot: chain.EmptyGenesisValidatorsRoot,
	}
	forkDataRoot := mustRoot(fd)

	var domain phase0.Domain
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}

// ComputeSigningRoot returns the hash tree root of SigningData{objectRoot, domain}.
func ComputeSigningRoot(objectRoot phase0.Root, domain phase0.Domain) phase0.Root {
	return mustRoot(&treeHash.SigningData{
		ObjectRoot: objectRoot,
		Domain:     domain,
	})
}

// mustRoot hashes a record of non-empty fixed fields, which cannot fail.
func mustRoot(r treeHash.ObjectRoot) phase0.Root {
	root, err := r.HashTreeRoot()
	if err != nil {
		panic(fmt.Sprintf("signing: hashing fixed record: %v", err))
	}
	return root
}

func objectRoot(msg treeHash.ObjectRoot) (phase0.Root, error) {
	root, err := msg.HashTreeRoot()
	if err != nil {
		return phase0.Root{}, fmt.Errorf("%w: %w", ErrObjectRoot, err)
	}
	return root, nil
}

// VerifySignedMessage verifies a signature over msg under the domain derived
// from the chain and domain type.
//
// Parameters:
//   - c: The network the message was signed for
//   - pubkey: The signer's compressed public key
//   - msg: The signed message
//   - signature: The compressed signature
//   - domainType: The domain type the message was signed under
//
// Returns:
//   - error: nil if the signature verifies, ErrObjectRoot if msg cannot be hashed,
//     otherwise a *bls.Error matching bls.ErrMalformedEncoding, bls.ErrInvalidPoint
//     or bls.ErrSignatureMismatch
func VerifySignedMessage(
	c chain.Chain,
	pubkey phase0.BLSPubKey,
	msg treeHash.ObjectRoot,
	signature phase0.BLSSignature,
	domainType phase0.DomainType,
) error {
	root, err := objectRoot(msg)
	if err != nil {
		return err
	}
	domain := ComputeDomain(c, domainType)
	signingRoot := ComputeSigningRoot(root, domain)

	return bls.VerifySignature(pubkey, signingRoot[:], signature)
}

// SignBuilderMessage signs msg under the chain's builder domain.
//
// Returns:
//   - phase0.BLSSignature: The compressed signature
//   - error: ErrObjectRoot if msg cannot be hashed
func SignBuilderMessage(c chain.Chain, sk *bls.SecretKey, msg treeHash.ObjectRoot) (phase0.BLSSignature, error) {
	root, err := objectRoot(msg)
	if err != nil {
		return phase0.BLSSignature{}, err
	}
	return SignBuilderRoot(c, sk, root), nil
}

// SignBuilderRoot signs an object root under the chain's builder domain.
func SignBuilderRoot(c chain.Chain, sk *bls.SecretKey, root phase0.Root) phase0.BLSSignature {
	signingRoot := ComputeSigningRoot(root, c.BuilderDomain())
	return bls.Sign(sk, signingRoot[:])
}

// VerifyBuilderMessage verifies a signature over msg under the chain's builder domain.
func VerifyBuilderMessage(c chain.Chain, pubkey phase0.BLSPubKey, msg treeHash.ObjectRoot, signature phase0.BLSSignature) error {
	return VerifySignedMessage(c, pubkey, msg, signature, chain.ApplicationBuilderDomain)
}

// VerifyBuilderRoot verifies a signature over an object root under the chain's
// builder domain.
func VerifyBuilderRoot(c chain.Chain, pubkey phase0.BLSPubKey, root phase0.Root, signature phase0.BLSSignature) error {
	signingRoot := ComputeSigningRoot(root, c.BuilderDomain())
	return bls.VerifySignature(pubkey, signingRoot[:], signature)
}
