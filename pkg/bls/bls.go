// Package bls implements BLS12-381 signing and verification in the min-pk
// variant: public keys live in G1 (48 bytes compressed) and signatures in G2
// (96 bytes compressed).
//
// Wire-format keys and signatures are decoded and validated before any pairing
// is attempted, so callers can tell malformed input apart from a signature that
// simply does not verify.
package bls

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	blst "github.com/supranational/blst/bindings/go"
)

// SignatureDST is the hash-to-curve domain separation tag of the proof of
// possession ciphersuite used by the consensus layer. It is unrelated to the
// protocol signing domain that is mixed into the signing root.
var SignatureDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// Sign signs msg with sk. Signing is deterministic.
func Sign(sk *SecretKey, msg []byte) phase0.BLSSignature {
	sig := new(blst.P2Affine).Sign(sk.sk, msg, SignatureDST)

	var out phase0.BLSSignature
	copy(out[:], sig.Compress())
	return out
}

// Verify checks sig over msg against an already validated public key.
func Verify(pk *PublicKey, msg []byte, sig *Signature) error {
	if !sig.s.Verify(true, pk.p, false, msg, SignatureDST) {
		return newError("verify", statusVerifyFail)
	}
	return nil
}

// VerifySignature decodes a wire-format public key and signature and verifies
// the signature over msg. Decoding failures are returned as is, without a
// pairing check. A signature that decodes to a point off the curve returns
// ErrInvalidPoint rather than ErrSignatureMismatch, so a rejected signature
// matches one of ErrMalformedEncoding, ErrInvalidPoint or ErrSignatureMismatch.
func VerifySignature(pubkey phase0.BLSPubKey, msg []byte, signature phase0.BLSSignature) error {
	pk, err := ToPublicKey(pubkey)
	if err != nil {
		return err
	}
	sig, err := ToSignature(signature)
	if err != nil {
		return err
	}
	return Verify(pk, msg, sig)
}
