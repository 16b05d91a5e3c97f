package bls

import (
	"bytes"
	"crypto/rand"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common/hexutil"
	blst "github.com/supranational/blst/bindings/go"
)

const (
	PublicKeyLength = 48
	SignatureLength = 96
	SecretKeyLength = 32
)

// Flag bits in the first byte of a compressed point encoding.
const (
	compressionFlag byte = 0x80
	infinityFlag    byte = 0x40
	signFlag        byte = 0x20

	flagMask = compressionFlag | infinityFlag | signFlag
)

// fieldElementLength is the size of one big-endian base field element.
const fieldElementLength = 48

// fieldModulus is the BLS12-381 base field modulus p.
var fieldModulus = hexutil.MustDecode("0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")

// SecretKey is a BLS12-381 secret scalar. Zeroing it is up to the owner.
type SecretKey struct {
	sk *blst.SecretKey
}

// PublicKey is a G1 point that has passed decompression and key validation.
type PublicKey struct {
	p *blst.P1Affine
}

// Signature is a decompressed G2 point. Subgroup membership is checked when the
// signature is verified.
type Signature struct {
	s *blst.P2Affine
}

// checkHeader validates the flag bits of a compressed point. It reports whether
// the encoding is the canonical point at infinity.
func checkHeader(b []byte) (infinity bool, s status) {
	if b[0]&compressionFlag == 0 {
		return false, statusBadFlags
	}
	if b[0]&infinityFlag == 0 {
		return false, statusSuccess
	}
	if b[0]&^(compressionFlag|infinityFlag) != 0 {
		return false, statusBadFlags
	}
	for _, v := range b[1:] {
		if v != 0 {
			return false, statusBadFlags
		}
	}
	return true, statusSuccess
}

// canonicalCoordinates reports whether every 48 byte field element of a
// compressed point is below p. The flag bits only live in the first element.
func canonicalCoordinates(b []byte) bool {
	for i := 0; i+fieldElementLength <= len(b); i += fieldElementLength {
		var x [fieldElementLength]byte
		copy(x[:], b[i:i+fieldElementLength])
		if i == 0 {
			x[0] &^= flagMask
		}
		if bytes.Compare(x[:], fieldModulus) >= 0 {
			return false
		}
	}
	return true
}

// PublicKeyFromBytes decompresses a 48 byte public key and validates it.
// An x coordinate at or above the field modulus is malformed. Identity points,
// points off the curve and points outside G1 are invalid.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	const op = "decode public key"
	if len(b) != PublicKeyLength {
		return nil, newError(op, statusBadLength)
	}
	infinity, s := checkHeader(b)
	if s != statusSuccess {
		return nil, newError(op, s)
	}
	if infinity {
		return nil, newError(op, statusPointIsInfinity)
	}
	if !canonicalCoordinates(b) {
		return nil, newError(op, statusBadEncoding)
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil {
		return nil, newError(op, statusNotOnCurve)
	}
	if !p.KeyValidate() {
		return nil, newError(op, statusNotInGroup)
	}
	return &PublicKey{p: p}, nil
}

// ToPublicKey validates a wire-format public key.
func ToPublicKey(pk phase0.BLSPubKey) (*PublicKey, error) {
	return PublicKeyFromBytes(pk[:])
}

// FromPublicKey returns the compressed wire form of a validated public key.
func FromPublicKey(pk *PublicKey) phase0.BLSPubKey {
	var out phase0.BLSPubKey
	copy(out[:], pk.p.Compress())
	return out
}

// Bytes returns the 48 byte compressed encoding.
func (pk *PublicKey) Bytes() []byte {
	return pk.p.Compress()
}

// Equals reports whether both keys are the same point.
func (pk *PublicKey) Equals(other *PublicKey) bool {
	return pk.p.Equals(other.p)
}

// SignatureFromBytes decompresses a 96 byte signature. Bad lengths, flags and
// coordinates at or above the field modulus are malformed; a well formed
// encoding that is not on the curve is an invalid point.
func SignatureFromBytes(b []byte) (*Signature, error) {
	const op = "decode signature"
	if len(b) != SignatureLength {
		return nil, newError(op, statusBadLength)
	}
	if _, s := checkHeader(b); s != statusSuccess {
		return nil, newError(op, s)
	}
	if !canonicalCoordinates(b) {
		return nil, newError(op, statusBadEncoding)
	}
	sig := new(blst.P2Affine).Uncompress(b)
	if sig == nil {
		return nil, newError(op, statusNotOnCurve)
	}
	return &Signature{s: sig}, nil
}

// ToSignature decodes a wire-format signature.
func ToSignature(sig phase0.BLSSignature) (*Signature, error) {
	return SignatureFromBytes(sig[:])
}

// Bytes returns the 96 byte compressed encoding.
func (s *Signature) Bytes() []byte {
	return s.s.Compress()
}

// SecretKeyFromBytes parses a big-endian 32 byte secret key.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	const op = "decode secret key"
	if len(b) != SecretKeyLength {
		return nil, newError(op, statusBadLength)
	}
	sk := new(blst.SecretKey).Deserialize(b)
	if sk == nil {
		return nil, newError(op, statusBadScalar)
	}
	return &SecretKey{sk: sk}, nil
}

// GenerateSecretKey derives a secret key from at least 32 bytes of input key
// material using the EIP-2333 KeyGen procedure.
func GenerateSecretKey(ikm []byte) (*SecretKey, error) {
	if len(ikm) < 32 {
		return nil, newError("generate secret key", statusShortIKM)
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, newError("generate secret key", statusBadScalar)
	}
	return &SecretKey{sk: sk}, nil
}

// RandomSecretKey generates a secret key from 32 random bytes.
func RandomSecretKey() (*SecretKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, err
	}
	return GenerateSecretKey(ikm[:])
}

// PublicKey derives the public key for this secret key.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{p: new(blst.P1Affine).From(sk.sk)}
}

// Bytes returns the big-endian 32 byte scalar.
func (sk *SecretKey) Bytes() []byte {
	return sk.sk.Serialize()
}
