package blsSigner

import (
	"bytes"
	"testing"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/signing"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecretKey(t *testing.T) *bls.SecretKey {
	t.Helper()
	sk, err := bls.GenerateSecretKey(bytes.Repeat([]byte{0x5e}, 32))
	require.NoError(t, err)
	return sk
}

func TestNewInMemoryBLSSigner_NilKey(t *testing.T) {
	signer, err := NewInMemoryBLSSigner(nil)
	assert.Error(t, err)
	assert.Nil(t, signer)
}

func TestInMemoryBLSSigner_SignRoot(t *testing.T) {
	sk := testSecretKey(t)
	signer, err := NewInMemoryBLSSigner(sk)
	require.NoError(t, err)

	var _ IBLSSigner = signer

	pubkey, err := signer.GetPublicKey()
	require.NoError(t, err)
	assert.Equal(t, bls.FromPublicKey(sk.PublicKey()), pubkey)

	root := phase0.Root{0x0f, 0xf0}
	sig, err := signer.SignRoot(chain.Holesky, root)
	require.NoError(t, err)

	assert.Equal(t, signing.SignBuilderRoot(chain.Holesky, sk, root), sig)
	assert.NoError(t, signing.VerifyBuilderRoot(chain.Holesky, pubkey, root, sig))
	assert.ErrorIs(t, signing.VerifyBuilderRoot(chain.Mainnet, pubkey, root, sig), bls.ErrSignatureMismatch)
}

func TestNewInMemoryBLSSignerFromHex(t *testing.T) {
	sk := testSecretKey(t)
	encoded := hexutil.Encode(sk.Bytes())

	withPrefix, err := NewInMemoryBLSSignerFromHex(encoded)
	require.NoError(t, err)
	withoutPrefix, err := NewInMemoryBLSSignerFromHex(encoded[2:])
	require.NoError(t, err)

	a, _ := withPrefix.GetPublicKey()
	b, _ := withoutPrefix.GetPublicKey()
	assert.Equal(t, a, b)
	assert.Equal(t, bls.FromPublicKey(sk.PublicKey()), a)
}

func TestParseSecretKeyHex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "0xzz"},
		{"odd length", "0xabc"},
		{"short", "0x0102"},
		{"zero", hexutil.Encode(make([]byte, 32))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sk, err := ParseSecretKeyHex(tt.input)
			assert.Error(t, err)
			assert.Nil(t, sk)
		})
	}

	_, err := ParseSecretKeyHex("0x0102")
	assert.ErrorIs(t, err, bls.ErrMalformedEncoding)
	_, err = ParseSecretKeyHex(hexutil.Encode(make([]byte, 32)))
	assert.ErrorIs(t, err, bls.ErrInvalidSecretKey)
}
