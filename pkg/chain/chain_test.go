package chain

import (
	"crypto/sha256"
	"testing"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisForkVersions(t *testing.T) {
	tests := []struct {
		chain   Chain
		version phase0.Version
	}{
		{Mainnet, phase0.Version{0x00, 0x00, 0x00, 0x00}},
		{Holesky, phase0.Version{0x01, 0x01, 0x70, 0x00}},
		{Sepolia, phase0.Version{0x90, 0x00, 0x00, 0x69}},
		{Helder, phase0.Version{0x10, 0x00, 0x00, 0x00}},
		{Hoodi, phase0.Version{0x10, 0x00, 0x09, 0x10}},
	}
	for _, tt := range tests {
		t.Run(tt.chain.String(), func(t *testing.T) {
			assert.Equal(t, tt.version, tt.chain.GenesisForkVersion())
		})
	}
}

// The fork data root of a two field container is sha256 over the padded
// version chunk followed by the genesis validators root.
func TestBuilderDomains_MatchForkData(t *testing.T) {
	for _, c := range All() {
		t.Run(c.String(), func(t *testing.T) {
			var input [64]byte
			version := c.GenesisForkVersion()
			copy(input[:4], version[:])
			copy(input[32:], EmptyGenesisValidatorsRoot[:])
			forkDataRoot := sha256.Sum256(input[:])

			domain := c.BuilderDomain()
			assert.Equal(t, ApplicationBuilderDomain[:], domain[:4])
			assert.Equal(t, forkDataRoot[:28], domain[4:])
		})
	}
}

func TestParse(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := Parse(" Holesky ")
	require.NoError(t, err)
	assert.Equal(t, Holesky, got)

	got, err = Parse("SEPOLIA")
	require.NoError(t, err)
	assert.Equal(t, Sepolia, got)

	_, err = Parse("goerli")
	assert.ErrorIs(t, err, ErrUnknownChain)
	assert.Contains(t, err.Error(), "mainnet, holesky, sepolia, helder, hoodi")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"mainnet", "holesky", "sepolia", "helder", "hoodi"}, Names())
}

func TestUnregisteredChain(t *testing.T) {
	unknown := Chain(200)
	assert.Equal(t, "chain(200)", unknown.String())
	assert.Panics(t, func() { unknown.GenesisForkVersion() })
	assert.Panics(t, func() { unknown.BuilderDomain() })
}

func TestParse_Rejects(t *testing.T) {
	for _, name := range []string{"", "   ", "goerli", "main net", "mainnet2"} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name)
			assert.ErrorIs(t, err, ErrUnknownChain)
		})
	}
}
