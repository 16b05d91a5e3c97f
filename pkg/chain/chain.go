// Package chain provides the registry of networks supported for builder
// message signing. Each network is identified by its genesis fork version and
// carries a precomputed builder signing domain.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Commit-Boost/builder-api-types/pkg/util"
	"github.com/attestantio/go-eth2-client/spec/phase0"
)

var (
	// ErrUnknownChain is returned when a chain name does not match any registered network
	ErrUnknownChain = errors.New("unknown chain")
)

// EmptyGenesisValidatorsRoot is the genesis validators root used when computing
// builder domains. Builder signatures are not bound to a validator set.
var EmptyGenesisValidatorsRoot = phase0.Root{}

// ApplicationBuilderDomain is the DOMAIN_APPLICATION_BUILDER domain type.
var ApplicationBuilderDomain = phase0.DomainType{0x00, 0x00, 0x00, 0x01}

// Chain identifies a network in the registry.
type Chain uint8

const (
	Mainnet Chain = iota
	Holesky
	Sepolia
	Helder
	Hoodi
)

type chainParams struct {
	name               string
	genesisForkVersion phase0.Version
	builderDomain      phase0.Domain
}

// registry holds the compiled-in parameters of every network. The builder
// domains are compute_domain(ApplicationBuilderDomain, genesis fork version,
// EmptyGenesisValidatorsRoot).
var registry = map[Chain]*chainParams{
	Mainnet: {
		name:               "mainnet",
		genesisForkVersion: phase0.Version{0x00, 0x00, 0x00, 0x00},
		builderDomain: phase0.Domain{
			0x00, 0x00, 0x00, 0x01, 0xf5, 0xa5, 0xfd, 0x42, 0xd1, 0x6a, 0x20, 0x30, 0x27, 0x98, 0xef, 0x6e,
			0xd3, 0x09, 0x97, 0x9b, 0x43, 0x00, 0x3d, 0x23, 0x20, 0xd9, 0xf0, 0xe8, 0xea, 0x98, 0x31, 0xa9,
		},
	},
	Holesky: {
		name:               "holesky",
		genesisForkVersion: phase0.Version{0x01, 0x01, 0x70, 0x00},
		builderDomain: phase0.Domain{
			0x00, 0x00, 0x00, 0x01, 0x5b, 0x83, 0xa2, 0x37, 0x59, 0xc5, 0x60, 0xb2, 0xd0, 0xc6, 0x45, 0x76,
			0xe1, 0xdc, 0xfc, 0x34, 0xea, 0x94, 0xc4, 0x98, 0x8f, 0x3e, 0x0d, 0x9f, 0x77, 0xf0, 0x53, 0x87,
		},
	},
	Sepolia: {
		name:               "sepolia",
		genesisForkVersion: phase0.Version{0x90, 0x00, 0x00, 0x69},
		builderDomain: phase0.Domain{
			0x00, 0x00, 0x00, 0x01, 0xd3, 0x01, 0x07, 0x78, 0xcd, 0x08, 0xee, 0x51, 0x4b, 0x08, 0xfe, 0x67,
			0xb6, 0xc5, 0x03, 0xb5, 0x10, 0x98, 0x7a, 0x4c, 0xe4, 0x3f, 0x42, 0x30, 0x6d, 0x97, 0xc6, 0x7c,
		},
	},
	Helder: {
		name:               "helder",
		genesisForkVersion: phase0.Version{0x10, 0x00, 0x00, 0x00},
		builderDomain: phase0.Domain{
			0x00, 0x00, 0x00, 0x01, 0x94, 0xc4, 0x1a, 0xf4, 0x84, 0xff, 0xf7, 0x96, 0x49, 0x69, 0xe0, 0xbd,
			0xd9, 0x22, 0xf8, 0x2d, 0xff, 0x0f, 0x4b, 0xe8, 0x7a, 0x60, 0xd0, 0x66, 0x4c, 0xc9, 0xd1, 0xff,
		},
	},
	Hoodi: {
		name:               "hoodi",
		genesisForkVersion: phase0.Version{0x10, 0x00, 0x09, 0x10},
		builderDomain: phase0.Domain{
			0x00, 0x00, 0x00, 0x01, 0x71, 0x91, 0x03, 0x51, 0x1e, 0xfa, 0x4f, 0x13, 0x62, 0xff, 0x2a, 0x50,
			0x99, 0x6c, 0xcc, 0xf3, 0x29, 0xcc, 0x84, 0xcb, 0x41, 0x0c, 0x5e, 0x5c, 0x7d, 0x35, 0x1d, 0x03,
		},
	},
}

func (c Chain) params() *chainParams {
	p, ok := registry[c]
	if !ok {
		panic(fmt.Sprintf("chain: unregistered chain %d", uint8(c)))
	}
	return p
}

// GenesisForkVersion returns the fork version the network launched with.
func (c Chain) GenesisForkVersion() phase0.Version {
	return c.params().genesisForkVersion
}

// BuilderDomain returns the precomputed signing domain for builder messages
// on this network.
func (c Chain) BuilderDomain() phase0.Domain {
	return c.params().builderDomain
}

// String returns the lowercase network name.
func (c Chain) String() string {
	p, ok := registry[c]
	if !ok {
		return fmt.Sprintf("chain(%d)", uint8(c))
	}
	return p.name
}

// All returns every registered chain in declaration order.
func All() []Chain {
	return []Chain{Mainnet, Holesky, Sepolia, Helder, Hoodi}
}

// Names returns the names of all registered chains.
func Names() []string {
	return util.Map(All(), func(c Chain, _ uint64) string {
		return c.String()
	})
}

// Parse looks up a chain by name. Matching is case-insensitive.
//
// Parameters:
//   - name: The network name, e.g. "mainnet" or "Holesky"
//
// Returns:
//   - Chain: The matching chain
//   - error: ErrUnknownChain if no network has that name
func Parse(name string) (Chain, error) {
	trimmed := strings.TrimSpace(name)
	for _, c := range All() {
		if strings.EqualFold(c.String(), trimmed) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownChain, name, strings.Join(Names(), ", "))
}
