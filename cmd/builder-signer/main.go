package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/blsSigner"
	"github.com/Commit-Boost/builder-api-types/pkg/blsSigner/awsSMBLSSigner"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/logger"
	"github.com/Commit-Boost/builder-api-types/pkg/signing"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common/hexutil"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func chainFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "chain",
		Aliases: []string{"c"},
		Usage:   fmt.Sprintf("Network to sign for (%s)", strings.Join(chain.Names(), ", ")),
		Value:   chain.Mainnet.String(),
		EnvVars: []string{"CHAIN"},
	}
}

func maskFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "domain-type",
		Aliases: []string{"mask"},
		Usage:   "4 byte domain type in hex",
		Value:   hexutil.Encode(chain.ApplicationBuilderDomain[:]),
		EnvVars: []string{"DOMAIN_TYPE"},
	}
}

func rootFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "root",
		Aliases:  []string{"r"},
		Usage:    "32 byte object root in hex",
		Required: true,
		EnvVars:  []string{"OBJECT_ROOT"},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "builder-signer",
		Usage: "Builder message signing domain, signing and verification tool",
		Description: `builder-signer computes builder signing domains for the supported networks,
signs object roots under the builder domain and verifies BLS signatures over them.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
				EnvVars: []string{"DEBUG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "domain",
				Usage:  "Compute the signing domain for a chain and domain type",
				Flags:  []cli.Flag{chainFlag(), maskFlag()},
				Action: domainAction,
			},
			{
				Name:  "sign",
				Usage: "Sign an object root under the builder domain",
				Flags: []cli.Flag{
					chainFlag(),
					rootFlag(),
					&cli.StringFlag{
						Name:    "bls-private-key",
						Usage:   "BLS secret key (hex format, with or without 0x prefix)",
						EnvVars: []string{"BLS_PRIVATE_KEY"},
					},
					&cli.StringFlag{
						Name:    "bls-aws-secret-name",
						Usage:   "AWS Secrets Manager secret name containing the hex BLS secret key",
						EnvVars: []string{"BLS_AWS_SECRET_NAME"},
					},
					&cli.StringFlag{
						Name:    "bls-aws-region",
						Usage:   "AWS region for BLS secret",
						Value:   "us-east-1",
						EnvVars: []string{"BLS_AWS_REGION"},
					},
				},
				Before: validateSignFlags,
				Action: signAction,
			},
			{
				Name:  "verify",
				Usage: "Verify a signature over an object root",
				Flags: []cli.Flag{
					chainFlag(),
					maskFlag(),
					rootFlag(),
					&cli.StringFlag{
						Name:     "pubkey",
						Usage:    "48 byte compressed BLS public key in hex",
						Required: true,
						EnvVars:  []string{"PUBKEY"},
					},
					&cli.StringFlag{
						Name:     "signature",
						Aliases:  []string{"sig"},
						Usage:    "96 byte compressed BLS signature in hex",
						Required: true,
						EnvVars:  []string{"SIGNATURE"},
					},
				},
				Action: verifyAction,
			},
		},
	}
}

func validateSignFlags(c *cli.Context) error {
	privateKey := c.String("bls-private-key")
	secretName := c.String("bls-aws-secret-name")

	if privateKey == "" && secretName == "" {
		return fmt.Errorf("must specify either --bls-private-key or --bls-aws-secret-name for BLS signing")
	}
	if privateKey != "" && secretName != "" {
		return fmt.Errorf("cannot specify both --bls-private-key and --bls-aws-secret-name")
	}
	return nil
}

func setupLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("debug"),
	})
}

func setupBLSSigner(c *cli.Context, l *zap.Logger) (blsSigner.IBLSSigner, error) {
	if privateKey := c.String("bls-private-key"); privateKey != "" {
		return blsSigner.NewInMemoryBLSSignerFromHex(privateKey)
	}

	if secretName := c.String("bls-aws-secret-name"); secretName != "" {
		return awsSMBLSSigner.NewAWSSMBLSSigner(&awsSMBLSSigner.AWSSMBLSSignerConfig{
			Region:     c.String("bls-aws-region"),
			SecretName: secretName,
		}, l)
	}

	return nil, fmt.Errorf("no BLS signing method configured")
}

// decodeFixed decodes a 0x prefixed hex string into dst, which must match its length exactly.
func decodeFixed(name, s string, dst []byte) error {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("invalid %s: expected %d bytes, got %d", name, len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}

func parseChainAndMask(c *cli.Context) (chain.Chain, phase0.DomainType, error) {
	var mask phase0.DomainType
	ch, err := chain.Parse(c.String("chain"))
	if err != nil {
		return ch, mask, err
	}
	if err := decodeFixed("domain type", c.String("domain-type"), mask[:]); err != nil {
		return ch, mask, err
	}
	return ch, mask, nil
}

func domainAction(c *cli.Context) error {
	ch, mask, err := parseChainAndMask(c)
	if err != nil {
		return err
	}
	domain := signing.ComputeDomain(ch, mask)
	fmt.Printf("Chain: %s\n", ch)
	version := ch.GenesisForkVersion()
	fmt.Printf("Genesis Fork Version: %s\n", hexutil.Encode(version[:]))
	fmt.Printf("Domain: %s\n", hexutil.Encode(domain[:]))
	return nil
}

func signAction(c *cli.Context) error {
	l, err := setupLogger(c)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	ch, err := chain.Parse(c.String("chain"))
	if err != nil {
		return err
	}
	var root phase0.Root
	if err := decodeFixed("root", c.String("root"), root[:]); err != nil {
		return err
	}

	signer, err := setupBLSSigner(c, l)
	if err != nil {
		return fmt.Errorf("failed to setup BLS signer: %w", err)
	}

	sig, err := signer.SignRoot(ch, root)
	if err != nil {
		return fmt.Errorf("failed to sign root: %w", err)
	}
	pubkey, err := signer.GetPublicKey()
	if err != nil {
		return fmt.Errorf("failed to get public key: %w", err)
	}

	l.Sugar().Debugw("Signed builder root",
		"chain", ch.String(),
		"root", hexutil.Encode(root[:]),
	)

	fmt.Printf("Public Key: %s\n", hexutil.Encode(pubkey[:]))
	fmt.Printf("Signature: %s\n", hexutil.Encode(sig[:]))
	return nil
}

func verifyAction(c *cli.Context) error {
	l, err := setupLogger(c)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	ch, mask, err := parseChainAndMask(c)
	if err != nil {
		return err
	}

	var (
		root   phase0.Root
		pubkey phase0.BLSPubKey
		sig    phase0.BLSSignature
	)
	if err := decodeFixed("root", c.String("root"), root[:]); err != nil {
		return err
	}
	if err := decodeFixed("pubkey", c.String("pubkey"), pubkey[:]); err != nil {
		return err
	}
	if err := decodeFixed("signature", c.String("signature"), sig[:]); err != nil {
		return err
	}

	signingRoot := signing.ComputeSigningRoot(root, signing.ComputeDomain(ch, mask))
	if err := bls.VerifySignature(pubkey, signingRoot[:], sig); err != nil {
		l.Sugar().Infow("Signature rejected",
			"chain", ch.String(),
			"kind", bls.KindOf(err).String(),
			"error", err,
		)
		if errors.Is(err, bls.ErrSignatureMismatch) {
			return fmt.Errorf("signature does not verify: %w", err)
		}
		return fmt.Errorf("invalid input: %w", err)
	}

	fmt.Println("Signature: valid")
	return nil
}
