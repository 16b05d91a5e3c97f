// Package awsSMBLSSigner provides AWS Secrets Manager-based BLS signature functionality.
// This package implements the IBLSSigner interface using a BLS12-381 secret key stored
// in AWS Secrets Manager as a hex string, so the key never lives in local configuration.
package awsSMBLSSigner

import (
	"fmt"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/blsSigner"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/signing"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// AWSSMBLSSignerConfig holds the configuration for AWS Secrets Manager BLS signer.
// This configuration specifies the AWS region and secret name containing the BLS secret key.
type AWSSMBLSSignerConfig struct {
	// Region specifies the AWS region where the secret is stored
	Region string
	// SecretName is the name of the secret in AWS Secrets Manager containing the hex encoded key
	SecretName string
}

// AWSSMBLSSigner implements IBLSSigner using AWS Secrets Manager for secure key storage.
// The secret key is retrieved for each operation and is not kept in memory between calls.
type AWSSMBLSSigner struct {
	logger *zap.Logger
	config *AWSSMBLSSignerConfig
	client secretsmanageriface.SecretsManagerAPI
}

var _ blsSigner.IBLSSigner = (*AWSSMBLSSigner)(nil)

// NewAWSSMBLSSigner creates a new AWSSMBLSSigner backed by a Secrets Manager client
// for the configured region.
//
// Parameters:
//   - config: The region and secret name to read the key from
//   - logger: A zap logger for logging operations and errors
//
// Returns:
//   - *AWSSMBLSSigner: A new AWS Secrets Manager BLS signer instance
//   - error: An error if the configuration is incomplete or the AWS session cannot be created
func NewAWSSMBLSSigner(config *AWSSMBLSSignerConfig, logger *zap.Logger) (*AWSSMBLSSigner, error) {
	if config == nil || config.SecretName == "" {
		return nil, fmt.Errorf("secret name cannot be empty")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewAWSSMBLSSignerWithClient(config, secretsmanager.New(sess), logger), nil
}

// NewAWSSMBLSSignerWithClient creates a new AWSSMBLSSigner using the provided
// Secrets Manager client.
func NewAWSSMBLSSignerWithClient(config *AWSSMBLSSignerConfig, client secretsmanageriface.SecretsManagerAPI, logger *zap.Logger) *AWSSMBLSSigner {
	return &AWSSMBLSSigner{
		logger: logger,
		config: config,
		client: client,
	}
}

// getSecret retrieves and parses the BLS secret key from AWS Secrets Manager.
//
// Returns:
//   - *bls.SecretKey: The BLS secret key
//   - error: An error if retrieval or parsing fails
func (a *AWSSMBLSSigner) getSecret() (*bls.SecretKey, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(a.config.SecretName),
		VersionStage: aws.String("AWSCURRENT"),
	}

	result, err := a.client.GetSecretValue(input)
	if err != nil {
		a.logger.Sugar().Errorw("Failed to read BLS secret",
			zap.String("secretName", a.config.SecretName),
			zap.Error(err),
		)
		return nil, err
	}

	if result.SecretString == nil {
		return nil, fmt.Errorf("secret string is nil")
	}
	return blsSigner.ParseSecretKeyHex(*result.SecretString)
}

// SignRoot signs the object root under the chain's builder domain using the key
// stored in AWS Secrets Manager.
//
// Parameters:
//   - c: The network the signature is for
//   - objectRoot: The hash tree root of the message being signed
//
// Returns:
//   - phase0.BLSSignature: The compressed signature
//   - error: An error if key retrieval fails
func (a *AWSSMBLSSigner) SignRoot(c chain.Chain, objectRoot phase0.Root) (phase0.BLSSignature, error) {
	sk, err := a.getSecret()
	if err != nil {
		return phase0.BLSSignature{}, fmt.Errorf("failed to get secret: %w", err)
	}
	a.logger.Sugar().Debugw("Signing builder root",
		zap.String("chain", c.String()),
		zap.String("objectRoot", hexutil.Encode(objectRoot[:])),
	)
	return signing.SignBuilderRoot(c, sk, objectRoot), nil
}

// GetPublicKey returns the BLS public key corresponding to the secret in AWS Secrets Manager.
func (a *AWSSMBLSSigner) GetPublicKey() (phase0.BLSPubKey, error) {
	sk, err := a.getSecret()
	if err != nil {
		return phase0.BLSPubKey{}, fmt.Errorf("failed to get secret: %w", err)
	}
	return bls.FromPublicKey(sk.PublicKey()), nil
}
