package awsSMBLSSigner

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Commit-Boost/builder-api-types/pkg/bls"
	"github.com/Commit-Boost/builder-api-types/pkg/chain"
	"github.com/Commit-Boost/builder-api-types/pkg/signing"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	mock.Mock
}

func (m *mockSecretsManager) GetSecretValue(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(input)
	out, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return out, args.Error(1)
}

var testConfig = &AWSSMBLSSignerConfig{
	Region:     "us-east-1",
	SecretName: "builder-bls-key",
}

var expectedInput = &secretsmanager.GetSecretValueInput{
	SecretId:     aws.String("builder-bls-key"),
	VersionStage: aws.String("AWSCURRENT"),
}

func setupTestSigner(t *testing.T) (*AWSSMBLSSigner, *mockSecretsManager) {
	client := &mockSecretsManager{}
	client.Test(t)
	t.Cleanup(func() { client.AssertExpectations(t) })

	logger, _ := zap.NewDevelopment()
	return NewAWSSMBLSSignerWithClient(testConfig, client, logger), client
}

func testSecretKey(t *testing.T) *bls.SecretKey {
	t.Helper()
	sk, err := bls.GenerateSecretKey(bytes.Repeat([]byte{0x77}, 32))
	require.NoError(t, err)
	return sk
}

func TestAWSSMBLSSigner_SignRoot(t *testing.T) {
	signer, client := setupTestSigner(t)
	sk := testSecretKey(t)

	client.On("GetSecretValue", expectedInput).
		Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String(hexutil.Encode(sk.Bytes()))}, nil).
		Twice()

	root := phase0.Root{0xca, 0xfe}
	sig, err := signer.SignRoot(chain.Mainnet, root)
	require.NoError(t, err)

	pubkey, err := signer.GetPublicKey()
	require.NoError(t, err)

	assert.Equal(t, bls.FromPublicKey(sk.PublicKey()), pubkey)
	assert.NoError(t, signing.VerifyBuilderRoot(chain.Mainnet, pubkey, root, sig))
}

func TestAWSSMBLSSigner_ClientError(t *testing.T) {
	signer, client := setupTestSigner(t)
	awsErr := errors.New("access denied")

	client.On("GetSecretValue", expectedInput).Return(nil, awsErr).Twice()

	_, err := signer.SignRoot(chain.Mainnet, phase0.Root{})
	assert.ErrorIs(t, err, awsErr)

	_, err = signer.GetPublicKey()
	assert.ErrorIs(t, err, awsErr)
}

func TestAWSSMBLSSigner_BadSecret(t *testing.T) {
	signer, client := setupTestSigner(t)

	client.On("GetSecretValue", expectedInput).
		Return(&secretsmanager.GetSecretValueOutput{}, nil).Once()
	_, err := signer.GetPublicKey()
	assert.ErrorContains(t, err, "secret string is nil")

	client.On("GetSecretValue", expectedInput).
		Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("0x1234")}, nil).Once()
	_, err = signer.GetPublicKey()
	assert.ErrorIs(t, err, bls.ErrMalformedEncoding)
}

func TestNewAWSSMBLSSigner_RequiresSecretName(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	_, err := NewAWSSMBLSSigner(&AWSSMBLSSignerConfig{Region: "us-east-1"}, logger)
	assert.Error(t, err)

	_, err = NewAWSSMBLSSigner(nil, logger)
	assert.Error(t, err)
}
