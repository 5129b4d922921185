package route53

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Route 53 is a global service signed in us-east-1.
const signingRegion = "us-east-1"

// Credentials select the AWS credentials used. Static keys are
// used if AccessKey is set, otherwise the credentials come from the
// AWS default chain (environment variables, shared files for the
// given profile, container and instance roles).
type Credentials struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
	Profile      string
}

func loadConfig(ctx context.Context, httpClient *http.Client,
	creds Credentials) (cfg aws.Config, err error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(signingRegion),
		awsconfig.WithHTTPClient(httpClient),
	}

	switch {
	case creds.AccessKey != "":
		provider := credentials.NewStaticCredentialsProvider(creds.AccessKey,
			creds.SecretKey, creds.SessionToken)
		options = append(options, awsconfig.WithCredentialsProvider(provider))
	case creds.Profile != "":
		options = append(options, awsconfig.WithSharedConfigProfile(creds.Profile))
	}

	cfg, err = awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return cfg, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return cfg, nil
}
