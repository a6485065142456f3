package sqssink

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/roadrunner-server/errors"
)

const (
	awsMetaDataURL       string = "http://169.254.169.254/latest/dynamic/instance-identity/"
	awsMetaDataIMDSv2URL string = "http://169.254.169.254/latest/api/token"
	awsTokenHeader       string = "X-aws-ec2-metadata-token-ttl-seconds" //nolint:gosec
)

func newClient(insideAWS bool, key, secret, sessionToken, endpoint, region string) (*sqs.Client, error) {
	const op = errors.Op("sqs_sink_client")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	var client *sqs.Client

	switch insideAWS {
	case true:
		// respect user provided values
		opts := make([]func(*config.LoadOptions) error, 0, 1)
		if region != "" {
			opts = append(opts, config.WithRegion(region))
		}
		if secret != "" && key != "" && sessionToken != "" {
			opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, sessionToken)))
		}

		awsConf, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, errors.E(op, err)
		}

		// config with retries
		client = sqs.NewFromConfig(awsConf, func(o *sqs.Options) {
			o.Retryer = retry.NewStandard(func(opts *retry.StandardOptions) {
				opts.MaxAttempts = 60
				opts.MaxBackoff = time.Second * 2
			})
		})
	case false:
		awsConf, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, sessionToken)))
		if err != nil {
			return nil, errors.E(op, err)
		}

		// config with retries
		client = sqs.NewFromConfig(awsConf, func(o *sqs.Options) {
			o.BaseEndpoint = &endpoint
			o.Retryer = retry.NewStandard(func(opts *retry.StandardOptions) {
				opts.MaxAttempts = 60
				opts.MaxBackoff = time.Second * 2
			})
		})
	}

	return client, nil
}

// https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/ec2-instance-metadata.html
// https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/identify_ec2_instances.html
func isInAWS() bool {
	client := &http.Client{
		Timeout: time.Second * 2,
	}
	resp, err := client.Get(awsMetaDataURL) //nolint:noctx
	if err != nil {
		return false
	}

	_ = resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// https://docs.aws.amazon.com/AWSEC2/latest/UserGuide/configuring-instance-metadata-service.html
func isInAWSIMDSv2() bool {
	client := &http.Client{
		Timeout: time.Second * 2,
	}

	// probably we're in the IMDSv2, let's try different endpoint
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, awsMetaDataIMDSv2URL, nil)
	if err != nil {
		return false
	}

	// 10 seconds should be fine to just check
	req.Header.Set(awsTokenHeader, "10")

	resp, err := client.Do(req)
	if err != nil {
		return false
	}

	_ = resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
