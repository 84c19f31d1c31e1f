// Package config loads the demo configuration from the process environment,
// an optional .env file, and the standard AWS credential chain. Nothing in
// this repository keeps durable local state; configuration is the only input
// beyond the remote service itself.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
)

// DefaultRegion is used when AWS_REGION is unset, matching the region the
// AgentCore service launched in.
const DefaultRegion = "us-east-1"

// Config carries everything a demo needs to construct clients.
type Config struct {
	// Region the demos operate in.
	Region string

	// AWS is the resolved SDK configuration (credentials, region, retryer).
	AWS aws.Config

	// GatewayRoleARN is the execution role passed to CreateGateway. Role
	// creation is out of scope here; the ARN must be provisioned upfront.
	GatewayRoleARN string

	// RuntimeContainerURI and RuntimeRoleARN enable the full agent runtime
	// deployment cycle when both are set. Left empty, the runtime demo
	// stops after its local test.
	RuntimeContainerURI string
	RuntimeRoleARN      string
}

// Options tweak Load behavior.
type Options struct {
	// DotenvPath overrides the .env location. Empty means "./.env".
	DotenvPath string

	// SkipDotenv disables .env loading entirely.
	SkipDotenv bool
}

// Load resolves the configuration. A missing .env file is not an error; the
// file is a convenience for local runs, mirroring the optional dotenv import
// in typical demo setups.
func Load(ctx context.Context, optFns ...func(o *Options)) (*Config, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	if !opts.SkipDotenv {
		path := opts.DotenvPath
		if path == "" {
			path = ".env"
		}
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Config{
		Region:              region,
		AWS:                 awsCfg,
		GatewayRoleARN:      os.Getenv("AGENTCORE_GATEWAY_ROLE_ARN"),
		RuntimeContainerURI: os.Getenv("AGENTCORE_RUNTIME_CONTAINER_URI"),
		RuntimeRoleARN:      os.Getenv("AGENTCORE_RUNTIME_ROLE_ARN"),
	}, nil
}
