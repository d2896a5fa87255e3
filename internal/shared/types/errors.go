package types

import "errors"

var (
	ErrInvalidMode     = errors.New("invalid combination of mode flags")
	ErrMissingArgument = errors.New("missing required argument")

	// Deploy env / git
	ErrInvalidDeployEnv = errors.New("invalid deploy env")
	ErrGitTagRequired   = errors.New("a git tag is required for this deploy env")
	ErrGitTagNotAllowed = errors.New("a git tag is not allowed for this deploy env")

	// Amplify
	ErrAppExists     = errors.New("AWS Amplify app already exists")
	ErrAppNotFound   = errors.New("AWS Amplify app not found")
	ErrInvalidDomain = errors.New("invalid domain")

	// CodeArtifact
	ErrRepositoryExists   = errors.New("CodeArtifact repository already exists")
	ErrRepositoryNotFound = errors.New("CodeArtifact repository not found")
	ErrDomainNotFound     = errors.New("CodeArtifact domain not found")

	// SNS
	ErrPlatformApplicationExists   = errors.New("SNS platform application already exists")
	ErrPlatformApplicationNotFound = errors.New("SNS platform application not found")
	ErrTopicNotFound               = errors.New("SNS topic not found")

	// EventBridge
	ErrRuleNotFound = errors.New("EventBridge rule not found")

	// CloudFormation / SSM / Secrets
	ErrStackNotFound       = errors.New("CloudFormation stack not found")
	ErrStackOutputNotFound = errors.New("CloudFormation stack output not found")
	ErrSecretKeyNotFound   = errors.New("secret key not found")

	ErrInvokeFailed = errors.New("lambda invocation failed")

	// aws-private
	ErrPrivateRegionNotFound = errors.New("region not found in private resources file")
	ErrBastionHostNotFound   = errors.New("bastion host not found")

	// S3
	ErrKMSKeyNotEnabled = errors.New("KMS key is not enabled")
)
