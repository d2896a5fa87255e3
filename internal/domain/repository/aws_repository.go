package repository

import "context"

// AWSClientFactory entrega clientes do SDK por serviço e região para um único profile.
// Uma região vazia usa a região do profile.
type AWSClientFactory interface {
	Profile() string
	AccountID(ctx context.Context) (string, error)

	ACM(ctx context.Context, region string) (ACMAPI, error)
	Amplify(ctx context.Context, region string) (AmplifyAPI, error)
	CloudFormation(ctx context.Context, region string) (CloudFormationAPI, error)
	CloudWatch(ctx context.Context, region string) (CloudWatchAPI, error)
	CloudWatchLogs(ctx context.Context, region string) (CloudWatchLogsAPI, error)
	CodeArtifact(ctx context.Context, region string) (CodeArtifactAPI, error)
	CodePipeline(ctx context.Context, region string) (CodePipelineAPI, error)
	CostExplorer(ctx context.Context) (CostExplorerAPI, error)
	EC2(ctx context.Context, region string) (EC2API, error)
	ECRPublic(ctx context.Context) (ECRPublicAPI, error)
	ECS(ctx context.Context, region string) (ECSAPI, error)
	ELBv2(ctx context.Context, region string) (ELBv2API, error)
	EventBridge(ctx context.Context, region string) (EventBridgeAPI, error)
	KMS(ctx context.Context, region string) (KMSAPI, error)
	Lambda(ctx context.Context, region string) (LambdaAPI, error)
	MQ(ctx context.Context, region string) (MQAPI, error)
	Organizations(ctx context.Context) (OrganizationsAPI, error)
	RDS(ctx context.Context, region string) (RDSAPI, error)
	Route53(ctx context.Context) (Route53API, error)
	S3(ctx context.Context, region string) (S3API, error)
	SecretsManager(ctx context.Context, region string) (SecretsManagerAPI, error)
	SNS(ctx context.Context, region string) (SNSAPI, error)
	SSM(ctx context.Context, region string) (SSMAPI, error)
	STS(ctx context.Context, region string) (STSAPI, error)
}
