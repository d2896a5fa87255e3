package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/codeartifact"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/mq"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/logging"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
)

// globalRegion é onde ficam os endpoints de serviços globais.
const globalRegion = entity.DefaultRegion

// ClientFactory implementa o AWSClientFactory com cache de config e de clientes.
type ClientFactory struct {
	profile string
	logger  logging.Logger

	cfg         *aws.Config
	accountID   string
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewClientFactory cria uma factory para o profile informado. Com logger não nulo, as
// requisições e respostas do SDK são registradas nele.
func NewClientFactory(profile string, logger logging.Logger) *ClientFactory {
	return &ClientFactory{
		profile:     profile,
		logger:      logger,
		clientCache: make(map[string]interface{}),
	}
}

var _ repository.AWSClientFactory = (*ClientFactory)(nil)

// Profile returns the shared-config profile, empty for the default chain.
func (f *ClientFactory) Profile() string { return f.profile }

func (f *ClientFactory) getAWSConfig(ctx context.Context) (aws.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cfg != nil {
		return *f.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if f.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(f.profile))
	}
	if f.logger != nil {
		opts = append(opts,
			config.WithLogger(f.logger),
			config.WithClientLogMode(aws.LogRequest|aws.LogResponse|aws.LogRetries),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", f.profile, err)
	}
	if cfg.Region == "" {
		cfg.Region = entity.DefaultRegion
	}

	f.cfg = &cfg
	return cfg, nil
}

// getClient devolve o cliente em cache para service/region ou constrói um novo.
func getClient[T any](ctx context.Context, f *ClientFactory, service, region string, build func(aws.Config) T) (T, error) {
	var zero T

	cfg, err := f.getAWSConfig(ctx)
	if err != nil {
		return zero, err
	}
	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	cacheKey := fmt.Sprintf("%s-%s", regionalCfg.Region, service)

	f.mu.Lock()
	defer f.mu.Unlock()
	if client, ok := f.clientCache[cacheKey]; ok {
		return client.(T), nil
	}

	client := build(regionalCfg)
	f.clientCache[cacheKey] = client
	return client, nil
}

// AccountID resolve a conta do profile via STS uma única vez.
func (f *ClientFactory) AccountID(ctx context.Context) (string, error) {
	f.mu.Lock()
	cached := f.accountID
	f.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	client, err := f.STS(ctx, globalRegion)
	if err != nil {
		return "", err
	}
	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", f.profile, err)
	}

	f.mu.Lock()
	f.accountID = aws.ToString(result.Account)
	f.mu.Unlock()
	return aws.ToString(result.Account), nil
}

func (f *ClientFactory) ACM(ctx context.Context, region string) (repository.ACMAPI, error) {
	return getClient(ctx, f, "acm", region, func(c aws.Config) *acm.Client { return acm.NewFromConfig(c) })
}

func (f *ClientFactory) Amplify(ctx context.Context, region string) (repository.AmplifyAPI, error) {
	return getClient(ctx, f, "amplify", region, func(c aws.Config) *amplify.Client { return amplify.NewFromConfig(c) })
}

func (f *ClientFactory) CloudFormation(ctx context.Context, region string) (repository.CloudFormationAPI, error) {
	return getClient(ctx, f, "cloudformation", region, func(c aws.Config) *cloudformation.Client { return cloudformation.NewFromConfig(c) })
}

func (f *ClientFactory) CloudWatch(ctx context.Context, region string) (repository.CloudWatchAPI, error) {
	return getClient(ctx, f, "cloudwatch", region, func(c aws.Config) *cloudwatch.Client { return cloudwatch.NewFromConfig(c) })
}

func (f *ClientFactory) CloudWatchLogs(ctx context.Context, region string) (repository.CloudWatchLogsAPI, error) {
	return getClient(ctx, f, "logs", region, func(c aws.Config) *cloudwatchlogs.Client { return cloudwatchlogs.NewFromConfig(c) })
}

func (f *ClientFactory) CodeArtifact(ctx context.Context, region string) (repository.CodeArtifactAPI, error) {
	return getClient(ctx, f, "codeartifact", region, func(c aws.Config) *codeartifact.Client { return codeartifact.NewFromConfig(c) })
}

func (f *ClientFactory) CodePipeline(ctx context.Context, region string) (repository.CodePipelineAPI, error) {
	return getClient(ctx, f, "codepipeline", region, func(c aws.Config) *codepipeline.Client { return codepipeline.NewFromConfig(c) })
}

// CostExplorer só responde em us-east-1.
func (f *ClientFactory) CostExplorer(ctx context.Context) (repository.CostExplorerAPI, error) {
	return getClient(ctx, f, "ce", globalRegion, func(c aws.Config) *costexplorer.Client { return costexplorer.NewFromConfig(c) })
}

func (f *ClientFactory) EC2(ctx context.Context, region string) (repository.EC2API, error) {
	return getClient(ctx, f, "ec2", region, func(c aws.Config) *ec2.Client { return ec2.NewFromConfig(c) })
}

// ECRPublic: o registro público fica em us-east-1.
func (f *ClientFactory) ECRPublic(ctx context.Context) (repository.ECRPublicAPI, error) {
	return getClient(ctx, f, "ecr-public", globalRegion, func(c aws.Config) *ecrpublic.Client { return ecrpublic.NewFromConfig(c) })
}

func (f *ClientFactory) ECS(ctx context.Context, region string) (repository.ECSAPI, error) {
	return getClient(ctx, f, "ecs", region, func(c aws.Config) *ecs.Client { return ecs.NewFromConfig(c) })
}

func (f *ClientFactory) ELBv2(ctx context.Context, region string) (repository.ELBv2API, error) {
	return getClient(ctx, f, "elbv2", region, func(c aws.Config) *elasticloadbalancingv2.Client {
		return elasticloadbalancingv2.NewFromConfig(c)
	})
}

func (f *ClientFactory) EventBridge(ctx context.Context, region string) (repository.EventBridgeAPI, error) {
	return getClient(ctx, f, "events", region, func(c aws.Config) *eventbridge.Client { return eventbridge.NewFromConfig(c) })
}

func (f *ClientFactory) KMS(ctx context.Context, region string) (repository.KMSAPI, error) {
	return getClient(ctx, f, "kms", region, func(c aws.Config) *kms.Client { return kms.NewFromConfig(c) })
}

func (f *ClientFactory) Lambda(ctx context.Context, region string) (repository.LambdaAPI, error) {
	return getClient(ctx, f, "lambda", region, func(c aws.Config) *lambda.Client { return lambda.NewFromConfig(c) })
}

func (f *ClientFactory) MQ(ctx context.Context, region string) (repository.MQAPI, error) {
	return getClient(ctx, f, "mq", region, func(c aws.Config) *mq.Client { return mq.NewFromConfig(c) })
}

func (f *ClientFactory) Organizations(ctx context.Context) (repository.OrganizationsAPI, error) {
	return getClient(ctx, f, "organizations", globalRegion, func(c aws.Config) *organizations.Client { return organizations.NewFromConfig(c) })
}

func (f *ClientFactory) RDS(ctx context.Context, region string) (repository.RDSAPI, error) {
	return getClient(ctx, f, "rds", region, func(c aws.Config) *rds.Client { return rds.NewFromConfig(c) })
}

func (f *ClientFactory) Route53(ctx context.Context) (repository.Route53API, error) {
	return getClient(ctx, f, "route53", globalRegion, func(c aws.Config) *route53.Client { return route53.NewFromConfig(c) })
}

func (f *ClientFactory) S3(ctx context.Context, region string) (repository.S3API, error) {
	return getClient(ctx, f, "s3", region, func(c aws.Config) *s3.Client { return s3.NewFromConfig(c) })
}

func (f *ClientFactory) SecretsManager(ctx context.Context, region string) (repository.SecretsManagerAPI, error) {
	return getClient(ctx, f, "secretsmanager", region, func(c aws.Config) *secretsmanager.Client { return secretsmanager.NewFromConfig(c) })
}

func (f *ClientFactory) SNS(ctx context.Context, region string) (repository.SNSAPI, error) {
	return getClient(ctx, f, "sns", region, func(c aws.Config) *sns.Client { return sns.NewFromConfig(c) })
}

func (f *ClientFactory) SSM(ctx context.Context, region string) (repository.SSMAPI, error) {
	return getClient(ctx, f, "ssm", region, func(c aws.Config) *ssm.Client { return ssm.NewFromConfig(c) })
}

func (f *ClientFactory) STS(ctx context.Context, region string) (repository.STSAPI, error) {
	return getClient(ctx, f, "sts", region, func(c aws.Config) *sts.Client { return sts.NewFromConfig(c) })
}
