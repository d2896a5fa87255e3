package usecase

import (
	"context"

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
)

// mockACMClient implements repository.ACMAPI.
type mockACMClient struct {
	ListCertificatesFunc    func(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error)
	DescribeCertificateFunc func(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error)
}

func (m *mockACMClient) ListCertificates(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error) {
	if m.ListCertificatesFunc != nil {
		return m.ListCertificatesFunc(ctx, params, optFns...)
	}
	return &acm.ListCertificatesOutput{}, nil
}

func (m *mockACMClient) DescribeCertificate(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
	if m.DescribeCertificateFunc != nil {
		return m.DescribeCertificateFunc(ctx, params, optFns...)
	}
	return &acm.DescribeCertificateOutput{}, nil
}

// mockAmplifyClient implements repository.AmplifyAPI.
type mockAmplifyClient struct {
	ListAppsFunc                func(ctx context.Context, params *amplify.ListAppsInput, optFns ...func(*amplify.Options)) (*amplify.ListAppsOutput, error)
	CreateAppFunc               func(ctx context.Context, params *amplify.CreateAppInput, optFns ...func(*amplify.Options)) (*amplify.CreateAppOutput, error)
	UpdateAppFunc               func(ctx context.Context, params *amplify.UpdateAppInput, optFns ...func(*amplify.Options)) (*amplify.UpdateAppOutput, error)
	DeleteAppFunc               func(ctx context.Context, params *amplify.DeleteAppInput, optFns ...func(*amplify.Options)) (*amplify.DeleteAppOutput, error)
	CreateBranchFunc            func(ctx context.Context, params *amplify.CreateBranchInput, optFns ...func(*amplify.Options)) (*amplify.CreateBranchOutput, error)
	CreateDomainAssociationFunc func(ctx context.Context, params *amplify.CreateDomainAssociationInput, optFns ...func(*amplify.Options)) (*amplify.CreateDomainAssociationOutput, error)
	ListDomainAssociationsFunc  func(ctx context.Context, params *amplify.ListDomainAssociationsInput, optFns ...func(*amplify.Options)) (*amplify.ListDomainAssociationsOutput, error)
	CreateWebhookFunc           func(ctx context.Context, params *amplify.CreateWebhookInput, optFns ...func(*amplify.Options)) (*amplify.CreateWebhookOutput, error)
	StartJobFunc                func(ctx context.Context, params *amplify.StartJobInput, optFns ...func(*amplify.Options)) (*amplify.StartJobOutput, error)
	TagResourceFunc             func(ctx context.Context, params *amplify.TagResourceInput, optFns ...func(*amplify.Options)) (*amplify.TagResourceOutput, error)
}

func (m *mockAmplifyClient) ListApps(ctx context.Context, params *amplify.ListAppsInput, optFns ...func(*amplify.Options)) (*amplify.ListAppsOutput, error) {
	if m.ListAppsFunc != nil {
		return m.ListAppsFunc(ctx, params, optFns...)
	}
	return &amplify.ListAppsOutput{}, nil
}

func (m *mockAmplifyClient) CreateApp(ctx context.Context, params *amplify.CreateAppInput, optFns ...func(*amplify.Options)) (*amplify.CreateAppOutput, error) {
	if m.CreateAppFunc != nil {
		return m.CreateAppFunc(ctx, params, optFns...)
	}
	return &amplify.CreateAppOutput{}, nil
}

func (m *mockAmplifyClient) UpdateApp(ctx context.Context, params *amplify.UpdateAppInput, optFns ...func(*amplify.Options)) (*amplify.UpdateAppOutput, error) {
	if m.UpdateAppFunc != nil {
		return m.UpdateAppFunc(ctx, params, optFns...)
	}
	return &amplify.UpdateAppOutput{}, nil
}

func (m *mockAmplifyClient) DeleteApp(ctx context.Context, params *amplify.DeleteAppInput, optFns ...func(*amplify.Options)) (*amplify.DeleteAppOutput, error) {
	if m.DeleteAppFunc != nil {
		return m.DeleteAppFunc(ctx, params, optFns...)
	}
	return &amplify.DeleteAppOutput{}, nil
}

func (m *mockAmplifyClient) CreateBranch(ctx context.Context, params *amplify.CreateBranchInput, optFns ...func(*amplify.Options)) (*amplify.CreateBranchOutput, error) {
	if m.CreateBranchFunc != nil {
		return m.CreateBranchFunc(ctx, params, optFns...)
	}
	return &amplify.CreateBranchOutput{}, nil
}

func (m *mockAmplifyClient) CreateDomainAssociation(ctx context.Context, params *amplify.CreateDomainAssociationInput, optFns ...func(*amplify.Options)) (*amplify.CreateDomainAssociationOutput, error) {
	if m.CreateDomainAssociationFunc != nil {
		return m.CreateDomainAssociationFunc(ctx, params, optFns...)
	}
	return &amplify.CreateDomainAssociationOutput{}, nil
}

func (m *mockAmplifyClient) ListDomainAssociations(ctx context.Context, params *amplify.ListDomainAssociationsInput, optFns ...func(*amplify.Options)) (*amplify.ListDomainAssociationsOutput, error) {
	if m.ListDomainAssociationsFunc != nil {
		return m.ListDomainAssociationsFunc(ctx, params, optFns...)
	}
	return &amplify.ListDomainAssociationsOutput{}, nil
}

func (m *mockAmplifyClient) CreateWebhook(ctx context.Context, params *amplify.CreateWebhookInput, optFns ...func(*amplify.Options)) (*amplify.CreateWebhookOutput, error) {
	if m.CreateWebhookFunc != nil {
		return m.CreateWebhookFunc(ctx, params, optFns...)
	}
	return &amplify.CreateWebhookOutput{}, nil
}

func (m *mockAmplifyClient) StartJob(ctx context.Context, params *amplify.StartJobInput, optFns ...func(*amplify.Options)) (*amplify.StartJobOutput, error) {
	if m.StartJobFunc != nil {
		return m.StartJobFunc(ctx, params, optFns...)
	}
	return &amplify.StartJobOutput{}, nil
}

func (m *mockAmplifyClient) TagResource(ctx context.Context, params *amplify.TagResourceInput, optFns ...func(*amplify.Options)) (*amplify.TagResourceOutput, error) {
	if m.TagResourceFunc != nil {
		return m.TagResourceFunc(ctx, params, optFns...)
	}
	return &amplify.TagResourceOutput{}, nil
}

// mockCloudFormationClient implements repository.CloudFormationAPI.
type mockCloudFormationClient struct {
	DescribeStacksFunc     func(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	ListStackResourcesFunc func(ctx context.Context, params *cloudformation.ListStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error)
}

func (m *mockCloudFormationClient) DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	if m.DescribeStacksFunc != nil {
		return m.DescribeStacksFunc(ctx, params, optFns...)
	}
	return &cloudformation.DescribeStacksOutput{}, nil
}

func (m *mockCloudFormationClient) ListStackResources(ctx context.Context, params *cloudformation.ListStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error) {
	if m.ListStackResourcesFunc != nil {
		return m.ListStackResourcesFunc(ctx, params, optFns...)
	}
	return &cloudformation.ListStackResourcesOutput{}, nil
}

// mockCloudWatchClient implements repository.CloudWatchAPI.
type mockCloudWatchClient struct {
	PutMetricAlarmFunc func(ctx context.Context, params *cloudwatch.PutMetricAlarmInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error)
	DescribeAlarmsFunc func(ctx context.Context, params *cloudwatch.DescribeAlarmsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.DescribeAlarmsOutput, error)
	DeleteAlarmsFunc   func(ctx context.Context, params *cloudwatch.DeleteAlarmsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.DeleteAlarmsOutput, error)
	TagResourceFunc    func(ctx context.Context, params *cloudwatch.TagResourceInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.TagResourceOutput, error)
}

func (m *mockCloudWatchClient) PutMetricAlarm(ctx context.Context, params *cloudwatch.PutMetricAlarmInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error) {
	if m.PutMetricAlarmFunc != nil {
		return m.PutMetricAlarmFunc(ctx, params, optFns...)
	}
	return &cloudwatch.PutMetricAlarmOutput{}, nil
}

func (m *mockCloudWatchClient) DescribeAlarms(ctx context.Context, params *cloudwatch.DescribeAlarmsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.DescribeAlarmsOutput, error) {
	if m.DescribeAlarmsFunc != nil {
		return m.DescribeAlarmsFunc(ctx, params, optFns...)
	}
	return &cloudwatch.DescribeAlarmsOutput{}, nil
}

func (m *mockCloudWatchClient) DeleteAlarms(ctx context.Context, params *cloudwatch.DeleteAlarmsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.DeleteAlarmsOutput, error) {
	if m.DeleteAlarmsFunc != nil {
		return m.DeleteAlarmsFunc(ctx, params, optFns...)
	}
	return &cloudwatch.DeleteAlarmsOutput{}, nil
}

func (m *mockCloudWatchClient) TagResource(ctx context.Context, params *cloudwatch.TagResourceInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.TagResourceOutput, error) {
	if m.TagResourceFunc != nil {
		return m.TagResourceFunc(ctx, params, optFns...)
	}
	return &cloudwatch.TagResourceOutput{}, nil
}

// mockCloudWatchLogsClient implements repository.CloudWatchLogsAPI.
type mockCloudWatchLogsClient struct {
	DescribeLogGroupsFunc func(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DeleteLogGroupFunc    func(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error)
}

func (m *mockCloudWatchLogsClient) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	if m.DescribeLogGroupsFunc != nil {
		return m.DescribeLogGroupsFunc(ctx, params, optFns...)
	}
	return &cloudwatchlogs.DescribeLogGroupsOutput{}, nil
}

func (m *mockCloudWatchLogsClient) DeleteLogGroup(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	if m.DeleteLogGroupFunc != nil {
		return m.DeleteLogGroupFunc(ctx, params, optFns...)
	}
	return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
}

// mockCodeArtifactClient implements repository.CodeArtifactAPI.
type mockCodeArtifactClient struct {
	ListRepositoriesFunc func(ctx context.Context, params *codeartifact.ListRepositoriesInput, optFns ...func(*codeartifact.Options)) (*codeartifact.ListRepositoriesOutput, error)
	ListDomainsFunc      func(ctx context.Context, params *codeartifact.ListDomainsInput, optFns ...func(*codeartifact.Options)) (*codeartifact.ListDomainsOutput, error)
	CreateRepositoryFunc func(ctx context.Context, params *codeartifact.CreateRepositoryInput, optFns ...func(*codeartifact.Options)) (*codeartifact.CreateRepositoryOutput, error)
	DeleteRepositoryFunc func(ctx context.Context, params *codeartifact.DeleteRepositoryInput, optFns ...func(*codeartifact.Options)) (*codeartifact.DeleteRepositoryOutput, error)
}

func (m *mockCodeArtifactClient) ListRepositories(ctx context.Context, params *codeartifact.ListRepositoriesInput, optFns ...func(*codeartifact.Options)) (*codeartifact.ListRepositoriesOutput, error) {
	if m.ListRepositoriesFunc != nil {
		return m.ListRepositoriesFunc(ctx, params, optFns...)
	}
	return &codeartifact.ListRepositoriesOutput{}, nil
}

func (m *mockCodeArtifactClient) ListDomains(ctx context.Context, params *codeartifact.ListDomainsInput, optFns ...func(*codeartifact.Options)) (*codeartifact.ListDomainsOutput, error) {
	if m.ListDomainsFunc != nil {
		return m.ListDomainsFunc(ctx, params, optFns...)
	}
	return &codeartifact.ListDomainsOutput{}, nil
}

func (m *mockCodeArtifactClient) CreateRepository(ctx context.Context, params *codeartifact.CreateRepositoryInput, optFns ...func(*codeartifact.Options)) (*codeartifact.CreateRepositoryOutput, error) {
	if m.CreateRepositoryFunc != nil {
		return m.CreateRepositoryFunc(ctx, params, optFns...)
	}
	return &codeartifact.CreateRepositoryOutput{}, nil
}

func (m *mockCodeArtifactClient) DeleteRepository(ctx context.Context, params *codeartifact.DeleteRepositoryInput, optFns ...func(*codeartifact.Options)) (*codeartifact.DeleteRepositoryOutput, error) {
	if m.DeleteRepositoryFunc != nil {
		return m.DeleteRepositoryFunc(ctx, params, optFns...)
	}
	return &codeartifact.DeleteRepositoryOutput{}, nil
}

// mockCodePipelineClient implements repository.CodePipelineAPI.
type mockCodePipelineClient struct {
	StartPipelineExecutionFunc func(ctx context.Context, params *codepipeline.StartPipelineExecutionInput, optFns ...func(*codepipeline.Options)) (*codepipeline.StartPipelineExecutionOutput, error)
}

func (m *mockCodePipelineClient) StartPipelineExecution(ctx context.Context, params *codepipeline.StartPipelineExecutionInput, optFns ...func(*codepipeline.Options)) (*codepipeline.StartPipelineExecutionOutput, error) {
	if m.StartPipelineExecutionFunc != nil {
		return m.StartPipelineExecutionFunc(ctx, params, optFns...)
	}
	return &codepipeline.StartPipelineExecutionOutput{}, nil
}

// mockCostExplorerClient implements repository.CostExplorerAPI.
type mockCostExplorerClient struct {
	GetTagsFunc         func(ctx context.Context, params *costexplorer.GetTagsInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetTagsOutput, error)
	GetCostAndUsageFunc func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

func (m *mockCostExplorerClient) GetTags(ctx context.Context, params *costexplorer.GetTagsInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetTagsOutput, error) {
	if m.GetTagsFunc != nil {
		return m.GetTagsFunc(ctx, params, optFns...)
	}
	return &costexplorer.GetTagsOutput{}, nil
}

func (m *mockCostExplorerClient) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	if m.GetCostAndUsageFunc != nil {
		return m.GetCostAndUsageFunc(ctx, params, optFns...)
	}
	return &costexplorer.GetCostAndUsageOutput{}, nil
}

// mockEC2Client implements repository.EC2API.
type mockEC2Client struct {
	DescribeVpcEndpointsFunc      func(ctx context.Context, params *ec2.DescribeVpcEndpointsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error)
	DescribeNetworkInterfacesFunc func(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
}

func (m *mockEC2Client) DescribeVpcEndpoints(ctx context.Context, params *ec2.DescribeVpcEndpointsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error) {
	if m.DescribeVpcEndpointsFunc != nil {
		return m.DescribeVpcEndpointsFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeVpcEndpointsOutput{}, nil
}

func (m *mockEC2Client) DescribeNetworkInterfaces(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error) {
	if m.DescribeNetworkInterfacesFunc != nil {
		return m.DescribeNetworkInterfacesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeNetworkInterfacesOutput{}, nil
}

// mockECRPublicClient implements repository.ECRPublicAPI.
type mockECRPublicClient struct {
	DescribeImageTagsFunc func(ctx context.Context, params *ecrpublic.DescribeImageTagsInput, optFns ...func(*ecrpublic.Options)) (*ecrpublic.DescribeImageTagsOutput, error)
}

func (m *mockECRPublicClient) DescribeImageTags(ctx context.Context, params *ecrpublic.DescribeImageTagsInput, optFns ...func(*ecrpublic.Options)) (*ecrpublic.DescribeImageTagsOutput, error) {
	if m.DescribeImageTagsFunc != nil {
		return m.DescribeImageTagsFunc(ctx, params, optFns...)
	}
	return &ecrpublic.DescribeImageTagsOutput{}, nil
}

// mockECSClient implements repository.ECSAPI.
type mockECSClient struct {
	DescribeClustersFunc func(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error)
}

func (m *mockECSClient) DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	if m.DescribeClustersFunc != nil {
		return m.DescribeClustersFunc(ctx, params, optFns...)
	}
	return &ecs.DescribeClustersOutput{}, nil
}

// mockELBv2Client implements repository.ELBv2API.
type mockELBv2Client struct {
	DescribeLoadBalancersFunc func(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
}

func (m *mockELBv2Client) DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error) {
	if m.DescribeLoadBalancersFunc != nil {
		return m.DescribeLoadBalancersFunc(ctx, params, optFns...)
	}
	return &elasticloadbalancingv2.DescribeLoadBalancersOutput{}, nil
}

// mockEventBridgeClient implements repository.EventBridgeAPI.
type mockEventBridgeClient struct {
	ListRulesFunc         func(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error)
	ListTargetsByRuleFunc func(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
	RemoveTargetsFunc     func(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRuleFunc        func(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
	TagResourceFunc       func(ctx context.Context, params *eventbridge.TagResourceInput, optFns ...func(*eventbridge.Options)) (*eventbridge.TagResourceOutput, error)
}

func (m *mockEventBridgeClient) ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error) {
	if m.ListRulesFunc != nil {
		return m.ListRulesFunc(ctx, params, optFns...)
	}
	return &eventbridge.ListRulesOutput{}, nil
}

func (m *mockEventBridgeClient) ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error) {
	if m.ListTargetsByRuleFunc != nil {
		return m.ListTargetsByRuleFunc(ctx, params, optFns...)
	}
	return &eventbridge.ListTargetsByRuleOutput{}, nil
}

func (m *mockEventBridgeClient) RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error) {
	if m.RemoveTargetsFunc != nil {
		return m.RemoveTargetsFunc(ctx, params, optFns...)
	}
	return &eventbridge.RemoveTargetsOutput{}, nil
}

func (m *mockEventBridgeClient) DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error) {
	if m.DeleteRuleFunc != nil {
		return m.DeleteRuleFunc(ctx, params, optFns...)
	}
	return &eventbridge.DeleteRuleOutput{}, nil
}

func (m *mockEventBridgeClient) TagResource(ctx context.Context, params *eventbridge.TagResourceInput, optFns ...func(*eventbridge.Options)) (*eventbridge.TagResourceOutput, error) {
	if m.TagResourceFunc != nil {
		return m.TagResourceFunc(ctx, params, optFns...)
	}
	return &eventbridge.TagResourceOutput{}, nil
}

// mockKMSClient implements repository.KMSAPI.
type mockKMSClient struct {
	DescribeKeyFunc func(ctx context.Context, params *kms.DescribeKeyInput, optFns ...func(*kms.Options)) (*kms.DescribeKeyOutput, error)
}

func (m *mockKMSClient) DescribeKey(ctx context.Context, params *kms.DescribeKeyInput, optFns ...func(*kms.Options)) (*kms.DescribeKeyOutput, error) {
	if m.DescribeKeyFunc != nil {
		return m.DescribeKeyFunc(ctx, params, optFns...)
	}
	return &kms.DescribeKeyOutput{}, nil
}

// mockLambdaClient implements repository.LambdaAPI.
type mockLambdaClient struct {
	GetFunctionFunc func(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	InvokeFunc      func(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

func (m *mockLambdaClient) GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	if m.GetFunctionFunc != nil {
		return m.GetFunctionFunc(ctx, params, optFns...)
	}
	return &lambda.GetFunctionOutput{}, nil
}

func (m *mockLambdaClient) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, params, optFns...)
	}
	return &lambda.InvokeOutput{}, nil
}

// mockMQClient implements repository.MQAPI.
type mockMQClient struct {
	ListBrokersFunc func(ctx context.Context, params *mq.ListBrokersInput, optFns ...func(*mq.Options)) (*mq.ListBrokersOutput, error)
}

func (m *mockMQClient) ListBrokers(ctx context.Context, params *mq.ListBrokersInput, optFns ...func(*mq.Options)) (*mq.ListBrokersOutput, error) {
	if m.ListBrokersFunc != nil {
		return m.ListBrokersFunc(ctx, params, optFns...)
	}
	return &mq.ListBrokersOutput{}, nil
}

// mockOrganizationsClient implements repository.OrganizationsAPI.
type mockOrganizationsClient struct {
	ListAccountsFunc func(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error)
}

func (m *mockOrganizationsClient) ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx, params, optFns...)
	}
	return &organizations.ListAccountsOutput{}, nil
}

// mockRDSClient implements repository.RDSAPI.
type mockRDSClient struct {
	DescribeDBInstancesFunc func(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

func (m *mockRDSClient) DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	if m.DescribeDBInstancesFunc != nil {
		return m.DescribeDBInstancesFunc(ctx, params, optFns...)
	}
	return &rds.DescribeDBInstancesOutput{}, nil
}

// mockRoute53Client implements repository.Route53API.
type mockRoute53Client struct {
	ListHostedZonesFunc          func(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSetsFunc   func(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
	ChangeResourceRecordSetsFunc func(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

func (m *mockRoute53Client) ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
	if m.ListHostedZonesFunc != nil {
		return m.ListHostedZonesFunc(ctx, params, optFns...)
	}
	return &route53.ListHostedZonesOutput{}, nil
}

func (m *mockRoute53Client) ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error) {
	if m.ListResourceRecordSetsFunc != nil {
		return m.ListResourceRecordSetsFunc(ctx, params, optFns...)
	}
	return &route53.ListResourceRecordSetsOutput{}, nil
}

func (m *mockRoute53Client) ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error) {
	if m.ChangeResourceRecordSetsFunc != nil {
		return m.ChangeResourceRecordSetsFunc(ctx, params, optFns...)
	}
	return &route53.ChangeResourceRecordSetsOutput{}, nil
}

// mockS3Client implements repository.S3API.
type mockS3Client struct {
	HeadBucketFunc           func(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucketFunc         func(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutPublicAccessBlockFunc func(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	PutObjectFunc            func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutBucketEncryptionFunc  func(ctx context.Context, params *s3.PutBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.PutBucketEncryptionOutput, error)
}

func (m *mockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.HeadBucketFunc != nil {
		return m.HeadBucketFunc(ctx, params, optFns...)
	}
	return &s3.HeadBucketOutput{}, nil
}

func (m *mockS3Client) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if m.CreateBucketFunc != nil {
		return m.CreateBucketFunc(ctx, params, optFns...)
	}
	return &s3.CreateBucketOutput{}, nil
}

func (m *mockS3Client) PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error) {
	if m.PutPublicAccessBlockFunc != nil {
		return m.PutPublicAccessBlockFunc(ctx, params, optFns...)
	}
	return &s3.PutPublicAccessBlockOutput{}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) PutBucketEncryption(ctx context.Context, params *s3.PutBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.PutBucketEncryptionOutput, error) {
	if m.PutBucketEncryptionFunc != nil {
		return m.PutBucketEncryptionFunc(ctx, params, optFns...)
	}
	return &s3.PutBucketEncryptionOutput{}, nil
}

// mockSecretsManagerClient implements repository.SecretsManagerAPI.
type mockSecretsManagerClient struct {
	GetSecretValueFunc    func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	GetRandomPasswordFunc func(ctx context.Context, params *secretsmanager.GetRandomPasswordInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetRandomPasswordOutput, error)
	CreateSecretFunc      func(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	DescribeSecretFunc    func(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	DeleteSecretFunc      func(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

func (m *mockSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if m.GetSecretValueFunc != nil {
		return m.GetSecretValueFunc(ctx, params, optFns...)
	}
	return &secretsmanager.GetSecretValueOutput{}, nil
}

func (m *mockSecretsManagerClient) GetRandomPassword(ctx context.Context, params *secretsmanager.GetRandomPasswordInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetRandomPasswordOutput, error) {
	if m.GetRandomPasswordFunc != nil {
		return m.GetRandomPasswordFunc(ctx, params, optFns...)
	}
	return &secretsmanager.GetRandomPasswordOutput{}, nil
}

func (m *mockSecretsManagerClient) CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	if m.CreateSecretFunc != nil {
		return m.CreateSecretFunc(ctx, params, optFns...)
	}
	return &secretsmanager.CreateSecretOutput{}, nil
}

func (m *mockSecretsManagerClient) DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error) {
	if m.DescribeSecretFunc != nil {
		return m.DescribeSecretFunc(ctx, params, optFns...)
	}
	return &secretsmanager.DescribeSecretOutput{}, nil
}

func (m *mockSecretsManagerClient) DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error) {
	if m.DeleteSecretFunc != nil {
		return m.DeleteSecretFunc(ctx, params, optFns...)
	}
	return &secretsmanager.DeleteSecretOutput{}, nil
}

// mockSNSClient implements repository.SNSAPI.
type mockSNSClient struct {
	ListTopicsFunc                func(ctx context.Context, params *sns.ListTopicsInput, optFns ...func(*sns.Options)) (*sns.ListTopicsOutput, error)
	DeleteTopicFunc               func(ctx context.Context, params *sns.DeleteTopicInput, optFns ...func(*sns.Options)) (*sns.DeleteTopicOutput, error)
	TagResourceFunc               func(ctx context.Context, params *sns.TagResourceInput, optFns ...func(*sns.Options)) (*sns.TagResourceOutput, error)
	ListSubscriptionsByTopicFunc  func(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error)
	SubscribeFunc                 func(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	UnsubscribeFunc               func(ctx context.Context, params *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error)
	ListPlatformApplicationsFunc  func(ctx context.Context, params *sns.ListPlatformApplicationsInput, optFns ...func(*sns.Options)) (*sns.ListPlatformApplicationsOutput, error)
	CreatePlatformApplicationFunc func(ctx context.Context, params *sns.CreatePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformApplicationOutput, error)
	DeletePlatformApplicationFunc func(ctx context.Context, params *sns.DeletePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.DeletePlatformApplicationOutput, error)
}

func (m *mockSNSClient) ListTopics(ctx context.Context, params *sns.ListTopicsInput, optFns ...func(*sns.Options)) (*sns.ListTopicsOutput, error) {
	if m.ListTopicsFunc != nil {
		return m.ListTopicsFunc(ctx, params, optFns...)
	}
	return &sns.ListTopicsOutput{}, nil
}

func (m *mockSNSClient) DeleteTopic(ctx context.Context, params *sns.DeleteTopicInput, optFns ...func(*sns.Options)) (*sns.DeleteTopicOutput, error) {
	if m.DeleteTopicFunc != nil {
		return m.DeleteTopicFunc(ctx, params, optFns...)
	}
	return &sns.DeleteTopicOutput{}, nil
}

func (m *mockSNSClient) TagResource(ctx context.Context, params *sns.TagResourceInput, optFns ...func(*sns.Options)) (*sns.TagResourceOutput, error) {
	if m.TagResourceFunc != nil {
		return m.TagResourceFunc(ctx, params, optFns...)
	}
	return &sns.TagResourceOutput{}, nil
}

func (m *mockSNSClient) ListSubscriptionsByTopic(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error) {
	if m.ListSubscriptionsByTopicFunc != nil {
		return m.ListSubscriptionsByTopicFunc(ctx, params, optFns...)
	}
	return &sns.ListSubscriptionsByTopicOutput{}, nil
}

func (m *mockSNSClient) Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, params, optFns...)
	}
	return &sns.SubscribeOutput{}, nil
}

func (m *mockSNSClient) Unsubscribe(ctx context.Context, params *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error) {
	if m.UnsubscribeFunc != nil {
		return m.UnsubscribeFunc(ctx, params, optFns...)
	}
	return &sns.UnsubscribeOutput{}, nil
}

func (m *mockSNSClient) ListPlatformApplications(ctx context.Context, params *sns.ListPlatformApplicationsInput, optFns ...func(*sns.Options)) (*sns.ListPlatformApplicationsOutput, error) {
	if m.ListPlatformApplicationsFunc != nil {
		return m.ListPlatformApplicationsFunc(ctx, params, optFns...)
	}
	return &sns.ListPlatformApplicationsOutput{}, nil
}

func (m *mockSNSClient) CreatePlatformApplication(ctx context.Context, params *sns.CreatePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformApplicationOutput, error) {
	if m.CreatePlatformApplicationFunc != nil {
		return m.CreatePlatformApplicationFunc(ctx, params, optFns...)
	}
	return &sns.CreatePlatformApplicationOutput{}, nil
}

func (m *mockSNSClient) DeletePlatformApplication(ctx context.Context, params *sns.DeletePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.DeletePlatformApplicationOutput, error) {
	if m.DeletePlatformApplicationFunc != nil {
		return m.DeletePlatformApplicationFunc(ctx, params, optFns...)
	}
	return &sns.DeletePlatformApplicationOutput{}, nil
}

// mockSSMClient implements repository.SSMAPI.
type mockSSMClient struct {
	GetParameterFunc       func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameterFunc       func(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameterFunc    func(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
	DescribeParametersFunc func(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

func (m *mockSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if m.GetParameterFunc != nil {
		return m.GetParameterFunc(ctx, params, optFns...)
	}
	return &ssm.GetParameterOutput{}, nil
}

func (m *mockSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	if m.PutParameterFunc != nil {
		return m.PutParameterFunc(ctx, params, optFns...)
	}
	return &ssm.PutParameterOutput{}, nil
}

func (m *mockSSMClient) DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	if m.DeleteParameterFunc != nil {
		return m.DeleteParameterFunc(ctx, params, optFns...)
	}
	return &ssm.DeleteParameterOutput{}, nil
}

func (m *mockSSMClient) DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	if m.DescribeParametersFunc != nil {
		return m.DescribeParametersFunc(ctx, params, optFns...)
	}
	return &ssm.DescribeParametersOutput{}, nil
}

// mockSTSClient implements repository.STSAPI.
type mockSTSClient struct {
	GetCallerIdentityFunc func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.GetCallerIdentityFunc != nil {
		return m.GetCallerIdentityFunc(ctx, params, optFns...)
	}
	return &sts.GetCallerIdentityOutput{}, nil
}
