package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const platformArnPrefix = "arn:aws:sns:us-east-1:111122223333:app/GCM/"

func platformApps(names ...string) *mockSNSClient {
	return &mockSNSClient{
		ListPlatformApplicationsFunc: func(ctx context.Context, params *sns.ListPlatformApplicationsInput, optFns ...func(*sns.Options)) (*sns.ListPlatformApplicationsOutput, error) {
			out := &sns.ListPlatformApplicationsOutput{}
			for _, n := range names {
				out.PlatformApplications = append(out.PlatformApplications, snstypes.PlatformApplication{
					PlatformApplicationArn: aws.String(platformArnPrefix + n),
					Attributes:             map[string]string{"PlatformCredential": "secret"},
				})
			}
			return out, nil
		},
	}
}

func TestCreateSNSMobPush(t *testing.T) {
	env := newTestEnv(t)

	snsMock := platformApps("other-app-dev")
	var created *sns.CreatePlatformApplicationInput
	snsMock.CreatePlatformApplicationFunc = func(ctx context.Context, params *sns.CreatePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformApplicationOutput, error) {
		created = params
		return &sns.CreatePlatformApplicationOutput{PlatformApplicationArn: aws.String(platformArnPrefix + aws.ToString(params.Name))}, nil
	}
	env.factory.sns = snsMock

	var put *ssm.PutParameterInput
	env.factory.ssm = &mockSSMClient{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			assert.Equal(t, "/foo-bar-app/ecs-container-env/FIREBASE_ACCOUNT_INFO", aws.ToString(params.Name))
			assert.True(t, aws.ToBool(params.WithDecryption))
			return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(`{"project_id":"foo"}`)}}, nil
		},
		PutParameterFunc: func(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
			put = params
			return &ssm.PutParameterOutput{}, nil
		},
	}
	env.factory.secrets = &mockSecretsManagerClient{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			return &secretsmanager.GetSecretValueOutput{
				SecretString: aws.String(`{"FIREBASE_ACCOUNT_INFO_PRIVATE_KEY":"-----BEGIN-----\\nabc\\n-----END-----"}`),
			}, nil
		},
	}
	env.factory.cloudFormation = &mockCloudFormationClient{
		DescribeStacksFunc: func(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
			assert.Equal(t, "CdkFooBarNotifDevStack", aws.ToString(params.StackName))
			return &cloudformation.DescribeStacksOutput{Stacks: []cftypes.Stack{{
				Outputs: []cftypes.Output{
					{OutputKey: aws.String("Cdkfoobargwdevsnsmobpushtopic1A2B"), OutputValue: aws.String("arn:topic")},
					{OutputKey: aws.String("Cdkfoobargwdevsnsmobpushrole3C4D"), OutputValue: aws.String("arn:role")},
				},
				Tags: []cftypes.Tag{{Key: aws.String("env-type"), Value: aws.String("dev")}},
			}}}, nil
		},
	}

	uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
	err := uc.CreateSNSMobPush(context.Background(), SNSMobPushOptions{Region: "us-east-1", Repo: "foo-bar-app", DeployEnv: "dev", OutputDir: env.dir})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "foo-bar-app-dev", aws.ToString(created.Name))
	assert.Equal(t, "GCM", aws.ToString(created.Platform))
	assert.Equal(t, "100", created.Attributes["SuccessFeedbackSampleRate"])
	for _, a := range platformEventAttributes {
		assert.Equal(t, "arn:topic", created.Attributes[a])
	}
	assert.Equal(t, "arn:role", created.Attributes["SuccessFeedbackRoleArn"])
	assert.Equal(t, "arn:role", created.Attributes["FailureFeedbackRoleArn"])

	var credential map[string]string
	require.NoError(t, json.Unmarshal([]byte(created.Attributes["PlatformCredential"]), &credential))
	assert.Equal(t, "foo", credential["project_id"])
	assert.Equal(t, "-----BEGIN-----\nabc\n-----END-----", credential["private_key"])

	require.NotNil(t, put)
	assert.Equal(t, "/sns-mob-push/foo-bar-app/dev", aws.ToString(put.Name))
	assert.Equal(t, platformArnPrefix+"foo-bar-app-dev", aws.ToString(put.Value))
	assert.Equal(t, ssmtypes.ParameterTypeString, put.Type)
	require.Len(t, put.Tags, 1)
	assert.Equal(t, "env-type", aws.ToString(put.Tags[0].Key))

	res := env.readResults(t, CreateSNSMobPushScript, entity.ServiceSNS)
	assert.Contains(t, res, "create_platform_application")
	assert.NotContains(t, env.readText(t, CreateSNSMobPushScript+"-sns-res.json"), "PlatformCredential")
	env.readResults(t, CreateSNSMobPushScript, entity.ServiceCloudFormation)
	env.readResults(t, CreateSNSMobPushScript, entity.ServiceSSM)
}

func TestCreateSNSMobPushAlreadyExists(t *testing.T) {
	env := newTestEnv(t)
	env.factory.sns = platformApps("foo-bar-app-dev")

	uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
	err := uc.CreateSNSMobPush(context.Background(), SNSMobPushOptions{Region: "us-east-1", Repo: "foo-bar-app", DeployEnv: "dev", OutputDir: env.dir})

	assert.ErrorIs(t, err, types.ErrPlatformApplicationExists)
}

func TestCreateSNSMobPushMissingOutputs(t *testing.T) {
	env := newTestEnv(t)
	env.factory.sns = platformApps()
	env.factory.ssm = &mockSSMClient{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(`{}`)}}, nil
		},
	}
	env.factory.secrets = &mockSecretsManagerClient{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"FIREBASE_ACCOUNT_INFO_PRIVATE_KEY":"k"}`)}, nil
		},
	}
	env.factory.cloudFormation = &mockCloudFormationClient{
		DescribeStacksFunc: func(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
			return &cloudformation.DescribeStacksOutput{Stacks: []cftypes.Stack{{}}}, nil
		},
	}

	uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
	err := uc.CreateSNSMobPush(context.Background(), SNSMobPushOptions{Region: "us-east-1", Repo: "foo-bar-app", DeployEnv: "dev", OutputDir: env.dir})

	assert.ErrorIs(t, err, types.ErrStackOutputNotFound)
}

func TestDeleteSNSMobPush(t *testing.T) {
	tests := []struct {
		name    string
		apps    []string
		wantErr error
	}{
		{name: "deletes application and parameter", apps: []string{"foo-bar-app-dev"}},
		{name: "missing application", apps: []string{"foo-bar-app-prod"}, wantErr: types.ErrPlatformApplicationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			snsMock := platformApps(tt.apps...)
			var deletedArn string
			snsMock.DeletePlatformApplicationFunc = func(ctx context.Context, params *sns.DeletePlatformApplicationInput, optFns ...func(*sns.Options)) (*sns.DeletePlatformApplicationOutput, error) {
				deletedArn = aws.ToString(params.PlatformApplicationArn)
				return &sns.DeletePlatformApplicationOutput{}, nil
			}
			env.factory.sns = snsMock
			var deletedParam string
			env.factory.ssm = &mockSSMClient{
				DeleteParameterFunc: func(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
					deletedParam = aws.ToString(params.Name)
					return &ssm.DeleteParameterOutput{}, nil
				},
			}

			uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
			err := uc.DeleteSNSMobPush(context.Background(), SNSMobPushOptions{Region: "us-east-1", Repo: "foo-bar-app", DeployEnv: "dev", OutputDir: env.dir})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, deletedArn)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, platformArnPrefix+"foo-bar-app-dev", deletedArn)
			assert.Equal(t, "/sns-mob-push/foo-bar-app/dev", deletedParam)
		})
	}
}

func TestQueryTopicsWithNoSubs(t *testing.T) {
	env := newTestEnv(t)
	env.factory.sns = &mockSNSClient{
		ListTopicsFunc: func(ctx context.Context, params *sns.ListTopicsInput, optFns ...func(*sns.Options)) (*sns.ListTopicsOutput, error) {
			if params.NextToken == nil {
				return &sns.ListTopicsOutput{
					Topics:    []snstypes.Topic{{TopicArn: aws.String("arn:z-empty")}, {TopicArn: aws.String("arn:busy")}},
					NextToken: aws.String("next"),
				}, nil
			}
			return &sns.ListTopicsOutput{Topics: []snstypes.Topic{{TopicArn: aws.String("arn:a-empty")}}}, nil
		},
		ListSubscriptionsByTopicFunc: func(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error) {
			if aws.ToString(params.TopicArn) == "arn:busy" {
				return &sns.ListSubscriptionsByTopicOutput{Subscriptions: []snstypes.Subscription{{Protocol: aws.String("email")}}}, nil
			}
			return &sns.ListSubscriptionsByTopicOutput{}, nil
		},
	}

	uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
	require.NoError(t, uc.QueryTopicsWithNoSubs(context.Background(), QuerySNSOptions{Region: "us-east-1", OutputDir: env.dir}))

	assert.Equal(t, "arn:a-empty\narn:z-empty\n", env.readText(t, "aws-query-sns-topics-with-no-subs-list.txt"))
}

func TestQueryTopicsWithNoSubsFailure(t *testing.T) {
	env := newTestEnv(t)
	env.factory.sns = &mockSNSClient{
		ListTopicsFunc: func(ctx context.Context, params *sns.ListTopicsInput, optFns ...func(*sns.Options)) (*sns.ListTopicsOutput, error) {
			return nil, errors.New("denied")
		},
	}

	uc := NewNotificationsUseCase(env.factory, env.export, env.console, env.config)
	err := uc.QueryTopicsWithNoSubs(context.Background(), QuerySNSOptions{Region: "us-east-1", OutputDir: env.dir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "a\nb", unescape(`a\nb`))
	assert.Equal(t, "é", unescape(`é`))
	assert.Equal(t, `trailing\`, unescape(`trailing\`))
}
