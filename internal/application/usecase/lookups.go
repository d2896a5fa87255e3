package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	amplifytypes "github.com/aws/aws-sdk-go-v2/service/amplify/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/awserr"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

const (
	// Prefixo das regras EventBridge criadas pelo Amplify.
	amplifyRulePrefix = "amplify-"

	amplifyPageSize = 100
)

// --- Amplify ---

func listAmplifyApps(ctx context.Context, client repository.AmplifyAPI, results *entity.Results) ([]amplifytypes.App, error) {
	apps, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]amplifytypes.App, *string, error) {
		out, err := client.ListApps(ctx, &amplify.ListAppsInput{MaxResults: amplifyPageSize, NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceAmplify, "list_apps", out)
		return out.Apps, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS Amplify apps: %w", err)
	}
	return apps, nil
}

func findAmplifyApp(apps []amplifytypes.App, name string) (amplifytypes.App, bool) {
	for _, app := range apps {
		if aws.ToString(app.Name) == name {
			return app, true
		}
	}
	return amplifytypes.App{}, false
}

// --- CloudFormation ---

func describeStack(ctx context.Context, client repository.CloudFormationAPI, name string, results *entity.Results) (cftypes.Stack, error) {
	out, err := client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{StackName: aws.String(name)})
	if err != nil {
		results.SetError(entity.ServiceCloudFormation, "describe_stacks", err)
		if strings.Contains(awserr.Message(err), "does not exist") {
			return cftypes.Stack{}, fmt.Errorf("%w: %s", types.ErrStackNotFound, name)
		}
		return cftypes.Stack{}, fmt.Errorf("error describing stack '%s': %w", name, err)
	}
	results.Set(entity.ServiceCloudFormation, "describe_stacks", out)
	if len(out.Stacks) == 0 {
		return cftypes.Stack{}, fmt.Errorf("%w: %s", types.ErrStackNotFound, name)
	}
	return out.Stacks[0], nil
}

// stackOutput devolve o valor da primeira saída cuja chave satisfaz match.
func stackOutput(stack cftypes.Stack, match func(key string) bool) (string, bool) {
	for _, o := range stack.Outputs {
		if match(aws.ToString(o.OutputKey)) {
			return aws.ToString(o.OutputValue), true
		}
	}
	return "", false
}

func stackTags(stack cftypes.Stack) map[string]string {
	tags := make(map[string]string, len(stack.Tags))
	for _, t := range stack.Tags {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags
}

// --- SNS ---

func listTopicArns(ctx context.Context, client repository.SNSAPI, results *entity.Results) ([]string, error) {
	arns, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]string, *string, error) {
		out, err := client.ListTopics(ctx, &sns.ListTopicsInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceSNS, "list_topics", out)
		page := make([]string, 0, len(out.Topics))
		for _, t := range out.Topics {
			page = append(page, aws.ToString(t.TopicArn))
		}
		return page, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS SNS topics: %w", err)
	}
	return arns, nil
}

func findTopicContaining(arns []string, fragment string) (string, bool) {
	for _, arn := range arns {
		if strings.Contains(arn, fragment) {
			return arn, true
		}
	}
	return "", false
}

// --- SSM ---

// listParameterNames lista os nomes de parâmetros, opcionalmente filtrados por 'Name Contains'.
func listParameterNames(ctx context.Context, client repository.SSMAPI, contains string, results *entity.Results) ([]string, error) {
	var filters []ssmtypes.ParameterStringFilter
	if contains != "" {
		filters = append(filters, ssmtypes.ParameterStringFilter{
			Key:    aws.String("Name"),
			Option: aws.String("Contains"),
			Values: []string{contains},
		})
	}

	names, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]string, *string, error) {
		out, err := client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
			ParameterFilters: filters,
			NextToken:        token,
		})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceSSM, "describe_parameters", out)
		page := make([]string, 0, len(out.Parameters))
		for _, p := range out.Parameters {
			page = append(page, aws.ToString(p.Name))
		}
		return page, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS SSM parameters: %w", err)
	}
	return names, nil
}

func getParameterValue(ctx context.Context, client repository.SSMAPI, name string, results *entity.Results) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		results.SetError(entity.ServiceSSM, "get_parameter", err)
		return "", fmt.Errorf("error getting AWS SSM parameter '%s': %w", name, err)
	}
	results.Append(entity.ServiceSSM, "get_parameter", out)
	if out.Parameter == nil {
		return "", nil
	}
	return aws.ToString(out.Parameter.Value), nil
}

// putParameter grava um parâmetro String/Standard.
func putParameter(ctx context.Context, client repository.SSMAPI, input *ssm.PutParameterInput, results *entity.Results) error {
	input.Type = ssmtypes.ParameterTypeString
	input.Tier = ssmtypes.ParameterTierStandard
	out, err := client.PutParameter(ctx, input)
	if err != nil {
		results.SetError(entity.ServiceSSM, "put_parameter", err)
		return fmt.Errorf("error putting AWS SSM parameter '%s': %w", aws.ToString(input.Name), err)
	}
	results.Append(entity.ServiceSSM, "put_parameter", out)
	return nil
}

func ssmTags(tags map[string]string) []ssmtypes.Tag {
	out := make([]ssmtypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		out = append(out, ssmtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

// --- Secrets Manager ---

// getSecretJSON lê um segredo cujo SecretString é um objeto JSON de strings.
func getSecretJSON(ctx context.Context, client repository.SecretsManagerAPI, id string, results *entity.Results) (map[string]string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(id)})
	if err != nil {
		results.SetError(entity.ServiceSecretsManager, "get_secret_value", err)
		return nil, fmt.Errorf("error getting AWS Secrets Manager secret '%s': %w", id, err)
	}
	masked := *out
	masked.SecretString = aws.String("****")
	masked.SecretBinary = nil
	results.Append(entity.ServiceSecretsManager, "get_secret_value", &masked)

	var values map[string]string
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &values); err != nil {
		return nil, fmt.Errorf("error parsing secret '%s': %w", id, err)
	}
	return values, nil
}

func secretKey(values map[string]string, id, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: '%s' in '%s'", types.ErrSecretKeyNotFound, key, id)
	}
	return v, nil
}

// --- EventBridge ---

func listRules(ctx context.Context, client repository.EventBridgeAPI, prefix string, results *entity.Results) ([]ebtypes.Rule, error) {
	rules, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ebtypes.Rule, *string, error) {
		out, err := client.ListRules(ctx, &eventbridge.ListRulesInput{
			NamePrefix: aws.String(prefix),
			NextToken:  token,
		})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceEvents, "list_rules", out)
		return out.Rules, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS EventBridge rules: %w", err)
	}
	return rules, nil
}

// --- CloudWatch ---

func listMetricAlarms(ctx context.Context, client repository.CloudWatchAPI, results *entity.Results) ([]cwtypes.MetricAlarm, error) {
	alarms, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]cwtypes.MetricAlarm, *string, error) {
		out, err := client.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{
			MaxRecords: aws.Int32(100),
			NextToken:  token,
		})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceCloudWatch, "describe_alarms", out)
		return out.MetricAlarms, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS CloudWatch alarms: %w", err)
	}
	return alarms, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
