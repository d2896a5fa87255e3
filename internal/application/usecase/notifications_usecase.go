package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

const (
	CreateSNSMobPushScript         = "aws-create-sns-mob-push"
	DeleteSNSMobPushScript         = "aws-delete-sns-mob-push"
	QuerySNSTopicsWithNoSubsScript = "aws-query-sns-topics-with-no-subs"

	firebaseAccountInfo = "FIREBASE_ACCOUNT_INFO"
)

// Atributos de evento da platform application que apontam para o tópico de notificações.
var platformEventAttributes = []string{
	"EventEndpointCreated",
	"EventEndpointDeleted",
	"EventEndpointUpdated",
	"EventDeliveryFailure",
}

// SNSMobPushOptions are the inputs of create/delete-sns-mob-push.
type SNSMobPushOptions struct {
	Region    string
	Repo      string
	DeployEnv string
	OutputDir string
}

// QuerySNSOptions são as entradas de query-sns-topics-with-no-subs.
type QuerySNSOptions struct {
	Region    string
	OutputDir string
}

// NotificationsUseCase gerencia platform applications de push (FCM) e consultas de tópicos SNS.
type NotificationsUseCase struct {
	scriptBase
}

// NewNotificationsUseCase creates a new notifications use case.
func NewNotificationsUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *NotificationsUseCase {
	return &NotificationsUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// CreateSNSMobPush creates the '<repo>-<env>' GCM platform application wired to the topic and
// feedback role of the notif CDK stack, and stores its ARN in SSM.
func (uc *NotificationsUseCase) CreateSNSMobPush(ctx context.Context, opts SNSMobPushOptions) error {
	results := entity.NewResults(CreateSNSMobPushScript, entity.ServiceCloudFormation, entity.ServiceSNS, entity.ServiceSSM)

	return uc.run(CreateSNSMobPushScript, ModeCreate, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv); err != nil {
			return err
		}
		snsClient, err := uc.clients.SNS(ctx, opts.Region)
		if err != nil {
			return err
		}
		ssmClient, err := uc.clients.SSM(ctx, opts.Region)
		if err != nil {
			return err
		}
		secrets, err := uc.clients.SecretsManager(ctx, opts.Region)
		if err != nil {
			return err
		}
		cfn, err := uc.clients.CloudFormation(ctx, opts.Region)
		if err != nil {
			return err
		}

		name := entity.ResourceName(opts.Repo, opts.DeployEnv)
		arn, err := uc.findPlatformApplication(ctx, snsClient, name, results)
		if err != nil {
			return err
		}
		if arn != "" {
			return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrPlatformApplicationExists, name, entity.RegionLabel(opts.Region))
		}

		paramName := fmt.Sprintf("/%s/ecs-container-env/%s", opts.Repo, firebaseAccountInfo)
		uc.console.LogInfo("Loading the Firebase account info from SSM: '%s'", paramName)
		raw, err := getParameterValue(ctx, ssmClient, paramName, results)
		if err != nil {
			return err
		}
		var account map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &account); err != nil {
			return fmt.Errorf("error parsing '%s': %w", paramName, err)
		}

		secretName := opts.Repo + "/ecs-container-secret"
		uc.console.LogInfo("Loading the Firebase account info (private key) from AWS Secrets Manager: '%s'", secretName)
		secretResults := entity.NewResults(CreateSNSMobPushScript)
		values, err := getSecretJSON(ctx, secrets, secretName, secretResults)
		if err != nil {
			return err
		}
		privateKey, err := secretKey(values, secretName, firebaseAccountInfo+"_PRIVATE_KEY")
		if err != nil {
			return err
		}
		account["private_key"] = unescape(privateKey)
		credential, err := json.Marshal(account)
		if err != nil {
			return fmt.Errorf("error encoding the Firebase credential: %w", err)
		}

		stackName := entity.StackName(opts.Repo, entity.StackComponentNotif, opts.DeployEnv)
		uc.console.LogInfo("Retrieving SNS topic ARN & IAM role ARN from the '%s' (AWS CDK) stack CloudFormation output", stackName)
		stack, err := describeStack(ctx, cfn, stackName, results)
		if err != nil {
			return err
		}
		prefix := entity.SNSMobPushOutputPrefix(stackName)
		topicArn, okTopic := stackOutput(stack, func(key string) bool { return strings.HasPrefix(key, prefix+"topic") })
		roleArn, okRole := stackOutput(stack, func(key string) bool { return strings.HasPrefix(key, prefix+"role") })
		if !okTopic || !okRole {
			return fmt.Errorf("%w: SNS topic ARN & IAM role ARN (from the '%s' stack)", types.ErrStackOutputNotFound, stackName)
		}

		attrs := map[string]string{
			"PlatformCredential":        string(credential),
			"SuccessFeedbackSampleRate": "100",
			"SuccessFeedbackRoleArn":    roleArn,
			"FailureFeedbackRoleArn":    roleArn,
		}
		for _, a := range platformEventAttributes {
			attrs[a] = topicArn
		}

		uc.console.LogInfo("Creating the SNS platform application '%s'", name)
		out, err := snsClient.CreatePlatformApplication(ctx, &sns.CreatePlatformApplicationInput{
			Name:       aws.String(name),
			Platform:   aws.String("GCM"),
			Attributes: attrs,
		})
		if err != nil {
			results.SetError(entity.ServiceSNS, "create_platform_application", err)
			return fmt.Errorf("error creating SNS platform application '%s': %w", name, err)
		}
		results.Set(entity.ServiceSNS, "create_platform_application", out)

		param := "/" + entity.SNSMobPush + "/" + opts.Repo + "/" + opts.DeployEnv
		uc.console.LogInfo("Writing the ARN of the SNS platform application '%s' to SSM: %s", aws.ToString(out.PlatformApplicationArn), param)
		return putParameter(ctx, ssmClient, &ssm.PutParameterInput{
			Name:  aws.String(param),
			Value: out.PlatformApplicationArn,
			Tags:  ssmTags(stackTags(stack)),
		}, results)
	})
}

// DeleteSNSMobPush removes the platform application and its SSM parameter.
func (uc *NotificationsUseCase) DeleteSNSMobPush(ctx context.Context, opts SNSMobPushOptions) error {
	results := entity.NewResults(DeleteSNSMobPushScript, entity.ServiceSNS, entity.ServiceSSM)

	return uc.run(DeleteSNSMobPushScript, ModeDelete, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv); err != nil {
			return err
		}
		snsClient, err := uc.clients.SNS(ctx, opts.Region)
		if err != nil {
			return err
		}
		ssmClient, err := uc.clients.SSM(ctx, opts.Region)
		if err != nil {
			return err
		}

		name := entity.ResourceName(opts.Repo, opts.DeployEnv)
		arn, err := uc.findPlatformApplication(ctx, snsClient, name, results)
		if err != nil {
			return err
		}
		if arn == "" {
			return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrPlatformApplicationNotFound, name, entity.RegionLabel(opts.Region))
		}
		uc.console.LogInfo("SNS platform application ARN: '%s'", arn)

		out, err := snsClient.DeletePlatformApplication(ctx, &sns.DeletePlatformApplicationInput{
			PlatformApplicationArn: aws.String(arn),
		})
		if err != nil {
			results.SetError(entity.ServiceSNS, "delete_platform_application", err)
			return fmt.Errorf("error deleting SNS platform application '%s': %w", name, err)
		}
		results.Set(entity.ServiceSNS, "delete_platform_application", out)

		param := "/" + entity.SNSMobPush + "/" + opts.Repo + "/" + opts.DeployEnv
		uc.console.LogInfo("Deleting the AWS Systems Manager Parameter Store parameter: %s", param)
		del, err := ssmClient.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(param)})
		if err != nil {
			results.SetError(entity.ServiceSSM, "delete_parameter", err)
			return fmt.Errorf("error deleting AWS SSM parameter '%s': %w", param, err)
		}
		results.Set(entity.ServiceSSM, "delete_parameter", del)
		return nil
	})
}

// QueryTopicsWithNoSubs grava em '<script>-list.txt' os tópicos sem nenhuma subscription.
func (uc *NotificationsUseCase) QueryTopicsWithNoSubs(ctx context.Context, opts QuerySNSOptions) error {
	return uc.run(QuerySNSTopicsWithNoSubsScript, ModeBase, opts.OutputDir, nil, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}
		client, err := uc.clients.SNS(ctx, opts.Region)
		if err != nil {
			return err
		}

		scratch := entity.NewResults(QuerySNSTopicsWithNoSubsScript)
		arns, err := listTopicArns(ctx, client, scratch)
		if err != nil {
			return err
		}

		var empty []string
		status := uc.console.Status(fmt.Sprintf("Listing subscriptions of %d SNS topics...", len(arns)))
		for _, arn := range arns {
			status.Update("Listing subscriptions of: " + arn)
			out, err := client.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{TopicArn: aws.String(arn)})
			if err != nil {
				status.Stop()
				return fmt.Errorf("error listing subscriptions of '%s': %w", arn, err)
			}
			if len(out.Subscriptions) == 0 {
				empty = append(empty, arn)
			}
		}
		status.Stop()
		sort.Strings(empty)
		uc.console.LogInfo("Found %d SNS topics (of %d) with no subscriptions", len(empty), len(arns))

		if len(empty) > 0 {
			table := uc.console.CreateTable()
			table.AddColumn("Topic")
			table.AddColumn("ARN")
			for _, arn := range empty {
				table.AddRow(arn[strings.LastIndex(arn, ":")+1:], arn)
			}
			uc.console.Println(table.Render())
		}

		return uc.writeText(QuerySNSTopicsWithNoSubsScript+"-list.txt", opts.OutputDir, empty...)
	})
}

// findPlatformApplication devolve o ARN da platform application cujo nome (sufixo após a
// última '/') é name, ou "" quando não existe.
func (uc *NotificationsUseCase) findPlatformApplication(ctx context.Context, client repository.SNSAPI, name string, results *entity.Results) (string, error) {
	uc.console.LogInfo("Checking whether there is already an SNS platform application of the name: '%s'", name)
	apps, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]snstypes.PlatformApplication, *string, error) {
		out, err := client.ListPlatformApplications(ctx, &sns.ListPlatformApplicationsInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceSNS, "list_platform_applications", redactPlatformApplications(out))
		return out.PlatformApplications, out.NextToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceSNS, "list_platform_applications", err)
		return "", fmt.Errorf("error listing SNS platform applications: %w", err)
	}
	for _, app := range apps {
		arn := aws.ToString(app.PlatformApplicationArn)
		if arn[strings.LastIndex(arn, "/")+1:] == name {
			return arn, nil
		}
	}
	return "", nil
}

// redactPlatformApplications remove os atributos (credenciais) antes de gravar a resposta.
func redactPlatformApplications(out *sns.ListPlatformApplicationsOutput) *sns.ListPlatformApplicationsOutput {
	masked := *out
	masked.PlatformApplications = make([]snstypes.PlatformApplication, len(out.PlatformApplications))
	for i, app := range out.PlatformApplications {
		masked.PlatformApplications[i] = snstypes.PlatformApplication{PlatformApplicationArn: app.PlatformApplicationArn}
	}
	return &masked
}

// unescape interpreta sequências de escape (\n, \uXXXX) guardadas literalmente no segredo.
func unescape(s string) string {
	var sb strings.Builder
	for len(s) > 0 {
		r, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			sb.WriteByte(s[0])
			s = s[1:]
			continue
		}
		sb.WriteRune(r)
		s = tail
	}
	return sb.String()
}
