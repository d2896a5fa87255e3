package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	amplifytypes "github.com/aws/aws-sdk-go-v2/service/amplify/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecrpublic/types"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/awserr"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	CreateAmplifyScript = "aws-create-amplify"
	DeleteAmplifyScript = "aws-delete-amplify"

	alarmDescription = "HTTPS 5xx Errors"
	// Caracteres excluídos da senha gerada para o basic auth.
	basicAuthExcludeChars = "@%*()_+=`~{}|[]\\:\";'?,./"
)

// CreateAmplifyOptions são as entradas de create-amplify. OAuth e Notifications selecionam o modo;
// sem nenhum dos dois o app é criado (modo base).
type CreateAmplifyOptions struct {
	Region         string
	Repo           string
	DeployEnv      string
	GitTag         string
	Domain         string
	BackendStack   string
	OAuthRes       string
	CustomImageTag string
	Pwd            string
	OAuth          bool
	Notifications  bool
	OutputDir      string
}

// DeleteAmplifyOptions are the inputs of delete-amplify.
type DeleteAmplifyOptions struct {
	Region    string
	Repo      string
	DeployEnv string
	OutputDir string
}

// AmplifyUseCase cria e remove apps Amplify com seus recursos auxiliares.
type AmplifyUseCase struct {
	scriptBase
	now func() time.Time
}

// NewAmplifyUseCase creates a new Amplify use case.
func NewAmplifyUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *AmplifyUseCase {
	return &AmplifyUseCase{
		scriptBase: newScriptBase(clients, exportRepo, console, config),
		now:        time.Now,
	}
}

// Create runs the oauth, notifications or base step of create-amplify.
func (uc *AmplifyUseCase) Create(ctx context.Context, opts CreateAmplifyOptions) error {
	if opts.OAuth && opts.Notifications {
		return fmt.Errorf("%w: --oauth and --notifications", types.ErrInvalidMode)
	}
	switch {
	case opts.OAuth:
		return uc.run(CreateAmplifyScript, ModeOAuth, opts.OutputDir, nil, func() error {
			return uc.oauthSteps(ctx, opts)
		})
	case opts.Notifications:
		results := entity.NewResults(CreateAmplifyScript+"-"+ModeNotifications,
			entity.ServiceCloudWatch, entity.ServiceEvents, entity.ServiceLambda, entity.ServiceSNS)
		return uc.run(CreateAmplifyScript, ModeNotifications, opts.OutputDir, results, func() error {
			return uc.notificationsSteps(ctx, opts, results)
		})
	default:
		results := entity.NewResults(CreateAmplifyScript,
			entity.ServiceAmplify, entity.ServiceCloudFormation, entity.ServiceSecretsManager)
		return uc.run(CreateAmplifyScript, ModeBase, opts.OutputDir, results, func() error {
			return uc.baseSteps(ctx, opts, results)
		})
	}
}

// oauthSteps grava o comando curl que gera o token OAuth do Bitbucket.
func (uc *AmplifyUseCase) oauthSteps(ctx context.Context, opts CreateAmplifyOptions) error {
	if err := requireArgs("region", opts.Region); err != nil {
		return err
	}
	client, err := uc.clients.SecretsManager(ctx, opts.Region)
	if err != nil {
		return err
	}

	uc.console.LogInfo("Generating the Bitbucket OAuth Token (for Bitbucket workspace: '%s')", uc.config.GitWorkspace)
	values, err := getSecretJSON(ctx, client, uc.config.OAuthSecretID, entity.NewResults(CreateAmplifyScript))
	if err != nil {
		return err
	}
	key, err := secretKey(values, uc.config.OAuthSecretID, "Key")
	if err != nil {
		return err
	}
	secret, err := secretKey(values, uc.config.OAuthSecretID, "Secret")
	if err != nil {
		return err
	}

	cmd := fmt.Sprintf(`curl -X POST -u "%s:%s" https://%s/site/oauth2/access_token -d grant_type=client_credentials`,
		key, secret, uc.config.GitHost)
	return uc.writeText(CreateAmplifyScript+"-oauth-token-curl-cmd.txt", opts.OutputDir, cmd)
}

func (uc *AmplifyUseCase) notificationsSteps(ctx context.Context, opts CreateAmplifyOptions, results *entity.Results) error {
	if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv); err != nil {
		return err
	}
	amplifyClient, err := uc.clients.Amplify(ctx, opts.Region)
	if err != nil {
		return err
	}
	snsClient, err := uc.clients.SNS(ctx, opts.Region)
	if err != nil {
		return err
	}
	lambdaClient, err := uc.clients.Lambda(ctx, opts.Region)
	if err != nil {
		return err
	}
	cwClient, err := uc.clients.CloudWatch(ctx, opts.Region)
	if err != nil {
		return err
	}
	ebClient, err := uc.clients.EventBridge(ctx, opts.Region)
	if err != nil {
		return err
	}

	appName := entity.ResourceName(opts.Repo, opts.DeployEnv)
	apps, err := listAmplifyApps(ctx, amplifyClient, entity.NewResults(CreateAmplifyScript))
	if err != nil {
		return err
	}
	app, ok := findAmplifyApp(apps, appName)
	if !ok {
		return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrAppNotFound, appName, entity.RegionLabel(opts.Region))
	}
	appID := aws.ToString(app.AppId)
	uc.console.LogInfo("Adding AWS Amplify app '%s' build pipeline notifications to MS Teams", appName)

	arns, err := listTopicArns(ctx, snsClient, results)
	if err != nil {
		results.SetError(entity.ServiceSNS, "list_topics", err)
		return err
	}
	topicArn, ok := findTopicContaining(arns, appID)
	if !ok {
		uc.console.LogWarning("Have you added at least one (Email) notification in the AWS Amplify console? That makes AWS Amplify create the default SNS topic of the app.")
		return fmt.Errorf("%w: for AWS Amplify app '%s'", types.ErrTopicNotFound, appName)
	}

	tagOut, err := snsClient.TagResource(ctx, &sns.TagResourceInput{
		ResourceArn: aws.String(topicArn),
		Tags:        snsTags(app.Tags),
	})
	if err != nil {
		results.SetError(entity.ServiceSNS, "tag_resource", err)
		return fmt.Errorf("error tagging SNS topic '%s': %w", topicArn, err)
	}
	results.Set(entity.ServiceSNS, "tag_resource", tagOut)

	fn := uc.config.TeamsNotificationFunction
	uc.console.LogInfo("Subscribing the '%s' Lambda function to the SNS topic: %s", fn, topicArn)
	fnOut, err := lambdaClient.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(fn)})
	if err != nil {
		results.SetError(entity.ServiceLambda, "get_function", err)
		return fmt.Errorf("error getting Lambda function '%s': %w", fn, err)
	}
	if fnOut.Configuration == nil {
		return fmt.Errorf("no configuration returned for Lambda function '%s'", fn)
	}
	results.Set(entity.ServiceLambda, "get_function", redactFunction(fnOut))

	subOut, err := snsClient.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn:              aws.String(topicArn),
		Protocol:              aws.String("lambda"),
		Endpoint:              fnOut.Configuration.FunctionArn,
		ReturnSubscriptionArn: true,
	})
	if err != nil {
		results.SetError(entity.ServiceSNS, "subscribe", err)
		return fmt.Errorf("error subscribing '%s' to '%s': %w", fn, topicArn, err)
	}
	results.Set(entity.ServiceSNS, "subscribe", subOut)

	if !entity.IsInternalDeployEnv(opts.DeployEnv) {
		alarmName := appName + " - " + alarmDescription
		uc.console.LogInfo("Adding a '%s' CloudWatch alarm (for AWS Amplify app: '%s')", alarmName, appName)
		alarmOut, err := cwClient.PutMetricAlarm(ctx, appAlarmInput(alarmName, appID, topicArn, app.Tags))
		if err != nil {
			results.SetError(entity.ServiceCloudWatch, "put_metric_alarm", err)
			return fmt.Errorf("error adding CloudWatch alarm '%s': %w", alarmName, err)
		}
		results.Set(entity.ServiceCloudWatch, "put_metric_alarm", alarmOut)
	}

	rules, err := listRules(ctx, ebClient, amplifyRulePrefix, results)
	if err != nil {
		results.SetError(entity.ServiceEvents, "list_rules", err)
		return err
	}
	rule, ok := findRule(rules, func(r ebtypes.Rule) string { return aws.ToString(r.Arn) }, appID)
	if !ok {
		return fmt.Errorf("%w: for AWS Amplify app id '%s'", types.ErrRuleNotFound, appID)
	}
	ruleTagOut, err := ebClient.TagResource(ctx, &eventbridge.TagResourceInput{
		ResourceARN: rule.Arn,
		Tags:        eventBridgeTags(app.Tags),
	})
	if err != nil {
		results.SetError(entity.ServiceEvents, "tag_resource", err)
		return fmt.Errorf("error tagging EventBridge rule '%s': %w", aws.ToString(rule.Name), err)
	}
	results.Set(entity.ServiceEvents, "tag_resource", ruleTagOut)
	return nil
}

func (uc *AmplifyUseCase) baseSteps(ctx context.Context, opts CreateAmplifyOptions, results *entity.Results) error {
	if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv, "oauth-res", opts.OAuthRes); err != nil {
		return err
	}
	repo := strings.ToLower(opts.Repo)
	env := strings.ToLower(opts.DeployEnv)
	component := entity.RepoComponent(repo)

	if err := entity.ValidateDeployEnv(env); err != nil {
		return err
	}
	if err := entity.ValidateGitTag(env, opts.GitTag); err != nil {
		return err
	}
	if !gjson.Valid(opts.OAuthRes) {
		return fmt.Errorf("invalid --oauth-res: not a JSON document")
	}
	oauthToken := gjson.Get(opts.OAuthRes, "access_token").String()
	if oauthToken == "" {
		return fmt.Errorf("%w: access_token in --oauth-res", types.ErrMissingArgument)
	}

	amplifyClient, err := uc.clients.Amplify(ctx, opts.Region)
	if err != nil {
		return err
	}
	cfn, err := uc.clients.CloudFormation(ctx, opts.Region)
	if err != nil {
		return err
	}
	secrets, err := uc.clients.SecretsManager(ctx, opts.Region)
	if err != nil {
		return err
	}

	appName := entity.ResourceName(repo, env)
	branch := entity.AmplifyBranch(env)
	uc.console.LogInfo("Git branch: '%s' (for deploy env: '%s')", branch, env)

	apps, err := listAmplifyApps(ctx, amplifyClient, results)
	if err != nil {
		results.SetError(entity.ServiceAmplify, "list_apps", err)
		return err
	}
	if _, exists := findAmplifyApp(apps, appName); exists {
		return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrAppExists, appName, entity.RegionLabel(opts.Region))
	}

	backEndURL, stackTagList, err := uc.backEnd(ctx, cfn, repo, env, opts.BackendStack, results)
	if err != nil {
		return err
	}
	internal := entity.IsInternalDeployEnv(env)
	tags := make(map[string]string, len(stackTagList))
	for k, v := range stackTagList {
		if k == "component" {
			v = entity.Capitalize(component)
		}
		tags[k] = v
	}

	domain, err := entity.AmplifyDomainName(repo, env, backEndURL, opts.Domain)
	if err != nil {
		return err
	}

	envSecret := entity.EnvVarsSecretName(repo)
	uc.console.LogInfo("Retrieving the secret: '%s'", envSecret)
	secretValues, err := getSecretJSON(ctx, secrets, envSecret, results)
	if err != nil {
		return err
	}
	envVars := entity.AmplifyEnvVars(secretValues, backEndURL, opts.GitTag, internal)

	var basicAuth *string
	if internal {
		creds, err := uc.basicAuthCredentials(ctx, secrets, appName, tags, results)
		if err != nil {
			return err
		}
		basicAuth = aws.String(creds)
	}

	imageTag := "latest"
	if opts.CustomImageTag != "" {
		found, err := uc.customImageExists(ctx, opts.CustomImageTag)
		if err != nil {
			return err
		}
		if found {
			imageTag = opts.CustomImageTag
		} else {
			uc.console.LogWarning("Custom build image '%s:%s' not found, using 'latest'", uc.config.CustomImageURI, opts.CustomImageTag)
		}
	}
	envVars["_BUILD_TIMEOUT"] = "10"
	envVars["_CUSTOM_IMAGE"] = uc.config.CustomImageURI + ":" + imageTag

	pwd := opts.Pwd
	if pwd == "" {
		pwd = "."
	}
	buildSpec, err := os.ReadFile(entity.BuildSpecPath(repo, pwd, opts.GitTag))
	if err != nil {
		return fmt.Errorf("error reading build spec: %w", err)
	}
	customHTTP, err := os.ReadFile(entity.CustomHTTPPath(repo, pwd))
	if err != nil {
		return fmt.Errorf("error reading custom headers: %w", err)
	}

	createInput := &amplify.CreateAppInput{
		Name:                     aws.String(appName),
		Description:              aws.String(fmt.Sprintf("The AWS Amplify app for `%s`. Created using `%s`.", appName, CreateAmplifyScript)),
		Repository:               aws.String(uc.config.GitHTTPSURL(repo)),
		Platform:                 amplifytypes.PlatformWeb,
		OauthToken:               aws.String(oauthToken),
		EnvironmentVariables:     envVars,
		EnableBranchAutoBuild:    aws.Bool(false),
		EnableBranchAutoDeletion: aws.Bool(false),
		BasicAuthCredentials:     basicAuth,
		CustomRules:              amplifyRules(entity.AmplifyCustomRules(domain, internal)),
		Tags:                     tags,
		BuildSpec:                aws.String(string(buildSpec)),
		CustomHeaders:            aws.String(string(customHTTP)),
		EnableAutoBranchCreation: aws.Bool(false),
	}
	if internal {
		createInput.EnableBasicAuth = aws.Bool(true)
	}

	uc.console.LogInfo("Creating the AWS Amplify app '%s'", appName)
	created, err := amplifyClient.CreateApp(ctx, createInput)
	if err != nil {
		results.SetError(entity.ServiceAmplify, "create_app", err)
		return fmt.Errorf("error creating AWS Amplify app '%s': %w", appName, err)
	}
	results.Set(entity.ServiceAmplify, "create_app", redactApp(created))
	if created.App == nil || created.App.AppId == nil {
		return fmt.Errorf("AWS Amplify app '%s' created without an app id", appName)
	}
	appID := created.App.AppId

	nonGitTag := entity.IsNonGitTagDeployEnv(env)
	uc.console.LogInfo("Adding a '%s' branch to the AWS Amplify app '%s'", branch, appName)
	branchOut, err := amplifyClient.CreateBranch(ctx, &amplify.CreateBranchInput{
		AppId:                    appID,
		BranchName:               aws.String(branch),
		Description:              aws.String(fmt.Sprintf("The AWS Amplify app `%s` branch for `%s`.", branch, appName)),
		Stage:                    amplifytypes.StageProduction,
		Framework:                aws.String("React"),
		EnableNotification:       aws.Bool(false),
		EnableAutoBuild:          aws.Bool(nonGitTag && !strings.Contains(env, "unstable")),
		BasicAuthCredentials:     basicAuth,
		EnableBasicAuth:          aws.Bool(false),
		EnablePerformanceMode:    aws.Bool(!internal),
		Tags:                     tags,
		Ttl:                      aws.String("5"),
		DisplayName:              aws.String(branch),
		EnablePullRequestPreview: aws.Bool(nonGitTag),
	})
	if err != nil {
		results.SetError(entity.ServiceAmplify, "create_branch", err)
		return fmt.Errorf("error creating branch '%s' of '%s': %w", branch, appName, err)
	}
	results.Set(entity.ServiceAmplify, "create_branch", redactBranch(branchOut))

	subDomains := []amplifytypes.SubDomainSetting{{Prefix: aws.String(""), BranchName: aws.String(branch)}}
	if !internal {
		subDomains = append(subDomains, amplifytypes.SubDomainSetting{Prefix: aws.String("www"), BranchName: aws.String(branch)})
	}
	uc.console.LogInfo("Creating a domain association for the AWS Amplify app: '%s' -> '%s' branch", domain, branch)
	domainOut, err := amplifyClient.CreateDomainAssociation(ctx, &amplify.CreateDomainAssociationInput{
		AppId:               appID,
		DomainName:          aws.String(domain),
		EnableAutoSubDomain: aws.Bool(false),
		SubDomainSettings:   subDomains,
	})
	if err != nil {
		results.SetError(entity.ServiceAmplify, "create_domain_association", err)
		return fmt.Errorf("error creating domain association '%s': %w", domain, err)
	}
	results.Set(entity.ServiceAmplify, "create_domain_association", domainOut)

	hookOut, err := amplifyClient.CreateWebhook(ctx, &amplify.CreateWebhookInput{
		AppId:       appID,
		BranchName:  aws.String(branch),
		Description: aws.String("trigger" + branch),
	})
	if err != nil {
		results.SetError(entity.ServiceAmplify, "create_webhook", err)
		return fmt.Errorf("error creating webhook of '%s': %w", appName, err)
	}
	results.Set(entity.ServiceAmplify, "create_webhook", hookOut)

	commitTime, err := regionNow(uc.now, opts.Region)
	if err != nil {
		return err
	}
	return startRelease(ctx, amplifyClient, uc.console, releaseJob{
		AppID:         aws.ToString(appID),
		AppName:       appName,
		Branch:        branch,
		CommitID:      "HEAD",
		CommitMessage: "This is an autogenerated message",
		CommitTime:    commitTime,
	}, results)
}

// releaseJob descreve um job RELEASE de um branch Amplify.
type releaseJob struct {
	AppID         string
	AppName       string
	Branch        string
	CommitID      string
	CommitMessage string
	CommitTime    time.Time
}

// regionNow devolve o horário atual no fuso da região.
func regionNow(now func() time.Time, region string) (time.Time, error) {
	loc, err := entity.RegionLocation(region)
	if err != nil {
		return time.Time{}, err
	}
	return now().In(loc), nil
}

func startRelease(ctx context.Context, client repository.AmplifyAPI, console types.ConsoleInterface, job releaseJob, results *entity.Results) error {
	console.LogInfo("Releasing changes on AWS Amplify app '%s' branch build pipeline: '%s'", job.Branch, job.AppName)
	out, err := client.StartJob(ctx, &amplify.StartJobInput{
		AppId:         aws.String(job.AppID),
		BranchName:    aws.String(job.Branch),
		JobType:       amplifytypes.JobTypeRelease,
		JobReason:     aws.String(fmt.Sprintf("Releasing changes on AWS Amplify app `%s` branch build pipeline", job.Branch)),
		CommitId:      aws.String(job.CommitID),
		CommitMessage: aws.String(job.CommitMessage),
		CommitTime:    aws.Time(job.CommitTime),
	})
	if err != nil {
		results.SetError(entity.ServiceAmplify, "start_job", err)
		return fmt.Errorf("error starting release job of '%s': %w", job.AppName, err)
	}
	results.Set(entity.ServiceAmplify, "start_job", out)
	return nil
}

// backEnd lê a URL do back-end e as tags da stack CDK do gateway (ou da stack informada).
func (uc *AmplifyUseCase) backEnd(ctx context.Context, cfn repository.CloudFormationAPI, repo, env, stackName string, results *entity.Results) (string, map[string]string, error) {
	explicit := stackName != ""
	if !explicit {
		stackName = entity.StackName(repo, entity.StackComponentGateway, env)
	}
	uc.console.LogInfo("Retrieving back-end URL from the '%s' (AWS CDK) stack CloudFormation output", stackName)

	stack, err := describeStack(ctx, cfn, stackName, results)
	if err != nil {
		if !explicit {
			uc.console.LogWarning("Did you want to specify a back-end AWS CDK stack name? See --backend-stack")
		}
		return "", nil, err
	}
	prefix := entity.StackOutputPrefix(stackName) + "url"
	url, ok := stackOutput(stack, func(key string) bool {
		return strings.HasPrefix(key, prefix) && !strings.Contains(key, "private")
	})
	if !ok {
		return "", nil, fmt.Errorf("%w: back-end URL (from the '%s' stack)", types.ErrStackOutputNotFound, stackName)
	}
	return url, stackTags(stack), nil
}

// basicAuthCredentials gera a senha, guarda o par em '<app>/basic-auth-creds' e devolve
// 'user:password' em base64.
func (uc *AmplifyUseCase) basicAuthCredentials(ctx context.Context, client repository.SecretsManagerAPI, appName string, tags map[string]string, results *entity.Results) (string, error) {
	uc.console.LogInfo("Generating a password for Basic Auth")
	pwOut, err := client.GetRandomPassword(ctx, &secretsmanager.GetRandomPasswordInput{
		PasswordLength:          aws.Int64(32),
		ExcludeCharacters:       aws.String(basicAuthExcludeChars),
		ExcludeNumbers:          aws.Bool(false),
		ExcludePunctuation:      aws.Bool(true),
		ExcludeUppercase:        aws.Bool(false),
		ExcludeLowercase:        aws.Bool(false),
		IncludeSpace:            aws.Bool(false),
		RequireEachIncludedType: aws.Bool(true),
	})
	if err != nil {
		results.SetError(entity.ServiceSecretsManager, "get_random_password", err)
		return "", fmt.Errorf("error generating a Basic Auth password: %w", err)
	}
	username := uc.config.BasicAuthUsername
	password := aws.ToString(pwOut.RandomPassword)

	secretValue, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	secretName := appName + "/basic-auth-creds"
	uc.console.LogInfo("Storing the Basic Auth credentials in AWS Secrets Manager secret: '%s'", secretName)
	smTags := make([]smtypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		smTags = append(smTags, smtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	out, err := client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:               aws.String(secretName),
		Description:        aws.String(fmt.Sprintf("The AWS Amplify app Basic Auth credentials for `%s`. Created using `%s`.", appName, CreateAmplifyScript)),
		SecretString:       aws.String(string(secretValue)),
		Tags:               smTags,
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		results.SetError(entity.ServiceSecretsManager, "create_secret", err)
		return "", fmt.Errorf("error creating secret '%s': %w", secretName, err)
	}
	results.Set(entity.ServiceSecretsManager, "create_secret", out)

	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password)), nil
}

func (uc *AmplifyUseCase) customImageExists(ctx context.Context, tag string) (bool, error) {
	uc.console.LogInfo("Checking for custom build image: '%s:%s'", uc.config.CustomImageURI, tag)
	client, err := uc.clients.ECRPublic(ctx)
	if err != nil {
		return false, err
	}
	details, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ecrtypes.ImageTagDetail, *string, error) {
		out, err := client.DescribeImageTags(ctx, &ecrpublic.DescribeImageTagsInput{
			RepositoryName: aws.String(uc.config.CustomImageRepository),
			NextToken:      token,
		})
		if err != nil {
			return nil, nil, err
		}
		return out.ImageTagDetails, out.NextToken, nil
	})
	if err != nil {
		return false, fmt.Errorf("error describing image tags of '%s': %w", uc.config.CustomImageRepository, err)
	}
	for _, d := range details {
		if aws.ToString(d.ImageTag) == tag {
			if d.ImageDetail != nil {
				uc.console.LogInfo("Found custom build image: '%s'", aws.ToString(d.ImageDetail.ImageDigest))
			}
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the app, its basic auth secret, SNS topic, alarms and EventBridge rule.
func (uc *AmplifyUseCase) Delete(ctx context.Context, opts DeleteAmplifyOptions) error {
	results := entity.NewResults(DeleteAmplifyScript,
		entity.ServiceAmplify, entity.ServiceCloudWatch, entity.ServiceEvents, entity.ServiceSecretsManager, entity.ServiceSNS)

	return uc.run(DeleteAmplifyScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv); err != nil {
			return err
		}
		amplifyClient, err := uc.clients.Amplify(ctx, opts.Region)
		if err != nil {
			return err
		}
		secrets, err := uc.clients.SecretsManager(ctx, opts.Region)
		if err != nil {
			return err
		}
		snsClient, err := uc.clients.SNS(ctx, opts.Region)
		if err != nil {
			return err
		}
		cwClient, err := uc.clients.CloudWatch(ctx, opts.Region)
		if err != nil {
			return err
		}
		ebClient, err := uc.clients.EventBridge(ctx, opts.Region)
		if err != nil {
			return err
		}

		appName := entity.ResourceName(opts.Repo, opts.DeployEnv)
		apps, err := listAmplifyApps(ctx, amplifyClient, results)
		if err != nil {
			results.SetError(entity.ServiceAmplify, "list_apps", err)
			return err
		}
		app, ok := findAmplifyApp(apps, appName)
		if !ok {
			return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrAppNotFound, appName, entity.RegionLabel(opts.Region))
		}
		appID := aws.ToString(app.AppId)

		uc.console.LogInfo("Deleting the AWS Amplify app '%s'", appName)
		delOut, err := amplifyClient.DeleteApp(ctx, &amplify.DeleteAppInput{AppId: app.AppId})
		if err != nil {
			results.SetError(entity.ServiceAmplify, "delete_app", err)
			return fmt.Errorf("error deleting AWS Amplify app '%s': %w", appName, err)
		}
		results.Set(entity.ServiceAmplify, "delete_app", redactDeletedApp(delOut))

		if err := uc.deleteBasicAuthSecret(ctx, secrets, appName, results); err != nil {
			return err
		}
		if err := uc.deleteAppTopic(ctx, snsClient, appID, appName, results); err != nil {
			return err
		}
		if err := uc.deleteAppAlarms(ctx, cwClient, appName, results); err != nil {
			return err
		}
		return uc.deleteAppRule(ctx, ebClient, appID, appName, results)
	})
}

func (uc *AmplifyUseCase) deleteBasicAuthSecret(ctx context.Context, client repository.SecretsManagerAPI, appName string, results *entity.Results) error {
	secretName := appName + "/basic-auth-creds"
	uc.console.LogInfo("Clearing up Basic Auth credentials, stored in AWS Secrets Manager secret: '%s'", secretName)
	desc, err := client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{SecretId: aws.String(secretName)})
	if err != nil {
		if awserr.HasCode(err, awserr.CodeResourceNotFound) {
			uc.console.LogInfo("No Basic Auth credentials found")
			return nil
		}
		results.SetError(entity.ServiceSecretsManager, "describe_secret", err)
		return fmt.Errorf("error describing secret '%s': %w", secretName, err)
	}
	results.Set(entity.ServiceSecretsManager, "describe_secret", desc)

	out, err := client.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(secretName),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	if err != nil {
		results.SetError(entity.ServiceSecretsManager, "delete_secret", err)
		return fmt.Errorf("error deleting secret '%s': %w", secretName, err)
	}
	results.Set(entity.ServiceSecretsManager, "delete_secret", out)
	return nil
}

// deleteAppTopic apaga o tópico padrão do app. Falhas ao listar ou cancelar subscriptions
// não interrompem a remoção.
func (uc *AmplifyUseCase) deleteAppTopic(ctx context.Context, client repository.SNSAPI, appID, appName string, results *entity.Results) error {
	arns, err := listTopicArns(ctx, client, results)
	if err != nil {
		results.SetError(entity.ServiceSNS, "list_topics", err)
		return err
	}
	topicArn, ok := findTopicContaining(arns, appID)
	if !ok {
		uc.console.LogInfo("No SNS topic found")
		return nil
	}
	uc.console.LogInfo("Clearing up the AWS Amplify app '%s' SNS topic (and all its subscriptions): %s", appName, topicArn)

	subs, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]snstypes.Subscription, *string, error) {
		out, err := client.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{TopicArn: aws.String(topicArn), NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceSNS, "list_subscriptions_by_topic", out)
		return out.Subscriptions, out.NextToken, nil
	})
	if err != nil {
		uc.console.LogWarning("Could NOT list the subscriptions of the SNS topic: %v", err)
	}
	for _, sub := range subs {
		subArn := aws.ToString(sub.SubscriptionArn)
		out, err := client.Unsubscribe(ctx, &sns.UnsubscribeInput{SubscriptionArn: sub.SubscriptionArn})
		if err != nil {
			uc.console.LogWarning("Could NOT unsubscribe from the SNS topic: %s: %v", subArn, err)
			results.Append(entity.ServiceSNS, "unsubscribe_fail", err.Error())
			continue
		}
		results.Append(entity.ServiceSNS, "unsubscribe_success", out)
	}

	out, err := client.DeleteTopic(ctx, &sns.DeleteTopicInput{TopicArn: aws.String(topicArn)})
	if err != nil {
		results.SetError(entity.ServiceSNS, "delete_topic", err)
		return fmt.Errorf("error deleting SNS topic '%s': %w", topicArn, err)
	}
	results.Set(entity.ServiceSNS, "delete_topic", out)
	return nil
}

func (uc *AmplifyUseCase) deleteAppAlarms(ctx context.Context, client repository.CloudWatchAPI, appName string, results *entity.Results) error {
	uc.console.LogInfo("Clearing up CloudWatch alarms (for AWS Amplify app: '%s')", appName)
	alarms, err := listMetricAlarms(ctx, client, results)
	if err != nil {
		results.SetError(entity.ServiceCloudWatch, "describe_alarms", err)
		return err
	}
	var names []string
	for _, a := range alarms {
		if strings.Contains(aws.ToString(a.AlarmName), appName) {
			names = append(names, aws.ToString(a.AlarmName))
		}
	}
	if len(names) == 0 {
		return nil
	}

	// DeleteAlarms aceita no máximo 100 nomes por chamada.
	for start := 0; start < len(names); start += 100 {
		end := min(start+100, len(names))
		out, err := client.DeleteAlarms(ctx, &cloudwatch.DeleteAlarmsInput{AlarmNames: names[start:end]})
		if err != nil {
			results.SetError(entity.ServiceCloudWatch, "delete_alarms", err)
			return fmt.Errorf("error deleting CloudWatch alarms of '%s': %w", appName, err)
		}
		results.Append(entity.ServiceCloudWatch, "delete_alarms", map[string]interface{}{
			"alarm_names": names[start:end],
			"response":    out,
		})
	}
	return nil
}

func (uc *AmplifyUseCase) deleteAppRule(ctx context.Context, client repository.EventBridgeAPI, appID, appName string, results *entity.Results) error {
	rules, err := listRules(ctx, client, amplifyRulePrefix, results)
	if err != nil {
		results.SetError(entity.ServiceEvents, "list_rules", err)
		return err
	}
	uc.console.LogInfo("Clearing up the EventBridge rule, and all its targets (for AWS Amplify app: '%s')", appName)
	rule, ok := findRule(rules, func(r ebtypes.Rule) string { return aws.ToString(r.Name) }, appID)
	if !ok {
		uc.console.LogInfo("No EventBridge rule found")
		return nil
	}

	targets, err := client.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{Rule: rule.Name})
	if err != nil {
		results.SetError(entity.ServiceEvents, "list_targets_by_rule", err)
		return fmt.Errorf("error listing targets of rule '%s': %w", aws.ToString(rule.Name), err)
	}
	results.Set(entity.ServiceEvents, "list_targets_by_rule", targets)

	ids := make([]string, 0, len(targets.Targets))
	for _, t := range targets.Targets {
		ids = append(ids, aws.ToString(t.Id))
	}
	if len(ids) > 0 {
		removed, err := client.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{
			Rule:  rule.Name,
			Ids:   ids,
			Force: true,
		})
		if err != nil {
			results.SetError(entity.ServiceEvents, "remove_targets", err)
			return fmt.Errorf("error removing targets of rule '%s': %w", aws.ToString(rule.Name), err)
		}
		results.Set(entity.ServiceEvents, "remove_targets", removed)
	}

	deleted, err := client.DeleteRule(ctx, &eventbridge.DeleteRuleInput{Name: rule.Name, Force: true})
	if err != nil {
		results.SetError(entity.ServiceEvents, "delete_rule", err)
		return fmt.Errorf("error deleting rule '%s': %w", aws.ToString(rule.Name), err)
	}
	results.Set(entity.ServiceEvents, "delete_rule", deleted)
	return nil
}

func appAlarmInput(alarmName, appID, topicArn string, tags map[string]string) *cloudwatch.PutMetricAlarmInput {
	return &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(alarmName),
		AlarmDescription:   aws.String(fmt.Sprintf("The AWS Amplify app CloudWatch alarm: `%s`.", alarmDescription)),
		ActionsEnabled:     aws.Bool(true),
		AlarmActions:       []string{topicArn},
		MetricName:         aws.String("5xxErrors"),
		Namespace:          aws.String("AWS/AmplifyHosting"),
		Statistic:          cwtypes.StatisticSum,
		Dimensions:         []cwtypes.Dimension{{Name: aws.String("App"), Value: aws.String(appID)}},
		Period:             aws.Int32(60),
		EvaluationPeriods:  aws.Int32(1),
		DatapointsToAlarm:  aws.Int32(1),
		Threshold:          aws.Float64(1),
		ComparisonOperator: cwtypes.ComparisonOperatorGreaterThanOrEqualToThreshold,
		TreatMissingData:   aws.String("notBreaching"),
		Tags:               cloudWatchTags(tags),
	}
}

func findRule(rules []ebtypes.Rule, field func(ebtypes.Rule) string, fragment string) (ebtypes.Rule, bool) {
	for _, r := range rules {
		if strings.Contains(field(r), fragment) {
			return r, true
		}
	}
	return ebtypes.Rule{}, false
}

func snsTags(tags map[string]string) []snstypes.Tag {
	out := make([]snstypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		out = append(out, snstypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

func eventBridgeTags(tags map[string]string) []ebtypes.Tag {
	out := make([]ebtypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		out = append(out, ebtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

func amplifyRules(rules []entity.CustomRule) []amplifytypes.CustomRule {
	out := make([]amplifytypes.CustomRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, amplifytypes.CustomRule{
			Source: aws.String(r.Source),
			Target: aws.String(r.Target),
			Status: aws.String(r.Status),
		})
	}
	return out
}

// As respostas do Amplify ecoam credenciais e variáveis de ambiente; elas não vão para o JSON.

func maskApp(app *amplifytypes.App) *amplifytypes.App {
	if app == nil {
		return nil
	}
	masked := *app
	masked.BasicAuthCredentials = nil
	masked.EnvironmentVariables = nil
	return &masked
}

func redactApp(out *amplify.CreateAppOutput) *amplify.CreateAppOutput {
	masked := *out
	masked.App = maskApp(out.App)
	return &masked
}

func redactDeletedApp(out *amplify.DeleteAppOutput) *amplify.DeleteAppOutput {
	masked := *out
	masked.App = maskApp(out.App)
	return &masked
}

func redactUpdatedApp(out *amplify.UpdateAppOutput) *amplify.UpdateAppOutput {
	masked := *out
	masked.App = maskApp(out.App)
	return &masked
}

func redactBranch(out *amplify.CreateBranchOutput) *amplify.CreateBranchOutput {
	masked := *out
	if out.Branch != nil {
		branch := *out.Branch
		branch.BasicAuthCredentials = nil
		branch.EnvironmentVariables = nil
		masked.Branch = &branch
	}
	return &masked
}

// redactFunction descarta a URL pré-assinada do código e as variáveis de ambiente.
func redactFunction(out *lambda.GetFunctionOutput) *lambda.GetFunctionOutput {
	masked := *out
	masked.Code = nil
	if out.Configuration != nil {
		conf := *out.Configuration
		conf.Environment = nil
		masked.Configuration = &conf
	}
	return &masked
}
