package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/google/uuid"
)

const (
	DeployScript                 = "aws-deploy"
	ReactNativeProdReleaseScript = "react-native-prod-release"
)

// DeployOptions são as entradas de deploy. SSH e Amplify selecionam o modo.
type DeployOptions struct {
	Region    string
	Repo      string
	DeployEnv string
	Branch    string
	Tag       string
	CommitID  string
	CommitMsg string
	SSH       bool
	Amplify   bool
	OutputDir string
}

// ReactNativeReleaseOptions are the inputs of react-native-prod-release.
type ReactNativeReleaseOptions struct {
	Region    string
	Repo      string
	DeployEnv string
	Tag       string
	SSH       bool
	OutputDir string
}

// ReleaseUseCase publica uma nova git tag: via CodePipeline, via build do Amplify ou só
// gravando a tag no SSM.
type ReleaseUseCase struct {
	scriptBase
	now func() time.Time
}

// NewReleaseUseCase creates a new release use case.
func NewReleaseUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *ReleaseUseCase {
	return &ReleaseUseCase{
		scriptBase: newScriptBase(clients, exportRepo, console, config),
		now:        time.Now,
	}
}

// Deploy runs the ssh, amplify or base step of deploy.
func (uc *ReleaseUseCase) Deploy(ctx context.Context, opts DeployOptions) error {
	if opts.SSH && opts.Amplify {
		return fmt.Errorf("%w: --ssh and --amplify", types.ErrInvalidMode)
	}
	switch {
	case opts.SSH:
		return uc.run(DeployScript, ModeSSH, opts.OutputDir, nil, func() error {
			if err := requireArgs("repo", opts.Repo, "deploy-env", opts.DeployEnv); err != nil {
				return err
			}
			if err := uc.writeGitRepo(DeployScript, opts.Repo, opts.OutputDir); err != nil {
				return err
			}
			if err := entity.ValidateRepoDeployEnv(opts.Repo, opts.DeployEnv); err != nil {
				return err
			}
			return uc.writeGitBranch(DeployScript, entity.CheckoutBranch(opts.DeployEnv), opts.OutputDir)
		})
	case opts.Amplify:
		results := entity.NewResults(DeployScript, entity.ServiceAmplify)
		return uc.run(DeployScript, ModeAmplify, opts.OutputDir, results, func() error {
			return uc.amplifySteps(ctx, opts, results)
		})
	default:
		results := entity.NewResults(DeployScript, entity.ServiceCodePipeline, entity.ServiceSSM)
		return uc.run(DeployScript, ModeBase, opts.OutputDir, results, func() error {
			return uc.pipelineSteps(ctx, opts, results)
		})
	}
}

func (uc *ReleaseUseCase) writeGitBranch(script, branch, outputDir string) error {
	uc.console.LogInfo("Git branch (for 'git checkout' command): %s", branch)
	return uc.writeText(script+"-git-branch.txt", outputDir, branch)
}

// amplifySteps grava a tag na variável DEPLOY_TAG do app e dispara um job RELEASE.
func (uc *ReleaseUseCase) amplifySteps(ctx context.Context, opts DeployOptions, results *entity.Results) error {
	if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv,
		"branch", opts.Branch, "tag", opts.Tag); err != nil {
		return err
	}
	client, err := uc.clients.Amplify(ctx, opts.Region)
	if err != nil {
		return err
	}

	appName := entity.ResourceName(opts.Repo, opts.DeployEnv)
	uc.console.LogInfo("Getting the AWS Amplify app ID (for AWS Amplify app: '%s')", appName)
	apps, err := listAmplifyApps(ctx, client, entity.NewResults(DeployScript))
	if err != nil {
		results.SetError(entity.ServiceAmplify, "list_apps", err)
		return err
	}
	app, ok := findAmplifyApp(apps, appName)
	if !ok {
		return fmt.Errorf("%w: '%s' (in the %s region), will NOT release changes", types.ErrAppNotFound, appName, entity.RegionLabel(opts.Region))
	}
	appID := aws.ToString(app.AppId)
	uc.console.LogInfo("AWS Amplify app ID: %s (for AWS Amplify app: '%s')", appID, appName)

	envVars := make(map[string]string, len(app.EnvironmentVariables)+1)
	for k, v := range app.EnvironmentVariables {
		envVars[k] = v
	}
	envVars[entity.DeployTagVar] = opts.Tag

	uc.console.LogInfo("Writing the new deployment git tag: '%s' (to AWS Amplify app '%s' environment variable)", opts.Tag, entity.DeployTagVar)
	updated, err := client.UpdateApp(ctx, &amplify.UpdateAppInput{
		AppId:                aws.String(appID),
		EnvironmentVariables: envVars,
	})
	if err != nil {
		results.SetError(entity.ServiceAmplify, "update_app", err)
		return fmt.Errorf("error updating AWS Amplify app '%s', will NOT release changes: %w", appName, err)
	}
	results.Set(entity.ServiceAmplify, "update_app", redactUpdatedApp(updated))

	commitTime, err := regionNow(uc.now, opts.Region)
	if err != nil {
		return err
	}
	job := releaseJob{
		AppID:         appID,
		AppName:       appName,
		Branch:        opts.Branch,
		CommitID:      opts.CommitID,
		CommitMessage: opts.CommitMsg,
		CommitTime:    commitTime,
	}
	if job.CommitID == "" {
		job.CommitID = "HEAD"
	}
	if job.CommitMessage == "" {
		job.CommitMessage = "Release " + opts.Tag
	}
	return startRelease(ctx, client, uc.console, job, results)
}

// pipelineSteps grava a tag no SSM e inicia o pipeline '<repo>-<env>'. Falha ao iniciar o
// pipeline não interrompe o script.
func (uc *ReleaseUseCase) pipelineSteps(ctx context.Context, opts DeployOptions, results *entity.Results) error {
	if err := requireArgs("region", opts.Region, "repo", opts.Repo, "deploy-env", opts.DeployEnv, "tag", opts.Tag); err != nil {
		return err
	}
	ssmClient, err := uc.clients.SSM(ctx, opts.Region)
	if err != nil {
		return err
	}
	pipelines, err := uc.clients.CodePipeline(ctx, opts.Region)
	if err != nil {
		return err
	}

	env := entity.NormalizeDeployEnv(opts.DeployEnv)
	paramName := entity.ParameterTagName(opts.Repo, env)
	pipelineName := entity.ResourceName(opts.Repo, env)

	if err := uc.putTag(ctx, ssmClient, paramName, opts.Tag, results); err != nil {
		return fmt.Errorf("%w, will NOT release changes on pipeline '%s'", err, pipelineName)
	}

	uc.console.LogInfo("Releasing changes on AWS CodePipeline pipeline: %s", pipelineName)
	out, err := pipelines.StartPipelineExecution(ctx, &codepipeline.StartPipelineExecutionInput{
		Name:               aws.String(pipelineName),
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err != nil {
		results.SetError(entity.ServiceCodePipeline, "start_pipeline_execution", err)
		uc.console.LogError("Could NOT release changes on AWS CodePipeline pipeline '%s': %v", pipelineName, err)
		return nil
	}
	results.Set(entity.ServiceCodePipeline, "start_pipeline_execution", out)
	uc.console.LogSuccess("Pipeline execution started: %s", aws.ToString(out.PipelineExecutionId))
	return nil
}

func (uc *ReleaseUseCase) putTag(ctx context.Context, client repository.SSMAPI, name, tag string, results *entity.Results) error {
	uc.console.LogInfo("Writing the new deployment git tag: '%s' (to AWS Systems Manager Parameter Store: %s)", tag, name)
	return putParameter(ctx, client, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(tag),
		Overwrite: aws.Bool(true),
	}, results)
}

// ReactNativeProdRelease writes the git hand-off files (ssh) or records the release tag in SSM.
func (uc *ReleaseUseCase) ReactNativeProdRelease(ctx context.Context, opts ReactNativeReleaseOptions) error {
	env := opts.DeployEnv
	if env == "" {
		env = entity.DeployEnvProd
	}
	if opts.SSH {
		return uc.run(ReactNativeProdReleaseScript, ModeSSH, opts.OutputDir, nil, func() error {
			if err := requireArgs("repo", opts.Repo); err != nil {
				return err
			}
			if err := uc.writeGitRepo(ReactNativeProdReleaseScript, opts.Repo, opts.OutputDir); err != nil {
				return err
			}
			return uc.writeGitBranch(ReactNativeProdReleaseScript, env, opts.OutputDir)
		})
	}

	results := entity.NewResults(ReactNativeProdReleaseScript, entity.ServiceSSM)
	return uc.run(ReactNativeProdReleaseScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo, "tag", opts.Tag); err != nil {
			return err
		}
		client, err := uc.clients.SSM(ctx, opts.Region)
		if err != nil {
			return err
		}
		return uc.putTag(ctx, client, entity.ParameterTagName(opts.Repo, env), opts.Tag, results)
	})
}
