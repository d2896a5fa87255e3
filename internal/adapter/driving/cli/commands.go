package cli

import (
	"github.com/diillson/aws-ops-scripts-go/internal/application/usecase"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/spf13/cobra"
)

func (app *CLIApp) addCommands() {
	app.rootCmd.AddCommand(
		app.cleanUpDNSCmd(),
		app.cleanUpLogsCmd(),
		app.codeArtifactCmd("create-codeartifact", "Create an npm CodeArtifact repository for a git repo", true),
		app.codeArtifactCmd("delete-codeartifact", "Delete the CodeArtifact repository of a git repo", false),
		app.snsMobPushCmd("create-sns-mob-push", "Create the FCM SNS platform application of a deploy env", true),
		app.snsMobPushCmd("delete-sns-mob-push", "Delete the FCM SNS platform application of a deploy env", false),
		app.createAmplifyCmd(),
		app.deleteAmplifyCmd(),
		app.deployCmd(),
		app.reactNativeReleaseCmd(),
		app.tagAmplifyAppsCmd(),
		app.tagAmplifyAppResourcesCmd(),
		app.querySNSCmd(),
		app.networkCmd("amazonmq-broker-web", "Publish the Amazon MQ web console private IPs to SSM", false),
		app.networkCmd("openvpn-vpn-server-nlb", "Publish the OpenVPN server NLB public IPs to SSM", true),
		app.privateCmd(),
		app.costExplorerCmd(),
		app.rdsBackupCmd(),
		app.rdsInitCmd(),
		app.s3BackupCmd(),
		app.s3EncryptCmd(),
		app.s3UploadCmd(),
	)
}

func regionFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "region", "", "AWS region code, eg. '--region eu-west-2'")
}

func repoFlags(cmd *cobra.Command, repo, deployEnv *string) {
	cmd.Flags().StringVar(repo, "repo", "", "Git repo name")
	if deployEnv != nil {
		cmd.Flags().StringVar(deployEnv, "deploy-env", "", "Deploy environment (dev, staging, prod)")
	}
}

func (app *CLIApp) cleanUpDNSCmd() *cobra.Command {
	var opts usecase.CleanUpDNSOptions
	cmd := &cobra.Command{
		Use:   "clean-up-dns",
		Short: "Delete Route 53 validation records of certificates that no longer exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewCleanupUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.CleanUpDNS(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Only list the records that would be deleted")
	return cmd
}

func (app *CLIApp) cleanUpLogsCmd() *cobra.Command {
	var opts usecase.CleanUpLogsOptions
	cmd := &cobra.Command{
		Use:   "clean-up-logs",
		Short: "Delete CloudWatch log groups whose resource no longer exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewCleanupUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.CleanUpLogs(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	return cmd
}

func (app *CLIApp) codeArtifactCmd(use, short string, create bool) *cobra.Command {
	var opts usecase.CodeArtifactOptions
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewCodeArtifactUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			if create {
				return uc.Create(cmd.Context(), opts)
			}
			return uc.Delete(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, nil)
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "CodeArtifact domain (default: codeartifact_domain from config)")
	return cmd
}

func (app *CLIApp) snsMobPushCmd(use, short string, create bool) *cobra.Command {
	var opts usecase.SNSMobPushOptions
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewNotificationsUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			if create {
				return uc.CreateSNSMobPush(cmd.Context(), opts)
			}
			return uc.DeleteSNSMobPush(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, &opts.DeployEnv)
	return cmd
}

func (app *CLIApp) createAmplifyCmd() *cobra.Command {
	var opts usecase.CreateAmplifyOptions
	cmd := &cobra.Command{
		Use:   "create-amplify",
		Short: "Create an Amplify app with its branch, domain, alarms and notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewAmplifyUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Create(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, &opts.DeployEnv)
	f := cmd.Flags()
	f.StringVar(&opts.GitTag, "git-tag", "", "Git tag to release (prod only)")
	f.StringVar(&opts.Domain, "domain", "", "Custom domain of the app")
	f.StringVar(&opts.BackendStack, "backend-stack", "", "CloudFormation stack exporting the backend URL")
	f.StringVar(&opts.OAuthRes, "oauth-res", "", "JSON response of the git host OAuth token request")
	f.StringVar(&opts.CustomImageTag, "custom-image-tag", "", "Tag of the custom build image (default: latest)")
	f.StringVar(&opts.Pwd, "pwd", "", "Directory containing the app package.json")
	f.BoolVar(&opts.OAuth, "oauth", false, "Only write the OAuth consumer key and secret files")
	f.BoolVar(&opts.Notifications, "notifications", false, "Only create the build notification rule and topic")
	return cmd
}

func (app *CLIApp) deleteAmplifyCmd() *cobra.Command {
	var opts usecase.DeleteAmplifyOptions
	cmd := &cobra.Command{
		Use:   "delete-amplify",
		Short: "Delete an Amplify app and its auxiliary resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewAmplifyUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Delete(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, &opts.DeployEnv)
	return cmd
}

func (app *CLIApp) deployCmd() *cobra.Command {
	var opts usecase.DeployOptions
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Release a git tag through CodePipeline or an Amplify build",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewReleaseUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Deploy(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, &opts.DeployEnv)
	f := cmd.Flags()
	f.StringVar(&opts.Branch, "branch", "", "Git branch")
	f.StringVar(&opts.Tag, "tag", "", "Git tag to deploy")
	f.StringVar(&opts.CommitID, "commit-id", "", "Amplify job commit id (default: HEAD)")
	f.StringVar(&opts.CommitMsg, "commit-msg", "", "Amplify job commit message (default: 'Release <tag>')")
	f.BoolVar(&opts.SSH, "ssh", false, "Only write the git repo SSH URL and branch files")
	f.BoolVar(&opts.Amplify, "amplify", false, "Deploy through an Amplify RELEASE job")
	return cmd
}

func (app *CLIApp) reactNativeReleaseCmd() *cobra.Command {
	var opts usecase.ReactNativeReleaseOptions
	cmd := &cobra.Command{
		Use:   "react-native-prod-release",
		Short: "Record the released git tag of a React Native app in SSM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewReleaseUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.ReactNativeProdRelease(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, &opts.DeployEnv)
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "Git tag being released")
	cmd.Flags().BoolVar(&opts.SSH, "ssh", false, "Only write the git repo SSH URL and branch files")
	return cmd
}

func (app *CLIApp) tagAmplifyAppsCmd() *cobra.Command {
	var opts usecase.TagAmplifyAppsOptions
	cmd := &cobra.Command{
		Use:   "tag-amplify-apps",
		Short: "Tag Amplify apps from a JSON apps file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewTaggingUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.TagApps(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	cmd.Flags().StringVar(&opts.AppsFile, "apps-file", "", "JSON file with the apps and their tags")
	return cmd
}

func (app *CLIApp) tagAmplifyAppResourcesCmd() *cobra.Command {
	var opts usecase.TagAmplifyAppResourcesOptions
	cmd := &cobra.Command{
		Use:   "tag-amplify-app-resources",
		Short: "Copy the tags of every Amplify app to its alarms, rules and topics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewTaggingUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.TagAppResources(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	return cmd
}

func (app *CLIApp) querySNSCmd() *cobra.Command {
	var opts usecase.QuerySNSOptions
	cmd := &cobra.Command{
		Use:   "query-sns-topics-with-no-subs",
		Short: "List SNS topics without subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewNotificationsUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.QueryTopicsWithNoSubs(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	return cmd
}

func (app *CLIApp) networkCmd(use, short string, openVPN bool) *cobra.Command {
	var opts usecase.NetworkOptions
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewNetworkUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			if openVPN {
				return uc.OpenVPNServerNLB(cmd.Context(), opts)
			}
			return uc.AmazonMQBrokerWeb(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	return cmd
}

func (app *CLIApp) privateCmd() *cobra.Command {
	var opts usecase.PrivateOptions
	cmd := &cobra.Command{
		Use:   "private",
		Short: "Maintain the SSH tunnel map of private AWS resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewPrivateUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region or availability zone, eg. '--region eu-west-2a'")
	f := cmd.Flags()
	f.BoolVar(&opts.Bastion, "bastion", false, "Write the bastion host AZ and instance ID files")
	f.BoolVar(&opts.List, "list", false, "List the private resources of the region")
	f.StringSliceVar(&opts.Command, "command", nil, "Private resources to build the port forwarding command for")
	f.BoolVar(&opts.ECS, "ecs", false, "Use the ECS cluster map instead of the tunnel map")
	f.StringVar(&opts.Cluster, "cluster", "", "Write the ECS cluster ARN of a private resource")
	return cmd
}

func (app *CLIApp) costExplorerCmd() *cobra.Command {
	var opts usecase.CostExplorerOptions
	cmd := &cobra.Command{
		Use:   "cost-explorer",
		Short: "Export monthly costs per account, project and environment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewCostExplorerUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.Months, "months", entity.DefaultCostMonths, "Number of whole months before the current one")
	cmd.Flags().BoolVar(&opts.PDF, "pdf", false, "Also export a PDF summary report")
	return cmd
}

func (app *CLIApp) rdsBackupCmd() *cobra.Command {
	var opts usecase.RDSBackupOptions
	cmd := &cobra.Command{
		Use:   "rds-backup",
		Short: "Dump every table of a MySQL schema to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewDatabaseUseCase(app.clients, app.deps.Export, app.deps.Console, app.config, app.deps.Database)
			return uc.Backup(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	f := cmd.Flags()
	f.StringVar(&opts.Schema, "db-schema", "", "Database schema to back up")
	f.StringVar(&opts.Secret, "secret", "", "Secrets Manager secret with the database 'username' and 'password'")
	f.StringVar(&opts.Host, "host", "", "Database host (default: "+usecase.DefaultDatabaseHost+")")
	f.IntVar(&opts.Port, "port", 0, "Database port (default: 3306)")
	return cmd
}

func (app *CLIApp) rdsInitCmd() *cobra.Command {
	var opts usecase.RDSInitOptions
	cmd := &cobra.Command{
		Use:   "rds-init",
		Short: "Invoke the RDS init Lambda function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewDatabaseUseCase(app.clients, app.deps.Export, app.deps.Console, app.config, app.deps.Database)
			return uc.Init(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	f := cmd.Flags()
	f.StringVar(&opts.FunctionName, "function-name", "", "Lambda function name")
	f.StringVar(&opts.ProjectName, "project-name", "", "Project name")
	f.StringVar(&opts.Action, "action", "", "Init action (default: "+usecase.DefaultRDSInitAction+")")
	f.StringVar(&opts.DBSchemas, "db-schemas", "", "Comma separated database schemas")
	f.StringVar(&opts.SQLFilename, "sql-filename", "", "SQL file to run")
	return cmd
}

func (app *CLIApp) s3BackupCmd() *cobra.Command {
	var opts usecase.S3BackupOptions
	cmd := &cobra.Command{
		Use:   "s3-backup",
		Short: "Convert downloaded base64 S3 objects to PNG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewStorageUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Backup(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source directory with the base64 objects")
	cmd.Flags().StringVar(&opts.Dest, "dest", "", "Destination directory for the PNG files")
	return cmd
}

func (app *CLIApp) s3EncryptCmd() *cobra.Command {
	var opts usecase.S3EncryptOptions
	cmd := &cobra.Command{
		Use:   "s3-encrypt",
		Short: "Encrypt S3 buckets with a KMS key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewStorageUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Encrypt(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	cmd.Flags().StringVar(&opts.BucketNames, "bucket-names", "", "Newline separated S3 bucket names")
	cmd.Flags().StringVar(&opts.KMSKeyID, "kms-key-id", "", "KMS key ID or ARN")
	return cmd
}

func (app *CLIApp) s3UploadCmd() *cobra.Command {
	var opts usecase.S3UploadOptions
	cmd := &cobra.Command{
		Use:   "s3-upload",
		Short: "Upload a git repo file to the repo S3 bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.OutputDir = app.dir
			uc := usecase.NewStorageUseCase(app.clients, app.deps.Export, app.deps.Console, app.config)
			return uc.Upload(cmd.Context(), opts)
		},
	}
	regionFlag(cmd, &opts.Region)
	repoFlags(cmd, &opts.Repo, nil)
	f := cmd.Flags()
	f.StringVar(&opts.Account, "account", "", "Expected bucket owner account (default: caller account)")
	f.BoolVar(&opts.Submodule, "submodule", false, "The repo is a submodule of a parent repo")
	f.BoolVar(&opts.SSH, "ssh", false, "Only write the git repo SSH URL file")
	f.StringVar(&opts.Branch, "branch", "", "Git branch")
	f.StringVar(&opts.RepoDir, "pwd", "", "Git repo path")
	f.StringVar(&opts.File, "file", "", "File path relative to the repo root")
	return cmd
}
