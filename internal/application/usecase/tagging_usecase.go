package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/tidwall/gjson"
)

const (
	TagAmplifyAppsScript         = "aws-tag-amplify-apps"
	TagAmplifyAppResourcesScript = "aws-tag-amplify-app-resources"

	// DefaultAmplifyAppsFile é gerado com:
	//  aws amplify list-apps --query 'apps[].{appArn:appArn,name:name,tags:tags}' > amplify-list-apps.json
	DefaultAmplifyAppsFile = "amplify-list-apps.json"

	branchSentinelSuffix = "AMPLIBRANCHSENTINEL"
)

// TagAmplifyAppsOptions are the inputs of tag-amplify-apps.
type TagAmplifyAppsOptions struct {
	Region    string
	AppsFile  string
	OutputDir string
}

// TagAmplifyAppResourcesOptions are the inputs of tag-amplify-app-resources.
type TagAmplifyAppResourcesOptions struct {
	Region    string
	OutputDir string
}

// AmplifyAppTags é uma entrada do arquivo de apps a tagear.
type AmplifyAppTags struct {
	AppArn string
	Name   string
	Tags   map[string]string
}

// TaggingUseCase propaga as tags dos apps Amplify para os próprios apps e seus recursos.
type TaggingUseCase struct {
	scriptBase
}

// NewTaggingUseCase creates a new tagging use case.
func NewTaggingUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *TaggingUseCase {
	return &TaggingUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// parseAmplifyAppsFile lê a lista '[{appArn,name,tags}]' exportada pela AWS CLI.
func parseAmplifyAppsFile(data []byte) ([]AmplifyAppTags, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not a JSON document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("expected a JSON array of apps")
	}
	var apps []AmplifyAppTags
	var parseErr error
	doc.ForEach(func(_, v gjson.Result) bool {
		app := AmplifyAppTags{
			AppArn: v.Get("appArn").String(),
			Name:   v.Get("name").String(),
			Tags:   make(map[string]string),
		}
		if app.AppArn == "" {
			parseErr = fmt.Errorf("app entry without appArn: %s", v.Raw)
			return false
		}
		v.Get("tags").ForEach(func(k, tv gjson.Result) bool {
			app.Tags[k.String()] = tv.String()
			return true
		})
		apps = append(apps, app)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return apps, nil
}

// TagApps tags every app listed in the apps file with its own tags.
func (uc *TaggingUseCase) TagApps(ctx context.Context, opts TagAmplifyAppsOptions) error {
	results := entity.NewResults(TagAmplifyAppsScript, entity.ServiceAmplify)

	return uc.run(TagAmplifyAppsScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}
		path := opts.AppsFile
		if path == "" {
			path = DefaultAmplifyAppsFile
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading apps file: %w", err)
		}
		apps, err := parseAmplifyAppsFile(data)
		if err != nil {
			return fmt.Errorf("error parsing '%s': %w", path, err)
		}

		client, err := uc.clients.Amplify(ctx, opts.Region)
		if err != nil {
			return err
		}

		tagged := make(map[string]interface{}, len(apps))
		results.Set(entity.ServiceAmplify, "tag_resource", tagged)
		for _, app := range apps {
			if len(app.Tags) == 0 {
				uc.console.LogInfo("No tags for AWS Amplify app: '%s'", app.Name)
				continue
			}
			out, err := client.TagResource(ctx, &amplify.TagResourceInput{
				ResourceArn: aws.String(app.AppArn),
				Tags:        app.Tags,
			})
			if err != nil {
				results.SetError(entity.ServiceAmplify, "tag_resource", err)
				return fmt.Errorf("error tagging AWS Amplify app '%s': %w", app.Name, err)
			}
			tagged[app.Name] = out
			uc.console.LogInfo("Tagged AWS Amplify app: '%s'", app.Name)
		}
		return nil
	})
}

// TagAppResources copies each app's tags to its alarms, EventBridge rule and branch SNS topic.
func (uc *TaggingUseCase) TagAppResources(ctx context.Context, opts TagAmplifyAppResourcesOptions) error {
	results := entity.NewResults(TagAmplifyAppResourcesScript,
		entity.ServiceCloudWatch, entity.ServiceEvents, entity.ServiceSNS)

	return uc.run(TagAmplifyAppResourcesScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}
		amplifyClient, err := uc.clients.Amplify(ctx, opts.Region)
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
		snsClient, err := uc.clients.SNS(ctx, opts.Region)
		if err != nil {
			return err
		}

		alarms, err := listMetricAlarms(ctx, cwClient, results)
		if err != nil {
			results.SetError(entity.ServiceCloudWatch, "describe_alarms", err)
			return err
		}
		rules, err := listRules(ctx, ebClient, amplifyRulePrefix, results)
		if err != nil {
			results.SetError(entity.ServiceEvents, "list_rules", err)
			return err
		}
		ruleArns := make(map[string]string, len(rules))
		for _, r := range rules {
			if id, ok := entity.RuleAppID(aws.ToString(r.Name)); ok {
				ruleArns[id] = aws.ToString(r.Arn)
			}
		}
		topics, err := listTopicArns(ctx, snsClient, results)
		if err != nil {
			results.SetError(entity.ServiceSNS, "list_topics", err)
			return err
		}
		topicArns := make(map[string]string)
		for _, arn := range topics {
			if strings.HasSuffix(arn, branchSentinelSuffix) {
				topicArns[entity.SentinelTopicAppID(arn)] = arn
			}
		}

		apps, err := listAmplifyApps(ctx, amplifyClient, entity.NewResults(TagAmplifyAppResourcesScript))
		if err != nil {
			return err
		}

		alarmsTagged := make(map[string]interface{})
		rulesTagged := make(map[string]interface{})
		topicsTagged := make(map[string]interface{})
		results.Set(entity.ServiceCloudWatch, "tag_resource", alarmsTagged)
		results.Set(entity.ServiceEvents, "tag_resource", rulesTagged)
		results.Set(entity.ServiceSNS, "tag_resource", topicsTagged)

		for _, app := range apps {
			appID := aws.ToString(app.AppId)
			appName := aws.ToString(app.Name)
			if len(app.Tags) == 0 {
				uc.console.LogInfo("No tags for AWS Amplify app: '%s'", appName)
				continue
			}
			uc.console.LogInfo("Found tags for AWS Amplify app: '%s' - %v", appName, app.Tags)

			var alarmOuts []interface{}
			for _, a := range alarms {
				alarmArn := aws.ToString(a.AlarmArn)
				if !strings.Contains(alarmArn, appName) {
					continue
				}
				out, err := cwClient.TagResource(ctx, &cloudwatch.TagResourceInput{
					ResourceARN: aws.String(alarmArn),
					Tags:        cloudWatchTags(app.Tags),
				})
				if err != nil {
					results.SetError(entity.ServiceCloudWatch, "tag_resource", err)
					return fmt.Errorf("error tagging CloudWatch alarm '%s': %w", alarmArn, err)
				}
				alarmOuts = append(alarmOuts, out)
			}
			if len(alarmOuts) > 0 {
				alarmsTagged[appName] = alarmOuts
			}

			if ruleArn, ok := ruleArns[appID]; ok {
				out, err := ebClient.TagResource(ctx, &eventbridge.TagResourceInput{
					ResourceARN: aws.String(ruleArn),
					Tags:        eventBridgeTags(app.Tags),
				})
				if err != nil {
					results.SetError(entity.ServiceEvents, "tag_resource", err)
					return fmt.Errorf("error tagging EventBridge rule '%s': %w", ruleArn, err)
				}
				rulesTagged[appName] = out
			} else {
				uc.console.LogWarning("No EventBridge rule found for AWS Amplify app: '%s' (%s)", appName, appID)
			}

			if topicArn, ok := topicArns[appID]; ok {
				out, err := snsClient.TagResource(ctx, &sns.TagResourceInput{
					ResourceArn: aws.String(topicArn),
					Tags:        snsTags(app.Tags),
				})
				if err != nil {
					results.SetError(entity.ServiceSNS, "tag_resource", err)
					return fmt.Errorf("error tagging SNS topic '%s': %w", topicArn, err)
				}
				topicsTagged[appName] = out
			} else {
				uc.console.LogWarning("No SNS topic found for AWS Amplify app: '%s' (%s)", appName, appID)
			}
		}
		return nil
	})
}

func cloudWatchTags(tags map[string]string) []cwtypes.Tag {
	out := make([]cwtypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		out = append(out, cwtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
