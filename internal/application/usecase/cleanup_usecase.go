package usecase

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	acmtypes "github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/aws/aws-sdk-go-v2/service/amplify"
	amplifytypes "github.com/aws/aws-sdk-go-v2/service/amplify/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logstypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/awserr"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/dustin/go-humanize"
)

const (
	CleanUpDNSScript  = "aws-clean-up-dns"
	CleanUpLogsScript = "aws-clean-up-logs"
)

// CleanUpDNSOptions são as entradas do aws-clean-up-dns.
type CleanUpDNSOptions struct {
	Region    string
	DryRun    bool
	OutputDir string
}

// CleanUpLogsOptions são as entradas do aws-clean-up-logs.
type CleanUpLogsOptions struct {
	Region    string
	OutputDir string
}

// CleanupUseCase remove registros DNS de validação e log groups órfãos.
type CleanupUseCase struct {
	scriptBase
}

// NewCleanupUseCase creates a new cleanup use case.
func NewCleanupUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *CleanupUseCase {
	return &CleanupUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// --- aws-clean-up-dns ---

// CleanUpDNS apaga os CNAMEs de validação do ACM que nenhum certificado ou domínio
// do Amplify usa mais.
func (uc *CleanupUseCase) CleanUpDNS(ctx context.Context, opts CleanUpDNSOptions) error {
	if opts.Region == "" {
		opts.Region = entity.DefaultRegion
	}
	results := entity.NewResults(CleanUpDNSScript, entity.ServiceRoute53, entity.ServiceACM, entity.ServiceAmplify)

	return uc.run(CleanUpDNSScript, ModeBase, opts.OutputDir, results, func() error {
		r53, err := uc.clients.Route53(ctx)
		if err != nil {
			return err
		}

		zones, recordSets, err := uc.validationRecords(ctx, r53, results)
		if err != nil {
			return err
		}

		certs, err := uc.certificateValidations(ctx, opts.Region, results)
		if err != nil {
			return err
		}

		associations, err := uc.amplifyValidations(ctx, results)
		if err != nil {
			return err
		}

		plan := entity.PlanDNSCleanup(zones, certs, associations)
		if len(plan) == 0 {
			uc.console.LogInfo("No AWS Route53 DNS ('CNAME') records to clean-up.")
			return nil
		}

		for _, zc := range plan {
			comment := entity.DNSChangeComment(CleanUpDNSScript, len(zc.Records), zc.ZoneName, zc.ZoneID)
			for _, r := range zc.Records {
				uc.console.LogInfo("Record to delete in '%s': %s %s %s", zc.ZoneName, r.Name, r.Type, r.Value)
			}
			if opts.DryRun {
				uc.console.LogWarning("Dry run, skipping: %s", comment)
				continue
			}

			changes := make([]r53types.Change, 0, len(zc.Records))
			for _, r := range zc.Records {
				rrs := recordSets[zc.ZoneID][r.Key()]
				changes = append(changes, r53types.Change{
					Action:            r53types.ChangeActionDelete,
					ResourceRecordSet: &rrs,
				})
			}

			out, err := r53.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
				HostedZoneId: aws.String(zc.ZoneID),
				ChangeBatch: &r53types.ChangeBatch{
					Comment: aws.String(comment),
					Changes: changes,
				},
			})
			if err != nil {
				results.SetError(entity.ServiceRoute53, "change_resource_record_sets", err)
				return fmt.Errorf("error deleting records of hosted zone '%s': %w", zc.ZoneName, err)
			}
			results.Append(entity.ServiceRoute53, "change_resource_record_sets", out)
			uc.console.LogSuccess("%s", comment)
		}
		return nil
	})
}

// validationRecords lista os CNAMEs de validação das hosted zones públicas, e os record
// sets originais indexados por zona e DNSRecord.Key para montar os DELETEs.
func (uc *CleanupUseCase) validationRecords(ctx context.Context, client repository.Route53API, results *entity.Results) ([]entity.HostedZoneRecords, map[string]map[string]r53types.ResourceRecordSet, error) {
	hostedZones, err := paginate.Collect(ctx, func(ctx context.Context, marker *string) ([]r53types.HostedZone, *string, error) {
		out, err := client.ListHostedZones(ctx, &route53.ListHostedZonesInput{Marker: marker})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceRoute53, "list_hosted_zones", out)
		if !out.IsTruncated {
			return out.HostedZones, nil, nil
		}
		return out.HostedZones, out.NextMarker, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error listing AWS Route53 hosted zones: %w", err)
	}

	var zones []entity.HostedZoneRecords
	recordSets := make(map[string]map[string]r53types.ResourceRecordSet)
	for _, hz := range hostedZones {
		if hz.Config != nil && hz.Config.PrivateZone {
			continue
		}
		zone := entity.HostedZoneRecords{ID: aws.ToString(hz.Id), Name: aws.ToString(hz.Name)}
		byKey := make(map[string]r53types.ResourceRecordSet)

		sets, err := listRecordSets(ctx, client, zone.ID, results)
		if err != nil {
			return nil, nil, err
		}
		for _, rrs := range sets {
			if len(rrs.ResourceRecords) == 0 {
				continue
			}
			record := entity.DNSRecord{
				Name:          aws.ToString(rrs.Name),
				Type:          string(rrs.Type),
				Value:         aws.ToString(rrs.ResourceRecords[0].Value),
				SetIdentifier: aws.ToString(rrs.SetIdentifier),
			}
			if !entity.IsACMValidationRecord(record.Type, record.Value) {
				continue
			}
			zone.Records = append(zone.Records, record)
			byKey[record.Key()] = rrs
		}

		zones = append(zones, zone)
		recordSets[zone.ID] = byKey
	}
	return zones, recordSets, nil
}

// listRecordSets segue NextRecordName/Type/Identifier enquanto IsTruncated.
func listRecordSets(ctx context.Context, client repository.Route53API, zoneID string, results *entity.Results) ([]r53types.ResourceRecordSet, error) {
	input := &route53.ListResourceRecordSetsInput{HostedZoneId: aws.String(zoneID)}
	var all []r53types.ResourceRecordSet
	for {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		out, err := client.ListResourceRecordSets(ctx, input)
		if err != nil {
			return all, fmt.Errorf("error listing record sets of hosted zone '%s': %w", zoneID, err)
		}
		results.Append(entity.ServiceRoute53, "list_resource_record_sets", out)
		all = append(all, out.ResourceRecordSets...)
		if !out.IsTruncated || out.NextRecordName == nil {
			return all, nil
		}
		input.StartRecordName = out.NextRecordName
		input.StartRecordType = out.NextRecordType
		input.StartRecordIdentifier = out.NextRecordIdentifier
	}
}

func (uc *CleanupUseCase) certificateValidations(ctx context.Context, region string, results *entity.Results) ([]entity.CertificateValidation, error) {
	client, err := uc.clients.ACM(ctx, region)
	if err != nil {
		return nil, err
	}

	summaries, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]acmtypes.CertificateSummary, *string, error) {
		out, err := client.ListCertificates(ctx, &acm.ListCertificatesInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceACM, "list_certificates", out)
		return out.CertificateSummaryList, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS ACM certificates: %w", err)
	}

	var certs []entity.CertificateValidation
	for _, s := range summaries {
		out, err := client.DescribeCertificate(ctx, &acm.DescribeCertificateInput{CertificateArn: s.CertificateArn})
		if err != nil {
			results.SetError(entity.ServiceACM, "describe_certificate", err)
			return nil, fmt.Errorf("error describing certificate '%s': %w", aws.ToString(s.CertificateArn), err)
		}
		results.Append(entity.ServiceACM, "describe_certificate", out)
		if out.Certificate == nil {
			continue
		}

		key, err := entity.RegisteredDomainKey(aws.ToString(out.Certificate.DomainName))
		if err != nil {
			uc.console.LogWarning("Skipping certificate '%s': %v", aws.ToString(s.CertificateArn), err)
			continue
		}
		cv := entity.CertificateValidation{Key: key}
		for _, dvo := range out.Certificate.DomainValidationOptions {
			if dvo.ResourceRecord != nil {
				cv.RecordNames = append(cv.RecordNames, aws.ToString(dvo.ResourceRecord.Name))
			}
		}
		certs = append(certs, cv)
	}
	return certs, nil
}

// amplifyValidations percorre os domínios do Amplify em todas as regiões conhecidas.
func (uc *CleanupUseCase) amplifyValidations(ctx context.Context, results *entity.Results) ([]entity.CertificateValidation, error) {
	var validations []entity.CertificateValidation
	for _, region := range entity.Regions() {
		client, err := uc.clients.Amplify(ctx, region)
		if err != nil {
			return nil, err
		}
		apps, err := listAmplifyApps(ctx, client, results)
		if awserr.IsConnectionError(err) {
			uc.console.LogWarning("Skipping region '%s', AWS Amplify endpoint unreachable: %v", region, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", region, err)
		}

		for _, app := range apps {
			associations, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]amplifytypes.DomainAssociation, *string, error) {
				out, err := client.ListDomainAssociations(ctx, &amplify.ListDomainAssociationsInput{
					AppId:     app.AppId,
					NextToken: token,
				})
				if err != nil {
					return nil, nil, err
				}
				results.Append(entity.ServiceAmplify, "list_domain_associations", out)
				return out.DomainAssociations, out.NextToken, nil
			})
			if err != nil {
				return nil, fmt.Errorf("error listing domain associations of '%s': %w", aws.ToString(app.Name), err)
			}

			for _, da := range associations {
				key, err := entity.RegisteredDomainKey(aws.ToString(da.DomainName))
				if err != nil {
					uc.console.LogWarning("Skipping domain association '%s': %v", aws.ToString(da.DomainName), err)
					continue
				}
				record := entity.ParseVerificationRecord(aws.ToString(da.CertificateVerificationDNSRecord))
				cv := entity.CertificateValidation{Key: key}
				if record.Name != "" {
					cv.RecordNames = []string{record.Name}
				}
				validations = append(validations, cv)
			}
		}
	}
	return validations, nil
}

// --- aws-clean-up-logs ---

// CleanUpLogs apaga log groups vazios que nenhuma stack declara e cujo recurso dono não existe mais.
func (uc *CleanupUseCase) CleanUpLogs(ctx context.Context, opts CleanUpLogsOptions) error {
	results := entity.NewResults(CleanUpLogsScript,
		entity.ServiceCloudFormation, entity.ServiceLogs, entity.ServiceLambda, entity.ServiceECS, entity.ServiceRDS)

	return uc.run(CleanUpLogsScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}

		expected, err := uc.stackLogGroups(ctx, opts.Region, results)
		if err != nil {
			return err
		}

		logs, err := uc.clients.CloudWatchLogs(ctx, opts.Region)
		if err != nil {
			return err
		}
		groups, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]logstypes.LogGroup, *string, error) {
			out, err := logs.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
				Limit:     aws.Int32(50),
				NextToken: token,
			})
			if err != nil {
				return nil, nil, err
			}
			results.Append(entity.ServiceLogs, "describe_log_groups", out)
			return out.LogGroups, out.NextToken, nil
		})
		if err != nil {
			return fmt.Errorf("error listing AWS CloudWatch Logs log groups: %w", err)
		}

		var empty []string
		for _, g := range groups {
			if aws.ToInt64(g.StoredBytes) == 0 {
				empty = append(empty, aws.ToString(g.LogGroupName))
			}
		}
		uc.console.LogInfo("%s log groups, %s empty, %s expected by stacks",
			humanize.Comma(int64(len(groups))), humanize.Comma(int64(len(empty))), humanize.Comma(int64(len(expected))))

		untracked := entity.UntrackedLogGroups(empty, expected)
		if len(untracked) == 0 {
			uc.console.LogInfo("No AWS CloudWatch Logs log groups to clean-up.")
			return nil
		}

		var skipped []string
		for _, group := range untracked {
			orphan, err := uc.isOrphanLogGroup(ctx, opts.Region, group, results)
			if err != nil {
				uc.console.LogError("Could not check owner of '%s': %v", group, err)
			}
			if !orphan {
				uc.console.LogInfo("Skipping log group '%s'", group)
				skipped = append(skipped, group)
				continue
			}

			out, err := logs.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{LogGroupName: aws.String(group)})
			if err != nil {
				results.SetError(entity.ServiceLogs, "delete_log_group", err)
				return fmt.Errorf("error deleting log group '%s': %w", group, err)
			}
			results.Append(entity.ServiceLogs, "delete_log_group", out)
			uc.console.LogSuccess("Deleted log group '%s'", group)
		}

		return uc.writeText(CleanUpLogsScript+"-untracked-list.txt", opts.OutputDir, skipped...)
	})
}

// stackLogGroups devolve os nomes de log group esperados pelos recursos de todas as stacks.
func (uc *CleanupUseCase) stackLogGroups(ctx context.Context, region string, results *entity.Results) (map[string]struct{}, error) {
	client, err := uc.clients.CloudFormation(ctx, region)
	if err != nil {
		return nil, err
	}

	stacks, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]cftypes.Stack, *string, error) {
		out, err := client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceCloudFormation, "describe_stacks", out)
		return out.Stacks, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing AWS CloudFormation stacks: %w", err)
	}

	expected := make(map[string]struct{})
	for _, stack := range stacks {
		resources, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]cftypes.StackResourceSummary, *string, error) {
			out, err := client.ListStackResources(ctx, &cloudformation.ListStackResourcesInput{
				StackName: stack.StackId,
				NextToken: token,
			})
			if err != nil {
				return nil, nil, err
			}
			results.Append(entity.ServiceCloudFormation, "list_stack_resources", out)
			return out.StackResourceSummaries, out.NextToken, nil
		})
		if err != nil {
			return nil, fmt.Errorf("error listing resources of stack '%s': %w", aws.ToString(stack.StackName), err)
		}
		for _, r := range resources {
			for _, name := range entity.StackLogGroupNames(aws.ToString(r.ResourceType), aws.ToString(r.PhysicalResourceId)) {
				expected[name] = struct{}{}
			}
		}
	}
	return expected, nil
}

// isOrphanLogGroup consulta o recurso dono do log group; só devolve true quando ele não existe.
func (uc *CleanupUseCase) isOrphanLogGroup(ctx context.Context, region, group string, results *entity.Results) (bool, error) {
	kind, name := entity.LogGroupOwner(group)
	switch kind {
	case entity.LogGroupOwnerLambda:
		client, err := uc.clients.Lambda(ctx, region)
		if err != nil {
			return false, err
		}
		out, err := client.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)})
		if err != nil {
			results.SetError(entity.ServiceLambda, "get_function", err)
			if awserr.HasCode(err, awserr.CodeResourceNotFound) {
				return true, nil
			}
			return false, err
		}
		results.Append(entity.ServiceLambda, "get_function", out)
		return false, nil

	case entity.LogGroupOwnerECSCluster:
		client, err := uc.clients.ECS(ctx, region)
		if err != nil {
			return false, err
		}
		out, err := client.DescribeClusters(ctx, &ecs.DescribeClustersInput{Clusters: []string{name}})
		if err != nil {
			results.SetError(entity.ServiceECS, "describe_clusters", err)
			return false, err
		}
		results.Append(entity.ServiceECS, "describe_clusters", out)
		for _, f := range out.Failures {
			if aws.ToString(f.Reason) == "MISSING" {
				return true, nil
			}
		}
		for _, c := range out.Clusters {
			if aws.ToString(c.Status) == "INACTIVE" {
				return true, nil
			}
		}
		return false, nil

	case entity.LogGroupOwnerRDSInstance:
		client, err := uc.clients.RDS(ctx, region)
		if err != nil {
			return false, err
		}
		out, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{DBInstanceIdentifier: aws.String(name)})
		if err != nil {
			results.SetError(entity.ServiceRDS, "describe_db_instances", err)
			if awserr.HasCode(err, awserr.CodeDBInstanceNotFound) {
				return true, nil
			}
			return false, err
		}
		results.Append(entity.ServiceRDS, "describe_db_instances", out)
		return false, nil
	}
	return false, nil
}
