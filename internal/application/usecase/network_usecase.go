package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/mq"
	mqtypes "github.com/aws/aws-sdk-go-v2/service/mq/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

const (
	AmazonMQBrokerWebScript = "aws-amazonmq-broker-web"
	OpenVPNServerNLBScript  = "aws-openvpn-vpn-server-nlb"

	OpenVPNStack = "CdkOpenvpnVpnServerStack"
)

// NetworkOptions are the inputs of amazonmq-broker-web and openvpn-vpn-server-nlb.
type NetworkOptions struct {
	Region    string
	OutputDir string
}

// NetworkUseCase publica no SSM os endereços de rede de recursos gerenciados pela AWS.
type NetworkUseCase struct {
	scriptBase
}

// NewNetworkUseCase creates a new network use case.
func NewNetworkUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *NetworkUseCase {
	return &NetworkUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// AmazonMQBrokerWeb records, for every broker, the private IP of each ENI of its managed
// VPC endpoint as '/<broker name>/PrivateIpAddress/<az>'.
func (uc *NetworkUseCase) AmazonMQBrokerWeb(ctx context.Context, opts NetworkOptions) error {
	results := entity.NewResults(AmazonMQBrokerWebScript, entity.ServiceEC2, entity.ServiceMQ, entity.ServiceSSM)

	return uc.run(AmazonMQBrokerWebScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}
		ec2Client, err := uc.clients.EC2(ctx, opts.Region)
		if err != nil {
			return err
		}
		mqClient, err := uc.clients.MQ(ctx, opts.Region)
		if err != nil {
			return err
		}
		ssmClient, err := uc.clients.SSM(ctx, opts.Region)
		if err != nil {
			return err
		}

		endpoints, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ec2types.VpcEndpoint, *string, error) {
			out, err := ec2Client.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{NextToken: token})
			if err != nil {
				return nil, nil, err
			}
			results.Append(entity.ServiceEC2, "describe_vpc_endpoints", out)
			return out.VpcEndpoints, out.NextToken, nil
		})
		if err != nil {
			results.SetError(entity.ServiceEC2, "describe_vpc_endpoints", err)
			return fmt.Errorf("error describing VPC endpoints: %w", err)
		}

		brokers, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]mqtypes.BrokerSummary, *string, error) {
			out, err := mqClient.ListBrokers(ctx, &mq.ListBrokersInput{NextToken: token})
			if err != nil {
				return nil, nil, err
			}
			results.Append(entity.ServiceMQ, "list_brokers", out)
			return out.BrokerSummaries, out.NextToken, nil
		})
		if err != nil {
			results.SetError(entity.ServiceMQ, "list_brokers", err)
			return fmt.Errorf("error listing Amazon MQ brokers: %w", err)
		}

		for _, broker := range brokers {
			brokerName := aws.ToString(broker.BrokerName)
			endpoint, ok := brokerEndpoint(endpoints, aws.ToString(broker.BrokerId))
			if !ok {
				uc.console.LogInfo("No managed VPC endpoint found for Amazon MQ broker: '%s'", brokerName)
				continue
			}

			enis, err := describeNetworkInterfaces(ctx, ec2Client, &ec2.DescribeNetworkInterfacesInput{
				NetworkInterfaceIds: endpoint.NetworkInterfaceIds,
			}, results)
			if err != nil {
				return err
			}
			ips := make(map[string]string, len(enis))
			for _, eni := range enis {
				ips[aws.ToString(eni.AvailabilityZone)] = aws.ToString(eni.PrivateIpAddress)
			}
			for _, az := range sortedKeys(ips) {
				name := "/" + brokerName + "/PrivateIpAddress/" + az
				uc.console.LogInfo("Writing private IPv4 address: '%s' (to AWS Systems Manager Parameter Store: %s)", ips[az], name)
				if err := putParameter(ctx, ssmClient, &ssm.PutParameterInput{
					Name:      aws.String(name),
					Value:     aws.String(ips[az]),
					Overwrite: aws.Bool(true),
				}, results); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// brokerEndpoint devolve o último endpoint gerenciado do broker.
func brokerEndpoint(endpoints []ec2types.VpcEndpoint, brokerID string) (ec2types.VpcEndpoint, bool) {
	var found ec2types.VpcEndpoint
	ok := false
	for _, e := range endpoints {
		tags := make(map[string]string, len(e.Tags))
		for _, t := range e.Tags {
			tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
		}
		if entity.IsBrokerEndpoint(tags, brokerID) {
			found, ok = e, true
		}
	}
	return found, ok
}

func describeNetworkInterfaces(ctx context.Context, client repository.EC2API, input *ec2.DescribeNetworkInterfacesInput, results *entity.Results) ([]ec2types.NetworkInterface, error) {
	enis, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]ec2types.NetworkInterface, *string, error) {
		page := *input
		page.NextToken = token
		out, err := client.DescribeNetworkInterfaces(ctx, &page)
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceEC2, "describe_network_interfaces", out)
		return out.NetworkInterfaces, out.NextToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceEC2, "describe_network_interfaces", err)
		return nil, fmt.Errorf("error describing network interfaces: %w", err)
	}
	return enis, nil
}

// OpenVPNServerNLB collects the public IPs of the OpenVPN server NLB in every region and
// stores them, comma separated, in '/CdkOpenvpnVpnServerStack/nlb-public-ips'.
func (uc *NetworkUseCase) OpenVPNServerNLB(ctx context.Context, opts NetworkOptions) error {
	results := entity.NewResults(OpenVPNServerNLBScript, entity.ServiceSSM)

	return uc.run(OpenVPNServerNLBScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region); err != nil {
			return err
		}

		var ips []string
		for _, region := range entity.Regions() {
			regionResults := entity.NewResults(OpenVPNServerNLBScript+"-"+region,
				entity.ServiceCloudFormation, entity.ServiceEC2, entity.ServiceELBv2)
			regionIPs, found, err := uc.nlbPublicIPs(ctx, region, regionResults)
			if found || err != nil {
				uc.flush(regionResults, opts.OutputDir)
			}
			if err != nil {
				return err
			}
			ips = append(ips, regionIPs...)
		}
		if len(ips) == 0 {
			return fmt.Errorf("no OpenVPN server NLB public IPs found in any region")
		}

		ssmClient, err := uc.clients.SSM(ctx, opts.Region)
		if err != nil {
			return err
		}
		name := "/" + OpenVPNStack + "/nlb-public-ips"
		value := strings.Join(ips, ",")
		uc.console.LogInfo("Writing public IPv4 addresses: '%s' (to AWS Systems Manager Parameter Store: %s)", value, name)
		return putParameter(ctx, ssmClient, &ssm.PutParameterInput{
			Name:        aws.String(name),
			Description: aws.String("The OpenVPN Server NLB Public IPs, across all AWS regions, used to add all OpenVPN Server NLB Public IPs to Cloudfront WAF allowed IP lists, etc."),
			Value:       aws.String(value),
			Overwrite:   aws.Bool(true),
		}, results)
	})
}

// nlbPublicIPs devolve os IPs públicos do NLB numa região; found é falso quando a stack
// não existe ali.
func (uc *NetworkUseCase) nlbPublicIPs(ctx context.Context, region string, results *entity.Results) ([]string, bool, error) {
	cfn, err := uc.clients.CloudFormation(ctx, region)
	if err != nil {
		return nil, false, err
	}
	uc.console.LogInfo("(Region: %s) Retrieving OpenVPN Server NLB DNS name from the '%s' (AWS CDK) stack CloudFormation output", region, OpenVPNStack)
	stack, err := describeStack(ctx, cfn, OpenVPNStack, results)
	if err != nil {
		uc.console.LogWarning("(Region: %s) %v", region, err)
		return nil, false, nil
	}

	snippet := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(OpenVPNStack, "Cdk"), "Stack")) + "nlbdnsname"
	dnsName, ok := stackOutput(stack, func(key string) bool { return strings.Contains(key, snippet) })
	if !ok {
		return nil, true, fmt.Errorf("%w: key containing '%s' (from the '%s' stack in %s)",
			types.ErrStackOutputNotFound, snippet, OpenVPNStack, entity.RegionLabel(region))
	}
	nlbName, nlbID, err := entity.ParseNLBDNSName(dnsName)
	if err != nil {
		return nil, true, err
	}

	uc.checkLoadBalancer(ctx, region, nlbName, nlbID, results)

	ec2Client, err := uc.clients.EC2(ctx, region)
	if err != nil {
		return nil, true, err
	}
	enis, err := describeNetworkInterfaces(ctx, ec2Client, &ec2.DescribeNetworkInterfacesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("interface-type"), Values: []string{"network_load_balancer"}},
			{Name: aws.String("description"), Values: []string{"ELB net/" + nlbName + "/" + nlbID}},
		},
	}, results)
	if err != nil {
		return nil, true, err
	}
	var ips []string
	for _, eni := range enis {
		if eni.Association != nil && eni.Association.PublicIp != nil {
			ips = append(ips, aws.ToString(eni.Association.PublicIp))
		}
	}
	uc.console.LogInfo("(Region: %s) NLB 'net/%s/%s' public IPs: %v", region, nlbName, nlbID, ips)
	return ips, true, nil
}

// checkLoadBalancer confere o id do NLB derivado do DNS com o ARN real. Só registra avisos.
func (uc *NetworkUseCase) checkLoadBalancer(ctx context.Context, region, nlbName, nlbID string, results *entity.Results) {
	client, err := uc.clients.ELBv2(ctx, region)
	if err != nil {
		uc.console.LogWarning("(Region: %s) Could NOT create ELBv2 client: %v", region, err)
		return
	}
	out, err := client.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{Names: []string{nlbName}})
	if err != nil {
		results.SetError(entity.ServiceELBv2, "describe_load_balancers", err)
		uc.console.LogWarning("(Region: %s) Could NOT describe load balancer '%s': %v", region, nlbName, err)
		return
	}
	results.Set(entity.ServiceELBv2, "describe_load_balancers", out)
	suffix := "/net/" + nlbName + "/" + nlbID
	for _, lb := range out.LoadBalancers {
		if arn := aws.ToString(lb.LoadBalancerArn); !strings.HasSuffix(arn, suffix) {
			uc.console.LogWarning("(Region: %s) Load balancer ARN '%s' does not end with '%s'", region, arn, suffix)
		}
	}
}
