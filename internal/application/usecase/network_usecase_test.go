package usecase

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/mq"
	mqtypes "github.com/aws/aws-sdk-go-v2/service/mq/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpoint(id string, tags map[string]string, enis ...string) ec2types.VpcEndpoint {
	e := ec2types.VpcEndpoint{VpcEndpointId: aws.String(id), NetworkInterfaceIds: enis}
	for _, k := range sortedKeys(tags) {
		e.Tags = append(e.Tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return e
}

func TestFindBrokerEndpoint(t *testing.T) {
	endpoints := []ec2types.VpcEndpoint{
		endpoint("vpce-untagged", nil),
		endpoint("vpce-not-managed", map[string]string{"AMQManaged": "false", "Broker": "b-1"}),
		endpoint("vpce-bad-json", map[string]string{"AMQManaged": "True", "Broker": "b-1"}),
		endpoint("vpce-other", map[string]string{"AMQManaged": "true", "Broker": "b-2"}),
		endpoint("vpce-1", map[string]string{"AMQManaged": "true", "Broker": "b-1"}),
	}

	got, ok := brokerEndpoint(endpoints, "b-1")
	require.True(t, ok)
	assert.Equal(t, "vpce-1", aws.ToString(got.VpcEndpointId))

	_, ok = brokerEndpoint(endpoints, "b-3")
	assert.False(t, ok)
}

func TestAmazonMQBrokerWeb(t *testing.T) {
	env := newTestEnv(t)
	env.factory.ec2 = &mockEC2Client{
		DescribeVpcEndpointsFunc: func(ctx context.Context, params *ec2.DescribeVpcEndpointsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error) {
			if params.NextToken == nil {
				return &ec2.DescribeVpcEndpointsOutput{
					VpcEndpoints: []ec2types.VpcEndpoint{endpoint("vpce-1", map[string]string{"AMQManaged": "true", "Broker": "b-1"}, "eni-a", "eni-b")},
					NextToken:    aws.String("p2"),
				}, nil
			}
			return &ec2.DescribeVpcEndpointsOutput{VpcEndpoints: []ec2types.VpcEndpoint{endpoint("vpce-2", nil)}}, nil
		},
		DescribeNetworkInterfacesFunc: func(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error) {
			assert.Equal(t, []string{"eni-a", "eni-b"}, params.NetworkInterfaceIds)
			return &ec2.DescribeNetworkInterfacesOutput{NetworkInterfaces: []ec2types.NetworkInterface{
				{AvailabilityZone: aws.String("eu-west-2b"), PrivateIpAddress: aws.String("10.0.2.10")},
				{AvailabilityZone: aws.String("eu-west-2a"), PrivateIpAddress: aws.String("10.0.1.10")},
			}}, nil
		},
	}
	env.factory.mq = &mockMQClient{
		ListBrokersFunc: func(ctx context.Context, params *mq.ListBrokersInput, optFns ...func(*mq.Options)) (*mq.ListBrokersOutput, error) {
			return &mq.ListBrokersOutput{BrokerSummaries: []mqtypes.BrokerSummary{
				{BrokerId: aws.String("b-1"), BrokerName: aws.String("bird-rabbit")},
				{BrokerId: aws.String("b-9"), BrokerName: aws.String("orphan")},
			}}, nil
		},
	}
	var params []*ssm.PutParameterInput
	env.factory.ssm = &mockSSMClient{
		PutParameterFunc: func(ctx context.Context, p *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
			params = append(params, p)
			return &ssm.PutParameterOutput{}, nil
		},
	}

	uc := NewNetworkUseCase(env.factory, env.export, env.console, env.config)
	require.NoError(t, uc.AmazonMQBrokerWeb(context.Background(), NetworkOptions{Region: "eu-west-2", OutputDir: env.dir}))

	require.Len(t, params, 2)
	assert.Equal(t, "/bird-rabbit/PrivateIpAddress/eu-west-2a", aws.ToString(params[0].Name))
	assert.Equal(t, "10.0.1.10", aws.ToString(params[0].Value))
	assert.Equal(t, "/bird-rabbit/PrivateIpAddress/eu-west-2b", aws.ToString(params[1].Name))
	assert.True(t, aws.ToBool(params[1].Overwrite))
	assert.True(t, env.console.contains("No managed VPC endpoint found for Amazon MQ broker: 'orphan'"))

	res := env.readResults(t, AmazonMQBrokerWebScript, entity.ServiceEC2)
	assert.Len(t, res["describe_vpc_endpoints"], 2)
}

func openVPNStack(dnsName string) *mockCloudFormationClient {
	return &mockCloudFormationClient{
		DescribeStacksFunc: func(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
			return &cloudformation.DescribeStacksOutput{Stacks: []cftypes.Stack{{Outputs: []cftypes.Output{
				{OutputKey: aws.String("openvpnvpnserverinstanceid"), OutputValue: aws.String("i-1")},
				{OutputKey: aws.String("openvpnvpnservernlbdnsname1F2E"), OutputValue: aws.String(dnsName)},
			}}}}, nil
		},
	}
}

func nlbInterfaces(t *testing.T, wantDescription string, ips ...string) *mockEC2Client {
	return &mockEC2Client{
		DescribeNetworkInterfacesFunc: func(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error) {
			require.Len(t, params.Filters, 2)
			assert.Equal(t, []string{"network_load_balancer"}, params.Filters[0].Values)
			assert.Equal(t, []string{wantDescription}, params.Filters[1].Values)
			out := &ec2.DescribeNetworkInterfacesOutput{}
			for _, ip := range ips {
				out.NetworkInterfaces = append(out.NetworkInterfaces, ec2types.NetworkInterface{
					Association: &ec2types.NetworkInterfaceAssociation{PublicIp: aws.String(ip)},
				})
			}
			out.NetworkInterfaces = append(out.NetworkInterfaces, ec2types.NetworkInterface{})
			return out, nil
		},
	}
}

func TestOpenVPNServerNLB(t *testing.T) {
	env := newTestEnv(t)
	env.factory.cloudFormationByRegion = map[string]*mockCloudFormationClient{
		"us-east-1": openVPNStack("CdkOp-openv-AAA-1111.elb.us-east-1.amazonaws.com"),
		"eu-west-2": openVPNStack("CdkOp-openv-BBB-2222.elb.eu-west-2.amazonaws.com"),
	}
	env.factory.ec2ByRegion = map[string]*mockEC2Client{
		"us-east-1": nlbInterfaces(t, "ELB net/CdkOp-openv-AAA/1111", "3.3.3.3", "4.4.4.4"),
		"eu-west-2": nlbInterfaces(t, "ELB net/CdkOp-openv-BBB/2222", "5.5.5.5"),
	}
	env.factory.elbv2 = &mockELBv2Client{
		DescribeLoadBalancersFunc: func(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
			arn := "arn:aws:elasticloadbalancing:x:1:loadbalancer/net/" + params.Names[0] + "/"
			if params.Names[0] == "CdkOp-openv-AAA" {
				arn += "1111"
			} else {
				arn += "ffff"
			}
			return &elbv2.DescribeLoadBalancersOutput{LoadBalancers: []elbv2types.LoadBalancer{{LoadBalancerArn: aws.String(arn)}}}, nil
		},
	}
	var put *ssm.PutParameterInput
	env.factory.ssm = &mockSSMClient{
		PutParameterFunc: func(ctx context.Context, p *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
			put = p
			return &ssm.PutParameterOutput{}, nil
		},
	}

	uc := NewNetworkUseCase(env.factory, env.export, env.console, env.config)
	require.NoError(t, uc.OpenVPNServerNLB(context.Background(), NetworkOptions{Region: "us-east-1", OutputDir: env.dir}))

	require.NotNil(t, put)
	assert.Equal(t, "/CdkOpenvpnVpnServerStack/nlb-public-ips", aws.ToString(put.Name))
	assert.Equal(t, "3.3.3.3,4.4.4.4,5.5.5.5", aws.ToString(put.Value))
	assert.True(t, aws.ToBool(put.Overwrite))

	assert.True(t, env.console.contains("does not end with '/net/CdkOp-openv-BBB/2222'"))
	assert.False(t, env.console.contains("does not end with '/net/CdkOp-openv-AAA/1111'"))
	assert.True(t, env.console.contains("(Region: sa-east-1)"))
	assert.Len(t, env.factory.regions["cloudformation"], len(entity.Regions()))

	assert.FileExists(t, env.dir+"/aws-openvpn-vpn-server-nlb-eu-west-2-ec2-res.json")
	assert.NoFileExists(t, env.dir+"/aws-openvpn-vpn-server-nlb-sa-east-1-ec2-res.json")
}

func TestOpenVPNServerNLBMissingOutput(t *testing.T) {
	env := newTestEnv(t)
	env.factory.cloudFormationByRegion = map[string]*mockCloudFormationClient{
		"af-south-1": {
			DescribeStacksFunc: func(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
				return &cloudformation.DescribeStacksOutput{Stacks: []cftypes.Stack{{}}}, nil
			},
		},
	}

	uc := NewNetworkUseCase(env.factory, env.export, env.console, env.config)
	err := uc.OpenVPNServerNLB(context.Background(), NetworkOptions{Region: "us-east-1", OutputDir: env.dir})

	assert.ErrorIs(t, err, types.ErrStackOutputNotFound)
	assert.FileExists(t, env.dir+"/aws-openvpn-vpn-server-nlb-af-south-1-cloudformation-res.json")
}

func TestOpenVPNServerNLBNothingFound(t *testing.T) {
	env := newTestEnv(t)
	uc := NewNetworkUseCase(env.factory, env.export, env.console, env.config)

	err := uc.OpenVPNServerNLB(context.Background(), NetworkOptions{Region: "us-east-1", OutputDir: env.dir})

	assert.ErrorContains(t, err, "no OpenVPN server NLB public IPs found")
}
