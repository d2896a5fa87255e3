package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driven/export"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

// fakeFactory entrega os mocks configurados no teste, um por serviço, e registra as
// regiões pedidas.
type fakeFactory struct {
	account string

	acm            *mockACMClient
	amplify        *mockAmplifyClient
	cloudFormation *mockCloudFormationClient
	cloudWatch     *mockCloudWatchClient
	logs           *mockCloudWatchLogsClient
	codeArtifact   *mockCodeArtifactClient
	codePipeline   *mockCodePipelineClient
	costExplorer   *mockCostExplorerClient
	ec2            *mockEC2Client
	ecrPublic      *mockECRPublicClient
	ecs            *mockECSClient
	elbv2          *mockELBv2Client
	events         *mockEventBridgeClient
	kms            *mockKMSClient
	lambda         *mockLambdaClient
	mq             *mockMQClient
	organizations  *mockOrganizationsClient
	rds            *mockRDSClient
	route53        *mockRoute53Client
	s3             *mockS3Client
	secrets        *mockSecretsManagerClient
	sns            *mockSNSClient
	ssm            *mockSSMClient
	sts            *mockSTSClient

	mu      sync.Mutex
	regions map[string][]string

	// Mocks por região; têm precedência sobre os mocks acima.
	amplifyByRegion        map[string]*mockAmplifyClient
	cloudFormationByRegion map[string]*mockCloudFormationClient
	ec2ByRegion            map[string]*mockEC2Client
	ssmByRegion            map[string]*mockSSMClient
}

var _ repository.AWSClientFactory = (*fakeFactory)(nil)

func (f *fakeFactory) track(service, region string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regions == nil {
		f.regions = make(map[string][]string)
	}
	f.regions[service] = append(f.regions[service], region)
}

func orEmpty[T any](m *T) *T {
	if m == nil {
		return new(T)
	}
	return m
}

func (f *fakeFactory) Profile() string { return "test" }

func (f *fakeFactory) AccountID(ctx context.Context) (string, error) {
	if f.account == "" {
		return "111122223333", nil
	}
	return f.account, nil
}

func (f *fakeFactory) ACM(ctx context.Context, region string) (repository.ACMAPI, error) {
	f.track("acm", region)
	return orEmpty(f.acm), nil
}

func (f *fakeFactory) Amplify(ctx context.Context, region string) (repository.AmplifyAPI, error) {
	f.track("amplify", region)
	if m, ok := f.amplifyByRegion[region]; ok {
		return m, nil
	}
	return orEmpty(f.amplify), nil
}

func (f *fakeFactory) CloudFormation(ctx context.Context, region string) (repository.CloudFormationAPI, error) {
	f.track("cloudformation", region)
	if m, ok := f.cloudFormationByRegion[region]; ok {
		return m, nil
	}
	return orEmpty(f.cloudFormation), nil
}

func (f *fakeFactory) CloudWatch(ctx context.Context, region string) (repository.CloudWatchAPI, error) {
	f.track("cloudwatch", region)
	return orEmpty(f.cloudWatch), nil
}

func (f *fakeFactory) CloudWatchLogs(ctx context.Context, region string) (repository.CloudWatchLogsAPI, error) {
	f.track("logs", region)
	return orEmpty(f.logs), nil
}

func (f *fakeFactory) CodeArtifact(ctx context.Context, region string) (repository.CodeArtifactAPI, error) {
	f.track("codeartifact", region)
	return orEmpty(f.codeArtifact), nil
}

func (f *fakeFactory) CodePipeline(ctx context.Context, region string) (repository.CodePipelineAPI, error) {
	f.track("codepipeline", region)
	return orEmpty(f.codePipeline), nil
}

func (f *fakeFactory) CostExplorer(ctx context.Context) (repository.CostExplorerAPI, error) {
	return orEmpty(f.costExplorer), nil
}

func (f *fakeFactory) EC2(ctx context.Context, region string) (repository.EC2API, error) {
	f.track("ec2", region)
	if m, ok := f.ec2ByRegion[region]; ok {
		return m, nil
	}
	return orEmpty(f.ec2), nil
}

func (f *fakeFactory) ECRPublic(ctx context.Context) (repository.ECRPublicAPI, error) {
	return orEmpty(f.ecrPublic), nil
}

func (f *fakeFactory) ECS(ctx context.Context, region string) (repository.ECSAPI, error) {
	f.track("ecs", region)
	return orEmpty(f.ecs), nil
}

func (f *fakeFactory) ELBv2(ctx context.Context, region string) (repository.ELBv2API, error) {
	f.track("elbv2", region)
	return orEmpty(f.elbv2), nil
}

func (f *fakeFactory) EventBridge(ctx context.Context, region string) (repository.EventBridgeAPI, error) {
	f.track("events", region)
	return orEmpty(f.events), nil
}

func (f *fakeFactory) KMS(ctx context.Context, region string) (repository.KMSAPI, error) {
	f.track("kms", region)
	return orEmpty(f.kms), nil
}

func (f *fakeFactory) Lambda(ctx context.Context, region string) (repository.LambdaAPI, error) {
	f.track("lambda", region)
	return orEmpty(f.lambda), nil
}

func (f *fakeFactory) MQ(ctx context.Context, region string) (repository.MQAPI, error) {
	f.track("mq", region)
	return orEmpty(f.mq), nil
}

func (f *fakeFactory) Organizations(ctx context.Context) (repository.OrganizationsAPI, error) {
	return orEmpty(f.organizations), nil
}

func (f *fakeFactory) RDS(ctx context.Context, region string) (repository.RDSAPI, error) {
	f.track("rds", region)
	return orEmpty(f.rds), nil
}

func (f *fakeFactory) Route53(ctx context.Context) (repository.Route53API, error) {
	return orEmpty(f.route53), nil
}

func (f *fakeFactory) S3(ctx context.Context, region string) (repository.S3API, error) {
	f.track("s3", region)
	return orEmpty(f.s3), nil
}

func (f *fakeFactory) SecretsManager(ctx context.Context, region string) (repository.SecretsManagerAPI, error) {
	f.track("secretsmanager", region)
	return orEmpty(f.secrets), nil
}

func (f *fakeFactory) SNS(ctx context.Context, region string) (repository.SNSAPI, error) {
	f.track("sns", region)
	return orEmpty(f.sns), nil
}

func (f *fakeFactory) SSM(ctx context.Context, region string) (repository.SSMAPI, error) {
	f.track("ssm", region)
	if m, ok := f.ssmByRegion[region]; ok {
		return m, nil
	}
	return orEmpty(f.ssm), nil
}

func (f *fakeFactory) STS(ctx context.Context, region string) (repository.STSAPI, error) {
	f.track("sts", region)
	return orEmpty(f.sts), nil
}

// fakeConsole guarda as mensagens de log para asserções.
type fakeConsole struct {
	mu    sync.Mutex
	lines []string
}

var _ types.ConsoleInterface = (*fakeConsole)(nil)

func (c *fakeConsole) log(level, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, level+": "+fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Print(a ...interface{}) { c.log("PRINT", "%s", fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.log("PRINT", format, a...) }
func (c *fakeConsole) Println(a ...interface{}) { c.log("PRINT", "%s", fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) { c.log("INFO", format, a...) }
func (c *fakeConsole) LogWarning(format string, a ...interface{}) { c.log("WARNING", format, a...) }
func (c *fakeConsole) LogError(format string, a ...interface{}) { c.log("ERROR", format, a...) }
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) { c.log("SUCCESS", format, a...) }
func (c *fakeConsole) Status(message string) types.StatusHandle { return noopHandle{} }
func (c *fakeConsole) Progress(string, int) types.ProgressHandle { return noopHandle{} }
func (c *fakeConsole) CreateTable() types.TableInterface { return &noopTable{} }
func (c *fakeConsole) DisplayTrendBars(monthly []types.MonthlyCost) { c.log("TREND", "%d", len(monthly)) }

// contains informa se alguma linha registrada contém fragment.
func (c *fakeConsole) contains(fragment string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if strings.Contains(l, fragment) {
			return true
		}
	}
	return false
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment() {}
func (noopHandle) Stop() {}

type noopTable struct{ rows int }

func (t *noopTable) AddColumn(string, ...interface{}) {}
func (t *noopTable) AddRow(...interface{}) { t.rows++ }
func (t *noopTable) Render() string { return "" }

// testEnv agrupa o que todo teste de script precisa.
type testEnv struct {
	factory *fakeFactory
	console *fakeConsole
	export  repository.ExportRepository
	config  *types.Config
	dir     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		factory: &fakeFactory{},
		console: &fakeConsole{},
		export:  export.NewExportRepository(),
		config:  types.DefaultConfig(),
		dir:     t.TempDir(),
	}
}

// readResults decodifica o arquivo '<name>-<service>-res.json' gravado no diretório do teste.
func (e *testEnv) readResults(t *testing.T, name, service string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name+"-"+service+"-res.json"))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// readText lê um arquivo de passagem gravado no diretório do teste.
func (e *testEnv) readText(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, filename))
	require.NoError(t, err)
	return string(data)
}
