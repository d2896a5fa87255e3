package entity

import "sort"

// Nomes de serviço usados como chave no acumulador de resultados.
const (
	ServiceACM            = "acm"
	ServiceAmplify        = "amplify"
	ServiceCloudFormation = "cloudformation"
	ServiceCloudWatch     = "cloudwatch"
	ServiceCodeArtifact   = "codeartifact"
	ServiceCodePipeline   = "codepipeline"
	ServiceCostExplorer   = "ce"
	ServiceEC2            = "ec2"
	ServiceECRPublic      = "ecr-public"
	ServiceECS            = "ecs"
	ServiceELBv2          = "elbv2"
	ServiceEvents         = "events"
	ServiceKMS            = "kms"
	ServiceLambda         = "lambda"
	ServiceLogs           = "logs"
	ServiceMQ             = "mq"
	ServiceOrganizations  = "organizations"
	ServiceRDS            = "rds"
	ServiceRoute53        = "route53"
	ServiceS3             = "s3"
	ServiceSecretsManager = "secretsmanager"
	ServiceSNS            = "sns"
	ServiceSSM            = "ssm"
	ServiceSTS            = "sts"
)

// Results accumulates the raw responses of one run as service -> operation -> response.
// Each registered service becomes one '<name>-<service>-res.json' file, even when empty.
type Results struct {
	Name     string
	services []string
	data     map[string]map[string]interface{}
}

// NewResults cria um acumulador com os serviços que sempre serão gravados.
func NewResults(name string, services ...string) *Results {
	r := &Results{Name: name, data: make(map[string]map[string]interface{})}
	for _, s := range services {
		r.register(s)
	}
	return r
}

func (r *Results) register(service string) map[string]interface{} {
	ops, ok := r.data[service]
	if !ok {
		ops = make(map[string]interface{})
		r.data[service] = ops
		r.services = append(r.services, service)
	}
	return ops
}

// Set guarda (ou substitui) a resposta de uma operação.
func (r *Results) Set(service, operation string, response interface{}) {
	r.register(service)[operation] = response
}

// Append adds a response to the list kept for an operation called many times.
func (r *Results) Append(service, operation string, response interface{}) {
	ops := r.register(service)
	list, _ := ops[operation].([]interface{})
	ops[operation] = append(list, response)
}

// SetError records a failed call as '<operation>_error'.
func (r *Results) SetError(service, operation string, err error) {
	if err == nil {
		return
	}
	r.Set(service, operation+"_error", err.Error())
}

// Get returns the recorded response of an operation.
func (r *Results) Get(service, operation string) (interface{}, bool) {
	ops, ok := r.data[service]
	if !ok {
		return nil, false
	}
	v, ok := ops[operation]
	return v, ok
}

// Services retorna os serviços na ordem de registro.
func (r *Results) Services() []string {
	return append([]string(nil), r.services...)
}

// Operations returns the recorded responses of a service.
func (r *Results) Operations(service string) map[string]interface{} {
	if ops, ok := r.data[service]; ok {
		return ops
	}
	return map[string]interface{}{}
}

// OperationNames lista as operações de um serviço em ordem alfabética.
func (r *Results) OperationNames(service string) []string {
	names := make([]string, 0, len(r.data[service]))
	for k := range r.data[service] {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FileName é o nome do arquivo JSON de um serviço.
func (r *Results) FileName(service string) string {
	return r.Name + "-" + service + "-res.json"
}
