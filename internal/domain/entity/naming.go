package entity

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/tidwall/gjson"
	"golang.org/x/net/publicsuffix"
)

const (
	stackSuffix = "Stack"

	// Componentes de stacks CDK.
	StackComponentGateway = "gw"
	StackComponentNotif   = "notif"

	// SNSMobPush identifica os recursos de push mobile.
	SNSMobPush = "sns-mob-push"
)

// ProjectName derives the CDK project name from a repo: the last '-' part is dropped
// and the first two remaining parts are capitalised and joined (foo-bar-web -> FooBar).
func ProjectName(repo string) string {
	name := repo
	if i := strings.LastIndex(repo, "-"); i >= 0 {
		name = repo[:i]
	}
	parts := strings.SplitN(name, "-", 2)
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(Capitalize(p))
	}
	return sb.String()
}

// RepoComponent é a última parte do nome do repo (ex.: web, app, api).
func RepoComponent(repo string) string {
	if i := strings.LastIndex(repo, "-"); i >= 0 {
		return repo[i+1:]
	}
	return repo
}

// StackName builds 'Cdk<Project><Component><Env>Stack' for a repo and deploy env.
func StackName(repo, component, env string) string {
	return "Cdk" + ProjectName(repo) + Capitalize(component) + Capitalize(NormalizeDeployEnv(env)) + stackSuffix
}

// StackOutputPrefix is the lower-cased stack name without the 'Stack' suffix, capitalised.
func StackOutputPrefix(stack string) string {
	return Capitalize(strings.TrimSuffix(stack, stackSuffix))
}

// SNSMobPushOutputPrefix is the prefix of the topic/role outputs of a notif stack.
func SNSMobPushOutputPrefix(stack string) string {
	prefix := StackOutputPrefix(stack) + strings.ReplaceAll(SNSMobPush, "-", "")
	return strings.Replace(prefix, StackComponentNotif, StackComponentGateway, 1)
}

// ResourceName junta repo e deploy env (nome de apps Amplify e platform applications).
func ResourceName(repo, env string) string {
	return repo + "-" + env
}

// ParameterTagName é o parâmetro SSM com a git tag implantada.
func ParameterTagName(repo, env string) string {
	return "/tag/" + repo + "/" + env
}

// EnvVarsSecretName drops the second '-' part of repos with more than one '-'.
func EnvVarsSecretName(repo string) string {
	name := repo
	if strings.Count(repo, "-") > 1 {
		parts := strings.Split(repo, "-")
		name = strings.Join(append([]string{parts[0]}, parts[2:]...), "-")
	}
	return strings.ToLower(name) + "/ENV_VARS"
}

// ValidateDomainName checks that name is a syntactically valid, registrable domain.
func ValidateDomainName(name string) error {
	if len(name) > 253 || !strings.Contains(name, ".") {
		return fmt.Errorf("%w: '%s'", types.ErrInvalidDomain, name)
	}
	for _, label := range strings.Split(name, ".") {
		if !validDomainLabel(label) {
			return fmt.Errorf("%w: '%s'", types.ErrInvalidDomain, name)
		}
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(name); err != nil {
		return fmt.Errorf("%w: '%s': %v", types.ErrInvalidDomain, name, err)
	}
	return nil
}

func validDomainLabel(label string) bool {
	if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

// AmplifyDomainName compõe '<component>.[<env>.][<custom>.]<domain>'. Sem domínio
// explícito usa os dois últimos labels do host do back-end.
func AmplifyDomainName(repo, env, backEndURL, domain string) (string, error) {
	component := RepoComponent(repo)
	custom := ""
	if i := strings.LastIndex(repo, "-"); i >= 0 {
		if parts := strings.SplitN(repo[:i], "-", 2); len(parts) == 2 {
			custom = parts[1]
		}
	}

	if domain != "" {
		if err := ValidateDomainName(domain); err != nil {
			return "", err
		}
	} else {
		u, err := url.Parse(backEndURL)
		if err != nil {
			return "", fmt.Errorf("parse back-end URL '%s': %w", backEndURL, err)
		}
		labels := strings.Split(u.Host, ".")
		if len(labels) > 2 {
			labels = labels[len(labels)-2:]
		}
		domain = strings.Join(labels, ".")
	}

	parts := []string{component}
	if env != DeployEnvProd {
		parts = append(parts, env)
	}
	if custom != "" {
		parts = append(parts, custom)
	}
	parts = append(parts, domain)
	return strings.Join(parts, "."), nil
}

// Placeholders usados nos valores do secret ENV_VARS.
const (
	PlaceholderBackEnd  = "<BE>"
	PlaceholderExternal = "<EXTERNAL>"
	PlaceholderInternal = "<INTERNAL>"
	DeployTagVar        = "DEPLOY_TAG"
)

// AmplifyEnvVars resolves the ENV_VARS secret placeholders for a deploy env.
// <EXTERNAL>/<INTERNAL> values keep only the text after the first space and are dropped
// for the other kind of env; <BE> and *GATEWAY_URL values become the back-end URL.
func AmplifyEnvVars(secret map[string]string, backEndURL, tag string, internal bool) map[string]string {
	vars := make(map[string]string, len(secret)+1)
	if tag != "" {
		vars[DeployTagVar] = tag
	}
	for k, v := range secret {
		isExternal := strings.HasPrefix(v, PlaceholderExternal)
		isInternal := strings.HasPrefix(v, PlaceholderInternal)
		switch {
		case (isExternal && !internal) || (isInternal && internal):
			if i := strings.Index(v, " "); i >= 0 {
				v = v[i+1:]
			}
			vars[k] = v
		case isExternal || isInternal:
			continue
		case v == PlaceholderBackEnd || strings.HasSuffix(k, "GATEWAY_URL"):
			vars[k] = backEndURL
		default:
			vars[k] = v
		}
	}
	return vars
}

// CustomRule é uma regra de rewrite/redirect de um app Amplify.
type CustomRule struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// AmplifyCustomRules returns the SPA rewrites, plus the www redirect for public envs.
func AmplifyCustomRules(domain string, internal bool) []CustomRule {
	var rules []CustomRule
	if !internal {
		rules = append(rules, CustomRule{Source: "https://www." + domain, Target: "https://" + domain, Status: "301"})
	}
	return append(rules,
		CustomRule{
			Source: `</^[^.]+$|\.(?!(pdf|css|gif|ico|jpg|js|png|txt|svg|woff|woff2|ttf|map|json)$)([^.]+$)/>`,
			Target: "/index.html",
			Status: "200",
		},
		CustomRule{Source: "/<*>", Target: "/index.html", Status: "404-200"},
	)
}

func amplifySettingsDir(repo, pwd string) string {
	parts := strings.Split(repo, "-")
	return filepath.Join(pwd, parts[0], parts[len(parts)-1])
}

// BuildSpecPath aponta para o amplify.yml do projeto (variante 'tag' quando há git tag).
func BuildSpecPath(repo, pwd, tag string) string {
	dir := amplifySettingsDir(repo, pwd)
	if tag != "" {
		dir = filepath.Join(dir, "tag")
	}
	return filepath.Join(dir, "amplify.yml")
}

// CustomHTTPPath aponta para o customHttp.yml do projeto.
func CustomHTTPPath(repo, pwd string) string {
	return filepath.Join(amplifySettingsDir(repo, pwd), "customHttp.yml")
}

// UploadBucketName is '<repo without dashes>-<region>' capped at 63 characters; submodules
// use the parent repo (all but the last '-' part).
func UploadBucketName(repo, region string, submodule bool) string {
	name := repo
	if submodule {
		parts := strings.Split(repo, "-")
		name = strings.Join(parts[:len(parts)-1], "-")
	}
	bucket := strings.ReplaceAll(name, "-", "") + "-" + region
	if len(bucket) > 63 {
		bucket = bucket[:63]
	}
	return bucket
}

// UploadObjectKey é '<branch>/[<submodule>/]<file>'.
func UploadObjectKey(repo, branch, file string, submodule bool) string {
	if submodule {
		return branch + "/" + RepoComponent(repo) + "/" + file
	}
	return branch + "/" + file
}

// ParseNLBDNSName splits '<name>-<id>.elb.<region>.amazonaws.com' into the load balancer
// name and id.
func ParseNLBDNSName(dnsName string) (string, string, error) {
	host := strings.SplitN(dnsName, ".", 2)[0]
	i := strings.LastIndex(host, "-")
	if i <= 0 || i == len(host)-1 {
		return "", "", fmt.Errorf("unexpected NLB DNS name: '%s'", dnsName)
	}
	return host[:i], host[i+1:], nil
}

// RuleAppID extrai o app id de 'amplify-<appId>-<...>'.
func RuleAppID(name string) (string, bool) {
	parts := strings.SplitN(name, "-", 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SentinelTopicAppID extrai o app id de um tópico '...amplify-<appId>_AMPLIBRANCHSENTINEL':
// tudo antes do último '_' e, disso, o que vem depois do último '-'.
func SentinelTopicAppID(arn string) string {
	head := arn
	if i := strings.LastIndex(head, "_"); i >= 0 {
		head = head[:i]
	}
	if i := strings.LastIndex(head, "-"); i >= 0 {
		head = head[i+1:]
	}
	return head
}

// Tags que o Amazon MQ coloca nos VPC endpoints que ele gerencia.
const (
	AMQManagedTag = "AMQManaged"
	AMQBrokerTag  = "Broker"
)

// IsBrokerEndpoint reports whether endpoint tags mark an AWS-managed endpoint of brokerID:
// 'AMQManaged' holds a JSON true and 'Broker' equals the broker id.
func IsBrokerEndpoint(tags map[string]string, brokerID string) bool {
	managed, broker := tags[AMQManagedTag], tags[AMQBrokerTag]
	if managed == "" || broker == "" || !gjson.Valid(managed) {
		return false
	}
	return gjson.Parse(managed).Type == gjson.True && broker == brokerID
}
