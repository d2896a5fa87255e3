package entity

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

// Deploy environments conhecidos.
const (
	DeployEnvDev     = "dev"
	DeployEnvStaging = "staging"
	DeployEnvPerform = "perform"
	DeployEnvPreview = "preview"
	DeployEnvDemo    = "demo"
	DeployEnvProd    = "prod"
)

var (
	// DefaultDeployEnvs exclui os envs preview/demo.
	DefaultDeployEnvs = []string{DeployEnvDev, DeployEnvStaging, DeployEnvPerform, DeployEnvProd}
	// InternalDeployEnvs nunca são expostos publicamente (basic auth, sem alarmes).
	InternalDeployEnvs = []string{DeployEnvDev, DeployEnvStaging, DeployEnvPerform}
	// NonGitTagDeployEnvs são implantados a partir de branch, nunca de git tag.
	NonGitTagDeployEnvs = []string{DeployEnvDev, DeployEnvStaging}
)

func containsAnyOf(env string, names []string) bool {
	for _, n := range names {
		if strings.Contains(env, n) {
			return true
		}
	}
	return false
}

func isOneOf(env string, names []string) bool {
	for _, n := range names {
		if env == n {
			return true
		}
	}
	return false
}

// IsDefaultDeployEnv reports whether env is exactly one of the default envs.
func IsDefaultDeployEnv(env string) bool {
	return isOneOf(env, DefaultDeployEnvs)
}

// IsInternalDeployEnv também aceita envs que contêm um env interno (ex.: dev-unstable).
func IsInternalDeployEnv(env string) bool {
	return containsAnyOf(env, InternalDeployEnvs)
}

// IsNonGitTagDeployEnv também aceita envs que contêm um env sem git tag (ex.: dev-unstable).
func IsNonGitTagDeployEnv(env string) bool {
	return containsAnyOf(env, NonGitTagDeployEnvs)
}

// ValidateDeployEnv rejects bare envs (no '-') that are not default envs.
func ValidateDeployEnv(env string) error {
	if strings.Contains(env, "-") || IsDefaultDeployEnv(env) {
		return nil
	}
	return fmt.Errorf("%w: '%s' (valid: %s, *-%s, *-%s; did you mean '%s-%s' or '%s-%s'?)",
		types.ErrInvalidDeployEnv, env, strings.Join(DefaultDeployEnvs, ", "),
		DeployEnvPreview, DeployEnvDemo, env, DeployEnvPreview, env, DeployEnvDemo)
}

// ValidateGitTag exige tag para envs com git tag e a proíbe nos demais.
func ValidateGitTag(env, tag string) error {
	if IsNonGitTagDeployEnv(env) {
		if tag != "" {
			return fmt.Errorf("%w: '%s' deploy env", types.ErrGitTagNotAllowed, env)
		}
		return nil
	}
	if tag == "" {
		return fmt.Errorf("%w: '%s' deploy env", types.ErrGitTagRequired, env)
	}
	return nil
}

// ValidateRepoDeployEnv checks the env against the repo for the git checkout hand-off:
// dev and staging only support their base repos.
func ValidateRepoDeployEnv(repo, env string) error {
	if isOneOf(env, NonGitTagDeployEnvs) && !strings.Contains(repo, "base") {
		return fmt.Errorf("%w: '%s' (for git repo: '%s'); %s only support git tag deployment for their base repo (e.g. '%s-%s-base')",
			types.ErrInvalidDeployEnv, env, repo, strings.Join(NonGitTagDeployEnvs, ", "), repo, env)
	}
	return ValidateDeployEnv(env)
}

func isDemoVariant(env string) bool {
	parts := strings.SplitN(env, "-", 2)
	return len(parts) == 2 && parts[1] == DeployEnvDemo
}

// CheckoutBranch é o branch usado no 'git checkout' dos deploys via SSH.
func CheckoutBranch(env string) string {
	switch {
	case isDemoVariant(env), env == DeployEnvProd:
		return DeployEnvProd
	case env == DeployEnvDev:
		return DeployEnvDev
	default:
		return "main"
	}
}

// AmplifyBranch é o branch conectado a um app Amplify recém criado.
func AmplifyBranch(env string) string {
	switch {
	case isDemoVariant(env), env == DeployEnvProd:
		return DeployEnvProd
	case env == DeployEnvDev || strings.Contains(env, DeployEnvDev):
		return "develop"
	default:
		return "main"
	}
}

// NormalizeDeployEnv collapses '<prefix>-demo' and '<prefix>-preview' to the prefix,
// except for 'sih' which keeps the first letter of the suffix (sih-demo -> sihd).
func NormalizeDeployEnv(env string) string {
	i := strings.LastIndex(env, "-")
	if i < 0 {
		return env
	}
	prefix, suffix := env[:i], env[i+1:]
	if suffix != DeployEnvDemo && suffix != DeployEnvPreview {
		return env
	}
	if prefix == "sih" {
		return prefix + suffix[:1]
	}
	return prefix
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
