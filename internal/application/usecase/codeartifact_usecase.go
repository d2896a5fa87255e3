package usecase

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codeartifact"
	catypes "github.com/aws/aws-sdk-go-v2/service/codeartifact/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

const (
	CreateCodeArtifactScript = "aws-create-codeartifact"
	DeleteCodeArtifactScript = "aws-delete-codeartifact"
)

// CodeArtifactOptions são as entradas de create/delete-codeartifact.
// Domain vazio usa o domínio padrão da configuração.
type CodeArtifactOptions struct {
	Region    string
	Repo      string
	Domain    string
	OutputDir string
}

// CodeArtifactUseCase cria e remove repositórios npm do CodeArtifact.
type CodeArtifactUseCase struct {
	scriptBase
}

// NewCodeArtifactUseCase creates a new CodeArtifact use case.
func NewCodeArtifactUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *CodeArtifactUseCase {
	return &CodeArtifactUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// Create cria o repositório; falha se ele já existir ou se o domínio informado não existir.
func (uc *CodeArtifactUseCase) Create(ctx context.Context, opts CodeArtifactOptions) error {
	results := entity.NewResults(CreateCodeArtifactScript, entity.ServiceCodeArtifact)

	return uc.run(CreateCodeArtifactScript, ModeCreate, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo); err != nil {
			return err
		}
		client, err := uc.clients.CodeArtifact(ctx, opts.Region)
		if err != nil {
			return err
		}

		exists, err := uc.repositoryExists(ctx, client, opts.Repo, results)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrRepositoryExists, opts.Repo, entity.RegionLabel(opts.Region))
		}

		domain := opts.Domain
		if domain != "" {
			found, err := uc.domainExists(ctx, client, domain, results)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrDomainNotFound, domain, entity.RegionLabel(opts.Region))
			}
		} else {
			domain = uc.config.CodeArtifactDomain
		}

		uc.console.LogInfo("Creating the CodeArtifact repository '%s' in domain '%s'", opts.Repo, domain)
		out, err := client.CreateRepository(ctx, &codeartifact.CreateRepositoryInput{
			Domain:      aws.String(domain),
			Repository:  aws.String(opts.Repo),
			Description: aws.String(fmt.Sprintf("CodeArtifact repo, storing all npm packages, for '%s' git repo.", opts.Repo)),
		})
		if err != nil {
			results.SetError(entity.ServiceCodeArtifact, "create_repository", err)
			return fmt.Errorf("error creating CodeArtifact repository '%s': %w", opts.Repo, err)
		}
		results.Set(entity.ServiceCodeArtifact, "create_repository", out)
		uc.console.LogSuccess("CodeArtifact repository '%s' created", opts.Repo)
		return nil
	})
}

// Delete remove o repositório; falha se ele não existir.
func (uc *CodeArtifactUseCase) Delete(ctx context.Context, opts CodeArtifactOptions) error {
	results := entity.NewResults(DeleteCodeArtifactScript, entity.ServiceCodeArtifact)

	return uc.run(DeleteCodeArtifactScript, ModeDelete, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "repo", opts.Repo); err != nil {
			return err
		}
		client, err := uc.clients.CodeArtifact(ctx, opts.Region)
		if err != nil {
			return err
		}

		exists, err := uc.repositoryExists(ctx, client, opts.Repo, results)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: '%s' (in the %s region)", types.ErrRepositoryNotFound, opts.Repo, entity.RegionLabel(opts.Region))
		}

		domain := opts.Domain
		if domain == "" {
			domain = uc.config.CodeArtifactDomain
		}

		out, err := client.DeleteRepository(ctx, &codeartifact.DeleteRepositoryInput{
			Domain:     aws.String(domain),
			Repository: aws.String(opts.Repo),
		})
		if err != nil {
			results.SetError(entity.ServiceCodeArtifact, "delete_repository", err)
			return fmt.Errorf("error deleting CodeArtifact repository '%s': %w", opts.Repo, err)
		}
		results.Set(entity.ServiceCodeArtifact, "delete_repository", out)
		uc.console.LogSuccess("CodeArtifact repository '%s' deleted", opts.Repo)
		return nil
	})
}

func (uc *CodeArtifactUseCase) repositoryExists(ctx context.Context, client repository.CodeArtifactAPI, name string, results *entity.Results) (bool, error) {
	uc.console.LogInfo("Checking whether there is already a CodeArtifact repository of the name: '%s'", name)
	repos, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]catypes.RepositorySummary, *string, error) {
		out, err := client.ListRepositories(ctx, &codeartifact.ListRepositoriesInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceCodeArtifact, "list_repositories", out)
		return out.Repositories, out.NextToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceCodeArtifact, "list_repositories", err)
		return false, fmt.Errorf("error listing CodeArtifact repositories: %w", err)
	}
	for _, r := range repos {
		if aws.ToString(r.Name) == name {
			return true, nil
		}
	}
	return false, nil
}

func (uc *CodeArtifactUseCase) domainExists(ctx context.Context, client repository.CodeArtifactAPI, name string, results *entity.Results) (bool, error) {
	domains, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]catypes.DomainSummary, *string, error) {
		out, err := client.ListDomains(ctx, &codeartifact.ListDomainsInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceCodeArtifact, "list_domains", out)
		return out.Domains, out.NextToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceCodeArtifact, "list_domains", err)
		return false, fmt.Errorf("error listing CodeArtifact domains: %w", err)
	}
	for _, d := range domains {
		if aws.ToString(d.Name) == name {
			return true, nil
		}
	}
	return false, nil
}
