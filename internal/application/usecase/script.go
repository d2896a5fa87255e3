package usecase

import (
	"fmt"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
)

// Modos de execução registrados nos logs de início/fim.
const (
	ModeBase          = "base"
	ModeSSH           = "ssh"
	ModeAmplify       = "amplify"
	ModeOAuth         = "oauth"
	ModeNotifications = "notifications"
	ModeCreate        = "create"
	ModeDelete        = "delete"
	ModeBastion       = "bastion"
	ModeList          = "list"
	ModeCommand       = "command"
	ModeCluster       = "cluster"
	ModeRepo          = "repo"
)

// scriptBase concentra as dependências comuns a todos os scripts.
type scriptBase struct {
	clients repository.AWSClientFactory
	export  repository.ExportRepository
	console types.ConsoleInterface
	config  *types.Config
}

func newScriptBase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) scriptBase {
	if config == nil {
		config = types.DefaultConfig()
	}
	return scriptBase{
		clients: clients,
		export:  exportRepo,
		console: console,
		config:  config,
	}
}

// run executa fn entre os logs de início e fim e sempre grava os resultados acumulados,
// inclusive quando fn falha.
func (b *scriptBase) run(name, mode, outputDir string, results *entity.Results, fn func() error) error {
	b.console.LogInfo("## Starting '%s' (%s) main method", name, mode)

	err := fn()
	b.flush(results, outputDir)
	if err != nil {
		b.console.LogError("'%s' (%s) failed: %v", name, mode, err)
		return err
	}

	b.console.LogInfo("## Finished '%s' (%s) main method", name, mode)
	return nil
}

func (b *scriptBase) flush(results *entity.Results, outputDir string) {
	if results == nil {
		return
	}
	paths, err := b.export.WriteResults(results, outputDir)
	if err != nil {
		b.console.LogError("Failed to write results of '%s': %v", results.Name, err)
	}
	for _, p := range paths {
		b.console.LogInfo("Results saved to: %s", p)
	}
}

// writeText grava um arquivo de passagem e registra onde ficou.
func (b *scriptBase) writeText(filename, outputDir string, lines ...string) error {
	path, err := b.export.WriteText(filename, outputDir, lines)
	if err != nil {
		return fmt.Errorf("error writing '%s': %w", filename, err)
	}
	b.console.LogInfo("Saved '%s'", path)
	return nil
}

// writeGitRepo grava '<script>-git-repo.txt' com a URL SSH do repositório.
func (b *scriptBase) writeGitRepo(script, repo, outputDir string) error {
	url := b.config.GitSSHURL(repo)
	b.console.LogInfo("Git repo SSH (for 'git clone' command): %s", url)
	return b.writeText(script+"-git-repo.txt", outputDir, url)
}

// requireArgs recebe pares flag/valor e falha no primeiro valor vazio.
func requireArgs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: --%s", types.ErrMissingArgument, pairs[i])
		}
	}
	return nil
}
