package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/tidwall/gjson"
)

const (
	PrivateScript    = "aws-private"
	PrivateECSScript = PrivateScript + "-ecs"

	PrivateFile        = PrivateScript + ".json"
	PrivateECSFile     = PrivateECSScript + ".json"
	bastionAZFile      = PrivateScript + "-bastion-az.txt"
	bastionIDFile      = PrivateScript + "-bastion-id.txt"
	privateCommandFile = PrivateScript + "-command.txt"
	ecsClusterFile     = PrivateECSScript + "-cluster.txt"
)

// PrivateOptions são as entradas do aws-private. Os modos são avaliados nesta ordem:
// Bastion, Cluster, List, Command e, sem nenhum deles, a montagem dos arquivos JSON.
type PrivateOptions struct {
	// Region aceita uma AZ (eu-west-2a); fora do modo bastion a letra da AZ é removida.
	Region    string
	Bastion   bool
	List      bool
	Command   []string
	ECS       bool
	Cluster   string
	OutputDir string
}

// PrivateUseCase mantém o mapa de túneis SSH para recursos privados, lido do Parameter Store.
type PrivateUseCase struct {
	scriptBase
	pick func(n int) int
}

// NewPrivateUseCase creates a new aws-private use case.
func NewPrivateUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *PrivateUseCase {
	return &PrivateUseCase{
		scriptBase: newScriptBase(clients, exportRepo, console, config),
		pick:       rand.Intn,
	}
}

// Run dispatches to the selected mode.
func (uc *PrivateUseCase) Run(ctx context.Context, opts PrivateOptions) error {
	if opts.Region == "" {
		return fmt.Errorf("%w: --region", types.ErrMissingArgument)
	}
	if opts.Bastion {
		return uc.run(PrivateScript, ModeBastion, opts.OutputDir, nil, func() error {
			return uc.bastionSteps(opts)
		})
	}

	region := entity.RegionOf(opts.Region)
	switch {
	case opts.Cluster != "":
		return uc.run(PrivateScript, ModeCluster, opts.OutputDir, nil, func() error {
			return uc.clusterSteps(region, opts)
		})
	case opts.List:
		return uc.run(PrivateScript, ModeList, opts.OutputDir, nil, func() error {
			return uc.listSteps(region, opts)
		})
	case len(opts.Command) > 0:
		return uc.run(PrivateScript, ModeCommand, opts.OutputDir, nil, func() error {
			return uc.commandSteps(region, opts)
		})
	default:
		results := entity.NewResults(PrivateScript, entity.ServiceSSM)
		return uc.run(PrivateScript, ModeBase, opts.OutputDir, results, func() error {
			return uc.baseSteps(ctx, region, opts, results)
		})
	}
}

func privatePath(outputDir, filename string) string {
	return filepath.Join(outputDir, filename)
}

func (uc *PrivateUseCase) loadPrivateRegion(region, outputDir string) (entity.PrivateRegion, error) {
	var m entity.PrivateMap
	if err := uc.export.ReadJSON(privatePath(outputDir, PrivateFile), &m); err != nil {
		return entity.PrivateRegion{}, fmt.Errorf("error reading '%s' (run without mode flags first): %w", PrivateFile, err)
	}
	t, ok := m[region]
	if !ok {
		return entity.PrivateRegion{}, fmt.Errorf("%w: %s (in '%s')", types.ErrPrivateRegionNotFound, region, PrivateFile)
	}
	return t, nil
}

func (uc *PrivateUseCase) loadPrivateECSRegion(region, outputDir string) (map[string]string, error) {
	var m entity.PrivateECSMap
	if err := uc.export.ReadJSON(privatePath(outputDir, PrivateECSFile), &m); err != nil {
		return nil, fmt.Errorf("error reading '%s' (run with --ecs first): %w", PrivateECSFile, err)
	}
	t, ok := m[region]
	if !ok {
		return nil, fmt.Errorf("%w: %s (in '%s')", types.ErrPrivateRegionNotFound, region, PrivateECSFile)
	}
	return t, nil
}

// bastionSteps escolhe o bastion da AZ pedida, ou de uma AZ aleatória quando só a região
// foi informada.
func (uc *PrivateUseCase) bastionSteps(opts PrivateOptions) error {
	t, err := uc.loadPrivateRegion(entity.RegionOf(opts.Region), opts.OutputDir)
	if err != nil {
		return err
	}

	az := opts.Region
	if !entity.IsAvailabilityZone(opts.Region) {
		azs := t.BastionAZs()
		if len(azs) == 0 {
			return fmt.Errorf("%w: no AZ listed for %s", types.ErrBastionHostNotFound, opts.Region)
		}
		az = azs[uc.pick(len(azs))]
	}
	id, ok := t.BastionHosts[az]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrBastionHostNotFound, az)
	}

	uc.console.LogInfo("Bastion Host Availability Zone (AZ): %s", az)
	if err := uc.writeText(bastionAZFile, opts.OutputDir, az); err != nil {
		return err
	}
	uc.console.LogInfo("Bastion Host Instance ID: %s", id)
	return uc.writeText(bastionIDFile, opts.OutputDir, id)
}

func (uc *PrivateUseCase) clusterSteps(region string, opts PrivateOptions) error {
	t, err := uc.loadPrivateECSRegion(region, opts.OutputDir)
	if err != nil {
		return err
	}
	uc.console.LogInfo("Getting the ECS cluster ARN for the required private AWS resource: %s", opts.Cluster)
	arn, ok := t[opts.Cluster]
	if !ok {
		arn = entity.ECSClusterNotFound
	}
	return uc.writeText(ecsClusterFile, opts.OutputDir, arn)
}

func (uc *PrivateUseCase) listSteps(region string, opts PrivateOptions) error {
	var names []string
	if opts.ECS {
		t, err := uc.loadPrivateECSRegion(region, opts.OutputDir)
		if err != nil {
			return err
		}
		names = sortedKeys(t)
	} else {
		t, err := uc.loadPrivateRegion(region, opts.OutputDir)
		if err != nil {
			return err
		}
		uc.console.LogInfo("Bastion Host Instance ID info:")
		for _, az := range t.BastionAZs() {
			uc.console.LogInfo("\t Availability Zone (AZ): %s, Instance ID: %s", az, t.BastionHosts[az])
		}
		names = t.ResourceNames()
	}

	uc.console.LogInfo("Private AWS resource options:")
	for _, n := range names {
		uc.console.LogInfo("\t %s", n)
	}
	return nil
}

func (uc *PrivateUseCase) commandSteps(region string, opts PrivateOptions) error {
	t, err := uc.loadPrivateRegion(region, opts.OutputDir)
	if err != nil {
		return err
	}
	uc.console.LogInfo("Gathering all SSH command args for setting up SSH tunnels to private AWS resources")
	return uc.writeText(privateCommandFile, opts.OutputDir, t.Commands(opts.Command)...)
}

// baseSteps monta a entrada da região no aws-private.json (ou aws-private-ecs.json) a partir
// dos parâmetros '/scripts/...' e preserva as outras regiões do arquivo.
func (uc *PrivateUseCase) baseSteps(ctx context.Context, region string, opts PrivateOptions, results *entity.Results) error {
	client, err := uc.clients.SSM(ctx, region)
	if err != nil {
		return err
	}

	filename := PrivateFile
	if opts.ECS {
		filename = PrivateECSFile
	}
	uc.console.LogInfo("Starting to assemble content for '%s' file", filename)

	names, err := listParameterNames(ctx, client, entity.PrivateParameterPrefix, results)
	if err != nil {
		results.SetError(entity.ServiceSSM, "describe_parameters", err)
		return err
	}
	sort.Strings(names)

	ports := entity.NewLocalPortAllocator(uc.config.PrivateProjects)
	clusters := make(map[string]string)
	entry := entity.PrivateRegion{
		Resources:    make(map[string]entity.PrivateResource),
		BastionHosts: make(map[string]string),
	}

	for _, name := range names {
		param, ok := entity.ParsePrivateParameter(name)
		if !ok {
			continue
		}
		switch {
		case param.IsBastion():
			if opts.ECS {
				continue
			}
			id, err := uc.parameterValue(ctx, client, name, results)
			if err != nil || id == "" {
				continue
			}
			entry.BastionHosts[param.BastionAZ] = id
		case opts.ECS:
			if !param.IsECS() {
				continue
			}
			arn, err := uc.parameterValue(ctx, client, name, results)
			if err != nil || arn == "" {
				arn = entity.ECSClusterNotFound
			}
			clusters[param.Key] = arn
		case !param.MentionsECS():
			port, err := ports.Next(param.Project)
			if err != nil {
				uc.console.LogWarning("Skipping AWS SSM parameter '%s': %v", name, err)
				continue
			}
			value, _ := uc.parameterValue(ctx, client, name, results)
			entry.Resources[param.Key] = hostInfo(port, value)
		}
	}

	path := privatePath(opts.OutputDir, filename)
	if opts.ECS {
		content := entity.PrivateECSMap{}
		if err := uc.readExisting(path, &content); err != nil {
			return err
		}
		content[region] = clusters
		return uc.writePrivateJSON(path, content)
	}
	content := entity.PrivateMap{}
	if err := uc.readExisting(path, &content); err != nil {
		return err
	}
	content[region] = entry
	return uc.writePrivateJSON(path, content)
}

// parameterValue trata parâmetros ilegíveis como ausentes.
func (uc *PrivateUseCase) parameterValue(ctx context.Context, client repository.SSMAPI, name string, results *entity.Results) (string, error) {
	value, err := getParameterValue(ctx, client, name, results)
	if err != nil {
		uc.console.LogWarning("%v", err)
		return "", err
	}
	return value, nil
}

// hostInfo lê 'targethost' e 'destport' do JSON do parâmetro; valores ausentes viram os
// marcadores '*-not-found'.
func hostInfo(port, value string) entity.PrivateResource {
	r := entity.PrivateResource{
		LocalPort:  port,
		TargetHost: entity.TargetHostNotFound,
		DestPort:   entity.DestPortNotFound,
	}
	if value == "" || !gjson.Valid(value) {
		return r
	}
	if v := gjson.Get(value, "targethost"); v.Exists() {
		r.TargetHost = v.String()
	}
	if v := gjson.Get(value, "destport"); v.Exists() {
		r.DestPort = v.String()
	}
	return r
}

func (uc *PrivateUseCase) readExisting(path string, v interface{}) error {
	err := uc.export.ReadJSON(path, v)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (uc *PrivateUseCase) writePrivateJSON(path string, v interface{}) error {
	if err := uc.export.WriteJSON(path, v); err != nil {
		return err
	}
	uc.console.LogInfo("Saved '%s'", path)
	return nil
}
