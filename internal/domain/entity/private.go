package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// PrivateParameterPrefix é o prefixo dos parâmetros SSM lidos pelo aws-private.
	PrivateParameterPrefix = "/scripts"
	// BastionHostKey agrupa os IDs das instâncias bastion por AZ.
	BastionHostKey = "BastionHostLinux"

	ECSClusterNotFound = "ecs-cluster-not-found"
	TargetHostNotFound = "targethost-not-found"
	DestPortNotFound   = "destport-not-found"

	defaultLocalPort         = 9000
	defaultLocalPortProjects = 100
)

// PrivateResource descreve um túnel SSH para um recurso privado.
type PrivateResource struct {
	LocalPort  string `json:"localport"`
	TargetHost string `json:"targethost"`
	DestPort   string `json:"destport"`
}

// Command is the 'localport:targethost:destport' tunnel argument.
func (r PrivateResource) Command() string {
	return r.LocalPort + ":" + r.TargetHost + ":" + r.DestPort
}

// PrivateRegion is one region entry of aws-private.json: the tunnel targets plus the
// bastion instance IDs per AZ, flattened under the BastionHostLinux key.
type PrivateRegion struct {
	Resources    map[string]PrivateResource
	BastionHosts map[string]string
}

// MarshalJSON grava os recursos e o mapa de bastions no mesmo objeto.
func (p PrivateRegion) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Resources)+1)
	for k, v := range p.Resources {
		m[k] = v
	}
	if p.BastionHosts != nil {
		m[BastionHostKey] = p.BastionHosts
	}
	return json.Marshal(m)
}

// UnmarshalJSON separa o mapa de bastions dos recursos.
func (p *PrivateRegion) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Resources = make(map[string]PrivateResource, len(raw))
	for k, v := range raw {
		if k == BastionHostKey {
			if err := json.Unmarshal(v, &p.BastionHosts); err != nil {
				return fmt.Errorf("%s: %w", BastionHostKey, err)
			}
			continue
		}
		var r PrivateResource
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		p.Resources[k] = r
	}
	return nil
}

// ResourceNames lista os recursos em ordem alfabética.
func (p PrivateRegion) ResourceNames() []string {
	return sortedKeys(p.Resources)
}

// BastionAZs lista as AZs com bastion em ordem alfabética.
func (p PrivateRegion) BastionAZs() []string {
	return sortedKeys(p.BastionHosts)
}

// Commands returns the tunnel arguments of the requested resources that exist, in the
// requested order, terminated by "end".
func (p PrivateRegion) Commands(names []string) []string {
	var cmds []string
	for _, n := range names {
		if r, ok := p.Resources[n]; ok && r.LocalPort != "" && r.TargetHost != "" && r.DestPort != "" {
			cmds = append(cmds, r.Command())
		}
	}
	return append(cmds, "end")
}

// PrivateMap é o conteúdo do aws-private.json, indexado por região.
type PrivateMap map[string]PrivateRegion

// PrivateECSMap é o conteúdo do aws-private-ecs.json: região -> recurso -> ARN do cluster.
type PrivateECSMap map[string]map[string]string

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsAvailabilityZone reports whether s names an AZ (eu-west-2a) instead of a region.
func IsAvailabilityZone(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last < '0' || last > '9'
}

// RegionOf strips the AZ letter, when present.
func RegionOf(s string) string {
	if IsAvailabilityZone(s) {
		return s[:len(s)-1]
	}
	return s
}

// PrivateParameter is a '/scripts/...' SSM parameter name split into its parts.
type PrivateParameter struct {
	Name string
	// Key is the name without the '/scripts/' prefix.
	Key string
	// BastionAZ is set for '/scripts/BastionHostLinux/<x>-<az>' parameters.
	BastionAZ string
	// Project is the first '-' part of the last path segment.
	Project string
}

// ParsePrivateParameter splits a parameter name; ok is false for names outside the prefix.
func ParsePrivateParameter(name string) (PrivateParameter, bool) {
	if !strings.HasPrefix(name, PrivateParameterPrefix) {
		return PrivateParameter{}, false
	}
	parts := strings.Split(name, "/")
	if len(parts) < 3 {
		return PrivateParameter{}, false
	}
	props := parts[2:]
	p := PrivateParameter{Name: name, Key: strings.Join(props, "/")}
	if props[0] == BastionHostKey {
		if len(props) > 1 {
			if i := strings.Index(props[1], "-"); i >= 0 {
				p.BastionAZ = props[1][i+1:]
			} else {
				p.BastionAZ = props[1]
			}
		}
		return p, true
	}
	last := props[len(props)-1]
	p.Project = strings.SplitN(last, "-", 2)[0]
	return p, p.Key != ""
}

// IsBastion reports whether the parameter holds a bastion instance ID.
func (p PrivateParameter) IsBastion() bool { return p.BastionAZ != "" }

// IsECS indica parâmetros com o ARN de um cluster ECS.
func (p PrivateParameter) IsECS() bool { return strings.HasSuffix(p.Key, "ecs") }

// MentionsECS indica parâmetros relacionados a ECS, ignorados no mapa de túneis.
func (p PrivateParameter) MentionsECS() bool { return strings.Contains(p.Key, "ecs") }

// LocalPortAllocator hands out local ports: 9000 + 100*projectIndex + per-project offset.
type LocalPortAllocator struct {
	index  map[string]int
	offset map[string]int
}

// NewLocalPortAllocator cria o alocador para os projetos na ordem informada.
func NewLocalPortAllocator(projects []string) *LocalPortAllocator {
	a := &LocalPortAllocator{index: make(map[string]int), offset: make(map[string]int)}
	for i, p := range projects {
		a.index[p] = i
	}
	return a
}

// Next devolve a próxima porta local do projeto.
func (a *LocalPortAllocator) Next(project string) (string, error) {
	i, ok := a.index[project]
	if !ok {
		return "", fmt.Errorf("unknown private project '%s'", project)
	}
	port := defaultLocalPort + defaultLocalPortProjects*i + a.offset[project]
	a.offset[project]++
	return strconv.Itoa(port), nil
}
