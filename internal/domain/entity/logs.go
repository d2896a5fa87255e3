package entity

import (
	"sort"
	"strings"
)

// Prefixos dos log groups criados automaticamente pelos serviços AWS.
const (
	LogGroupPrefixECSCluster  = "/aws/ecs/containerinsights/"
	LogGroupPrefixLambda      = "/aws/lambda/"
	LogGroupPrefixRDSInstance = "/aws/rds/instance/"
)

// Tipos de recurso CloudFormation que possuem log groups.
const (
	ResourceTypeECSCluster     = "AWS::ECS::Cluster"
	ResourceTypeLambdaFunction = "AWS::Lambda::Function"
	ResourceTypeLogGroup       = "AWS::Logs::LogGroup"
	ResourceTypeRDSInstance    = "AWS::RDS::DBInstance"
)

var (
	ecsClusterLogSuffixes  = []string{"performance"}
	rdsInstanceLogSuffixes = []string{"error", "general", "slowquery", "audit"}
)

// LogGroupOwnerKind identifica o tipo de recurso que escreve em um log group.
type LogGroupOwnerKind int

const (
	LogGroupOwnerUnknown LogGroupOwnerKind = iota
	LogGroupOwnerLambda
	LogGroupOwnerECSCluster
	LogGroupOwnerRDSInstance
)

// StackLogGroupNames returns the log group names a stack resource is expected to own.
// Resource types without log groups yield nil.
func StackLogGroupNames(resourceType, physicalID string) []string {
	switch resourceType {
	case ResourceTypeLogGroup:
		return []string{physicalID}
	case ResourceTypeLambdaFunction:
		return []string{LogGroupPrefixLambda + physicalID}
	case ResourceTypeECSCluster:
		return suffixed(LogGroupPrefixECSCluster+physicalID, ecsClusterLogSuffixes)
	case ResourceTypeRDSInstance:
		return suffixed(LogGroupPrefixRDSInstance+physicalID, rdsInstanceLogSuffixes)
	default:
		return nil
	}
}

func suffixed(base string, suffixes []string) []string {
	names := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		names = append(names, base+"/"+s)
	}
	return names
}

// UntrackedLogGroups returns the empty log groups no stack declares, sorted.
func UntrackedLogGroups(empty []string, expected map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(empty))
	var untracked []string
	for _, name := range empty {
		if _, ok := expected[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		untracked = append(untracked, name)
	}
	sort.Strings(untracked)
	return untracked
}

// LogGroupOwner identifica o recurso dono de um log group pelo prefixo do nome.
// Para ECS e RDS o sufixo após a última '/' é descartado.
func LogGroupOwner(logGroup string) (LogGroupOwnerKind, string) {
	switch {
	case strings.HasPrefix(logGroup, LogGroupPrefixLambda):
		return LogGroupOwnerLambda, strings.TrimPrefix(logGroup, LogGroupPrefixLambda)
	case strings.HasPrefix(logGroup, LogGroupPrefixECSCluster):
		return LogGroupOwnerECSCluster, dropLastSegment(strings.TrimPrefix(logGroup, LogGroupPrefixECSCluster))
	case strings.HasPrefix(logGroup, LogGroupPrefixRDSInstance):
		return LogGroupOwnerRDSInstance, dropLastSegment(strings.TrimPrefix(logGroup, LogGroupPrefixRDSInstance))
	default:
		return LogGroupOwnerUnknown, ""
	}
}

func dropLastSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[:i]
	}
	return s
}
