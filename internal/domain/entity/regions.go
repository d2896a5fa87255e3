package entity

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// RegionTimeZone associa uma região AWS ao fuso horário usado nos commit times.
type RegionTimeZone struct {
	Region   string
	TimeZone string
}

// RegionTimeZones lists every region the scripts operate in; the order defines the
// "all regions" scan order.
var RegionTimeZones = []RegionTimeZone{
	{Region: "us-east-1", TimeZone: "US/Eastern"},            // N. Virginia
	{Region: "af-south-1", TimeZone: "Africa/Maputo"},        // Cape Town
	{Region: "ap-northeast-2", TimeZone: "Asia/Seoul"},       // Seoul
	{Region: "ap-southeast-2", TimeZone: "Australia/Sydney"}, // Sydney
	{Region: "eu-central-1", TimeZone: "Europe/Berlin"},      // Frankfurt
	{Region: "eu-west-2", TimeZone: "Europe/London"},         // London
	{Region: "sa-east-1", TimeZone: "America/Sao_Paulo"},     // São Paulo
}

// DefaultRegion é usada pelos scripts globais (Route53, ACM, ECR Public, Cost Explorer).
const DefaultRegion = "us-east-1"

// Regions retorna as regiões na ordem de varredura.
func Regions() []string {
	regions := make([]string, 0, len(RegionTimeZones))
	for _, r := range RegionTimeZones {
		regions = append(regions, r.Region)
	}
	return regions
}

// RegionTimeZoneName returns the time zone name of a known region.
func RegionTimeZoneName(region string) (string, bool) {
	for _, r := range RegionTimeZones {
		if r.Region == region {
			return r.TimeZone, true
		}
	}
	return "", false
}

// RegionLocation carrega o *time.Location da região.
func RegionLocation(region string) (*time.Location, error) {
	tz, ok := RegionTimeZoneName(region)
	if !ok {
		return nil, fmt.Errorf("no time zone known for region '%s'", region)
	}
	return time.LoadLocation(tz)
}

// RegionLabel formata "'<region>' ['<tz>']" para mensagens de log.
func RegionLabel(region string) string {
	tz, _ := RegionTimeZoneName(region)
	return fmt.Sprintf("'%s' ['%s']", region, tz)
}
