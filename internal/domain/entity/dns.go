package entity

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const (
	// ACMValidationSuffix termina o valor dos CNAMEs de validação do ACM.
	ACMValidationSuffix = "acm-validations.aws."
	// PortalComponent marca os registros de validação criados pelo Amplify.
	PortalComponent = "portal"

	RecordTypeCNAME = "CNAME"
)

// DNSRecord is the part of a Route53 record set used for correlation.
type DNSRecord struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Value         string `json:"value"`
	SetIdentifier string `json:"set_identifier,omitempty"`
}

// Key identifica um record set dentro de uma hosted zone.
func (r DNSRecord) Key() string {
	return r.Name + "|" + r.Type + "|" + r.SetIdentifier
}

// HostedZoneRecords guarda os CNAMEs de validação de uma hosted zone pública.
type HostedZoneRecords struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Records []DNSRecord `json:"records"`
}

// CertificateValidation holds the registered-domain key of a certificate (or Amplify
// domain association) and the validation record names still in use under it.
type CertificateValidation struct {
	Key         string
	RecordNames []string
}

// ZoneCleanup são os registros a apagar de uma hosted zone.
type ZoneCleanup struct {
	ZoneID   string      `json:"zone_id"`
	ZoneName string      `json:"zone_name"`
	Records  []DNSRecord `json:"records"`
}

// IsACMValidationRecord reports whether a record is an ACM DNS validation CNAME.
func IsACMValidationRecord(recordType, value string) bool {
	return recordType == RecordTypeCNAME && strings.HasSuffix(value, ACMValidationSuffix)
}

// RegisteredDomainKey devolve o domínio registrável com ponto final
// (app.portal.example.co.uk -> example.co.uk.), no formato dos nomes de hosted zone.
func RegisteredDomainKey(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	d = strings.TrimPrefix(d, "*.")
	fld, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return "", fmt.Errorf("registered domain of '%s': %w", domain, err)
	}
	return fld + ".", nil
}

// ParseVerificationRecord parses an Amplify '<name> <type> <value>' verification record.
func ParseVerificationRecord(s string) DNSRecord {
	var r DNSRecord
	fields := strings.Split(strings.TrimSpace(s), " ")
	if len(fields) > 0 {
		r.Name = fields[0]
	}
	if len(fields) > 1 {
		r.Type = fields[1]
	}
	if len(fields) > 2 {
		r.Value = fields[2]
	}
	return r
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func filterRecords(records []DNSRecord, keep func(DNSRecord) bool) []DNSRecord {
	var out []DNSRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// PlanDNSCleanup selects the validation records that no certificate or Amplify domain
// association uses anymore.
//
// ACM candidates start from every record of every zone; a zone whose key matches a
// certificate keeps only its non-portal records that are not validation records of that
// certificate. Amplify candidates are the portal records, of zones whose key was seen in
// an Amplify domain association, that are not one of the association records. Both sets
// are merged per zone, without duplicates, in hosted zone order.
func PlanDNSCleanup(zones []HostedZoneRecords, certs, amplify []CertificateValidation) []ZoneCleanup {
	acm := make(map[string][]DNSRecord, len(zones))
	for _, z := range zones {
		acm[z.Name] = z.Records
	}
	for _, c := range certs {
		records, ok := acm[c.Key]
		if !ok || len(records) == 0 || len(c.RecordNames) == 0 {
			continue
		}
		used := nameSet(c.RecordNames)
		acm[c.Key] = filterRecords(records, func(r DNSRecord) bool {
			_, inUse := used[r.Name]
			return !strings.Contains(r.Name, PortalComponent) && !inUse
		})
	}

	amplifyUsed := make(map[string]map[string]struct{})
	for _, a := range amplify {
		set, ok := amplifyUsed[a.Key]
		if !ok {
			set = make(map[string]struct{})
			amplifyUsed[a.Key] = set
		}
		for _, n := range a.RecordNames {
			set[n] = struct{}{}
		}
	}

	var plan []ZoneCleanup
	for _, z := range zones {
		seen := make(map[string]struct{})
		var records []DNSRecord
		add := func(r DNSRecord) {
			if _, dup := seen[r.Key()]; dup {
				return
			}
			seen[r.Key()] = struct{}{}
			records = append(records, r)
		}
		for _, r := range acm[z.Name] {
			add(r)
		}
		if used, ok := amplifyUsed[z.Name]; ok {
			for _, r := range z.Records {
				_, inUse := used[r.Name]
				if strings.Contains(r.Name, PortalComponent) && !inUse {
					add(r)
				}
			}
		}
		if len(records) > 0 {
			plan = append(plan, ZoneCleanup{ZoneID: z.ID, ZoneName: z.Name, Records: records})
		}
	}
	return plan
}

// DNSChangeComment é o comentário do change batch de DELETE de uma hosted zone.
func DNSChangeComment(script string, count int, zoneName, zoneID string) string {
	return fmt.Sprintf("Change batch request (from: '%s' script) to 'DELETE' (%dx) '%s' type records (for domain: '%s') in hosted zone: %s",
		script, count, RecordTypeCNAME, zoneName, zoneID)
}
