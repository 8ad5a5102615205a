// Package rules holds the data-driven ownership and cable-type rules the
// resolver matches survey text against. Company and type taxonomies are
// open-ended field data, so everything is case-insensitive string matching
// loaded from yaml rather than a closed enum.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Rules struct {
	// PowerCompany owns the electrical space on every pole.
	PowerCompany string `yaml:"power_company"`

	// PowerExclusiveTypes are the power attachment types of which only the
	// lowest-measured instance survives into the main attacher list.
	PowerExclusiveTypes []string `yaml:"power_exclusive_types"`

	// PowerMidspanTypes count toward the lowest-power midspan height.
	PowerMidspanTypes []string `yaml:"power_midspan_types"`

	NeutralType string `yaml:"neutral_type"`
	PrimaryType string `yaml:"primary_type"`

	// TransferExemptCompanies are skipped when deciding whether third-party
	// movement makes a pole a make-ready transfer candidate. Substring match.
	TransferExemptCompanies []string `yaml:"transfer_exempt_companies"`

	ResponsibleParty string `yaml:"responsible_party"`
	PoleOwner        string `yaml:"pole_owner"`

	// StructureTypes is the allow-list of pole node types.
	StructureTypes []string `yaml:"structure_types"`
}

func Default() Rules {
	return Rules{
		PowerCompany:            "CPS Energy",
		PowerExclusiveTypes:     []string{"Primary", "Neutral", "Street Light"},
		PowerMidspanTypes:       []string{"Neutral", "Street Light"},
		NeutralType:             "Neutral",
		PrimaryType:             "Primary",
		TransferExemptCompanies: []string{"CPS Energy", "Charter", "Spectrum"},
		ResponsibleParty:        "Charter (2)",
		PoleOwner:               "CPS",
		StructureTypes:          []string{"pole", "Power", "Power Transformer", "Joint", "Joint Transformer"},
	}
}

// Load reads a rules yaml file. Fields left unset in the file keep their
// defaults.
func Load(path string) (Rules, error) {
	r := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse rules yaml: %w", err)
	}
	return r, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r Rules) IsPowerCompany(company string) bool {
	return normalize(company) == normalize(r.PowerCompany)
}

func (r Rules) IsPowerExclusiveType(label string) bool {
	return containsNormalized(r.PowerExclusiveTypes, label)
}

func (r Rules) IsPowerMidspanType(label string) bool {
	return containsNormalized(r.PowerMidspanTypes, label)
}

func (r Rules) IsNeutral(label string) bool {
	return normalize(label) == normalize(r.NeutralType)
}

func (r Rules) IsPrimary(label string) bool {
	return normalize(label) == normalize(r.PrimaryType)
}

// IsTransferExempt reports whether the company name contains any exempt
// company as a substring, matching how crews record co-branded owners.
func (r Rules) IsTransferExempt(company string) bool {
	c := normalize(company)
	for _, exempt := range r.TransferExemptCompanies {
		if strings.Contains(c, normalize(exempt)) {
			return true
		}
	}
	return false
}

func (r Rules) IsAllowedStructure(nodeType string) bool {
	return containsNormalized(r.StructureTypes, nodeType)
}

func containsNormalized(list []string, s string) bool {
	n := normalize(s)
	for _, v := range list {
		if normalize(v) == n {
			return true
		}
	}
	return false
}
