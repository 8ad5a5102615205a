// Package ledger resolves a pole survey document into the per-pole,
// per-span attachment ledger behind a make-ready engineering report: what
// is attached, at what existing and proposed height, and how each span
// compares to its neighbors.
package ledger

import (
	"sort"

	"makeready/internal/rules"
	"makeready/internal/survey"
)

// Attacher is one resolved attachment row. Heights are display tokens;
// RawHeight is kept in inches for ordering only.
type Attacher struct {
	Name      string          `json:"name"`
	Company   string          `json:"company"`
	Existing  string          `json:"existing_height"`
	Proposed  string          `json:"proposed_height"`
	RawHeight float64         `json:"raw_height"`
	Category  survey.Category `json:"category"`
	IsNew     bool            `json:"is_new"`
}

// SpanSet is a resolved backspan or reference span: a bearing label and
// the attachers seen along it, highest first.
type SpanSet struct {
	Bearing   string     `json:"bearing"`
	Attachers []Attacher `json:"attachers,omitempty"`
}

// Row is the ledger entry for one qualifying connection, keyed by its
// origin pole.
type Row struct {
	ConnectionID    string `json:"connection_id"`
	OperationNumber int    `json:"operation_number"`
	Underground     bool   `json:"underground"`

	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id"`

	AttachmentAction  string `json:"attachment_action"`
	PoleOwner         string `json:"pole_owner"`
	PoleNumber        string `json:"pole_number"`
	SCID              string `json:"scid"`
	PoleStructure     string `json:"pole_structure"`
	ProposedRiser     string `json:"proposed_riser"`
	ProposedGuy       string `json:"proposed_guy"`
	Capacity          string `json:"capacity"`
	ConstructionGrade string `json:"construction_grade"`
	WorkType          string `json:"work_type"`
	ResponsibleParty  string `json:"responsible_party"`
	RedTag            bool   `json:"red_tag"`

	FromPole string `json:"from_pole"`
	ToPole   string `json:"to_pole"`

	LowestCom   string `json:"lowest_com"`
	LowestPower string `json:"lowest_power"`

	MainAttachers  []Attacher `json:"main_attachers"`
	ReferenceSpans []SpanSet  `json:"reference_spans,omitempty"`
	Backspan       SpanSet    `json:"backspan"`

	RemedyDescription    string `json:"remedy_description,omitempty"`
	MovementSummary      string `json:"movement_summary"`
	PowerMovementSummary string `json:"power_movement_summary"`
	ShortPowerSummary    string `json:"short_power_summary"`
}

// Resolver derives ledger rows from one survey document. It holds no
// mutable state, so a single resolver is safe for concurrent use as long
// as the document is not mutated underneath it.
type Resolver struct {
	doc   survey.Document
	rules rules.Rules
}

func New(doc survey.Document, r rules.Rules) *Resolver {
	return &Resolver{doc: doc, rules: r}
}

func sortByHeightDesc(attachers []Attacher) {
	sort.SliceStable(attachers, func(i, j int) bool {
		return attachers[i].RawHeight > attachers[j].RawHeight
	})
}
