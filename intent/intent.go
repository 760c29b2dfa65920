// Package intent declares the catalog of business intents exchanged with the
// governance layer. Intents are plain tagged variants: a Kind discriminator
// plus an immutable payload, with no behavior of their own. Producers build
// them through the constructors; consumers switch on Kind.
package intent

import (
	"github.com/teranos/canonmeta/enumkit"
	"github.com/teranos/canonmeta/ids"
	"github.com/teranos/canonmeta/quality"
)

// Kind discriminates intent payloads.
type Kind string

const (
	KindRegisterAsset      Kind = "register_asset"
	KindRetireAsset        Kind = "retire_asset"
	KindReassignOwner      Kind = "reassign_owner"
	KindReclassifyAsset    Kind = "reclassify_asset"
	KindDeclareAlias       Kind = "declare_alias"
	KindRetireAlias        Kind = "retire_alias"
	KindApplyRulePack      Kind = "apply_rule_pack"
	KindRecordCheckResults Kind = "record_check_results"
)

// KindMeta labels a kind for human-facing output.
type KindMeta struct {
	Label string
}

// Kinds is the registry of declared intent kinds.
var Kinds = enumkit.New("intent_kind", []enumkit.Entry[Kind, KindMeta]{
	{Value: KindRegisterAsset, Meta: KindMeta{Label: "Register Asset"}},
	{Value: KindRetireAsset, Meta: KindMeta{Label: "Retire Asset"}},
	{Value: KindReassignOwner, Meta: KindMeta{Label: "Reassign Owner"}},
	{Value: KindReclassifyAsset, Meta: KindMeta{Label: "Reclassify Asset"}},
	{Value: KindDeclareAlias, Meta: KindMeta{Label: "Declare Alias"}},
	{Value: KindRetireAlias, Meta: KindMeta{Label: "Retire Alias"}},
	{Value: KindApplyRulePack, Meta: KindMeta{Label: "Apply Rule Pack"}},
	{Value: KindRecordCheckResults, Meta: KindMeta{Label: "Record Check Results"}},
})

// Intent is the closed union of governance intents.
type Intent interface {
	Kind() Kind
}

// RegisterAsset requests cataloging a new asset under an organization.
type RegisterAsset struct {
	OrgID       ids.OrgID
	AssetKey    string
	DisplayName string
	Owner       string
}

// RetireAsset requests removal of an asset from the active catalog.
type RetireAsset struct {
	OrgID       ids.OrgID
	AssetKey    string
	EffectiveOn ids.ISODate
}

// ReassignOwner moves stewardship of an asset to another user.
type ReassignOwner struct {
	AssetKey string
	NewOwner ids.UserID
}

// ReclassifyAsset changes an asset's data classification.
type ReclassifyAsset struct {
	AssetKey       string
	Classification string
}

// DeclareAlias binds a human-readable alias to a canonical asset key
// within one scope.
type DeclareAlias struct {
	OrgID      ids.OrgID
	AliasValue string
	TargetKey  string
	ScopeType  string
	ScopeValue string
	Priority   int
}

// RetireAlias removes an alias binding.
type RetireAlias struct {
	OrgID      ids.OrgID
	AliasValue string
	TargetKey  string
}

// ApplyRulePack attaches a compiled quality rule pack to an organization.
type ApplyRulePack struct {
	OrgID    ids.OrgID
	PackName string
	Rules    []quality.Rule
}

// RecordCheckResults reports executed quality checks for scoring.
type RecordCheckResults struct {
	OrgID    ids.OrgID
	AssetKey string
	Results  []quality.CheckResult
}

func (RegisterAsset) Kind() Kind      { return KindRegisterAsset }
func (RetireAsset) Kind() Kind        { return KindRetireAsset }
func (ReassignOwner) Kind() Kind      { return KindReassignOwner }
func (ReclassifyAsset) Kind() Kind    { return KindReclassifyAsset }
func (DeclareAlias) Kind() Kind       { return KindDeclareAlias }
func (RetireAlias) Kind() Kind        { return KindRetireAlias }
func (ApplyRulePack) Kind() Kind      { return KindApplyRulePack }
func (RecordCheckResults) Kind() Kind { return KindRecordCheckResults }

// NewRegisterAsset builds a RegisterAsset intent.
func NewRegisterAsset(org ids.OrgID, assetKey, displayName, owner string) RegisterAsset {
	return RegisterAsset{OrgID: org, AssetKey: assetKey, DisplayName: displayName, Owner: owner}
}

// NewRetireAsset builds a RetireAsset intent.
func NewRetireAsset(org ids.OrgID, assetKey string, effectiveOn ids.ISODate) RetireAsset {
	return RetireAsset{OrgID: org, AssetKey: assetKey, EffectiveOn: effectiveOn}
}

// NewReassignOwner builds a ReassignOwner intent.
func NewReassignOwner(assetKey string, newOwner ids.UserID) ReassignOwner {
	return ReassignOwner{AssetKey: assetKey, NewOwner: newOwner}
}

// NewReclassifyAsset builds a ReclassifyAsset intent.
func NewReclassifyAsset(assetKey, classification string) ReclassifyAsset {
	return ReclassifyAsset{AssetKey: assetKey, Classification: classification}
}

// NewDeclareAlias builds a DeclareAlias intent.
func NewDeclareAlias(org ids.OrgID, aliasValue, targetKey, scopeType, scopeValue string, priority int) DeclareAlias {
	return DeclareAlias{
		OrgID:      org,
		AliasValue: aliasValue,
		TargetKey:  targetKey,
		ScopeType:  scopeType,
		ScopeValue: scopeValue,
		Priority:   priority,
	}
}

// NewRetireAlias builds a RetireAlias intent.
func NewRetireAlias(org ids.OrgID, aliasValue, targetKey string) RetireAlias {
	return RetireAlias{OrgID: org, AliasValue: aliasValue, TargetKey: targetKey}
}

// NewApplyRulePack builds an ApplyRulePack intent.
func NewApplyRulePack(org ids.OrgID, packName string, rules []quality.Rule) ApplyRulePack {
	return ApplyRulePack{OrgID: org, PackName: packName, Rules: rules}
}

// NewRecordCheckResults builds a RecordCheckResults intent.
func NewRecordCheckResults(org ids.OrgID, assetKey string, results []quality.CheckResult) RecordCheckResults {
	return RecordCheckResults{OrgID: org, AssetKey: assetKey, Results: results}
}
