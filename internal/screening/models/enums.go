package models

import (
	dErrors "medialens/pkg/domain-errors"
)

// AnchorType identifies the kind of identity-bearing fact an anchor carries.
// Closed set; verification logic dispatches per variant.
type AnchorType string

const (
	AnchorName     AnchorType = "name"
	AnchorEmployer AnchorType = "employer"
	AnchorCity     AnchorType = "city"
	AnchorDOB      AnchorType = "dob"
	AnchorAge      AnchorType = "age"
	AnchorTitle    AnchorType = "title"
	AnchorID       AnchorType = "id"
)

// ParseAnchorType validates a wire-format anchor type.
func ParseAnchorType(s string) (AnchorType, error) {
	switch AnchorType(s) {
	case AnchorName, AnchorEmployer, AnchorCity, AnchorDOB, AnchorAge, AnchorTitle, AnchorID:
		return AnchorType(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown anchor_type %q", s)
}

// HitType classifies the screening list a media hit came from.
type HitType string

const (
	HitAdverseMedia HitType = "adverse_media"
	HitPEP          HitType = "pep"
	HitWatchlist    HitType = "watchlist"
	HitSanctions    HitType = "sanctions"
)

// ParseHitType validates a wire-format hit type. Empty defaults to
// adverse_media, matching vendor feeds that omit the field.
func ParseHitType(s string) (HitType, error) {
	if s == "" {
		return HitAdverseMedia, nil
	}
	switch HitType(s) {
	case HitAdverseMedia, HitPEP, HitWatchlist, HitSanctions:
		return HitType(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown hit_type %q", s)
}

// LinkageDecision is the per-article verdict on whether the article's subject
// is the profiled individual.
type LinkageDecision string

const (
	LinkageYes   LinkageDecision = "yes"
	LinkageMaybe LinkageDecision = "maybe"
	LinkageNo    LinkageDecision = "no"
)

// OutcomeType classifies the legal/regulatory outcome an article reports.
type OutcomeType string

const (
	OutcomeAllegation     OutcomeType = "allegation"
	OutcomeInvestigation  OutcomeType = "investigation"
	OutcomeCharged        OutcomeType = "charged"
	OutcomeConvicted      OutcomeType = "convicted"
	OutcomeAcquitted      OutcomeType = "acquitted"
	OutcomeSettled        OutcomeType = "settled"
	OutcomeRegulatorOrder OutcomeType = "regulator_order"
	OutcomeNone           OutcomeType = "none"
)

// ParseOutcomeType validates a wire-format outcome, defaulting to none.
func ParseOutcomeType(s string) OutcomeType {
	switch OutcomeType(s) {
	case OutcomeAllegation, OutcomeInvestigation, OutcomeCharged, OutcomeConvicted,
		OutcomeAcquitted, OutcomeSettled, OutcomeRegulatorOrder:
		return OutcomeType(s)
	}
	return OutcomeNone
}

// CategoryType classifies the risk typology an article reports.
type CategoryType string

const (
	CategoryCorruption         CategoryType = "corruption"
	CategoryFraud              CategoryType = "fraud"
	CategoryMoneyLaundering    CategoryType = "money_laundering"
	CategoryTerroristFinancing CategoryType = "terrorist_financing"
	CategoryTrafficking        CategoryType = "trafficking"
	CategorySanctionsEvasion   CategoryType = "sanctions_evasion"
	CategoryViolence           CategoryType = "violence"
	CategoryRegulatory         CategoryType = "regulatory"
	CategoryCivil              CategoryType = "civil"
	CategoryNone               CategoryType = "none"
)

// ParseCategoryType validates a wire-format category, defaulting to none.
func ParseCategoryType(s string) CategoryType {
	switch CategoryType(s) {
	case CategoryCorruption, CategoryFraud, CategoryMoneyLaundering,
		CategoryTerroristFinancing, CategoryTrafficking, CategorySanctionsEvasion,
		CategoryViolence, CategoryRegulatory, CategoryCivil:
		return CategoryType(s)
	}
	return CategoryNone
}

// FinalDecision is the case-level compliance action.
type FinalDecision string

const (
	DecisionClear    FinalDecision = "clear"
	DecisionEscalate FinalDecision = "escalate"
	DecisionDecline  FinalDecision = "decline"
)
