package labeler

import (
	"maps"
	"slices"

	gh "github.com/douhashi/triage/internal/github"
)

const (
	statusColor = "ededed"
	typeColor   = "1d76db"
	areaColor   = "c5def5"
)

// Fixed colours and descriptions for the labels the default rules emit.
// Labels coming from custom rules get a colour per family and no description.
var knownLabels = map[string]gh.LabelDefinition{
	"status: needs triage": {Color: "fbca04", Description: "En attente de tri par un mainteneur"},
	"status: invalid":      {Color: "e4e669", Description: "Ne respecte pas les conventions du projet"},
	"status: needs review": {Color: "0e8a16", Description: "Prêt pour la relecture"},
	"type: bug":            {Color: "d73a4a", Description: "Quelque chose ne fonctionne pas"},
	"type: documentation":  {Color: "0075ca", Description: "Documentation"},
	"type: enhancement":    {Color: "a2eeef", Description: "Nouvelle fonctionnalité ou amélioration"},
	"type: performance":    {Color: "5319e7", Description: "Performances"},
	"type: question":       {Color: "d876e3", Description: "Question"},
	"type: refactor":       {Color: "bfd4f2", Description: "Refactorisation du code"},
	"type: tests":          {Color: "006b75", Description: "Tests et intégration continue"},
	"type: chores":         {Color: "cfd3d7", Description: "Maintenance"},
	"area: i18n":           {Color: areaColor, Description: "Traductions"},
	"area: ui":             {Color: areaColor, Description: "Interface et composants"},
	"area: cache":          {Color: areaColor, Description: "Base de données locale et cache"},
	"area: backend":        {Color: areaColor, Description: "Services et stores"},
}

// Definitions lists every label rules can produce, status labels first,
// without duplicates.
func Definitions(rules Rules) []gh.LabelDefinition {
	seen := NewLabelSet()
	var defs []gh.LabelDefinition

	add := func(name, fallbackColor string) {
		if name == "" || seen.Has(name) {
			return
		}
		seen.Add(name)
		def, ok := knownLabels[name]
		if !ok {
			def = gh.LabelDefinition{Color: fallbackColor}
		}
		def.Name = name
		defs = append(defs, def)
	}

	add(rules.Status.Triage, statusColor)
	add(rules.Status.Invalid, statusColor)
	add(rules.Status.NeedsReview, statusColor)

	for _, commitType := range slices.Sorted(maps.Keys(rules.CommitTypes)) {
		add(rules.CommitTypes[commitType], typeColor)
	}
	for _, rule := range rules.IssueKeywords {
		add(rule.Label, typeColor)
	}
	for _, rule := range rules.Areas {
		add(rule.Label, areaColor)
	}

	return defs
}
