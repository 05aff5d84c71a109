package i18n

// Static key→string tables for the two supported interface languages.
// French is the default; an unknown language falls back to it.

type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"

	DefaultLanguage = LanguageFrench
)

// IsSupported reports whether lang is one of the supported languages
func IsSupported(lang string) bool {
	switch Language(lang) {
	case LanguageFrench, LanguageEnglish:
		return true
	}
	return false
}

// Table returns the full string table for the given language
func Table(lang Language) map[string]string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLanguage]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

var translations = map[Language]map[string]string{
	LanguageFrench: {
		// Navigation
		"nav.back":      "Retour",
		"nav.myCave":    "Ma Cave",
		"nav.addWine":   "Ajouter un Vin",
		"nav.community": "Communauté",
		"nav.settings":  "Paramètres",

		// My Cave
		"cave.title":             "Ma Cave",
		"cave.searchPlaceholder": "Rechercher par nom, région, producteur...",
		"cave.allTypes":          "Tous les types",
		"cave.red":               "Rouge",
		"cave.white":             "Blanc",
		"cave.rose":              "Rosé",
		"cave.sparkling":         "Pétillant",
		"cave.dessert":           "Dessert",
		"cave.sortBy":            "Trier par",
		"cave.name":              "Nom",
		"cave.rating":            "Note",
		"cave.vintage":           "Millésime",
		"cave.price":             "Prix",
		"cave.date":              "Date de dégustation",
		"cave.noWines":           "Aucun vin trouvé avec ces critères",
		"cave.emptyTitle":        "Votre cave est vide",
		"cave.addFirstWine":      "Ajouter votre premier vin",

		// Wine actions
		"wine.viewDetails":        "Voir les détails",
		"wine.addTasting":         "Ajouter une dégustation",
		"wine.removeFromCave":     "Supprimer de la cave",
		"wine.tasted":             "Dégusté",
		"wine.sold":               "Vendu",
		"wine.gifted":             "Offert",
		"wine.broken":             "Cassé",
		"wine.spoiled":            "Abîmé",
		"wine.other":              "Autre raison",
		"wine.confirmRemoval":     "Confirmer la suppression",
		"wine.confirmRemovalText": "Êtes-vous sûr de vouloir supprimer",
		"wine.reason":             "Raison",
		"wine.cancel":             "Annuler",
		"wine.remove":             "Supprimer",
		"wine.removed":            "Bouteille supprimée",
		"wine.removedDescription": "a été supprimé de votre cave",

		// Community
		"community.title":          "Communauté",
		"community.recentActivity": "Activité Récente",
		"community.noActivity":     "Aucune activité récente",
		"community.added":          "a ajouté",
		"community.removed":        "a supprimé",
		"community.tasted":         "a dégusté",
		"community.toCave":         "à sa cave",
		"community.fromCave":       "de sa cave",
		"community.reason":         "Raison",

		// Settings
		"settings.title":              "Paramètres",
		"settings.language":           "Langue",
		"settings.french":             "Français",
		"settings.english":            "English",
		"settings.languageChanged":    "Langue changée",
		"settings.languageChangedDesc": "L'interface a été mise à jour",
	},
	LanguageEnglish: {
		// Navigation
		"nav.back":      "Back",
		"nav.myCave":    "My Cave",
		"nav.addWine":   "Add Wine",
		"nav.community": "Community",
		"nav.settings":  "Settings",

		// My Cave
		"cave.title":             "My Cave",
		"cave.searchPlaceholder": "Search by name, region, producer...",
		"cave.allTypes":          "All types",
		"cave.red":               "Red",
		"cave.white":             "White",
		"cave.rose":              "Rosé",
		"cave.sparkling":         "Sparkling",
		"cave.dessert":           "Dessert",
		"cave.sortBy":            "Sort by",
		"cave.name":              "Name",
		"cave.rating":            "Rating",
		"cave.vintage":           "Vintage",
		"cave.price":             "Price",
		"cave.date":              "Tasting date",
		"cave.noWines":           "No wines found with these criteria",
		"cave.emptyTitle":        "Your cave is empty",
		"cave.addFirstWine":      "Add your first wine",

		// Wine actions
		"wine.viewDetails":        "View details",
		"wine.addTasting":         "Add tasting",
		"wine.removeFromCave":     "Remove from cave",
		"wine.tasted":             "Tasted",
		"wine.sold":               "Sold",
		"wine.gifted":             "Gifted",
		"wine.broken":             "Broken",
		"wine.spoiled":            "Spoiled",
		"wine.other":              "Other reason",
		"wine.confirmRemoval":     "Confirm removal",
		"wine.confirmRemovalText": "Are you sure you want to remove",
		"wine.reason":             "Reason",
		"wine.cancel":             "Cancel",
		"wine.remove":             "Remove",
		"wine.removed":            "Bottle removed",
		"wine.removedDescription": "has been removed from your cave",

		// Community
		"community.title":          "Community",
		"community.recentActivity": "Recent Activity",
		"community.noActivity":     "No recent activity",
		"community.added":          "added",
		"community.removed":        "removed",
		"community.tasted":         "tasted",
		"community.toCave":         "to their cave",
		"community.fromCave":       "from their cave",
		"community.reason":         "Reason",

		// Settings
		"settings.title":              "Settings",
		"settings.language":           "Language",
		"settings.french":             "Français",
		"settings.english":            "English",
		"settings.languageChanged":    "Language changed",
		"settings.languageChangedDesc": "Interface has been updated",
	},
}
