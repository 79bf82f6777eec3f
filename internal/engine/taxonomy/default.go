package taxonomy

import "github.com/crimson-sun/newsdesk/internal/model"

// Category labels. These are the values written into Record.MessageTypes.
const (
	Alert    = "אזעקה"
	Military = "צבאי"
	Attack   = "פיגוע"
	Casualty = "נפגעים"
	Hostage  = "חטופים"
	Update   = "התרעה"
	Fallback = "אחר"
)

// DefaultCategories returns the built-in category table, in match order.
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Label:    Alert,
			Desc:     "Rocket alerts and sirens",
			Keywords: []string{"אזעקה", "צבע אדום", "אזעקות"},
		},
		{
			Label:    Military,
			Desc:     "Army and troop activity",
			Keywords: []string{`צה"ל`, "חיילים", "כוחות", "צבא"},
		},
		{
			Label:    Attack,
			Desc:     "Attacks, infiltration, terror",
			Keywords: []string{"מחבלים", "פיגוע", "חדירה", "טרור"},
		},
		{
			Label:    Casualty,
			Desc:     "Wounded and killed",
			Keywords: []string{"נפגעים", "פצועים", "הרוגים", "נרצחו"},
		},
		{
			Label:    Hostage,
			Desc:     "Abductions and hostages",
			Keywords: []string{"חטופים", "חטיפה", "בני ערובה"},
		},
		{
			Label:    Update,
			Desc:     "General alerts, reports and updates",
			Keywords: []string{"התרעה", "דיווח", "עדכון"},
		},
	}
}
