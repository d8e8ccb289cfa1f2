// Package architects extracts fields from the Apex architects
// professional-indemnity proposal form (template apex_architects_v1).
//
// The form is label-driven: most simple fields sit on, or just below,
// a known label line, while staff counts, the current-PI policy row,
// the turnover table and the two percentage-split tables need their own
// block scans. Patterns are tuned against OCR output, so every capture
// is best-effort and missing fields come back nil.
package architects

import (
	"regexp"
	"strings"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/extract/normalize"
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) TemplateID() string { return "apex_architects_v1" }

func (*Extractor) Profession() string { return "architects" }

// Label sets for the simple lookahead fields, as they appear on the form.
var labels = map[string][]string{
	"firm_name":          {"Full trading names of all Firms", "Name(s)"},
	"date_established":   {"Date Established"},
	"website":            {"2a) Website"},
	"email":              {"2b) Email Address"},
	"telephone":          {"2c) Telephone Number"},
	"total_staff_block":  {"Total Number of Staff"},
	"current_pi_block":   {"Current Professional Indemnity Policy"},
	"financial_year_end": {"Financial Year End"},
}

func (*Extractor) MatchScore(text string) float64 {
	t := strings.ToLower(text)
	score := 0.0
	if strings.Contains(t, "professional indemnity insurance proposal form for architects") {
		score += 0.7
	}
	if strings.Contains(t, "breakdown of your activities and percentage of income generated for each discipline") {
		score += 0.2
	}
	if strings.Contains(t, "breakdown of contract types described below and percentage of income generated") {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (e *Extractor) Extract(text string) (domain.FieldValues, domain.FieldValues) {
	lines := splitLines(text)

	raw := domain.FieldValues{}

	// Firm basics.
	putString(raw, "firm_name", extractAfterLabel(lines, labels["firm_name"], 3))
	putString(raw, "date_established", extractAfterLabel(lines, labels["date_established"], 2))
	putString(raw, "website", extractAfterLabel(lines, labels["website"], 2))
	putString(raw, "email", extractAfterLabel(lines, labels["email"], 2))
	putString(raw, "telephone", extractAfterLabel(lines, labels["telephone"], 2))

	extractStaffBlock(lines, raw)
	extractCurrentPIBlock(text, raw)
	extractTurnoverLatestYear(text, raw)
	extractActivitySplit(text, raw)
	extractContractTypeSplit(text, raw)

	// Claims and circumstances are kept as raw spans for manual review
	// or later NLP; only their presence is normalized.
	putString(raw, "claims_block_raw", captureBlock(claimsBlockRe, text))
	putString(raw, "circumstances_block_raw", captureBlock(circumstancesBlockRe, text))

	norm := e.normalize(raw)
	return raw, norm
}

func (*Extractor) normalize(raw domain.FieldValues) domain.FieldValues {
	norm := domain.FieldValues{}

	norm["firm_name"] = raw["firm_name"]
	putString(norm, "date_established", normalize.Date(rawString(raw, "date_established")))
	norm["website"] = raw["website"]
	norm["email"] = raw["email"]
	norm["telephone"] = raw["telephone"]

	putInt(norm, "staff_principals", normalize.Int(rawString(raw, "staff_principals_raw")))
	putInt(norm, "staff_qualified", normalize.Int(rawString(raw, "staff_qualified_raw")))
	putInt(norm, "staff_unqualified", normalize.Int(rawString(raw, "staff_unqualified_raw")))
	putInt(norm, "staff_others", normalize.Int(rawString(raw, "staff_others_raw")))

	norm["current_pi_insurer"] = raw["current_pi_insurer_raw"]
	norm["current_pi_broker"] = raw["current_pi_broker_raw"]
	norm["current_pi_limit_raw"] = raw["current_pi_limit_raw"]
	putFloat(norm, "current_pi_limit_amount", normalize.Money(rawString(raw, "current_pi_limit_raw")))
	norm["current_pi_excess_raw"] = raw["current_pi_excess_raw"]
	putFloat(norm, "current_pi_excess_amount", normalize.Money(rawString(raw, "current_pi_excess_raw")))
	norm["current_pi_premium_raw"] = raw["current_pi_premium_raw"]
	putFloat(norm, "current_pi_premium_amount", normalize.Money(rawString(raw, "current_pi_premium_raw")))
	putString(norm, "current_pi_renewal_date", normalize.Date(rawString(raw, "current_pi_renewal_raw")))

	putFloat(norm, "turnover_latest_uk", normalize.Money(rawString(raw, "turnover_latest_uk_raw")))
	putFloat(norm, "turnover_latest_usa_canada", normalize.Money(rawString(raw, "turnover_latest_usa_canada_raw")))
	putFloat(norm, "turnover_latest_eu", normalize.Money(rawString(raw, "turnover_latest_eu_raw")))
	putFloat(norm, "turnover_latest_elsewhere", normalize.Money(rawString(raw, "turnover_latest_elsewhere_raw")))

	for _, key := range pctKeys {
		putInt(norm, strings.TrimSuffix(key, "_raw"), normalize.Int(rawString(raw, key)))
	}
	norm["activity_other_description"] = raw["activity_other_description_raw"]
	norm["contract_other_description"] = raw["contract_other_description_raw"]

	norm["has_claims_disclosed"] = strings.TrimSpace(rawString(raw, "claims_block_raw")) != ""
	norm["has_circumstances_disclosed"] = strings.TrimSpace(rawString(raw, "circumstances_block_raw")) != ""

	return norm
}

// ---- line-oriented label capture ----

func splitLines(text string) []string {
	out := strings.Split(text, "\n")
	for i, ln := range out {
		out[i] = strings.TrimSpace(ln)
	}
	return out
}

func findLineIndex(lines []string, needles []string) int {
	for i, line := range lines {
		l := strings.ToLower(line)
		for _, needle := range needles {
			if strings.Contains(l, strings.ToLower(needle)) {
				return i
			}
		}
	}
	return -1
}

var labelSep = regexp.MustCompile(`[:\-]`)

// extractAfterLabel finds the first line containing any of the labels
// and returns the value after a ':' or '-' on that line, or the next
// non-empty line within maxLookahead.
func extractAfterLabel(lines []string, needles []string, maxLookahead int) *string {
	idx := findLineIndex(lines, needles)
	if idx < 0 {
		return nil
	}
	parts := labelSep.Split(lines[idx], 2)
	if len(parts) == 2 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			return &v
		}
	}
	for j := 1; j <= maxLookahead && idx+j < len(lines); j++ {
		if next := lines[idx+j]; next != "" {
			return &next
		}
	}
	return nil
}

// ---- block scans ----

var (
	staffPrincipalsRe = regexp.MustCompile(`(?i)Principals\s+(\d+)`)
	staffQualifiedRe  = regexp.MustCompile(`(?i)Qualified Staff\s+(\d+)`)
	staffUnqualRe     = regexp.MustCompile(`(?i)Unqualified Staff\s+(\d+)`)
	staffOthersRe     = regexp.MustCompile(`(?i)Others\s+(\d+)`)
)

// extractStaffBlock scans a small window after the "Total Number of
// Staff" heading; OCR usually emits the headings then the counts.
func extractStaffBlock(lines []string, raw domain.FieldValues) {
	keys := []string{
		"staff_principals_raw",
		"staff_qualified_raw",
		"staff_unqualified_raw",
		"staff_others_raw",
	}
	for _, k := range keys {
		raw[k] = nil
	}
	idx := findLineIndex(lines, labels["total_staff_block"])
	if idx < 0 {
		return
	}
	end := idx + 6
	if end > len(lines) {
		end = len(lines)
	}
	joined := strings.Join(lines[idx:end], " ")
	putMatch(raw, "staff_principals_raw", staffPrincipalsRe, joined)
	putMatch(raw, "staff_qualified_raw", staffQualifiedRe, joined)
	putMatch(raw, "staff_unqualified_raw", staffUnqualRe, joined)
	putMatch(raw, "staff_others_raw", staffOthersRe, joined)
}

// currentPIRe captures the table row following the current-policy
// heading in one pass; column order is fixed on the form.
var currentPIRe = regexp.MustCompile(`(?is)Current Professional Indemnity Policy\s*` +
	`Insurer\s*(?P<insurer>.+?)\s+` +
	`Broker\s*(?P<broker>.+?)\s+` +
	`Limit of Indemnity\s*(?P<limit>.+?)\s+` +
	`Excess\s*(?P<excess>.+?)\s+` +
	`Premium\s*(?P<premium>.+?)\s+` +
	`Renewal Date\s*(?P<renewal>.+)`)

func extractCurrentPIBlock(text string, raw domain.FieldValues) {
	keys := map[string]string{
		"insurer": "current_pi_insurer_raw",
		"broker":  "current_pi_broker_raw",
		"limit":   "current_pi_limit_raw",
		"excess":  "current_pi_excess_raw",
		"premium": "current_pi_premium_raw",
		"renewal": "current_pi_renewal_raw",
	}
	for _, k := range keys {
		raw[k] = nil
	}
	m := currentPIRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	for i, name := range currentPIRe.SubexpNames() {
		if key, ok := keys[name]; ok {
			raw[key] = strings.TrimSpace(m[i])
		}
	}
}

var (
	turnoverBlockRe = regexp.MustCompile(`(?is)Breakdown of turnover/fees.*?` +
		`UK\s*(?P<uk>.+?)` +
		`USA/Canada\s*(?P<usa>.+?)` +
		`EU\s*(?P<eu>.+?)` +
		`Elsewhere\s*(?P<elsewhere>.+?)` +
		`Total`)
	turnoverNumberRe = regexp.MustCompile(`[£\d,.kKmM]+`)
)

// extractTurnoverLatestYear reads the multi-year turnover-by-territory
// table and takes the last number in each row as the latest complete
// year's figure.
func extractTurnoverLatestYear(text string, raw domain.FieldValues) {
	m := turnoverBlockRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	keys := map[string]string{
		"uk":        "turnover_latest_uk_raw",
		"usa":       "turnover_latest_usa_canada_raw",
		"eu":        "turnover_latest_eu_raw",
		"elsewhere": "turnover_latest_elsewhere_raw",
	}
	for i, name := range turnoverBlockRe.SubexpNames() {
		key, ok := keys[name]
		if !ok {
			continue
		}
		nums := turnoverNumberRe.FindAllString(m[i], -1)
		if len(nums) > 0 {
			raw[key] = nums[len(nums)-1]
		} else {
			raw[key] = nil
		}
	}
}

var activityPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{"activity_architectural_new_build_pct_raw", regexp.MustCompile(`(?i)Architectural Work\s*-\s*New Build\s*(\d+)\s*%`)},
	{"activity_architectural_non_structural_refurb_pct_raw", regexp.MustCompile(`(?i)Architectural Work\s*[–-]?\s*Non-Structural Refurbishment\s*(\d+)\s*%`)},
	{"activity_building_surveys_non_structural_land_pct_raw", regexp.MustCompile(`(?i)Building Surveys Non-Structural\s*/\s*Land Surveys\s*(\d+)\s*%`)},
	{"activity_civil_engineering_pct_raw", regexp.MustCompile(`(?i)Civil Engineering\s*(\d+)\s*%`)},
	{"activity_structural_surveys_valuations_pct_raw", regexp.MustCompile(`(?i)Structural Surveys\s*/\s*Valuations\s*(\d+)\s*%`)},
	{"activity_project_management_pct_raw", regexp.MustCompile(`(?i)Project Management\s*(\d+)\s*%`)},
	{"activity_project_coordination_pct_raw", regexp.MustCompile(`(?i)Project Co-Ordination\s*(\d+)\s*%`)},
	{"activity_interior_design_pct_raw", regexp.MustCompile(`(?i)Interior Design\s*(\d+)\s*%`)},
	{"activity_quantity_surveying_pct_raw", regexp.MustCompile(`(?i)Quantity Surveying\s*(\d+)\s*%`)},
	{"activity_other_pct_raw", regexp.MustCompile(`(?i)Other:\s*(?:Please describe:)?\s*(\d+)\s*%`)},
}

var activityOtherDescRe = regexp.MustCompile(`(?is)Other:\s*(?:Please describe:)?\s*%.*?Description of other work:\s*(.+?)(?:Total:|$)`)

func extractActivitySplit(text string, raw domain.FieldValues) {
	for _, p := range activityPatterns {
		putMatch(raw, p.key, p.re, text)
	}
	putString(raw, "activity_other_description_raw", captureBlock(activityOtherDescRe, text))
}

var contractPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{"contract_housing_under_3_floors_pct_raw", regexp.MustCompile(`(?i)Housing\s*\(Under\s*3\s*Floors\)\s*(\d+)\s*%`)},
	{"contract_housing_over_3_floors_pct_raw", regexp.MustCompile(`(?i)Housing\s*\(Over\s*3\s*Floors\)\s*(\d+)\s*%`)},
	{"contract_office_retail_pct_raw", regexp.MustCompile(`(?i)Office\s*/\s*Retail\s*(\d+)\s*%`)},
	{"contract_schools_hospitals_municipal_pct_raw", regexp.MustCompile(`(?i)Schools\s*/\s*Hospitals\s*/\s*Municipal Buildings\s*(\d+)\s*%`)},
	{"contract_roads_highways_pct_raw", regexp.MustCompile(`(?i)Roads\s*/\s*Highways\s*/\s*Motorways\s*(\d+)\s*%`)},
	{"contract_power_plants_pct_raw", regexp.MustCompile(`(?i)Power Plants\s*(\d+)\s*%`)},
	{"contract_cladding_glazing_curtain_walling_pct_raw", regexp.MustCompile(`(?i)Cladding\s*/\s*Glazing\s*/\s*Curtain Walling\s*(\d+)\s*%`)},
	{"contract_other_pct_raw", regexp.MustCompile(`(?i)Other:\s*(\d+)\s*%`)},
}

var contractOtherDescRe = regexp.MustCompile(`(?is)Description of other work:\s*(.+?)(?:Total:|$)`)

func extractContractTypeSplit(text string, raw domain.FieldValues) {
	for _, p := range contractPatterns {
		putMatch(raw, p.key, p.re, text)
	}
	putString(raw, "contract_other_description_raw", captureBlock(contractOtherDescRe, text))
}

var (
	claimsBlockRe = regexp.MustCompile(`(?is)Has any claim been made or loss suffered.*?` +
		`If YES, please provide details below(.*?)` +
		`(?:Are you aware of any of the following\?|$)`)
	circumstancesBlockRe = regexp.MustCompile(`(?is)Are you aware of any of the following\?(.*?)` +
		`(?:Name of Principal Signing this form:|DECLARATION|$)`)
)

func captureBlock(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	return &v
}

// pctKeys are the raw percentage fields; the normalized key drops the
// _raw suffix.
var pctKeys = []string{
	"activity_architectural_new_build_pct_raw",
	"activity_architectural_non_structural_refurb_pct_raw",
	"activity_building_surveys_non_structural_land_pct_raw",
	"activity_civil_engineering_pct_raw",
	"activity_structural_surveys_valuations_pct_raw",
	"activity_project_management_pct_raw",
	"activity_project_coordination_pct_raw",
	"activity_interior_design_pct_raw",
	"activity_quantity_surveying_pct_raw",
	"activity_other_pct_raw",
	"contract_housing_under_3_floors_pct_raw",
	"contract_housing_over_3_floors_pct_raw",
	"contract_office_retail_pct_raw",
	"contract_schools_hospitals_municipal_pct_raw",
	"contract_roads_highways_pct_raw",
	"contract_power_plants_pct_raw",
	"contract_cladding_glazing_curtain_walling_pct_raw",
	"contract_other_pct_raw",
}

// ---- small map helpers ----

func putString(m domain.FieldValues, key string, v *string) {
	if v != nil {
		m[key] = *v
	} else {
		m[key] = nil
	}
}

func putInt(m domain.FieldValues, key string, v *int) {
	if v != nil {
		m[key] = *v
	} else {
		m[key] = nil
	}
}

func putFloat(m domain.FieldValues, key string, v *float64) {
	if v != nil {
		m[key] = *v
	} else {
		m[key] = nil
	}
}

func putMatch(m domain.FieldValues, key string, re *regexp.Regexp, text string) {
	if sub := re.FindStringSubmatch(text); sub != nil {
		m[key] = sub[1]
	} else {
		m[key] = nil
	}
}

func rawString(m domain.FieldValues, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
