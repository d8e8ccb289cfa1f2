package architects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleText imitates OCR output of a filled-in architects proposal
// form: labels and values survive, table layout collapses into lines.
const sampleText = `Professional Indemnity Insurance Proposal Form for Architects

Full trading names of all Firms: Studio North Architects Ltd
Date Established: 12/06/1998
2a) Website: www.studionorth.co.uk
2b) Email Address: info@studionorth.co.uk
2c) Telephone Number: 020 7946 0123

Total Number of Staff
Principals 2 Qualified Staff 5 Unqualified Staff 1 Others 3

Breakdown of your activities and percentage of income generated for each discipline
Architectural Work - New Build 40 %
Architectural Work - Non-Structural Refurbishment 25 %
Interior Design 15 %
Project Management 10 %
Other: Please describe: 10 %

Breakdown of contract types described below and percentage of income generated
Housing (Under 3 Floors) 30 %
Office / Retail 45 %
Schools / Hospitals / Municipal Buildings 20 %
Other: 5 %

Breakdown of turnover/fees for the last three years
UK £400,000 £450,000 £500k
USA/Canada 0 0 0
EU £20,000 £25,000 £30,000
Elsewhere 0 0 0
Total £420,000 £475,000 £530,000

Has any claim been made or loss suffered in the last ten years?
If YES, please provide details below
None to declare

Are you aware of any of the following?
No

Name of Principal Signing this form: J. Smith

Current Professional Indemnity Policy
Insurer Apex Mutual
Broker Harper & Co
Limit of Indemnity £1,000,000
Excess £2,500
Premium £4,200
Renewal Date 01/04/2026`

func TestMatchScore(t *testing.T) {
	e := New()

	// All three recognizable phrases are present.
	assert.InDelta(t, 1.0, e.MatchScore(sampleText), 1e-9)

	assert.Equal(t, 0.0, e.MatchScore("an unrelated shopping list"))

	titleOnly := "PROFESSIONAL INDEMNITY INSURANCE PROPOSAL FORM FOR ARCHITECTS"
	assert.Equal(t, 0.7, e.MatchScore(titleOnly))
}

func TestExtract_FirmBasics(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	assert.Equal(t, "Studio North Architects Ltd", raw["firm_name"])
	assert.Equal(t, "12/06/1998", raw["date_established"])
	assert.Equal(t, "www.studionorth.co.uk", raw["website"])
	assert.Equal(t, "info@studionorth.co.uk", raw["email"])
	assert.Equal(t, "020 7946 0123", raw["telephone"])

	assert.Equal(t, "1998-06-12", norm["date_established"])
	assert.Equal(t, "Studio North Architects Ltd", norm["firm_name"])
}

func TestExtract_StaffBlock(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	assert.Equal(t, "2", raw["staff_principals_raw"])
	assert.Equal(t, "5", raw["staff_qualified_raw"])
	assert.Equal(t, "1", raw["staff_unqualified_raw"])
	assert.Equal(t, "3", raw["staff_others_raw"])

	assert.Equal(t, 2, norm["staff_principals"])
	assert.Equal(t, 5, norm["staff_qualified"])
	assert.Equal(t, 1, norm["staff_unqualified"])
	assert.Equal(t, 3, norm["staff_others"])
}

func TestExtract_CurrentPIPolicy(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	assert.Equal(t, "Apex Mutual", raw["current_pi_insurer_raw"])
	assert.Equal(t, "Harper & Co", raw["current_pi_broker_raw"])
	assert.Equal(t, "£1,000,000", raw["current_pi_limit_raw"])
	assert.Equal(t, "£2,500", raw["current_pi_excess_raw"])
	assert.Equal(t, "£4,200", raw["current_pi_premium_raw"])
	assert.Equal(t, "01/04/2026", raw["current_pi_renewal_raw"])

	assert.Equal(t, "Apex Mutual", norm["current_pi_insurer"])
	assert.Equal(t, 1_000_000.0, norm["current_pi_limit_amount"])
	assert.Equal(t, 2_500.0, norm["current_pi_excess_amount"])
	assert.Equal(t, 4_200.0, norm["current_pi_premium_amount"])
	assert.Equal(t, "2026-04-01", norm["current_pi_renewal_date"])
}

func TestExtract_TurnoverLatestYear(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	assert.Equal(t, "£500k", raw["turnover_latest_uk_raw"])
	assert.Equal(t, "£30,000", raw["turnover_latest_eu_raw"])

	assert.Equal(t, 500_000.0, norm["turnover_latest_uk"])
	assert.Equal(t, 30_000.0, norm["turnover_latest_eu"])
	assert.Equal(t, 0.0, norm["turnover_latest_usa_canada"])
	assert.Equal(t, 0.0, norm["turnover_latest_elsewhere"])
}

func TestExtract_ActivityAndContractSplits(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	assert.Equal(t, "40", raw["activity_architectural_new_build_pct_raw"])
	assert.Equal(t, 40, norm["activity_architectural_new_build_pct"])
	assert.Equal(t, 25, norm["activity_architectural_non_structural_refurb_pct"])
	assert.Equal(t, 15, norm["activity_interior_design_pct"])
	assert.Equal(t, 10, norm["activity_project_management_pct"])
	assert.Equal(t, 10, norm["activity_other_pct"])

	assert.Equal(t, 30, norm["contract_housing_under_3_floors_pct"])
	assert.Equal(t, 45, norm["contract_office_retail_pct"])
	assert.Equal(t, 20, norm["contract_schools_hospitals_municipal_pct"])
	assert.Equal(t, 5, norm["contract_other_pct"])

	// Fields absent from the text stay present with nil values.
	assert.Nil(t, raw["activity_civil_engineering_pct_raw"])
	assert.Nil(t, norm["activity_civil_engineering_pct"])
	assert.Nil(t, norm["contract_power_plants_pct"])
}

func TestExtract_ClaimsAndCircumstances(t *testing.T) {
	raw, norm := New().Extract(sampleText)

	claims, ok := raw["claims_block_raw"].(string)
	require.True(t, ok)
	assert.Contains(t, claims, "None to declare")

	circumstances, ok := raw["circumstances_block_raw"].(string)
	require.True(t, ok)
	assert.Contains(t, circumstances, "No")

	// Presence of any captured text counts as a disclosure; triage
	// of "none" answers happens downstream.
	assert.Equal(t, true, norm["has_claims_disclosed"])
	assert.Equal(t, true, norm["has_circumstances_disclosed"])
}

func TestExtract_EmptyText(t *testing.T) {
	raw, norm := New().Extract("")

	assert.Nil(t, raw["firm_name"])
	assert.Nil(t, norm["staff_principals"])
	assert.Equal(t, false, norm["has_claims_disclosed"])
	assert.Equal(t, false, norm["has_circumstances_disclosed"])
}
