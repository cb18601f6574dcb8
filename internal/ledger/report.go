package ledger

import (
	"strings"
	"time"
)

type ReportType string

const (
	ReportBalanceSheet    ReportType = "balance_sheet"
	ReportIncomeStatement ReportType = "income_statement"
	ReportTrialBalance    ReportType = "trial_balance"
)

var ReportTypes = []ReportType{
	ReportBalanceSheet,
	ReportIncomeStatement,
	ReportTrialBalance,
}

func (t ReportType) Title() string {
	switch t {
	case ReportBalanceSheet:
		return "Balance Sheet"
	case ReportIncomeStatement:
		return "Income Statement"
	case ReportTrialBalance:
		return "Trial Balance"
	default:
		return string(t)
	}
}

// ParseReportType accepts "balance_sheet" as well as "balance-sheet".
func ParseReportType(s string) (ReportType, bool) {
	t := ReportType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range ReportTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Period is an inclusive range of days. A zero bound is open.
type Period struct {
	From time.Time
	To   time.Time
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p Period) Bounded() bool {
	return !p.From.IsZero() || !p.To.IsZero()
}

func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	if !p.From.IsZero() && d.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && d.After(p.To) {
		return false
	}
	return true
}

// Start and End return the bounds in DateLayout, or "" when open.
func (p Period) Start() string { return formatDay(p.From) }
func (p Period) End() string   { return formatDay(p.To) }

func (p Period) Label() string {
	switch {
	case !p.Bounded():
		return "All dates"
	case p.From.IsZero():
		return "Through " + p.End()
	case p.To.IsZero():
		return "From " + p.Start()
	default:
		return p.Start() + " to " + p.End()
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParsePeriod builds a period from two optional YYYY-MM-DD bounds.
func ParsePeriod(start, end string) (Period, error) {
	var p Period
	for _, b := range []struct {
		raw string
		dst *time.Time
	}{{start, &p.From}, {end, &p.To}} {
		raw := strings.TrimSpace(b.raw)
		if raw == "" {
			continue
		}
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Period{}, preconditionFailed("Dates must be in YYYY-MM-DD format")
		}
		*b.dst = t
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return Period{}, preconditionFailed("Start date must not be after end date")
	}
	return p, nil
}

// ReportRequest is the body of a report request.
type ReportRequest struct {
	Type      ReportType `json:"report_type"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
}

// ValidateReportRequest checks the report type and date range and returns
// the parsed period. Rejections are *PreconditionFailedError.
func ValidateReportRequest(req ReportRequest) (Period, error) {
	t, ok := ParseReportType(string(req.Type))
	if !ok || t != req.Type {
		names := make([]string, len(ReportTypes))
		for i, rt := range ReportTypes {
			names[i] = string(rt)
		}
		return Period{}, preconditionFailed("Invalid report type. Must be one of " + strings.Join(names, ", "))
	}
	return ParsePeriod(req.StartDate, req.EndDate)
}
