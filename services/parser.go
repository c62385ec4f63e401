package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/FinanzasVH/finanzas-api/models"
)

// BankProfile describes the sign conventions of one bank's statements.
// Some banks print every movement as an unsigned debit; for those the
// amount is forced negative unless the description matches the bank's
// income keywords.
type BankProfile struct {
	IncomeKeywords *regexp.Regexp
	DefaultSign    int // -1: unsigned amounts are debits, +1: trust the sign
}

// bankProfiles is keyed by the bank hint supplied by the caller. Banks
// missing here keep the parsed sign untouched.
var bankProfiles = map[string]BankProfile{
	"BBVA": {
		IncomeKeywords: regexp.MustCompile(`(?i)INGRESO|CREDITO|ABONO|SUELDO|REMUNER`),
		DefaultSign:    -1,
	},
	// Card statements report purchases as positive amounts.
	"IO": {
		IncomeKeywords: regexp.MustCompile(`(?i)ABONO|PAGO\s*RECIBIDO|DEVOLUCION`),
		DefaultSign:    -1,
	},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{2})[/\-](\d{2})[/\-](\d{4})`),
	regexp.MustCompile(`^(\d{2})[/\-](\d{2})[/\-](\d{2})\b`),
	regexp.MustCompile(`^(\d{4})[/\-](\d{2})[/\-](\d{2})`),
}

var (
	// description + debit + credit columns at the end of the line
	twoAmountRe = regexp.MustCompile(`^(.+?)\s+(-?[\d,.]+)\s+(-?[\d,.]+)\s*$`)
	// description + single amount, optional "S/" currency prefix
	oneAmountRe = regexp.MustCompile(`^(.+?)\s+S?/?\s*(-?[\d,.]+)\s*$`)
	dmyRe       = regexp.MustCompile(`(\d{2})[/\-](\d{2})[/\-](\d{2,4})`)
	isoRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseText extracts candidate movements from pasted statement text
// (typically copied out of a PDF). Lines that do not start with a date,
// or that yield no usable amount or description, are silently skipped —
// statements mix headers and footers with transaction lines, so a skip
// is not an error. An empty result just means nothing was detected.
func ParseText(rawText, bankHint string) []models.RawEntry {
	var results []models.RawEntry
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		isoDate, rest := matchLeadingDate(line)
		if isoDate == "" {
			continue
		}

		description := rest
		amount := 0.0
		ok := false

		if m := twoAmountRe.FindStringSubmatch(rest); m != nil {
			debit := parseNumber(m[2])
			credit := parseNumber(m[3])
			description = strings.TrimSpace(m[1])
			if credit > 0 {
				amount = credit
			} else {
				amount = -debit
			}
			ok = true
		} else if m := oneAmountRe.FindStringSubmatch(rest); m != nil {
			description = strings.TrimSpace(m[1])
			amount = parseNumber(m[2])
			amount = applyBankSign(bankHint, description, amount)
			ok = true
		}

		if !ok || !validEntry(description, amount) {
			continue
		}

		results = append(results, models.RawEntry{
			Date:        isoDate,
			Period:      models.Period(isoDate),
			Description: description,
			Amount:      amount,
		})
	}
	return results
}

// ParseTable extracts movements from delimited tabular text (CSV or an
// exported spreadsheet). The first line is the header; the delimiter is
// ";" when present, "," otherwise. Header cells are matched against
// keyword sets to locate the date, description and amount columns, or
// separate debit/credit columns. Rows missing a valid date, description
// or amount are skipped.
func ParseTable(text, bankHint string) []models.RawEntry {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	sep := ","
	if strings.Contains(lines[0], ";") {
		sep = ";"
	}
	cols := mapHeaderColumns(splitCells(lines[0], sep))

	var results []models.RawEntry
	for _, line := range lines[1:] {
		cells := splitCells(line, sep)

		dateRaw := cellAt(cells, cols.date)
		description := cellAt(cells, cols.desc)
		if description == "" && len(cells) > 1 {
			description = cells[1]
		}

		amount := 0.0
		if cols.debit >= 0 || cols.credit >= 0 {
			debit := parseNumber(cellAt(cells, cols.debit))
			credit := parseNumber(cellAt(cells, cols.credit))
			if credit > 0 {
				amount = credit
			} else {
				amount = -debit
			}
		} else if cols.amount >= 0 {
			amount = parseNumber(cellAt(cells, cols.amount))
			amount = applyBankSign(bankHint, description, amount)
		}

		// Unlike free text, a delimited cell is already a deliberate
		// description: a two-letter merchant is a real row, not noise.
		isoDate := normalizeDate(dateRaw)
		if isoDate == "" || strings.TrimSpace(description) == "" ||
			amount == 0 || math.IsNaN(amount) {
			continue
		}

		results = append(results, models.RawEntry{
			Date:        isoDate,
			Period:      models.Period(isoDate),
			Description: description,
			Amount:      amount,
		})
	}
	return results
}

type headerColumns struct {
	date, desc, amount, debit, credit int
}

var (
	headerDateRe   = regexp.MustCompile(`(?i)fecha|date`)
	headerDescRe   = regexp.MustCompile(`(?i)descripci|operaci|concepto|detail|desc`)
	headerAmountRe = regexp.MustCompile(`(?i)monto|importe|amount|valor`)
	headerDebitRe  = regexp.MustCompile(`(?i)cargo|debito|debe|debit`)
	headerCreditRe = regexp.MustCompile(`(?i)abono|credito|haber|credit`)
)

func mapHeaderColumns(headers []string) headerColumns {
	cols := headerColumns{date: -1, desc: -1, amount: -1, debit: -1, credit: -1}
	for i, h := range headers {
		h = strings.ToLower(h)
		if cols.date < 0 && headerDateRe.MatchString(h) {
			cols.date = i
		}
		if cols.desc < 0 && headerDescRe.MatchString(h) {
			cols.desc = i
		}
		if cols.amount < 0 && headerAmountRe.MatchString(h) {
			cols.amount = i
		}
		if cols.debit < 0 && headerDebitRe.MatchString(h) {
			cols.debit = i
		}
		if cols.credit < 0 && headerCreditRe.MatchString(h) {
			cols.credit = i
		}
	}
	return cols
}

// matchLeadingDate tries the supported date prefixes in order and
// returns the ISO date plus the remainder of the line after the match.
func matchLeadingDate(line string) (string, string) {
	for i, pat := range datePatterns {
		m := pat.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var year, month, day string
		if i == 2 { // year-first layout
			year, month, day = m[1], m[2], m[3]
		} else {
			day, month, year = m[1], m[2], m[3]
			if len(year) == 2 {
				year = "20" + year
			}
		}
		iso := year + "-" + month + "-" + day
		return iso, strings.TrimSpace(line[len(m[0]):])
	}
	return "", line
}

// normalizeDate accepts DD/MM/YYYY, DD-MM-YY and already-ISO dates.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if isoRe.MatchString(raw) {
		return raw
	}
	if m := dmyRe.FindStringSubmatch(raw); m != nil {
		day, month, year := m[1], m[2], m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return year + "-" + month + "-" + day
	}
	return ""
}

func applyBankSign(bankHint, description string, amount float64) float64 {
	profile, ok := bankProfiles[strings.ToUpper(strings.TrimSpace(bankHint))]
	if !ok || profile.DefaultSign >= 0 {
		return amount
	}
	if profile.IncomeKeywords != nil && profile.IncomeKeywords.MatchString(description) {
		return amount
	}
	return -math.Abs(amount)
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// validEntry is the parsing-confidence gate: zero amounts and
// near-empty descriptions are noise, not transactions.
func validEntry(description string, amount float64) bool {
	return amount != 0 && !math.IsNaN(amount) && len(strings.TrimSpace(description)) >= 3
}

func splitCells(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
	}
	return parts
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
