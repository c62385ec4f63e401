package services

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// IsDuplicate reports whether a candidate entry likely already exists
// among the stored transactions: same amount to the cent, dates at most
// one day apart, and similar descriptions.
func IsDuplicate(candidate models.RawEntry, existing []models.Transaction) bool {
	for _, ex := range existing {
		if math.Round(ex.Amount*100) != math.Round(candidate.Amount*100) {
			continue
		}
		if dayGap(ex.Date, candidate.Date) > 1 {
			continue
		}
		if descSimilar(ex.Description, candidate.Description) {
			return true
		}
	}
	return false
}

// MarkDuplicates flags every candidate that matches a stored
// transaction. Suspects are not dropped — the review step shows them
// excluded by default and the user has the final say.
func MarkDuplicates(items []models.ReviewItem, existing []models.Transaction) {
	for i := range items {
		items[i].IsDuplicateSuspect = IsDuplicate(items[i].RawEntry, existing)
	}
}

// descSimilar is a deliberately coarse similarity check: normalize both
// strings, then measure how much of the longer one is built from
// characters the shorter one contains. A truncated statement label
// ("MOVISTAR" against "MOVISTAR CUENTA FINANCIERA") still scores high.
// Cheap beats precise here because the user always reviews the result
// visually.
func descSimilar(a, b string) bool {
	na := nonAlnumRe.ReplaceAllString(strings.ToLower(a), "")
	nb := nonAlnumRe.ReplaceAllString(strings.ToLower(b), "")
	if na == "" || nb == "" {
		return false
	}
	longer, shorter := na, nb
	if len(nb) > len(na) {
		longer, shorter = nb, na
	}
	matched := 0
	for _, c := range longer {
		if strings.ContainsRune(shorter, c) {
			matched++
		}
	}
	return float64(matched)/float64(len(longer)) >= 0.5
}

// dayGap returns the absolute difference in days between two ISO dates.
// Unparseable dates count as "far apart" so they can never mark a
// duplicate by accident.
func dayGap(a, b string) int {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return int(math.MaxInt32)
	}
	gap := ta.Sub(tb).Hours() / 24
	return int(math.Abs(gap))
}
