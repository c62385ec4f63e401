// utils/safelog.go
//
// Safe logging: masks personal and financial data in production logs.
// Statement descriptions and amounts are the user's financial life —
// they must never land in a hosted log aggregator in clear text.

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction switches masking on
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	// amounts with a currency marker ("S/ 1,234.56", "$59.90", "USD 100")
	amountWithCurrencyRegex = regexp.MustCompile(`\b(S/|PEN|USD|\$)\s*-?\d[\d,]*([.,]\d{1,2})?\b`)

	// bare decimal numbers that look like amounts
	amountRegex = regexp.MustCompile(`\b-?\d[\d,]*[.,]\d{2}\b`)

	// full account numbers (statement lines sometimes carry them)
	accountNumberRegex = regexp.MustCompile(`\b\d{10,20}\b`)

	cardRegex = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks financial data inside an arbitrary message.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := input
	result = cardRegex.ReplaceAllString(result, "****-****-****-****")
	result = accountNumberRegex.ReplaceAllString(result, "**********")
	result = amountWithCurrencyRegex.ReplaceAllString(result, "S/ ***")
	result = amountRegex.ReplaceAllString(result, "***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	return result
}

// MaskAmount hides a monetary value in production.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// MaskDescription keeps only a short prefix of a statement description.
func MaskDescription(description string) string {
	if !IsProduction {
		return description
	}
	if len(description) <= 6 {
		return "***"
	}
	return description[:6] + "..."
}

// MaskID shortens an identifier to its first 8 characters.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel <= LogLevelDebug {
		log.Print("[DEBUG] " + MaskString(fmt.Sprintf(format, args...)))
	}
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel <= LogLevelInfo {
		log.Print("[INFO] " + MaskString(fmt.Sprintf(format, args...)))
	}
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel <= LogLevelWarn {
		log.Print("[WARN] " + MaskString(fmt.Sprintf(format, args...)))
	}
}

func SafeError(format string, args ...interface{}) {
	if LogLevel <= LogLevelError {
		log.Print("[ERROR] " + MaskString(fmt.Sprintf(format, args...)))
	}
}

// LogImportAction records a statement import without leaking its contents.
func LogImportAction(action, sessionID, userID string, count int) {
	SafeInfo("📥 Import %s | session: %s | user: %s | entries: %d",
		action, MaskID(sessionID), MaskID(userID), count)
}

// LogTransferAction records an internal-transfer operation.
func LogTransferAction(action, transferID, userID string, amount float64) {
	SafeInfo("🔁 Transfer %s | id: %s | user: %s | amount: %s",
		action, MaskID(transferID), MaskID(userID), MaskAmount(amount))
}
