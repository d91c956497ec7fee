package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRe  = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	phoneRe  = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	zipRe    = regexp.MustCompile(`^\d{5}-\d{3}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	digitsRe = regexp.MustCompile(`\D`)
)

// Digits strips every non-digit character.
func Digits(s string) string {
	return digitsRe.ReplaceAllString(s, "")
}

func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone expects the masked form (DD) DDDDD-DDDD.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// ZipCode expects the masked form DDDDD-DDD.
func ZipCode(s string) bool {
	return zipRe.MatchString(s)
}

// CPF validates a Brazilian taxpayer id: 11 digits, not all equal, and both
// mod-11 check digits correct (weights 10..2 and 11..2, remainders 10 and 11
// map to 0).
func CPF(s string) bool {
	cpf := Digits(s)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}
	if checkDigit(cpf[:9], 10) != int(cpf[9]-'0') {
		return false
	}
	return checkDigit(cpf[:10], 11) == int(cpf[10]-'0')
}

func checkDigit(digits string, firstWeight int) int {
	sum := 0
	for i, c := range digits {
		sum += int(c-'0') * (firstWeight - i)
	}
	rem := 11 - sum%11
	if rem >= 10 {
		return 0
	}
	return rem
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// CardNumber accepts 13 to 19 digits after stripping separators.
func CardNumber(s string) bool {
	n := len(Digits(s))
	return n >= 13 && n <= 19
}

func CardCVV(s string) bool {
	return len(Digits(s)) >= 3
}

// CardExpiry validates MM/YY against the given reference time: the card must
// not expire before the reference month.
func CardExpiry(s string, now time.Time) bool {
	if !expiryRe.MatchString(s) {
		return false
	}
	parts := strings.SplitN(s, "/", 2)
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])

	curYear := now.Year() % 100
	curMonth := int(now.Month())

	if year < curYear || (year == curYear && month < curMonth) {
		return false
	}
	return true
}
