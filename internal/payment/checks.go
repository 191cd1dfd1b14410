package payment

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// LuhnValid 校验卡号：去掉空白后必须全是数字，长度 13-19，不能全是同一个数字，并通过 Luhn 校验
func LuhnValid(number string) bool {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)

	if len(digits) < 13 || len(digits) > 19 || !allDigits(digits) || sameDigit(digits) {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// NationalIDValid 校验 11 位 CPF：两位校验码分别用 10..2 和 11..2 加权求和后取模 11
func NationalIDValid(id string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, id)

	if len(digits) != 11 || sameDigit(digits) {
		return false
	}

	return checkDigit(digits[:9], 10) == int(digits[9]-'0') &&
		checkDigit(digits[:10], 11) == int(digits[10]-'0')
}

func checkDigit(digits string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}

// ExpiryValid 按当前时间校验有效期
func ExpiryValid(month, year int) bool {
	return ExpiryValidAt(month, year, time.Now())
}

// ExpiryValidAt 月份 1-12，且不早于 now 所在月份。两位年份按 20YY 处理
func ExpiryValidAt(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year >= 0 && year < 100 {
		year += 2000
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}

// CVVValid 3 或 4 位数字
func CVVValid(cvv string) bool {
	return (len(cvv) == 3 || len(cvv) == 4) && allDigits(cvv)
}

// parseNumber 表单里的月份、年份是字符串，非数字返回 -1
func parseNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || !allDigits(s) {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
