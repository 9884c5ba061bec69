package validate

import "regexp"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email 形如 local@domain.tld，TLD 至少 2 个字母
func Email(s string) bool { return emailRe.MatchString(s) }

// Price 开闭区间 (0, 999999]
func Price(p float64) bool { return p > 0 && p <= 999999 }

// Rating 整数 1~5
func Rating(r int) bool { return r >= 1 && r <= 5 }

// Truncate 按 rune 截断，避免把多字节字符切半
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
