package trcat

import (
	"regexp"
	"strconv"
)

var placeholderRegex = regexp.MustCompile(`%(\d{1,2}|n)`)

// substitute replaces %1..%99 with args in a single pass, so text coming
// from an argument is never expanded again. %n is the plural count when
// one is given. Unmatched markers are left as they are.
func substitute(text string, args []string, count *int) string {
	if len(args) == 0 && count == nil {
		return text
	}
	return placeholderRegex.ReplaceAllStringFunc(text, func(token string) string {
		marker := token[1:]
		if marker == "n" {
			if count == nil {
				return token
			}
			return strconv.Itoa(*count)
		}
		idx, err := strconv.Atoi(marker)
		if err != nil || idx < 1 || idx > len(args) {
			return token
		}
		return args[idx-1]
	})
}
