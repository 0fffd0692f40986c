package formats

import (
	"regexp"

	"github.com/gopatchy/jsv/internal/utils"
)

const (
	ucs      = `\x{00A0}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFEF}`
	atext    = `a-z\d!#$%&'*+\-/=?^_` + "`" + `{|}~` + ucs
	label    = `[a-z\d` + ucs + `](?:[a-z\d\-._~` + ucs + `]*[a-z\d` + ucs + `])?`
	tld      = `[a-z` + ucs + `](?:[a-z\d\-._~` + ucs + `]*[a-z` + ucs + `])?`
	octet    = `(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`
	pchar    = `(?:[a-z\d\-._~` + ucs + `]|%[\da-f]{2}|[!$&'()*+,;=]|:|@)`
	userinfo = `(?:(?:[a-z\d\-._~` + ucs + `]|%[\da-f]{2}|[!$&'()*+,;=]|:)*@)?`
)

// Every pattern must match the whole value. Email local parts are dot-atoms
// only; quoted local parts are rejected.
var core = map[string]Func{
	"email":      Regexp(regexp.MustCompile(`(?i)^[` + atext + `]+(?:\.[` + atext + `]+)*@(?:` + label + `\.)+` + tld + `\.?$`)),
	"ip-address": Regexp(regexp.MustCompile(`^` + octet + `\.` + octet + `\.` + octet + `\.` + octet + `$`)),
	"ipv6":       Regexp(regexp.MustCompile(`^(?:[0-9A-Fa-f]{1,4}:){7}[0-9A-Fa-f]{1,4}$`)),
	"date-time":  Regexp(regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:.\d{1,3})?Z$`)),
	"date":       Regexp(regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)),
	"time":       Regexp(regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)),
	"color": Regexp(regexp.MustCompile(`(?i)^(?:#[a-f\d]{6}|#[a-f\d]{3}` +
		`|rgb\(\s*[+-]?\d+%?\s*,\s*[+-]?\d+%?\s*,\s*[+-]?\d+%?\s*\)` +
		`|aqua|black|blue|fuchsia|gray|green|lime|maroon|navy|olive|orange|purple|red|silver|teal|white|yellow)$`)),
	"host-name": Regexp(regexp.MustCompile(`^(?:(?:[a-zA-Z]|[a-zA-Z][a-zA-Z\d\-]*[a-zA-Z\d])\.)*(?:[A-Za-z]|[A-Za-z][A-Za-z\d\-]*[A-Za-z\d])$`)),
	"utc-millisec": func(value any) bool {
		f, ok := utils.ToFloat(value)
		return ok && f >= 0
	},
	"regex": func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}

		_, err := regexp.Compile(s)
		return err == nil
	},
}

var extensions = map[string]Func{
	"url": Regexp(regexp.MustCompile(`(?i)^(?:https?|ftp|git)://` + userinfo +
		`(?:` + octet + `\.` + octet + `\.` + octet + `\.` + octet + `|(?:` + label + `\.)+` + tld + `\.?)` +
		`(?::\d*)?` +
		`(?:/(?:` + pchar + `+(?:/` + pchar + `*)*)?)?` +
		`(?:\?(?:` + pchar + `|[\x{E000}-\x{F8FF}]|/|\?)*)?` +
		`(?:#(?:` + pchar + `|/|\?)*)?$`)),
}
