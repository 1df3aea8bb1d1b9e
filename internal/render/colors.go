package render

import "regexp"

// mIRC control codes embedded in rendered lines. Delivery targets that
// cannot display them are expected to pass lines through StripColors first.
const (
	Reset     = "\x0f"
	Bold      = "\x02"
	White     = "\x0300"
	Black     = "\x0301"
	Blue      = "\x0302"
	Green     = "\x0303"
	Red       = "\x0304"
	Brown     = "\x0305"
	Purple    = "\x0306"
	Orange    = "\x0307"
	Yellow    = "\x0308"
	LightBlue = "\x0312"
	Pink      = "\x0313"
	Grey      = "\x0314"
)

var colorCodes = regexp.MustCompile(`\x03\d{0,2}(,\d{1,2})?|[\x02\x0f\x16\x1d\x1f]`)

// StripColors removes every mIRC formatting code from line, leaving plain text.
func StripColors(line string) string {
	return colorCodes.ReplaceAllString(line, "")
}
