package speech

import "strings"

// breakReplacer turns textual pauses into explicit SSML breaks so the
// voice does not run straight through them.
var breakReplacer = strings.NewReplacer(
	" - ", `<break strength="medium"/>`,
	"...", `<break strength="medium"/>`,
)

// EnhanceBreaks adds SSML break tags where the text implies a pause.
func EnhanceBreaks(text string) string {
	return breakReplacer.Replace(text)
}

// pronunciationReplacer forces phonetic renderings for domain terms the
// voice tends to mispronounce ("putting" as in golf, "lead" as the verb).
var pronunciationReplacer = strings.NewReplacer(
	"putting", `<phoneme alphabet="ibm" ph=".1pH.0diG"></phoneme>`,
	"Putting", `<phoneme alphabet="ibm" ph=".1pH.0diG"></phoneme>`,
	" lead", ` <phoneme alphabet="ibm" ph=".1lid"></phoneme>`,
	"Lead", `<phoneme alphabet="ibm" ph=".1lid"></phoneme>`,
)

// FixPronunciations applies the phonetic overrides to text headed for the
// live synthesis path.
func FixPronunciations(text string) string {
	return pronunciationReplacer.Replace(text)
}
