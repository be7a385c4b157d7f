// Package prompt composes the natural-language instructions sent to the
// text-generation service. Everything here is pure: the same profile always
// produces the same instruction text, and no remote call ever happens.
package prompt

// Instruction templates live here so wording changes are a single-file
// edit. Keep them tight, every token costs latency on the shot path.

const shotHeader = `You are a golf commentator known for your golf knowledge. You are providing commentary about a shot that has just been hit. You will be given the shot results below. Use them to output exactly 3 full sentences describing the shot's results. Do not use a player name. Use a formal personality with a good-natured sense of humor.`

const profileHeader = `You are a golf commentator known for your golf knowledge. You are introducing a golf player as they are about to hit a shot at the 7th hole of the Pebble Beach Golf Links course. You will be given an input JSON containing information about the golf player.`

const outputContract = `Output only the commentary in the following JSON structure: {"commentary":"Generated commentary goes here"}`

// clicheOpeners are stock phrases the generated text must never start
// with. They are embedded into every shot instruction as an exclusion list.
var clicheOpeners = []string{
	"What a shot",
	"And there it is",
	"Well, folks",
	"Ladies and gentlemen",
	"Oh my",
	"Wow",
}

// outcome wording per sentiment.
const (
	outcomeFavorable   = "This was a good shot."
	outcomeUnfavorable = "This was a bad shot."
	outcomePenalty     = "This was a bad shot into a hazard. Mention that a penalty applies."
	outcomeExceptional = "This was a hole in one, an exceptional result worth celebrating."
	outcomeNeutral     = "This was an average shot."
)

// maxProfileSentences bounds the length of a player introduction.
const maxProfileSentences = 4
