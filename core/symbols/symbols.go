// Package symbols maps words to iconographic symbol references. Resolution
// is a pure three-step function: translate (Hebrew source vocabulary to the
// English symbol library terms), look up the library entry, and fall back to
// a synthesized reference when the word is unmapped. The same resolved
// identity is then re-encoded per target format through the address helpers;
// formats re-encode the identity, they never re-resolve the word.
package symbols

import "strings"

// Symbol is the resolved identity of a word in the symbol library.
type Symbol struct {
	// Word is the (possibly translated) lowercase library term.
	Word string

	// Category is the library category ("food", "feelings", ...). Empty
	// for fallback-synthesized symbols.
	Category string

	// Letter is the first letter of Word, used as the library shelf.
	Letter string

	// Mapped is false when the symbol was synthesized by the fallback
	// rule rather than found in the library.
	Mapped bool
}

// Translate substitutes a Hebrew term with its symbol-library English
// equivalent. Unknown words pass through unchanged.
func Translate(word string) string {
	if en, ok := hebrewEnglish[word]; ok {
		return en
	}
	return word
}

// Resolve maps a word or short phrase to its symbol identity. Resolution
// never fails: unmapped words degrade to a well-formed fallback reference.
func Resolve(word string) Symbol {
	w := Translate(strings.ToLower(strings.TrimSpace(word)))
	if w == "" {
		w = "blank"
	}

	letter := string([]rune(w)[0])
	if cat, ok := library[w]; ok {
		return Symbol{Word: w, Category: cat, Letter: letter, Mapped: true}
	}
	return Symbol{Word: w, Letter: letter}
}

// Grid3Path encodes the symbol in the Grid 3 symbol-library addressing
// scheme. Mapped entries live under their category shelf; fallback entries
// synthesize the same shape from the first letter alone.
func (s Symbol) Grid3Path() string {
	if s.Mapped {
		return "[grid3x]" + s.Category + "\\" + s.Letter + "\\" + s.Word + ".wmf"
	}
	return "[grid3x]" + s.Letter + "\\" + s.Word + ".wmf"
}

// IconClass encodes the symbol as a CSS-style icon class.
func (s Symbol) IconClass() string {
	return "symbol-" + strings.ReplaceAll(s.Word, " ", "-")
}

// Filename encodes the symbol as a plain library filename.
func (s Symbol) Filename() string {
	return strings.ReplaceAll(s.Word, " ", "_") + ".png"
}

// hebrewEnglish translates the Hebrew core vocabulary the board generator
// produces into the English terms the symbol library is keyed by.
var hebrewEnglish = map[string]string{
	"לאכול":   "eat",
	"לשתות":   "drink",
	"מים":     "water",
	"חטיף":    "snack",
	"אמא":     "mom",
	"אבא":     "dad",
	"סבתא":    "grandma",
	"סבא":     "grandpa",
	"תינוק":   "baby",
	"חבר":     "friend",
	"מורה":    "teacher",
	"שמח":     "happy",
	"עצוב":    "sad",
	"כועס":    "angry",
	"מפחד":    "scared",
	"עייף":    "tired",
	"כואב":    "hurt",
	"חולה":    "sick",
	"לשחק":    "play",
	"לישון":   "sleep",
	"ללכת":    "go",
	"די":      "stop",
	"עזרה":    "help",
	"רוצה":    "want",
	"עוד":     "more",
	"סיימתי":  "finished",
	"בית":     "home",
	"בית ספר": "school",
	"שירותים": "bathroom",
	"בחוץ":    "outside",
	"פארק":    "park",
	"כן":      "yes",
	"לא":      "no",
	"בבקשה":   "please",
	"תודה":    "thank you",
	"שלום":    "hello",
	"ביי":     "bye",
	"כדור":    "ball",
	"ספר":     "book",
	"מכונית":  "car",
	"מוזיקה":  "music",
}

// library is the word-to-category index of the symbol set. Categories mirror
// the shelves of the underlying symbol library.
var library = map[string]string{
	"eat":       "food",
	"drink":     "food",
	"water":     "food",
	"snack":     "food",
	"apple":     "food",
	"banana":    "food",
	"cookie":    "food",
	"milk":      "food",
	"juice":     "food",
	"mom":       "family",
	"dad":       "family",
	"grandma":   "family",
	"grandpa":   "family",
	"baby":      "family",
	"friend":    "people",
	"teacher":   "people",
	"happy":     "feelings",
	"sad":       "feelings",
	"angry":     "feelings",
	"scared":    "feelings",
	"tired":     "feelings",
	"hurt":      "feelings",
	"sick":      "feelings",
	"play":      "actions",
	"sleep":     "actions",
	"go":        "actions",
	"stop":      "actions",
	"help":      "actions",
	"want":      "actions",
	"more":      "actions",
	"finished":  "actions",
	"look":      "actions",
	"listen":    "actions",
	"home":      "places",
	"school":    "places",
	"bathroom":  "places",
	"outside":   "places",
	"park":      "places",
	"yes":       "core",
	"no":        "core",
	"please":    "core",
	"thank you": "core",
	"hello":     "greetings",
	"bye":       "greetings",
	"ball":      "objects",
	"book":      "objects",
	"car":       "objects",
	"music":     "objects",
	"toy":       "objects",
}
