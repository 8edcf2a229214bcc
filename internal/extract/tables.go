// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

// publishers maps lowercase publisher tokens to their canonical names.
// Seeded with the curriculum organizations and commercial publishers that
// appear in school textbook filenames.
var publishers = map[string]string{
	"ncert":     "NCERT",
	"cbse":      "CBSE",
	"icse":      "ICSE",
	"scert":     "SCERT",
	"cambridge": "Cambridge",
	"oxford":    "Oxford",
	"pearson":   "Pearson",
}

// curriculumByPublisher maps a canonical publisher to the curriculum
// standard it implies. Publishers without an entry imply no standard.
var curriculumByPublisher = map[string]string{
	"NCERT": "CBSE",
	"CBSE":  "CBSE",
	"ICSE":  "ICSE",
	"SCERT": "State Board",
}

// curriculumTokens maps lowercase tokens that name a curriculum standard
// directly, independent of publisher.
var curriculumTokens = map[string]string{
	"cbse":  "CBSE",
	"icse":  "ICSE",
	"igcse": "IGCSE",
	"ib":    "IB",
}

// subjects maps lowercase subject keywords to canonical subject names.
// Multiple keywords may share a canonical form ("math", "maths").
var subjects = map[string]string{
	"mathematics": "Mathematics",
	"maths":       "Mathematics",
	"math":        "Mathematics",
	"science":     "Science",
	"physics":     "Physics",
	"chemistry":   "Chemistry",
	"biology":     "Biology",
	"bio":         "Biology",
	"english":     "English",
	"hindi":       "Hindi",
	"sanskrit":    "Sanskrit",
	"history":     "History",
	"geography":   "Geography",
	"civics":      "Civics",
	"economics":   "Economics",
	"computer":    "Computer Science",
	"informatics": "Computer Science",
	"health":      "Health and Physical Education",
}

// wordNumbers maps spelled-out chapter numbers to integers. Some books
// present chapters as "Chapter Three".
var wordNumbers = map[string]int{
	"one":      1,
	"two":      2,
	"three":    3,
	"four":     4,
	"five":     5,
	"six":      6,
	"seven":    7,
	"eight":    8,
	"nine":     9,
	"ten":      10,
	"eleven":   11,
	"twelve":   12,
	"thirteen": 13,
	"fourteen": 14,
	"fifteen":  15,
	"sixteen":  16,
}

// romanNumerals maps class numbers written as Roman numerals, as in
// "Class IX" or "Class XII".
var romanNumerals = map[string]int{
	"i":    1,
	"ii":   2,
	"iii":  3,
	"iv":   4,
	"v":    5,
	"vi":   6,
	"vii":  7,
	"viii": 8,
	"ix":   9,
	"x":    10,
	"xi":   11,
	"xii":  12,
}
