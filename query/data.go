package query

// Authored lookup data for the MIDC land bank. Keys are lower-cased;
// Devanagari keys are unaffected by case folding. Ordering matters:
// iteration order is authoring order and shows through in rewritten
// query output.

var regionEntries = []Entry[[]string]{
	// Direct city to RO mappings (English)
	{"pune", []string{"RO PUNE-I", "RO PUNE-II"}},
	{"punya", []string{"RO PUNE-I", "RO PUNE-II"}}, // Marathi pronunciation in English
	{"puny", []string{"RO PUNE-I", "RO PUNE-II"}},  // short form
	{"chandrapur", []string{"RO Chandrapur"}},
	{"baramati", []string{"RO Baramati"}},
	{"nagpur", []string{"RO NAGPUR"}},
	{"ratnagiri", []string{"RO RATNAGIRI"}},
	{"aurangabad", []string{"RO AURANGABAD"}},
	{"mumbai", []string{"RO THANE-I", "RO THANE-II"}},
	{"thane", []string{"RO THANE-I", "RO THANE-II"}},
	{"amravati", []string{"RO AMRAVATI"}},
	{"dhule", []string{"RO DHULE"}},
	{"jalgaon", []string{"RO Jalgaon"}},
	{"bhusaval", []string{"RO Jalgaon"}}, // Bhusaval is under RO Jalgaon
	{"bhusawal", []string{"RO Jalgaon"}}, // common misspelling
	{"bhusawad", []string{"RO Jalgaon"}}, // another misspelling

	// Marathi city names
	{"पुणे", []string{"RO PUNE-I", "RO PUNE-II"}},
	{"चंद्रपूर", []string{"RO Chandrapur"}},
	{"बारामती", []string{"RO Baramati"}},
	{"नागपूर", []string{"RO NAGPUR"}},
	{"रत्नागिरी", []string{"RO RATNAGIRI"}},
	{"औरंगाबाद", []string{"RO AURANGABAD"}},
	{"मुंबई", []string{"RO THANE-I", "RO THANE-II"}},
	{"ठाणे", []string{"RO THANE-I", "RO THANE-II"}},
	{"अमरावती", []string{"RO AMRAVATI"}},
	{"धुळे", []string{"RO DHULE"}},
	{"जळगाव", []string{"RO Jalgaon"}},
	{"भुसावळ", []string{"RO Jalgaon"}},
	{"भुसावल", []string{"RO Jalgaon"}},
}

var areaEntries = []Entry[string]{
	{"bhusaval", "RO Jalgaon"},
	{"bhusawal", "RO Jalgaon"},
	{"bhusawad", "RO Jalgaon"},
	{"talegaon", "RO PUNE-I"},
	{"chakan", "RO PUNE-I"},
	{"hinjawadi", "RO PUNE-II"},
	{"rajiv gandhi infotech park", "RO PUNE-II"},
	{"wardha", "RO Chandrapur"},
	{"addl. chandrapur", "RO Chandrapur"},
	{"baramati", "RO Baramati"},
	{"nagpur", "RO NAGPUR"},
	{"borgaon meghe", "RO NAGPUR"},
	{"bhivapur", "RO NAGPUR"},
	{"ratnagiri", "RO RATNAGIRI"},
	{"aurangabad", "RO AURANGABAD"},
	{"thane", "RO THANE-I"},
	{"ambarnath", "RO THANE-II"},
	{"kalyan", "RO THANE-II"},
	{"bhiwandi", "RO THANE-II"},
	{"amravati", "RO AMRAVATI"},
	{"ghatanji", "RO AMRAVATI"},
	{"bhatkuli", "RO AMRAVATI"},
	{"dhule", "RO DHULE"},
	{"nandurbar", "RO DHULE"},
	{"bhaler", "RO DHULE"},
}

var propertyTypeEntries = []Entry[string]{
	{"residential", "Residential"},
	{"commercial", "Commercial"},
	{"industrial", "Industrial"},
	{"plots", "Industrial"}, // common term
	{"plot", "Industrial"},  // singular form
	{"land", "Industrial"},
	{"price", "Industrial"}, // price queries default to industrial listings
	{"rates", "Industrial"},
	// Marathi property terms
	{"औद्योगिक", "Industrial"},
	{"कॉमर्शियल", "Commercial"},
	{"रहिवासी", "Residential"},
	{"प्लॉट", "Industrial"},
	{"जमीन", "Industrial"},
	{"किंमत", "Industrial"},
	{"दर", "Industrial"},
}

// transliterationEntries glosses romanized Marathi tokens. Entries are
// restricted to tokens that are not themselves dictionary English
// words, because the same table also feeds the language-preference
// classifier.
var transliterationEntries = []Entry[string]{
	// Question words
	{"ka", "what"},
	{"kay", "what"},
	{"kuthe", "where"},
	{"kase", "how"},
	{"kadhi", "when"},
	{"kiti", "how many"},
	{"koni", "who"},
	{"kashi", "how"},
	{"kashala", "why"},
	{"kuthun", "from where"},

	// Location prepositions
	{"madhe", "in"},
	{"madhye", "in"},
	{"madhyat", "in"},
	{"var", "on"},
	{"la", "to"},
	{"hun", "from"},
	{"pasun", "from"},
	{"sathi", "for"},
	{"barobar", "with"},
	{"sobat", "with"},

	// Action words
	{"aahet", "are"},
	{"aahe", "are"},
	{"ahe", "is"},
	{"nahi", "not"},
	{"hoi", "yes"},
	{"dya", "give"},
	{"dakhav", "show"},
	{"shodh", "find"},
	{"vach", "read"},
	{"sang", "tell"},
	{"bol", "say"},
	{"kar", "do"},
	{"ghya", "take"},
	{"de", "give"},
	{"le", "take"},

	// Property and land terms
	{"jameen", "land"},
	{"bhumi", "land"},
	{"bhukhand", "plot"},
	{"sthal", "place"},
	{"jaga", "place"},
	{"sthala", "place"},

	// Price and cost terms
	{"kimti", "price"},
	{"kimmat", "price"},
	{"dar", "rate"},
	{"mulya", "value"},
	{"kharcha", "cost"},
	{"paisa", "money"},
	{"rupya", "rupees"},
	{"rs", "rupees"},

	// Size and quantity
	{"motha", "big"},
	{"lahan", "small"},
	{"swast", "cheap"},
	{"mahag", "expensive"},
	{"jast", "more"},
	{"kami", "less"},
	{"sagla", "all"},
	{"ek", "one"},
	{"don", "two"},
	{"teen", "three"},
	{"char", "four"},
	{"pach", "five"},

	// Time and availability
	{"aata", "now"},
	{"aaj", "today"},
	{"kal", "yesterday"},
	{"udya", "tomorrow"},
	{"parso", "day after"},
	{"upalabdh", "available"},
	{"mila", "got"},
	{"nako", "no"},

	// Regional office terms
	{"kendr", "center"},
	{"karya", "work"},
	{"karyalay", "office"},
	{"prant", "region"},

	// Connectors
	{"ani", "and"},
	{"pan", "but"},
	{"ki", "or"},
	{"mhanun", "therefore"},
	{"karan", "because"},
	{"jari", "even if"},
	{"tar", "then"},
	{"maga", "then"},
	{"nantar", "after"},
	{"adhi", "before"},

	// Polite words
	{"krupaya", "please"},
	{"dhanyawad", "thank you"},
	{"maaf", "sorry"},
	{"namaskar", "hello"},
	{"namaste", "hello"},
}

var mixedLanguageEntries = []Entry[string]{
	{"punya", "pune"},
	{"puny", "pune"},
	{"plots", "plots"},
	{"aahet", "are"},
	{"aahe", "are"},
	{"ka", "what"},
	{"kay", "what"},
	{"price", "price"},
	{"kimi", "price"},
	{"kimti", "price"},
	{"dar", "rate"},
	{"rate", "rate"},
	{"rates", "rates"},
}

var synonymEntries = []Entry[[]string]{
	// Location variations
	{"pune", []string{"punya", "puny", "pune", "पुणे"}},
	{"mumbai", []string{"mumbai", "bombay", "मुंबई"}},
	{"bhusaval", []string{"bhusaval", "bhusawal", "bhusawad", "भुसावळ"}},
	{"jalgaon", []string{"jalgaon", "jalgon", "jalgaun", "जळगाव"}},
	{"nagpur", []string{"nagpur", "नागपूर"}},
	{"aurangabad", []string{"aurangabad", "औरंगाबाद"}},
	{"thane", []string{"thane", "ठाणे"}},
	{"amravati", []string{"amravati", "अमरावती"}},
	{"dhule", []string{"dhule", "धुळे"}},
	{"chandrapur", []string{"chandrapur", "चंद्रपूर"}},
	{"ratnagiri", []string{"ratnagiri", "रत्नागिरी"}},
	{"baramati", []string{"baramati", "बारामती"}},

	// Property type variations
	{"plots", []string{"plots", "plot", "land", "जमीन", "प्लॉट", "भूखंड"}},
	{"industrial", []string{"industrial", "औद्योगिक", "industry", "manufacturing"}},
	{"commercial", []string{"commercial", "कॉमर्शियल", "business", "office"}},
	{"residential", []string{"residential", "रहिवासी", "housing", "home"}},

	// Price and rate variations
	{"price", []string{"price", "cost", "rate", "rates", "किंमत", "दर", "मूल्य"}},
	{"cheap", []string{"cheap", "low", "affordable", "budget", "स्वस्त", "कमी"}},
	{"expensive", []string{"expensive", "high", "costly", "महाग", "जास्त"}},

	// Availability variations
	{"available", []string{"available", "उपलब्ध", "aahet", "aahe", "have", "got"}},
	{"show", []string{"show", "दाखवा", "dakhav", "display", "list"}},
	{"find", []string{"find", "search", "look", "शोध", "shodh"}},
	{"get", []string{"get", "give", "द्या", "dya", "provide"}},

	// Question words
	{"what", []string{"what", "ka", "kay", "काय", "which"}},
	{"where", []string{"where", "kuthe", "कुठे", "location"}},
	{"how", []string{"how", "kase", "कसे", "method"}},
	{"when", []string{"when", "kadhi", "कधी", "time"}},

	// Regional office variations
	{"ro", []string{"ro", "regional office", "प्रादेशिक कार्यालय"}},
	{"office", []string{"office", "कार्यालय", "kendr"}},
}

var intentEntries = []Entry[[]string]{
	{"availability", []string{"available", "aahet", "aahe", "have", "got", "उपलब्ध"}},
	{"price_inquiry", []string{"price", "cost", "rate", "rates", "किंमत", "दर", "kay", "what"}},
	{"location_search", []string{"in", "madhe", "madhye", "at", "मध्ये", "location"}},
	{"property_type", []string{"plots", "industrial", "commercial", "residential", "प्लॉट"}},
	{"comparison", []string{"compare", "vs", "versus", "difference", "तुलना"}},
	{"cheapest", []string{"cheap", "lowest", "minimum", "स्वस्त", "कमी"}},
	{"largest", []string{"big", "large", "maximum", "मोठे", "जास्त"}},
}

var spellingEntries = []Entry[[]string]{
	{"bhusaval", []string{"bhusawal", "bhusawad"}},
	{"jalgaon", []string{"jalgon", "jalgaun"}},
	{"pune", []string{"punee", "puna"}},
	{"mumbai", []string{"mumbay", "bombay"}},
}

// Root subsets the concept extractor scans, in synonym-table order.
var (
	locationRoots = []string{
		"pune", "mumbai", "bhusaval", "jalgaon", "nagpur", "aurangabad",
		"thane", "amravati", "dhule", "chandrapur", "ratnagiri", "baramati",
	}
	propertyRoots     = []string{"plots", "industrial", "commercial", "residential"}
	priceRoots        = []string{"price", "cheap", "expensive"}
	availabilityRoots = []string{"available", "show", "find", "get"}
)

// regionalMarkers is the secondary marker set for the language
// classifier: frequent transliteration fragments checked as substrings.
var regionalMarkers = []string{
	"madhe", "madhye", "aahet", "aahe", "kay", "ka", "kuthe",
	"dya", "dakhav", "shodh", "kimti", "dar", "swast", "mahag",
}
