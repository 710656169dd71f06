package detector

// Category is a named group of keywords inside an indicator table. Category
// order matters: the strongest-signal tie-break picks the first category with
// the highest hit count, in declaration order.
type Category struct {
	Name     string
	Keywords []string
}

// IndicatorTable is an ordered set of keyword categories. The three tables
// below are process-wide constants and must not be mutated.
type IndicatorTable []Category

// ActiveIndicators are signals of a real, funded, time-sensitive vacancy.
var ActiveIndicators = IndicatorTable{
	{Name: "urgency", Keywords: []string{
		"urgent hiring", "urgently hiring", "immediate start",
		"immediate availability", "asap", "quick start",
		"fast-paced hiring", "rapid hiring", "hiring immediately",
	}},
	{Name: "specificity", Keywords: []string{
		"reporting to", "reporting directly to", "join our team of",
		"backfill", "new team member", "specific role",
		"funded position", "approved headcount", "open position",
	}},
	{Name: "timeline", Keywords: []string{
		"start date", "expected start", "target start",
		"hiring timeline", "interview schedule", "onboarding",
	}},
	{Name: "vacancy", Keywords: []string{
		"open role", "vacancy", "opening", "position available",
		"now hiring", "accepting applications", "apply now",
	}},
}

// PassiveIndicators are signals of pipeline or evergreen resume collection.
var PassiveIndicators = IndicatorTable{
	{Name: "evergreen", Keywords: []string{
		"ongoing need", "continuous recruitment", "always hiring",
		"evergreen", "rolling basis", "continuous hiring",
		"year-round recruitment",
	}},
	{Name: "pipeline", Keywords: []string{
		"future opportunities", "talent pool", "talent pipeline",
		"talent community", "career opportunities", "join our database",
		"future openings", "potential opportunities",
	}},
	{Name: "general", Keywords: []string{
		"general interest", "open application", "speculative application",
		"expression of interest", "submit your resume",
		"keep you in mind", "future consideration",
	}},
	{Name: "vague", Keywords: []string{
		"various positions", "multiple roles", "several opportunities",
		"range of positions", "diverse opportunities",
	}},
}

// RedFlagIndicators are signals of resume harvesting.
var RedFlagIndicators = IndicatorTable{
	{Name: "location_blast", Keywords: []string{
		"multiple locations", "various locations", "nationwide",
		"all locations", "remote - us", "remote - global",
	}},
	{Name: "generic_contact", Keywords: []string{
		"email resume to", "send resume to", "forward cv to",
		"jobs@", "careers@", "hr@", "recruiting@",
	}},
	{Name: "vague_benefits", Keywords: []string{
		"competitive salary", "competitive compensation",
		"market rate", "commensurate with experience",
		"to be discussed", "tbd", "negotiable",
	}},
	{Name: "no_team_info", Keywords: []string{
		"growing company", "dynamic team", "talented team",
		"innovative company",
	}},
}

// majorCities is the fixed list used by the location-blast detector. Matching
// is case-sensitive on word boundaries; every occurrence counts.
var majorCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "El Paso", "Nashville", "Detroit", "Oklahoma City",
	"Portland", "Las Vegas", "Memphis", "Louisville", "Baltimore",
	"Milwaukee", "Albuquerque", "Tucson", "Fresno", "Mesa",
	"Sacramento", "Atlanta", "Kansas City", "Colorado Springs", "Omaha",
	"Raleigh", "Miami", "Long Beach", "Virginia Beach", "Oakland",
	"Minneapolis", "Tulsa", "Tampa", "Arlington", "New Orleans",
}

// departments considered by the specificity scorer.
var departments = []string{
	"engineering", "marketing", "sales", "operations",
	"product", "design", "data", "finance",
}

// evergreenIDTerms mark a requisition ID as a generic pipeline requisition.
var evergreenIDTerms = []string{"EVERGREEN", "GENERIC", "POOL", "PIPELINE", "GENERAL"}
