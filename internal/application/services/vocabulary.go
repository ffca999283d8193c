package services

// DefaultTitleTokens are the nurse-practitioner titles and abbreviations
// searched when the caller supplies none of their own.
var DefaultTitleTokens = []string{
	"nurse practitioner", "np", "nurse", "rn", "registered nurse",
	"advanced practice nurse", "apn", "family nurse practitioner",
	"fnp", "adult nurse practitioner", "anp", "pediatric nurse practitioner",
	"pnp", "psychiatric nurse practitioner", "pmhnp", "clinical nurse specialist",
	"cns", "nurse anesthetist", "crna", "nurse midwife", "cnm",
	"acute care nurse practitioner", "acnp", "geriatric nurse practitioner", "gnp",
}

// DefaultTelehealthKeywords are the terms that count as telehealth experience
// in any of the keyword fields.
var DefaultTelehealthKeywords = []string{
	"telehealth", "telemedicine", "remote", "virtual", "online",
	"telepractice", "ehealth", "digital health", "remote care",
	"virtual care", "teleconsultation", "telemonitoring",
	"telemed", "telenursing", "telepsychiatry", "telecardiology",
	"remote patient monitoring", "virtual visits", "online consultations",
	"digital consultations", "remote healthcare", "virtual healthcare",
	"telehealth platform", "telemedicine platform", "remote clinical",
	"virtual clinical", "online clinical", "digital clinical",
}

// DefaultKeywordFields are the contact columns checked for keyword matches,
// so one concept is caught wherever a profile mentions it.
var DefaultKeywordFields = []string{
	"JOB_DESCRIPTION", "LINKEDIN_HEADLINE", "SKILLS", "EDUCATION", "JOB_FUNCTION",
}

// DefaultKeywordGroups spreads the telehealth vocabulary across the default
// keyword fields.
func DefaultKeywordGroups() map[string][]string {
	groups := make(map[string][]string, len(DefaultKeywordFields))
	for _, field := range DefaultKeywordFields {
		groups[field] = append([]string(nil), DefaultTelehealthKeywords...)
	}
	return groups
}
