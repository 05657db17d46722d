package screening

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameNotDetected is reported when no candidate name can be resolved.
const NameNotDetected = "Not Detected"

var (
	emailNamePattern = regexp.MustCompile(`([a-zA-Z]+)[._]?[a-zA-Z]*@`)

	yearCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*\+?\s*years?`),
		regexp.MustCompile(`(\d+)\s*yrs?`),
		regexp.MustCompile(`(\d+)\s*year experience`),
	}
	yearRangePattern = regexp.MustCompile(`(20\d{2})\s*(?:-+|–|—|to)\s*(20\d{2}|present)`)
)

// ExtractName returns the first PERSON entity, then an email local-part, then NameNotDetected.
func ExtractName(lang Linguistics, text string) string {
	if lang != nil {
		for _, person := range lang.PersonEntities(text) {
			if person = strings.TrimSpace(person); person != "" {
				return person
			}
		}
	}
	if m := emailNamePattern.FindStringSubmatch(text); m != nil {
		// Casers keep state, so each call gets its own.
		return cases.Title(language.English).String(m[1])
	}
	return NameNotDetected
}

// ExtractExperience returns the largest year figure found in text.
// Explicit counts ("3+ years", "4 yrs") and date spans ("2019 - present")
// both contribute; "present" resolves to referenceYear.
func ExtractExperience(text string, referenceYear int) int {
	text = strings.ToLower(text)
	best := 0
	consider := func(v int) {
		if v > best {
			best = v
		}
	}

	for _, p := range yearCountPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if v, err := strconv.Atoi(m[1]); err == nil {
				consider(v)
			}
		}
	}

	for _, m := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := referenceYear
		if m[2] != "present" {
			if end, err = strconv.Atoi(m[2]); err != nil {
				continue
			}
		}
		consider(end - start)
	}
	return best
}

// ExtractEducation returns the degree and certification keywords present in text,
// in keyword-list order. Degrees are upper-cased, certifications capitalized.
func ExtractEducation(text string, degreeKeywords, certKeywords []string) (degrees, certifications []string) {
	lower := strings.ToLower(text)
	degrees = []string{}
	certifications = []string{}
	for _, kw := range degreeKeywords {
		if kw != "" && strings.Contains(lower, kw) {
			degrees = append(degrees, strings.ToUpper(kw))
		}
	}
	for _, kw := range certKeywords {
		if kw != "" && strings.Contains(lower, kw) {
			certifications = append(certifications, capitalize(kw))
		}
	}
	return degrees, certifications
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
