package caseinfo

import (
	"regexp"
	"strings"
)

// Facts holds the structured fields recognized in free-form case text.
// Every field is best-effort: a zero value means the source document did
// not contain it.
type Facts struct {
	Name        string   `json:"name,omitempty"`
	Age         string   `json:"age,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Weight      string   `json:"weight,omitempty"`
	Height      string   `json:"height,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Diagnosis   string   `json:"diagnosis,omitempty"`
	Complaint   string   `json:"complaint,omitempty"`
}

type fieldPattern struct {
	re     *regexp.Regexp
	assign func(f *Facts, value string)
}

var fieldPatterns = []fieldPattern{
	{
		re:     regexp.MustCompile(`(?i:Name|Patient Name|Pt Name)[:\s]*([A-Z][a-z]+(?:[ \t][A-Z][a-z]+)*)`),
		assign: func(f *Facts, v string) { f.Name = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Age)[:\s]*([0-9]{1,3})`),
		assign: func(f *Facts, v string) { f.Age = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Sex|Gender)[:\s]*([A-Za-z]+)`),
		assign: func(f *Facts, v string) { f.Gender = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Weight)[:\s]*([\d.]+)`),
		assign: func(f *Facts, v string) { f.Weight = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Height)[:\s]*([\d.]+)`),
		assign: func(f *Facts, v string) { f.Height = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Allerg(?:y|ies))[:\s]*([^\n]+)`),
		assign: func(f *Facts, v string) { f.Allergies = splitList(v) },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Medication(?:s)?|Rx|Drug(?:s)?)[:\s]*([^\n]+)`),
		assign: func(f *Facts, v string) { f.Medications = splitList(v) },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Diagnosis|Condition|Medical Condition)[:\s]*([^\n]+)`),
		assign: func(f *Facts, v string) { f.Diagnosis = v },
	},
	{
		re:     regexp.MustCompile(`(?i)(?:Chief Complaint|Reason for Visit)[:\s]*([^\n]+)`),
		assign: func(f *Facts, v string) { f.Complaint = v },
	},
}

var (
	listSepRe = regexp.MustCompile(`[;,]`)
	pronounRe = regexp.MustCompile(`(?i)\b(he|she)\b`)
)

// Extract derives structured facts from case text. It never fails: fields
// with no match stay empty. A gender field missing from the document falls
// back to the first third-person pronoun in the text.
func Extract(text string) Facts {
	var facts Facts

	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		fp.assign(&facts, strings.TrimSpace(m[1]))
	}

	facts.Gender = NormalizeGender(facts.Gender)

	if facts.Gender == "" {
		if m := pronounRe.FindStringSubmatch(text); m != nil {
			if strings.EqualFold(m[1], "he") {
				facts.Gender = "male"
			} else {
				facts.Gender = "female"
			}
		}
	}

	return facts
}

// NormalizeGender collapses the free-form values a case document uses
// ("F", "Female", "woman") into the canonical tags. Anything unrecognized
// is treated as absent.
func NormalizeGender(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "f", "female", "woman":
		return "female"
	case "m", "male", "man":
		return "male"
	default:
		return ""
	}
}

func splitList(raw string) []string {
	var result []string

	for _, item := range listSepRe.Split(raw, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		result = append(result, item)
	}

	return result
}

var femaleNames = map[string]bool{
	"jessica": true, "emily": true, "sarah": true, "olivia": true,
	"emma": true, "sophia": true, "isabella": true, "ava": true,
	"mia": true, "ella": true, "jess": true,
}

var maleNames = map[string]bool{
	"mike": true, "michael": true, "john": true, "james": true,
	"robert": true, "william": true, "david": true, "daniel": true,
	"matthew": true, "joseph": true,
}

// InferGenderFromName maps a small dictionary of common first names to a
// gender tag. Unknown names return an empty string.
func InferGenderFromName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	first := strings.ToLower(fields[0])

	switch {
	case femaleNames[first]:
		return "female"
	case maleNames[first]:
		return "male"
	default:
		return ""
	}
}
