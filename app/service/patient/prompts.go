package patient

import (
	"fmt"
	"strings"

	_ "embed"

	"oscesim/app/service/caseinfo"
)

//go:embed reply_prompt_template.txt
var replyPromptTemplate string

//go:embed greeting_prompt_template.txt
var greetingPromptTemplate string

//go:embed summary_prompt_template.txt
var summaryPromptTemplate string

// One-shot instructions used while building a case.
const (
	backgroundPrompt  = "Write a brief first-person patient background (1-2 sentences)."
	personaPrompt     = "Describe the patient's tone in <=2 short lines."
	caseSummaryPrompt = "Extract a 1-2 sentence OSCE case summary."
)

func renderTemplate(template string, values map[string]any) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}

	return template
}

func formatFacts(facts caseinfo.Facts) string {
	var parts []string

	add := func(name, value string) {
		if value != "" {
			parts = append(parts, name+": "+value)
		}
	}

	add("name", facts.Name)
	add("age", facts.Age)
	add("gender", facts.Gender)
	add("weight", facts.Weight)
	add("height", facts.Height)
	add("allergies", strings.Join(facts.Allergies, ", "))
	add("medications", strings.Join(facts.Medications, ", "))
	add("diagnosis", facts.Diagnosis)
	add("complaint", facts.Complaint)

	if len(parts) == 0 {
		return "none extracted"
	}

	return strings.Join(parts, "; ")
}
