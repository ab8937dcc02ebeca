package models

// RubricTemplateItem is one scored criterion within a rubric form
type RubricTemplateItem struct {
	Label       string `json:"label"`
	Max         int    `json:"max"`
	Description string `json:"description,omitempty"`
}

// RubricTemplateForm is one assessment form within a subject's rubric set
type RubricTemplateForm struct {
	Name  string               `json:"name"`
	Items []RubricTemplateItem `json:"items"`
}

// RubricTemplate groups the built-in assessment forms for one subject
type RubricTemplate struct {
	Subject Subject              `json:"subject"`
	Forms   []RubricTemplateForm `json:"forms"`
}

// RubricTemplates holds the built-in per-subject assessment structures.
// These are served read-only; uploaded rubric files can supersede them per
// cohort but the defaults always exist.
var RubricTemplates = map[Subject]RubricTemplate{
	SubjectFYP1: {
		Subject: SubjectFYP1,
		Forms: []RubricTemplateForm{
			{
				Name: "Form 1: Proposal Defense (15%)",
				Items: []RubricTemplateItem{
					{Label: "Problem Statement", Max: 5, Description: "Significance and clarity"},
					{Label: "Objectives", Max: 5, Description: "SMART objectives"},
					{Label: "Scope", Max: 5, Description: "Boundaries of project"},
				},
			},
			{
				Name: "Form 2: Progress Report 1 (10%)",
				Items: []RubricTemplateItem{
					{Label: "Literature Review", Max: 5, Description: "Depth of research"},
					{Label: "Methodology", Max: 5, Description: "Flowchart and methods"},
				},
			},
			{
				Name: "Form 3: Logbook & Professionalism (10%)",
				Items: []RubricTemplateItem{
					{Label: "Logbook Updates", Max: 5, Description: "Regularity and detail"},
					{Label: "Ethics & Conduct", Max: 5, Description: "Attitude and safety"},
				},
			},
			{
				Name: "Form 4: Final Report (40%)",
				Items: []RubricTemplateItem{
					{Label: "Abstract", Max: 5, Description: "Summary of work"},
					{Label: "Implementation", Max: 15, Description: "Results and analysis"},
					{Label: "Conclusion", Max: 10, Description: "Findings and future work"},
					{Label: "Writing Format", Max: 10, Description: "Language and references"},
				},
			},
			{
				Name: "Form 5: Final Presentation (25%)",
				Items: []RubricTemplateItem{
					{Label: "Presentation Slides", Max: 10, Description: "Visual aids"},
					{Label: "Q&A Session", Max: 15, Description: "Ability to defend ideas"},
				},
			},
		},
	},
	SubjectFYP2: {
		Subject: SubjectFYP2,
		Forms: []RubricTemplateForm{
			{
				Name: "Form 1: Technical Demo",
				Items: []RubricTemplateItem{
					{Label: "Functionality", Max: 20},
					{Label: "Technical Difficulty", Max: 20},
				},
			},
			{
				Name: "Form 2: Thesis",
				Items: []RubricTemplateItem{
					{Label: "Report Quality", Max: 60},
				},
			},
		},
	},
	SubjectLI: {
		Subject: SubjectLI,
		Forms: []RubricTemplateForm{
			{
				Name: "Industrial Supervisor Evaluation",
				Items: []RubricTemplateItem{
					{Label: "Performance", Max: 50},
				},
			},
			{
				Name: "Faculty Supervisor Evaluation",
				Items: []RubricTemplateItem{
					{Label: "Report", Max: 50},
				},
			},
		},
	},
}
