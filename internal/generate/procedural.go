package generate

import (
	"fmt"

	"github.com/joestump/pagegen/internal/pagebuilder"
)

// proceduralSections lays out the fixed landing page used when no LLM is
// involved: heading and intro, why-choose, opportunities, skills and a call
// to action.
func proceduralSections(title, location, keyword, skillSet string) []pagebuilder.Section {
	skills := ParseList(skillSet)
	if len(skills) == 0 {
		skills = []string{skillSet}
	}

	return []pagebuilder.Section{
		{
			Class: "pseo-intro",
			Blocks: []pagebuilder.Block{
				pagebuilder.H(1, title),
				pagebuilder.P(fmt.Sprintf(
					"Looking for %s opportunities in %s? This guide covers local demand, the kinds of roles on offer and the skills that help you stand out.",
					keyword, location)),
			},
		},
		{
			Class: "pseo-why",
			Blocks: []pagebuilder.Block{
				pagebuilder.H(2, fmt.Sprintf("Why Choose %s for %s?", location, keyword)),
				pagebuilder.P(fmt.Sprintf(
					"%s has a steady need for %s professionals. Local businesses value people who know the area and can start quickly.",
					location, keyword)),
			},
		},
		{
			Class: "pseo-opportunities",
			Blocks: []pagebuilder.Block{
				pagebuilder.H(2, fmt.Sprintf("%s Opportunities in %s", keyword, location)),
				pagebuilder.UL(
					fmt.Sprintf("Full-time %s positions in %s", keyword, location),
					fmt.Sprintf("Contract and freelance %s work", keyword),
					fmt.Sprintf("Entry-level roles for people building %s experience", keyword),
					"Senior and team lead positions",
				),
			},
		},
		{
			Class: "pseo-skills",
			Blocks: []pagebuilder.Block{
				pagebuilder.H(3, fmt.Sprintf("Key Skills: %s", skillSet)),
				pagebuilder.P(fmt.Sprintf("Employers in %s hiring for %s look for the following skills:", location, keyword)),
				pagebuilder.UL(skills...),
			},
		},
		{
			Class: "pseo-cta",
			Blocks: []pagebuilder.Block{
				pagebuilder.H(2, fmt.Sprintf("Get Started in %s", location)),
				pagebuilder.P(fmt.Sprintf("Ready to take the next step? Explore %s opportunities in %s today.", keyword, location)),
			},
		},
	}
}
