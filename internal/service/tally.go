package service

import (
	"sort"
	"strings"

	"vote-be/internal/domain"
)

// TallySections aggregates votes against a session's section definitions.
// Each vote's answer map is walked once: single-select answers increment the
// matching option, multi-select answers increment every matching element,
// and non-empty text answers are appended in vote order. Option names that
// no longer exist in the section definition are skipped, so votes cast
// before a session was reconfigured never break the tally.
//
// Select sections come back sorted by descending vote count; ties keep the
// option-definition order (stable sort).
func TallySections(sections []domain.Section, votes []domain.Vote) []domain.SectionResult {
	results := make([]domain.SectionResult, 0, len(sections))

	for _, section := range sections {
		result := domain.SectionResult{
			SectionID: section.ID,
			Label:     section.Label,
			Type:      section.Type,
		}

		switch section.Type {
		case domain.SectionTextInput:
			result.Responses = collectResponses(section.ID, votes)
		default:
			result.Options = countOptions(section, votes)
		}

		results = append(results, result)
	}

	return results
}

func countOptions(section domain.Section, votes []domain.Vote) []domain.OptionResult {
	counts := make(map[string]int, len(section.Options))

	for _, vote := range votes {
		answer, ok := vote.Answers[section.ID]
		if !ok {
			continue
		}

		switch section.Type {
		case domain.SectionSingleSelect:
			if answer.Kind == domain.AnswerString && hasOption(section.Options, answer.Text) {
				counts[answer.Text]++
			}
		case domain.SectionMultiSelect:
			if answer.Kind == domain.AnswerList {
				for _, name := range answer.List {
					if hasOption(section.Options, name) {
						counts[name]++
					}
				}
			}
		}
	}

	options := make([]domain.OptionResult, 0, len(section.Options))
	for _, option := range section.Options {
		options = append(options, domain.OptionResult{
			Name:     option.Name,
			ImageURL: option.ImageURL,
			Votes:    counts[option.Name],
		})
	}

	// Stable keeps definition order among equal counts.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Votes > options[j].Votes
	})

	return options
}

func collectResponses(sectionID string, votes []domain.Vote) []domain.TextResponse {
	responses := []domain.TextResponse{}
	for _, vote := range votes {
		answer, ok := vote.Answers[sectionID]
		if !ok || answer.Kind != domain.AnswerString {
			continue
		}
		text := strings.TrimSpace(answer.Text)
		if text == "" {
			continue
		}
		responses = append(responses, domain.TextResponse{
			Response:  text,
			Timestamp: vote.Timestamp,
		})
	}
	return responses
}
