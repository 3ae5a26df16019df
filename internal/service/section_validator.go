package service

import (
	"strings"

	"vote-be/internal/domain"
)

// ValidateAnswers checks a submitted answer map against a session's section
// definitions. Sections are checked in definition order and the first
// failure wins; the returned reason names the offending section's label.
// Pure and deterministic given (sections, answers).
func ValidateAnswers(sections []domain.Section, answers map[string]domain.Answer) *domain.ValidationError {
	for _, section := range sections {
		answer, present := answers[section.ID]
		if present && answer.Kind == domain.AnswerNone {
			present = false
		}

		if section.Required {
			switch section.Type {
			case domain.SectionTextInput:
				if !present || strings.TrimSpace(answer.Text) == "" {
					return domain.NewValidationError("section %q requires an answer", section.Label)
				}
			case domain.SectionSingleSelect:
				if !present {
					return domain.NewValidationError("section %q requires a selection", section.Label)
				}
			case domain.SectionMultiSelect:
				if !present || len(answer.List) == 0 {
					return domain.NewValidationError("section %q requires at least one selection", section.Label)
				}
			}
		}

		if !present {
			continue
		}

		switch section.Type {
		case domain.SectionSingleSelect:
			if answer.Kind != domain.AnswerString {
				return domain.NewValidationError("section %q expects a single selection", section.Label)
			}
			if !hasOption(section.Options, answer.Text) {
				return domain.NewValidationError("section %q does not have option %q", section.Label, answer.Text)
			}
		case domain.SectionMultiSelect:
			if answer.Kind != domain.AnswerList {
				return domain.NewValidationError("section %q expects a list of selections", section.Label)
			}
			if len(answer.List) < section.MinSelections {
				return domain.NewValidationError("section %q requires at least %d selections", section.Label, section.MinSelections)
			}
			if section.MaxSelections > 0 && len(answer.List) > section.MaxSelections {
				return domain.NewValidationError("section %q allows at most %d selections", section.Label, section.MaxSelections)
			}
			for _, name := range answer.List {
				if !hasOption(section.Options, name) {
					return domain.NewValidationError("section %q does not have option %q", section.Label, name)
				}
			}
		case domain.SectionTextInput:
			// Required-check above is the only structural constraint.
		}
	}

	return nil
}

// ValidateSessionDefinition checks a session definition before it is stored:
// select sections need options, multi-select bounds must be coherent, and
// section ids and option names must be unique.
func ValidateSessionDefinition(title string, sections []domain.Section) *domain.ValidationError {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidationError("session title is required")
	}
	if len(sections) == 0 {
		return domain.NewValidationError("session needs at least one section")
	}

	seenIDs := make(map[string]bool, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section.ID) == "" {
			return domain.NewValidationError("section %q needs an id", section.Label)
		}
		if seenIDs[section.ID] {
			return domain.NewValidationError("duplicate section id %q", section.ID)
		}
		seenIDs[section.ID] = true

		switch section.Type {
		case domain.SectionSingleSelect, domain.SectionMultiSelect:
			if len(section.Options) == 0 {
				return domain.NewValidationError("section %q needs at least one option", section.Label)
			}
			seenOptions := make(map[string]bool, len(section.Options))
			for _, option := range section.Options {
				if strings.TrimSpace(option.Name) == "" {
					return domain.NewValidationError("section %q has an unnamed option", section.Label)
				}
				if seenOptions[option.Name] {
					return domain.NewValidationError("section %q has duplicate option %q", section.Label, option.Name)
				}
				seenOptions[option.Name] = true
			}
			if section.Type == domain.SectionMultiSelect {
				if section.MinSelections < 0 || section.MaxSelections < 0 {
					return domain.NewValidationError("section %q has negative selection bounds", section.Label)
				}
				if section.MaxSelections > 0 && section.MinSelections > section.MaxSelections {
					return domain.NewValidationError("section %q has minSelections greater than maxSelections", section.Label)
				}
			}
		case domain.SectionTextInput:
			if len(section.Options) > 0 {
				return domain.NewValidationError("section %q is text-input and cannot have options", section.Label)
			}
		default:
			return domain.NewValidationError("section %q has unknown type %q", section.Label, section.Type)
		}
	}

	return nil
}

func hasOption(options []domain.Option, name string) bool {
	for _, option := range options {
		if option.Name == name {
			return true
		}
	}
	return false
}
