package quiz

import "time"

var defaultsCreated = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultQuestions returns the built-in question set used when no questions
// have been stored yet or the stored list is unreadable.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:            "default-1",
			Text:          "Who founded the Ayyubid dynasty?",
			Choices:       []string{"Saladin", "Nur ad-Din Zengi", "Qutuz", "Baybars"},
			CorrectAnswer: "Saladin",
			Source:        SourceManual,
			CreatedAt:     defaultsCreated,
		},
		{
			ID:            "default-2",
			Text:          "In which year was the Battle of al-Qadisiyyah fought?",
			Choices:       []string{"636 CE", "750 CE", "1258 CE", "1453 CE"},
			CorrectAnswer: "636 CE",
			Source:        SourceManual,
			CreatedAt:     defaultsCreated,
		},
		{
			ID:            "default-3",
			Text:          "What was the first capital of the Islamic state?",
			Choices:       []string{"Mecca", "Medina", "Damascus", "Baghdad"},
			CorrectAnswer: "Medina",
			Source:        SourceManual,
			CreatedAt:     defaultsCreated,
		},
	}
}
