package content

import (
	"context"

	"github.com/abhisek/lectiz/internal/quiz"
)

// Static returns the same built-in set for every difficulty. It is used when
// no LLM provider is configured and in tests.
type Static struct {
	set *quiz.ContentSet
}

var _ quiz.ContentProvider = (*Static)(nil)

// NewStatic returns a Static provider serving the built-in passage.
func NewStatic() *Static {
	return &Static{set: builtinSet}
}

// NewStaticWith returns a Static provider serving set.
func NewStaticWith(set *quiz.ContentSet) *Static {
	return &Static{set: set}
}

func (s *Static) FetchContent(ctx context.Context, _ quiz.Difficulty) (*quiz.ContentSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.set.Clone(), nil
}

// BuiltinSet returns a copy of the built-in passage and questions.
func BuiltinSet() *quiz.ContentSet {
	return builtinSet.Clone()
}

var builtinSet = &quiz.ContentSet{
	Passage: "La inteligencia artificial está transformando rápidamente nuestro mundo. " +
		"Desde asistentes virtuales hasta sistemas de diagnóstico médico, la IA se está " +
		"integrando en casi todos los aspectos de nuestra vida diaria. A medida que esta " +
		"tecnología avanza, surgen importantes preguntas éticas sobre su uso y regulación.",
	Questions: []quiz.Question{
		{
			Prompt: "¿Cuál es el tema principal del texto?",
			Options: []string{
				"El impacto del cambio climático",
				"La evolución de la inteligencia artificial",
				"Historia de Internet",
				"Economía global",
			},
			CorrectIndex: 1,
			Explanation:  "El texto trata principalmente sobre la inteligencia artificial y su impacto en la sociedad.",
		},
		{
			Prompt: "Según el texto, ¿qué está sucediendo con la inteligencia artificial?",
			Options: []string{
				"Está disminuyendo su importancia",
				"Se está integrando en muchos aspectos de la vida diaria",
				"Solo se usa en investigación espacial",
				"Está prohibida en la mayoría de países",
			},
			CorrectIndex: 1,
			Explanation:  "El texto menciona explícitamente que la IA 'se está integrando en casi todos los aspectos de nuestra vida diaria'.",
		},
		{
			Prompt: "¿Qué tipo de preguntas surgen con el avance de la IA según el texto?",
			Options: []string{
				"Preguntas matemáticas",
				"Preguntas filosóficas sobre el alma",
				"Preguntas éticas",
				"Preguntas sobre deportes",
			},
			CorrectIndex: 2,
			Explanation:  "El texto menciona que 'surgen importantes preguntas éticas sobre su uso y regulación'.",
		},
		{
			Prompt: "¿Cómo se describe mejor el tono del texto?",
			Options: []string{
				"Totalmente negativo",
				"Entusiasta y positivo",
				"Neutral e informativo",
				"Humorístico",
			},
			CorrectIndex: 2,
			Explanation:  "El texto presenta información sobre la IA sin mostrar un sesgo claramente positivo o negativo, manteniendo un tono informativo.",
		},
		{
			Prompt: "¿Qué implica la frase 'A medida que esta tecnología avanza'?",
			Options: []string{
				"La IA ya no está cambiando",
				"La IA está retrocediendo",
				"La IA está desarrollándose continuamente",
				"La IA ha alcanzado su máximo potencial",
			},
			CorrectIndex: 2,
			Explanation:  "La frase indica que la inteligencia artificial es una tecnología en constante evolución y desarrollo.",
		},
	},
}
