package domain

var questionBank = []Question{
	{
		Prompt: "What's your favorite way to spend a weekend?",
		Options: []Option{
			{Text: "Curling up with a good book", Category: Cat},
			{Text: "Going for a long run", Category: Horse},
			{Text: "Exploring the woods", Category: Fox},
			{Text: "Playing with friends", Category: Dog},
		},
	},
	{
		Prompt: "Which of these describes your personality best?",
		Options: []Option{
			{Text: "Independent and curious", Category: Fox},
			{Text: "Loyal and friendly", Category: Dog},
			{Text: "Playful and energetic", Category: Hamster},
			{Text: "Calm and graceful", Category: Horse},
		},
	},
	{
		Prompt: "What's your ideal pet?",
		Options: []Option{
			{Text: "A small, quiet companion", Category: Hamster},
			{Text: "A big, protective friend", Category: Dog},
			{Text: "A sleek, mysterious creature", Category: Fox},
			{Text: "A graceful, majestic animal", Category: Horse},
		},
	},
	{
		Prompt: "How do you handle stress?",
		Options: []Option{
			{Text: "I take a quiet moment to myself", Category: Cat},
			{Text: "I run or jump around", Category: Hamster},
			{Text: "I seek help from friends", Category: Dog},
			{Text: "I find a peaceful spot to reflect", Category: Horse},
		},
	},
	{
		Prompt: "What's your favorite snack?",
		Options: []Option{
			{Text: "Fish", Category: Cat},
			{Text: "Bones", Category: Dog},
			{Text: "Seeds", Category: Hamster},
			{Text: "Grass", Category: Horse},
		},
	},
}

// Questions returns a copy of the fixed question bank. Callers may not mutate the bank.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	for i, q := range questionBank {
		opts := make([]Option, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{Prompt: q.Prompt, Options: opts}
	}
	return out
}
