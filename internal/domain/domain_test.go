package domain_test

import (
	"encoding/json"
	"testing"

	"animal-quiz-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTokensRoundTrip(t *testing.T) {
	for _, c := range domain.Categories() {
		parsed, err := domain.ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := domain.ParseCategory("unicorn")
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCategoryPresentation(t *testing.T) {
	assert.Equal(t, "Hamster", domain.Hamster.Name())
	assert.Equal(t, "/fox.png", domain.Fox.ImagePath())
	assert.False(t, domain.Category(7).Valid())
	assert.Equal(t, "I am a Dog! https://example.com", domain.ShareText("Dog", "https://example.com"))
}

func TestScoreBoardLeaderTieBreak(t *testing.T) {
	var board domain.ScoreBoard
	board[domain.Cat] = 2
	board[domain.Dog] = 2
	assert.Equal(t, domain.Cat, board.Leader())

	board[domain.Horse] = 3
	assert.Equal(t, domain.Horse, board.Leader())

	assert.Equal(t, domain.Cat, domain.ScoreBoard{}.Leader())
}

func TestScoreBoardJSONUsesTokens(t *testing.T) {
	var board domain.ScoreBoard
	board.Add(domain.Fox)
	board.Add(domain.Fox)

	raw, err := json.Marshal(board)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cat":0,"dog":0,"fox":2,"hamster":0,"horse":0}`, string(raw))

	var decoded domain.ScoreBoard
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, board, decoded)

	require.Error(t, json.Unmarshal([]byte(`{"cat":-1}`), &decoded))
}

func TestQuestionsReturnsCopy(t *testing.T) {
	qs := domain.Questions()
	require.Len(t, qs, 5)
	qs[0].Options[0].Text = "changed"
	assert.NotEqual(t, "changed", domain.Questions()[0].Options[0].Text)
}
