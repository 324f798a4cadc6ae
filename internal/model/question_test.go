package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDefaults(t *testing.T) {
	options, min, max := TypeDefaults(QuestionSingleChoice)
	assert.Equal(t, StringList{"Option 1", "Option 2"}, options)
	assert.Zero(t, min)
	assert.Zero(t, max)

	options, min, max = TypeDefaults(QuestionMultipleChoice)
	assert.Len(t, options, MinChoiceOptions)

	options, min, max = TypeDefaults(QuestionRating)
	assert.Empty(t, options)
	assert.Equal(t, DefaultMinRating, min)
	assert.Equal(t, DefaultMaxRating, max)

	options, min, max = TypeDefaults(QuestionText)
	assert.Empty(t, options)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestApplyTypeDefaultsIsIdempotent(t *testing.T) {
	q := &FormQuestion{Type: QuestionText}

	q.ApplyTypeDefaults(QuestionSingleChoice)
	first := *q
	q.ApplyTypeDefaults(QuestionSingleChoice)

	assert.Equal(t, first.Options, q.Options)
	assert.Equal(t, first.MinRating, q.MinRating)
	assert.Equal(t, first.MaxRating, q.MaxRating)
}

func TestApplyTypeDefaultsClearsStaleFields(t *testing.T) {
	q := &FormQuestion{Type: QuestionSingleChoice, Options: StringList{"a", "b", "c"}}

	q.ApplyTypeDefaults(QuestionRating)
	assert.Empty(t, q.Options)
	assert.Equal(t, DefaultMinRating, q.MinRating)
	assert.Equal(t, DefaultMaxRating, q.MaxRating)

	q.ApplyTypeDefaults(QuestionText)
	assert.Empty(t, q.Options)
	assert.Zero(t, q.MinRating)
	assert.Zero(t, q.MaxRating)
}

func TestCanRemoveOption(t *testing.T) {
	choice := &FormQuestion{Type: QuestionSingleChoice, Options: StringList{"a", "b"}}
	assert.False(t, CanRemoveOption(choice, 0))
	assert.False(t, CanRemoveOption(choice, 1))

	choice.Options = StringList{"a", "b", "c"}
	assert.True(t, CanRemoveOption(choice, 1))

	text := &FormQuestion{Type: QuestionText}
	assert.True(t, CanRemoveOption(text, 0))

	// Out-of-range indexes are not this check's concern.
	assert.True(t, CanRemoveOption(choice, 99))
}

func TestRenumber(t *testing.T) {
	questions := []FormQuestion{
		{Order: 7},
		{Order: 7},
		{Order: 0},
	}

	Renumber(questions)
	for i, q := range questions {
		assert.Equal(t, i+1, q.Order)
	}
}

func TestCloneQuestionIsIndependent(t *testing.T) {
	src := &FormQuestion{
		UUIDBase: UUIDBase{ID: GenerateUUID()},
		Title:    "How did you hear about us?",
		Type:     QuestionSingleChoice,
		Options:  StringList{"Search engine", "A friend"},
		Required: true,
	}

	dup := CloneQuestion(src)
	require.NotEmpty(t, dup.ID)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, src.Title, dup.Title)
	assert.Equal(t, src.Options, dup.Options)

	dup.Options[0] = "changed"
	assert.Equal(t, "Search engine", src.Options[0])
}

func TestStringListScanValue(t *testing.T) {
	list := StringList{"a", "b"}
	v, err := list.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, list, out)

	var empty StringList
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
