package search

import (
	"testing"

	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestFilter_Matches(t *testing.T) {
	hobbit := model.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", Year: intPtr(1937)}
	dune := model.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Year: intPtr(1965)}
	untitled := model.Book{Title: "Notes", Author: "Anon"}

	tests := []struct {
		term string
		book model.Book
		want bool
	}{
		{"tolkien", hobbit, true},
		{"TOLKIEN", hobbit, true},
		{"  hobbit ", hobbit, true},
		{"fantasy", hobbit, true},
		{"193", hobbit, true},
		{"tolkien", dune, false},
		{"fiction", dune, true},
		{"1965", dune, true},
		{"19", untitled, false},
		{"", untitled, true},
		{"   ", dune, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.term).Matches(tt.book), "term=%q title=%q", tt.term, tt.book.Title)
	}
}

func TestFilter_Empty(t *testing.T) {
	assert.True(t, New("").Empty())
	assert.True(t, New("  ").Empty())
	assert.True(t, Filter{}.Empty())
	assert.False(t, New("x").Empty())
}

func TestFilter_MatchesNonASCII(t *testing.T) {
	emile := model.Book{Title: "Émile", Author: "Rousseau"}

	for _, term := range []string{"émile", "ÉMILE", "Émile"} {
		assert.True(t, New(term).Matches(emile), "term=%q", term)
	}
	assert.False(t, New("emile").Matches(emile))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "émile", Fold("ÉMILE"))
	assert.Equal(t, "толстой", Fold("ТОЛСТОЙ"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
