// Package search builds the free-text book filter shared by the store and views.
package search

import (
	"strconv"
	"strings"

	"github.com/snnyvrz/bookshelf/internal/model"
	"gorm.io/gorm"
)

const likeEscape = `\`

// FoldFunc is the SQL function SQLite connections register to run Fold, since
// SQLite's LOWER only folds ASCII.
const FoldFunc = "bookshelf_fold"

// Fold is the case folding applied to both the term and the searched columns.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Filter matches books whose title, author, genre or year contains a term.
// The zero Filter matches every book.
type Filter struct {
	term string
}

func New(term string) Filter {
	return Filter{term: Fold(strings.TrimSpace(term))}
}

func (f Filter) Empty() bool {
	return f.term == ""
}

// Matches reports whether b would be selected by Apply.
func (f Filter) Matches(b model.Book) bool {
	if f.Empty() {
		return true
	}

	for _, field := range []string{b.Title, b.Author, b.Genre} {
		if strings.Contains(Fold(field), f.term) {
			return true
		}
	}

	return b.Year != nil && strings.Contains(strconv.Itoa(*b.Year), f.term)
}

// Apply narrows tx to the rows Matches would accept.
func (f Filter) Apply(tx *gorm.DB) *gorm.DB {
	if f.Empty() {
		return tx
	}

	pattern := "%" + escapeLike(f.term) + "%"
	like := " LIKE ? ESCAPE '" + likeEscape + "'"

	var text []string
	if tx.Dialector.Name() == "postgres" {
		ilike := " ILIKE ? ESCAPE '" + likeEscape + "'"
		text = []string{"title" + ilike, "author" + ilike, "COALESCE(genre, '')" + ilike}
	} else {
		text = []string{
			FoldFunc + "(title)" + like,
			FoldFunc + "(author)" + like,
			FoldFunc + "(COALESCE(genre, ''))" + like,
		}
	}

	clause := "(" + strings.Join(text, " OR ") + " OR CAST(year AS TEXT)" + like + ")"
	return tx.Where(clause, pattern, pattern, pattern, pattern)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}
