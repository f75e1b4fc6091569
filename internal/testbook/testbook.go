// Package testbook builds the sample workbook shared by the adapter tests.
package testbook

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/TsubasaBE/go-spsheet/book"
)

var dump = spew.ConfigState{Indent: "  ", SortKeys: true}

// AssertEqual fails t with a dump of both books when they differ.
func AssertEqual(t testing.TB, got, want *book.Book) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("books differ\n--- got ---\n%s\n--- want ---\n%s", dump.Sdump(got), dump.Sdump(want))
	}
}

// Sample returns a four-sheet book covering text, numbers, styled dates,
// non-ASCII names and values, a sparse layout and an empty sheet.
func Sample(t testing.TB) *book.Book {
	t.Helper()
	b := book.NewBook()

	s1 := book.NewSheet("シート1")
	s1.AddCell(book.Str("a"), 0, 0)
	s1.AddCell(book.Str("b"), 0, 1)
	s1.AddCell(book.Float(1.0), 1, 0)
	s1.AddCell(book.Float(2.0), 1, 1)
	s1.AddCell(date(t, "2017-12-02", `MM\月DD\日`), 2, 0)
	s1.AddCell(date(t, "2017-12-02T13:30:00", `YYYY/MM/DD\ HH:MM:SS`), 2, 1)
	b.AddSheet(s1)

	s2 := book.NewSheet("シート2")
	s2.AddCell(book.Str("予定表～①ﾊﾝｶｸだ"), 0, 0)
	b.AddSheet(s2)

	s3 := book.NewSheet("シート3")
	s3.AddCell(book.Str("a"), 0, 0)
	s3.AddCell(book.Str("b"), 0, 2)
	s3.AddCell(book.Str("c"), 2, 0)
	s3.AddCell(book.Str("d"), 2, 2)
	s3.AddCell(book.Str("e"), 2, 4)
	s3.AddCell(book.Str("f"), 4, 0)
	s3.AddCell(book.Str("g"), 4, 4)
	b.AddSheet(s3)

	b.AddSheet(book.NewSheet("シート4"))
	return b
}

// Dates returns a one-sheet book exercising every date item family,
// including era and weekday items and an unstyled date.
func Dates(t testing.TB) *book.Book {
	t.Helper()
	b := book.NewBook()
	s := book.NewSheet("dates")
	formats := []string{
		`GGGE\年M\月D\日`,
		"GG EE/MM/DD",
		"G.E.M.D",
		"YYYY-MM-DD AAAA",
		`YY/M/D AAA"曜日"`,
		"DDDD, MMMM D, YYYY",
		"DDD MMM MMMMM",
		"H:MM:SS",
		"HH:MM",
		"",
	}
	for i, f := range formats {
		s.AddCell(date(t, "2019-05-01T08:05:09", f), i, 0)
	}
	b.AddSheet(s)
	return b
}

func date(t testing.TB, src, format string) book.Cell {
	t.Helper()
	c, err := book.Date(src, book.NewStyle(format))
	if err != nil {
		t.Fatalf("book.Date(%q): %v", src, err)
	}
	return c
}
