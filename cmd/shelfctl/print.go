package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/domain/shelf"
)

func printShelves(w io.Writer, shelves []*shelf.Shelf) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tDESCRIPTION")
	for _, s := range shelves {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.Description)
	}
	_ = tw.Flush()
}

func printBooks(w io.Writer, books []*book.Form) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITRE\tAUTEURS\tNOTE\tPRIX")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, authors(b), rating(b), price(b))
	}
	_ = tw.Flush()
}

func printBook(w io.Writer, b *book.Form) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", label, value)
		}
	}

	row("ID", b.ID)
	row("Titre", b.Title)
	row("Auteurs", authors(b))
	row("Note", rating(b))
	row("Prix", price(b))
	row("ISBN", b.ISBN)
	row("Publication", b.PublishedDate)
	if b.PageCount > 0 {
		row("Pages", strconv.Itoa(b.PageCount))
	}
	row("Langue", b.Language)
	row("Couverture", b.Cover)
	row("Description", b.Description)
	_ = tw.Flush()
}

func authors(b *book.Form) string {
	if len(b.Authors) == 0 {
		return "-"
	}
	return strings.Join(b.AuthorNames(), ", ")
}

// 客户端生成的占位值以~标记
func rating(b *book.Form) string {
	if b.AverageRating == nil {
		return "-"
	}
	s := strconv.FormatFloat(*b.AverageRating, 'f', 1, 64)
	if b.SyntheticRating {
		s = "~" + s
	}
	return s
}

func price(b *book.Form) string {
	if b.Price == nil {
		return "-"
	}
	s := strconv.FormatFloat(*b.Price, 'f', 2, 64) + " €"
	if b.SyntheticPrice {
		s = "~" + s
	}
	return s
}
