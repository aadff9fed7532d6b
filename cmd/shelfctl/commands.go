package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiebiao/shelfviewer/internal/application/browse"
	"github.com/xiebiao/shelfviewer/internal/domain/book"
	"github.com/xiebiao/shelfviewer/internal/infrastructure/config"
)

func newShelvesCmd(c *cli) *cobra.Command {
	var (
		limit int
		pages int
	)

	cmd := &cobra.Command{
		Use:   "shelves",
		Short: "列出用户书架",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size := c.pageSize(limit, func(p config.PaginationConfig) int { return p.ShelfPageSize })
			pager := browse.NewShelvesPager(c.catalog, size)

			if err := pager.Load(cmd.Context()); err != nil {
				return err
			}
			if err := loadPages(cmd.Context(), pager.Pager.LoadMore, pager.Snapshot, pages); err != nil {
				return err
			}

			snap := pager.Snapshot()
			printShelves(c.out, snap.Items)
			fmt.Fprintf(c.out, "\n%d étagère(s)%s\n", len(snap.Items), moreHint(snap.HasMore))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "每页数量（默认取配置）")
	cmd.Flags().IntVar(&pages, "pages", 1, "加载的页数，0表示全部")
	return cmd
}

func newBooksCmd(c *cli) *cobra.Command {
	var (
		limit     int
		pages     int
		query     string
		author    string
		minRating float64
		maxPrice  float64
	)

	cmd := &cobra.Command{
		Use:   "books <shelf-id>",
		Short: "列出书架中的图书，可按条件过滤",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size := c.pageSize(limit, func(p config.PaginationConfig) int { return p.BookPageSize })
			pager := browse.NewShelfBooksPager(c.catalog, size)

			if err := pager.SetShelf(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := loadPages(cmd.Context(), pager.Pager.LoadMore, pager.Snapshot, pages); err != nil {
				return err
			}

			snap := pager.Snapshot()
			filters := book.SearchFilters{Query: query, Author: author}
			if cmd.Flags().Changed("min-rating") {
				filters.MinRating = &minRating
			}
			if cmd.Flags().Changed("max-price") {
				filters.MaxPrice = &maxPrice
			}

			result := book.NewSearcher().Search(snap.Items, filters)
			if !result.HasResults {
				fmt.Fprintln(c.out, "Aucun livre trouvé")
				return nil
			}

			printBooks(c.out, result.Books)
			fmt.Fprintf(c.out, "\n%d livre(s) trouvé(s) sur %d chargé(s)%s\n",
				result.Count, len(snap.Items), moreHint(snap.HasMore))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "每页数量（默认取配置）")
	cmd.Flags().IntVar(&pages, "pages", 1, "加载的页数，0表示全部")
	cmd.Flags().StringVar(&query, "query", "", "标题或作者关键词")
	cmd.Flags().StringVar(&author, "author", "", "作者姓名")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "最低评分")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "最高价格")
	return cmd
}

func newBookCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "book <form-id>",
		Short: "查看单本图书详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := browse.NewGetBookUseCase(c.catalog).Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBook(c.out, form)
			return nil
		},
	}
}

// loadPages 在首页之后继续加载，pages<=0时加载到没有更多为止
func loadPages[T any](ctx context.Context, loadMore func(context.Context) bool, snapshot func() browse.Snapshot[T], pages int) error {
	for i := 1; pages <= 0 || i < pages; i++ {
		if !loadMore(ctx) {
			return nil
		}
		if snap := snapshot(); snap.Error != "" {
			return errors.New(snap.Error)
		}
	}
	return nil
}

func moreHint(hasMore bool) string {
	if hasMore {
		return " (--pages pour charger la suite)"
	}
	return ""
}
