// shelfctl 命令行浏览Glose书架
//
//	shelfctl shelves --pages 2
//	shelfctl books <shelf-id> --query dune --min-rating 4
//	shelfctl book <form-id>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&cli{out: os.Stdout}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", userMessage(err))
		os.Exit(1)
	}
}
