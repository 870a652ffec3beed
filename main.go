package main

import (
	"fmt"
	"os"

	"lineup/internal/cli"
)

//	@Title			Lista da Vez
//	@Version		1.0
//	@Description	Очередь продавцов магазина и учёт обслуживаний покупателей
//	@BasePath		/
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
