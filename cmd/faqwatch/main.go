package main

import (
	"context"

	"faqwatch/cmd/faqwatch/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
