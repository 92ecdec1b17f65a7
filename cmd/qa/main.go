package main

import "github.com/hoangvuduyanh33/QA/internal/cli"

func main() {
	cli.Execute()
}
