package main

import "github.com/lu-zhengda/contactsync/internal/cli"

func main() {
	cli.Execute()
}
