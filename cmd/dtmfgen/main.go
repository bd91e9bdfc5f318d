package main

import (
	touchtone "github.com/doismellburning/touchtone/src"
)

func main() {
	touchtone.DTMFGenMain()
}
