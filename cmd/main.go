package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	defer func() {
		if r := recover(); r != nil {
			exitErr, ok := r.(ExitError)
			if !ok {
				panic(r)
			}
			os.Exit(exitErr.Code)
		}
	}()
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
