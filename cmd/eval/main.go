package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/minilab/bloc/lang"
)

func main() {
	scan := flag.Bool("s", false, "scan")
	flag.Parse()

	r, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer r.Close()
	switch {
	case *scan:
		err = scanFile(r)
	default:
		err = parseFile(r)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scanFile(r io.Reader) error {
	scan := lang.Scan(r)
	for {
		tok := scan.Scan()
		if tok.Type == lang.EOF {
			break
		}
		fmt.Println(tok)
	}
	return nil
}

func parseFile(r io.Reader) error {
	script, err := lang.ParseReader(r)
	if err != nil {
		return err
	}
	for _, n := range script.Nodes {
		fmt.Printf("%+v\n", n)
	}
	return nil
}
