package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minilab/bloc/gen"
	"github.com/minilab/bloc/graph"
	"github.com/minilab/bloc/store"
	"github.com/minilab/bloc/translate"
	"github.com/peterh/liner"
)

func main() {
	var (
		target = flag.String("t", "js", "generation target (js, python)")
		output = flag.String("o", "", "write generated code to this file")
		dump   = flag.Bool("json", false, "print the workspace graph as json")
		dbfile = flag.String("db", "", "program database file")
		save   = flag.String("save", "", "store the translated program under this name")
		load   = flag.String("load", "", "load a stored program instead of reading a script")
		list   = flag.Bool("list", false, "list stored programs")
		remove = flag.String("rm", "", "delete a stored program")
		repl   = flag.Bool("i", false, "interactive mode")
	)
	flag.Parse()

	tgt, err := parseTarget(*target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var db *store.Store
	if *dbfile != "" {
		db, err = store.Open(*dbfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer db.Close()
	}

	switch {
	case *list:
		err = listPrograms(db)
	case *remove != "":
		err = deleteProgram(db, *remove)
	case *repl:
		err = interact(db, tgt)
	default:
		err = run(db, tgt, *load, *save, *output, *dump, flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseTarget(name string) (gen.Target, error) {
	switch name {
	case "js", "javascript":
		return gen.JS, nil
	case "py", "python":
		return gen.Python, nil
	default:
		return 0, fmt.Errorf("%s: unknown target", name)
	}
}

func run(db *store.Store, target gen.Target, load, save, output string, dump bool, file string) error {
	var (
		ws  *graph.Workspace
		err error
	)
	switch {
	case load != "":
		if db == nil {
			return fmt.Errorf("-load requires -db")
		}
		ws, err = db.Load(load)
		if err != nil {
			return err
		}
	default:
		src, err := readScript(file)
		if err != nil {
			return err
		}
		ws = graph.NewWorkspace()
		if err := translate.Text(ws, src); err != nil {
			return err
		}
	}
	if save != "" {
		if db == nil {
			return fmt.Errorf("-save requires -db")
		}
		if err := db.Save(save, ws); err != nil {
			return err
		}
	}

	var code string
	if dump {
		data, err := json.MarshalIndent(ws, "", "  ")
		if err != nil {
			return err
		}
		code = string(data) + "\n"
	} else {
		code, err = gen.Generate(ws, target)
		if err != nil {
			return err
		}
	}
	if output == "" {
		_, err = io.WriteString(os.Stdout, code)
		return err
	}
	return os.WriteFile(output, []byte(code), 0o644)
}

func readScript(file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	return string(data), err
}

func listPrograms(db *store.Store) error {
	if db == nil {
		return fmt.Errorf("-list requires -db")
	}
	names, err := db.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func deleteProgram(db *store.Store, name string) error {
	if db == nil {
		return fmt.Errorf("-rm requires -db")
	}
	return db.Delete(name)
}

// interact reads script snippets line by line; a blank line translates the
// pending snippet into the session workspace and regenerates the whole
// program. Colon commands steer the session.
func interact(db *store.Store, target gen.Target) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	ws := graph.NewWorkspace()
	var pending []string
	for {
		prompt := "> "
		if len(pending) > 0 {
			prompt = ". "
		}
		input, err := line.Prompt(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(input, ":") {
			done, err := command(input, db, &ws, &target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			if done {
				return nil
			}
			continue
		}
		if input != "" {
			line.AppendHistory(input)
			pending = append(pending, input)
			continue
		}
		if len(pending) == 0 {
			continue
		}
		src := strings.Join(pending, "\n")
		pending = pending[:0]
		if err := translate.Text(ws, src); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		show(ws, target)
	}
}

func command(input string, db *store.Store, ws **graph.Workspace, target *gen.Target) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":js":
		*target = gen.JS
		show(*ws, *target)
	case ":py", ":python":
		*target = gen.Python
		show(*ws, *target)
	case ":reset":
		*ws = graph.NewWorkspace()
	case ":json":
		data, err := json.MarshalIndent(*ws, "", "  ")
		if err != nil {
			return false, err
		}
		fmt.Println(string(data))
	case ":save":
		if db == nil {
			return false, fmt.Errorf(":save requires -db")
		}
		return false, db.Save(arg, *ws)
	case ":load":
		if db == nil {
			return false, fmt.Errorf(":load requires -db")
		}
		loaded, err := db.Load(arg)
		if err != nil {
			return false, err
		}
		*ws = loaded
		show(*ws, *target)
	case ":list":
		if db == nil {
			return false, fmt.Errorf(":list requires -db")
		}
		names, err := db.List()
		if err != nil {
			return false, err
		}
		for _, n := range names {
			fmt.Println(n)
		}
	default:
		return false, fmt.Errorf("%s: unknown command", cmd)
	}
	return false, nil
}

func show(ws *graph.Workspace, target gen.Target) {
	code, err := gen.Generate(ws, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Print(code)
}
