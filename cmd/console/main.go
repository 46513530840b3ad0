package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/basel-ax/storyteller/internal/client"
)

func main() {
	err := mainImpl()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mainImpl() error {
	relayURL := flag.String("relay", "http://localhost:8080", "base URL of the storyteller relay")
	flag.Parse()

	storyteller := client.NewClient(*relayURL)
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()

	fmt.Println("Enter an image path followed by a vibe keyword, e.g. ./harbor.jpg Nostalgia")
	fmt.Println(`Quote paths that contain spaces: "./my photos/harbor.jpg" Nostalgia`)
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		report, err := tell(storyteller, line)
		if err != nil {
			fmt.Println("Error: " + err.Error())
			continue
		}
		fmt.Println(report)
	}
	return nil
}

// tell handles one "<image path> <vibe keyword...>" line
func tell(storyteller *client.Client, line string) (string, error) {
	path, keyword, err := splitLine(line)
	if err != nil {
		return "", err
	}

	var image []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		image = data
	}
	return storyteller.Submit(context.Background(), image, keyword)
}

// splitLine separates the image path from the keyword. A path wrapped in
// double or single quotes may contain spaces.
func splitLine(line string) (string, string, error) {
	line = strings.TrimSpace(line)
	if line != "" && (line[0] == '"' || line[0] == '\'') {
		end := strings.IndexByte(line[1:], line[0])
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in %q", line)
		}
		return line[1 : end+1], strings.TrimSpace(line[end+2:]), nil
	}
	path, keyword, _ := strings.Cut(line, " ")
	return path, strings.TrimSpace(keyword), nil
}
